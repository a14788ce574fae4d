package model

// Record is a schema-agnostic row as scanned from any source table
type Record map[string]interface{}

// Count is one group of a value-count aggregation
type Count struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Summary describes one completed render run
type Summary struct {
	RunID          string  `json:"run_id"`
	Employees      int     `json:"employees"`
	Departments    int     `json:"departments"`
	Projects       int     `json:"projects"`
	EmployeeCounts []Count `json:"employee_counts"`
	ProjectCounts  []Count `json:"project_counts"`
	BarChart       string  `json:"bar_chart"`
	PieChart       string  `json:"pie_chart"`
}
