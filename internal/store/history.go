package store

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

var db *sql.DB

// InitHistory opens the local SQLite database recording render runs
func InitHistory(dbPath string) error {
	var err error
	db, err = sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}

	// Create tables if not exists
	runTable := `
	CREATE TABLE IF NOT EXISTS render_runs (
		id TEXT PRIMARY KEY,
		status TEXT,
		employees INTEGER,
		departments INTEGER,
		projects INTEGER,
		created_at DATETIME,
		updated_at DATETIME
	);
	`
	errorTable := `
	CREATE TABLE IF NOT EXISTS render_errors (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT,
		kind TEXT,
		error_message TEXT,
		created_at DATETIME
	);
	`

	if _, err := db.Exec(runTable); err != nil {
		return err
	}
	if _, err := db.Exec(errorTable); err != nil {
		return err
	}

	return nil
}

// SaveRun records a new render run in status running
func SaveRun(runID string) error {
	now := time.Now().UTC()
	_, err := db.Exec(`INSERT INTO render_runs (id, status, employees, departments, projects, created_at, updated_at) VALUES (?, ?, 0, 0, 0, ?, ?)`,
		runID, "running", now, now)
	return err
}

// UpdateRunStatus updates a run's status
func UpdateRunStatus(runID string, status string) error {
	now := time.Now().UTC()
	_, err := db.Exec(`UPDATE render_runs SET status = ?, updated_at = ? WHERE id = ?`, status, now, runID)
	return err
}

// UpdateRunCounts records how many rows each source table yielded
func UpdateRunCounts(runID string, employees, departments, projects int) error {
	now := time.Now().UTC()
	_, err := db.Exec(`UPDATE render_runs SET employees = ?, departments = ?, projects = ?, updated_at = ? WHERE id = ?`,
		employees, departments, projects, now, runID)
	return err
}

// SaveRunError records a failure for a run along with its kind
func SaveRunError(runID, kind string, err error) error {
	if err == nil {
		return nil
	}
	now := time.Now().UTC()
	_, e := db.Exec(`INSERT INTO render_errors (run_id, kind, error_message, created_at) VALUES (?, ?, ?, ?)`,
		runID, kind, err.Error(), now)
	return e
}

// ListRuns returns the most recent render runs
func ListRuns(limit int) ([]map[string]interface{}, error) {
	rows, err := db.Query(`SELECT id, status, employees, departments, projects, created_at, updated_at FROM render_runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []map[string]interface{}
	for rows.Next() {
		var id, status string
		var employees, departments, projects int
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&id, &status, &employees, &departments, &projects, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, map[string]interface{}{
			"id":          id,
			"status":      status,
			"employees":   employees,
			"departments": departments,
			"projects":    projects,
			"createdAt":   createdAt,
			"updatedAt":   updatedAt,
		})
	}
	return runs, rows.Err()
}

// GetRunErrors returns every error recorded for a run
func GetRunErrors(runID string) ([]map[string]interface{}, error) {
	rows, err := db.Query(`SELECT id, kind, error_message, created_at FROM render_errors WHERE run_id = ? ORDER BY created_at`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var errs []map[string]interface{}
	for rows.Next() {
		var id int
		var kind, message string
		var createdAt time.Time
		if err := rows.Scan(&id, &kind, &message, &createdAt); err != nil {
			return nil, err
		}
		errs = append(errs, map[string]interface{}{
			"id":        id,
			"kind":      kind,
			"message":   message,
			"createdAt": createdAt,
		})
	}
	return errs, rows.Err()
}
