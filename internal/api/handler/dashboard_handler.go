package handler

import (
	"encoding/json"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"strings"

	"dept-dashboard/internal/dashboard"
	"dept-dashboard/internal/store"
)

var svc *dashboard.Service

// Init wires the dashboard service the handlers delegate to
func Init(s *dashboard.Service) {
	svc = s
}

var indexTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>Employee Analytics Dashboard</title>
    <style>
        body { font-family: sans-serif; margin: 2em; background: #f4f4f4; }
        h1 { color: #2c3e50; }
        .chart { background: #fff; padding: 1em; margin-bottom: 2em; box-shadow: 0 1px 3px rgba(0,0,0,.2); }
        .chart img { max-width: 100%; }
    </style>
</head>
<body>
    <h1>Employee Analytics Dashboard</h1>
    <div class="chart">
        <h2>Number of Employees per Department</h2>
        <img src="/static/{{.BarChart}}" alt="Employees per department">
    </div>
    <div class="chart">
        <h2>Project Distribution by Department</h2>
        <img src="/static/{{.PieChart}}" alt="Projects by department">
    </div>
</body>
</html>
`))

const errorFragment = `<h1>Error Generating Visualizations</h1><p>Please check the server output for more details on the error.</p>`

// Index regenerates both charts and renders the dashboard page
// @Summary Dashboard page
// @Description Regenerate both charts from a fresh database read and return the dashboard HTML
// @Tags dashboard
// @Produce html
// @Success 200 {string} string "Dashboard HTML"
// @Failure 500 {string} string "Error fragment"
// @Router / [get]
func Index(w http.ResponseWriter, r *http.Request) {
	summary, err := svc.Render(r.Context())
	if err != nil {
		// The cause stays server-side; the page only learns that it failed
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(errorFragment))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, summary); err != nil {
		log.Printf("❌ Failed to write dashboard page: %v", err)
	}
}

// Health reports liveness
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} map[string]interface{} "Status"
// @Router /healthz [get]
func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"status": "ok"})
}

// ListRenders returns the most recent render runs
// @Summary List render runs
// @Description Get recent render runs with status and source row counts
// @Tags renders
// @Produce json
// @Param limit query int false "Maximum number of runs to return"
// @Success 200 {object} map[string]interface{} "Render runs"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /api/v1/renders [get]
func ListRenders(w http.ResponseWriter, r *http.Request) {
	limit := 50 // default
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsedLimit, err := strconv.Atoi(limitStr); err == nil && parsedLimit > 0 {
			limit = parsedLimit
		}
	}

	runs, err := store.ListRuns(limit)
	if err != nil {
		http.Error(w, "Failed to fetch render runs", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"runs":  runs,
		"count": len(runs),
		"limit": limit,
	})
}

// GetRenderErrors returns the errors recorded for one render run
// @Summary Get render run errors
// @Description Retrieve every error recorded for a specific render run
// @Tags renders
// @Produce json
// @Param id path string true "Render run ID"
// @Success 200 {object} map[string]interface{} "Render errors"
// @Failure 400 {object} map[string]interface{} "Invalid run ID"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /api/v1/renders/{id}/errors [get]
func GetRenderErrors(w http.ResponseWriter, r *http.Request) {
	// Extract run ID from URL path
	path := r.URL.Path
	prefix := "/api/v1/renders/"
	suffix := "/errors"

	if !strings.HasPrefix(path, prefix) || !strings.HasSuffix(path, suffix) {
		http.Error(w, "Invalid path", http.StatusBadRequest)
		return
	}

	runID := path[len(prefix) : len(path)-len(suffix)]
	if runID == "" {
		http.Error(w, "Run ID is required", http.StatusBadRequest)
		return
	}

	errs, err := store.GetRunErrors(runID)
	if err != nil {
		http.Error(w, "Failed to retrieve errors", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"run_id": runID,
		"errors": errs,
		"count":  len(errs),
	})
}
