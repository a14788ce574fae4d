package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"dept-dashboard/internal/charts"
	"dept-dashboard/internal/frame"
	"dept-dashboard/internal/model"
	"dept-dashboard/internal/store"
	"dept-dashboard/pkg/utils"

	"github.com/google/uuid"
)

// Column names the joins rely on. The guarded renames in BuildCounts map
// each table's primary identifier onto the foreign-key name its consuming
// join expects.
const (
	ColID         = "id"
	ColDepartment = "department_id"
	ColEmployee   = "employee_id"
	ColDeptName   = "department_name"

	UnknownDepartment = "Unknown"
)

// Source is what a render reads its three tables from
type Source interface {
	FetchAll(ctx context.Context) (employees, departments, projects *frame.Frame, err error)
	Close() error
}

// Service runs the full fetch → join → count → render sequence. Renders are
// serialized: the two chart files are process-wide shared state, and the
// mutex keeps one request's bar chart from pairing with another request's
// pie chart on disk.
type Service struct {
	Open   func(ctx context.Context) (Source, error)
	Static *utils.StaticDir

	mu sync.Mutex
}

// Render regenerates both charts from a fresh database read and returns a
// summary of what was drawn. Every failure is tagged with one of the four
// error kinds and recorded in the render history.
func (s *Service) Render(ctx context.Context) (*model.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	runID := uuid.New().String()
	fmt.Printf("🚀 Starting render run: %s\n", runID)

	store.SaveRun(runID)

	summary, err := s.render(ctx, runID)
	if err != nil {
		kind := model.KindOf(err)
		log.Printf("❌ Render run %s failed (%s): %v", runID, kind, err)
		store.UpdateRunStatus(runID, "failed")
		store.SaveRunError(runID, string(kind), err)
		return nil, err
	}

	store.UpdateRunStatus(runID, "completed")
	fmt.Printf("🏁 Render run %s completed in %v\n", runID, time.Since(start))
	return summary, nil
}

func (s *Service) render(ctx context.Context, runID string) (*model.Summary, error) {
	if err := s.Static.Ensure(); err != nil {
		return nil, model.NewStageError(model.ErrRender, err)
	}

	src, err := s.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	employees, departments, projects, err := src.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	fmt.Printf("📥 Loaded %d employees, %d departments, and %d project assignments\n",
		employees.Len(), departments.Len(), projects.Len())
	store.UpdateRunCounts(runID, employees.Len(), departments.Len(), projects.Len())

	empCounts, projCounts, err := BuildCounts(employees, departments, projects)
	if err != nil {
		return nil, err
	}

	if err := charts.RenderBar(empCounts, s.Static.Path(charts.BarChartFile)); err != nil {
		return nil, model.NewStageError(model.ErrRender, err)
	}
	fmt.Printf("📊 Saved bar chart to %s\n", s.Static.Path(charts.BarChartFile))

	if err := charts.RenderPie(projCounts, s.Static.Path(charts.PieChartFile)); err != nil {
		return nil, model.NewStageError(model.ErrRender, err)
	}
	fmt.Printf("📊 Saved pie chart to %s\n", s.Static.Path(charts.PieChartFile))

	return &model.Summary{
		RunID:          runID,
		Employees:      employees.Len(),
		Departments:    departments.Len(),
		Projects:       projects.Len(),
		EmployeeCounts: empCounts,
		ProjectCounts:  projCounts,
		BarChart:       charts.BarChartFile,
		PieChart:       charts.PieChartFile,
	}, nil
}

// BuildCounts normalizes the identifier columns, performs both left joins
// and computes the two value-count aggregations. The renames mutate the
// input frames in place; both are guarded, so tables that already carry the
// foreign-key name pass through untouched.
func BuildCounts(employees, departments, projects *frame.Frame) (empCounts, projCounts []model.Count, err error) {
	departments.RenameColumn(ColID, ColDepartment)
	employees.RenameColumn(ColID, ColEmployee)

	fmt.Printf("🔍 Columns after cleaning — employees: [%s], departments: [%s], projects: [%s]\n",
		strings.Join(employees.Columns(), ", "),
		strings.Join(departments.Columns(), ", "),
		strings.Join(projects.Columns(), ", "))

	empDept := employees.LeftJoin(departments, ColDepartment)
	if !empDept.HasColumn(ColDeptName) {
		return nil, nil, model.NewStageError(model.ErrSchema,
			errors.New(`column "department_name" not found; check the departments table`))
	}
	empCounts = empDept.ValueCounts(ColDeptName)

	full := projects.LeftJoin(empDept, ColEmployee)
	full.Fill(ColDeptName, UnknownDepartment)
	projCounts = full.ValueCounts(ColDeptName)

	return empCounts, projCounts, nil
}
