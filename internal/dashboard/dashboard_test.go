package dashboard

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"dept-dashboard/internal/charts"
	"dept-dashboard/internal/frame"
	"dept-dashboard/internal/model"
	"dept-dashboard/internal/store"
	"dept-dashboard/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sourceFixture() (employees, departments, projects *frame.Frame) {
	employees = frame.New([]string{"id", "department_id"}, []model.Record{
		{"id": int64(1), "department_id": int64(10)},
		{"id": int64(2), "department_id": int64(10)},
		{"id": int64(3), "department_id": int64(20)},
	})
	departments = frame.New([]string{"id", "department_name"}, []model.Record{
		{"id": int64(10), "department_name": "Eng"},
		{"id": int64(20), "department_name": "Sales"},
	})
	projects = frame.New([]string{"id", "employee_id"}, []model.Record{
		{"id": int64(100), "employee_id": int64(1)},
		{"id": int64(101), "employee_id": int64(3)},
		{"id": int64(102), "employee_id": int64(99)},
	})
	return employees, departments, projects
}

func TestBuildCounts(t *testing.T) {
	employees, departments, projects := sourceFixture()

	empCounts, projCounts, err := BuildCounts(employees, departments, projects)
	require.NoError(t, err)

	assert.Equal(t, []model.Count{
		{Name: "Eng", Count: 2},
		{Name: "Sales", Count: 1},
	}, empCounts)

	// Project 102 is assigned to employee 99, who resolves to no department
	assert.Equal(t, []model.Count{
		{Name: "Eng", Count: 1},
		{Name: "Sales", Count: 1},
		{Name: "Unknown", Count: 1},
	}, projCounts)
}

func TestBuildCountsEmployeeTotal(t *testing.T) {
	employees, departments, projects := sourceFixture()

	empCounts, projCounts, err := BuildCounts(employees, departments, projects)
	require.NoError(t, err)

	empTotal := 0
	for _, c := range empCounts {
		empTotal += c.Count
	}
	assert.Equal(t, 3, empTotal, "every employee resolves to a department")

	projTotal := 0
	for _, c := range projCounts {
		projTotal += c.Count
	}
	assert.Equal(t, 3, projTotal, "every assignment is counted, Unknown included")
}

func TestBuildCountsPreNamedForeignKeys(t *testing.T) {
	// Tables that already use the foreign-key names must pass the guarded
	// renames untouched and still join.
	employees := frame.New([]string{"employee_id", "department_id"}, []model.Record{
		{"employee_id": int64(1), "department_id": int64(10)},
	})
	departments := frame.New([]string{"department_id", "department_name"}, []model.Record{
		{"department_id": int64(10), "department_name": "Eng"},
	})
	projects := frame.New([]string{"id", "employee_id"}, []model.Record{
		{"id": int64(100), "employee_id": int64(1)},
	})

	empCounts, projCounts, err := BuildCounts(employees, departments, projects)
	require.NoError(t, err)
	assert.Equal(t, []model.Count{{Name: "Eng", Count: 1}}, empCounts)
	assert.Equal(t, []model.Count{{Name: "Eng", Count: 1}}, projCounts)
}

func TestBuildCountsMissingNameColumn(t *testing.T) {
	employees := frame.New([]string{"id", "department_id"}, []model.Record{
		{"id": int64(1), "department_id": int64(10)},
	})
	departments := frame.New([]string{"id", "title"}, []model.Record{
		{"id": int64(10), "title": "Eng"},
	})
	projects := frame.New([]string{"id", "employee_id"}, nil)

	_, _, err := BuildCounts(employees, departments, projects)
	require.Error(t, err)
	assert.Equal(t, model.ErrSchema, model.KindOf(err), "must fail as a schema error, not a raw join failure")
	assert.Contains(t, err.Error(), "department_name")
}

func TestBuildCountsIdempotent(t *testing.T) {
	employees, departments, projects := sourceFixture()

	first, firstProj, err := BuildCounts(employees, departments, projects)
	require.NoError(t, err)

	// Same frames again: the renames already happened, the guards make the
	// second pass a no-op and the counts are identical.
	second, secondProj, err := BuildCounts(employees, departments, projects)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, firstProj, secondProj)
}

// fakeSource feeds Render from in-memory frames
type fakeSource struct {
	employees, departments, projects *frame.Frame
	err                              error
	closed                           bool
}

func (f *fakeSource) FetchAll(ctx context.Context) (*frame.Frame, *frame.Frame, *frame.Frame, error) {
	if f.err != nil {
		return nil, nil, nil, f.err
	}
	return f.employees, f.departments, f.projects, nil
}

func (f *fakeSource) Close() error {
	f.closed = true
	return nil
}

func newTestService(t *testing.T, src *fakeSource, openErr error) *Service {
	t.Helper()
	require.NoError(t, store.InitHistory(filepath.Join(t.TempDir(), "history.db")))
	return &Service{
		Open: func(ctx context.Context) (Source, error) {
			if openErr != nil {
				return nil, openErr
			}
			return src, nil
		},
		Static: utils.NewStaticDir(filepath.Join(t.TempDir(), "static")),
	}
}

func TestRenderWritesBothCharts(t *testing.T) {
	employees, departments, projects := sourceFixture()
	src := &fakeSource{employees: employees, departments: departments, projects: projects}
	svc := newTestService(t, src, nil)

	summary, err := svc.Render(context.Background())
	require.NoError(t, err)
	assert.True(t, src.closed, "source must be closed after the render")

	assert.Equal(t, charts.BarChartFile, summary.BarChart)
	assert.Equal(t, charts.PieChartFile, summary.PieChart)
	assert.Equal(t, 3, summary.Employees)
	assert.Equal(t, 2, summary.Departments)
	assert.Equal(t, 3, summary.Projects)

	for _, name := range []string{charts.BarChartFile, charts.PieChartFile} {
		info, err := os.Stat(svc.Static.Path(name))
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
}

func TestRenderOverwritesPriorFiles(t *testing.T) {
	employees, departments, projects := sourceFixture()
	src := &fakeSource{employees: employees, departments: departments, projects: projects}
	svc := newTestService(t, src, nil)

	first, err := svc.Render(context.Background())
	require.NoError(t, err)

	second, err := svc.Render(context.Background())
	require.NoError(t, err)

	// Physically rewritten, logically identical
	assert.Equal(t, first.EmployeeCounts, second.EmployeeCounts)
	assert.Equal(t, first.ProjectCounts, second.ProjectCounts)
}

func TestRenderConnectionFailure(t *testing.T) {
	openErr := model.NewStageError(model.ErrConnection, errors.New("dial tcp: connection refused"))
	svc := newTestService(t, nil, openErr)

	_, err := svc.Render(context.Background())
	require.Error(t, err)
	assert.Equal(t, model.ErrConnection, model.KindOf(err))
}

func TestRenderSchemaFailureRecorded(t *testing.T) {
	employees := frame.New([]string{"id", "department_id"}, []model.Record{
		{"id": int64(1), "department_id": int64(10)},
	})
	departments := frame.New([]string{"id", "title"}, []model.Record{
		{"id": int64(10), "title": "Eng"},
	})
	projects := frame.New([]string{"id", "employee_id"}, nil)
	src := &fakeSource{employees: employees, departments: departments, projects: projects}
	svc := newTestService(t, src, nil)

	summary, err := svc.Render(context.Background())
	require.Error(t, err)
	assert.Nil(t, summary)
	assert.Equal(t, model.ErrSchema, model.KindOf(err))

	runs, err := store.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "failed", runs[0]["status"])

	errs, err := store.GetRunErrors(runs[0]["id"].(string))
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, "schema", errs[0]["kind"])
}
