package store

import (
	"context"
	"fmt"

	"dept-dashboard/internal/frame"
	"dept-dashboard/internal/model"
	"dept-dashboard/pkg/utils"

	"github.com/jmoiron/sqlx"

	_ "github.com/go-sql-driver/mysql"
)

// Table names are fixed; the schema is an external precondition.
const (
	TableEmployees   = "employees"
	TableDepartments = "departments"
	TableProjects    = "project_assignments"
)

// Source is an open connection to the relational database the dashboard
// reads from. One is opened per render and closed when the render finishes.
type Source struct {
	db *sqlx.DB
}

// OpenSource connects to the source database and verifies the connection
// with a ping. Failures here are connection errors: unreachable host, bad
// credentials, unknown schema.
func OpenSource(ctx context.Context, dsn string) (*Source, error) {
	db, err := sqlx.ConnectContext(ctx, "mysql", dsn)
	if err != nil {
		return nil, model.NewStageError(model.ErrConnection, fmt.Errorf("failed to connect to source database: %w", err))
	}
	return &Source{db: db}, nil
}

// Close releases the connection
func (s *Source) Close() error {
	return s.db.Close()
}

// FetchTable reads an entire table into a frame. No filtering and no
// pagination: the whole result set is materialized, as the dashboard
// recomputes everything from scratch on every request.
func (s *Source) FetchTable(ctx context.Context, table string) (*frame.Frame, error) {
	rows, err := s.db.QueryxContext(ctx, fmt.Sprintf("SELECT * FROM %s", table))
	if err != nil {
		return nil, model.NewStageError(model.ErrQuery, fmt.Errorf("failed to query table %s: %w", table, err))
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, model.NewStageError(model.ErrQuery, fmt.Errorf("failed to read columns of %s: %w", table, err))
	}

	var records []model.Record
	for rows.Next() {
		raw := make(map[string]interface{}, len(cols))
		if err := rows.MapScan(raw); err != nil {
			return nil, model.NewStageError(model.ErrQuery, fmt.Errorf("failed to scan row of %s: %w", table, err))
		}
		rec := make(model.Record, len(raw))
		for k, v := range raw {
			rec[k] = utils.NormalizeCell(v)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, model.NewStageError(model.ErrQuery, fmt.Errorf("failed reading rows of %s: %w", table, err))
	}

	return frame.New(cols, records), nil
}

// FetchAll loads the three source tables
func (s *Source) FetchAll(ctx context.Context) (employees, departments, projects *frame.Frame, err error) {
	if employees, err = s.FetchTable(ctx, TableEmployees); err != nil {
		return nil, nil, nil, err
	}
	if departments, err = s.FetchTable(ctx, TableDepartments); err != nil {
		return nil, nil, nil, err
	}
	if projects, err = s.FetchTable(ctx, TableProjects); err != nil {
		return nil, nil, nil, err
	}
	return employees, departments, projects, nil
}
