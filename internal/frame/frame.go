package frame

import (
	"sort"

	"dept-dashboard/internal/model"
	"dept-dashboard/pkg/utils"
)

// Frame is an ordered-column, in-memory table. Rows are schema-agnostic
// records keyed by column name; a column may be absent from a row, which is
// how unmatched join cells are represented.
type Frame struct {
	cols []string
	rows []model.Record
}

// New builds a frame from a column list and rows. The column list owns the
// display order; rows may carry a subset of the columns.
func New(cols []string, rows []model.Record) *Frame {
	return &Frame{cols: cols, rows: rows}
}

// Columns returns the column names in order.
func (f *Frame) Columns() []string {
	return f.cols
}

// Rows returns the underlying records.
func (f *Frame) Rows() []model.Record {
	return f.rows
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return len(f.rows)
}

// HasColumn reports whether the frame carries the named column.
func (f *Frame) HasColumn(name string) bool {
	for _, c := range f.cols {
		if c == name {
			return true
		}
	}
	return false
}

// RenameColumn renames old to new in place. The rename is skipped when old
// is absent or when new already exists, so applying it twice (or to a table
// that already uses the foreign-key name) is safe.
func (f *Frame) RenameColumn(old, new string) {
	if !f.HasColumn(old) || f.HasColumn(new) {
		return
	}
	for i, c := range f.cols {
		if c == old {
			f.cols[i] = new
			break
		}
	}
	for _, row := range f.rows {
		if v, ok := row[old]; ok {
			row[new] = v
			delete(row, old)
		}
	}
}

// LeftJoin joins f with right on the named key column, keeping every row of
// f. Right-side keys are expected unique; when several right rows share a
// key the first one wins. Rows of f with no match (or with a missing/nil
// key) keep their own columns and simply lack the right-side ones.
func (f *Frame) LeftJoin(right *Frame, key string) *Frame {
	index := make(map[string]model.Record, right.Len())
	for _, row := range right.rows {
		v, ok := row[key]
		if !ok || v == nil {
			continue
		}
		k := utils.KeyString(v)
		if _, seen := index[k]; !seen {
			index[k] = row
		}
	}

	cols := make([]string, 0, len(f.cols)+len(right.cols))
	cols = append(cols, f.cols...)
	for _, c := range right.cols {
		if !f.HasColumn(c) {
			cols = append(cols, c)
		}
	}

	joined := make([]model.Record, 0, f.Len())
	for _, row := range f.rows {
		out := make(model.Record, len(row))
		for k, v := range row {
			out[k] = v
		}
		if v, ok := row[key]; ok && v != nil {
			if match, ok := index[utils.KeyString(v)]; ok {
				for k, mv := range match {
					if _, exists := out[k]; !exists {
						out[k] = mv
					}
				}
			}
		}
		joined = append(joined, out)
	}
	return New(cols, joined)
}

// Fill assigns value to every row where col is missing or nil, registering
// the column if the frame did not carry it yet.
func (f *Frame) Fill(col string, value interface{}) {
	if !f.HasColumn(col) {
		f.cols = append(f.cols, col)
	}
	for _, row := range f.rows {
		if v, ok := row[col]; !ok || v == nil {
			row[col] = value
		}
	}
}

// ValueCounts groups rows by the value of col and counts rows per group.
// Rows where col is missing or nil are skipped. Results are ordered by
// descending count, ties by ascending name, so repeated runs over unchanged
// data produce identical charts.
func (f *Frame) ValueCounts(col string) []model.Count {
	counts := make(map[string]int)
	for _, row := range f.rows {
		v, ok := row[col]
		if !ok || v == nil {
			continue
		}
		counts[utils.KeyString(v)]++
	}

	out := make([]model.Count, 0, len(counts))
	for name, n := range counts {
		out = append(out, model.Count{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}
