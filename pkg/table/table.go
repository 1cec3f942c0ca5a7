// Package table turns loop rows or view records into a table with named
// columns. It is what you want for writing a spreadsheet or pulling
// out numeric columns for plotting.
package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/andrew-torda/matrix"

	"github.com/andrew-torda/nmrstar/pkg/star"
)

// Errors from building tables and getting columns out of them.
var (
	ErrRagged = errors.New("rows do not all have the same columns")
	ErrNoRows = errors.New("table has no rows")
	ErrNoCol  = errors.New("no such column")
	ErrNotNum = errors.New("column value is not a number")
)

// Recorder is anything that can describe itself as a row. The records
// from package views all are.
type Recorder interface {
	Columns() []string
	Record() []string
}

// Table has headings and each entry of Vals is one row, in the
// same order as Names.
type Table struct {
	Names []string
	Vals  [][]string
	ndx   map[string]int
}

func newTable(names []string) *Table {
	t := &Table{Names: names, ndx: make(map[string]int, len(names))}
	for i, n := range names {
		t.ndx[n] = i
	}
	return t
}

// FromRows builds a table from loop rows. Give the column names
// if you care about their order. Without them, the first row's keys
// are used, sorted. Every row must have exactly those columns.
func FromRows(rows []star.Row, cols ...string) (*Table, error) {
	if len(cols) == 0 && len(rows) > 0 {
		for k := range rows[0] {
			cols = append(cols, k)
		}
		sort.Strings(cols)
	}
	t := newTable(cols)
	t.Vals = make([][]string, 0, len(rows))
	for i, r := range rows {
		if len(r) != len(cols) {
			return nil, fmt.Errorf("row %d has %d columns, wanted %d: %w", i, len(r), len(cols), ErrRagged)
		}
		vals := make([]string, len(cols))
		for j, c := range cols {
			v, ok := r[c]
			if !ok {
				return nil, fmt.Errorf("row %d has no %s: %w", i, c, ErrRagged)
			}
			vals[j] = v
		}
		t.Vals = append(t.Vals, vals)
	}
	return t, nil
}

// FromRecords builds a table from view records. The column names
// come from the first record, or from zero if there are no records.
func FromRecords[R Recorder](recs []R) *Table {
	var zero R
	t := newTable(zero.Columns())
	t.Vals = make([][]string, 0, len(recs))
	for _, r := range recs {
		t.Vals = append(t.Vals, r.Record())
	}
	return t
}

// Len is the number of rows
func (t *Table) Len() int { return len(t.Vals) }

// Column returns a copy of one column.
func (t *Table) Column(name string) ([]string, error) {
	j, ok := t.ndx[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrNoCol)
	}
	ret := make([]string, len(t.Vals))
	for i, row := range t.Vals {
		ret[i] = row[j]
	}
	return ret, nil
}

// Floats converts the named columns to numbers. Row i of the matrix is
// row i of the table, column j is cols[j].
func (t *Table) Floats(cols ...string) (*matrix.FMatrix2d, error) {
	if len(t.Vals) == 0 { // matrix cannot cope with zero rows
		return nil, ErrNoRows
	}
	jj := make([]int, len(cols))
	for j, c := range cols {
		var ok bool
		if jj[j], ok = t.ndx[c]; !ok {
			return nil, fmt.Errorf("%s: %w", c, ErrNoCol)
		}
	}
	mat := matrix.NewFMatrix2d(len(t.Vals), len(cols))
	for i, row := range t.Vals {
		for j, src := range jj {
			f, err := strconv.ParseFloat(strings.TrimSpace(row[src]), 32)
			if err != nil {
				return nil, fmt.Errorf("row %d, column %s, %q: %w", i, cols[j], row[src], ErrNotNum)
			}
			mat.Mat[i][j] = float32(f)
		}
	}
	return mat, nil
}

// WriteCSV writes a header line and then the rows.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Names); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Vals); err != nil { // WriteAll flushes
		return err
	}
	return cw.Error()
}
