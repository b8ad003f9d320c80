// Package survey provides support for loading health survey data files into
// in-memory tables that the analysis examples can work with.
package survey

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Column represents a single measured variable across all subjects. Missing
// marks the positions where no value was recorded.
type Column struct {
	Name    string
	Data    []float64
	Missing []bool
}

// Table represents a set of variables observed on the same subjects. A table
// is never mutated after construction. Filtering and selection return new
// tables.
type Table struct {
	Columns []Column
}

// Rows returns the number of subjects in the table.
func (t Table) Rows() int {
	if len(t.Columns) == 0 {
		return 0
	}

	return len(t.Columns[0].Data)
}

// Names returns the variable names in column order.
func (t Table) Names() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}

	return names
}

// Column returns the named column.
func (t Table) Column(name string) (Column, error) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, nil
		}
	}

	return Column{}, fmt.Errorf("column %q not in table", name)
}

// Select returns a new table holding the named columns in the given order.
func (t Table) Select(names ...string) (Table, error) {
	cols := make([]Column, len(names))
	for i, name := range names {
		c, err := t.Column(name)
		if err != nil {
			return Table{}, fmt.Errorf("select: %w", err)
		}
		cols[i] = c
	}

	return Table{Columns: cols}, nil
}

// DropMissing returns the complete cases: every row that has a recorded,
// finite value in all columns. Rows with any missing value are dropped.
func (t Table) DropMissing() (Table, error) {
	n := t.Rows()

	keep := make([]bool, n)
	kept := 0

	for i := 0; i < n; i++ {
		keep[i] = true
		for _, c := range t.Columns {
			if c.Missing[i] || math.IsNaN(c.Data[i]) {
				keep[i] = false
				break
			}
		}
		if keep[i] {
			kept++
		}
	}

	if kept == 0 {
		return Table{}, fmt.Errorf("no complete cases among %d rows", n)
	}

	cols := make([]Column, len(t.Columns))
	for j, c := range t.Columns {
		nc := Column{
			Name:    c.Name,
			Data:    make([]float64, 0, kept),
			Missing: make([]bool, kept),
		}
		for i := 0; i < n; i++ {
			if keep[i] {
				nc.Data = append(nc.Data, c.Data[i])
			}
		}
		cols[j] = nc
	}

	return Table{Columns: cols}, nil
}

// Matrix returns the table as a dense matrix with one row per subject and
// one column per variable.
func (t Table) Matrix() *mat.Dense {
	n := t.Rows()
	p := len(t.Columns)

	m := mat.NewDense(n, p, nil)
	for j, c := range t.Columns {
		for i := 0; i < n; i++ {
			m.Set(i, j, c.Data[i])
		}
	}

	return m
}
