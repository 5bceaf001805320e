package table

import (
	"fmt"

	"github.com/columndb/columndb/internal/dberr"
	"github.com/columndb/columndb/internal/schema"
	"github.com/columndb/columndb/internal/types"
)

// Table is the in-memory columnar representation every backend and
// operator consumes (spec §4.1 "Columnar Table"). It owns all of its
// columns and the shared string arena; no Column outlives its Table.
type Table struct {
	Name     string
	Schema   schema.Schema
	columns  []*Column
	arena    *arena
	rowCount int
}

// New creates an empty table for the given schema.
func New(name string, s schema.Schema) *Table {
	t := &Table{Name: name, Schema: s, arena: newArena()}
	t.columns = make([]*Column, len(s.Columns))
	for i, cd := range s.Columns {
		t.columns[i] = newColumn(cd.Type, cd.VectorDim)
	}
	return t
}

// RowCount returns the table's row count. The type's core invariant is
// that every column shares this exact count after every mutation.
func (t *Table) RowCount() int { return t.rowCount }

// GetColumn returns the i'th column, bounds-checked.
func (t *Table) GetColumn(i int) (*Column, error) {
	if i < 0 || i >= len(t.columns) {
		return nil, fmt.Errorf("column %d of %d: %w", i, len(t.columns), dberr.OutOfRange)
	}
	return t.columns[i], nil
}

// Get returns the typed value at (row, col), resolving string columns
// against the table's arena.
func (t *Table) Get(row, col int) (types.Value, error) {
	c, err := t.GetColumn(col)
	if err != nil {
		return types.Value{}, err
	}
	return c.Get(row, t.arena)
}

// InsertRow appends one row. Its length must equal the schema arity and
// every value's DataType (and, for vectors, dimension) must match its
// column's, per spec §4.1.
func (t *Table) InsertRow(values []types.Value) error {
	if len(values) != len(t.Schema.Columns) {
		return fmt.Errorf("row has %d values, schema has %d columns: %w", len(values), len(t.Schema.Columns), dberr.ArityMismatch)
	}
	cells := make([]columnCell, len(values))
	for i, v := range values {
		cd := t.Schema.Columns[i]
		cell, err := cellFromValue(v, cd.Type, cd.VectorDim, t.arena)
		if err != nil {
			return fmt.Errorf("column %q: %w", cd.Name, err)
		}
		cells[i] = cell
	}
	for i, cell := range cells {
		t.columns[i].append(cell)
	}
	t.rowCount++
	return nil
}

// ReorderRows rewrites every column's buffer according to perm, a
// bijection over [0, RowCount()): for all rows i, new[i] = old[perm[i]].
// This is the mutation every sort (and any other row-permuting) operator
// drives.
func (t *Table) ReorderRows(perm []int) error {
	if len(perm) != t.rowCount {
		return fmt.Errorf("permutation has %d entries, table has %d rows: %w", len(perm), t.rowCount, dberr.ArityMismatch)
	}
	seen := make([]bool, t.rowCount)
	for _, p := range perm {
		if p < 0 || p >= t.rowCount {
			return fmt.Errorf("permutation entry %d out of range [0,%d): %w", p, t.rowCount, dberr.OutOfRange)
		}
		if seen[p] {
			return fmt.Errorf("permutation entry %d repeated, not a bijection: %w", p, dberr.InvalidInput)
		}
		seen[p] = true
	}
	for _, c := range t.columns {
		c.reorder(perm)
	}
	return nil
}

// Row materializes all values in row i as a plain slice, for callers
// (e.g. the migration engine, storage backends) that need a whole row at
// once rather than column-at-a-time access.
func (t *Table) Row(i int) ([]types.Value, error) {
	out := make([]types.Value, len(t.columns))
	for col := range t.columns {
		v, err := t.Get(i, col)
		if err != nil {
			return nil, err
		}
		out[col] = v
	}
	return out, nil
}
