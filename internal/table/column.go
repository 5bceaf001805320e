package table

import (
	"fmt"

	"github.com/columndb/columndb/internal/dberr"
	"github.com/columndb/columndb/internal/types"
)

// stringRef is the arena offset+length pair stored in-buffer for String
// columns, per spec §3 ("Column"): "for string columns the in-buffer
// entries are arena offsets and remain valid for the column's lifetime."
type stringRef struct {
	offset int
	length int
}

// Column is a fixed-stride column buffer: every row occupies one stride
// (one typed Go value, or one stringRef for String columns whose bytes
// live in the owning Table's arena). RowCount() always equals the row
// count of every other column in the same Table.
type Column struct {
	typ  types.DataType
	dim  int // vector dimension, 0 for non-vector columns
	rows []columnCell
}

// columnCell holds exactly one stride's worth of data, tagged by the
// column's own type (not per-cell, since a Column is homogeneous).
type columnCell struct {
	i   int64
	f   float64
	ref stringRef
	vec []float32
	any any
}

func newColumn(typ types.DataType, dim int) *Column {
	return &Column{typ: typ, dim: dim}
}

// RowCount returns the number of strides currently stored.
func (c *Column) RowCount() int { return len(c.rows) }

// Type returns the column's DataType.
func (c *Column) Type() types.DataType { return c.typ }

// Get returns the typed Value at row, bounds-checked.
func (c *Column) Get(row int, arena *arena) (types.Value, error) {
	if row < 0 || row >= len(c.rows) {
		return types.Value{}, fmt.Errorf("row %d of %d: %w", row, len(c.rows), dberr.OutOfRange)
	}
	cell := c.rows[row]
	switch c.typ {
	case types.Int32:
		return types.Int32Value(int32(cell.i)), nil
	case types.Int64:
		return types.Int64Value(cell.i), nil
	case types.Float32:
		return types.Float32Value(float32(cell.f)), nil
	case types.Float64:
		return types.Float64Value(cell.f), nil
	case types.Boolean:
		return types.BoolValue(cell.i != 0), nil
	case types.Timestamp:
		return types.TimestampValue(cell.i), nil
	case types.Vector:
		return types.VectorValue(cell.vec), nil
	case types.String:
		return types.StringValue(arena.slice(cell.ref)), nil
	case types.Custom:
		return types.CustomValue(cell.any), nil
	case types.Exception:
		return types.ExceptionValue(cell.any), nil
	default:
		return types.Value{}, fmt.Errorf("column type %v: %w", c.typ, dberr.TypeMismatch)
	}
}

func cellFromValue(v types.Value, typ types.DataType, dim int, arena *arena) (columnCell, error) {
	if v.Tag != typ {
		return columnCell{}, fmt.Errorf("value tag %v does not match column type %v: %w", v.Tag, typ, dberr.TypeMismatch)
	}
	switch typ {
	case types.Int32:
		return columnCell{i: int64(v.AsInt32())}, nil
	case types.Int64:
		return columnCell{i: v.AsInt64()}, nil
	case types.Float32:
		return columnCell{f: float64(v.AsFloat32())}, nil
	case types.Float64:
		return columnCell{f: v.AsFloat64()}, nil
	case types.Boolean:
		i := int64(0)
		if v.AsBool() {
			i = 1
		}
		return columnCell{i: i}, nil
	case types.Timestamp:
		return columnCell{i: v.AsTimestamp()}, nil
	case types.Vector:
		vec := v.AsVector()
		if dim > 0 && len(vec) != dim {
			return columnCell{}, fmt.Errorf("vector dimension %d does not match column dimension %d: %w", len(vec), dim, dberr.TypeMismatch)
		}
		return columnCell{vec: append([]float32(nil), vec...)}, nil
	case types.String:
		ref := arena.intern(v.AsString())
		return columnCell{ref: ref}, nil
	case types.Custom:
		return columnCell{any: v.AsCustom()}, nil
	case types.Exception:
		return columnCell{any: v.AsCustom()}, nil
	default:
		return columnCell{}, fmt.Errorf("unsupported column type %v: %w", typ, dberr.TypeMismatch)
	}
}

func (c *Column) append(cell columnCell) {
	c.rows = append(c.rows, cell)
}

// reorder rewrites the column's rows in the order given by perm, so that
// new[i] = old[perm[i]], per spec §4.1 ReorderRows postcondition.
func (c *Column) reorder(perm []int) {
	next := make([]columnCell, len(perm))
	for i, p := range perm {
		next[i] = c.rows[p]
	}
	c.rows = next
}
