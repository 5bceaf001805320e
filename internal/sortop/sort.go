// Package sortop implements the stable multi-key ORDER BY operator (spec
// §4.3). It builds an index permutation over a table's rows and commits
// it through table.ReorderRows, the same "sort the index, then permute
// storage" shape SnellerInc-sneller's vm sort operator uses, substituting
// golang.org/x/exp/slices.SortStableFunc as the stable sort substrate.
package sortop

import (
	"fmt"
	"math"

	"golang.org/x/exp/slices"

	"github.com/columndb/columndb/internal/dberr"
	"github.com/columndb/columndb/internal/table"
	"github.com/columndb/columndb/internal/types"
)

// Direction is one ORDER BY key's sort direction.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// Key is one (column, direction) pair in an ORDER BY list.
type Key struct {
	Column    string
	Direction Direction
}

// Sort stably reorders t's rows in place according to keys, left to
// right: ties on an earlier key fall through to the next, and any
// remaining tie falls back to original row order (stability). A key
// naming a column not present in t's schema contributes a silent "equal"
// and the comparator moves to the next key, per spec §4.3 — this is
// deliberate: aborting a whole sort over one mistyped ORDER BY column
// would be worse than ignoring it.
func Sort(t *table.Table, keys []Key) error {
	if len(keys) == 0 {
		return fmt.Errorf("ORDER BY requires at least one key: %w", dberr.InvalidInput)
	}

	colIndex := make([]int, len(keys))
	for i, k := range keys {
		colIndex[i] = t.Schema.FindColumn(k.Column)
	}

	n := t.RowCount()
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}

	var sortErr error
	slices.SortStableFunc(perm, func(a, b int) int {
		for i, k := range keys {
			idx := colIndex[i]
			if idx < 0 {
				continue // missing column: silent equal, try next key
			}
			va, err := t.Get(a, idx)
			if err != nil {
				sortErr = err
				return 0
			}
			vb, err := t.Get(b, idx)
			if err != nil {
				sortErr = err
				return 0
			}
			cmp := types.Compare(va, vb)
			if cmp == 0 {
				continue
			}
			// NaN is maximal in types.Compare's ascending sense and must
			// stay last regardless of ASC/DESC, so only non-NaN operands
			// get their comparison flipped for Descending.
			if k.Direction == Descending && !isNaNOperand(va) && !isNaNOperand(vb) {
				cmp = -cmp
			}
			return cmp
		}
		return 0
	})
	if sortErr != nil {
		return sortErr
	}

	return t.ReorderRows(perm)
}

// isNaNOperand reports whether v is a floating-point NaN, the only value
// for which types.Compare's result must not be negated by direction.
func isNaNOperand(v types.Value) bool {
	switch v.Tag {
	case types.Float32:
		return math.IsNaN(float64(v.AsFloat32()))
	case types.Float64:
		return math.IsNaN(v.AsFloat64())
	default:
		return false
	}
}
