package sortop

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/columndb/columndb/internal/schema"
	"github.com/columndb/columndb/internal/table"
	"github.com/columndb/columndb/internal/types"
)

func deptSalaryTable(t *testing.T) *table.Table {
	t.Helper()
	s := schema.New(
		schema.ColumnDef{Name: "dept", Type: types.String},
		schema.ColumnDef{Name: "salary", Type: types.Float64},
	)
	tbl := table.New("employees", s)
	rows := [][2]any{
		{"eng", 90000.0},
		{"eng", 70000.0},
		{"sales", 60000.0},
		{"sales", math.NaN()},
	}
	for _, r := range rows {
		require.NoError(t, tbl.InsertRow([]types.Value{
			types.StringValue(r[0].(string)),
			types.Float64Value(r[1].(float64)),
		}))
	}
	return tbl
}

func TestSortAscendingBySingleKey(t *testing.T) {
	tbl := deptSalaryTable(t)
	require.NoError(t, Sort(tbl, []Key{{Column: "salary", Direction: Ascending}}))
	for i := 0; i < tbl.RowCount()-1; i++ {
		a, _ := tbl.Get(i, 1)
		b, _ := tbl.Get(i+1, 1)
		require.LessOrEqual(t, types.Compare(a, b), 0)
	}
}

func TestSortNaNSortsLastRegardlessOfDirection(t *testing.T) {
	for _, dir := range []Direction{Ascending, Descending} {
		tbl := deptSalaryTable(t)
		require.NoError(t, Sort(tbl, []Key{{Column: "salary", Direction: dir}}))
		last, _ := tbl.Get(tbl.RowCount()-1, 1)
		require.True(t, math.IsNaN(last.AsFloat64()))
	}
}

func TestSortMultiKeyFallsThroughOnTie(t *testing.T) {
	tbl := deptSalaryTable(t)
	require.NoError(t, Sort(tbl, []Key{
		{Column: "dept", Direction: Ascending},
		{Column: "salary", Direction: Ascending},
	}))
	dept0, _ := tbl.Get(0, 0)
	dept1, _ := tbl.Get(1, 0)
	require.Equal(t, "eng", dept0.AsString())
	require.Equal(t, "eng", dept1.AsString())
	sal0, _ := tbl.Get(0, 1)
	sal1, _ := tbl.Get(1, 1)
	require.Equal(t, 70000.0, sal0.AsFloat64())
	require.Equal(t, 90000.0, sal1.AsFloat64())
}

func TestSortMissingColumnIsSilentEqual(t *testing.T) {
	tbl := deptSalaryTable(t)
	err := Sort(tbl, []Key{{Column: "does_not_exist", Direction: Ascending}})
	require.NoError(t, err)
	require.Equal(t, 4, tbl.RowCount())
}

func TestSortRejectsEmptyKeyList(t *testing.T) {
	tbl := deptSalaryTable(t)
	err := Sort(tbl, nil)
	require.Error(t, err)
}
