package table

import (
	"errors"
	"testing"

	"github.com/columndb/columndb/internal/dberr"
	"github.com/columndb/columndb/internal/schema"
	"github.com/columndb/columndb/internal/types"
)

func deptSalarySchema() schema.Schema {
	return schema.New(
		schema.ColumnDef{Name: "dept", Type: types.String},
		schema.ColumnDef{Name: "salary", Type: types.Int64},
	)
}

func TestInsertRowAndGet(t *testing.T) {
	tbl := New("employees", deptSalarySchema())
	if err := tbl.InsertRow([]types.Value{types.StringValue("Sales"), types.Int64Value(50000)}); err != nil {
		t.Fatal(err)
	}
	v, err := tbl.Get(0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if v.AsString() != "Sales" {
		t.Fatalf("got %q", v.AsString())
	}
}

func TestInsertRowArityMismatch(t *testing.T) {
	tbl := New("employees", deptSalarySchema())
	err := tbl.InsertRow([]types.Value{types.StringValue("Sales")})
	if !errors.Is(err, dberr.ArityMismatch) {
		t.Fatalf("want ArityMismatch, got %v", err)
	}
}

func TestInsertRowTypeMismatch(t *testing.T) {
	tbl := New("employees", deptSalarySchema())
	err := tbl.InsertRow([]types.Value{types.StringValue("Sales"), types.StringValue("not a number")})
	if !errors.Is(err, dberr.TypeMismatch) {
		t.Fatalf("want TypeMismatch, got %v", err)
	}
}

func TestGetOutOfRange(t *testing.T) {
	tbl := New("employees", deptSalarySchema())
	_, err := tbl.Get(0, 0)
	if !errors.Is(err, dberr.OutOfRange) {
		t.Fatalf("want OutOfRange, got %v", err)
	}
}

func TestReorderRowsPreservesEqualRowCount(t *testing.T) {
	tbl := New("employees", deptSalarySchema())
	rows := [][2]any{
		{"Sales", int64(50000)},
		{"Engineering", int64(80000)},
		{"Sales", int64(60000)},
	}
	for _, r := range rows {
		tbl.InsertRow([]types.Value{types.StringValue(r[0].(string)), types.Int64Value(r[1].(int64))})
	}
	if err := tbl.ReorderRows([]int{2, 0, 1}); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < tbl.RowCount(); i++ {
		for col := range tbl.Schema.Columns {
			c, _ := tbl.GetColumn(col)
			if c.RowCount() != tbl.RowCount() {
				t.Fatalf("column %d row count %d != table row count %d", col, c.RowCount(), tbl.RowCount())
			}
		}
	}
	v, _ := tbl.Get(0, 0)
	if v.AsString() != "Sales" {
		t.Fatalf("expected row 0 to be the old row 2 (Sales/60000), got %q", v.AsString())
	}
}

func TestReorderRowsRejectsNonBijection(t *testing.T) {
	tbl := New("employees", deptSalarySchema())
	tbl.InsertRow([]types.Value{types.StringValue("A"), types.Int64Value(1)})
	tbl.InsertRow([]types.Value{types.StringValue("B"), types.Int64Value(2)})
	if err := tbl.ReorderRows([]int{0, 0}); err == nil {
		t.Fatal("expected error for repeated permutation entry")
	}
}

func TestVectorDimensionMismatch(t *testing.T) {
	s := schema.New(schema.ColumnDef{Name: "v", Type: types.Vector, VectorDim: 3})
	tbl := New("vecs", s)
	err := tbl.InsertRow([]types.Value{types.VectorValue([]float32{1, 2})})
	if !errors.Is(err, dberr.TypeMismatch) {
		t.Fatalf("want TypeMismatch for wrong vector dimension, got %v", err)
	}
}
