package mysqlsource

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/columndb/columndb/internal/types"
)

func TestMapColumnType(t *testing.T) {
	cases := map[string]types.DataType{
		"int(11)":            types.Int32,
		"tinyint(1)":          types.Int32,
		"bigint(20) unsigned": types.Int64,
		"varchar(255)":        types.String,
		"double":              types.Float64,
		"decimal(10,2)":       types.Float64,
		"timestamp":           types.Timestamp,
		"datetime":            types.Timestamp,
		"enum('a','b')":       types.String,
		"blob":                types.String,
	}
	for input, want := range cases {
		require.Equal(t, want, mapColumnType(input), "mapColumnType(%q)", input)
	}
}

func TestSchemaFromMetadata(t *testing.T) {
	meta := &TableMetadata{
		Table: "users",
		Columns: []ColumnInfo{
			{Name: "id", Type: "bigint(20)"},
			{Name: "name", Type: "varchar(255)"},
		},
	}
	s := SchemaFromMetadata(meta)
	require.Equal(t, 2, s.Arity())
	require.Equal(t, types.Int64, s.Columns[0].Type)
	require.Equal(t, types.String, s.Columns[1].Type)
}

func TestConvertCellHandlesNullAsZeroValue(t *testing.T) {
	null := sql.NullString{Valid: false}
	v := convertCell(null, types.Int64)
	require.Equal(t, int64(0), v.AsInt64())
}

func TestConvertCellParsesTypedText(t *testing.T) {
	require.Equal(t, int32(42), convertCell(sql.NullString{String: "42", Valid: true}, types.Int32).AsInt32())
	require.Equal(t, float64(3.5), convertCell(sql.NullString{String: "3.5", Valid: true}, types.Float64).AsFloat64())
	require.True(t, convertCell(sql.NullString{String: "1", Valid: true}, types.Boolean).AsBool())
	require.Equal(t, "hello", convertCell(sql.NullString{String: "hello", Valid: true}, types.String).AsString())
}
