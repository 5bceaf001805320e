// Package schema holds the ordered column definitions that describe a
// Table's layout (spec §4.1 "Schema", "ColumnDef").
package schema

import (
	"strings"

	"github.com/columndb/columndb/internal/types"
)

// ColumnDef describes one column: its name, DataType, and (for Vector
// columns) fixed dimension.
type ColumnDef struct {
	Name      string
	Type      types.DataType
	VectorDim int
}

// Schema is an ordered sequence of ColumnDef. Names are unique within a
// schema, case-sensitive as stored but looked up case-insensitively.
type Schema struct {
	Columns []ColumnDef
}

// New builds a Schema, the same "table of named/typed fields" shape the
// teacher uses for TableMetadata.Columns, generalized to own typed data.
func New(columns ...ColumnDef) Schema {
	return Schema{Columns: append([]ColumnDef(nil), columns...)}
}

// FindColumn returns the index of the column named name (case-insensitive),
// or -1 if no such column exists.
func (s Schema) FindColumn(name string) int {
	for i, c := range s.Columns {
		if strings.EqualFold(c.Name, name) {
			return i
		}
	}
	return -1
}

// Arity returns the number of columns in the schema.
func (s Schema) Arity() int { return len(s.Columns) }
