// Package sqlfront adapts vitess.io/vitess/go/vt/sqlparser's real SQL
// grammar to columndb's schema model, narrowed to exactly one statement
// shape: CREATE TABLE -> schema.Schema. It deliberately does not parse
// SELECT/DML or classify ALTER TABLE sub-operations the way the teacher's
// internal/parser did — internal/workload keeps its own independent
// substring-scan heuristics for query classification, since that
// component's contract is explicitly "not a parser".
package sqlfront

import (
	"fmt"
	"strings"
	"sync"

	"vitess.io/vitess/go/vt/sqlparser"

	"github.com/columndb/columndb/internal/dberr"
	"github.com/columndb/columndb/internal/schema"
	"github.com/columndb/columndb/internal/types"
)

var (
	parserOnce      sync.Once
	globalParser    *sqlparser.Parser
	globalParserErr error
)

func getParser() (*sqlparser.Parser, error) {
	parserOnce.Do(func() {
		globalParser, globalParserErr = sqlparser.New(sqlparser.Options{})
	})
	return globalParser, globalParserErr
}

// ParseCreateTable parses a single CREATE TABLE statement and returns its
// table name and inferred Schema. Any other statement type, or a type
// this package can't map, surfaces dberr.Unsupported/dberr.InvalidInput
// rather than guessing.
func ParseCreateTable(sql string) (tableName string, s schema.Schema, err error) {
	p, err := getParser()
	if err != nil {
		return "", schema.Schema{}, fmt.Errorf("creating SQL parser: %w", err)
	}

	stmt, err := p.Parse(strings.TrimSpace(strings.TrimRight(strings.TrimSpace(sql), ";")))
	if err != nil {
		return "", schema.Schema{}, fmt.Errorf("parsing CREATE TABLE: %w: %w", err, dberr.InvalidInput)
	}

	create, ok := stmt.(*sqlparser.CreateTable)
	if !ok {
		return "", schema.Schema{}, fmt.Errorf("sqlfront only accepts CREATE TABLE statements: %w", dberr.Unsupported)
	}

	tableName = create.Table.Name.String()
	cols := make([]schema.ColumnDef, 0, len(create.TableSpec.Columns))
	for _, col := range create.TableSpec.Columns {
		cd, err := columnDefFrom(col)
		if err != nil {
			return "", schema.Schema{}, err
		}
		cols = append(cols, cd)
	}
	return tableName, schema.New(cols...), nil
}

func columnDefFrom(col *sqlparser.ColumnDefinition) (schema.ColumnDef, error) {
	name := col.Name.String()
	dt, vectorDim, err := mapColumnType(col.Type)
	if err != nil {
		return schema.ColumnDef{}, fmt.Errorf("column %q: %w", name, err)
	}
	return schema.ColumnDef{Name: name, Type: dt, VectorDim: vectorDim}, nil
}

// mapColumnType maps a vitess ColumnType to a columndb DataType, using
// types.ParseSQLTypeName for any other base keyword. The returned vector
// dimension is always 0; no vector(N) column form is recognized. An
// unmapped type is Unsupported rather than silently coerced, since DDL
// ingestion — unlike the MySQL row loader — fails loudly on a type it
// cannot represent.
func mapColumnType(ct *sqlparser.ColumnType) (types.DataType, int, error) {
	if ct == nil {
		return 0, 0, fmt.Errorf("column has no type: %w", dberr.InvalidInput)
	}
	keyword := strings.ToUpper(ct.Type)
	switch keyword {
	case "TINYINT", "SMALLINT", "MEDIUMINT", "INT", "INTEGER":
		return types.Int32, 0, nil
	case "BIGINT":
		return types.Int64, 0, nil
	case "FLOAT":
		return types.Float32, 0, nil
	case "DOUBLE", "DECIMAL", "REAL":
		return types.Float64, 0, nil
	case "BOOL", "BOOLEAN":
		return types.Boolean, 0, nil
	case "TIMESTAMP", "DATETIME":
		return types.Timestamp, 0, nil
	case "CHAR", "VARCHAR", "TEXT", "TINYTEXT", "MEDIUMTEXT", "LONGTEXT":
		return types.String, 0, nil
	}
	if dt, ok := types.ParseSQLTypeName(keyword); ok {
		return dt, 0, nil
	}
	return 0, 0, fmt.Errorf("column type %q has no columndb mapping: %w", ct.Type, dberr.Unsupported)
}
