package mysqlsource

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/columndb/columndb/internal/schema"
	"github.com/columndb/columndb/internal/table"
	"github.com/columndb/columndb/internal/types"
)

// SchemaFromMetadata infers a columndb Schema from a source table's
// column list, using types.ParseSQLTypeName for the recognized SQL type
// aliases and falling back to String for anything MySQL-specific that
// doesn't map cleanly (ENUM, BLOB, date/time variants besides
// TIMESTAMP/DATETIME) — ingest favors a lossy-but-complete load over
// rejecting a column outright.
func SchemaFromMetadata(meta *TableMetadata) schema.Schema {
	cols := make([]schema.ColumnDef, len(meta.Columns))
	for i, c := range meta.Columns {
		cols[i] = schema.ColumnDef{Name: c.Name, Type: mapColumnType(c.Type)}
	}
	return schema.New(cols...)
}

// mapColumnType strips MySQL's width/precision and unsigned/zerofill
// modifiers from a COLUMN_TYPE string (e.g. "bigint(20) unsigned" ->
// "BIGINT") before delegating to types.ParseSQLTypeName.
func mapColumnType(mysqlType string) types.DataType {
	base := mysqlType
	if idx := strings.IndexByte(base, '('); idx != -1 {
		base = base[:idx]
	}
	if idx := strings.IndexByte(base, ' '); idx != -1 {
		base = base[:idx]
	}
	base = strings.TrimSpace(base)

	switch strings.ToUpper(base) {
	case "TINYINT", "SMALLINT", "MEDIUMINT":
		return types.Int32
	case "INT", "INTEGER":
		return types.Int32
	case "BIGINT":
		return types.Int64
	case "FLOAT":
		return types.Float32
	case "DOUBLE", "DECIMAL", "REAL":
		return types.Float64
	}
	if dt, ok := types.ParseSQLTypeName(base); ok {
		return dt
	}
	return types.String
}

// LoadTable runs "SELECT * FROM <database>.<table>" against db and
// inserts every row into a freshly built columndb Table whose schema is
// inferred via SchemaFromMetadata. Column order in the result set is
// assumed to match meta.Columns' ordinal position, which MySQL's
// SELECT * guarantees for a table with no computed columns.
func LoadTable(db *sql.DB, meta *TableMetadata) (*table.Table, error) {
	s := SchemaFromMetadata(meta)
	t := table.New(meta.Table, s)

	query := fmt.Sprintf("SELECT * FROM %s.%s", escapeIdentifier(meta.Database), escapeIdentifier(meta.Table))
	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("querying rows for %s.%s: %w", meta.Database, meta.Table, err)
	}
	defer rows.Close()

	scanBuf := make([]sql.NullString, len(meta.Columns))
	scanArgs := make([]any, len(scanBuf))
	for i := range scanBuf {
		scanArgs[i] = &scanBuf[i]
	}

	for rows.Next() {
		if err := rows.Scan(scanArgs...); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		values := make([]types.Value, len(s.Columns))
		for i, cd := range s.Columns {
			values[i] = convertCell(scanBuf[i], cd.Type)
		}
		if err := t.InsertRow(values); err != nil {
			return nil, fmt.Errorf("inserting row into %q: %w", meta.Table, err)
		}
	}
	return t, rows.Err()
}

// convertCell converts one scanned MySQL text cell into a typed Value.
// A NULL or unparseable numeric cell degrades to that type's zero value
// rather than aborting the whole load.
func convertCell(cell sql.NullString, typ types.DataType) types.Value {
	text := cell.String
	switch typ {
	case types.Int32:
		return types.Int32Value(int32(parseIntOrZero(text)))
	case types.Int64:
		return types.Int64Value(parseIntOrZero(text))
	case types.Float32:
		return types.Float32Value(float32(parseFloatOrZero(text)))
	case types.Float64:
		return types.Float64Value(parseFloatOrZero(text))
	case types.Boolean:
		return types.BoolValue(text == "1" || strings.EqualFold(text, "true"))
	case types.Timestamp:
		return types.TimestampValue(parseIntOrZero(text))
	default:
		return types.StringValue(text)
	}
}

func parseIntOrZero(s string) int64 {
	var v int64
	_, err := fmt.Sscanf(s, "%d", &v)
	if err != nil {
		return 0
	}
	return v
}

func parseFloatOrZero(s string) float64 {
	var v float64
	_, err := fmt.Sscanf(s, "%g", &v)
	if err != nil {
		return 0
	}
	return v
}
