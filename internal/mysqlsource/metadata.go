package mysqlsource

import (
	"database/sql"
	"fmt"
	"strings"
)

// TableMetadata holds everything ingest needs to know about a source
// table before copying its rows.
type TableMetadata struct {
	Database    string
	Table       string
	Engine      string
	RowCount    int64
	DataLength  int64
	IndexLength int64
	CreateTable string
	Columns     []ColumnInfo
}

// TotalSize returns data + index size in bytes, used as an ingest
// progress hint.
func (m *TableMetadata) TotalSize() int64 {
	return m.DataLength + m.IndexLength
}

// ColumnInfo describes a single source column, enough to infer a
// columndb DataType from it.
type ColumnInfo struct {
	Name     string
	Type     string // MySQL COLUMN_TYPE, e.g. "varchar(255)", "bigint(20) unsigned"
	Nullable bool
	Position int
}

// escapeIdentifier wraps identifier in backticks, doubling any embedded
// backtick, so it is safe to interpolate into a SHOW CREATE TABLE
// statement (MySQL identifiers can't be placeholder-bound).
func escapeIdentifier(identifier string) string {
	escaped := strings.ReplaceAll(identifier, "`", "``")
	return "`" + escaped + "`"
}

// GetTableMetadata collects the metadata ingest needs: basic table
// stats, the CREATE TABLE statement, and the column list in ordinal
// position order.
func GetTableMetadata(db *sql.DB, database, table string) (*TableMetadata, error) {
	meta := &TableMetadata{Database: database, Table: table}

	err := db.QueryRow(`
		SELECT
			ENGINE,
			IFNULL(TABLE_ROWS, 0),
			IFNULL(DATA_LENGTH, 0),
			IFNULL(INDEX_LENGTH, 0)
		FROM information_schema.TABLES
		WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ?
	`, database, table).Scan(&meta.Engine, &meta.RowCount, &meta.DataLength, &meta.IndexLength)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("table %s.%s not found", database, table)
		}
		return nil, fmt.Errorf("querying table info: %w", err)
	}

	var tblName, createStmt string
	query := fmt.Sprintf("SHOW CREATE TABLE %s.%s", escapeIdentifier(database), escapeIdentifier(table))
	if err := db.QueryRow(query).Scan(&tblName, &createStmt); err == nil {
		meta.CreateTable = createStmt
	}

	meta.Columns, err = getColumns(db, database, table)
	if err != nil {
		return nil, fmt.Errorf("querying columns: %w", err)
	}

	return meta, nil
}

func getColumns(db *sql.DB, database, table string) ([]ColumnInfo, error) {
	rows, err := db.Query(`
		SELECT
			COLUMN_NAME,
			COLUMN_TYPE,
			IS_NULLABLE,
			ORDINAL_POSITION
		FROM information_schema.COLUMNS
		WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ?
		ORDER BY ORDINAL_POSITION
	`, database, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []ColumnInfo
	for rows.Next() {
		var c ColumnInfo
		var nullable string
		if err := rows.Scan(&c.Name, &c.Type, &nullable, &c.Position); err != nil {
			return nil, err
		}
		c.Nullable = nullable == "YES"
		result = append(result, c)
	}
	return result, rows.Err()
}
