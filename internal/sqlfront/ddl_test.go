package sqlfront

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/columndb/columndb/internal/dberr"
	"github.com/columndb/columndb/internal/types"
)

func TestParseCreateTableBasicColumns(t *testing.T) {
	name, s, err := ParseCreateTable(`CREATE TABLE users (id BIGINT, name VARCHAR(255), active BOOLEAN)`)
	require.NoError(t, err)
	require.Equal(t, "users", name)
	require.Equal(t, 3, s.Arity())
	require.Equal(t, types.Int64, s.Columns[0].Type)
	require.Equal(t, types.String, s.Columns[1].Type)
	require.Equal(t, types.Boolean, s.Columns[2].Type)
}

func TestParseCreateTableRejectsNonCreateTableStatement(t *testing.T) {
	_, _, err := ParseCreateTable(`SELECT * FROM users`)
	require.ErrorIs(t, err, dberr.Unsupported)
}

func TestParseCreateTableRejectsMalformedSQL(t *testing.T) {
	_, _, err := ParseCreateTable(`CREATE TABLE (((`)
	require.ErrorIs(t, err, dberr.InvalidInput)
}
