package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/columndb/columndb/internal/checkpoint"
	"github.com/columndb/columndb/internal/schema"
	"github.com/columndb/columndb/internal/sortop"
	"github.com/columndb/columndb/internal/storageengine"
	"github.com/columndb/columndb/internal/table"
	"github.com/columndb/columndb/internal/types"
)

func TestParseKindAcceptsKnownKinds(t *testing.T) {
	for _, s := range []string{"memory", "column", "row", "graph", "audit"} {
		k, err := parseKind(s)
		require.NoError(t, err)
		require.Equal(t, storageengine.Kind(s), k)
	}
}

func TestParseKindRejectsUnknown(t *testing.T) {
	_, err := parseKind("bogus")
	require.Error(t, err)
}

func TestEngineForKindRegistersTable(t *testing.T) {
	s := schema.New(schema.ColumnDef{Name: "id", Type: types.Int64})
	tbl := table.New("t", s)
	require.NoError(t, tbl.InsertRow([]types.Value{types.Int64Value(1)}))

	e, err := engineForKind(storageengine.KindColumn, tbl)
	require.NoError(t, err)
	col, ok := e.(*storageengine.ColumnEngine)
	require.True(t, ok)
	got, ok := col.Table("t")
	require.True(t, ok)
	require.Equal(t, 1, got.RowCount())
}

func TestSortKeysDefaultAscending(t *testing.T) {
	keys, err := parseSortKeys("age:desc,name")
	require.NoError(t, err)
	require.Len(t, keys, 2)
	require.Equal(t, "age", keys[0].Column)
	require.Equal(t, sortop.Descending, keys[0].Direction)
	require.Equal(t, "name", keys[1].Column)
}

func TestDefaultCheckpointPathFallsBackWhenStoragePathUnset(t *testing.T) {
	t.Setenv("COLUMNDB_STORAGE_PATH", "")
	path := defaultCheckpointPath()
	require.NotEmpty(t, path)
}

func TestDefaultCheckpointPathUsesConfiguredStoragePath(t *testing.T) {
	t.Setenv("COLUMNDB_STORAGE_PATH", "/tmp/columndb-cp-test")
	path := defaultCheckpointPath()
	require.Equal(t, "/tmp/columndb-cp-test/"+checkpoint.DefaultPath, path)
}
