package migration

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/columndb/columndb/internal/dberr"
	"github.com/columndb/columndb/internal/schema"
	"github.com/columndb/columndb/internal/storageengine"
	"github.com/columndb/columndb/internal/table"
	"github.com/columndb/columndb/internal/types"
)

func sampleSourceEngine(t *testing.T) *storageengine.ColumnEngine {
	t.Helper()
	s := schema.New(
		schema.ColumnDef{Name: "id", Type: types.Int64},
		schema.ColumnDef{Name: "name", Type: types.String},
	)
	tbl := table.New("people", s)
	require.NoError(t, tbl.InsertRow([]types.Value{types.Int64Value(1), types.StringValue("alice")}))
	require.NoError(t, tbl.InsertRow([]types.Value{types.Int64Value(2), types.StringValue("bob")}))
	engine := storageengine.NewColumnEngine()
	engine.PutTable(tbl)
	return engine
}

func TestMigrateColumnToRowSucceeds(t *testing.T) {
	source := sampleSourceEngine(t)
	cpPath := filepath.Join(t.TempDir(), "checkpoint.json")

	result, target, err := Migrate(context.Background(), source, storageengine.KindRow, cpPath, nil)
	require.NoError(t, err)
	require.True(t, result.Success)
	require.Empty(t, result.ErrorMessage)

	rowEngine, ok := target.(*storageengine.RowEngine)
	require.True(t, ok)
	migrated, ok := rowEngine.Table("people")
	require.True(t, ok)
	require.Equal(t, 2, migrated.RowCount())

	cp, found, err := checkpointRead(cpPath)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "done", cp.Step)
}

func TestMigrateUnsupportedTargetKind(t *testing.T) {
	source := sampleSourceEngine(t)
	_, _, err := Migrate(context.Background(), source, storageengine.KindMemory, "", nil)
	require.ErrorIs(t, err, dberr.Unsupported)
}

func TestMigrateRespectsCancellation(t *testing.T) {
	source := sampleSourceEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := Migrate(ctx, source, storageengine.KindRow, "", nil)
	require.ErrorIs(t, err, dberr.Cancelled)
}

func TestMigrateRetriesTransientRowFailureThenSucceeds(t *testing.T) {
	source := sampleSourceEngine(t)
	calls := 0
	flaky := func(src, dst *table.Table, row int) error {
		if row == 0 && calls == 0 {
			calls++
			return errors.New("transient")
		}
		return DefaultRowTransferer(src, dst, row)
	}
	result, _, err := Migrate(context.Background(), source, storageengine.KindRow, "", flaky)
	require.NoError(t, err)
	require.True(t, result.Success)
}

func TestMigrateEscalatesAfterExhaustingRetries(t *testing.T) {
	source := sampleSourceEngine(t)
	alwaysFails := func(src, dst *table.Table, row int) error {
		return errors.New("permanent")
	}
	_, _, err := Migrate(context.Background(), source, storageengine.KindRow, "", alwaysFails)
	require.ErrorIs(t, err, dberr.Integrity)
}

func checkpointRead(path string) (cp struct {
	Step string `json:"step"`
}, found bool, err error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cp, false, nil
	}
	if err != nil {
		return cp, false, err
	}
	err = json.Unmarshal(data, &cp)
	return cp, true, err
}
