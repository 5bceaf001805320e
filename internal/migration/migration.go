// Package migration implements moving a table-holding storage backend's
// contents into a freshly instantiated backend of a different kind (spec
// §4.8), checkpointing progress as it goes so a crashed migration can be
// reported as failed. Migrate does not read an existing checkpoint: a
// restarted migration begins again from the first table.
package migration

import (
	"context"
	"fmt"
	"time"

	"github.com/columndb/columndb/internal/checkpoint"
	"github.com/columndb/columndb/internal/dberr"
	"github.com/columndb/columndb/internal/storageengine"
	"github.com/columndb/columndb/internal/table"
	"github.com/columndb/columndb/internal/types"
)

// maxRowRetries bounds the migration engine's local row-transfer recovery
// (spec §7: "retries up to three times with fresh buffers, then escalates
// as Integrity").
const maxRowRetries = 3

// checkpointEveryNRows controls how often an in-progress checkpoint is
// rewritten during a single table's transfer, trading fsync overhead
// against how much work a crash can lose.
const checkpointEveryNRows = 1000

// TableSource is the narrow read-side contract the migration engine needs
// from a source backend: enumerate tables and fetch each by name.
type TableSource interface {
	TableNames() []string
	Table(name string) (*table.Table, bool)
}

// TableSink is the narrow write-side contract the migration engine needs
// from a freshly instantiated target backend.
type TableSink interface {
	PutTable(t *table.Table)
}

// Result is the migration engine's external error carrier (spec §4.8,
// §7: "the MigrationResult is the single external error carrier for the
// control loop").
type Result struct {
	Success       bool
	BytesMigrated int64
	DurationMs    int64
	ErrorMessage  string
}

// RowTransferer copies one row from source table src at index row into
// target table dst. It exists as a seam so tests can inject transient
// failures to exercise the retry-then-escalate policy.
type RowTransferer func(src, dst *table.Table, row int) error

// DefaultRowTransferer reads src's row and inserts it into dst unchanged.
func DefaultRowTransferer(src, dst *table.Table, row int) error {
	values, err := src.Row(row)
	if err != nil {
		return err
	}
	return dst.InsertRow(values)
}

// NewTarget instantiates an empty table-holding backend of kind. Only
// column and row backends hold tables; any other kind is Unsupported as
// a migration target.
func NewTarget(kind storageengine.Kind) (storageengine.Engine, TableSink, error) {
	switch kind {
	case storageengine.KindColumn:
		e := storageengine.NewColumnEngine()
		return e, e, nil
	case storageengine.KindRow:
		e := storageengine.NewRowEngine()
		return e, e, nil
	default:
		return nil, nil, fmt.Errorf("migration target kind %q: %w", kind, dberr.Unsupported)
	}
}

// Migrate implements spec §4.8's six-step algorithm: checkpoint the
// start, instantiate the target, transfer every table row by row with
// periodic checkpoint updates, validate row counts match per table,
// checkpoint success, and return the target engine for the caller to
// atomically swap in. On any failure the checkpoint records status
// "failed" with the error kind, source is left untouched, and the
// (possibly partially built) target is deinit'd.
func Migrate(ctx context.Context, source TableSource, targetKind storageengine.Kind, checkpointPath string, transfer RowTransferer) (Result, storageengine.Engine, error) {
	if transfer == nil {
		transfer = DefaultRowTransferer
	}
	start := time.Now()

	writeCheckpoint(checkpointPath, checkpoint.Checkpoint{
		Task: "migrate", Step: "start", Status: checkpoint.StatusInProgress,
		Timestamp: start.Unix(),
	})

	target, sink, err := NewTarget(targetKind)
	if err != nil {
		return fail(checkpointPath, start, err), nil, err
	}

	var bytesMigrated int64
	for _, name := range source.TableNames() {
		if err := ctx.Err(); err != nil {
			wrapped := fmt.Errorf("migration cancelled: %w", dberr.Cancelled)
			target.Deinit()
			return fail(checkpointPath, start, wrapped), nil, wrapped
		}

		src, ok := source.Table(name)
		if !ok {
			continue
		}
		dst := table.New(src.Name, src.Schema)

		for row := 0; row < src.RowCount(); row++ {
			if row%checkpointEveryNRows == 0 {
				if row > 0 && ctx.Err() != nil {
					wrapped := fmt.Errorf("migration cancelled: %w", dberr.Cancelled)
					target.Deinit()
					return fail(checkpointPath, start, wrapped), nil, wrapped
				}
				col := row
				writeCheckpoint(checkpointPath, checkpoint.Checkpoint{
					Task: "migrate", Step: "table", Table: name, ColumnIndex: &col,
					Status: checkpoint.StatusInProgress, Timestamp: time.Now().Unix(),
				})
			}
			if err := transferWithRetry(src, dst, row, transfer); err != nil {
				wrapped := fmt.Errorf("transferring row %d of table %q: %w", row, name, err)
				target.Deinit()
				return fail(checkpointPath, start, wrapped), nil, wrapped
			}
			bytesMigrated += estimateRowBytes(src, row)
		}

		if dst.RowCount() != src.RowCount() {
			wrapped := fmt.Errorf("row count mismatch on table %q: source=%d target=%d: %w",
				name, src.RowCount(), dst.RowCount(), dberr.Integrity)
			target.Deinit()
			return fail(checkpointPath, start, wrapped), nil, wrapped
		}
		sink.PutTable(dst)
	}

	writeCheckpoint(checkpointPath, checkpoint.Checkpoint{
		Task: "migrate", Step: "done", Status: checkpoint.StatusSuccess,
		Timestamp: time.Now().Unix(),
	})

	return Result{
		Success:       true,
		BytesMigrated: bytesMigrated,
		DurationMs:    time.Since(start).Milliseconds(),
	}, target, nil
}

func transferWithRetry(src, dst *table.Table, row int, transfer RowTransferer) error {
	var lastErr error
	for attempt := 0; attempt <= maxRowRetries; attempt++ {
		if lastErr = transfer(src, dst, row); lastErr == nil {
			return nil
		}
	}
	return fmt.Errorf("row %d failed after %d attempts: %v: %w", row, maxRowRetries+1, lastErr, dberr.Integrity)
}

// estimateRowBytes is a rough byte-accounting heuristic (8 bytes per
// fixed-width cell, actual length for strings and vectors' string form;
// custom and exception cells have an empty string form and count as 0),
// used only for the MigrationResult's informational
// BytesMigrated field. types.String reports FixedWidth() == true (its
// Column storage is an arena offset+length pair) but its backing bytes
// are variable-length, so it's special-cased here ahead of the
// FixedWidth check rather than folded into it.
func estimateRowBytes(t *table.Table, row int) int64 {
	var total int64
	for i := range t.Schema.Columns {
		v, err := t.Get(row, i)
		if err != nil {
			continue
		}
		switch {
		case v.Tag == types.String:
			total += int64(len(v.AsString()))
		case v.Tag.FixedWidth():
			total += 8
		default:
			total += int64(len(v.AsString()))
		}
	}
	return total
}

func fail(checkpointPath string, start time.Time, err error) Result {
	writeCheckpoint(checkpointPath, checkpoint.Checkpoint{
		Task: "migrate", Step: "failed", Status: checkpoint.StatusFailed,
		Timestamp: time.Now().Unix(), ErrorMsg: err.Error(),
	})
	return Result{
		Success:      false,
		DurationMs:   time.Since(start).Milliseconds(),
		ErrorMessage: err.Error(),
	}
}

// writeCheckpoint best-effort persists cp; checkpoint I/O failures do not
// abort a migration already in flight, since the checkpoint is a resume
// aid, not the source of truth for migrated data.
func writeCheckpoint(path string, cp checkpoint.Checkpoint) {
	if path == "" {
		return
	}
	_ = checkpoint.Write(path, cp)
}
