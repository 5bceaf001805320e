// Package checkpoint implements the atomic, crash-safe resume record used
// by the migration engine and other long-running operations (spec §4.9,
// §6). It is grounded on the teacher's write-config/read-config pair in
// cmd/config.go, generalized from a YAML settings file to a write-temp,
// fsync, rename-over JSON record.
package checkpoint

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/columndb/columndb/internal/dberr"
)

// Status is the checkpoint's lifecycle state.
type Status string

const (
	StatusInProgress Status = "in-progress"
	StatusSuccess    Status = "success"
	StatusFailed     Status = "failed"
	StatusCancelled  Status = "cancelled"
)

// Checkpoint is the resumable-progress record described in spec §3/§6.
type Checkpoint struct {
	Task        string `json:"task"`
	Step        string `json:"step"`
	Table       string `json:"table,omitempty"`
	ColumnIndex *int   `json:"column_index,omitempty"`
	Status      Status `json:"status"`
	Timestamp   int64  `json:"timestamp"`
	ErrorMsg    string `json:"error_msg,omitempty"`
}

// DefaultPath is the canonical checkpoint location from spec §6.
const DefaultPath = ".ai_checkpoint.json"

// Write serializes cp to <path>.tmp, fsyncs it, then atomically renames
// it over path. This guarantees a reader never observes a truncated or
// half-written file (spec §8 atomicity property, scenario 5).
func Write(path string, cp Checkpoint) error {
	data, err := json.MarshalIndent(cp, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding checkpoint: %w", err)
	}

	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("opening %s: %w: %w", tmp, err, dberr.Io)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w: %w", tmp, err, dberr.Io)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("syncing %s: %w: %w", tmp, err, dberr.Io)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w: %w", tmp, err, dberr.Io)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("renaming %s to %s: %w: %w", tmp, path, err, dberr.Io)
	}
	return nil
}

// Read loads the checkpoint at path. If no file exists it returns
// (Checkpoint{}, false, nil) — "no checkpoint" is not an error.
func Read(path string) (Checkpoint, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Checkpoint{}, false, nil
		}
		return Checkpoint{}, false, fmt.Errorf("reading %s: %w: %w", path, err, dberr.Io)
	}
	var cp Checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		return Checkpoint{}, false, fmt.Errorf("parsing %s: %w: %w", path, err, dberr.Io)
	}
	return cp, true, nil
}

// Clear removes the checkpoint file, ignoring "not found".
func Clear(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing %s: %w: %w", path, err, dberr.Io)
	}
	return nil
}
