package checkpoint

import (
	"path/filepath"
	"testing"
)

func TestWriteReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "checkpoint.json")

	col := 3
	cp := Checkpoint{
		Task:        "migrate",
		Step:        "table",
		Table:       "users",
		ColumnIndex: &col,
		Status:      StatusInProgress,
		Timestamp:   1234,
	}
	if err := Write(path, cp); err != nil {
		t.Fatal(err)
	}

	got, ok, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected checkpoint to be found")
	}
	if got.Task != cp.Task || got.Step != cp.Step || got.Table != cp.Table || got.Status != cp.Status {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, cp)
	}
	if got.ColumnIndex == nil || *got.ColumnIndex != col {
		t.Fatalf("column index not preserved: %+v", got)
	}
}

func TestReadMissingReturnsNoCheckpoint(t *testing.T) {
	dir := t.TempDir()
	_, ok, err := Read(filepath.Join(dir, "missing.json"))
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected ok=false for missing checkpoint")
	}
}

func TestWriteOverwritesPreviousAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "checkpoint.json")

	cp1 := Checkpoint{Task: "migrate", Step: "start", Status: StatusInProgress, Timestamp: 1}
	if err := Write(path, cp1); err != nil {
		t.Fatal(err)
	}
	cp2 := Checkpoint{Task: "migrate", Step: "done", Status: StatusSuccess, Timestamp: 2}
	if err := Write(path, cp2); err != nil {
		t.Fatal(err)
	}

	got, ok, err := Read(path)
	if err != nil || !ok {
		t.Fatalf("read failed: ok=%v err=%v", ok, err)
	}
	if got.Step != "done" || got.Status != StatusSuccess {
		t.Fatalf("expected final checkpoint, got %+v", got)
	}
}

func TestClearIgnoresMissing(t *testing.T) {
	dir := t.TempDir()
	if err := Clear(filepath.Join(dir, "missing.json")); err != nil {
		t.Fatalf("Clear on missing file should not error, got %v", err)
	}
}
