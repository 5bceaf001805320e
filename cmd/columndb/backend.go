package cmd

import (
	"fmt"
	"time"

	"github.com/columndb/columndb/internal/audit"
	"github.com/columndb/columndb/internal/checkpoint"
	"github.com/columndb/columndb/internal/config"
	"github.com/columndb/columndb/internal/dberr"
	"github.com/columndb/columndb/internal/storageengine"
	"github.com/columndb/columndb/internal/table"
	"github.com/spf13/viper"
)

// defaultCheckpointPath resolves the checkpoint file a command should use
// when --checkpoint/--path is left unset: the configured storage path's
// checkpoint file if a storage path is explicitly set (config file,
// environment or flag) and the config loads cleanly, falling back to the
// package default in the working directory otherwise.
func defaultCheckpointPath() string {
	cfg, err := config.Load()
	if err != nil || viper.GetString("storage_path") == "" {
		return checkpoint.DefaultPath
	}
	return cfg.StoragePath + "/" + checkpoint.DefaultPath
}

// defaultAuditDifficulty is the proof-of-work difficulty a freshly
// provisioned audit backend mines its genesis block at, when no chain
// already exists to wrap.
const defaultAuditDifficulty = 2

// engineForKind builds the concrete backend named by kind and, for the
// backends that hold typed tables (column, row), registers t under it.
// memory and audit backends are blob stores and ignore t entirely; a nil
// t is fine for those two kinds.
func engineForKind(kind storageengine.Kind, t *table.Table) (storageengine.Engine, error) {
	switch kind {
	case storageengine.KindMemory:
		return storageengine.NewMemoryEngine(), nil
	case storageengine.KindColumn:
		e := storageengine.NewColumnEngine()
		if t != nil {
			e.PutTable(t)
		}
		return e, nil
	case storageengine.KindRow:
		e := storageengine.NewRowEngine()
		if t != nil {
			e.PutTable(t)
		}
		return e, nil
	case storageengine.KindGraph:
		return storageengine.NewGraphEngine(), nil
	case storageengine.KindAudit:
		chain := audit.New(defaultAuditDifficulty, func() int64 { return time.Now().UnixMilli() })
		return storageengine.NewAuditEngine(chain), nil
	default:
		return nil, fmt.Errorf("backend %q: %w", kind, dberr.InvalidInput)
	}
}

// parseKind validates a --backend flag value against the known Kind set.
func parseKind(s string) (storageengine.Kind, error) {
	switch storageengine.Kind(s) {
	case storageengine.KindMemory, storageengine.KindColumn, storageengine.KindRow, storageengine.KindGraph, storageengine.KindAudit:
		return storageengine.Kind(s), nil
	default:
		return "", fmt.Errorf("unknown backend %q (want memory, column, row, graph, or audit): %w", s, dberr.InvalidInput)
	}
}
