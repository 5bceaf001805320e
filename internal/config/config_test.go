package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsStoragePathWhenUnset(t *testing.T) {
	t.Setenv("COLUMNDB_STORAGE_PATH", "")
	t.Setenv("COLUMNDB_MASTER_PASSWORD", "")
	cfg, err := Load()
	require.NoError(t, err)
	require.NotEmpty(t, cfg.StoragePath)
}

func TestLoadReadsEnvOverride(t *testing.T) {
	t.Setenv("COLUMNDB_STORAGE_PATH", "/tmp/columndb-test-data")
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "/tmp/columndb-test-data", cfg.StoragePath)
}
