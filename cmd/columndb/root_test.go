package cmd

import (
	"os"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestInitConfigFileNotFound(t *testing.T) {
	origHome := os.Getenv("HOME")
	defer os.Setenv("HOME", origHome)

	tmpDir := t.TempDir()
	os.Setenv("HOME", tmpDir)

	viper.Reset()
	cfgFile = ""

	// Should not error even when no config file exists.
	initConfig()
}

func TestInitConfigWithConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := tmpDir + "/config.yaml"
	require.NoError(t, os.WriteFile(configPath, []byte("storage_path: /tmp/data\nformat: json\n"), 0644))

	viper.Reset()
	cfgFile = configPath
	initConfig()

	require.Equal(t, "/tmp/data", viper.GetString("storage_path"))
	require.Equal(t, "json", viper.GetString("format"))
}

func TestRootCommandUse(t *testing.T) {
	require.NotNil(t, rootCmd)
	require.Equal(t, "columndb", rootCmd.Use)
}
