// Package config loads the handful of settings columndb needs across
// every subcommand: where on disk a database's checkpoint lives, and a
// master password setting that is loaded but not read by any command.
// Grounded on the teacher's cmd/root.go initConfig pattern:
// viper reads a YAML file plus environment overrides, cobra binds flags
// on top.
package config

import (
	"os"

	"github.com/spf13/viper"
)

// Config is the settings record every columndb command reads from,
// per spec's design notes (storage_path, master_password).
type Config struct {
	StoragePath    string
	MasterPassword string
}

// Load reads columndb's config file ($HOME/.columndb/config.yaml) plus
// COLUMNDB_* environment overrides, the same precedence order as the
// teacher's initConfig. A missing config file is not an error — every
// field just falls back to its default.
func Load() (Config, error) {
	viper.SetEnvPrefix("COLUMNDB")
	viper.AutomaticEnv()

	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home + "/.columndb")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		// Silently ignore a missing config file, it's optional.
		_ = viper.ReadInConfig()
	}

	cfg := Config{
		StoragePath:    viper.GetString("storage_path"),
		MasterPassword: viper.GetString("master_password"),
	}
	if cfg.StoragePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		cfg.StoragePath = home + "/.columndb/data"
	}
	return cfg, nil
}
