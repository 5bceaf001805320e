package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "columndb",
	Short: "An embedded, columnar analytical database with a hybrid storage engine",
	Long: `columndb ingests tabular data, holds it behind a pluggable storage
backend (in-memory, columnar, row-oriented, graph, or hash-chained audit
log), and offers sort/query operators, workload-driven backend
recommendations, and a migration engine for moving a table between
backends without losing it mid-flight.`,
}

// Execute is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.columndb/config.yaml)")
	rootCmd.PersistentFlags().StringP("format", "f", "text", "Output format: text, plain, json, markdown")
	rootCmd.PersistentFlags().StringP("storage-path", "s", "", "Directory columndb uses for on-disk checkpoint state")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Show additional debug info")

	viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	viper.BindPFlag("storage_path", rootCmd.PersistentFlags().Lookup("storage-path"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return
		}
		viper.AddConfigPath(home + "/.columndb")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("COLUMNDB")
	viper.AutomaticEnv()

	// Silently ignore a missing config file, it's optional.
	_ = viper.ReadInConfig()
}
