package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var (
	Version   = "dev"
	CommitSHA = "none"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print columndb's version and storage backend list",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("columndb %s (commit: %s, built: %s)\n\n", Version, CommitSHA, BuildDate)
		fmt.Println("Storage backends:")
		fmt.Println("  • memory — content-addressed hash map, OLTP")
		fmt.Println("  • column — columnar tables, OLAP scans")
		fmt.Println("  • row    — row-oriented tables with a primary-key index")
		fmt.Println("  • graph  — arena-allocated property graph, MATCH queries")
		fmt.Println("  • audit  — hash-chained, tamper-evident append-only log")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
