package cmd

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/columndb/columndb/internal/output"
	"github.com/columndb/columndb/internal/selector"
	"github.com/columndb/columndb/internal/workload"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a recorded query log and recommend a storage backend",
}

var analyzeProfileCmd = &cobra.Command{
	Use:          "profile",
	Short:        "Derive a workload profile from a query log and recommend a backend",
	SilenceUsage: true,
	Long: `Read a newline-delimited log of SQL statements, feed each through the
workload analyzer's sliding window, then print the resulting profile and
the selector's storage-backend recommendation.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logPath, _ := cmd.Flags().GetString("log")
		windowMs, _ := cmd.Flags().GetInt64("window-ms")
		if logPath == "" {
			return fmt.Errorf("--log is required")
		}

		f, err := os.Open(logPath)
		if err != nil {
			return fmt.Errorf("opening query log: %w", err)
		}
		defer f.Close()

		analyzer := workload.New(windowMs, func() int64 { return time.Now().UnixMilli() })
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := scanner.Text()
			if line == "" {
				continue
			}
			analyzer.RecordQuery(line, 0, 0)
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("reading query log: %w", err)
		}

		profile := analyzer.GenerateWorkloadProfile()
		rec := selector.Recommend(profile)

		format := viper.GetString("format")
		renderer := output.NewRenderer(format, os.Stdout)
		renderer.RenderRecommendation(profile, rec)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.AddCommand(analyzeProfileCmd)
	analyzeProfileCmd.Flags().String("log", "", "Path to a newline-delimited SQL query log")
	analyzeProfileCmd.Flags().Int64("window-ms", 3600000, "Sliding time window in milliseconds")
}
