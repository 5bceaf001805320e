package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/columndb/columndb/internal/checkpoint"
)

var checkpointCmd = &cobra.Command{
	Use:   "checkpoint",
	Short: "Inspect columndb's resumable-progress checkpoint file",
}

var checkpointShowCmd = &cobra.Command{
	Use:          "show",
	Short:        "Print the current checkpoint, if one exists",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("path")
		if path == "" {
			path = defaultCheckpointPath()
		}

		cp, found, err := checkpoint.Read(path)
		if err != nil {
			return fmt.Errorf("reading checkpoint: %w", err)
		}
		if !found {
			fmt.Printf("no checkpoint at %s\n", path)
			return nil
		}

		fmt.Printf("task:       %s\n", cp.Task)
		fmt.Printf("step:       %s\n", cp.Step)
		if cp.Table != "" {
			fmt.Printf("table:      %s\n", cp.Table)
		}
		if cp.ColumnIndex != nil {
			fmt.Printf("row offset: %d\n", *cp.ColumnIndex)
		}
		fmt.Printf("status:     %s\n", cp.Status)
		fmt.Printf("timestamp:  %d\n", cp.Timestamp)
		if cp.ErrorMsg != "" {
			fmt.Printf("error:      %s\n", cp.ErrorMsg)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkpointCmd)
	checkpointCmd.AddCommand(checkpointShowCmd)
	checkpointShowCmd.Flags().String("path", "", "Checkpoint file path (default: "+checkpoint.DefaultPath+")")
}
