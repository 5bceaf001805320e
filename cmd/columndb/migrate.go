package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/columndb/columndb/internal/checkpoint"
	"github.com/columndb/columndb/internal/migration"
	"github.com/columndb/columndb/internal/output"
	"github.com/columndb/columndb/internal/storageengine"
)

var migrateCmd = &cobra.Command{
	Use:          "migrate",
	Short:        "Move a table from one storage backend to another",
	SilenceUsage: true,
	Long: `Load a DDL+CSV table into the --from backend, then migrate it row by
row into a freshly instantiated --to backend, checkpointing progress
along the way.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ddl, _ := cmd.Flags().GetString("ddl")
		csvPath, _ := cmd.Flags().GetString("csv")
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		checkpointPath, _ := cmd.Flags().GetString("checkpoint")
		if ddl == "" || csvPath == "" {
			return fmt.Errorf("--ddl and --csv are required")
		}

		fromKind, err := parseKind(from)
		if err != nil {
			return err
		}
		toKind, err := parseKind(to)
		if err != nil {
			return err
		}
		if fromKind != storageengine.KindColumn && fromKind != storageengine.KindRow {
			return fmt.Errorf("--from must be column or row (the only table-holding backends)")
		}

		t, err := tableFromDDLAndCSV(ddl, csvPath)
		if err != nil {
			return err
		}
		source, err := engineForKind(fromKind, t)
		if err != nil {
			return err
		}
		tableSource, ok := source.(migration.TableSource)
		if !ok {
			return fmt.Errorf("backend %q cannot act as a migration source", fromKind)
		}

		if checkpointPath == "" {
			checkpointPath = defaultCheckpointPath()
		}
		result, _, err := migration.Migrate(context.Background(), tableSource, toKind, checkpointPath, nil)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
		}

		format := viper.GetString("format")
		renderer := output.NewRenderer(format, os.Stdout)
		renderer.RenderMigration(result)
		if !result.Success {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().String("ddl", "", "Path to a CREATE TABLE statement")
	migrateCmd.Flags().String("csv", "", "Path to a CSV file matching the DDL's column order")
	migrateCmd.Flags().String("from", "column", "Source backend: column or row")
	migrateCmd.Flags().String("to", "row", "Target backend: column or row")
	migrateCmd.Flags().String("checkpoint", "", "Checkpoint file path (default: "+checkpoint.DefaultPath+")")
}
