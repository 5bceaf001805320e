package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/columndb/columndb/internal/mysqlsource"
	"github.com/columndb/columndb/internal/output"
	"github.com/columndb/columndb/internal/storageengine"
	"github.com/columndb/columndb/internal/table"
)

var ingestCmd = &cobra.Command{
	Use:          "ingest",
	Short:        "Load a table into a storage backend and print it",
	SilenceUsage: true,
	Long: `Load tabular data — either from a local DDL+CSV pair or a live MySQL
table — into the requested storage backend, then print the loaded table.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, _ := cmd.Flags().GetString("backend")
		kind, err := parseKind(backend)
		if err != nil {
			return err
		}
		if kind != storageengine.KindMemory && kind != storageengine.KindColumn && kind != storageengine.KindRow {
			return fmt.Errorf("ingest targets memory, column, or row; got %q", kind)
		}

		ddl, _ := cmd.Flags().GetString("ddl")
		csvPath, _ := cmd.Flags().GetString("csv")
		host, _ := cmd.Flags().GetString("host")

		var t *table.Table
		switch {
		case ddl != "" && csvPath != "":
			t, err = tableFromDDLAndCSV(ddl, csvPath)
		case host != "":
			t, err = tableFromMySQL(cmd)
		default:
			return fmt.Errorf("provide --ddl and --csv, or --host/--database/--table for a MySQL source")
		}
		if err != nil {
			return err
		}

		if _, err := engineForKind(kind, t); err != nil {
			return err
		}

		format := viper.GetString("format")
		renderer := output.NewRenderer(format, os.Stdout)
		renderer.RenderQuery(t)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)
	ingestCmd.Flags().String("backend", "column", "Target backend: memory, column, or row")
	ingestCmd.Flags().String("ddl", "", "Path to a CREATE TABLE statement")
	ingestCmd.Flags().String("csv", "", "Path to a CSV file matching the DDL's column order")
	ingestCmd.Flags().String("host", "", "MySQL host to ingest a live table from")
	ingestCmd.Flags().Int("port", 3306, "MySQL port")
	ingestCmd.Flags().String("user", "", "MySQL user")
	ingestCmd.Flags().String("password", "", "MySQL password (prompted if omitted and --host is set)")
	ingestCmd.Flags().String("database", "", "MySQL database")
	ingestCmd.Flags().String("table", "", "MySQL table to load")
}

// tableFromMySQL connects to a live MySQL server and loads one table's
// metadata and rows, mirroring the teacher's connect/plan command's own
// ConnectionConfig-from-flags-then-Connect flow.
func tableFromMySQL(cmd *cobra.Command) (*table.Table, error) {
	host, _ := cmd.Flags().GetString("host")
	port, _ := cmd.Flags().GetInt("port")
	user, _ := cmd.Flags().GetString("user")
	password, _ := cmd.Flags().GetString("password")
	database, _ := cmd.Flags().GetString("database")
	tableName, _ := cmd.Flags().GetString("table")

	if database == "" || tableName == "" {
		return nil, fmt.Errorf("--database and --table are required with --host")
	}
	if user == "" {
		user = "columndb"
	}
	if password == "" {
		password = mysqlsource.PromptPassword()
	}

	cfg := mysqlsource.ConnectionConfig{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		Database: database,
	}
	db, err := mysqlsource.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("connection failed: %w", err)
	}
	defer db.Close()

	meta, err := mysqlsource.GetTableMetadata(db, database, tableName)
	if err != nil {
		return nil, fmt.Errorf("metadata collection failed: %w", err)
	}

	return mysqlsource.LoadTable(db, meta)
}
