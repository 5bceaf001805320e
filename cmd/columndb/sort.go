package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/columndb/columndb/internal/output"
	"github.com/columndb/columndb/internal/sortop"
)

var sortCmd = &cobra.Command{
	Use:          "sort",
	Short:        "Sort a table's rows by one or more columns",
	SilenceUsage: true,
	Long: `Sort loads a DDL+CSV table and reorders its rows stably according to a
comma-separated ORDER BY list, e.g. --by "age:desc,name:asc".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ddl, _ := cmd.Flags().GetString("ddl")
		csvPath, _ := cmd.Flags().GetString("csv")
		by, _ := cmd.Flags().GetString("by")
		if ddl == "" || csvPath == "" || by == "" {
			return fmt.Errorf("--ddl, --csv, and --by are all required")
		}

		keys, err := parseSortKeys(by)
		if err != nil {
			return err
		}

		t, err := tableFromDDLAndCSV(ddl, csvPath)
		if err != nil {
			return err
		}
		if err := sortop.Sort(t, keys); err != nil {
			return fmt.Errorf("sort failed: %w", err)
		}

		format := viper.GetString("format")
		renderer := output.NewRenderer(format, os.Stdout)
		renderer.RenderQuery(t)
		return nil
	},
}

// parseSortKeys parses "col:asc,col2:desc" into sortop.Key values.
// A column with no ":direction" suffix defaults to ascending.
func parseSortKeys(by string) ([]sortop.Key, error) {
	parts := strings.Split(by, ",")
	keys := make([]sortop.Key, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		col, dir, hasDir := strings.Cut(part, ":")
		k := sortop.Key{Column: strings.TrimSpace(col)}
		if hasDir {
			switch strings.ToLower(strings.TrimSpace(dir)) {
			case "desc":
				k.Direction = sortop.Descending
			case "asc", "":
				k.Direction = sortop.Ascending
			default:
				return nil, fmt.Errorf("unknown sort direction %q (want asc or desc)", dir)
			}
		}
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("--by produced no ORDER BY keys")
	}
	return keys, nil
}

func init() {
	rootCmd.AddCommand(sortCmd)
	sortCmd.Flags().String("ddl", "", "Path to a CREATE TABLE statement")
	sortCmd.Flags().String("csv", "", "Path to a CSV file matching the DDL's column order")
	sortCmd.Flags().String("by", "", `Comma-separated ORDER BY list, e.g. "age:desc,name:asc"`)
}
