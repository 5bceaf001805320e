package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/columndb/columndb/internal/graphquery"
	"github.com/columndb/columndb/internal/output"
	"github.com/columndb/columndb/internal/schema"
	"github.com/columndb/columndb/internal/storageengine"
	"github.com/columndb/columndb/internal/table"
	"github.com/columndb/columndb/internal/types"
)

var queryCmd = &cobra.Command{
	Use:          "query",
	Short:        "Run a query against a storage backend",
	SilenceUsage: true,
	Long: `Run a query against a storage backend. Column and row backends take a
simplified "SELECT col FROM table" string via --sql. The graph backend
takes a Cypher-subset "MATCH (...) RETURN ..." pattern via --match, since
a graph backend never accepts plain SQL (spec: GraphEngine.Query is
always Unsupported).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, _ := cmd.Flags().GetString("backend")
		kind, err := parseKind(backend)
		if err != nil {
			return err
		}

		format := viper.GetString("format")
		renderer := output.NewRenderer(format, os.Stdout)

		if kind == storageengine.KindGraph {
			return runGraphQuery(cmd, renderer)
		}
		return runTableQuery(cmd, kind, renderer)
	},
}

func runTableQuery(cmd *cobra.Command, kind storageengine.Kind, renderer output.Renderer) error {
	if kind != storageengine.KindColumn && kind != storageengine.KindRow {
		return fmt.Errorf("%q has no SQL-addressable table content; use --backend column or row, or --backend graph with --match", kind)
	}
	ddl, _ := cmd.Flags().GetString("ddl")
	csvPath, _ := cmd.Flags().GetString("csv")
	sql, _ := cmd.Flags().GetString("sql")
	if ddl == "" || csvPath == "" {
		return fmt.Errorf("--ddl and --csv are required to build the queried table")
	}
	if sql == "" {
		return fmt.Errorf("--sql is required for the %q backend", kind)
	}

	t, err := tableFromDDLAndCSV(ddl, csvPath)
	if err != nil {
		return err
	}
	engine, err := engineForKind(kind, t)
	if err != nil {
		return err
	}

	results, err := engine.Query(context.Background(), sql, storageengine.SimpleAllocator{})
	if err != nil {
		return err
	}

	out := table.New(t.Name+"_query", schema.New(schema.ColumnDef{Name: "result", Type: types.String}))
	for _, r := range results {
		if err := out.InsertRow([]types.Value{types.StringValue(r.Text)}); err != nil {
			return err
		}
	}
	renderer.RenderQuery(out)
	return nil
}

func runGraphQuery(cmd *cobra.Command, renderer output.Renderer) error {
	nodesPath, _ := cmd.Flags().GetString("nodes")
	edgesPath, _ := cmd.Flags().GetString("edges")
	match, _ := cmd.Flags().GetString("match")
	if nodesPath == "" || edgesPath == "" {
		return fmt.Errorf("--nodes and --edges are required for the graph backend")
	}
	if match == "" {
		return fmt.Errorf("--match is required for the graph backend")
	}

	g, err := graphFromCSV(nodesPath, edgesPath)
	if err != nil {
		return err
	}

	pattern, err := graphquery.Parse(match)
	if err != nil {
		return err
	}
	matches, err := graphquery.Match(g, pattern)
	if err != nil {
		return err
	}

	cols := make([]schema.ColumnDef, len(pattern.Return))
	for i, name := range pattern.Return {
		cols[i] = schema.ColumnDef{Name: name, Type: types.String}
	}
	out := table.New("match_result", schema.New(cols...))
	for _, m := range matches {
		projected := graphquery.Project(pattern, m)
		values := make([]types.Value, len(projected))
		for i, s := range projected {
			values[i] = types.StringValue(s)
		}
		if err := out.InsertRow(values); err != nil {
			return err
		}
	}
	renderer.RenderQuery(out)
	return nil
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().String("backend", "column", "Backend to query: column, row, or graph")
	queryCmd.Flags().String("ddl", "", "Path to a CREATE TABLE statement (column/row backends)")
	queryCmd.Flags().String("csv", "", "Path to a CSV file matching the DDL's column order")
	queryCmd.Flags().String("sql", "", `Simplified query, e.g. "SELECT name FROM people"`)
	queryCmd.Flags().String("nodes", "", "Path to a nodes CSV (id,labels,properties) for the graph backend")
	queryCmd.Flags().String("edges", "", "Path to an edges CSV (from,to,type) for the graph backend")
	queryCmd.Flags().String("match", "", `Cypher-subset pattern, e.g. "MATCH (a:Person)-[:FOLLOWS]->(b) RETURN a.name, b.name"`)
}
