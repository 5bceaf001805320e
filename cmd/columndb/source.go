package cmd

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/columndb/columndb/internal/dberr"
	"github.com/columndb/columndb/internal/sqlfront"
	"github.com/columndb/columndb/internal/storageengine"
	"github.com/columndb/columndb/internal/table"
	"github.com/columndb/columndb/internal/types"
)

// tableFromDDLAndCSV is the local, connection-free ingest path: a single
// CREATE TABLE statement (parsed via internal/sqlfront) describes the
// schema, a CSV file supplies the rows. Every cell is parsed against its
// column's DataType; a cell that doesn't parse becomes that type's zero
// value rather than aborting the whole load, matching the
// lossy-but-complete posture internal/mysqlsource takes for row data.
func tableFromDDLAndCSV(ddlPath, csvPath string) (*table.Table, error) {
	ddl, err := os.ReadFile(ddlPath)
	if err != nil {
		return nil, fmt.Errorf("reading DDL file %q: %w", ddlPath, err)
	}
	name, s, err := sqlfront.ParseCreateTable(string(ddl))
	if err != nil {
		return nil, fmt.Errorf("parsing DDL: %w", err)
	}

	f, err := os.Open(csvPath)
	if err != nil {
		return nil, fmt.Errorf("opening CSV file %q: %w", csvPath, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}

	t := table.New(name, s)
	for _, record := range records {
		if len(record) != s.Arity() {
			return nil, fmt.Errorf("row has %d fields, schema has %d columns: %w", len(record), s.Arity(), dberr.ArityMismatch)
		}
		values := make([]types.Value, len(record))
		for i, cell := range record {
			values[i] = parseCellValue(cell, s.Columns[i].Type)
		}
		if err := t.InsertRow(values); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func parseCellValue(cell string, typ types.DataType) types.Value {
	switch typ {
	case types.Int32:
		var n int32
		fmt.Sscanf(cell, "%d", &n)
		return types.Int32Value(n)
	case types.Int64:
		var n int64
		fmt.Sscanf(cell, "%d", &n)
		return types.Int64Value(n)
	case types.Float32:
		var f float32
		fmt.Sscanf(cell, "%g", &f)
		return types.Float32Value(f)
	case types.Float64:
		var f float64
		fmt.Sscanf(cell, "%g", &f)
		return types.Float64Value(f)
	case types.Boolean:
		return types.BoolValue(cell == "true" || cell == "1")
	case types.Timestamp:
		var n int64
		fmt.Sscanf(cell, "%d", &n)
		return types.TimestampValue(n)
	default:
		return types.StringValue(cell)
	}
}

// graphFromCSV builds a GraphEngine from a node CSV
// ("id,labels,properties" where labels is "|"-joined and properties is
// "k=v;k=v"-joined) and an edge CSV ("from,to,type" by node id).
func graphFromCSV(nodesPath, edgesPath string) (*storageengine.GraphEngine, error) {
	g := storageengine.NewGraphEngine()
	handles := make(map[string]storageengine.NodeHandle)

	nodeRecords, err := readCSV(nodesPath)
	if err != nil {
		return nil, fmt.Errorf("reading nodes CSV: %w", err)
	}
	for _, rec := range nodeRecords {
		if len(rec) < 2 {
			return nil, fmt.Errorf("node row %v: expected at least id,labels: %w", rec, dberr.InvalidInput)
		}
		id := rec[0]
		labels := strings.Split(rec[1], "|")
		props := map[string]types.Value{}
		if len(rec) > 2 && rec[2] != "" {
			for _, pair := range strings.Split(rec[2], ";") {
				kv := strings.SplitN(pair, "=", 2)
				if len(kv) == 2 {
					props[kv[0]] = types.StringValue(kv[1])
				}
			}
		}
		handles[id] = g.AddNode(labels, props)
	}

	edgeRecords, err := readCSV(edgesPath)
	if err != nil {
		return nil, fmt.Errorf("reading edges CSV: %w", err)
	}
	for _, rec := range edgeRecords {
		if len(rec) != 3 {
			return nil, fmt.Errorf("edge row %v: expected from,to,type: %w", rec, dberr.InvalidInput)
		}
		from, ok := handles[rec[0]]
		if !ok {
			return nil, fmt.Errorf("edge references unknown node %q: %w", rec[0], dberr.NotFound)
		}
		to, ok := handles[rec[1]]
		if !ok {
			return nil, fmt.Errorf("edge references unknown node %q: %w", rec[1], dberr.NotFound)
		}
		if err := g.AddEdge(from, to, rec[2]); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return csv.NewReader(f).ReadAll()
}
