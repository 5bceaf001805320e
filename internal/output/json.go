package output

import (
	"encoding/json"
	"io"

	"github.com/columndb/columndb/internal/migration"
	"github.com/columndb/columndb/internal/selector"
	"github.com/columndb/columndb/internal/table"
	"github.com/columndb/columndb/internal/workload"
)

// JSONRenderer produces machine-readable JSON output.
type JSONRenderer struct {
	w io.Writer
}

type jsonQueryOutput struct {
	Table   string     `json:"table"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Count   int        `json:"row_count"`
}

func (r *JSONRenderer) RenderQuery(t *table.Table) {
	names := columnNames(t)
	out := jsonQueryOutput{Table: t.Name, Columns: names, Count: t.RowCount()}
	for row := 0; row < t.RowCount(); row++ {
		cells := make([]string, len(names))
		for col := range names {
			cells[col] = cellText(t, row, col)
		}
		out.Rows = append(out.Rows, cells)
	}
	r.encode(out)
}

type jsonRecommendationOutput struct {
	Target     string  `json:"target"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
	Profile    struct {
		ReadHeavy         bool    `json:"read_heavy"`
		WriteHeavy        bool    `json:"write_heavy"`
		AnalyticalQueries bool    `json:"analytical_queries"`
		PointLookups      bool    `json:"point_lookups"`
		ComplexJoins      bool    `json:"complex_joins"`
		DataSizeGB        float64 `json:"data_size_gb"`
		QueryComplexity   float64 `json:"query_complexity"`
	} `json:"profile"`
}

func (r *JSONRenderer) RenderRecommendation(p workload.Profile, rec selector.Recommendation) {
	out := jsonRecommendationOutput{
		Target:     string(rec.Target),
		Confidence: rec.Confidence,
		Reasoning:  rec.Reasoning,
	}
	out.Profile.ReadHeavy = p.ReadHeavy
	out.Profile.WriteHeavy = p.WriteHeavy
	out.Profile.AnalyticalQueries = p.AnalyticalQueries
	out.Profile.PointLookups = p.PointLookups
	out.Profile.ComplexJoins = p.ComplexJoins
	out.Profile.DataSizeGB = p.DataSizeGB
	out.Profile.QueryComplexity = p.QueryComplexity
	r.encode(out)
}

type jsonMigrationOutput struct {
	Success       bool   `json:"success"`
	BytesMigrated int64  `json:"bytes_migrated"`
	DurationMs    int64  `json:"duration_ms"`
	ErrorMessage  string `json:"error_message,omitempty"`
}

func (r *JSONRenderer) RenderMigration(res migration.Result) {
	r.encode(jsonMigrationOutput{
		Success:       res.Success,
		BytesMigrated: res.BytesMigrated,
		DurationMs:    res.DurationMs,
		ErrorMessage:  res.ErrorMessage,
	})
}

func (r *JSONRenderer) encode(v any) {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
