package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/columndb/columndb/internal/migration"
	"github.com/columndb/columndb/internal/selector"
	"github.com/columndb/columndb/internal/table"
	"github.com/columndb/columndb/internal/workload"
)

// PlainRenderer produces unformatted text output safe for piping.
type PlainRenderer struct {
	w io.Writer
}

func (r *PlainRenderer) RenderQuery(t *table.Table) {
	fmt.Fprintf(r.w, "=== columndb — Query Result: %s ===\n\n", t.Name)
	names := columnNames(t)
	fmt.Fprintln(r.w, strings.Join(names, "\t"))
	for row := 0; row < t.RowCount(); row++ {
		cells := make([]string, len(names))
		for col := range names {
			cells[col] = cellText(t, row, col)
		}
		fmt.Fprintln(r.w, strings.Join(cells, "\t"))
	}
	fmt.Fprintf(r.w, "\n(%s rows)\n", formatNumber(int64(t.RowCount())))
}

func (r *PlainRenderer) RenderRecommendation(p workload.Profile, rec selector.Recommendation) {
	fmt.Fprintf(r.w, "=== columndb — Storage Recommendation ===\n\n")
	fmt.Fprintf(r.w, "Target:          %s\n", rec.Target)
	fmt.Fprintf(r.w, "Confidence:      %.2f\n", rec.Confidence)
	fmt.Fprintf(r.w, "Reasoning:       %s\n\n", rec.Reasoning)
	fmt.Fprintf(r.w, "--- Workload Profile ---\n")
	fmt.Fprintf(r.w, "Read heavy:      %v\n", p.ReadHeavy)
	fmt.Fprintf(r.w, "Write heavy:     %v\n", p.WriteHeavy)
	fmt.Fprintf(r.w, "Analytical:      %v\n", p.AnalyticalQueries)
	fmt.Fprintf(r.w, "Point lookups:   %v\n", p.PointLookups)
	fmt.Fprintf(r.w, "Complex joins:   %v\n", p.ComplexJoins)
	fmt.Fprintf(r.w, "Data size:       %.2f GB\n", p.DataSizeGB)
	fmt.Fprintf(r.w, "Query complexity: %.2f\n", p.QueryComplexity)
}

func (r *PlainRenderer) RenderMigration(res migration.Result) {
	fmt.Fprintf(r.w, "=== columndb — Migration Result ===\n\n")
	fmt.Fprintf(r.w, "Success:         %v\n", res.Success)
	fmt.Fprintf(r.w, "Bytes migrated:  %s\n", humanBytes(res.BytesMigrated))
	fmt.Fprintf(r.w, "Duration:        %dms\n", res.DurationMs)
	if res.ErrorMessage != "" {
		fmt.Fprintf(r.w, "Error:           %s\n", res.ErrorMessage)
	}
}
