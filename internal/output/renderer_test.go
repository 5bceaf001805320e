package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/columndb/columndb/internal/migration"
	"github.com/columndb/columndb/internal/schema"
	"github.com/columndb/columndb/internal/selector"
	"github.com/columndb/columndb/internal/storageengine"
	"github.com/columndb/columndb/internal/table"
	"github.com/columndb/columndb/internal/types"
	"github.com/columndb/columndb/internal/workload"
)

func sampleTable(t *testing.T) *table.Table {
	t.Helper()
	s := schema.New(
		schema.ColumnDef{Name: "id", Type: types.Int64},
		schema.ColumnDef{Name: "name", Type: types.String},
	)
	tbl := table.New("people", s)
	require.NoError(t, tbl.InsertRow([]types.Value{types.Int64Value(1), types.StringValue("alice")}))
	require.NoError(t, tbl.InsertRow([]types.Value{types.Int64Value(2), types.StringValue("bob")}))
	return tbl
}

func sampleRecommendation() (workload.Profile, selector.Recommendation) {
	p := workload.Profile{AnalyticalQueries: true, DataSizeGB: 12.5, QueryComplexity: 0.6}
	rec := selector.Recommend(p)
	return p, rec
}

func TestNewRendererDispatchesByFormat(t *testing.T) {
	var buf bytes.Buffer
	require.IsType(t, &JSONRenderer{}, NewRenderer("json", &buf))
	require.IsType(t, &MarkdownRenderer{}, NewRenderer("markdown", &buf))
	require.IsType(t, &PlainRenderer{}, NewRenderer("plain", &buf))
	require.IsType(t, &TextRenderer{}, NewRenderer("text", &buf))
	require.IsType(t, &TextRenderer{}, NewRenderer("", &buf))
}

func TestPlainRendererRenderQuery(t *testing.T) {
	var buf bytes.Buffer
	r := &PlainRenderer{w: &buf}
	r.RenderQuery(sampleTable(t))
	out := buf.String()
	require.Contains(t, out, "people")
	require.Contains(t, out, "alice")
	require.Contains(t, out, "bob")
	require.Contains(t, out, "2 rows")
}

func TestPlainRendererRenderRecommendation(t *testing.T) {
	var buf bytes.Buffer
	r := &PlainRenderer{w: &buf}
	p, rec := sampleRecommendation()
	r.RenderRecommendation(p, rec)
	out := buf.String()
	require.Contains(t, out, string(storageengine.KindColumn))
	require.Contains(t, out, "Analytical:      true")
}

func TestPlainRendererRenderMigration(t *testing.T) {
	var buf bytes.Buffer
	r := &PlainRenderer{w: &buf}
	r.RenderMigration(migration.Result{Success: true, BytesMigrated: 2048, DurationMs: 15})
	out := buf.String()
	require.Contains(t, out, "true")
	require.Contains(t, out, "2.0 KB")
}

func TestJSONRendererRenderQuery(t *testing.T) {
	var buf bytes.Buffer
	r := &JSONRenderer{w: &buf}
	r.RenderQuery(sampleTable(t))

	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Equal(t, "people", out["table"])
	require.Equal(t, float64(2), out["row_count"])
}

func TestJSONRendererRenderRecommendationValidJSON(t *testing.T) {
	var buf bytes.Buffer
	r := &JSONRenderer{w: &buf}
	p, rec := sampleRecommendation()
	r.RenderRecommendation(p, rec)
	require.True(t, json.Valid(buf.Bytes()))

	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Equal(t, string(storageengine.KindColumn), out["target"])
}

func TestMarkdownRendererRenderQuery(t *testing.T) {
	var buf bytes.Buffer
	r := &MarkdownRenderer{w: &buf}
	r.RenderQuery(sampleTable(t))
	out := buf.String()
	require.True(t, strings.HasPrefix(out, "# columndb — Query Result: `people`"))
	require.Contains(t, out, "| id | name |")
}

func TestMarkdownRendererRenderMigrationFailureIcon(t *testing.T) {
	var buf bytes.Buffer
	r := &MarkdownRenderer{w: &buf}
	r.RenderMigration(migration.Result{Success: false, ErrorMessage: "row count mismatch"})
	out := buf.String()
	require.Contains(t, out, "❌")
	require.Contains(t, out, "row count mismatch")
}

func TestTextRendererRenderQuery(t *testing.T) {
	var buf bytes.Buffer
	r := &TextRenderer{w: &buf}
	r.RenderQuery(sampleTable(t))
	out := buf.String()
	require.Contains(t, out, "people")
	require.Contains(t, out, "alice")
}

func TestTextRendererRenderRecommendation(t *testing.T) {
	var buf bytes.Buffer
	r := &TextRenderer{w: &buf}
	p, rec := sampleRecommendation()
	r.RenderRecommendation(p, rec)
	out := buf.String()
	require.Contains(t, out, "Storage Recommendation")
	require.Contains(t, out, rec.Reasoning)
}
