package output

import (
	"io"

	"github.com/columndb/columndb/internal/migration"
	"github.com/columndb/columndb/internal/selector"
	"github.com/columndb/columndb/internal/table"
	"github.com/columndb/columndb/internal/workload"
)

// Renderer defines the output interface. Where the teacher's renderer
// rendered a single DDL-risk plan, this one renders the three result
// shapes a columndb session produces: a query's result table, a storage
// recommendation, and a migration outcome.
type Renderer interface {
	RenderQuery(t *table.Table)
	RenderRecommendation(p workload.Profile, rec selector.Recommendation)
	RenderMigration(res migration.Result)
}

// NewRenderer creates a renderer for the given format.
func NewRenderer(format string, w io.Writer) Renderer {
	switch format {
	case "json":
		return &JSONRenderer{w: w}
	case "markdown":
		return &MarkdownRenderer{w: w}
	case "plain":
		return &PlainRenderer{w: w}
	default:
		return &TextRenderer{w: w}
	}
}
