package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/columndb/columndb/internal/migration"
	"github.com/columndb/columndb/internal/selector"
	"github.com/columndb/columndb/internal/storageengine"
	"github.com/columndb/columndb/internal/table"
	"github.com/columndb/columndb/internal/workload"
)

// TextRenderer produces Lip Gloss styled terminal output.
type TextRenderer struct {
	w io.Writer
}

func (r *TextRenderer) RenderQuery(t *table.Table) {
	width := 60
	fmt.Fprintln(r.w)

	title := TitleStyle.Render(fmt.Sprintf("columndb — Query Result: %s", t.Name))
	names := columnNames(t)

	var lines []string
	lines = append(lines, MutedText.Render(strings.Join(names, "  ")))
	for row := 0; row < t.RowCount(); row++ {
		cells := make([]string, len(names))
		for col := range names {
			cells[col] = cellText(t, row, col)
		}
		lines = append(lines, CodeStyle.Render(strings.Join(cells, "  ")))
	}
	lines = append(lines, "", MutedText.Render(fmt.Sprintf("%s %s rows", IconInfo, formatNumber(int64(t.RowCount())))))

	box := BoxStyle.Width(width).Render(title + "\n" + strings.Join(lines, "\n"))
	fmt.Fprintln(r.w, box)
	fmt.Fprintln(r.w)
}

func (r *TextRenderer) RenderRecommendation(p workload.Profile, rec selector.Recommendation) {
	width := 60
	fmt.Fprintln(r.w)

	title := TitleStyle.Render("Storage Recommendation")
	confidence := fmt.Sprintf("%.2f", rec.Confidence)
	recStyle := SafeBoxStyle
	if rec.Confidence < 0.6 {
		recStyle = WarningBoxStyle
		confidence = fmt.Sprintf("%s %s", IconWarning, confidence)
	}
	lines := []string{
		r.labelValue("Target:", r.colorKind(rec.Target)),
		r.labelValue("Confidence:", confidence),
		r.labelValue("Reasoning:", rec.Reasoning),
	}
	recBox := recStyle.Width(width).Render(title + "\n" + strings.Join(lines, "\n"))
	fmt.Fprintln(r.w, recBox)

	profTitle := TitleStyle.Render("Workload Profile")
	profLines := []string{
		r.labelValue("Read heavy:", fmt.Sprintf("%v", p.ReadHeavy)),
		r.labelValue("Write heavy:", fmt.Sprintf("%v", p.WriteHeavy)),
		r.labelValue("Analytical:", fmt.Sprintf("%v", p.AnalyticalQueries)),
		r.labelValue("Point lookups:", fmt.Sprintf("%v", p.PointLookups)),
		r.labelValue("Complex joins:", fmt.Sprintf("%v", p.ComplexJoins)),
		r.labelValue("Data size:", fmt.Sprintf("%.2f GB", p.DataSizeGB)),
		r.labelValue("Complexity:", fmt.Sprintf("%.2f", p.QueryComplexity)),
	}
	profBox := BoxStyle.Width(width).Render(profTitle + "\n" + strings.Join(profLines, "\n"))
	fmt.Fprintln(r.w, profBox)
	fmt.Fprintln(r.w)
}

func (r *TextRenderer) RenderMigration(res migration.Result) {
	width := 60
	fmt.Fprintln(r.w)

	style := SafeBoxStyle
	icon, label := IconSafe, "Migration succeeded."
	if !res.Success {
		style = DangerBoxStyle
		icon, label = IconDanger, "Migration failed."
	}

	title := TitleStyle.Render("Migration Result")
	lines := []string{
		fmt.Sprintf("%s %s", icon, label),
		r.labelValue("Bytes migrated:", humanBytes(res.BytesMigrated)),
		r.labelValue("Duration:", fmt.Sprintf("%dms", res.DurationMs)),
	}
	if res.ErrorMessage != "" {
		lines = append(lines, LabelStyle.Render("Error:")+" "+DangerText.Render(res.ErrorMessage))
	}
	box := style.Width(width).Render(title + "\n" + strings.Join(lines, "\n"))
	fmt.Fprintln(r.w, box)
	fmt.Fprintln(r.w)
}

func (r *TextRenderer) labelValue(label, value string) string {
	return LabelStyle.Render(label) + " " + ValueStyle.Render(value)
}

func (r *TextRenderer) colorKind(k storageengine.Kind) string {
	switch k {
	case storageengine.KindColumn:
		return SafeText.Render(string(k))
	case storageengine.KindRow:
		return WarningText.Render(string(k))
	default:
		return string(k)
	}
}
