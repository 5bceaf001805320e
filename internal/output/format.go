package output

import (
	"fmt"
	"strings"

	"github.com/columndb/columndb/internal/table"
	"github.com/columndb/columndb/internal/types"
)

// columnNames and cellText let every renderer walk a result table
// without repeating Schema/Get bookkeeping.
func columnNames(t *table.Table) []string {
	names := make([]string, len(t.Schema.Columns))
	for i, cd := range t.Schema.Columns {
		names[i] = cd.Name
	}
	return names
}

func cellText(t *table.Table, row, col int) string {
	v, err := t.Get(row, col)
	if err != nil {
		return ""
	}
	return valueText(v)
}

func valueText(v types.Value) string {
	switch v.Tag {
	case types.Int32:
		return fmt.Sprintf("%d", v.AsInt32())
	case types.Int64:
		return fmt.Sprintf("%d", v.AsInt64())
	case types.Float32:
		return fmt.Sprintf("%g", v.AsFloat32())
	case types.Float64:
		return fmt.Sprintf("%g", v.AsFloat64())
	case types.Boolean:
		return fmt.Sprintf("%v", v.AsBool())
	case types.String:
		return v.AsString()
	case types.Timestamp:
		return fmt.Sprintf("%d", v.AsTimestamp())
	case types.Vector:
		return fmt.Sprintf("vector(%d)", len(v.AsVector()))
	default:
		return fmt.Sprintf("%v", v.AsCustom())
	}
}

func formatNumber(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var result strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(c)
	}
	return result.String()
}

func humanBytes(b int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)
	switch {
	case b >= GB:
		return fmt.Sprintf("%.1f GB", float64(b)/float64(GB))
	case b >= MB:
		return fmt.Sprintf("%.1f MB", float64(b)/float64(MB))
	case b >= KB:
		return fmt.Sprintf("%.1f KB", float64(b)/float64(KB))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
