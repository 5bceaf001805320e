// Package workload implements the query-pattern ring buffer and the
// roll-up into a WorkloadProfile (spec §4.6). Like internal/storageengine,
// every extraction step is a deliberate substring/keyword scan, never a
// real SQL parser — the spec is explicit that this component trades
// precision for simplicity, and internal/sqlfront's vitess-backed parser
// is kept out of this package for exactly that reason.
package workload

import (
	"regexp"
	"strings"
)

// Kind classifies a recorded query by its leading keyword.
type Kind string

const (
	KindSelect Kind = "select"
	KindInsert Kind = "insert"
	KindUpdate Kind = "update"
	KindDelete Kind = "delete"
	KindDDL    Kind = "ddl"
)

// JoinClause is one extracted "<MODIFIER> JOIN" occurrence.
type JoinClause struct {
	Modifier string // LEFT, RIGHT, FULL, CROSS, or INNER (default)
}

// QueryPattern is one observed query, stamped at record time.
type QueryPattern struct {
	Kind            Kind
	Table           string
	Columns         []string
	Predicates      []string
	Joins           []JoinClause
	Aggregations    []string
	Distinct        bool
	TimestampMs     int64
	ExecutionTimeMs float64
	RowsAffected    int64
}

// Analyzer maintains a bounded ring of QueryPatterns covering the last
// TimeWindowMs, evicting stale entries on every RecordQuery call.
type Analyzer struct {
	TimeWindowMs int64
	NowMs        func() int64
	history      []QueryPattern
}

// New creates an Analyzer with the given sliding window and clock.
func New(timeWindowMs int64, nowMs func() int64) *Analyzer {
	return &Analyzer{TimeWindowMs: timeWindowMs, NowMs: nowMs}
}

var reJoin = regexp.MustCompile(`(LEFT|RIGHT|FULL|CROSS|INNER)?\s*JOIN`)
var reAggKeywords = []string{"COUNT(", "SUM(", "AVG(", "MIN(", "MAX("}

// RecordQuery implements spec §4.6's 8-step classification: uppercase
// copy for scanning, keyword-based kind classification, FROM-table
// extraction, SELECT-column extraction, JOIN extraction with modifier,
// aggregation/DISTINCT detection, timestamp stamping, and eviction of
// entries older than the sliding window.
func (a *Analyzer) RecordQuery(sql string, execMs float64, rows int64) {
	upper := strings.ToUpper(sql) // step 1: local uppercase copy, sql itself untouched

	p := QueryPattern{
		Kind:            classifyKind(upper),           // step 2
		Table:           extractTable(sql, upper),       // step 3
		Columns:         extractColumns(sql, upper),     // step 4
		Predicates:      extractPredicates(sql, upper),
		Joins:           extractJoins(upper),            // step 5
		Aggregations:    extractAggregations(upper),     // step 6
		Distinct:        strings.Contains(upper, "DISTINCT"),
		TimestampMs:     a.NowMs(),                       // step 7
		ExecutionTimeMs: execMs,
		RowsAffected:    rows,
	}
	a.history = append(a.history, p)
	a.evict() // step 8
}

func classifyKind(upper string) Kind {
	switch firstKeyword(upper) {
	case "SELECT":
		return KindSelect
	case "INSERT":
		return KindInsert
	case "UPDATE":
		return KindUpdate
	case "DELETE":
		return KindDelete
	case "CREATE", "DROP", "ALTER":
		return KindDDL
	default:
		return KindDDL
	}
}

func firstKeyword(upper string) string {
	fields := strings.Fields(upper)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func extractTable(sql, upper string) string {
	fromIdx := strings.Index(upper, "FROM")
	if fromIdx == -1 {
		// INSERT INTO <table> has no FROM clause; fall back to INTO.
		intoIdx := strings.Index(upper, "INTO")
		if intoIdx == -1 {
			return ""
		}
		return firstField(sql[intoIdx+len("INTO"):])
	}
	return firstField(sql[fromIdx+len("FROM"):])
}

func firstField(rest string) string {
	fields := strings.Fields(strings.TrimSpace(rest))
	if len(fields) == 0 {
		return ""
	}
	return strings.Trim(fields[0], "`;,")
}

func extractColumns(sql, upper string) []string {
	selIdx := strings.Index(upper, "SELECT")
	fromIdx := strings.Index(upper, "FROM")
	if selIdx == -1 || fromIdx == -1 || fromIdx < selIdx {
		return nil
	}
	clause := strings.TrimSpace(sql[selIdx+len("SELECT") : fromIdx])
	var cols []string
	for _, field := range strings.Split(clause, ",") {
		field = strings.TrimSpace(field)
		if field == "" || field == "*" || strings.Contains(strings.ToUpper(field), "DISTINCT") {
			continue
		}
		cols = append(cols, field)
	}
	return cols
}

func extractPredicates(sql, upper string) []string {
	whereIdx := strings.Index(upper, "WHERE")
	if whereIdx == -1 {
		return nil
	}
	rest := sql[whereIdx+len("WHERE"):]
	stop := len(rest)
	upperRest := strings.ToUpper(rest)
	for _, kw := range []string{"GROUP BY", "ORDER BY", "LIMIT"} {
		if idx := strings.Index(upperRest, kw); idx != -1 && idx < stop {
			stop = idx
		}
	}
	clause := rest[:stop]
	var preds []string
	splitter := regexp.MustCompile(`(?i)\s+AND\s+|\s+OR\s+`)
	for _, p := range splitter.Split(clause, -1) {
		p = strings.TrimSpace(p)
		if p != "" {
			preds = append(preds, p)
		}
	}
	return preds
}

func extractJoins(upper string) []JoinClause {
	matches := reJoin.FindAllStringSubmatch(upper, -1)
	joins := make([]JoinClause, 0, len(matches))
	for _, m := range matches {
		modifier := strings.TrimSpace(m[1])
		if modifier == "" {
			modifier = "INNER"
		}
		joins = append(joins, JoinClause{Modifier: modifier})
	}
	return joins
}

func extractAggregations(upper string) []string {
	var aggs []string
	for _, kw := range reAggKeywords {
		if strings.Contains(upper, kw) {
			aggs = append(aggs, strings.TrimSuffix(kw, "("))
		}
	}
	return aggs
}

func (a *Analyzer) evict() {
	if len(a.history) == 0 {
		return
	}
	cutoff := a.NowMs() - a.TimeWindowMs
	kept := a.history[:0]
	for _, p := range a.history {
		if p.TimestampMs >= cutoff {
			kept = append(kept, p)
		}
	}
	a.history = kept
}

// History returns a defensive copy of the analyzer's current ring.
func (a *Analyzer) History() []QueryPattern {
	out := make([]QueryPattern, len(a.history))
	copy(out, a.history)
	return out
}
