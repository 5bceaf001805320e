package storageengine

import (
	"regexp"
	"strings"
)

// extractKeyFilter is a best-effort substring scan for a
// "WHERE key = '...'" or "WHERE key = "..."" clause — the same kind of
// heuristic, not a parser, the workload analyzer uses (spec §4.6). It is
// deliberately tolerant: if it can't find a key filter it reports ok=false
// rather than erroring, since Query's contract is "simplified projection".
var reKeyFilter = regexp.MustCompile(`(?i)WHERE\s+key\s*=\s*['"]([^'"]*)['"]`)

func extractKeyFilter(sql string) (string, bool) {
	m := reKeyFilter.FindStringSubmatch(sql)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// extractFromTable extracts the first table name after FROM — the same
// best-effort substring scan the workload analyzer uses (spec §4.6 step 3).
func extractFromTable(sql string) (string, bool) {
	upper := strings.ToUpper(sql)
	fromIdx := strings.Index(upper, "FROM")
	if fromIdx == -1 {
		return "", false
	}
	rest := strings.TrimSpace(sql[fromIdx+len("FROM"):])
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return "", false
	}
	return strings.Trim(fields[0], "`;"), true
}

// extractSelectColumn extracts the first projected column name from a
// "SELECT col FROM ..." shaped string, skipping "*". Used by the column
// and row backends' simplified Query projection.
func extractSelectColumn(sql string) (string, bool) {
	upper := strings.ToUpper(sql)
	selIdx := strings.Index(upper, "SELECT")
	fromIdx := strings.Index(upper, "FROM")
	if selIdx == -1 || fromIdx == -1 || fromIdx < selIdx {
		return "", false
	}
	clause := strings.TrimSpace(sql[selIdx+len("SELECT") : fromIdx])
	first := strings.TrimSpace(strings.Split(clause, ",")[0])
	if first == "" || first == "*" {
		return "", false
	}
	return first, true
}
