// Package selector implements the storage-backend recommendation rule
// (spec §4.7): a pure function from a workload.Profile to a
// Recommendation, with no side effects and no dependency on any running
// engine.
package selector

import (
	"github.com/columndb/columndb/internal/storageengine"
	"github.com/columndb/columndb/internal/workload"
)

// Recommendation is the selector's output (spec §3 "StorageRecommendation").
type Recommendation struct {
	Target     storageengine.Kind
	Confidence float64
	Reasoning  string
}

// Recommend evaluates the fixed decision table against p, first match
// wins. Graph is never recommended here: per spec §4.7, the graph backend
// is chosen only by an explicit schema hint, never inferred from query
// shape.
func Recommend(p workload.Profile) Recommendation {
	switch {
	case p.AnalyticalQueries && !p.WriteHeavy:
		return Recommendation{storageengine.KindColumn, 0.9, "analytical workload, column-oriented scans"}
	case p.PointLookups && !p.AnalyticalQueries:
		return Recommendation{storageengine.KindRow, 0.85, "point-lookup workload, row layout wins"}
	case p.ComplexJoins && p.DataSizeGB < 1:
		return Recommendation{storageengine.KindMemory, 0.75, "small hot working set with joins"}
	case p.DataSizeGB > 10:
		return Recommendation{storageengine.KindColumn, 0.7, "large data favors compression"}
	default:
		return Recommendation{storageengine.KindMemory, 0.5, "no strong signal; default"}
	}
}
