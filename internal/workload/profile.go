package workload

// Profile is the derived roll-up over an Analyzer's current history
// window (spec §3 "WorkloadProfile").
type Profile struct {
	ReadHeavy         bool
	WriteHeavy        bool
	AnalyticalQueries bool
	PointLookups      bool
	ComplexJoins      bool
	DataSizeGB        float64
	QueryComplexity   float64
}

// GenerateWorkloadProfile rolls up the analyzer's current ring per spec
// §4.6's table. An empty history yields the zero-valued profile: every
// ratio and boolean field is false/zero.
func (a *Analyzer) GenerateWorkloadProfile() Profile {
	history := a.history
	total := len(history)
	if total == 0 {
		return Profile{}
	}

	var selects, writes, selectsWithAggs, selectsWithPredsNoJoins, selectsWithJoins int
	var rowsAffected int64
	var complexitySum float64

	for _, p := range history {
		switch p.Kind {
		case KindSelect:
			selects++
			if len(p.Aggregations) > 0 {
				selectsWithAggs++
			}
			if len(p.Predicates) > 0 && len(p.Joins) == 0 {
				selectsWithPredsNoJoins++
			}
			if len(p.Joins) > 0 {
				selectsWithJoins++
			}
		case KindInsert, KindUpdate, KindDelete:
			writes++
		}
		rowsAffected += p.RowsAffected
		complexitySum += clamp01(float64(len(p.Joins)+len(p.Predicates)+len(p.Aggregations)) / 10.0)
	}

	readRatio := float64(selects) / float64(total)
	writeRatio := float64(writes) / float64(total)

	profile := Profile{
		ReadHeavy:       readRatio > 0.7,
		WriteHeavy:      writeRatio > 0.3,
		DataSizeGB:      float64(rowsAffected) * 1e-6,
		QueryComplexity: complexitySum / float64(total),
	}
	if selects > 0 {
		profile.AnalyticalQueries = float64(selectsWithAggs)/float64(selects) > 0.3
		profile.PointLookups = float64(selectsWithPredsNoJoins)/float64(selects) > 0.5
		profile.ComplexJoins = float64(selectsWithJoins)/float64(selects) > 0.2
	}
	return profile
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
