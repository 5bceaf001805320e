package selector

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/columndb/columndb/internal/storageengine"
	"github.com/columndb/columndb/internal/workload"
)

func TestRecommendAnalyticalPrefersColumn(t *testing.T) {
	r := Recommend(workload.Profile{AnalyticalQueries: true})
	require.Equal(t, storageengine.KindColumn, r.Target)
	require.Equal(t, 0.9, r.Confidence)
}

func TestRecommendAnalyticalWriteHeavyFallsThrough(t *testing.T) {
	r := Recommend(workload.Profile{AnalyticalQueries: true, WriteHeavy: true, DataSizeGB: 20})
	require.Equal(t, storageengine.KindColumn, r.Target)
	require.Equal(t, 0.7, r.Confidence)
}

func TestRecommendPointLookupsPrefersRow(t *testing.T) {
	r := Recommend(workload.Profile{PointLookups: true})
	require.Equal(t, storageengine.KindRow, r.Target)
}

func TestRecommendComplexJoinsSmallDataPrefersMemory(t *testing.T) {
	r := Recommend(workload.Profile{ComplexJoins: true, DataSizeGB: 0.2})
	require.Equal(t, storageengine.KindMemory, r.Target)
	require.Equal(t, 0.75, r.Confidence)
}

func TestRecommendLargeDataPrefersColumn(t *testing.T) {
	r := Recommend(workload.Profile{DataSizeGB: 15})
	require.Equal(t, storageengine.KindColumn, r.Target)
	require.Equal(t, 0.7, r.Confidence)
}

func TestRecommendNoSignalDefaultsToMemory(t *testing.T) {
	r := Recommend(workload.Profile{})
	require.Equal(t, storageengine.KindMemory, r.Target)
	require.Equal(t, 0.5, r.Confidence)
}
