package workload

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func fixedClock(t int64) func() int64 {
	return func() int64 { return t }
}

func TestRecordQueryClassifiesSelect(t *testing.T) {
	a := New(60000, fixedClock(1000))
	a.RecordQuery("SELECT name, age FROM users WHERE age > 18", 1.2, 3)
	require.Len(t, a.History(), 1)
	p := a.History()[0]
	require.Equal(t, KindSelect, p.Kind)
	require.Equal(t, "users", p.Table)
	require.Equal(t, []string{"name", "age"}, p.Columns)
	require.Len(t, p.Predicates, 1)
	require.Empty(t, p.Joins)
}

func TestRecordQueryExtractsJoinModifierAndAggregation(t *testing.T) {
	a := New(60000, fixedClock(1000))
	a.RecordQuery("SELECT COUNT(*) FROM orders o LEFT JOIN users u ON o.uid = u.id", 4.0, 100)
	p := a.History()[0]
	require.Len(t, p.Joins, 1)
	require.Equal(t, "LEFT", p.Joins[0].Modifier)
	require.Equal(t, []string{"COUNT"}, p.Aggregations)
}

func TestRecordQueryDefaultsInnerJoin(t *testing.T) {
	a := New(60000, fixedClock(1000))
	a.RecordQuery("SELECT * FROM a JOIN b ON a.id=b.id", 1.0, 1)
	p := a.History()[0]
	require.Len(t, p.Joins, 1)
	require.Equal(t, "INNER", p.Joins[0].Modifier)
}

func TestRecordQueryEvictsOutsideWindow(t *testing.T) {
	now := int64(1000)
	a := New(100, func() int64 { return now })
	a.RecordQuery("SELECT * FROM a", 1.0, 1)
	now = 1250
	a.RecordQuery("SELECT * FROM b", 1.0, 1)
	require.Len(t, a.History(), 1)
	require.Equal(t, "b", a.History()[0].Table)
}

func TestGenerateWorkloadProfileEmptyHistory(t *testing.T) {
	a := New(60000, fixedClock(0))
	require.Equal(t, Profile{}, a.GenerateWorkloadProfile())
}

func TestGenerateWorkloadProfileAnalytical(t *testing.T) {
	a := New(60000, fixedClock(1000))
	for i := 0; i < 5; i++ {
		a.RecordQuery("SELECT COUNT(*) FROM sales GROUP BY region", 10, 500000)
	}
	profile := a.GenerateWorkloadProfile()
	require.True(t, profile.AnalyticalQueries)
	require.False(t, profile.WriteHeavy)
}

func TestGenerateWorkloadProfilePointLookups(t *testing.T) {
	a := New(60000, fixedClock(1000))
	for i := 0; i < 5; i++ {
		a.RecordQuery("SELECT * FROM users WHERE id = 1", 0.1, 1)
	}
	profile := a.GenerateWorkloadProfile()
	require.True(t, profile.PointLookups)
	require.False(t, profile.AnalyticalQueries)
}

func TestGenerateWorkloadProfileWriteHeavy(t *testing.T) {
	a := New(60000, fixedClock(1000))
	a.RecordQuery("SELECT * FROM a", 1, 1)
	a.RecordQuery("INSERT INTO a VALUES (1)", 1, 1)
	a.RecordQuery("UPDATE a SET x=1", 1, 1)
	a.RecordQuery("DELETE FROM a", 1, 1)
	profile := a.GenerateWorkloadProfile()
	require.True(t, profile.WriteHeavy)
}
