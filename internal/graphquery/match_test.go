package graphquery

import (
	"testing"

	"github.com/columndb/columndb/internal/dberr"
	"github.com/columndb/columndb/internal/storageengine"
	"github.com/columndb/columndb/internal/types"
	"github.com/stretchr/testify/require"
)

func buildGraph() *storageengine.GraphEngine {
	g := storageengine.NewGraphEngine()
	alice := g.AddNode([]string{"Person"}, map[string]types.Value{"name": types.StringValue("alice")})
	bob := g.AddNode([]string{"Person"}, map[string]types.Value{"name": types.StringValue("bob")})
	carol := g.AddNode([]string{"Person", "Admin"}, map[string]types.Value{"name": types.StringValue("carol")})
	g.AddEdge(alice, bob, "FOLLOWS")
	g.AddEdge(carol, alice, "FOLLOWS")
	return g
}

func TestParseSingleNodePattern(t *testing.T) {
	p, err := Parse(`MATCH (p:Person {name:"alice"}) RETURN p.name`)
	require.NoError(t, err)
	require.Equal(t, "p", p.Start.Var)
	require.Equal(t, []string{"Person"}, p.Start.Labels)
	require.True(t, p.Start.Properties["name"].Equal(types.StringValue("alice")))
	require.Nil(t, p.Edge)
	require.Equal(t, []string{"p.name"}, p.Return)
}

func TestParseTwoNodeOutgoingPattern(t *testing.T) {
	p, err := Parse(`MATCH (a:Person)-[e:FOLLOWS]->(b:Person) RETURN b.name`)
	require.NoError(t, err)
	require.NotNil(t, p.Edge)
	require.Equal(t, storageengine.DirOutgoing, p.Edge.Direction)
	require.Equal(t, "FOLLOWS", p.Edge.Type)
	require.Equal(t, "b", p.End.Var)
}

func TestParseRejectsNonMatchVerb(t *testing.T) {
	_, err := Parse(`CREATE (p:Person) RETURN p`)
	require.ErrorIs(t, err, dberr.NotImplemented)
}

func TestMatchSingleNodeByLabelAndProperty(t *testing.T) {
	g := buildGraph()
	p, err := Parse(`MATCH (p:Person {name:"bob"}) RETURN p.name`)
	require.NoError(t, err)
	matches, err := Match(g, p)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	require.Equal(t, []string{"bob"}, Project(p, matches[0]))
}

func TestMatchTwoNodeOutgoingEdge(t *testing.T) {
	g := buildGraph()
	p, err := Parse(`MATCH (a:Person)-[e:FOLLOWS]->(b:Person) RETURN a.name, b.name`)
	require.NoError(t, err)
	matches, err := Match(g, p)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	seen := map[string]bool{}
	for _, m := range matches {
		row := Project(p, m)
		seen[row[0]+"->"+row[1]] = true
	}
	require.True(t, seen["alice->bob"])
	require.True(t, seen["carol->alice"])
}

func TestMatchRespectsLabelIntersection(t *testing.T) {
	g := buildGraph()
	p, err := Parse(`MATCH (p:Admin) RETURN p.name`)
	require.NoError(t, err)
	matches, err := Match(g, p)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	require.Equal(t, []string{"carol"}, Project(p, matches[0]))
}

func TestMatchIncomingDirection(t *testing.T) {
	g := buildGraph()
	p, err := Parse(`MATCH (b:Person)<-[e:FOLLOWS]-(a:Person) RETURN b.name, a.name`)
	require.NoError(t, err)
	matches, err := Match(g, p)
	require.NoError(t, err)
	require.Len(t, matches, 2)
}
