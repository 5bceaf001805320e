package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTableFromDDLAndCSV(t *testing.T) {
	dir := t.TempDir()
	ddlPath := filepath.Join(dir, "users.sql")
	csvPath := filepath.Join(dir, "users.csv")

	require.NoError(t, osWriteFile(ddlPath, "CREATE TABLE users (id BIGINT, name VARCHAR(255), active BOOLEAN)"))
	require.NoError(t, osWriteFile(csvPath, "1,alice,true\n2,bob,false\n"))

	tbl, err := tableFromDDLAndCSV(ddlPath, csvPath)
	require.NoError(t, err)
	require.Equal(t, "users", tbl.Name)
	require.Equal(t, 2, tbl.RowCount())

	v, err := tbl.Get(0, 1)
	require.NoError(t, err)
	require.Equal(t, "alice", v.AsString())
}

func TestTableFromDDLAndCSVArityMismatch(t *testing.T) {
	dir := t.TempDir()
	ddlPath := filepath.Join(dir, "users.sql")
	csvPath := filepath.Join(dir, "users.csv")

	require.NoError(t, osWriteFile(ddlPath, "CREATE TABLE users (id BIGINT, name VARCHAR(255))"))
	require.NoError(t, osWriteFile(csvPath, "1,alice,extra\n"))

	_, err := tableFromDDLAndCSV(ddlPath, csvPath)
	require.Error(t, err)
}

func TestGraphFromCSV(t *testing.T) {
	dir := t.TempDir()
	nodesPath := filepath.Join(dir, "nodes.csv")
	edgesPath := filepath.Join(dir, "edges.csv")

	require.NoError(t, osWriteFile(nodesPath, "1,Person,name=alice\n2,Person,name=bob\n"))
	require.NoError(t, osWriteFile(edgesPath, "1,2,FOLLOWS\n"))

	g, err := graphFromCSV(nodesPath, edgesPath)
	require.NoError(t, err)
	require.Len(t, g.Nodes(), 2)

	n0, err := g.Node(0)
	require.NoError(t, err)
	require.Equal(t, []string{"Person"}, n0.Labels)
	require.Equal(t, "alice", n0.Properties["name"].AsString())
}

func TestGraphFromCSVUnknownEdgeEndpoint(t *testing.T) {
	dir := t.TempDir()
	nodesPath := filepath.Join(dir, "nodes.csv")
	edgesPath := filepath.Join(dir, "edges.csv")

	require.NoError(t, osWriteFile(nodesPath, "1,Person,\n"))
	require.NoError(t, osWriteFile(edgesPath, "1,99,FOLLOWS\n"))

	_, err := graphFromCSV(nodesPath, edgesPath)
	require.Error(t, err)
}

func osWriteFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}
