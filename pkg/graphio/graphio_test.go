package graphio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/distributed-btg/pkg/arp"
	"github.com/distributed-btg/pkg/btg"
	"github.com/distributed-btg/pkg/graph"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadGraph(t *testing.T) {
	dir := t.TempDir()
	vertexPath := writeFile(t, dir, "vertices.csv",
		"id,type\n10,transactional\n11,transactional\n50,master\n")
	edgePath := writeFile(t, dir, "edges.csv",
		"source,target\n10,11\n50,11\n")

	g, err := LoadGraph(vertexPath, edgePath)
	require.NoError(t, err)
	require.Equal(t, 3, g.VertexCount())
	require.Equal(t, 2, g.EdgeCount())
	require.Equal(t, graph.Master, g.Vertices[50].Type)
	require.Equal(t, []graph.VertexID{11}, g.Vertices[50].Edges)
}

func TestReadVerticesKeepsUnknownTypes(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "vertices.csv", "1,transactional\n2,widget\n")

	vertices, err := ReadVertices(path)
	require.NoError(t, err)
	require.Len(t, vertices, 2)
	require.Equal(t, graph.Unknown, vertices[1].Type)
}

func TestReadVerticesRejectsBadID(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "vertices.csv", "1,transactional\nxyz,master\n")

	_, err := ReadVertices(path)
	require.Error(t, err)
}

func TestWriteBTGResults(t *testing.T) {
	transactional := btg.NewVertexValue(graph.Transactional)
	transactional.CommitLabel(10)

	master := btg.NewVertexValue(graph.Master)
	master.RecordNeighbourMin(11, 10)
	master.RecordNeighbourMin(20, 20)

	unset := btg.NewVertexValue(graph.Transactional)

	values := map[graph.VertexID]*btg.VertexValue{
		11: transactional,
		50: master,
		12: unset,
	}

	path := filepath.Join(t.TempDir(), "out", "btg.txt")
	require.NoError(t, WriteBTGResults(path, values))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "11 10\n12 12\n50 [10,20]\n", string(data))
}

func TestWriteARPResults(t *testing.T) {
	values := map[graph.VertexID]*arp.VertexValue{
		1: {CurrentPartition: 2, PartitionHistory: []int{0, 2}},
		2: {CurrentPartition: 0},
	}

	path := filepath.Join(t.TempDir(), "arp.txt")
	require.NoError(t, WriteARPResults(path, values, true))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "1 2 [0,2]\n2 0 []\n", string(data))

	require.NoError(t, WriteARPResults(path, values, false))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "1 2\n2 0\n", string(data))
}
