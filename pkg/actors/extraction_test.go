package actors

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/distributed-btg/pkg/actor"
	"github.com/distributed-btg/pkg/cluster"
	"github.com/distributed-btg/pkg/graph"
	"github.com/distributed-btg/pkg/messages"
)

// startPipeline wires a coordinator, a collector and numPartitions partition
// actors in a single-machine system and kicks off the extraction.
func startPipeline(t *testing.T, g *graph.Graph, numPartitions int, outputPath string) (*actor.System, *CoordinatorActor) {
	t.Helper()

	const machineID = "machine-0"
	provider := cluster.NewStaticProvider(machineID, false)
	system := actor.NewSystem(machineID, provider)

	coordinatorPID := actor.NewPID(machineID, "coordinator")
	coordinator := NewCoordinatorActor(coordinatorPID, system, 100)
	require.NoError(t, system.Register(coordinator))
	provider.SetCoordinator(coordinatorPID)

	collectorPID := actor.NewPID(machineID, "collector")
	collector := NewCollectorActor(collectorPID, system, outputPath, numPartitions)
	require.NoError(t, system.Register(collector))
	provider.RegisterActor(actor.CollectorRole, collectorPID)

	for i := 0; i < numPartitions; i++ {
		pid := actor.NewPID(machineID, fmt.Sprintf("partition-%d", i))
		require.NoError(t, system.Register(NewPartitionActor(pid, system)))
		provider.RegisterActor(actor.PartitionRole, pid)
	}

	require.NoError(t, system.Start())
	coordinator.StartExtraction(g)
	return system, coordinator
}

func waitForDone(t *testing.T, coordinator *CoordinatorActor) {
	t.Helper()
	select {
	case <-coordinator.Done():
	case <-time.After(10 * time.Second):
		t.Fatal("extraction did not finish in time")
	}
}

func TestExtractionPipelineBarrierScenario(t *testing.T) {
	g := graph.NewGraph()
	for _, id := range []graph.VertexID{10, 11, 20, 21} {
		g.AddVertex(id, graph.Transactional)
	}
	g.AddVertex(50, graph.Master)
	require.NoError(t, g.AddEdges([]graph.Edge{
		graph.NewEdge(10, 11),
		graph.NewEdge(20, 21),
		graph.NewEdge(50, 11),
		graph.NewEdge(50, 20),
	}))

	outputPath := filepath.Join(t.TempDir(), "btg.txt")
	system, coordinator := startPipeline(t, g, 3, outputPath)
	defer system.Shutdown()

	waitForDone(t, coordinator)

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	require.Equal(t,
		"10 10\n11 10\n20 20\n21 20\n50 [10,20]\n",
		string(data))
}

func TestExtractionPipelineChainAcrossPartitions(t *testing.T) {
	// A chain long enough that labels must cross partition boundaries on
	// every hop.
	const n = 12
	g := graph.NewGraph()
	for i := 1; i <= n; i++ {
		g.AddVertex(graph.VertexID(i), graph.Transactional)
	}
	var edges []graph.Edge
	for i := n; i > 1; i-- {
		edges = append(edges, graph.NewEdge(graph.VertexID(i), graph.VertexID(i-1)))
	}
	require.NoError(t, g.AddEdges(edges))

	outputPath := filepath.Join(t.TempDir(), "btg.txt")
	system, coordinator := startPipeline(t, g, 4, outputPath)
	defer system.Shutdown()

	waitForDone(t, coordinator)

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)

	expected := ""
	for i := 1; i <= n; i++ {
		expected += fmt.Sprintf("%d 1\n", i)
	}
	require.Equal(t, expected, string(data))
}

// Negative vertex ids must shard, route and converge like positive ones; the
// smallest id in the component wins even below zero.
func TestExtractionPipelineNegativeIDs(t *testing.T) {
	g := graph.NewGraph()
	for _, id := range []graph.VertexID{-5, -1, 3} {
		g.AddVertex(id, graph.Transactional)
	}
	require.NoError(t, g.AddEdges([]graph.Edge{
		graph.NewEdge(-5, -1),
		graph.NewEdge(-1, 3),
	}))

	outputPath := filepath.Join(t.TempDir(), "btg.txt")
	system, coordinator := startPipeline(t, g, 2, outputPath)
	defer system.Shutdown()

	waitForDone(t, coordinator)

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	require.Equal(t, "-5 -5\n-1 -5\n3 -5\n", string(data))
}

// After the run finishes the coordinator tells every worker to shut down, so
// their mailboxes stop accepting messages.
func TestExtractionPipelineShutsDownWorkers(t *testing.T) {
	g := graph.NewGraph()
	g.AddVertex(1, graph.Transactional)

	outputPath := filepath.Join(t.TempDir(), "btg.txt")
	system, coordinator := startPipeline(t, g, 2, outputPath)
	defer system.Shutdown()

	waitForDone(t, coordinator)

	partition := actor.NewPID("machine-0", "partition-0")
	require.Eventually(t, func() bool {
		err := system.Send(partition, &messages.StartSuperstep{})
		return errors.Is(err, actor.ErrMailboxClosed)
	}, 5*time.Second, 10*time.Millisecond)
}

func TestExtractionPipelineIsolatedMaster(t *testing.T) {
	g := graph.NewGraph()
	g.AddVertex(99, graph.Master)

	outputPath := filepath.Join(t.TempDir(), "btg.txt")
	system, coordinator := startPipeline(t, g, 2, outputPath)
	defer system.Shutdown()

	waitForDone(t, coordinator)

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	require.Equal(t, "99 [99]\n", string(data))
}
