package messages

import (
	"github.com/distributed-btg/pkg/actor"
	"github.com/distributed-btg/pkg/graph"
)

// PartitionVertex is one vertex of a partition's shard: its id, type tag and
// the full outgoing edge list (targets may live on other partitions).
type PartitionVertex struct {
	ID    graph.VertexID   `json:"id"`
	Type  graph.VertexType `json:"type"`
	Edges []graph.VertexID `json:"edges,omitempty"`
}

type LoadPartition struct {
	Vertices []PartitionVertex `json:"vertices"`
}

func (m *LoadPartition) Type() string { return "LoadPartition" }

type LoadPartitionComplete struct {
	VertexCount int       `json:"vertex_count"`
	Sender      actor.PID `json:"sender"`
}

func (m *LoadPartitionComplete) Type() string { return "LoadPartitionComplete" }
