package messages

import (
	"github.com/distributed-btg/pkg/actor"
	"github.com/distributed-btg/pkg/btg"
	"github.com/distributed-btg/pkg/graph"
)

// StartSuperstep tells a partition to run one superstep. ExpectedBatches is
// the number of VertexBatch messages addressed to this partition during the
// previous superstep; the partition waits for all of them before computing,
// which gives every vertex its complete inbox regardless of sender order.
type StartSuperstep struct {
	Superstep       int `json:"superstep"`
	ExpectedBatches int `json:"expected_batches"`
}

func (m *StartSuperstep) Type() string { return "StartSuperstep" }

// Delivery is one propagation message together with its target vertex.
type Delivery struct {
	Target  graph.VertexID `json:"target"`
	Message btg.Message    `json:"message"`
}

// VertexBatch carries all propagation messages one partition sends another
// for delivery in the given superstep. Each batch is sent exactly once.
type VertexBatch struct {
	Superstep  int        `json:"superstep"`
	Deliveries []Delivery `json:"deliveries"`
	Sender     actor.PID  `json:"sender"`
}

func (m *VertexBatch) Type() string { return "VertexBatch" }

// SuperstepComplete reports a partition's superstep outcome to the
// coordinator: how many propagation messages it emitted, how many of its
// vertices are still active, and how many batches it sent to each peer
// partition (keyed by actor id) so the coordinator can derive the next
// round's ExpectedBatches.
type SuperstepComplete struct {
	Superstep      int            `json:"superstep"`
	MessagesSent   int            `json:"messages_sent"`
	ActiveVertices int            `json:"active_vertices"`
	BatchesSent    map[string]int `json:"batches_sent,omitempty"`
	Sender         actor.PID      `json:"sender"`
}

func (m *SuperstepComplete) Type() string { return "SuperstepComplete" }
