package messages

import (
	"github.com/distributed-btg/pkg/actor"
	"github.com/distributed-btg/pkg/btg"
	"github.com/distributed-btg/pkg/graph"
)

// CollectResults asks a partition to ship its final vertex values to the
// collector.
type CollectResults struct {
	Collector actor.PID `json:"collector"`
}

func (m *CollectResults) Type() string { return "CollectResults" }

// VertexResult is one vertex's final state.
type VertexResult struct {
	ID    graph.VertexID   `json:"id"`
	Value *btg.VertexValue `json:"value"`
}

type ResultChunk struct {
	Results []VertexResult `json:"results"`
	Sender  actor.PID      `json:"sender"`
}

func (m *ResultChunk) Type() string { return "ResultChunk" }

// ResultsWritten is the collector's confirmation that the output file is on
// disk.
type ResultsWritten struct {
	Path        string    `json:"path"`
	VertexCount int       `json:"vertex_count"`
	Sender      actor.PID `json:"sender"`
}

func (m *ResultsWritten) Type() string { return "ResultsWritten" }
