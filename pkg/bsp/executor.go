// Package bsp runs a BTG extraction to fixpoint inside a single process.
// It enforces the bulk-synchronous contract the computation is written
// against: all vertices of a superstep observe only messages sent in the
// previous superstep, each message is delivered exactly once, and a halted
// vertex is reactivated by any inbound message.
package bsp

import (
	"fmt"
	"log"
	"sort"

	"github.com/distributed-btg/pkg/btg"
	"github.com/distributed-btg/pkg/graph"
)

// Executor drives btg.Computation over a whole graph, superstep by
// superstep, until no vertex is active and no message is in flight.
type Executor struct {
	graph       *graph.Graph
	computation *btg.Computation
	values      map[graph.VertexID]*btg.VertexValue

	// inboxes are double-buffered per superstep: compute reads current,
	// sends go to next, and the buffers swap at the round barrier.
	current map[graph.VertexID][]btg.Message
	next    map[graph.VertexID][]btg.Message

	active    map[graph.VertexID]bool
	superstep int
	sent      int

	maxSupersteps int
}

func NewExecutor(g *graph.Graph, maxSupersteps int) *Executor {
	e := &Executor{
		graph:         g,
		computation:   btg.NewComputation(),
		values:        make(map[graph.VertexID]*btg.VertexValue, g.VertexCount()),
		current:       make(map[graph.VertexID][]btg.Message),
		next:          make(map[graph.VertexID][]btg.Message),
		active:        make(map[graph.VertexID]bool, g.VertexCount()),
		maxSupersteps: maxSupersteps,
	}
	for id, v := range g.Vertices {
		e.values[id] = btg.NewVertexValue(v.Type)
		e.active[id] = true
	}
	return e
}

func (e *Executor) Superstep() int {
	return e.superstep
}

func (e *Executor) SendToAllEdges(from *graph.Vertex, msg btg.Message) {
	for _, target := range from.Edges {
		e.next[target] = append(e.next[target], msg)
		e.sent++
	}
}

func (e *Executor) VoteToHalt(id graph.VertexID) {
	e.active[id] = false
}

// Run executes supersteps until global fixpoint. It returns the number of
// supersteps executed, or an error when maxSupersteps is exceeded (a safety
// valve; a finite graph always converges within the diameter of its
// transactional sub-graph).
func (e *Executor) Run() (int, error) {
	for {
		if e.maxSupersteps > 0 && e.superstep >= e.maxSupersteps {
			return e.superstep, fmt.Errorf("no fixpoint after %d supersteps", e.maxSupersteps)
		}

		e.sent = 0
		ran := e.runSuperstep()
		log.Printf("[bsp] superstep %d: %d vertices computed, %d messages sent", e.superstep, ran, e.sent)

		// Barrier: this superstep's sends become the next superstep's
		// inboxes, and any recipient is reactivated.
		e.current, e.next = e.next, make(map[graph.VertexID][]btg.Message)
		for id := range e.current {
			e.active[id] = true
		}
		e.superstep++

		if e.sent == 0 && !e.anyActive() {
			return e.superstep, nil
		}
	}
}

func (e *Executor) runSuperstep() int {
	// Deterministic vertex order; the algorithm does not depend on it, but
	// it keeps runs reproducible.
	ids := make([]graph.VertexID, 0, len(e.active))
	for id, active := range e.active {
		if active || len(e.current[id]) > 0 {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		vertex := e.graph.Vertices[id]
		e.computation.Compute(e, vertex, e.values[id], e.current[id])
	}
	return len(ids)
}

func (e *Executor) anyActive() bool {
	for _, active := range e.active {
		if active {
			return true
		}
	}
	return false
}

// Value exposes the final state of a vertex for result formatting.
func (e *Executor) Value(id graph.VertexID) *btg.VertexValue {
	return e.values[id]
}

// Values returns the full vertex state map, keyed by vertex id.
func (e *Executor) Values() map[graph.VertexID]*btg.VertexValue {
	return e.values
}
