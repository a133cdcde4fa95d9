package btg

import "github.com/distributed-btg/pkg/graph"

// ComputeContext is the per-invocation view a vertex gets of the BSP
// substrate: the current superstep, message emission along edges, and the
// halt vote. The round index and active flag are owned by the substrate and
// passed in here, never held as ambient state.
type ComputeContext interface {
	Superstep() int
	SendToAllEdges(from *graph.Vertex, msg Message)
	VoteToHalt(id graph.VertexID)
}

// Computation is the per-vertex, per-superstep transition function of the BTG
// extraction. Transactional vertices propagate the minimum BTG id through the
// graph; master vertices absorb incoming ids per neighbour without relaying
// them, so each master is a barrier between BTGs while still recording the
// set of BTGs it is involved in.
//
// Convergence: every label slot and stored minimum is non-increasing and
// bounded below by the smallest vertex id in its connected transactional
// sub-graph, so a fixpoint is reached within that sub-graph's diameter.
type Computation struct{}

func NewComputation() *Computation {
	return &Computation{}
}

// Compute runs one superstep for one vertex. Vertices of unknown type are
// inert: they take neither branch and immediately vote to halt.
func (c *Computation) Compute(ctx ComputeContext, vertex *graph.Vertex, value *VertexValue, msgs []Message) {
	switch value.VertexType() {
	case graph.Master:
		c.computeMaster(value, msgs)
	case graph.Transactional:
		c.computeTransactional(ctx, vertex, value, msgs)
	}
	ctx.VoteToHalt(vertex.ID)
}

// computeMaster records the minimum label per sending neighbour. Membership
// is derived from the stored minima; a master without neighbours belongs to
// the BTG named by its own id.
func (c *Computation) computeMaster(value *VertexValue, msgs []Message) {
	for _, msg := range msgs {
		value.RecordNeighbourMin(msg.SenderID, msg.BTGID)
	}
}

// computeTransactional adopts the smallest label among the current one and
// all inbound messages. On superstep 0, or whenever the label shrinks, the
// new label is committed and broadcast along every edge.
func (c *Computation) computeTransactional(ctx ComputeContext, vertex *graph.Vertex, value *VertexValue, msgs []Message) {
	current := value.Label(vertex.ID)
	newMin := current
	for _, msg := range msgs {
		if msg.BTGID < newMin {
			newMin = msg.BTGID
		}
	}

	if ctx.Superstep() == 0 || newMin != current {
		value.CommitLabel(newMin)
		ctx.SendToAllEdges(vertex, Message{SenderID: vertex.ID, BTGID: newMin})
	}
}
