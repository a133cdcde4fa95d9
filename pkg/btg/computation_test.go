package btg

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/distributed-btg/pkg/graph"
)

// recordingContext captures what a single Compute invocation does with the
// substrate primitives.
type recordingContext struct {
	superstep int
	sent      map[graph.VertexID][]Message
	halted    []graph.VertexID
}

func newRecordingContext(superstep int) *recordingContext {
	return &recordingContext{
		superstep: superstep,
		sent:      make(map[graph.VertexID][]Message),
	}
}

func (c *recordingContext) Superstep() int { return c.superstep }

func (c *recordingContext) SendToAllEdges(from *graph.Vertex, msg Message) {
	for _, target := range from.Edges {
		c.sent[target] = append(c.sent[target], msg)
	}
}

func (c *recordingContext) VoteToHalt(id graph.VertexID) {
	c.halted = append(c.halted, id)
}

func (c *recordingContext) totalSent() int {
	n := 0
	for _, msgs := range c.sent {
		n += len(msgs)
	}
	return n
}

func TestTransactionalBroadcastsOwnIDOnSuperstepZero(t *testing.T) {
	vertex := &graph.Vertex{ID: 5, Type: graph.Transactional, Edges: []graph.VertexID{1, 2}}
	value := NewVertexValue(graph.Transactional)
	ctx := newRecordingContext(0)

	NewComputation().Compute(ctx, vertex, value, nil)

	require.Equal(t, graph.VertexID(5), value.Label(5))
	require.Equal(t, []Message{{SenderID: 5, BTGID: 5}}, ctx.sent[1])
	require.Equal(t, []Message{{SenderID: 5, BTGID: 5}}, ctx.sent[2])
	require.Equal(t, []graph.VertexID{5}, ctx.halted, "vertex must vote to halt every superstep")
}

func TestTransactionalAdoptsSmallerLabel(t *testing.T) {
	vertex := &graph.Vertex{ID: 5, Type: graph.Transactional, Edges: []graph.VertexID{1}}
	value := NewVertexValue(graph.Transactional)
	value.CommitLabel(5)
	ctx := newRecordingContext(1)

	NewComputation().Compute(ctx, vertex, value, []Message{
		{SenderID: 7, BTGID: 4},
		{SenderID: 2, BTGID: 2},
	})

	require.Equal(t, graph.VertexID(2), value.Label(5))
	require.Equal(t, []Message{{SenderID: 5, BTGID: 2}}, ctx.sent[1],
		"a changed label is re-broadcast with this vertex as sender")
}

func TestTransactionalStaysSilentWhenUnchanged(t *testing.T) {
	vertex := &graph.Vertex{ID: 5, Type: graph.Transactional, Edges: []graph.VertexID{1}}
	value := NewVertexValue(graph.Transactional)
	value.CommitLabel(2)
	ctx := newRecordingContext(3)

	NewComputation().Compute(ctx, vertex, value, []Message{{SenderID: 7, BTGID: 6}})

	require.Equal(t, graph.VertexID(2), value.Label(5), "label is non-increasing")
	require.Zero(t, ctx.totalSent(), "no emit when the minimum did not change after superstep 0")
}

func TestMasterAbsorbsAndNeverRelays(t *testing.T) {
	vertex := &graph.Vertex{ID: 50, Type: graph.Master, Edges: []graph.VertexID{11, 20}}
	value := NewVertexValue(graph.Master)
	ctx := newRecordingContext(1)

	NewComputation().Compute(ctx, vertex, value, []Message{
		{SenderID: 11, BTGID: 10},
		{SenderID: 20, BTGID: 20},
	})

	require.Zero(t, ctx.totalSent(), "masters never originate or relay messages")
	require.Equal(t, []graph.VertexID{10, 20}, value.MembershipSet(50))
	require.Equal(t, []graph.VertexID{50}, ctx.halted)
}

func TestUnknownVertexTypeIsInert(t *testing.T) {
	vertex := &graph.Vertex{ID: 5, Type: graph.Unknown, Edges: []graph.VertexID{1}}
	value := NewVertexValue(graph.Unknown)
	ctx := newRecordingContext(0)

	NewComputation().Compute(ctx, vertex, value, []Message{{SenderID: 1, BTGID: 1}})

	require.Zero(t, ctx.totalSent())
	require.Equal(t, []graph.VertexID{5}, ctx.halted, "an inert vertex still votes to halt")
}
