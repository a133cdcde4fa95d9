package actors

import (
	"context"
	"log"
	"sort"

	"github.com/distributed-btg/pkg/actor"
	"github.com/distributed-btg/pkg/btg"
	"github.com/distributed-btg/pkg/graph"
	"github.com/distributed-btg/pkg/messages"
)

// shardVertex pairs a vertex of this partition's shard with its mutable
// value. The value is owned by this actor alone for the whole run.
type shardVertex struct {
	vertex *graph.Vertex
	value  *btg.VertexValue
	active bool
}

// PartitionActor owns a shard of the graph and runs the BTG computation on
// it, one superstep at a time. Propagation messages for vertices on other
// partitions are batched per peer and shipped tagged with the superstep they
// must be visible in; a superstep only starts once every expected batch has
// arrived, so the per-vertex inbox is complete regardless of sender order.
type PartitionActor struct {
	*actor.BaseActor
	computation *btg.Computation

	shard map[graph.VertexID]*shardVertex

	// inboxes buffers inbound propagation messages keyed by the superstep
	// they are delivered in.
	inboxes         map[int]map[graph.VertexID][]btg.Message
	receivedBatches map[int]int

	pending *messages.StartSuperstep

	// transient per-superstep state while computing
	superstep int
	outgoing  map[string][]messages.Delivery
	sent      int

	peers     []actor.PID
	peerIndex map[string]int
}

func NewPartitionActor(pid actor.PID, system *actor.System) *PartitionActor {
	return &PartitionActor{
		BaseActor:       actor.NewBaseActor(pid, system, 1000),
		computation:     btg.NewComputation(),
		shard:           make(map[graph.VertexID]*shardVertex),
		inboxes:         make(map[int]map[graph.VertexID][]btg.Message),
		receivedBatches: make(map[int]int),
	}
}

func (p *PartitionActor) Start(ctx context.Context) {
	p.Ctx, p.Cancel = context.WithCancel(ctx)
	p.Wg.Add(1)

	go func() {
		defer p.Wg.Done()
		p.run()
	}()
}

func (p *PartitionActor) run() {
	log.Printf("[%s] started", p.PID().ActorID)

	for {
		select {
		case <-p.Ctx.Done():
			log.Printf("[%s] shutting down", p.PID().ActorID)
			return
		case msg, ok := <-p.Mailbox.Receive():
			if !ok {
				return
			}
			p.Receive(p.Ctx, msg)
		}
	}
}

func (p *PartitionActor) Receive(ctx context.Context, msg actor.Message) {
	switch m := msg.(type) {
	case *messages.LoadPartition:
		p.handleLoadPartition(m)
	case *messages.StartSuperstep:
		p.pending = m
		p.maybeRunSuperstep()
	case *messages.VertexBatch:
		p.handleVertexBatch(m)
	case *messages.CollectResults:
		p.handleCollectResults(m)
	case *messages.ExtractionComplete:
		log.Printf("[%s] extraction complete after %d supersteps", p.PID().ActorID, m.Supersteps)
	case *messages.Shutdown:
		log.Printf("[%s] shutdown requested", p.PID().ActorID)
		p.Mailbox.Close()
	default:
		log.Printf("[%s] received unknown message type: %s", p.PID().ActorID, msg.Type())
	}
}

func (p *PartitionActor) handleLoadPartition(msg *messages.LoadPartition) {
	p.resolvePeers()

	for _, pv := range msg.Vertices {
		p.shard[pv.ID] = &shardVertex{
			vertex: &graph.Vertex{ID: pv.ID, Type: pv.Type, Edges: pv.Edges},
			value:  btg.NewVertexValue(pv.Type),
			active: true,
		}
	}

	log.Printf("[%s] loaded %d vertices", p.PID().ActorID, len(p.shard))
	p.Send(p.System.GetCoordinator(), &messages.LoadPartitionComplete{
		VertexCount: len(p.shard),
		Sender:      p.PID(),
	})
}

// resolvePeers captures the deterministic partition ordering shared by all
// machines; every partition derives the same vertex-to-partition mapping
// from it.
func (p *PartitionActor) resolvePeers() {
	p.peers = p.System.GetActors(actor.PartitionRole)
	p.peerIndex = make(map[string]int, len(p.peers))
	for i, pid := range p.peers {
		p.peerIndex[pid.String()] = i
	}
}

func (p *PartitionActor) handleVertexBatch(msg *messages.VertexBatch) {
	inbox := p.inbox(msg.Superstep)
	for _, d := range msg.Deliveries {
		inbox[d.Target] = append(inbox[d.Target], d.Message)
	}
	p.receivedBatches[msg.Superstep]++
	p.maybeRunSuperstep()
}

func (p *PartitionActor) inbox(superstep int) map[graph.VertexID][]btg.Message {
	inbox, exists := p.inboxes[superstep]
	if !exists {
		inbox = make(map[graph.VertexID][]btg.Message)
		p.inboxes[superstep] = inbox
	}
	return inbox
}

// maybeRunSuperstep runs the pending superstep once all batches addressed to
// it have arrived. This is the partition's side of the round barrier.
func (p *PartitionActor) maybeRunSuperstep() {
	if p.pending == nil {
		return
	}
	if p.receivedBatches[p.pending.Superstep] < p.pending.ExpectedBatches {
		return
	}

	start := p.pending
	p.pending = nil
	p.runSuperstep(start.Superstep)
}

func (p *PartitionActor) runSuperstep(superstep int) {
	p.superstep = superstep
	p.outgoing = make(map[string][]messages.Delivery)
	p.sent = 0

	inbox := p.inboxes[superstep]

	ids := make([]graph.VertexID, 0, len(p.shard))
	for id, sv := range p.shard {
		if sv.active || len(inbox[id]) > 0 {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		sv := p.shard[id]
		sv.active = true
		p.computation.Compute(p, sv.vertex, sv.value, inbox[id])
	}

	delete(p.inboxes, superstep)
	delete(p.receivedBatches, superstep)

	batchesSent := p.flushOutgoing(superstep + 1)

	active := 0
	for _, sv := range p.shard {
		if sv.active {
			active++
		}
	}

	p.Send(p.System.GetCoordinator(), &messages.SuperstepComplete{
		Superstep:      superstep,
		MessagesSent:   p.sent,
		ActiveVertices: active,
		BatchesSent:    batchesSent,
		Sender:         p.PID(),
	})
}

// flushOutgoing ships one batch per peer that has deliveries waiting, tagged
// with the superstep the messages become visible in.
func (p *PartitionActor) flushOutgoing(deliverIn int) map[string]int {
	batchesSent := make(map[string]int)
	for peerKey, deliveries := range p.outgoing {
		peer := p.peers[p.peerIndex[peerKey]]
		err := p.Send(peer, &messages.VertexBatch{
			Superstep:  deliverIn,
			Deliveries: deliveries,
			Sender:     p.PID(),
		})
		if err != nil {
			log.Printf("[%s] failed to send batch to %s: %v", p.PID().ActorID, peer, err)
			continue
		}
		batchesSent[peerKey]++
	}
	p.outgoing = nil
	return batchesSent
}

// Superstep, SendToAllEdges and VoteToHalt implement btg.ComputeContext for
// the superstep currently being run.

func (p *PartitionActor) Superstep() int {
	return p.superstep
}

func (p *PartitionActor) SendToAllEdges(from *graph.Vertex, msg btg.Message) {
	for _, target := range from.Edges {
		p.sent++
		if _, local := p.shard[target]; local {
			inbox := p.inbox(p.superstep + 1)
			inbox[target] = append(inbox[target], msg)
			continue
		}
		peer := p.peers[shardIndex(target, len(p.peers))]
		key := peer.String()
		p.outgoing[key] = append(p.outgoing[key], messages.Delivery{Target: target, Message: msg})
	}
}

// shardIndex maps a vertex id onto one of n shards. Ids may be negative,
// and Go's % keeps the dividend's sign, so the remainder is normalized.
func shardIndex(id graph.VertexID, n int) int {
	idx := int(id) % n
	if idx < 0 {
		idx += n
	}
	return idx
}

func (p *PartitionActor) VoteToHalt(id graph.VertexID) {
	if sv, exists := p.shard[id]; exists {
		sv.active = false
	}
}

func (p *PartitionActor) handleCollectResults(msg *messages.CollectResults) {
	results := make([]messages.VertexResult, 0, len(p.shard))
	for id, sv := range p.shard {
		results = append(results, messages.VertexResult{ID: id, Value: sv.value})
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })

	if err := p.Send(msg.Collector, &messages.ResultChunk{Results: results, Sender: p.PID()}); err != nil {
		log.Printf("[%s] failed to send results to %s: %v", p.PID().ActorID, msg.Collector, err)
	}
}
