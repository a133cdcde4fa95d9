package actors

import (
	"context"
	"log"

	"github.com/distributed-btg/pkg/actor"
	"github.com/distributed-btg/pkg/graph"
	"github.com/distributed-btg/pkg/messages"
)

// CoordinatorActor drives the BSP rounds: it distributes the graph over the
// partitions, starts each superstep once the previous one is globally done,
// detects the fixpoint (no propagation message sent and no vertex active in
// a full round) and then triggers result collection.
type CoordinatorActor struct {
	*actor.BaseActor
	maxSupersteps int

	superstep        int
	completed        map[string]*messages.SuperstepComplete
	loadedPartitions map[string]bool
	done             chan struct{}
}

func NewCoordinatorActor(pid actor.PID, system *actor.System, maxSupersteps int) *CoordinatorActor {
	return &CoordinatorActor{
		BaseActor:        actor.NewBaseActor(pid, system, 1000),
		maxSupersteps:    maxSupersteps,
		completed:        make(map[string]*messages.SuperstepComplete),
		loadedPartitions: make(map[string]bool),
		done:             make(chan struct{}),
	}
}

// Done is closed once the extraction has finished and the results are
// written.
func (c *CoordinatorActor) Done() <-chan struct{} {
	return c.done
}

func (c *CoordinatorActor) Start(ctx context.Context) {
	c.Ctx, c.Cancel = context.WithCancel(ctx)
	c.Wg.Add(1)

	go func() {
		defer c.Wg.Done()
		c.run()
	}()
}

func (c *CoordinatorActor) run() {
	log.Printf("[coordinator] started")

	for {
		select {
		case <-c.Ctx.Done():
			log.Printf("[coordinator] shutting down")
			return
		case msg, ok := <-c.Mailbox.Receive():
			if !ok {
				return
			}
			c.Receive(c.Ctx, msg)
		}
	}
}

func (c *CoordinatorActor) Receive(ctx context.Context, msg actor.Message) {
	switch m := msg.(type) {
	case *messages.LoadPartitionComplete:
		c.handleLoadPartitionComplete(m)
	case *messages.SuperstepComplete:
		c.handleSuperstepComplete(m)
	case *messages.ResultsWritten:
		c.handleResultsWritten(m)
	default:
		log.Printf("[coordinator] received unknown message type: %s", msg.Type())
	}
}

// StartExtraction splits the graph into shards by vertex id and ships each
// shard to its partition. The partition list ordering is the same on every
// machine, so shard assignment and message routing agree.
func (c *CoordinatorActor) StartExtraction(g *graph.Graph) {
	partitions := c.System.GetActors(actor.PartitionRole)
	if len(partitions) == 0 {
		log.Printf("[coordinator] no partition actors available")
		return
	}

	log.Printf("[coordinator] distributing %d vertices, %d edges over %d partitions",
		g.VertexCount(), g.EdgeCount(), len(partitions))

	shards := make([][]messages.PartitionVertex, len(partitions))
	for id, v := range g.Vertices {
		idx := shardIndex(id, len(partitions))
		shards[idx] = append(shards[idx], messages.PartitionVertex{
			ID:    v.ID,
			Type:  v.Type,
			Edges: v.Edges,
		})
	}

	for i, pid := range partitions {
		log.Printf("[coordinator] sending %d vertices to %s", len(shards[i]), pid)
		if err := c.Send(pid, &messages.LoadPartition{Vertices: shards[i]}); err != nil {
			log.Printf("[coordinator] failed to load partition %s: %v", pid, err)
		}
	}
}

func (c *CoordinatorActor) handleLoadPartitionComplete(msg *messages.LoadPartitionComplete) {
	c.loadedPartitions[msg.Sender.String()] = true

	if len(c.loadedPartitions) == len(c.System.GetActors(actor.PartitionRole)) {
		log.Printf("[coordinator] all partitions loaded, starting superstep 0")
		c.superstep = 0
		for _, pid := range c.System.GetActors(actor.PartitionRole) {
			c.Send(pid, &messages.StartSuperstep{Superstep: 0, ExpectedBatches: 0})
		}
	}
}

func (c *CoordinatorActor) handleSuperstepComplete(msg *messages.SuperstepComplete) {
	if msg.Superstep != c.superstep {
		log.Printf("[coordinator] stale SuperstepComplete for superstep %d from %s", msg.Superstep, msg.Sender)
		return
	}
	c.completed[msg.Sender.String()] = msg

	partitions := c.System.GetActors(actor.PartitionRole)
	if len(c.completed) < len(partitions) {
		return
	}

	totalSent, totalActive := 0, 0
	expected := make(map[string]int)
	for _, report := range c.completed {
		totalSent += report.MessagesSent
		totalActive += report.ActiveVertices
		for target, batches := range report.BatchesSent {
			expected[target] += batches
		}
	}
	c.completed = make(map[string]*messages.SuperstepComplete)

	log.Printf("[coordinator] superstep %d done: %d messages sent, %d vertices active",
		c.superstep, totalSent, totalActive)

	if totalSent == 0 && totalActive == 0 {
		c.collectResults()
		return
	}

	c.superstep++
	if c.maxSupersteps > 0 && c.superstep >= c.maxSupersteps {
		log.Printf("[coordinator] superstep limit %d reached without fixpoint, collecting anyway", c.maxSupersteps)
		c.collectResults()
		return
	}

	for _, pid := range partitions {
		c.Send(pid, &messages.StartSuperstep{
			Superstep:       c.superstep,
			ExpectedBatches: expected[pid.String()],
		})
	}
}

func (c *CoordinatorActor) collectResults() {
	collectors := c.System.GetActors(actor.CollectorRole)
	if len(collectors) == 0 {
		log.Printf("[coordinator] no collector registered, extraction ends without output")
		c.finish()
		return
	}

	log.Printf("[coordinator] fixpoint reached after %d supersteps, collecting results", c.superstep+1)
	c.System.Broadcast(actor.PartitionRole, &messages.CollectResults{Collector: collectors[0]})
}

func (c *CoordinatorActor) handleResultsWritten(msg *messages.ResultsWritten) {
	log.Printf("[coordinator] %d vertex results written to %s", msg.VertexCount, msg.Path)
	c.finish()
}

func (c *CoordinatorActor) finish() {
	complete := &messages.ExtractionComplete{Supersteps: c.superstep + 1}
	c.System.Broadcast(actor.PartitionRole, complete)
	c.System.Broadcast(actor.CollectorRole, complete)

	shutdown := &messages.Shutdown{}
	c.System.Broadcast(actor.PartitionRole, shutdown)
	c.System.Broadcast(actor.CollectorRole, shutdown)

	log.Printf("[coordinator] === EXTRACTION COMPLETE === supersteps: %d", c.superstep+1)
	close(c.done)
}
