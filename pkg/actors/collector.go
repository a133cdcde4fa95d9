package actors

import (
	"context"
	"log"

	"github.com/distributed-btg/pkg/actor"
	"github.com/distributed-btg/pkg/btg"
	"github.com/distributed-btg/pkg/graph"
	"github.com/distributed-btg/pkg/graphio"
	"github.com/distributed-btg/pkg/messages"
)

// CollectorActor merges the final vertex values from all partitions and
// writes the line-oriented result file.
type CollectorActor struct {
	*actor.BaseActor
	outputPath string

	expectedChunks int
	values         map[graph.VertexID]*btg.VertexValue
	chunks         map[string]bool
}

func NewCollectorActor(pid actor.PID, system *actor.System, outputPath string, expectedChunks int) *CollectorActor {
	return &CollectorActor{
		BaseActor:      actor.NewBaseActor(pid, system, 1000),
		outputPath:     outputPath,
		expectedChunks: expectedChunks,
		values:         make(map[graph.VertexID]*btg.VertexValue),
		chunks:         make(map[string]bool),
	}
}

func (a *CollectorActor) Start(ctx context.Context) {
	a.Ctx, a.Cancel = context.WithCancel(ctx)
	a.Wg.Add(1)

	go func() {
		defer a.Wg.Done()
		a.run()
	}()
}

func (a *CollectorActor) run() {
	log.Printf("[%s] started", a.PID().ActorID)

	for {
		select {
		case <-a.Ctx.Done():
			log.Printf("[%s] shutting down", a.PID().ActorID)
			return
		case msg, ok := <-a.Mailbox.Receive():
			if !ok {
				return
			}
			a.Receive(a.Ctx, msg)
		}
	}
}

func (a *CollectorActor) Receive(ctx context.Context, msg actor.Message) {
	switch m := msg.(type) {
	case *messages.ResultChunk:
		a.handleResultChunk(m)
	case *messages.ExtractionComplete:
		log.Printf("[%s] extraction complete after %d supersteps", a.PID().ActorID, m.Supersteps)
	case *messages.Shutdown:
		log.Printf("[%s] shutdown requested", a.PID().ActorID)
		a.Mailbox.Close()
	default:
		log.Printf("[%s] received unknown message type: %s", a.PID().ActorID, msg.Type())
	}
}

func (a *CollectorActor) handleResultChunk(msg *messages.ResultChunk) {
	if a.chunks[msg.Sender.String()] {
		return
	}
	a.chunks[msg.Sender.String()] = true

	for _, result := range msg.Results {
		a.values[result.ID] = result.Value
	}
	log.Printf("[%s] merged %d results from %s (%d/%d chunks)",
		a.PID().ActorID, len(msg.Results), msg.Sender, len(a.chunks), a.expectedChunks)

	if len(a.chunks) < a.expectedChunks {
		return
	}

	if err := graphio.WriteBTGResults(a.outputPath, a.values); err != nil {
		log.Printf("[%s] failed to write results: %v", a.PID().ActorID, err)
		return
	}

	a.Send(a.System.GetCoordinator(), &messages.ResultsWritten{
		Path:        a.outputPath,
		VertexCount: len(a.values),
		Sender:      a.PID(),
	})
}
