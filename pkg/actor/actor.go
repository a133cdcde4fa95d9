package actor

import (
	"context"
	"sync"
)

// Actor is the unit of concurrency: it owns a mailbox and processes one
// message at a time from its run loop.
type Actor interface {
	PID() PID
	Receive(ctx context.Context, msg Message)
	Start(ctx context.Context)
	Stop()
	GetMailbox() *Mailbox
}

// BaseActor carries the plumbing concrete actors embed: pid, mailbox, a
// handle on the system for sending, and run-loop lifecycle state.
type BaseActor struct {
	pid     PID
	Mailbox *Mailbox
	System  *System
	Ctx     context.Context
	Cancel  context.CancelFunc
	Wg      sync.WaitGroup
}

func NewBaseActor(pid PID, system *System, mailboxSize int) *BaseActor {
	return &BaseActor{
		pid:     pid,
		Mailbox: NewMailbox(mailboxSize),
		System:  system,
	}
}

func (a *BaseActor) PID() PID {
	return a.pid
}

func (a *BaseActor) Send(to PID, msg Message) error {
	return a.System.Send(to, msg)
}

func (a *BaseActor) GetMailbox() *Mailbox {
	return a.Mailbox
}

func (a *BaseActor) Stop() {
	if a.Cancel != nil {
		a.Cancel()
	}
	a.Mailbox.Close()
	a.Wg.Wait()
}

// Start and Receive are overridden by concrete actors.
func (a *BaseActor) Start(ctx context.Context) {}

func (a *BaseActor) Receive(ctx context.Context, msg Message) {}
