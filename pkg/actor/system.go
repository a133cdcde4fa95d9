package actor

import (
	"context"
	"fmt"
	"sync"
)

// Provider supplies cluster knowledge: which PIDs exist per role across all
// machines, who coordinates, and how to reach remote machines.
type Provider interface {
	GetCoordinator() PID
	GetActors(role Role) []PID
	Send(to PID, msg Message) error
	Start(ctx context.Context) error
	Stop() error
}

// System registers local actors and routes messages. Local delivery goes
// through the target's mailbox; remote delivery is handed to the provider's
// transport.
type System struct {
	machineID string
	actors    map[string]Actor
	mu        sync.RWMutex
	provider  Provider
	ctx       context.Context
	cancel    context.CancelFunc
}

func NewSystem(machineID string, provider Provider) *System {
	ctx, cancel := context.WithCancel(context.Background())
	return &System{
		machineID: machineID,
		actors:    make(map[string]Actor),
		provider:  provider,
		ctx:       ctx,
		cancel:    cancel,
	}
}

func (s *System) MachineID() string {
	return s.machineID
}

func (s *System) Start() error {
	if s.provider != nil {
		if err := s.provider.Start(s.ctx); err != nil {
			return err
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.actors {
		a.Start(s.ctx)
	}
	return nil
}

func (s *System) Register(a Actor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pid := a.PID()
	if _, exists := s.actors[pid.ActorID]; exists {
		return fmt.Errorf("actor %s already registered", pid.ActorID)
	}
	s.actors[pid.ActorID] = a
	return nil
}

func (s *System) Send(to PID, msg Message) error {
	if to.IsZero() {
		return fmt.Errorf("%w: empty pid", ErrActorNotFound)
	}
	if to.IsLocal(s.machineID) {
		return s.localDeliver(to, msg)
	}
	if s.provider == nil {
		return ErrNoTransport
	}
	return s.provider.Send(to, msg)
}

func (s *System) localDeliver(to PID, msg Message) error {
	s.mu.RLock()
	a, exists := s.actors[to.ActorID]
	s.mu.RUnlock()

	if !exists {
		return fmt.Errorf("%w: %s", ErrActorNotFound, to)
	}
	return a.GetMailbox().Send(msg)
}

// Broadcast sends msg to every actor of the given role, local or remote.
// The first delivery failure is returned; remaining sends still happen.
func (s *System) Broadcast(role Role, msg Message) error {
	var firstErr error
	for _, pid := range s.GetActors(role) {
		if err := s.Send(pid, msg); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (s *System) GetActors(role Role) []PID {
	if s.provider == nil {
		return nil
	}
	return s.provider.GetActors(role)
}

func (s *System) GetCoordinator() PID {
	if s.provider == nil {
		return PID{}
	}
	return s.provider.GetCoordinator()
}

func (s *System) Shutdown() {
	s.cancel()

	s.mu.RLock()
	actors := make([]Actor, 0, len(s.actors))
	for _, a := range s.actors {
		actors = append(actors, a)
	}
	s.mu.RUnlock()

	for _, a := range actors {
		a.Stop()
	}

	if s.provider != nil {
		s.provider.Stop()
	}
}
