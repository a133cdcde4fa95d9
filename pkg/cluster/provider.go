package cluster

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/distributed-btg/pkg/actor"
)

// StaticProvider is a cluster membership source configured up front: every
// machine and every actor is registered before the system starts, and the
// per-role PID lists are kept in a deterministic order so all machines agree
// on partition numbering.
type StaticProvider struct {
	machineID    string
	machines     map[string]string
	transport    *Transport
	coordinator  actor.PID
	actorsByRole map[actor.Role][]actor.PID
	mu           sync.RWMutex
}

func NewStaticProvider(machineID string, useTransport bool) *StaticProvider {
	p := &StaticProvider{
		machineID:    machineID,
		machines:     make(map[string]string),
		actorsByRole: make(map[actor.Role][]actor.PID),
	}
	if useTransport {
		p.transport = NewTransport(machineID)
	}
	return p
}

func (p *StaticProvider) MachineID() string {
	return p.machineID
}

func (p *StaticProvider) Start(ctx context.Context) error {
	if p.transport != nil {
		return p.transport.Start(ctx)
	}
	return nil
}

func (p *StaticProvider) Stop() error {
	if p.transport != nil {
		return p.transport.Stop()
	}
	return nil
}

func (p *StaticProvider) RegisterMachine(machineID, address string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.machines[machineID]; !exists {
		p.machines[machineID] = address
	}
}

func (p *StaticProvider) SetCoordinator(pid actor.PID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.coordinator = pid
}

func (p *StaticProvider) GetCoordinator() actor.PID {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.coordinator
}

// RegisterActor adds pid to its role's list. Ordering is by machine id then
// actor id so every machine derives the same partition indices.
func (p *StaticProvider) RegisterActor(role actor.Role, pid actor.PID) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.actorsByRole[role] = append(p.actorsByRole[role], pid)
	pids := p.actorsByRole[role]
	sort.Slice(pids, func(i, j int) bool {
		if pids[i].MachineID != pids[j].MachineID {
			return pids[i].MachineID < pids[j].MachineID
		}
		return pids[i].ActorID < pids[j].ActorID
	})
}

func (p *StaticProvider) GetActors(role actor.Role) []actor.PID {
	p.mu.RLock()
	defer p.mu.RUnlock()

	pids := make([]actor.PID, len(p.actorsByRole[role]))
	copy(pids, p.actorsByRole[role])
	return pids
}

func (p *StaticProvider) Send(to actor.PID, msg actor.Message) error {
	if p.transport == nil {
		return fmt.Errorf("cannot reach %s: transport layer not enabled", to)
	}

	p.mu.RLock()
	address, known := p.machines[to.MachineID]
	p.mu.RUnlock()
	if !known {
		return fmt.Errorf("cannot reach %s: machine not registered", to)
	}
	return p.transport.Send(to, address, msg)
}
