package actor

import (
	"fmt"
	"strings"
)

// PID addresses an actor: the machine it runs on plus its local actor id.
type PID struct {
	MachineID string `json:"machine_id"`
	ActorID   string `json:"actor_id"`
}

func NewPID(machineID, actorID string) PID {
	return PID{MachineID: machineID, ActorID: actorID}
}

func (p PID) String() string {
	return fmt.Sprintf("%s/%s", p.MachineID, p.ActorID)
}

func (p PID) IsLocal(machineID string) bool {
	return p.MachineID == machineID
}

func (p PID) IsZero() bool {
	return p.MachineID == "" && p.ActorID == ""
}

func ParsePID(s string) (PID, error) {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return PID{}, fmt.Errorf("invalid PID format: %q", s)
	}
	return PID{MachineID: parts[0], ActorID: parts[1]}, nil
}
