package messages

// ExtractionComplete announces global fixpoint to every actor.
type ExtractionComplete struct {
	Supersteps int `json:"supersteps"`
}

func (m *ExtractionComplete) Type() string { return "ExtractionComplete" }

type Shutdown struct{}

func (m *Shutdown) Type() string { return "Shutdown" }
