package btg

import "github.com/distributed-btg/pkg/graph"

// Message is the propagation message exchanged along graph edges: the sender
// id and the BTG id (label) it committed. Messages are immutable and carry no
// history; delivery and ordering are the substrate's contract.
type Message struct {
	SenderID graph.VertexID `json:"sender_id"`
	BTGID    graph.VertexID `json:"btg_id"`
}
