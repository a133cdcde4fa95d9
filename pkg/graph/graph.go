package graph

import "fmt"

// VertexID identifies a vertex. IDs are unique and totally ordered for the
// whole run; the minimum id inside a connected transactional sub-graph
// becomes that sub-graph's BTG id.
type VertexID int64

// VertexType separates master data vertices from transactional data vertices.
// Master vertices act as communication barriers between BTGs.
type VertexType int

const (
	Unknown VertexType = iota
	Master
	Transactional
)

func (vt VertexType) String() string {
	switch vt {
	case Master:
		return "master"
	case Transactional:
		return "transactional"
	default:
		return "unknown"
	}
}

// ParseVertexType maps the textual type tag used in vertex input files.
// Unrecognized tags yield Unknown; such vertices stay inert at compute time.
func ParseVertexType(s string) VertexType {
	switch s {
	case "master":
		return Master
	case "transactional":
		return Transactional
	default:
		return Unknown
	}
}

type Edge struct {
	U VertexID
	V VertexID
}

func NewEdge(u, v VertexID) Edge {
	return Edge{U: u, V: v}
}

// Vertex is the static part of a vertex: its id, type tag and outgoing edges.
// The mutable per-run value lives next to it in the compute layer.
type Vertex struct {
	ID    VertexID
	Type  VertexType
	Edges []VertexID
}

// Graph is an integrated instance graph: typed vertices plus an undirected
// adjacency structure.
type Graph struct {
	Vertices map[VertexID]*Vertex
}

func NewGraph() *Graph {
	return &Graph{
		Vertices: make(map[VertexID]*Vertex),
	}
}

func (g *Graph) AddVertex(id VertexID, vt VertexType) *Vertex {
	if v, exists := g.Vertices[id]; exists {
		return v
	}
	v := &Vertex{ID: id, Type: vt}
	g.Vertices[id] = v
	return v
}

// AddEdge connects u and v in both directions. Self-loops are dropped; both
// endpoints must already exist.
func (g *Graph) AddEdge(edge Edge) error {
	if edge.U == edge.V {
		return nil
	}
	u, exists := g.Vertices[edge.U]
	if !exists {
		return fmt.Errorf("edge (%d,%d): vertex %d not found", edge.U, edge.V, edge.U)
	}
	v, exists := g.Vertices[edge.V]
	if !exists {
		return fmt.Errorf("edge (%d,%d): vertex %d not found", edge.U, edge.V, edge.V)
	}
	u.Edges = append(u.Edges, v.ID)
	v.Edges = append(v.Edges, u.ID)
	return nil
}

func (g *Graph) AddEdges(edges []Edge) error {
	for _, edge := range edges {
		if err := g.AddEdge(edge); err != nil {
			return err
		}
	}
	return nil
}

func (g *Graph) VertexCount() int {
	return len(g.Vertices)
}

func (g *Graph) EdgeCount() int {
	total := 0
	for _, v := range g.Vertices {
		total += len(v.Edges)
	}
	return total / 2
}
