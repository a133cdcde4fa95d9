package graphio

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/distributed-btg/pkg/graph"
)

// ReadVertices parses a vertex CSV with `id,type` records. A header row is
// skipped when its first field is not an integer. Unrecognized type tags are
// kept as graph.Unknown; such vertices never participate in the computation.
func ReadVertices(path string) ([]*graph.Vertex, error) {
	records, err := readAll(path)
	if err != nil {
		return nil, err
	}

	vertices := make([]*graph.Vertex, 0, len(records))
	for i, record := range records {
		if err := validateLength(record, 2, i+1); err != nil {
			return nil, err
		}
		id, err := strconv.ParseInt(record[0], 10, 64)
		if err != nil {
			if i == 0 {
				continue // header row
			}
			return nil, fmt.Errorf("line %d: invalid vertex id %q: %w", i+1, record[0], err)
		}
		vertices = append(vertices, &graph.Vertex{
			ID:   graph.VertexID(id),
			Type: graph.ParseVertexType(record[1]),
		})
	}
	return vertices, nil
}

// ReadEdges parses an edge CSV with `source,target` records.
func ReadEdges(path string) ([]graph.Edge, error) {
	records, err := readAll(path)
	if err != nil {
		return nil, err
	}

	edges := make([]graph.Edge, 0, len(records))
	for i, record := range records {
		if err := validateLength(record, 2, i+1); err != nil {
			return nil, err
		}
		u, err := strconv.ParseInt(record[0], 10, 64)
		if err != nil {
			if i == 0 {
				continue // header row
			}
			return nil, fmt.Errorf("line %d: invalid source id %q: %w", i+1, record[0], err)
		}
		v, err := strconv.ParseInt(record[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid target id %q: %w", i+1, record[1], err)
		}
		edges = append(edges, graph.NewEdge(graph.VertexID(u), graph.VertexID(v)))
	}
	return edges, nil
}

// LoadGraph reads vertex and edge files into a connected Graph.
func LoadGraph(vertexPath, edgePath string) (*graph.Graph, error) {
	vertices, err := ReadVertices(vertexPath)
	if err != nil {
		return nil, err
	}
	edges, err := ReadEdges(edgePath)
	if err != nil {
		return nil, err
	}

	g := graph.NewGraph()
	for _, v := range vertices {
		g.AddVertex(v.ID, v.Type)
	}
	if err := g.AddEdges(edges); err != nil {
		return nil, err
	}
	return g, nil
}

func readAll(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	return records, nil
}

func validateLength(record []string, expected, lineNum int) error {
	if len(record) != expected {
		return fmt.Errorf("line %d: expected %d columns, got %d", lineNum, expected, len(record))
	}
	return nil
}
