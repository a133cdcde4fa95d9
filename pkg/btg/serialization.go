package btg

import (
	"encoding/json"
	"sort"

	"github.com/distributed-btg/pkg/graph"
)

type neighbourMinJSON struct {
	NeighbourID graph.VertexID `json:"neighbour_id"`
	MinBTGID    graph.VertexID `json:"min_btg_id"`
}

// vertexValueJSON is the wire shape of a VertexValue: a type tag, then one
// label for transactional vertices or the (neighbour, minimum) pairs for
// master vertices.
type vertexValueJSON struct {
	VertexType    string             `json:"vertex_type"`
	Label         *graph.VertexID    `json:"label,omitempty"`
	NeighbourMins []neighbourMinJSON `json:"neighbour_mins,omitempty"`
}

func (v *VertexValue) MarshalJSON() ([]byte, error) {
	out := vertexValueJSON{
		VertexType: v.vertexType.String(),
	}

	switch v.vertexType {
	case graph.Transactional:
		if v.labelSet {
			label := v.label
			out.Label = &label
		}
	case graph.Master:
		out.NeighbourMins = make([]neighbourMinJSON, 0, len(v.neighbourMins))
		for neighbour, min := range v.neighbourMins {
			out.NeighbourMins = append(out.NeighbourMins, neighbourMinJSON{
				NeighbourID: neighbour,
				MinBTGID:    min,
			})
		}
		// Deterministic order for the count-prefixed pair list.
		sort.Slice(out.NeighbourMins, func(i, j int) bool {
			return out.NeighbourMins[i].NeighbourID < out.NeighbourMins[j].NeighbourID
		})
	}

	return json.Marshal(out)
}

func (v *VertexValue) UnmarshalJSON(data []byte) error {
	var in vertexValueJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	vt := graph.ParseVertexType(in.VertexType)
	v.vertexType = vt
	v.label = 0
	v.labelSet = false
	v.neighbourMins = nil

	switch vt {
	case graph.Transactional:
		if in.Label != nil {
			v.label = *in.Label
			v.labelSet = true
		}
	case graph.Master:
		v.neighbourMins = make(map[graph.VertexID]graph.VertexID, len(in.NeighbourMins))
		for _, pair := range in.NeighbourMins {
			v.neighbourMins[pair.NeighbourID] = pair.MinBTGID
		}
	}
	// An unrecognized tag decodes to an inert value rather than an error,
	// matching how the computation treats unknown vertex types.

	return nil
}
