package btg

import (
	"sort"

	"github.com/distributed-btg/pkg/graph"
)

// VertexValue is the mutable per-vertex state of the BTG extraction. It is a
// tagged union over the vertex type: transactional vertices carry a single
// label slot, master vertices carry the minimum label ever observed per
// neighbour. Each value is owned exclusively by its vertex for the whole run.
type VertexValue struct {
	vertexType graph.VertexType

	// label is the smallest BTG id discovered so far (transactional only).
	// labelSet tracks whether it holds a committed value; ids span the whole
	// signed range, so no id can serve as an in-band "unset" marker.
	label    graph.VertexID
	labelSet bool

	// neighbourMins maps neighbour id to the smallest label that neighbour
	// ever reported (master only). Values never increase.
	neighbourMins map[graph.VertexID]graph.VertexID
}

func NewVertexValue(vt graph.VertexType) *VertexValue {
	v := &VertexValue{
		vertexType: vt,
	}
	if vt == graph.Master {
		v.neighbourMins = make(map[graph.VertexID]graph.VertexID)
	}
	return v
}

func (v *VertexValue) VertexType() graph.VertexType {
	return v.vertexType
}

// Label returns the current label of a transactional vertex, or own when no
// label has been committed yet.
func (v *VertexValue) Label(own graph.VertexID) graph.VertexID {
	if !v.labelSet {
		return own
	}
	return v.label
}

// CommitLabel overwrites the label slot. The computation only ever commits
// values that are <= the current label, so the slot is non-increasing.
func (v *VertexValue) CommitLabel(label graph.VertexID) {
	v.label = label
	v.labelSet = true
}

// RecordNeighbourMin stores candidate for neighbour if it is the first value
// seen from that neighbour or smaller than the stored one. A larger candidate
// is a no-op; the stored minimum never reverts upward.
func (v *VertexValue) RecordNeighbourMin(neighbour, candidate graph.VertexID) {
	stored, exists := v.neighbourMins[neighbour]
	if !exists || candidate < stored {
		v.neighbourMins[neighbour] = candidate
	}
}

// MembershipSet returns the distinct BTG ids this master vertex participates
// in, sorted ascending. A master with no neighbours belongs to the singleton
// BTG named by its own id, never to an empty set.
func (v *VertexValue) MembershipSet(own graph.VertexID) []graph.VertexID {
	if len(v.neighbourMins) == 0 {
		return []graph.VertexID{own}
	}
	distinct := make(map[graph.VertexID]struct{}, len(v.neighbourMins))
	for _, label := range v.neighbourMins {
		distinct[label] = struct{}{}
	}
	set := make([]graph.VertexID, 0, len(distinct))
	for label := range distinct {
		set = append(set, label)
	}
	sort.Slice(set, func(i, j int) bool { return set[i] < set[j] })
	return set
}
