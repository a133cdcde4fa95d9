package btg

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/distributed-btg/pkg/graph"
)

func TestTransactionalValueRoundTrip(t *testing.T) {
	value := NewVertexValue(graph.Transactional)
	value.CommitLabel(3)

	data, err := json.Marshal(value)
	require.NoError(t, err)
	require.JSONEq(t, `{"vertex_type":"transactional","label":3}`, string(data))

	var restored VertexValue
	require.NoError(t, json.Unmarshal(data, &restored))
	require.Equal(t, graph.Transactional, restored.VertexType())
	require.Equal(t, graph.VertexID(3), restored.Label(9))
}

func TestTransactionalValueUnsetLabelRoundTrip(t *testing.T) {
	value := NewVertexValue(graph.Transactional)

	data, err := json.Marshal(value)
	require.NoError(t, err)
	require.JSONEq(t, `{"vertex_type":"transactional"}`, string(data))

	var restored VertexValue
	require.NoError(t, json.Unmarshal(data, &restored))
	require.Equal(t, graph.VertexID(9), restored.Label(9), "unset slot survives the round trip")
}

func TestMasterValueRoundTrip(t *testing.T) {
	value := NewVertexValue(graph.Master)
	value.RecordNeighbourMin(20, 20)
	value.RecordNeighbourMin(11, 10)

	data, err := json.Marshal(value)
	require.NoError(t, err)
	// Pairs are ordered by neighbour id.
	require.JSONEq(t,
		`{"vertex_type":"master","neighbour_mins":[{"neighbour_id":11,"min_btg_id":10},{"neighbour_id":20,"min_btg_id":20}]}`,
		string(data))

	var restored VertexValue
	require.NoError(t, json.Unmarshal(data, &restored))
	require.Equal(t, []graph.VertexID{10, 20}, restored.MembershipSet(50))
}

func TestUnknownTagDecodesToInertValue(t *testing.T) {
	var restored VertexValue
	err := json.Unmarshal([]byte(`{"vertex_type":"widget"}`), &restored)
	require.NoError(t, err, "an unrecognized tag is inert, not an error")
	require.Equal(t, graph.Unknown, restored.VertexType())
}
