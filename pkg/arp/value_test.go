package arp

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVertexValueJSONRoundTrip(t *testing.T) {
	value := &VertexValue{CurrentPartition: 1, DesiredPartition: 3}
	value.AddToHistory(0)
	value.AddToHistory(1)

	data, err := json.Marshal(value)
	require.NoError(t, err)
	require.JSONEq(t,
		`{"current_partition":1,"desired_partition":3,"partition_history":[0,1]}`,
		string(data))

	var restored VertexValue
	require.NoError(t, json.Unmarshal(data, &restored))
	require.Equal(t, value, &restored)
	require.Equal(t, 2, restored.HistoryCount())
}

func TestVertexValueEmptyHistoryOmitted(t *testing.T) {
	data, err := json.Marshal(&VertexValue{CurrentPartition: 2, DesiredPartition: 2})
	require.NoError(t, err)
	require.JSONEq(t, `{"current_partition":2,"desired_partition":2}`, string(data))
}
