// Package arp holds the vertex state used by adaptive repartitioning. Only
// the state shape and its encoding live here; the repartitioning decision
// logic is a separate algorithm and not part of this module.
package arp

import "encoding/json"

// VertexValue tracks where a vertex lives and where it wants to go.
type VertexValue struct {
	// CurrentPartition is the partition the vertex is assigned to.
	CurrentPartition int
	// DesiredPartition is the partition the vertex wants to migrate to.
	DesiredPartition int
	// PartitionHistory lists the partitions the vertex has visited, oldest
	// first.
	PartitionHistory []int
}

func (v *VertexValue) AddToHistory(partition int) {
	v.PartitionHistory = append(v.PartitionHistory, partition)
}

func (v *VertexValue) HistoryCount() int {
	return len(v.PartitionHistory)
}

type vertexValueJSON struct {
	CurrentPartition int   `json:"current_partition"`
	DesiredPartition int   `json:"desired_partition"`
	PartitionHistory []int `json:"partition_history,omitempty"`
}

func (v *VertexValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(vertexValueJSON{
		CurrentPartition: v.CurrentPartition,
		DesiredPartition: v.DesiredPartition,
		PartitionHistory: v.PartitionHistory,
	})
}

func (v *VertexValue) UnmarshalJSON(data []byte) error {
	var in vertexValueJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	v.CurrentPartition = in.CurrentPartition
	v.DesiredPartition = in.DesiredPartition
	v.PartitionHistory = in.PartitionHistory
	return nil
}
