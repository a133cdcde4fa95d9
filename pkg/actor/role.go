package actor

// Role classifies actors by their job in the extraction pipeline.
type Role int

const (
	CoordinatorRole Role = iota
	PartitionRole
	CollectorRole
)

func (r Role) String() string {
	switch r {
	case CoordinatorRole:
		return "coordinator"
	case PartitionRole:
		return "partition"
	case CollectorRole:
		return "collector"
	default:
		return "unknown"
	}
}
