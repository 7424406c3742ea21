package domain

// Priority represents the urgency level of a cleaning task.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank orders priorities for sorting: higher value means more urgent.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	default:
		return 1
	}
}

// TaskStatus represents the derived state of a cleaning task.
type TaskStatus string

const (
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusCompleted  TaskStatus = "completed"
)

// Rank orders task statuses for sorting: active work sorts first.
func (s TaskStatus) Rank() int {
	switch s {
	case TaskStatusInProgress:
		return 0
	case TaskStatusPending:
		return 1
	default:
		return 2
	}
}

// Task is a derived, non-persistent view of the cleaning work one facility
// represents for its assigned staff member. Computed fresh on every
// dispatcher call; never stored.
type Task struct {
	FacilityID      string
	FacilityName    string
	AssignedStaffID string
	Priority        Priority
	UrgencyScore    int
	Status          TaskStatus
}
