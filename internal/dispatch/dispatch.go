// Package dispatch derives per-staff cleaning task lists from the registry
// and the urgency scorer. Tasks are views, recomputed on every call.
package dispatch

import (
	"sort"
	"time"

	"github.com/sanitrack/sanitrack/internal/domain"
	"github.com/sanitrack/sanitrack/internal/registry"
	"github.com/sanitrack/sanitrack/internal/urgency"
)

// Dispatcher computes priority-ordered task lists.
type Dispatcher struct {
	reg *registry.Registry
	now func() time.Time
}

// New creates a Dispatcher over the given registry.
func New(reg *registry.Registry) *Dispatcher {
	return &Dispatcher{reg: reg, now: time.Now}
}

// TasksFor returns the ordered task list for one staff member. Active work
// sorts first, then higher priority, then facility ID so the ordering is
// fully deterministic.
func (d *Dispatcher) TasksFor(staffID string) []domain.Task {
	now := d.now()

	var tasks []domain.Task
	for _, f := range d.reg.List() {
		if !f.IsAssignedTo(staffID) {
			continue
		}
		score := urgency.Score(&f, now)
		priority := urgency.Level(score)
		tasks = append(tasks, domain.Task{
			FacilityID:      f.ID,
			FacilityName:    f.Name,
			AssignedStaffID: staffID,
			Priority:        priority,
			UrgencyScore:    score,
			Status:          taskStatus(f.Status, priority),
		})
	}

	sort.Slice(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if a.Status.Rank() != b.Status.Rank() {
			return a.Status.Rank() < b.Status.Rank()
		}
		if a.Priority.Rank() != b.Priority.Rank() {
			return a.Priority.Rank() > b.Priority.Rank()
		}
		return a.FacilityID < b.FacilityID
	})

	return tasks
}

// taskStatus derives the task state from the facility state: urgent dirty
// facilities are treated as work in progress, clean ones as done.
func taskStatus(status domain.FacilityStatus, priority domain.Priority) domain.TaskStatus {
	switch {
	case status == domain.StatusDirty && priority == domain.PriorityHigh:
		return domain.TaskStatusInProgress
	case status == domain.StatusClean:
		return domain.TaskStatusCompleted
	default:
		return domain.TaskStatusPending
	}
}
