package domain

import "time"

// SystemActorID marks events produced by the simulator or scheduler rather
// than a staff member.
const SystemActorID = "system"

// EventKind represents the type of status-change event.
type EventKind string

const (
	EventKindDegraded          EventKind = "degraded"
	EventKindCleaned           EventKind = "cleaned"
	EventKindCleaningStarted   EventKind = "cleaning_started"
	EventKindCleaningCompleted EventKind = "cleaning_completed"
)

// IsValid checks if the kind is one of the allowed values.
func (k EventKind) IsValid() bool {
	switch k {
	case EventKindDegraded, EventKindCleaned, EventKindCleaningStarted, EventKindCleaningCompleted:
		return true
	default:
		return false
	}
}

// StatusUpdateEvent is the immutable record of one facility transition.
// Created only by the registry; never mutated afterwards.
type StatusUpdateEvent struct {
	ID             string
	FacilityID     string
	FacilityName   string
	PreviousStatus FacilityStatus
	NewStatus      FacilityStatus
	NewScore       int
	Kind           EventKind
	ActorID        string // staff ID or SystemActorID
	OccurredAt     time.Time
}

// IsSystemEvent returns true if the event was produced by the system.
func (e *StatusUpdateEvent) IsSystemEvent() bool {
	return e.ActorID == SystemActorID
}
