// Package propagate moves committed status-change events between the staff
// (authoritative) service and the public (replica) service. Two redundant,
// non-atomic paths exist: an asynchronous at-most-once webhook push, and a
// pull reconciliation of the authority's recent ledger window.
package propagate

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sanitrack/sanitrack/internal/domain"
)

// EventPayload is the wire form of one StatusUpdateEvent. The field names
// are the cross-service contract shared by the webhook push and the pull
// feed, so both paths deliver byte-identical facts.
type EventPayload struct {
	ID             string  `json:"id,omitempty"`
	FacilityID     string  `json:"facilityId"`
	FacilityName   string  `json:"facilityName"`
	Kind           string  `json:"kind"`
	PreviousStatus string  `json:"previousStatus"`
	NewStatus      string  `json:"newStatus"`
	NewScore       *int    `json:"newScore"`
	ActorID        string  `json:"actorId,omitempty"`
	OccurredAt     *string `json:"occurredAt"`
}

// PullResponse is the body of GET /sync/pull and the replica's update feed.
type PullResponse struct {
	HasUpdates  bool           `json:"hasUpdates"`
	Updates     []EventPayload `json:"updates"`
	LastUpdated time.Time      `json:"lastUpdated"`
}

// ToPayload converts a committed event to its wire form.
func ToPayload(event domain.StatusUpdateEvent) EventPayload {
	score := event.NewScore
	occurredAt := event.OccurredAt.UTC().Format(time.RFC3339Nano)
	return EventPayload{
		ID:             event.ID,
		FacilityID:     event.FacilityID,
		FacilityName:   event.FacilityName,
		Kind:           string(event.Kind),
		PreviousStatus: string(event.PreviousStatus),
		NewStatus:      string(event.NewStatus),
		NewScore:       &score,
		ActorID:        event.ActorID,
		OccurredAt:     &occurredAt,
	}
}

// Validate checks the payload against the webhook contract: every required
// field present, enum values known, score inside the invariant range.
func (p EventPayload) Validate() error {
	required := []struct {
		name  string
		empty bool
	}{
		{"facilityId", p.FacilityID == ""},
		{"facilityName", p.FacilityName == ""},
		{"kind", p.Kind == ""},
		{"previousStatus", p.PreviousStatus == ""},
		{"newStatus", p.NewStatus == ""},
		{"newScore", p.NewScore == nil},
		{"occurredAt", p.OccurredAt == nil || *p.OccurredAt == ""},
	}
	for _, field := range required {
		if field.empty {
			return fmt.Errorf("%w: %s", domain.ErrMissingField, field.name)
		}
	}

	if !domain.EventKind(p.Kind).IsValid() {
		return fmt.Errorf("%w: %s", domain.ErrInvalidKind, p.Kind)
	}
	if !domain.FacilityStatus(p.PreviousStatus).IsValid() || !domain.FacilityStatus(p.NewStatus).IsValid() {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidStatus, p.PreviousStatus, p.NewStatus)
	}
	if *p.NewScore < 0 || *p.NewScore > 100 {
		return fmt.Errorf("%w: %d", domain.ErrScoreOutOfRange, *p.NewScore)
	}
	if _, err := time.Parse(time.RFC3339Nano, *p.OccurredAt); err != nil {
		return fmt.Errorf("%w: occurredAt: %v", domain.ErrMissingField, err)
	}
	return nil
}

// ToEvent converts a validated payload into a domain event. Payloads without
// an ID get a fresh one; dedup then can't help, but the original producer
// did not provide a stable identity to key on.
func (p EventPayload) ToEvent() domain.StatusUpdateEvent {
	id := p.ID
	if id == "" {
		id = uuid.NewString()
	}
	occurredAt, _ := time.Parse(time.RFC3339Nano, *p.OccurredAt)
	return domain.StatusUpdateEvent{
		ID:             id,
		FacilityID:     p.FacilityID,
		FacilityName:   p.FacilityName,
		PreviousStatus: domain.FacilityStatus(p.PreviousStatus),
		NewStatus:      domain.FacilityStatus(p.NewStatus),
		NewScore:       *p.NewScore,
		Kind:           domain.EventKind(p.Kind),
		ActorID:        p.ActorID,
		OccurredAt:     occurredAt,
	}
}
