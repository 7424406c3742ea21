package dto

import (
	"time"

	"github.com/sanitrack/sanitrack/internal/domain"
	"github.com/sanitrack/sanitrack/internal/ledger"
)

// AmenitiesInfo reports which amenities a facility currently offers.
type AmenitiesInfo struct {
	Water bool `json:"water"`
	Soap  bool `json:"soap"`
	Paper bool `json:"paper"`
}

// FacilityResponse represents one facility.
type FacilityResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Address         string          `json:"address"`
	Category        string          `json:"category"`
	Occupancy       string          `json:"occupancy"`
	Status          string          `json:"status"`
	HygieneScore    int             `json:"hygiene_score"`
	LastCleanedAt   time.Time       `json:"last_cleaned_at"`
	NextScheduledAt time.Time       `json:"next_scheduled_at"`
	AssignedStaffID *string         `json:"assigned_staff_id"`
	Amenities       AmenitiesInfo   `json:"amenities"`
	Reviews         []domain.Review `json:"reviews"`
}

// FacilitiesListResponse represents the response for GET /facilities.
type FacilitiesListResponse struct {
	Facilities     []FacilityResponse `json:"facilities"`
	Total          int                `json:"total"`
	CountsByStatus map[string]int     `json:"counts_by_status"`
}

// CleaningStartedResponse represents the response for POST /facilities/:id/cleaning/start.
type CleaningStartedResponse struct {
	Facility          FacilityResponse `json:"facility"`
	CompletionSeconds int              `json:"completion_seconds"`
}

// TaskResponse represents one entry in a staff task list.
type TaskResponse struct {
	FacilityID   string `json:"facility_id"`
	FacilityName string `json:"facility_name"`
	Priority     string `json:"priority"`
	UrgencyScore int    `json:"urgency_score"`
	Status       string `json:"status"`
}

// TasksListResponse represents the response for GET /staff/:id/tasks.
type TasksListResponse struct {
	StaffID string         `json:"staff_id"`
	Tasks   []TaskResponse `json:"tasks"`
	Total   int            `json:"total"`
}

// UpdateResponse represents one entry in the recent-updates feed.
type UpdateResponse struct {
	ID             string    `json:"id"`
	FacilityID     string    `json:"facility_id"`
	FacilityName   string    `json:"facility_name"`
	Kind           string    `json:"kind"`
	PreviousStatus string    `json:"previous_status"`
	NewStatus      string    `json:"new_status"`
	NewScore       int       `json:"new_score"`
	OccurredAt     time.Time `json:"occurred_at"`
	Elapsed        string    `json:"elapsed"`
}

// UpdatesListResponse represents the response for GET /updates.
type UpdatesListResponse struct {
	Updates       []UpdateResponse `json:"updates"`
	Total         int              `json:"total"`
	WindowMinutes int              `json:"window_minutes"`
}

// WebhookAckResponse acknowledges a sync webhook delivery.
type WebhookAckResponse struct {
	EventID string `json:"event_id"`
	Applied bool   `json:"applied"`
}

// NewFacilityResponse converts a domain facility to its response form.
func NewFacilityResponse(f domain.Facility) FacilityResponse {
	reviews := f.Reviews
	if reviews == nil {
		reviews = []domain.Review{}
	}
	return FacilityResponse{
		ID:              f.ID,
		Name:            f.Name,
		Address:         f.Address,
		Category:        string(f.Category),
		Occupancy:       string(f.Occupancy),
		Status:          string(f.Status),
		HygieneScore:    f.HygieneScore,
		LastCleanedAt:   f.LastCleanedAt,
		NextScheduledAt: f.NextScheduledAt,
		AssignedStaffID: f.AssignedStaffID,
		Amenities: AmenitiesInfo{
			Water: f.Amenities.Water,
			Soap:  f.Amenities.Soap,
			Paper: f.Amenities.Paper,
		},
		Reviews: reviews,
	}
}

// NewTaskResponse converts a domain task to its response form.
func NewTaskResponse(t domain.Task) TaskResponse {
	return TaskResponse{
		FacilityID:   t.FacilityID,
		FacilityName: t.FacilityName,
		Priority:     string(t.Priority),
		UrgencyScore: t.UrgencyScore,
		Status:       string(t.Status),
	}
}

// NewUpdateResponse converts a ledger entry to its response form.
func NewUpdateResponse(e ledger.Entry) UpdateResponse {
	return UpdateResponse{
		ID:             e.Event.ID,
		FacilityID:     e.Event.FacilityID,
		FacilityName:   e.Event.FacilityName,
		Kind:           string(e.Event.Kind),
		PreviousStatus: string(e.Event.PreviousStatus),
		NewStatus:      string(e.Event.NewStatus),
		NewScore:       e.Event.NewScore,
		OccurredAt:     e.Event.OccurredAt,
		Elapsed:        e.Elapsed,
	}
}
