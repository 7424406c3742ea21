// Package registry owns the canonical set of facility records. All mutation
// goes through ApplyTransition, which serializes writes per facility: the
// fix for the original design's global mutable list shared between request
// handlers and the background simulator thread.
package registry

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sanitrack/sanitrack/internal/domain"
)

// Sink receives every committed StatusUpdateEvent, in per-facility commit
// order. Implementations must be fast and non-blocking.
type Sink func(domain.StatusUpdateEvent)

type entry struct {
	mu       sync.Mutex
	facility domain.Facility
}

// Registry is the authoritative in-memory facility store.
type Registry struct {
	mu      sync.RWMutex // guards the map and sink list, not facility fields
	entries map[string]*entry
	sinks   []Sink
	now     func() time.Time
}

// New creates a Registry seeded with the given facilities.
func New(facilities []domain.Facility) *Registry {
	r := &Registry{
		entries: make(map[string]*entry, len(facilities)),
		now:     time.Now,
	}
	for _, f := range facilities {
		r.entries[f.ID] = &entry{facility: f}
	}
	return r
}

// AddSink registers a consumer of committed events. Sinks added after
// transitions begin may miss earlier events.
func (r *Registry) AddSink(s Sink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sinks = append(r.sinks, s)
}

func (r *Registry) lookup(id string) (*entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrFacilityNotFound, id)
	}
	return e, nil
}

// Get returns a copy of the facility with the given ID.
func (r *Registry) Get(id string) (domain.Facility, error) {
	e, err := r.lookup(id)
	if err != nil {
		return domain.Facility{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return copyFacility(e.facility), nil
}

// List returns copies of all facilities ordered by ID.
func (r *Registry) List() []domain.Facility {
	r.mu.RLock()
	entries := make([]*entry, 0, len(r.entries))
	for _, e := range r.entries {
		entries = append(entries, e)
	}
	r.mu.RUnlock()

	out := make([]domain.Facility, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		out = append(out, copyFacility(e.facility))
		e.mu.Unlock()
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// CountsByStatus returns the number of facilities in each status.
func (r *Registry) CountsByStatus() map[domain.FacilityStatus]int {
	counts := make(map[domain.FacilityStatus]int, 4)
	for _, f := range r.List() {
		counts[f.Status]++
	}
	return counts
}

// ApplyTransition validates and applies a proposal, returning the committed
// event. It is linearizable per facility: the proposal only applies if the
// facility is still in the proposal's expected status, otherwise the caller
// gets a conflict and must re-read.
func (r *Registry) ApplyTransition(id string, p Proposal) (*domain.StatusUpdateEvent, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	e, err := r.lookup(id)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	f := &e.facility

	// Idempotent guard: a second start-cleaning while Cleaning is a distinct
	// conflict, not a queued or overwriting request.
	if p.Kind == domain.EventKindCleaningStarted && f.Status == domain.StatusCleaning {
		return nil, fmt.Errorf("%w: %s", domain.ErrCleaningInProgress, id)
	}

	if f.Status != p.ExpectedStatus {
		return nil, fmt.Errorf("%w: %s is %s, proposal expected %s",
			domain.ErrStatusConflict, id, f.Status, p.ExpectedStatus)
	}

	event := domain.StatusUpdateEvent{
		ID:             uuid.NewString(),
		FacilityID:     f.ID,
		FacilityName:   f.Name,
		PreviousStatus: f.Status,
		NewStatus:      p.NewStatus,
		NewScore:       domain.ClampScore(p.NewScore),
		Kind:           p.Kind,
		ActorID:        p.ActorID,
		OccurredAt:     r.now(),
	}

	f.Status = p.NewStatus
	f.HygieneScore = event.NewScore
	if p.Amenities != nil {
		f.Amenities = *p.Amenities
	}
	if p.StampCleaned {
		f.LastCleanedAt = event.OccurredAt
	}

	r.publish(event)

	slog.Debug("facility transition applied",
		"facility_id", f.ID,
		"previous_status", event.PreviousStatus,
		"new_status", event.NewStatus,
		"new_score", event.NewScore,
		"kind", event.Kind,
		"actor_id", event.ActorID,
	)

	return &event, nil
}

// ApplyRemote force-applies an event received from the authoritative peer.
// Replica copies trust the authority, so no edge validation happens here;
// at-most-once push means the replica may legitimately have missed
// intermediate transitions. Unknown facilities are ignored.
func (r *Registry) ApplyRemote(event domain.StatusUpdateEvent) {
	e, err := r.lookup(event.FacilityID)
	if err != nil {
		slog.Debug("remote event for unknown facility", "facility_id", event.FacilityID)
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	f := &e.facility
	f.Status = event.NewStatus
	f.HygieneScore = domain.ClampScore(event.NewScore)
	if event.Kind == domain.EventKindCleaned || event.Kind == domain.EventKindCleaningCompleted {
		f.LastCleanedAt = event.OccurredAt
		f.Amenities = domain.AllAvailable()
	}
}

// AddReview appends a review to a facility under its lock.
func (r *Registry) AddReview(id string, review domain.Review) error {
	e, err := r.lookup(id)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.facility.Reviews = append(e.facility.Reviews, review)
	return nil
}

// publish fans the event out to sinks while the entry lock is held, so each
// sink observes events for one facility in commit order.
func (r *Registry) publish(event domain.StatusUpdateEvent) {
	r.mu.RLock()
	sinks := r.sinks
	r.mu.RUnlock()
	for _, s := range sinks {
		s(event)
	}
}

func copyFacility(f domain.Facility) domain.Facility {
	out := f
	if f.AssignedStaffID != nil {
		id := *f.AssignedStaffID
		out.AssignedStaffID = &id
	}
	out.Reviews = make([]domain.Review, len(f.Reviews))
	copy(out.Reviews, f.Reviews)
	return out
}
