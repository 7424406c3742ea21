// Package service implements the staff-facing workflows on top of the
// registry: the cleaning lifecycle with its scheduled completion, public
// reviews, and staff performance statistics.
package service

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sanitrack/sanitrack/internal/config"
	"github.com/sanitrack/sanitrack/internal/domain"
	"github.com/sanitrack/sanitrack/internal/ledger"
	"github.com/sanitrack/sanitrack/internal/registry"
)

// StaffStats summarizes one staff member's cleaning record, derived from the
// event ledger rather than from separately maintained counters.
type StaffStats struct {
	StaffID            string  `json:"staff_id"`
	Name               string  `json:"name"`
	Role               string  `json:"role"`
	AssignedFacilities int     `json:"assigned_facilities"`
	TotalCleaned       int     `json:"total_cleaned"`
	AverageScore       float64 `json:"average_score"`
	EfficiencyPercent  float64 `json:"efficiency_percent"`
}

// FacilityService coordinates staff actions against the registry. It owns
// the one-shot completion timers: at most one pending completion exists per
// facility, which the registry's Cleaning guard already implies but the
// timer map enforces independently.
type FacilityService struct {
	reg   *registry.Registry
	staff *registry.StaffDirectory
	led   *ledger.Ledger
	cfg   config.Simulation

	rngMu sync.Mutex
	rng   *rand.Rand

	pendingMu sync.Mutex
	pending   map[string]*time.Timer

	now func() time.Time
}

// New creates a FacilityService. A zero cfg.Seed derives the completion
// score RNG seed from the clock.
func New(reg *registry.Registry, staff *registry.StaffDirectory, led *ledger.Ledger, cfg config.Simulation) *FacilityService {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &FacilityService{
		reg:     reg,
		staff:   staff,
		led:     led,
		cfg:     cfg,
		rng:     rand.New(rand.NewSource(seed)),
		pending: make(map[string]*time.Timer),
		now:     time.Now,
	}
}

// StartCleaning moves a facility into Cleaning on behalf of a staff member
// and schedules the completion. Cleaners may only clean facilities assigned
// to them; supervisors may start cleaning anywhere.
func (s *FacilityService) StartCleaning(staff *domain.Staff, facilityID string) (*domain.Facility, error) {
	if !staff.IsActive {
		return nil, fmt.Errorf("%w: %s", domain.ErrStaffInactive, staff.ID)
	}

	f, err := s.reg.Get(facilityID)
	if err != nil {
		return nil, err
	}

	if staff.Role == domain.RoleCleaner && !f.IsAssignedTo(staff.ID) {
		return nil, fmt.Errorf("%w: %s is not assigned to %s", domain.ErrNotAssigned, staff.ID, facilityID)
	}

	_, err = s.reg.ApplyTransition(facilityID, registry.Proposal{
		ExpectedStatus: f.Status,
		NewStatus:      domain.StatusCleaning,
		NewScore:       f.HygieneScore,
		Kind:           domain.EventKindCleaningStarted,
		ActorID:        staff.ID,
	})
	if err != nil {
		return nil, err
	}

	s.scheduleCompletion(facilityID, staff.ID)

	slog.Info("cleaning started",
		"facility_id", facilityID,
		"staff_id", staff.ID,
		"completion_delay", s.cfg.CompletionDelay,
	)

	updated, err := s.reg.Get(facilityID)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// CompleteCleaning finishes an active cleaning: the facility returns to
// Clean with a randomized post-clean score, full amenities, and a fresh
// LastCleanedAt stamp. Normally invoked by the scheduled timer; callable
// directly for early completion.
func (s *FacilityService) CompleteCleaning(facilityID, actorID string) (*domain.Facility, error) {
	s.cancelPending(facilityID)

	event, err := s.reg.ApplyTransition(facilityID, registry.Proposal{
		ExpectedStatus: domain.StatusCleaning,
		NewStatus:      domain.StatusClean,
		NewScore:       s.completionScore(),
		Kind:           domain.EventKindCleaningCompleted,
		ActorID:        actorID,
		Amenities:      ptr(domain.AllAvailable()),
		StampCleaned:   true,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("cleaning completed",
		"facility_id", facilityID,
		"staff_id", actorID,
		"new_score", event.NewScore,
	)

	updated, err := s.reg.Get(facilityID)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// AddReview records a public review against a facility. Rating must be
// within [1, 5]; an empty author is stored as anonymous.
func (s *FacilityService) AddReview(facilityID, author string, rating int, comment string) (*domain.Review, error) {
	if rating < domain.MinRating || rating > domain.MaxRating {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidRating, rating)
	}
	if author == "" {
		author = "anonymous"
	}

	review := domain.Review{
		ID:         uuid.NewString(),
		FacilityID: facilityID,
		Author:     author,
		Rating:     rating,
		Comment:    comment,
		CreatedAt:  s.now(),
	}
	if err := s.reg.AddReview(facilityID, review); err != nil {
		return nil, err
	}

	slog.Info("review added", "facility_id", facilityID, "rating", rating)
	return &review, nil
}

// StatsFor derives a staff member's performance summary from the ledger.
// Only completed cleanings attributed to the member count; the average is
// over their post-clean scores.
func (s *FacilityService) StatsFor(staffID string) (*StaffStats, error) {
	member, err := s.staff.GetByID(staffID)
	if err != nil {
		return nil, err
	}

	assigned := 0
	for _, f := range s.reg.List() {
		if f.IsAssignedTo(staffID) {
			assigned++
		}
	}

	cleaned := 0
	scoreSum := 0
	for _, ev := range s.led.Snapshot() {
		if ev.ActorID != staffID || ev.Kind != domain.EventKindCleaningCompleted {
			continue
		}
		cleaned++
		scoreSum += ev.NewScore
	}

	stats := &StaffStats{
		StaffID:            member.ID,
		Name:               member.Name,
		Role:               string(member.Role),
		AssignedFacilities: assigned,
		TotalCleaned:       cleaned,
	}
	if cleaned > 0 {
		stats.AverageScore = float64(scoreSum) / float64(cleaned)
	}
	if assigned > 0 {
		stats.EfficiencyPercent = float64(cleaned) / float64(assigned) * 100
	}
	return stats, nil
}

// CompletionSeconds reports the configured cleaning duration in whole seconds.
func (s *FacilityService) CompletionSeconds() int {
	return int(s.cfg.CompletionDelay.Seconds())
}

// Shutdown cancels all pending completion timers.
func (s *FacilityService) Shutdown() {
	s.pendingMu.Lock()
	defer s.pendingMu.Unlock()
	for id, t := range s.pending {
		t.Stop()
		delete(s.pending, id)
	}
}

// scheduleCompletion arms the one-shot completion timer for a facility. The
// Cleaning guard in the registry means no second start can race in, but the
// map check keeps a stray duplicate from arming two timers regardless.
func (s *FacilityService) scheduleCompletion(facilityID, actorID string) {
	s.pendingMu.Lock()
	defer s.pendingMu.Unlock()

	if _, exists := s.pending[facilityID]; exists {
		return
	}

	s.pending[facilityID] = time.AfterFunc(s.cfg.CompletionDelay, func() {
		if _, err := s.CompleteCleaning(facilityID, actorID); err != nil {
			slog.Error("scheduled cleaning completion failed",
				"facility_id", facilityID,
				"error", err,
			)
		}
	})
}

// cancelPending disarms and forgets the facility's completion timer, if any.
func (s *FacilityService) cancelPending(facilityID string) {
	s.pendingMu.Lock()
	defer s.pendingMu.Unlock()
	if t, ok := s.pending[facilityID]; ok {
		t.Stop()
		delete(s.pending, facilityID)
	}
}

// completionScore draws the post-clean hygiene score.
func (s *FacilityService) completionScore() int {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	span := s.cfg.CompletionScoreMax - s.cfg.CompletionScoreMin + 1
	return s.cfg.CompletionScoreMin + s.rng.Intn(span)
}

func ptr[T any](v T) *T {
	return &v
}
