// Package simulator perturbs facility state over time, modelling the
// degradation and ad hoc recovery cycle of real facilities. Every outcome is
// submitted through the registry like any other writer, so the simulator can
// never bypass the transition rules or interleave partial updates.
package simulator

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"time"

	"github.com/sanitrack/sanitrack/internal/config"
	"github.com/sanitrack/sanitrack/internal/domain"
	"github.com/sanitrack/sanitrack/internal/registry"
)

// Simulator runs the degradation/recovery state machine on a fixed tick.
// It owns a private seeded RNG so transition sequences are reproducible.
type Simulator struct {
	cfg config.Simulation
	reg *registry.Registry
	rng *rand.Rand
}

// New creates a Simulator. A zero cfg.Seed derives the seed from the clock.
func New(cfg config.Simulation, reg *registry.Registry) *Simulator {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Simulator{
		cfg: cfg,
		reg: reg,
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Run ticks until ctx is cancelled. Each tick targets one randomly chosen
// facility and attempts at most one transition.
func (s *Simulator) Run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	slog.Info("simulator started", "tick_interval", s.cfg.TickInterval)

	for {
		select {
		case <-ctx.Done():
			slog.Info("simulator stopped")
			return
		case <-ticker.C:
			s.Tick()
		}
	}
}

// Tick attempts one transition on one randomly selected facility.
func (s *Simulator) Tick() {
	facilities := s.reg.List()
	if len(facilities) == 0 {
		return
	}
	f := facilities[s.rng.Intn(len(facilities))]

	proposal, ok := s.evaluate(f)
	if !ok {
		return
	}

	event, err := s.reg.ApplyTransition(f.ID, proposal)
	if err != nil {
		// A staff action won the race for this facility; the next tick
		// re-reads fresh state.
		if errors.Is(err, domain.ErrStatusConflict) || errors.Is(err, domain.ErrCleaningInProgress) {
			slog.Debug("simulator proposal lost race", "facility_id", f.ID, "error", err)
			return
		}
		slog.Error("simulator transition rejected", "facility_id", f.ID, "error", err)
		return
	}

	slog.Info("simulated transition",
		"facility_id", event.FacilityID,
		"previous_status", event.PreviousStatus,
		"new_status", event.NewStatus,
		"new_score", event.NewScore,
	)
}

// evaluate draws this tick's outcome for a facility snapshot. It returns
// false when the dice decide nothing happens, or when the facility is under
// active cleaning (only the completion task may exit Cleaning).
func (s *Simulator) evaluate(f domain.Facility) (registry.Proposal, bool) {
	multiplier, ok := s.cfg.OccupancyMultipliers[f.Occupancy]
	if !ok {
		multiplier = 1.0
	}
	effective := s.cfg.DegradationRates[f.Category] * multiplier

	switch f.Status {
	case domain.StatusClean:
		if s.rng.Float64() >= effective {
			return registry.Proposal{}, false
		}
		drop := int(float64(s.intBetween(8, 20)) * multiplier)
		amenities := f.Amenities
		if s.rng.Float64() < 0.3 {
			amenities.Soap = false
		}
		if s.rng.Float64() < 0.2 {
			amenities.Paper = false
		}
		return registry.Proposal{
			ExpectedStatus: domain.StatusClean,
			NewStatus:      domain.StatusModerate,
			NewScore:       floorAt(f.HygieneScore-drop, 50),
			Kind:           domain.EventKindDegraded,
			ActorID:        domain.SystemActorID,
			Amenities:      &amenities,
		}, true

	case domain.StatusModerate:
		if s.rng.Float64() >= effective*1.2 {
			return registry.Proposal{}, false
		}
		if s.rng.Float64() < 0.4 {
			// Cleaned outside the dispatch workflow.
			amenities := domain.AllAvailable()
			return registry.Proposal{
				ExpectedStatus: domain.StatusModerate,
				NewStatus:      domain.StatusClean,
				NewScore:       capAt(f.HygieneScore+s.intBetween(25, 45), 95),
				Kind:           domain.EventKindCleaned,
				ActorID:        domain.SystemActorID,
				Amenities:      &amenities,
				StampCleaned:   true,
			}, true
		}
		drop := int(float64(s.intBetween(15, 35)) * multiplier)
		amenities := f.Amenities
		if s.rng.Float64() < 0.5 {
			amenities.Water = false
		}
		amenities.Soap = false
		if s.rng.Float64() < 0.4 {
			amenities.Paper = false
		}
		return registry.Proposal{
			ExpectedStatus: domain.StatusModerate,
			NewStatus:      domain.StatusDirty,
			NewScore:       floorAt(f.HygieneScore-drop, 10),
			Kind:           domain.EventKindDegraded,
			ActorID:        domain.SystemActorID,
			Amenities:      &amenities,
		}, true

	case domain.StatusDirty:
		if s.rng.Float64() >= s.cfg.DirtyRecoveryRate {
			return registry.Proposal{}, false
		}
		if s.rng.Float64() < 0.7 {
			amenities := f.Amenities
			amenities.Water = true
			if s.rng.Float64() < 0.6 {
				amenities.Soap = true
			}
			return registry.Proposal{
				ExpectedStatus: domain.StatusDirty,
				NewStatus:      domain.StatusModerate,
				NewScore:       capAt(f.HygieneScore+s.intBetween(15, 30), 60),
				Kind:           domain.EventKindCleaned,
				ActorID:        domain.SystemActorID,
				Amenities:      &amenities,
			}, true
		}
		amenities := domain.AllAvailable()
		return registry.Proposal{
			ExpectedStatus: domain.StatusDirty,
			NewStatus:      domain.StatusClean,
			NewScore:       capAt(f.HygieneScore+s.intBetween(30, 50), 90),
			Kind:           domain.EventKindCleaned,
			ActorID:        domain.SystemActorID,
			Amenities:      &amenities,
			StampCleaned:   true,
		}, true

	default: // StatusCleaning
		return registry.Proposal{}, false
	}
}

// intBetween returns a uniform integer in [lo, hi].
func (s *Simulator) intBetween(lo, hi int) int {
	return lo + s.rng.Intn(hi-lo+1)
}

func floorAt(score, floor int) int {
	if score < floor {
		return floor
	}
	return domain.ClampScore(score)
}

func capAt(score, limit int) int {
	if score > limit {
		return limit
	}
	return domain.ClampScore(score)
}
