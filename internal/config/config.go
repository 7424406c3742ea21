// Package config holds service defaults and the tunable tables driving the
// degradation simulation. The numeric constants are deliberately
// configuration, not law: the near-duplicate dashboards this system replaces
// disagreed on some of them, so every knob lives here in one place.
package config

import (
	"time"

	"github.com/sanitrack/sanitrack/internal/domain"
)

const (
	// DefaultStaffPort is the default HTTP port of the staff (authoritative) service.
	DefaultStaffPort = "5002"

	// DefaultPublicPort is the default HTTP port of the public (replica) service.
	DefaultPublicPort = "5001"

	// DefaultDatabaseURL is empty; the durable event archive is optional.
	DefaultDatabaseURL = ""
)

// Simulation configures the status simulator and the cleaning workflow.
type Simulation struct {
	// TickInterval is how often the simulator attempts one transition.
	TickInterval time.Duration

	// CompletionDelay is how long a started cleaning takes to complete.
	CompletionDelay time.Duration

	// DegradationRates is the per-category base probability of degradation
	// per tick, before the occupancy multiplier.
	DegradationRates map[domain.Category]float64

	// OccupancyMultipliers scales the degradation probability by usage level.
	OccupancyMultipliers map[domain.Occupancy]float64

	// DirtyRecoveryRate is the per-tick probability that a Dirty facility
	// improves without an explicit staff action (ad hoc cleaning).
	DirtyRecoveryRate float64

	// CompletionScoreMin/Max bound the randomized score after a staff
	// cleaning completes.
	CompletionScoreMin int
	CompletionScoreMax int

	// Seed seeds the simulator's private RNG; 0 means derive from wall clock.
	Seed int64
}

// DefaultSimulation returns the reference simulation tuning.
func DefaultSimulation() Simulation {
	return Simulation{
		TickInterval:    8 * time.Second,
		CompletionDelay: 30 * time.Second,
		DegradationRates: map[domain.Category]float64{
			domain.CategoryGasStation: 0.25,
			domain.CategoryUniversity: 0.20,
			domain.CategoryMetro:      0.18,
			domain.CategoryMall:       0.15,
			domain.CategoryPublic:     0.12,
			domain.CategoryHospital:   0.08,
		},
		OccupancyMultipliers: map[domain.Occupancy]float64{
			domain.OccupancyHigh:   1.5,
			domain.OccupancyMedium: 1.0,
			domain.OccupancyLow:    0.7,
		},
		DirtyRecoveryRate:  0.08,
		CompletionScoreMin: 80,
		CompletionScoreMax: 95,
	}
}

// Sync configures the ledger and cross-service propagation.
type Sync struct {
	// LedgerCapacity is the ring buffer size of the per-instance update ledger.
	LedgerCapacity int

	// DefaultWindow is the default recency window for update queries.
	DefaultWindow time.Duration

	// PeerURL is the base URL of the peer service. On the staff service it
	// is the replica's webhook target; on the public service it is the
	// authority polled for pull reconciliation. Empty disables propagation.
	PeerURL string

	// PushTimeout bounds one webhook delivery attempt.
	PushTimeout time.Duration

	// PullInterval is how often the replica reconciles via /sync/pull.
	PullInterval time.Duration
}

// DefaultSync returns the reference sync tuning.
func DefaultSync() Sync {
	return Sync{
		LedgerCapacity: 50,
		DefaultWindow:  30 * time.Minute,
		PushTimeout:    5 * time.Second,
		PullInterval:   60 * time.Second,
	}
}
