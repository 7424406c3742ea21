package simulator_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanitrack/sanitrack/internal/config"
	"github.com/sanitrack/sanitrack/internal/domain"
	"github.com/sanitrack/sanitrack/internal/registry"
	"github.com/sanitrack/sanitrack/internal/simulator"
)

// alwaysDegrade forces every roll to transition, so a single tick is enough
// to observe the outcome.
func alwaysDegrade(seed int64) config.Simulation {
	cfg := config.DefaultSimulation()
	cfg.Seed = seed
	for c := range cfg.DegradationRates {
		cfg.DegradationRates[c] = 1.0
	}
	for o := range cfg.OccupancyMultipliers {
		cfg.OccupancyMultipliers[o] = 1.0
	}
	cfg.DirtyRecoveryRate = 1.0
	return cfg
}

func singleFacility(status domain.FacilityStatus, score int) *registry.Registry {
	return registry.New([]domain.Facility{{
		ID:            "facility_x",
		Name:          "Test Facility",
		Category:      domain.CategoryPublic,
		Occupancy:     domain.OccupancyMedium,
		Status:        status,
		HygieneScore:  score,
		LastCleanedAt: time.Now().Add(-2 * time.Hour),
		Amenities:     domain.AllAvailable(),
	}})
}

func TestTickDegradesCleanFacility(t *testing.T) {
	reg := singleFacility(domain.StatusClean, 85)
	sim := simulator.New(alwaysDegrade(42), reg)

	sim.Tick()

	f, err := reg.Get("facility_x")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusModerate, f.Status)
	// Drop of 8-20 points at multiplier 1.0, floored at 50.
	assert.GreaterOrEqual(t, f.HygieneScore, 65)
	assert.LessOrEqual(t, f.HygieneScore, 77)
}

// A busy mall facility degrades harder: the 8-20 point drop is scaled by the
// high-occupancy multiplier before flooring.
func TestTickDegradationScaledByOccupancy(t *testing.T) {
	cfg := alwaysDegrade(42)
	cfg.OccupancyMultipliers[domain.OccupancyHigh] = 1.5

	reg := registry.New([]domain.Facility{{
		ID:            "facility_mall",
		Name:          "Shopping Mall Restroom",
		Category:      domain.CategoryMall,
		Occupancy:     domain.OccupancyHigh,
		Status:        domain.StatusClean,
		HygieneScore:  85,
		LastCleanedAt: time.Now().Add(-2 * time.Hour),
		Amenities:     domain.AllAvailable(),
	}})
	sim := simulator.New(cfg, reg)

	sim.Tick()

	f, err := reg.Get("facility_mall")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusModerate, f.Status)
	// Drop of 12-30 points after the 1.5 multiplier.
	assert.GreaterOrEqual(t, f.HygieneScore, 55)
	assert.LessOrEqual(t, f.HygieneScore, 73)
}

func TestTickCleanFacilityNearFloor(t *testing.T) {
	reg := singleFacility(domain.StatusClean, 55)
	sim := simulator.New(alwaysDegrade(7), reg)

	sim.Tick()

	f, err := reg.Get("facility_x")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusModerate, f.Status)
	assert.GreaterOrEqual(t, f.HygieneScore, 50)
}

func TestTickMovesModerateFacility(t *testing.T) {
	reg := singleFacility(domain.StatusModerate, 45)
	sim := simulator.New(alwaysDegrade(42), reg)

	sim.Tick()

	f, err := reg.Get("facility_x")
	require.NoError(t, err)
	// Moderate either recovers to Clean (ad hoc cleaning) or slides to Dirty.
	assert.Contains(t, []domain.FacilityStatus{domain.StatusClean, domain.StatusDirty}, f.Status)
	if f.Status == domain.StatusClean {
		assert.GreaterOrEqual(t, f.HygieneScore, 45)
		assert.LessOrEqual(t, f.HygieneScore, 95)
		assert.Equal(t, domain.AllAvailable(), f.Amenities)
	} else {
		assert.GreaterOrEqual(t, f.HygieneScore, 10)
		assert.Less(t, f.HygieneScore, 45)
		assert.False(t, f.Amenities.Soap)
	}
}

func TestTickRecoversDirtyFacility(t *testing.T) {
	reg := singleFacility(domain.StatusDirty, 20)
	sim := simulator.New(alwaysDegrade(42), reg)

	sim.Tick()

	f, err := reg.Get("facility_x")
	require.NoError(t, err)
	assert.Contains(t, []domain.FacilityStatus{domain.StatusModerate, domain.StatusClean}, f.Status)
	assert.Greater(t, f.HygieneScore, 20)
	assert.True(t, f.Amenities.Water)
}

func TestTickLeavesCleaningFacilityAlone(t *testing.T) {
	reg := singleFacility(domain.StatusCleaning, 40)
	sim := simulator.New(alwaysDegrade(42), reg)

	for i := 0; i < 20; i++ {
		sim.Tick()
	}

	f, err := reg.Get("facility_x")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCleaning, f.Status)
	assert.Equal(t, 40, f.HygieneScore)
}

func TestSameSeedSameSequence(t *testing.T) {
	run := func() []domain.Facility {
		reg := registry.New(registry.SeedFacilities(time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)))
		sim := simulator.New(alwaysDegrade(1234), reg)
		for i := 0; i < 50; i++ {
			sim.Tick()
		}
		return reg.List()
	}

	first := run()
	second := run()
	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Status, second[i].Status, first[i].ID)
		assert.Equal(t, first[i].HygieneScore, second[i].HygieneScore, first[i].ID)
	}
}

// Whatever the dice do, scores stay in range and statuses stay valid.
func TestLongRunInvariants(t *testing.T) {
	reg := registry.New(registry.SeedFacilities(time.Now()))
	sim := simulator.New(alwaysDegrade(99), reg)

	for i := 0; i < 500; i++ {
		sim.Tick()
		for _, f := range reg.List() {
			require.True(t, f.Status.IsValid(), "tick %d: %s", i, f.ID)
			require.GreaterOrEqual(t, f.HygieneScore, 0, "tick %d: %s", i, f.ID)
			require.LessOrEqual(t, f.HygieneScore, 100, "tick %d: %s", i, f.ID)
		}
	}
}
