package registry

import (
	"time"

	"github.com/sanitrack/sanitrack/internal/domain"
)

// Demo roster IDs referenced by the seed facilities.
const (
	SeedCleanerID    = "staff_001"
	SeedSupervisorID = "staff_002"
)

// SeedStaff returns the demo staff roster.
func SeedStaff(now time.Time) []domain.Staff {
	return []domain.Staff{
		{
			ID:        SeedCleanerID,
			Name:      "Ravi Kumar",
			Email:     "cleaner@example.com",
			Token:     "cleaner-token-001",
			Role:      domain.RoleCleaner,
			IsActive:  true,
			CreatedAt: now,
		},
		{
			ID:        SeedSupervisorID,
			Name:      "Anita Sharma",
			Email:     "supervisor@example.com",
			Token:     "supervisor-token-001",
			Role:      domain.RoleSupervisor,
			IsActive:  true,
			CreatedAt: now,
		},
	}
}

// SeedFacilities returns the demo facility set, timestamped relative to now.
func SeedFacilities(now time.Time) []domain.Facility {
	cleaner := SeedCleanerID
	return []domain.Facility{
		{
			ID:              "facility_001",
			Name:            "Central Park Public Restroom",
			Address:         "Central Park, Connaught Place, New Delhi",
			Category:        domain.CategoryPublic,
			Occupancy:       domain.OccupancyLow,
			Status:          domain.StatusClean,
			HygieneScore:    85,
			LastCleanedAt:   now.Add(-2 * time.Hour),
			NextScheduledAt: now.Add(4 * time.Hour),
			AssignedStaffID: &cleaner,
			Amenities:       domain.AllAvailable(),
		},
		{
			ID:              "facility_002",
			Name:            "Metro Station Restroom",
			Address:         "Rajiv Chowk Metro Station, New Delhi",
			Category:        domain.CategoryMetro,
			Occupancy:       domain.OccupancyHigh,
			Status:          domain.StatusModerate,
			HygieneScore:    45,
			LastCleanedAt:   now.Add(-6 * time.Hour),
			NextScheduledAt: now.Add(2 * time.Hour),
			AssignedStaffID: &cleaner,
			Amenities:       domain.Amenities{Water: true, Soap: false, Paper: true},
		},
		{
			ID:              "facility_003",
			Name:            "Shopping Mall Restroom",
			Address:         "City Walk Mall, Saket, New Delhi",
			Category:        domain.CategoryMall,
			Occupancy:       domain.OccupancyMedium,
			Status:          domain.StatusDirty,
			HygieneScore:    25,
			LastCleanedAt:   now.Add(-8 * time.Hour),
			NextScheduledAt: now.Add(-1 * time.Hour),
			Amenities:       domain.Amenities{},
		},
		{
			ID:              "facility_004",
			Name:            "Hospital Restroom",
			Address:         "AIIMS Hospital, New Delhi",
			Category:        domain.CategoryHospital,
			Occupancy:       domain.OccupancyMedium,
			Status:          domain.StatusClean,
			HygieneScore:    75,
			LastCleanedAt:   now.Add(-1 * time.Hour),
			NextScheduledAt: now.Add(3 * time.Hour),
			AssignedStaffID: &cleaner,
			Amenities:       domain.AllAvailable(),
		},
		{
			ID:              "facility_005",
			Name:            "University Campus Restroom",
			Address:         "Delhi University North Campus",
			Category:        domain.CategoryUniversity,
			Occupancy:       domain.OccupancyHigh,
			Status:          domain.StatusModerate,
			HygieneScore:    35,
			LastCleanedAt:   now.Add(-5 * time.Hour),
			NextScheduledAt: now.Add(1 * time.Hour),
			Amenities:       domain.Amenities{Water: true},
		},
		{
			ID:              "facility_006",
			Name:            "Gas Station Restroom",
			Address:         "Indian Oil Petrol Station, NH8",
			Category:        domain.CategoryGasStation,
			Occupancy:       domain.OccupancyLow,
			Status:          domain.StatusDirty,
			HygieneScore:    20,
			LastCleanedAt:   now.Add(-10 * time.Hour),
			NextScheduledAt: now.Add(-2 * time.Hour),
			Amenities:       domain.Amenities{},
		},
	}
}
