package domain

import "time"

// FacilityStatus represents the hygiene state of a facility in the state machine.
type FacilityStatus string

const (
	StatusClean    FacilityStatus = "Clean"
	StatusModerate FacilityStatus = "Moderate"
	StatusDirty    FacilityStatus = "Dirty"
	StatusCleaning FacilityStatus = "Cleaning"
)

// IsValid checks if the status is one of the allowed values.
func (s FacilityStatus) IsValid() bool {
	switch s {
	case StatusClean, StatusModerate, StatusDirty, StatusCleaning:
		return true
	default:
		return false
	}
}

// Category represents the kind of location a facility serves.
type Category string

const (
	CategoryPublic     Category = "public"
	CategoryMetro      Category = "metro"
	CategoryMall       Category = "mall"
	CategoryHospital   Category = "hospital"
	CategoryUniversity Category = "university"
	CategoryGasStation Category = "gas_station"
)

// IsValid checks if the category is one of the allowed values.
func (c Category) IsValid() bool {
	switch c {
	case CategoryPublic, CategoryMetro, CategoryMall, CategoryHospital,
		CategoryUniversity, CategoryGasStation:
		return true
	default:
		return false
	}
}

// Occupancy represents how heavily a facility is used.
type Occupancy string

const (
	OccupancyLow    Occupancy = "low"
	OccupancyMedium Occupancy = "medium"
	OccupancyHigh   Occupancy = "high"
)

// Amenities tracks consumable availability inside a facility.
type Amenities struct {
	Water bool `json:"water"`
	Soap  bool `json:"soap"`
	Paper bool `json:"paper"`
}

// AllAvailable returns Amenities with every consumable restored.
func AllAvailable() Amenities {
	return Amenities{Water: true, Soap: true, Paper: true}
}

// Facility represents a monitored restroom unit. The canonical copy is owned
// by the registry; all mutation goes through ApplyTransition.
type Facility struct {
	ID              string
	Name            string
	Address         string
	Category        Category
	Occupancy       Occupancy
	Status          FacilityStatus
	HygieneScore    int // invariant: 0..100
	LastCleanedAt   time.Time
	NextScheduledAt time.Time
	AssignedStaffID *string
	Amenities       Amenities
	Reviews         []Review
}

// IsAssignedTo checks if the facility is assigned to the given staff member.
func (f *Facility) IsAssignedTo(staffID string) bool {
	return f.AssignedStaffID != nil && *f.AssignedStaffID == staffID
}

// ClampScore forces a raw score into the 0..100 invariant range.
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
