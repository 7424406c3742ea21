package domain

import "errors"

// Domain-specific errors for business logic validation.
var (
	// Facility errors
	ErrFacilityNotFound = errors.New("facility not found")
	ErrStaffNotFound    = errors.New("staff member not found")

	// Transition errors
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrStatusConflict     = errors.New("facility status changed concurrently")
	ErrCleaningInProgress = errors.New("cleaning already in progress")
	ErrNotCleaning        = errors.New("facility is not being cleaned")

	// Permission errors
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotAssigned      = errors.New("facility not assigned to staff member")
	ErrInvalidToken     = errors.New("invalid authentication token")
	ErrStaffInactive    = errors.New("staff member is inactive")

	// Validation errors
	ErrInvalidStatus   = errors.New("invalid facility status")
	ErrInvalidKind     = errors.New("invalid event kind")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrMissingField    = errors.New("missing required field")
	ErrScoreOutOfRange = errors.New("hygiene score outside 0-100 range")
)
