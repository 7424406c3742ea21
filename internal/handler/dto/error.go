package dto

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/sanitrack/sanitrack/internal/domain"
)

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error code and message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewErrorResponse creates a new error response.
func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	}
}

// MapDomainError maps domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code string, message string) {
	message = err.Error()

	switch {
	// Lookup errors
	case errors.Is(err, domain.ErrFacilityNotFound):
		return http.StatusNotFound, "FACILITY_NOT_FOUND", message
	case errors.Is(err, domain.ErrStaffNotFound):
		return http.StatusNotFound, "STAFF_NOT_FOUND", message

	// Transition conflicts
	case errors.Is(err, domain.ErrCleaningInProgress):
		return http.StatusConflict, "CLEANING_IN_PROGRESS", message
	case errors.Is(err, domain.ErrNotCleaning):
		return http.StatusConflict, "NOT_CLEANING", message
	case errors.Is(err, domain.ErrStatusConflict):
		return http.StatusConflict, "STATUS_CONFLICT", message
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, "INVALID_TRANSITION", message

	// Permission errors
	case errors.Is(err, domain.ErrPermissionDenied):
		return http.StatusForbidden, "INSUFFICIENT_ACCESS", message
	case errors.Is(err, domain.ErrNotAssigned):
		return http.StatusForbidden, "INSUFFICIENT_ACCESS", message

	// Authentication errors
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, "INVALID_TOKEN", message
	case errors.Is(err, domain.ErrStaffInactive):
		return http.StatusUnauthorized, "STAFF_INACTIVE", message

	// Validation errors
	case errors.Is(err, domain.ErrMissingField):
		return http.StatusBadRequest, "MISSING_FIELD", message
	case errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidKind),
		errors.Is(err, domain.ErrInvalidRating),
		errors.Is(err, domain.ErrScoreOutOfRange):
		return http.StatusUnprocessableEntity, "VALIDATION_ERROR", message

	// Default: internal server error
	default:
		slog.Error("unmapped domain error returned to client",
			"error", err,
			"error_type", fmt.Sprintf("%T", err),
		)
		return http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error"
	}
}
