package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sanitrack/sanitrack/internal/handler/dto"
	"github.com/sanitrack/sanitrack/internal/middleware"
)

// handleListFacilities lists all facilities with status counts.
// @Summary List facilities
// @Description Returns every facility with its current status, hygiene score and amenities, plus counts by status.
// @Tags facilities
// @Produce json
// @Success 200 {object} dto.FacilitiesListResponse
// @Router /facilities [get]
func (h *Handler) handleListFacilities(w http.ResponseWriter, r *http.Request) {
	facilities := h.reg.List()

	resp := dto.FacilitiesListResponse{
		Facilities:     make([]dto.FacilityResponse, 0, len(facilities)),
		Total:          len(facilities),
		CountsByStatus: make(map[string]int, 4),
	}
	for _, f := range facilities {
		resp.Facilities = append(resp.Facilities, dto.NewFacilityResponse(f))
		resp.CountsByStatus[string(f.Status)]++
	}

	respondJSON(w, http.StatusOK, resp)
}

// handleGetFacility returns one facility.
// @Summary Get facility
// @Tags facilities
// @Produce json
// @Param id path string true "Facility ID"
// @Success 200 {object} dto.FacilityResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /facilities/{id} [get]
func (h *Handler) handleGetFacility(w http.ResponseWriter, r *http.Request) {
	f, err := h.reg.Get(r.PathValue("id"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewFacilityResponse(f))
}

// handleStartCleaning moves a facility into Cleaning for the authenticated
// staff member and schedules the completion.
// @Summary Start cleaning
// @Description Marks the facility as under cleaning. Cleaners must be assigned to the facility.
// @Tags facilities
// @Produce json
// @Param id path string true "Facility ID"
// @Success 202 {object} dto.CleaningStartedResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /facilities/{id}/cleaning/start [post]
func (h *Handler) handleStartCleaning(w http.ResponseWriter, r *http.Request) {
	staff, err := middleware.GetStaffFromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	f, err := h.facilitySvc.StartCleaning(staff, r.PathValue("id"))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusAccepted, dto.CleaningStartedResponse{
		Facility:          dto.NewFacilityResponse(*f),
		CompletionSeconds: h.facilitySvc.CompletionSeconds(),
	})
}

// handleCompleteCleaning finishes an active cleaning ahead of schedule.
// @Summary Complete cleaning
// @Tags facilities
// @Produce json
// @Param id path string true "Facility ID"
// @Success 200 {object} dto.FacilityResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /facilities/{id}/cleaning/complete [post]
func (h *Handler) handleCompleteCleaning(w http.ResponseWriter, r *http.Request) {
	staff, err := middleware.GetStaffFromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	f, err := h.facilitySvc.CompleteCleaning(r.PathValue("id"), staff.ID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewFacilityResponse(*f))
}

// handleAddReview records a public review against a facility.
// @Summary Add review
// @Tags facilities
// @Accept json
// @Produce json
// @Param id path string true "Facility ID"
// @Param request body dto.AddReviewRequest true "Review"
// @Success 201 {object} domain.Review
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /facilities/{id}/reviews [post]
func (h *Handler) handleAddReview(w http.ResponseWriter, r *http.Request) {
	var req dto.AddReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	review, err := h.facilitySvc.AddReview(r.PathValue("id"), req.Author, req.Rating, req.Comment)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, review)
}
