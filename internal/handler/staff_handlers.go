package handler

import (
	"net/http"

	"github.com/sanitrack/sanitrack/internal/domain"
	"github.com/sanitrack/sanitrack/internal/handler/dto"
	"github.com/sanitrack/sanitrack/internal/middleware"
)

// canReadStaff allows supervisors to read anyone and cleaners only themselves.
func (h *Handler) canReadStaff(staff *domain.Staff, staffID string) bool {
	return staff.Role == domain.RoleSupervisor || staff.ID == staffID
}

// handleStaffTasks returns the priority-ordered task list for a staff member.
// Cleaners may only read their own list.
// @Summary List staff tasks
// @Tags staff
// @Produce json
// @Param id path string true "Staff ID"
// @Success 200 {object} dto.TasksListResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /staff/{id}/tasks [get]
func (h *Handler) handleStaffTasks(w http.ResponseWriter, r *http.Request) {
	staff, err := middleware.GetStaffFromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	staffID := r.PathValue("id")
	if !h.canReadStaff(staff, staffID) {
		respondError(w, http.StatusForbidden, "INSUFFICIENT_ACCESS", "cannot read another staff member's tasks")
		return
	}

	tasks := h.dispatcher.TasksFor(staffID)
	resp := dto.TasksListResponse{
		StaffID: staffID,
		Tasks:   make([]dto.TaskResponse, 0, len(tasks)),
		Total:   len(tasks),
	}
	for _, t := range tasks {
		resp.Tasks = append(resp.Tasks, dto.NewTaskResponse(t))
	}

	respondJSON(w, http.StatusOK, resp)
}

// handleStaffStats returns a staff member's performance summary.
// @Summary Staff statistics
// @Tags staff
// @Produce json
// @Param id path string true "Staff ID"
// @Success 200 {object} service.StaffStats
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /staff/{id}/stats [get]
func (h *Handler) handleStaffStats(w http.ResponseWriter, r *http.Request) {
	staff, err := middleware.GetStaffFromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	staffID := r.PathValue("id")
	if !h.canReadStaff(staff, staffID) {
		respondError(w, http.StatusForbidden, "INSUFFICIENT_ACCESS", "cannot read another staff member's stats")
		return
	}

	stats, err := h.facilitySvc.StatsFor(staffID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
