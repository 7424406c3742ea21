package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/sanitrack/sanitrack/internal/handler/dto"
	"github.com/sanitrack/sanitrack/internal/propagate"
)

// handleListUpdates returns the recent-updates feed from the local ledger,
// newest first.
// @Summary Recent status updates
// @Tags sync
// @Produce json
// @Param windowMinutes query int false "Window in minutes"
// @Success 200 {object} dto.UpdatesListResponse
// @Router /updates [get]
func (h *Handler) handleListUpdates(w http.ResponseWriter, r *http.Request) {
	minutes := h.windowMinutes(r)
	entries := h.led.Recent(time.Duration(minutes)*time.Minute, true)

	resp := dto.UpdatesListResponse{
		Updates:       make([]dto.UpdateResponse, 0, len(entries)),
		Total:         len(entries),
		WindowMinutes: minutes,
	}
	for _, e := range entries {
		resp.Updates = append(resp.Updates, dto.NewUpdateResponse(e))
	}

	respondJSON(w, http.StatusOK, resp)
}

// handleSyncPull serves the replica's reconciliation pull: the local ledger
// window in wire form, oldest first so the replica applies in commit order.
// @Summary Pull recent events
// @Tags sync
// @Produce json
// @Param windowMinutes query int false "Window in minutes"
// @Success 200 {object} propagate.PullResponse
// @Router /sync/pull [get]
func (h *Handler) handleSyncPull(w http.ResponseWriter, r *http.Request) {
	minutes := h.windowMinutes(r)
	entries := h.led.Recent(time.Duration(minutes)*time.Minute, false)

	resp := propagate.PullResponse{
		HasUpdates:  len(entries) > 0,
		Updates:     make([]propagate.EventPayload, 0, len(entries)),
		LastUpdated: time.Now().UTC(),
	}
	for _, e := range entries {
		resp.Updates = append(resp.Updates, propagate.ToPayload(e.Event))
	}

	respondJSON(w, http.StatusOK, resp)
}

// handleSyncWebhook ingests one pushed event. Duplicates acknowledge with
// 200 and applied=false; a payload missing required fields gets 400.
// @Summary Receive pushed event
// @Tags sync
// @Accept json
// @Produce json
// @Param request body propagate.EventPayload true "Status update event"
// @Success 200 {object} dto.WebhookAckResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /sync/webhook [post]
func (h *Handler) handleSyncWebhook(w http.ResponseWriter, r *http.Request) {
	var payload propagate.EventPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	event, applied, err := h.consumer.Ingest(payload)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.WebhookAckResponse{
		EventID: event.ID,
		Applied: applied,
	})
}
