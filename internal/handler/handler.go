// Package handler exposes the HTTP API of both services. The staff service
// registers the authoritative routes (cleaning actions, tasks, stats, sync
// pull); the public service registers the replica routes (read-only
// facilities, reviews, sync webhook).
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sanitrack/sanitrack/internal/config"
	"github.com/sanitrack/sanitrack/internal/dispatch"
	"github.com/sanitrack/sanitrack/internal/handler/dto"
	"github.com/sanitrack/sanitrack/internal/ledger"
	"github.com/sanitrack/sanitrack/internal/middleware"
	"github.com/sanitrack/sanitrack/internal/propagate"
	"github.com/sanitrack/sanitrack/internal/registry"
	"github.com/sanitrack/sanitrack/internal/service"
	"github.com/sanitrack/sanitrack/internal/static"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	reg            *registry.Registry
	led            *ledger.Ledger
	facilitySvc    *service.FacilityService
	dispatcher     *dispatch.Dispatcher
	consumer       *propagate.Consumer
	authMiddleware *middleware.AuthMiddleware
	syncCfg        config.Sync
}

// New creates a new Handler instance with all dependencies.
func New(
	reg *registry.Registry,
	staffDir *registry.StaffDirectory,
	led *ledger.Ledger,
	facilitySvc *service.FacilityService,
	syncCfg config.Sync,
) *Handler {
	return &Handler{
		reg:            reg,
		led:            led,
		facilitySvc:    facilitySvc,
		dispatcher:     dispatch.New(reg),
		consumer:       propagate.NewConsumer(reg, led),
		authMiddleware: middleware.NewAuthMiddleware(staffDir),
		syncCfg:        syncCfg,
	}
}

// RegisterStaffRoutes registers the authoritative service's routes.
func (h *Handler) RegisterStaffRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.handleHealthz)
	mux.HandleFunc("GET /api.md", h.handleAPIMd)

	mux.HandleFunc("GET /api/v1/facilities", h.handleListFacilities)
	mux.HandleFunc("GET /api/v1/facilities/{id}", h.handleGetFacility)
	mux.HandleFunc("POST /api/v1/facilities/{id}/reviews", h.handleAddReview)
	mux.HandleFunc("GET /api/v1/updates", h.handleListUpdates)
	mux.HandleFunc("GET /api/v1/sync/pull", h.handleSyncPull)

	mux.Handle("POST /api/v1/facilities/{id}/cleaning/start",
		h.authMiddleware.Authenticate(http.HandlerFunc(h.handleStartCleaning)))
	mux.Handle("POST /api/v1/facilities/{id}/cleaning/complete",
		h.authMiddleware.Authenticate(http.HandlerFunc(h.handleCompleteCleaning)))
	mux.Handle("GET /api/v1/staff/{id}/tasks",
		h.authMiddleware.Authenticate(http.HandlerFunc(h.handleStaffTasks)))
	mux.Handle("GET /api/v1/staff/{id}/stats",
		h.authMiddleware.Authenticate(http.HandlerFunc(h.handleStaffStats)))
}

// RegisterPublicRoutes registers the replica service's routes.
func (h *Handler) RegisterPublicRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.handleHealthz)
	mux.HandleFunc("GET /api.md", h.handleAPIMd)

	mux.HandleFunc("GET /api/v1/facilities", h.handleListFacilities)
	mux.HandleFunc("GET /api/v1/facilities/{id}", h.handleGetFacility)
	mux.HandleFunc("POST /api/v1/facilities/{id}/reviews", h.handleAddReview)
	mux.HandleFunc("GET /api/v1/updates", h.handleListUpdates)
	mux.HandleFunc("POST /api/v1/sync/webhook", h.handleSyncWebhook)
}

// handleHealthz returns 200 OK while the service is running.
func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// handleAPIMd serves the embedded API guide.
func (h *Handler) handleAPIMd(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(static.APIMd))
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// respondError writes a standard error response.
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, dto.NewErrorResponse(code, message))
}

// respondDomainError maps a domain error onto the standard error response.
func respondDomainError(w http.ResponseWriter, err error) {
	status, code, message := dto.MapDomainError(err)
	respondError(w, status, code, message)
}

// windowMinutes parses the ?windowMinutes query parameter, falling back to
// the configured default window.
func (h *Handler) windowMinutes(r *http.Request) int {
	minutes := int(h.syncCfg.DefaultWindow.Minutes())
	if raw := r.URL.Query().Get("windowMinutes"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			minutes = v
		}
	}
	return minutes
}
