package propagate

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// Propagator pushes committed events to the peer's sync webhook. Delivery is
// fire-and-forget: failures are logged and dropped, never retried, and never
// block or fail the transition that produced the event. The pull reconciler
// on the other side covers whatever this path loses.
type Propagator struct {
	webhookURL string
	client     *http.Client
	queue      chan eventEnvelope
}

type eventEnvelope struct {
	payload EventPayload
}

// NewPropagator creates a Propagator that POSTs to webhookURL. A queueSize
// of 0 falls back to a sensible default.
func NewPropagator(webhookURL string, timeout time.Duration, queueSize int) *Propagator {
	if queueSize <= 0 {
		queueSize = 256
	}
	return &Propagator{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: timeout},
		queue:      make(chan eventEnvelope, queueSize),
	}
}

// Enqueue hands an event to the delivery worker without blocking the caller.
// A full queue drops the event; the pull path will pick it up.
func (p *Propagator) Enqueue(payload EventPayload) {
	select {
	case p.queue <- eventEnvelope{payload: payload}:
	default:
		slog.Warn("propagation queue full, dropping event",
			"event_id", payload.ID,
			"facility_id", payload.FacilityID,
		)
	}
}

// Run delivers queued events until ctx is cancelled.
func (p *Propagator) Run(ctx context.Context) {
	slog.Info("event propagator started", "webhook_url", p.webhookURL)
	for {
		select {
		case <-ctx.Done():
			slog.Info("event propagator stopped")
			return
		case env := <-p.queue:
			p.deliver(env.payload)
		}
	}
}

// deliver performs one webhook POST. Any failure is logged and swallowed.
func (p *Propagator) deliver(payload EventPayload) {
	body, err := json.Marshal(payload)
	if err != nil {
		slog.Error("failed to encode sync event", "event_id", payload.ID, "error", err)
		return
	}

	req, err := http.NewRequest(http.MethodPost, p.webhookURL, bytes.NewReader(body))
	if err != nil {
		slog.Error("failed to build sync request", "event_id", payload.ID, "error", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		slog.Warn("sync push failed, peer will reconcile via pull",
			"event_id", payload.ID,
			"facility_id", payload.FacilityID,
			"error", err,
		)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		slog.Warn("sync push rejected by peer",
			"event_id", payload.ID,
			"facility_id", payload.FacilityID,
			"status_code", resp.StatusCode,
		)
		return
	}

	slog.Debug("sync event delivered",
		"event_id", payload.ID,
		"facility_id", payload.FacilityID,
		"kind", payload.Kind,
	)
}
