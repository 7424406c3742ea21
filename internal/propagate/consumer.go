package propagate

import (
	"log/slog"

	"github.com/sanitrack/sanitrack/internal/domain"
	"github.com/sanitrack/sanitrack/internal/ledger"
	"github.com/sanitrack/sanitrack/internal/registry"
)

// Consumer ingests events arriving from the peer, via either the webhook or
// the pull reconciler. Ingestion is idempotent: an event ID already present
// in the local ledger is acknowledged and otherwise ignored, so redelivery
// and push/pull overlap are harmless.
type Consumer struct {
	reg *registry.Registry
	led *ledger.Ledger
}

// NewConsumer creates a Consumer applying events to the given registry and
// recording them in the given ledger.
func NewConsumer(reg *registry.Registry, led *ledger.Ledger) *Consumer {
	return &Consumer{reg: reg, led: led}
}

// Ingest validates and applies one event payload. It returns the resulting
// domain event and whether it was applied; applied is false for duplicates.
func (c *Consumer) Ingest(payload EventPayload) (*domain.StatusUpdateEvent, bool, error) {
	if err := payload.Validate(); err != nil {
		return nil, false, err
	}

	event := payload.ToEvent()

	if c.led.Contains(event.ID) {
		slog.Debug("duplicate sync event ignored", "event_id", event.ID)
		return &event, false, nil
	}

	c.led.Append(event)
	c.reg.ApplyRemote(event)

	slog.Info("sync event applied",
		"event_id", event.ID,
		"facility_id", event.FacilityID,
		"new_status", event.NewStatus,
		"new_score", event.NewScore,
		"kind", event.Kind,
	)
	return &event, true, nil
}

// IngestBatch ingests a slice of payloads, returning the number applied.
// Invalid payloads are skipped with a warning so one bad entry cannot stall
// reconciliation of the rest of the window.
func (c *Consumer) IngestBatch(payloads []EventPayload) int {
	applied := 0
	for _, p := range payloads {
		_, ok, err := c.Ingest(p)
		if err != nil {
			slog.Warn("skipping invalid sync event", "event_id", p.ID, "error", err)
			continue
		}
		if ok {
			applied++
		}
	}
	return applied
}
