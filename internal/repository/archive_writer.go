package repository

import (
	"context"
	"log/slog"
	"time"

	"github.com/sanitrack/sanitrack/internal/domain"
	"github.com/sanitrack/sanitrack/internal/ledger"
)

// ArchiveWriter archives events write-behind: committed events are queued
// and persisted by a dedicated worker, so a slow database never holds a
// facility lock or a request. The ledger remains the read path; a dropped
// archive write only narrows what a restart can replay.
type ArchiveWriter struct {
	repo  *EventArchiveRepository
	queue chan domain.StatusUpdateEvent
}

// NewArchiveWriter creates an ArchiveWriter over the given repository.
func NewArchiveWriter(repo *EventArchiveRepository) *ArchiveWriter {
	return &ArchiveWriter{
		repo:  repo,
		queue: make(chan domain.StatusUpdateEvent, 256),
	}
}

// Record queues an event for archival without blocking. Matches the
// registry's Sink signature.
func (w *ArchiveWriter) Record(event domain.StatusUpdateEvent) {
	select {
	case w.queue <- event:
	default:
		slog.Warn("archive queue full, dropping event", "event_id", event.ID)
	}
}

// Run persists queued events until ctx is cancelled, then drains briefly so
// a clean shutdown loses as little as possible.
func (w *ArchiveWriter) Run(ctx context.Context) {
	slog.Info("event archive writer started")
	for {
		select {
		case <-ctx.Done():
			w.drain()
			slog.Info("event archive writer stopped")
			return
		case event := <-w.queue:
			w.persist(ctx, event)
		}
	}
}

func (w *ArchiveWriter) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for {
		select {
		case event := <-w.queue:
			w.persist(ctx, event)
		default:
			return
		}
	}
}

func (w *ArchiveWriter) persist(ctx context.Context, event domain.StatusUpdateEvent) {
	if err := w.repo.Insert(ctx, event); err != nil {
		slog.Error("failed to archive event", "event_id", event.ID, "error", err)
	}
}

// Replay loads the newest archived events into a ledger, restoring the
// update feed across restarts. The ledger's own capacity bounds how much is
// kept; asking for exactly that many avoids useless churn.
func Replay(ctx context.Context, repo *EventArchiveRepository, led *ledger.Ledger, limit int) error {
	events, err := repo.Recent(ctx, limit)
	if err != nil {
		return err
	}
	for _, event := range events {
		led.Append(event)
	}
	if len(events) > 0 {
		slog.Info("replayed archived events into ledger", "count", len(events))
	}
	return nil
}
