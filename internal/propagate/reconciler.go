package propagate

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Reconciler periodically pulls the authority's recent event window and
// replays it through the Consumer. Together with idempotent ingestion this
// backfills any events the at-most-once push path dropped.
type Reconciler struct {
	pullURL  string
	interval time.Duration
	consumer *Consumer
	client   *http.Client
}

// NewReconciler creates a Reconciler polling pullURL every interval.
func NewReconciler(pullURL string, interval time.Duration, consumer *Consumer) *Reconciler {
	return &Reconciler{
		pullURL:  pullURL,
		interval: interval,
		consumer: consumer,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Run polls until ctx is cancelled. One failed poll is logged and retried on
// the next interval.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	slog.Info("sync reconciler started", "pull_url", r.pullURL, "interval", r.interval)

	for {
		select {
		case <-ctx.Done():
			slog.Info("sync reconciler stopped")
			return
		case <-ticker.C:
			if err := r.ReconcileOnce(ctx); err != nil {
				slog.Warn("sync pull failed", "error", err)
			}
		}
	}
}

// ReconcileOnce performs a single pull-and-replay cycle.
func (r *Reconciler) ReconcileOnce(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.pullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build pull request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach peer: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("peer returned status %d", resp.StatusCode)
	}

	var pull PullResponse
	if err := json.NewDecoder(resp.Body).Decode(&pull); err != nil {
		return fmt.Errorf("failed to decode pull response: %w", err)
	}

	if !pull.HasUpdates {
		return nil
	}

	applied := r.consumer.IngestBatch(pull.Updates)
	if applied > 0 {
		slog.Info("reconciled missed events", "pulled", len(pull.Updates), "applied", applied)
	}
	return nil
}
