// Package ledger provides the bounded, append-only history of status-change
// events kept by each service instance. Capacity and query window are
// independent: a full buffer may hold entries older than a requested window,
// which are filtered out rather than merely truncated by count.
package ledger

import (
	"fmt"
	"sync"
	"time"

	"github.com/sanitrack/sanitrack/internal/domain"
)

// Entry is a ledger event annotated with a derived "time elapsed" label.
type Entry struct {
	Event   domain.StatusUpdateEvent
	Elapsed string
}

// Ledger is a fixed-capacity ring buffer of StatusUpdateEvents.
// Appending beyond capacity evicts the oldest entry. Safe for concurrent use.
type Ledger struct {
	mu       sync.RWMutex
	capacity int
	events   []domain.StatusUpdateEvent // insertion order, oldest first
	seen     map[string]struct{}        // IDs currently in the buffer
	now      func() time.Time           // injectable for deterministic tests
}

// New creates a Ledger with the given capacity. Capacity must be positive.
func New(capacity int) *Ledger {
	if capacity <= 0 {
		capacity = 1
	}
	return &Ledger{
		capacity: capacity,
		events:   make([]domain.StatusUpdateEvent, 0, capacity),
		seen:     make(map[string]struct{}),
		now:      time.Now,
	}
}

// Append records an event, evicting the oldest entry when full.
func (l *Ledger) Append(event domain.StatusUpdateEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.events) == l.capacity {
		delete(l.seen, l.events[0].ID)
		copy(l.events, l.events[1:])
		l.events = l.events[:len(l.events)-1]
	}
	l.events = append(l.events, event)
	l.seen[event.ID] = struct{}{}
}

// Contains reports whether an event with the given ID is currently buffered.
// Used by the sync consumer to ingest idempotently.
func (l *Ledger) Contains(eventID string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.seen[eventID]
	return ok
}

// Len returns the number of buffered events.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.events)
}

// Recent returns the buffered events whose OccurredAt falls within the given
// window, oldest to newest, each annotated with an elapsed-time label.
// With newestFirst the order is reversed for feed-style consumers.
func (l *Ledger) Recent(window time.Duration, newestFirst bool) []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	now := l.now()
	cutoff := now.Add(-window)

	entries := make([]Entry, 0, len(l.events))
	for _, ev := range l.events {
		if ev.OccurredAt.Before(cutoff) {
			continue
		}
		entries = append(entries, Entry{
			Event:   ev,
			Elapsed: elapsedLabel(now.Sub(ev.OccurredAt)),
		})
	}

	if newestFirst {
		for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
			entries[i], entries[j] = entries[j], entries[i]
		}
	}
	return entries
}

// Snapshot returns a copy of every buffered event in insertion order.
func (l *Ledger) Snapshot() []domain.StatusUpdateEvent {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]domain.StatusUpdateEvent, len(l.events))
	copy(out, l.events)
	return out
}

// elapsedLabel renders a human-readable age for an update feed entry.
func elapsedLabel(age time.Duration) string {
	minutes := int(age.Minutes())
	switch {
	case minutes < 1:
		return "just now"
	case minutes < 60:
		return fmt.Sprintf("%d minutes ago", minutes)
	default:
		return fmt.Sprintf("%d hours ago", minutes/60)
	}
}
