package ledger_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanitrack/sanitrack/internal/domain"
	"github.com/sanitrack/sanitrack/internal/ledger"
)

func event(id string, occurredAt time.Time) domain.StatusUpdateEvent {
	return domain.StatusUpdateEvent{
		ID:             id,
		FacilityID:     "facility_001",
		FacilityName:   "Central Park Public Restroom",
		PreviousStatus: domain.StatusClean,
		NewStatus:      domain.StatusModerate,
		NewScore:       60,
		Kind:           domain.EventKindDegraded,
		ActorID:        domain.SystemActorID,
		OccurredAt:     occurredAt,
	}
}

func TestAppendEvictsOldestAtCapacity(t *testing.T) {
	l := ledger.New(3)
	now := time.Now()

	for i := 0; i < 5; i++ {
		l.Append(event(fmt.Sprintf("ev-%d", i), now))
	}

	assert.Equal(t, 3, l.Len())
	assert.False(t, l.Contains("ev-0"))
	assert.False(t, l.Contains("ev-1"))
	assert.True(t, l.Contains("ev-2"))
	assert.True(t, l.Contains("ev-4"))

	snapshot := l.Snapshot()
	require.Len(t, snapshot, 3)
	assert.Equal(t, "ev-2", snapshot[0].ID)
	assert.Equal(t, "ev-4", snapshot[2].ID)
}

func TestRecentFiltersByWindow(t *testing.T) {
	l := ledger.New(50)
	now := time.Now()

	l.Append(event("old", now.Add(-2*time.Hour)))
	l.Append(event("recent", now.Add(-10*time.Minute)))
	l.Append(event("fresh", now.Add(-10*time.Second)))

	entries := l.Recent(30*time.Minute, false)
	require.Len(t, entries, 2)
	assert.Equal(t, "recent", entries[0].Event.ID)
	assert.Equal(t, "fresh", entries[1].Event.ID)

	// Full buffer, wider window: the old entry reappears.
	entries = l.Recent(3*time.Hour, false)
	assert.Len(t, entries, 3)
}

func TestRecentNewestFirst(t *testing.T) {
	l := ledger.New(50)
	now := time.Now()

	l.Append(event("first", now.Add(-3*time.Minute)))
	l.Append(event("second", now.Add(-2*time.Minute)))
	l.Append(event("third", now.Add(-1*time.Minute)))

	entries := l.Recent(time.Hour, true)
	require.Len(t, entries, 3)
	assert.Equal(t, "third", entries[0].Event.ID)
	assert.Equal(t, "first", entries[2].Event.ID)
}

func TestElapsedLabels(t *testing.T) {
	l := ledger.New(50)
	now := time.Now()

	l.Append(event("now", now.Add(-20*time.Second)))
	l.Append(event("minutes", now.Add(-5*time.Minute)))
	l.Append(event("hours", now.Add(-3*time.Hour)))

	entries := l.Recent(24*time.Hour, false)
	require.Len(t, entries, 3)
	assert.Equal(t, "3 hours ago", entries[0].Elapsed)
	assert.Equal(t, "5 minutes ago", entries[1].Elapsed)
	assert.Equal(t, "just now", entries[2].Elapsed)
}

func TestContainsTracksEviction(t *testing.T) {
	l := ledger.New(2)
	now := time.Now()

	l.Append(event("a", now))
	assert.True(t, l.Contains("a"))

	l.Append(event("b", now))
	l.Append(event("c", now))
	assert.False(t, l.Contains("a"))
	assert.True(t, l.Contains("b"))
	assert.True(t, l.Contains("c"))
}
