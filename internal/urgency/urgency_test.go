package urgency_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sanitrack/sanitrack/internal/domain"
	"github.com/sanitrack/sanitrack/internal/urgency"
)

func facility(status domain.FacilityStatus, score int, sinceClean time.Duration, now time.Time) *domain.Facility {
	return &domain.Facility{
		ID:            "facility_test",
		Status:        status,
		HygieneScore:  score,
		LastCleanedAt: now.Add(-sinceClean),
	}
}

func TestScore(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		status     domain.FacilityStatus
		score      int
		sinceClean time.Duration
		want       int
	}{
		{"clean and fresh", domain.StatusClean, 90, 1 * time.Hour, 0},
		{"clean but stale", domain.StatusClean, 90, 9 * time.Hour, 20},
		{"clean mid-age", domain.StatusClean, 90, 5 * time.Hour, 10},
		{"moderate low score", domain.StatusModerate, 45, 1 * time.Hour, 40},
		{"moderate mid score", domain.StatusModerate, 60, 5 * time.Hour, 40},
		{"dirty low score stale", domain.StatusDirty, 20, 10 * time.Hour, 100},
		{"dirty mid score", domain.StatusDirty, 60, 1 * time.Hour, 70},
		{"cleaning contributes nothing", domain.StatusCleaning, 30, 10 * time.Hour, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := facility(tt.status, tt.score, tt.sinceClean, now)
			assert.Equal(t, tt.want, urgency.Score(f, now))
		})
	}
}

func TestScoreCappedAt100(t *testing.T) {
	now := time.Now()
	f := facility(domain.StatusDirty, 10, 24*time.Hour, now)
	assert.Equal(t, 100, urgency.Score(f, now))
}

// A lower hygiene score never lowers urgency, and more time since cleaning
// never lowers it either.
func TestScoreMonotonic(t *testing.T) {
	now := time.Now()

	prev := -1
	for score := 100; score >= 0; score-- {
		f := facility(domain.StatusDirty, score, 2*time.Hour, now)
		got := urgency.Score(f, now)
		assert.GreaterOrEqual(t, got, prev, "score %d", score)
		prev = got
	}

	prev = -1
	for hours := 0; hours <= 24; hours++ {
		f := facility(domain.StatusModerate, 60, time.Duration(hours)*time.Hour, now)
		got := urgency.Score(f, now)
		assert.GreaterOrEqual(t, got, prev, "hours %d", hours)
		prev = got
	}
}

func TestLevel(t *testing.T) {
	assert.Equal(t, domain.PriorityHigh, urgency.Level(70))
	assert.Equal(t, domain.PriorityHigh, urgency.Level(100))
	assert.Equal(t, domain.PriorityMedium, urgency.Level(40))
	assert.Equal(t, domain.PriorityMedium, urgency.Level(69))
	assert.Equal(t, domain.PriorityLow, urgency.Level(39))
	assert.Equal(t, domain.PriorityLow, urgency.Level(0))
}
