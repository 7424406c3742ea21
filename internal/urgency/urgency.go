// Package urgency computes the 0-100 urgency score that drives cleaning
// priority. It is the single implementation consumed by every component that
// needs a priority; the dashboards this system replaces each carried their
// own drifting copy.
package urgency

import (
	"time"

	"github.com/sanitrack/sanitrack/internal/domain"
)

const (
	// HighThreshold and MediumThreshold map scores to priority levels.
	HighThreshold   = 70
	MediumThreshold = 40
)

// statusPoints is the additive contribution of the current status.
// A facility under active cleaning contributes nothing: it is already being
// handled and must not be dispatched again.
var statusPoints = map[domain.FacilityStatus]int{
	domain.StatusDirty:    50,
	domain.StatusModerate: 10,
	domain.StatusClean:    0,
	domain.StatusCleaning: 0,
}

// Score computes the urgency of a facility at the given instant.
// It is pure and safe for concurrent use, and monotonic: a lower hygiene
// score or a longer time since cleaning never lowers the result.
func Score(f *domain.Facility, now time.Time) int {
	s := statusPoints[f.Status]

	switch {
	case f.HygieneScore < 50:
		s += 30
	case f.HygieneScore < 70:
		s += 20
	}

	hoursSinceClean := now.Sub(f.LastCleanedAt).Hours()
	switch {
	case hoursSinceClean > 8:
		s += 20
	case hoursSinceClean > 4:
		s += 10
	}

	if s > 100 {
		s = 100
	}
	return s
}

// Level maps an urgency score to a priority level.
func Level(score int) domain.Priority {
	switch {
	case score >= HighThreshold:
		return domain.PriorityHigh
	case score >= MediumThreshold:
		return domain.PriorityMedium
	default:
		return domain.PriorityLow
	}
}
