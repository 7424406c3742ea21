package registry

import (
	"fmt"

	"github.com/sanitrack/sanitrack/internal/domain"
)

// Proposal describes one intended facility transition. ExpectedStatus is the
// status the proposer observed; the registry rejects the proposal if the
// facility has moved on since, so two concurrent proposals can never both
// apply against the same starting state.
type Proposal struct {
	ExpectedStatus domain.FacilityStatus
	NewStatus      domain.FacilityStatus
	NewScore       int
	Kind           domain.EventKind
	ActorID        string
	Amenities      *domain.Amenities // nil leaves amenities unchanged
	StampCleaned   bool              // update LastCleanedAt on success
}

type edge struct {
	from domain.FacilityStatus
	to   domain.FacilityStatus
}

// allowedEdges is the complete transition table. Cleaning is only entered by
// an explicit staff action and only exited by the scheduled completion.
var allowedEdges = map[edge][]domain.EventKind{
	{domain.StatusClean, domain.StatusModerate}:    {domain.EventKindDegraded},
	{domain.StatusModerate, domain.StatusDirty}:    {domain.EventKindDegraded},
	{domain.StatusModerate, domain.StatusClean}:    {domain.EventKindCleaned},
	{domain.StatusDirty, domain.StatusModerate}:    {domain.EventKindCleaned},
	{domain.StatusDirty, domain.StatusClean}:       {domain.EventKindCleaned},
	{domain.StatusClean, domain.StatusCleaning}:    {domain.EventKindCleaningStarted},
	{domain.StatusModerate, domain.StatusCleaning}: {domain.EventKindCleaningStarted},
	{domain.StatusDirty, domain.StatusCleaning}:    {domain.EventKindCleaningStarted},
	{domain.StatusCleaning, domain.StatusClean}:    {domain.EventKindCleaningCompleted},
}

// validate checks a proposal's static shape against the transition table.
func (p Proposal) validate() error {
	if !p.NewStatus.IsValid() || !p.ExpectedStatus.IsValid() {
		return domain.ErrInvalidStatus
	}
	if !p.Kind.IsValid() {
		return domain.ErrInvalidKind
	}
	if p.NewScore < 0 || p.NewScore > 100 {
		return fmt.Errorf("%w: %d", domain.ErrScoreOutOfRange, p.NewScore)
	}

	kinds, ok := allowedEdges[edge{p.ExpectedStatus, p.NewStatus}]
	if !ok {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, p.ExpectedStatus, p.NewStatus)
	}
	for _, k := range kinds {
		if k == p.Kind {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s is not a %s event", domain.ErrInvalidTransition, p.ExpectedStatus, p.NewStatus, p.Kind)
}
