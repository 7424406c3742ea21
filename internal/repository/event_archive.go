// Package repository persists status-change events to PostgreSQL. The
// archive is an optional durability layer behind the in-memory ledger: the
// ledger stays authoritative for reads, the archive survives restarts.
package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sanitrack/sanitrack/internal/domain"
)

// EventArchiveRepository handles database operations for status update events.
type EventArchiveRepository struct {
	pool *pgxpool.Pool
	psql sq.StatementBuilderType
}

// NewEventArchiveRepository creates a new EventArchiveRepository.
func NewEventArchiveRepository(pool *pgxpool.Pool) *EventArchiveRepository {
	return &EventArchiveRepository{
		pool: pool,
		psql: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Insert archives one event. Inserting an already-archived event ID is a
// no-op, so replayed or re-pushed events cannot duplicate rows.
func (r *EventArchiveRepository) Insert(ctx context.Context, event domain.StatusUpdateEvent) error {
	query, args, err := r.psql.
		Insert("status_update_events").
		Columns("id", "facility_id", "facility_name", "kind", "previous_status", "new_status", "new_score", "actor_id", "occurred_at").
		Values(event.ID, event.FacilityID, event.FacilityName, event.Kind, event.PreviousStatus, event.NewStatus, event.NewScore, event.ActorID, event.OccurredAt).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert status update event: %w", err)
	}

	return nil
}

// Recent returns the newest events up to limit, oldest first so they can be
// replayed into a ledger in original order.
func (r *EventArchiveRepository) Recent(ctx context.Context, limit int) ([]domain.StatusUpdateEvent, error) {
	query, args, err := r.psql.
		Select("id", "facility_id", "facility_name", "kind", "previous_status", "new_status", "new_score", "actor_id", "occurred_at").
		From("status_update_events").
		OrderBy("occurred_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query status update events: %w", err)
	}
	defer rows.Close()

	var events []domain.StatusUpdateEvent
	for rows.Next() {
		var event domain.StatusUpdateEvent
		err := rows.Scan(
			&event.ID,
			&event.FacilityID,
			&event.FacilityName,
			&event.Kind,
			&event.PreviousStatus,
			&event.NewStatus,
			&event.NewScore,
			&event.ActorID,
			&event.OccurredAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan status update event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate status update events: %w", err)
	}

	// Newest-first from the query; reverse for replay order.
	for i, j := 0, len(events)-1; i < j; i, j = i+1, j-1 {
		events[i], events[j] = events[j], events[i]
	}
	return events, nil
}

// CountByActor returns how many events of the given kind the actor produced.
func (r *EventArchiveRepository) CountByActor(ctx context.Context, actorID string, kind domain.EventKind) (int, error) {
	query, args, err := r.psql.
		Select("COUNT(*)").
		From("status_update_events").
		Where(sq.Eq{"actor_id": actorID, "kind": kind}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	var count int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count status update events: %w", err)
	}
	return count, nil
}
