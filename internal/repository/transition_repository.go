package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/appogelardexa/ticket-triage/internal/domain"
)

// TransitionRepository reads the two append-only audit logs. Writes happen
// only inside TicketRepository transactions; this side is read-only.
type TransitionRepository interface {
	ListStatus(ctx context.Context, ticketID string, newestFirst bool) ([]domain.StatusTransition, error)
	ListPriority(ctx context.Context, ticketID string, newestFirst bool) ([]domain.PriorityTransition, error)
}

type transitionRepository struct {
	pool *pgxpool.Pool
}

// NewTransitionRepository builds the repository.
func NewTransitionRepository(pool *pgxpool.Pool) TransitionRepository {
	return &transitionRepository{pool: pool}
}

func (r *transitionRepository) ListStatus(ctx context.Context, ticketID string, newestFirst bool) ([]domain.StatusTransition, error) {
	query := `
        SELECT h.id, t.ticket_id, h.from_status, h.to_status, h.changed_at
        FROM ticket_status_history h
        JOIN tickets t ON t.id = h.ticket_ref
        WHERE t.ticket_id=$1 ORDER BY h.changed_at ` + orderDir(newestFirst) + `, h.id ` + orderDir(newestFirst)
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.StatusTransition{}
	for rows.Next() {
		var tr domain.StatusTransition
		if err := rows.Scan(&tr.ID, &tr.TicketID, &tr.FromStatus, &tr.ToStatus, &tr.ChangedAt); err != nil {
			return nil, err
		}
		result = append(result, tr)
	}
	return result, rows.Err()
}

func (r *transitionRepository) ListPriority(ctx context.Context, ticketID string, newestFirst bool) ([]domain.PriorityTransition, error) {
	query := `
        SELECT h.id, t.ticket_id, h.from_priority, h.to_priority, h.changed_at
        FROM ticket_priority_history h
        JOIN tickets t ON t.id = h.ticket_ref
        WHERE t.ticket_id=$1 ORDER BY h.changed_at ` + orderDir(newestFirst) + `, h.id ` + orderDir(newestFirst)
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.PriorityTransition{}
	for rows.Next() {
		var tr domain.PriorityTransition
		if err := rows.Scan(&tr.ID, &tr.TicketID, &tr.FromPriority, &tr.ToPriority, &tr.ChangedAt); err != nil {
			return nil, err
		}
		result = append(result, tr)
	}
	return result, rows.Err()
}

func orderDir(newestFirst bool) string {
	if newestFirst {
		return "DESC"
	}
	return "ASC"
}
