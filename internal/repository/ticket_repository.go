package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/appogelardexa/ticket-triage/internal/domain"
	"github.com/appogelardexa/ticket-triage/pkg/util"
)

// TicketPatch carries a partial update; nil fields are left untouched.
type TicketPatch struct {
	Summary      *string
	Status       *domain.TicketStatus
	Priority     *domain.TicketPriority
	Channel      *domain.TicketChannel
	Subject      *string
	EmailBody    *string
	MessageID    *string
	ThreadID     *string
	ClientID     *int64
	AssigneeID   *int64
	DepartmentID *int64
	CategoryID   *int64
}

// Empty reports whether the patch changes nothing.
func (p TicketPatch) Empty() bool {
	return p.Summary == nil && p.Status == nil && p.Priority == nil &&
		p.Channel == nil && p.Subject == nil && p.EmailBody == nil &&
		p.MessageID == nil && p.ThreadID == nil && p.ClientID == nil &&
		p.AssigneeID == nil && p.DepartmentID == nil && p.CategoryID == nil
}

// TicketUpdate is the outcome of an update: the row as written plus the
// status and priority the locked row held before the patch. The old values
// come from the same transaction as the write, so callers can derive
// change notifications without a racy pre-read.
type TicketUpdate struct {
	Ticket      *domain.Ticket
	OldStatus   domain.TicketStatus
	OldPriority domain.TicketPriority
}

// TicketRepository encapsulates ticket persistence. Create and Update run
// the field mutation and its status/priority audit appends as one atomic
// unit of work: either all rows are visible or none.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	Update(ctx context.Context, ticketID string, patch TicketPatch) (*TicketUpdate, error)
	GetByTicketID(ctx context.Context, ticketID string) (*domain.Ticket, error)
	Delete(ctx context.Context, ticketID string) error
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates the repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `id, ticket_id, status, priority, channel, summary, subject, email_body,
               message_id, thread_id, client_id, assignee_id, department_id, category_id,
               created_at, updated_at`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const insert = `
        INSERT INTO tickets (ticket_id, status, priority, channel, summary, subject, email_body,
                             message_id, thread_id, client_id, assignee_id, department_id, category_id)
        VALUES ('TCK-' || lpad(nextval('ticket_code_seq')::text, 6, '0'),
                $1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
        RETURNING id, ticket_id, created_at, updated_at`
	if err := tx.QueryRow(ctx, insert,
		ticket.Status,
		ticket.Priority,
		ticket.Channel,
		ticket.Summary,
		ticket.Subject,
		ticket.EmailBody,
		ticket.MessageID,
		ticket.ThreadID,
		ticket.ClientID,
		ticket.AssigneeID,
		ticket.DepartmentID,
		ticket.CategoryID,
	).Scan(&ticket.ID, &ticket.TicketID, &ticket.CreatedAt, &ticket.UpdatedAt); err != nil {
		return err
	}

	const initialStatus = `
        INSERT INTO ticket_status_history (ticket_ref, from_status, to_status, changed_at)
        VALUES ($1, NULL, $2, $3)`
	if _, err := tx.Exec(ctx, initialStatus, ticket.ID, ticket.Status, ticket.CreatedAt); err != nil {
		return util.NewIntegrityError("status audit append failed", err)
	}

	const initialPriority = `
        INSERT INTO ticket_priority_history (ticket_ref, from_priority, to_priority, changed_at)
        VALUES ($1, NULL, $2, $3)`
	if _, err := tx.Exec(ctx, initialPriority, ticket.ID, ticket.Priority, ticket.CreatedAt); err != nil {
		return util.NewIntegrityError("priority audit append failed", err)
	}

	return tx.Commit(ctx)
}

func (r *ticketRepository) Update(ctx context.Context, ticketID string, patch TicketPatch) (*TicketUpdate, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	// Row lock serializes concurrent writers on the same ticket so the
	// old values read here are never stale when the appends are decided.
	var (
		id          int64
		oldStatus   domain.TicketStatus
		oldPriority domain.TicketPriority
	)
	const lock = `SELECT id, status, priority FROM tickets WHERE ticket_id=$1 FOR UPDATE`
	if err := tx.QueryRow(ctx, lock, ticketID).Scan(&id, &oldStatus, &oldPriority); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, err
	}

	sets := []string{}
	args := []any{}
	addSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s=$%d", column, len(args)))
	}
	if patch.Summary != nil {
		addSet("summary", *patch.Summary)
	}
	if patch.Status != nil {
		addSet("status", *patch.Status)
	}
	if patch.Priority != nil {
		addSet("priority", *patch.Priority)
	}
	if patch.Channel != nil {
		addSet("channel", *patch.Channel)
	}
	if patch.Subject != nil {
		addSet("subject", *patch.Subject)
	}
	if patch.EmailBody != nil {
		addSet("email_body", *patch.EmailBody)
	}
	if patch.MessageID != nil {
		addSet("message_id", *patch.MessageID)
	}
	if patch.ThreadID != nil {
		addSet("thread_id", *patch.ThreadID)
	}
	if patch.ClientID != nil {
		addSet("client_id", *patch.ClientID)
	}
	if patch.AssigneeID != nil {
		addSet("assignee_id", *patch.AssigneeID)
	}
	if patch.DepartmentID != nil {
		addSet("department_id", *patch.DepartmentID)
	}
	if patch.CategoryID != nil {
		addSet("category_id", *patch.CategoryID)
	}
	sets = append(sets, "updated_at=NOW()")

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE tickets SET %s WHERE id=$%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), ticketColumns)

	ticket, err := scanTicket(tx.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, err
	}

	// Append a transition per field that actually changed. No-op writes
	// append nothing.
	if patch.Status != nil && *patch.Status != oldStatus {
		const appendRow = `
            INSERT INTO ticket_status_history (ticket_ref, from_status, to_status, changed_at)
            VALUES ($1, $2, $3, $4)`
		if _, err := tx.Exec(ctx, appendRow, id, oldStatus, *patch.Status, ticket.UpdatedAt); err != nil {
			return nil, util.NewIntegrityError("status audit append failed", err)
		}
	}
	if patch.Priority != nil && *patch.Priority != oldPriority {
		const appendRow = `
            INSERT INTO ticket_priority_history (ticket_ref, from_priority, to_priority, changed_at)
            VALUES ($1, $2, $3, $4)`
		if _, err := tx.Exec(ctx, appendRow, id, oldPriority, *patch.Priority, ticket.UpdatedAt); err != nil {
			return nil, util.NewIntegrityError("priority audit append failed", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &TicketUpdate{Ticket: ticket, OldStatus: oldStatus, OldPriority: oldPriority}, nil
}

func (r *ticketRepository) GetByTicketID(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE ticket_id=$1`, ticketColumns)
	ticket, err := scanTicket(r.pool.QueryRow(ctx, query, ticketID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, err
	}
	return ticket, nil
}

func (r *ticketRepository) Delete(ctx context.Context, ticketID string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM tickets WHERE ticket_id=$1`, ticketID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return util.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
	}
	return nil
}

func scanTicket(row pgx.Row) (*domain.Ticket, error) {
	var ticket domain.Ticket
	if err := row.Scan(
		&ticket.ID,
		&ticket.TicketID,
		&ticket.Status,
		&ticket.Priority,
		&ticket.Channel,
		&ticket.Summary,
		&ticket.Subject,
		&ticket.EmailBody,
		&ticket.MessageID,
		&ticket.ThreadID,
		&ticket.ClientID,
		&ticket.AssigneeID,
		&ticket.DepartmentID,
		&ticket.CategoryID,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}
