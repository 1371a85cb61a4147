package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/appogelardexa/ticket-triage/internal/domain"
	"github.com/appogelardexa/ticket-triage/pkg/util"
)

// FormattedFilter narrows formatted-view listings.
type FormattedFilter struct {
	ClientEmail     *string
	AssigneeEmail   *string
	AnyEmail        *string
	ClientName      *string
	ClientNameExact bool
	NewestFirst     bool
	Limit           int
	Offset          int
}

// DetailedFilter narrows detailed-view listings by raw ids. CompanyID is
// matched against the company derived through the ticket's client.
type DetailedFilter struct {
	ClientID     *int64
	AssigneeID   *int64
	DepartmentID *int64
	CategoryID   *int64
	CompanyID    *int64
	NewestFirst  bool
	Limit        int
}

// Empty reports whether no filter parameter is set.
func (f DetailedFilter) Empty() bool {
	return f.ClientID == nil && f.AssigneeID == nil && f.DepartmentID == nil &&
		f.CategoryID == nil && f.CompanyID == nil
}

// TicketViewRepository computes the formatted and detailed projections at
// query time. The views are pure derivations over the base tables: they are
// never written to and never stored.
type TicketViewRepository interface {
	GetFormatted(ctx context.Context, ticketID string) (*domain.FormattedTicket, error)
	ListFormatted(ctx context.Context, filter FormattedFilter) ([]domain.FormattedTicket, int64, error)
	ListDetailed(ctx context.Context, filter DetailedFilter) ([]domain.DetailedTicket, int64, error)
}

type ticketViewRepository struct {
	pool *pgxpool.Pool
}

// NewTicketViewRepository builds the projector.
func NewTicketViewRepository(pool *pgxpool.Pool) TicketViewRepository {
	return &ticketViewRepository{pool: pool}
}

// Every relation is a left-outer join: tickets with missing references
// still project, with the dependent display fields null. company_id and
// company_name always come from the joined client row, never from the
// ticket itself.
const formattedSelect = `
        SELECT t.id, t.ticket_id, t.status, t.priority, t.channel, t.summary,
               t.subject, t.email_body AS body, t.message_id, t.thread_id,
               c.name AS client_name, c.email AS client_email,
               s.name AS assignee_name, s.email AS assignee_email,
               d.name AS department_name, cat.name AS category_name,
               c.company_id, co.name AS company_name,
               t.created_at, t.updated_at`

const detailedSelect = formattedSelect + `,
               t.client_id, t.assignee_id, t.department_id, t.category_id`

const viewJoins = `
        FROM tickets t
        LEFT JOIN clients c ON c.id = t.client_id
        LEFT JOIN companies co ON co.id = c.company_id
        LEFT JOIN internal_staff s ON s.id = t.assignee_id
        LEFT JOIN departments d ON d.id = t.department_id
        LEFT JOIN categories cat ON cat.id = t.category_id`

func (r *ticketViewRepository) GetFormatted(ctx context.Context, ticketID string) (*domain.FormattedTicket, error) {
	query := formattedSelect + viewJoins + ` WHERE t.ticket_id=$1`
	view, err := scanFormatted(r.pool.QueryRow(ctx, query, ticketID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, util.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, err
	}
	return view, nil
}

func (r *ticketViewRepository) ListFormatted(ctx context.Context, filter FormattedFilter) ([]domain.FormattedTicket, int64, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.ClientEmail != nil {
		args = append(args, *filter.ClientEmail)
		clauses = append(clauses, fmt.Sprintf("c.email=$%d", len(args)))
	}
	if filter.AssigneeEmail != nil {
		args = append(args, *filter.AssigneeEmail)
		clauses = append(clauses, fmt.Sprintf("s.email=$%d", len(args)))
	}
	if filter.AnyEmail != nil {
		args = append(args, *filter.AnyEmail)
		clauses = append(clauses, fmt.Sprintf("(c.email=$%d OR s.email=$%d)", len(args), len(args)))
	}
	if filter.ClientName != nil {
		if filter.ClientNameExact {
			args = append(args, *filter.ClientName)
			clauses = append(clauses, fmt.Sprintf("c.name=$%d", len(args)))
		} else {
			args = append(args, "%"+*filter.ClientName+"%")
			clauses = append(clauses, fmt.Sprintf("c.name ILIKE $%d", len(args)))
		}
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	dir := orderDir(filter.NewestFirst)
	query := fmt.Sprintf(`%s, count(*) OVER() AS total %s WHERE %s ORDER BY t.created_at %s, t.id %s LIMIT %d OFFSET %d`,
		formattedSelect, viewJoins, strings.Join(clauses, " AND "), dir, dir, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var total int64
	result := []domain.FormattedTicket{}
	for rows.Next() {
		var view domain.FormattedTicket
		if err := rows.Scan(formattedDest(&view, &total)...); err != nil {
			return nil, 0, err
		}
		result = append(result, view)
	}
	return result, total, rows.Err()
}

func (r *ticketViewRepository) ListDetailed(ctx context.Context, filter DetailedFilter) ([]domain.DetailedTicket, int64, error) {
	clauses := []string{"1=1"}
	args := []any{}

	addClause := func(column string, value *int64) {
		if value == nil {
			return
		}
		args = append(args, *value)
		clauses = append(clauses, fmt.Sprintf("%s=$%d", column, len(args)))
	}
	addClause("t.client_id", filter.ClientID)
	addClause("t.assignee_id", filter.AssigneeID)
	addClause("t.department_id", filter.DepartmentID)
	addClause("t.category_id", filter.CategoryID)
	addClause("c.company_id", filter.CompanyID)

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	dir := orderDir(filter.NewestFirst)
	query := fmt.Sprintf(`%s, count(*) OVER() AS total %s WHERE %s ORDER BY t.created_at %s, t.id %s LIMIT %d`,
		detailedSelect, viewJoins, strings.Join(clauses, " AND "), dir, dir, limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var total int64
	result := []domain.DetailedTicket{}
	for rows.Next() {
		var view domain.DetailedTicket
		dest := formattedDest(&view.FormattedTicket, nil)
		dest = append(dest, &view.ClientID, &view.AssigneeID, &view.DepartmentID, &view.CategoryID, &total)
		if err := rows.Scan(dest...); err != nil {
			return nil, 0, err
		}
		result = append(result, view)
	}
	return result, total, rows.Err()
}

func scanFormatted(row pgx.Row) (*domain.FormattedTicket, error) {
	var view domain.FormattedTicket
	if err := row.Scan(formattedDest(&view, nil)...); err != nil {
		return nil, err
	}
	return &view, nil
}

// formattedDest lists scan destinations in column order. total is appended
// only when the query selects the window count last.
func formattedDest(view *domain.FormattedTicket, total *int64) []any {
	dest := []any{
		&view.ID,
		&view.TicketID,
		&view.Status,
		&view.Priority,
		&view.Channel,
		&view.Summary,
		&view.Subject,
		&view.Body,
		&view.MessageID,
		&view.ThreadID,
		&view.ClientName,
		&view.ClientEmail,
		&view.AssigneeName,
		&view.AssigneeEmail,
		&view.DepartmentName,
		&view.CategoryName,
		&view.CompanyID,
		&view.CompanyName,
		&view.CreatedAt,
		&view.UpdatedAt,
	}
	if total != nil {
		dest = append(dest, total)
	}
	return dest
}
