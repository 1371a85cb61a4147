package dto

import (
	"time"

	"github.com/appogelardexa/ticket-triage/internal/domain"
)

// CreateTicketRequest payload. Client, assignee, department and category
// may be referenced by id, email or name; the service resolves them.
type CreateTicketRequest struct {
	Summary   string  `json:"summary"`
	Subject   *string `json:"subject"`
	EmailBody *string `json:"email_body"`
	MessageID *string `json:"message_id"`
	ThreadID  *string `json:"thread_id"`

	Status   *domain.TicketStatus   `json:"status"`
	Priority *domain.TicketPriority `json:"priority"`
	Channel  *domain.TicketChannel  `json:"channel"`

	ClientID    *int64  `json:"client_id"`
	ClientEmail *string `json:"client_email"`
	ClientName  *string `json:"client_name"`

	AssigneeID    *int64  `json:"assignee_id"`
	AssigneeEmail *string `json:"assignee_email"`
	AssigneeName  *string `json:"assignee_name"`

	DepartmentID   *int64  `json:"department_id"`
	DepartmentName *string `json:"department_name"`

	CategoryID   *int64  `json:"category_id"`
	CategoryName *string `json:"category_name"`
}

// UpdateTicketRequest payload; absent fields stay unchanged.
type UpdateTicketRequest struct {
	Summary      *string                `json:"summary"`
	Status       *domain.TicketStatus   `json:"status"`
	Priority     *domain.TicketPriority `json:"priority"`
	Channel      *domain.TicketChannel  `json:"channel"`
	Subject      *string                `json:"subject"`
	EmailBody    *string                `json:"email_body"`
	MessageID    *string                `json:"message_id"`
	ThreadID     *string                `json:"thread_id"`
	ClientID     *int64                 `json:"client_id"`
	AssigneeID   *int64                 `json:"assignee_id"`
	DepartmentID *int64                 `json:"department_id"`
	CategoryID   *int64                 `json:"category_id"`
}

// TicketPage wraps a paginated listing.
type TicketPage struct {
	Data       []domain.FormattedTicket `json:"data"`
	Total      int64                    `json:"total"`
	NextOffset *int                     `json:"next_offset"`
}

// DetailedPage wraps a detailed filter result.
type DetailedPage struct {
	Data  []domain.DetailedTicket `json:"data"`
	Total int64                   `json:"total"`
}

// NextOffset computes the follow-up offset for a page, nil when exhausted.
func NextOffset(offset, returned int, total int64) *int {
	next := offset + returned
	if int64(next) >= total || returned == 0 {
		return nil
	}
	return &next
}

// StatusHistoryResponse wraps a status transition chain.
type StatusHistoryResponse struct {
	TicketID string                    `json:"ticket_id"`
	Data     []domain.StatusTransition `json:"data"`
}

// PriorityHistoryResponse wraps a priority transition chain.
type PriorityHistoryResponse struct {
	TicketID string                      `json:"ticket_id"`
	Data     []domain.PriorityTransition `json:"data"`
}

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse payload.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}
