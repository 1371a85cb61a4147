package domain

import "time"

// FormattedTicket is the stable public projection of a ticket joined with
// its related entities. Body surfaces the stored email_body field. All
// relation-derived fields are nullable: a missing reference leaves them nil.
// CompanyID/CompanyName are derived from the resolved client, never stored
// on the ticket row. The shape is serialized into intake job results, so it
// carries JSON tags.
type FormattedTicket struct {
	ID             int64          `json:"id"`
	TicketID       string         `json:"ticket_id"`
	Status         TicketStatus   `json:"status"`
	Priority       TicketPriority `json:"priority"`
	Channel        TicketChannel  `json:"channel"`
	Summary        string         `json:"summary"`
	Subject        *string        `json:"subject"`
	Body           *string        `json:"body"`
	MessageID      *string        `json:"message_id"`
	ThreadID       *string        `json:"thread_id"`
	ClientName     *string        `json:"client_name"`
	ClientEmail    *string        `json:"client_email"`
	AssigneeName   *string        `json:"assignee_name"`
	AssigneeEmail  *string        `json:"assignee_email"`
	DepartmentName *string        `json:"department_name"`
	CategoryName   *string        `json:"category_name"`
	CompanyID      *int64         `json:"company_id"`
	CompanyName    *string        `json:"company_name"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// DetailedTicket extends the formatted shape with the raw foreign-key ids
// for consumers that need to re-filter or re-link.
type DetailedTicket struct {
	FormattedTicket
	ClientID     *int64 `json:"client_id"`
	AssigneeID   *int64 `json:"assignee_id"`
	DepartmentID *int64 `json:"department_id"`
	CategoryID   *int64 `json:"category_id"`
}
