package domain

import "time"

// StatusTransition is an immutable audit entry for a single status change.
// FromStatus is nil only for the entry written at ticket insertion. Entries
// for a ticket are totally ordered by ChangedAt and chain without gaps:
// each FromStatus equals the previous entry's ToStatus.
type StatusTransition struct {
	ID         int64         `json:"id"`
	TicketID   string        `json:"ticket_id"`
	FromStatus *TicketStatus `json:"from_status"`
	ToStatus   TicketStatus  `json:"to_status"`
	ChangedAt  time.Time     `json:"changed_at"`
}

// PriorityTransition is the priority counterpart of StatusTransition.
type PriorityTransition struct {
	ID           int64           `json:"id"`
	TicketID     string          `json:"ticket_id"`
	FromPriority *TicketPriority `json:"from_priority"`
	ToPriority   TicketPriority  `json:"to_priority"`
	ChangedAt    time.Time       `json:"changed_at"`
}
