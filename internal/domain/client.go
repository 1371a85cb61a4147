package domain

import "time"

// Client is the requester of a ticket. CompanyID links the client to its
// organization; ticket-level company scoping is always derived through it.
type Client struct {
	ID        int64
	Name      string
	Email     *string
	Domain    *string
	CompanyID *int64
	CreatedAt time.Time
}
