package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusNew        TicketStatus = "new"
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusOnHold     TicketStatus = "on_hold"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
	TicketStatusReopened   TicketStatus = "reopened"
)

// Valid reports whether the status is a known enum value.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusNew, TicketStatusOpen, TicketStatusInProgress,
		TicketStatusOnHold, TicketStatusResolved, TicketStatusClosed,
		TicketStatusReopened:
		return true
	}
	return false
}

// TicketPriority enumerates urgency levels. Both the P1-P4 scale and the
// word scale are accepted; they coexist in the historical data set.
type TicketPriority string

const (
	TicketPriorityP1     TicketPriority = "P1"
	TicketPriorityP2     TicketPriority = "P2"
	TicketPriorityP3     TicketPriority = "P3"
	TicketPriorityP4     TicketPriority = "P4"
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityNormal TicketPriority = "normal"
	TicketPriorityHigh   TicketPriority = "high"
	TicketPriorityUrgent TicketPriority = "urgent"
)

// Valid reports whether the priority is a known enum value.
func (p TicketPriority) Valid() bool {
	switch p {
	case TicketPriorityP1, TicketPriorityP2, TicketPriorityP3, TicketPriorityP4,
		TicketPriorityLow, TicketPriorityNormal, TicketPriorityHigh, TicketPriorityUrgent:
		return true
	}
	return false
}

// TicketChannel enumerates intake channels.
type TicketChannel string

const (
	ChannelEmail  TicketChannel = "email"
	ChannelWeb    TicketChannel = "web"
	ChannelChat   TicketChannel = "chat"
	ChannelPhone  TicketChannel = "phone"
	ChannelManual TicketChannel = "manual"
	ChannelAPI    TicketChannel = "api"
)

// Valid reports whether the channel is a known enum value.
func (c TicketChannel) Valid() bool {
	switch c {
	case ChannelEmail, ChannelWeb, ChannelChat, ChannelPhone, ChannelManual, ChannelAPI:
		return true
	}
	return false
}

// Ticket is the aggregate for support requests. ID is the internal surrogate
// key; TicketID is the stable human-facing code (e.g. TCK-001088), assigned
// once at insertion and never reused. The owning company is never stored
// here: it is always derived through the client reference.
type Ticket struct {
	ID           int64
	TicketID     string
	Status       TicketStatus
	Priority     TicketPriority
	Channel      TicketChannel
	Summary      string
	Subject      *string
	EmailBody    *string
	MessageID    *string
	ThreadID     *string
	ClientID     *int64
	AssigneeID   *int64
	DepartmentID *int64
	CategoryID   *int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
