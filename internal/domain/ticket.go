package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen    TicketStatus = "open"
	TicketStatusPending TicketStatus = "pending"
	TicketStatusClosed  TicketStatus = "closed"
)

// Ticket is the aggregate for support requests. UserID is the filing client
// and never changes after creation; AgentID is an optional assignment that
// grants no extra rights over the flat agent role.
type Ticket struct {
	ID          string
	Title       string
	Description string
	Status      TicketStatus
	UserID      string
	AgentID     *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
