package dto

import (
	"time"

	"github.com/spec-kit/customer-care/internal/domain"
)

// CreateTicketRequest payload. A status field supplied here is accepted by
// the parser and deliberately ignored; new tickets always open as open.
type CreateTicketRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status,omitempty"`
}

// UpdateTicketRequest payload; absent fields stay untouched.
type UpdateTicketRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// ChangeStatusRequest payload for the explicit status-change action.
type ChangeStatusRequest struct {
	Status string `json:"status"`
}

// TicketResource is the wire shape of a ticket.
type TicketResource struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Status      domain.TicketStatus `json:"status"`
	UserID      string              `json:"user_id"`
	AgentID     *string             `json:"agent_id,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// PaginatedTickets is one listing page in the data/links/meta envelope.
type PaginatedTickets struct {
	Data  []TicketResource `json:"data"`
	Links PageLinks        `json:"links"`
	Meta  PageMeta         `json:"meta"`
}

// NewTicketResource maps the domain model to its wire shape.
func NewTicketResource(ticket *domain.Ticket) TicketResource {
	return TicketResource{
		ID:          ticket.ID,
		Title:       ticket.Title,
		Description: ticket.Description,
		Status:      ticket.Status,
		UserID:      ticket.UserID,
		AgentID:     ticket.AgentID,
		CreatedAt:   ticket.CreatedAt,
		UpdatedAt:   ticket.UpdatedAt,
	}
}
