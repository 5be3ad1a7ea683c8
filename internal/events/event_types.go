package events

import (
	"time"

	"github.com/spec-kit/customer-care/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventTicketDeleted       EventType = "ticket_deleted"
	EventResponseAdded       EventType = "response_added"
	EventResponseDeleted     EventType = "response_deleted"
)

// Event represents a domain event emitted by services. ActorID is the
// authenticated user who triggered the change.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Title  string              `json:"title"`
	Status domain.TicketStatus `json:"status"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// ResponseAddedPayload payload.
type ResponseAddedPayload struct {
	ResponseID     string `json:"response_id"`
	ContentPreview string `json:"content_preview"`
}

// ResponseDeletedPayload payload.
type ResponseDeletedPayload struct {
	ResponseID string `json:"response_id"`
}
