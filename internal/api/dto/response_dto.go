package dto

import (
	"time"

	"github.com/spec-kit/customer-care/internal/domain"
)

// CreateResponseRequest payload.
type CreateResponseRequest struct {
	Content string `json:"content"`
}

// UpdateResponseRequest payload; an absent content field is a no-op.
type UpdateResponseRequest struct {
	Content *string `json:"content"`
}

// ResponseResource is the wire shape of a ticket thread response.
type ResponseResource struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	TicketID  string    `json:"ticket_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewResponseResource maps the domain model to its wire shape.
func NewResponseResource(response *domain.Response) ResponseResource {
	return ResponseResource{
		ID:        response.ID,
		Content:   response.Content,
		TicketID:  response.TicketID,
		UserID:    response.UserID,
		CreatedAt: response.CreatedAt,
		UpdatedAt: response.UpdatedAt,
	}
}

// NewResponseResources maps a thread slice.
func NewResponseResources(responses []domain.Response) []ResponseResource {
	out := make([]ResponseResource, 0, len(responses))
	for i := range responses {
		out = append(out, NewResponseResource(&responses[i]))
	}
	return out
}
