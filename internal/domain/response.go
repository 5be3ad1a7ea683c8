package domain

import "time"

// Response is one reply on a ticket thread. TicketID and UserID are set at
// creation and immutable afterwards.
type Response struct {
	ID        string
	Content   string
	TicketID  string
	UserID    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
