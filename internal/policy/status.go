package policy

import "github.com/spec-kit/customer-care/internal/domain"

// ticketStatuses is the closed status enum. Tickets always start open; the
// caller-supplied status is ignored at creation time.
var ticketStatuses = []domain.TicketStatus{
	domain.TicketStatusOpen,
	domain.TicketStatusPending,
	domain.TicketStatusClosed,
}

// Statuses returns the full status enum in lifecycle order.
func Statuses() []domain.TicketStatus {
	out := make([]domain.TicketStatus, len(ticketStatuses))
	copy(out, ticketStatuses)
	return out
}

// ParseStatus validates a raw status value against the enum.
func ParseStatus(raw string) (domain.TicketStatus, bool) {
	for _, status := range ticketStatuses {
		if string(status) == raw {
			return status, true
		}
	}
	return "", false
}

// ValidStatus reports whether the value is a member of the enum.
func ValidStatus(status domain.TicketStatus) bool {
	_, ok := ParseStatus(string(status))
	return ok
}

// CanTransition reports whether a status change from one state to another is
// a legal move. Agents and admins may move a ticket between any two states;
// who is allowed to trigger the move is the policy engine's concern, not the
// machine's. Transitions to the current state are no-ops and allowed.
func CanTransition(from, to domain.TicketStatus) bool {
	return ValidStatus(from) && ValidStatus(to)
}

// AllowsResponses is the one state-machine fact consumed by the policy
// engine: new responses may only be added while the ticket is open or
// pending, never once it is closed.
func AllowsResponses(status domain.TicketStatus) bool {
	return status == domain.TicketStatusOpen || status == domain.TicketStatusPending
}
