package service_test

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/customer-care/internal/domain"
	"github.com/spec-kit/customer-care/internal/events"
	"github.com/spec-kit/customer-care/internal/repository"
)

// memTicketRepo is an in-memory TicketRepository that mirrors the SQL
// implementation's filter and ordering semantics closely enough for service
// tests: newest first, substring search over title and description.
type memTicketRepo struct {
	mu      sync.Mutex
	seq     int
	tickets []*domain.Ticket
}

func newMemTicketRepo() *memTicketRepo {
	return &memTicketRepo{}
}

func (m *memTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	ticket.ID = fmt.Sprintf("ticket-%d", m.seq)
	stored := *ticket
	m.tickets = append(m.tickets, &stored)
	return nil
}

func (m *memTicketRepo) Update(_ context.Context, ticket *domain.Ticket) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.tickets {
		if existing.ID == ticket.ID {
			stored := *ticket
			stored.UserID = existing.UserID
			m.tickets[i] = &stored
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (m *memTicketRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.tickets {
		if existing.ID == id {
			m.tickets = append(m.tickets[:i], m.tickets[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (m *memTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.tickets {
		if existing.ID == id {
			found := *existing
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memTicketRepo) List(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	matched := m.filtered(filter)
	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	start := filter.Offset
	if start > len(matched) {
		start = len(matched)
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}

	out := make([]domain.Ticket, 0, end-start)
	for _, ticket := range matched[start:end] {
		out = append(out, *ticket)
	}
	return out, nil
}

func (m *memTicketRepo) Count(_ context.Context, filter repository.TicketFilter) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.filtered(filter)), nil
}

func (m *memTicketRepo) filtered(filter repository.TicketFilter) []*domain.Ticket {
	// Insertion order is oldest first; walk backwards for newest-first.
	matched := make([]*domain.Ticket, 0, len(m.tickets))
	for i := len(m.tickets) - 1; i >= 0; i-- {
		ticket := m.tickets[i]
		if filter.OwnerID != nil && ticket.UserID != *filter.OwnerID {
			continue
		}
		if filter.Status != nil && ticket.Status != *filter.Status {
			continue
		}
		if filter.SearchTerm != nil {
			term := strings.ToLower(*filter.SearchTerm)
			if !strings.Contains(strings.ToLower(ticket.Title), term) &&
				!strings.Contains(strings.ToLower(ticket.Description), term) {
				continue
			}
		}
		matched = append(matched, ticket)
	}
	return matched
}

// memResponseRepo is an in-memory ResponseRepository.
type memResponseRepo struct {
	mu        sync.Mutex
	seq       int
	responses []*domain.Response
}

func newMemResponseRepo() *memResponseRepo {
	return &memResponseRepo{}
}

func (m *memResponseRepo) Create(_ context.Context, response *domain.Response) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	response.ID = fmt.Sprintf("response-%d", m.seq)
	stored := *response
	m.responses = append(m.responses, &stored)
	return nil
}

func (m *memResponseRepo) Update(_ context.Context, response *domain.Response) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.responses {
		if existing.ID == response.ID {
			stored := *existing
			stored.Content = response.Content
			m.responses[i] = &stored
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (m *memResponseRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.responses {
		if existing.ID == id {
			m.responses = append(m.responses[:i], m.responses[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (m *memResponseRepo) GetByID(_ context.Context, id string) (*domain.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.responses {
		if existing.ID == id {
			found := *existing
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memResponseRepo) ListByTicket(_ context.Context, ticketID string) ([]domain.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Response, 0)
	for _, existing := range m.responses {
		if existing.TicketID == ticketID {
			out = append(out, *existing)
		}
	}
	return out, nil
}

// capturingDispatcher records every published event.
type capturingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func newCapturingDispatcher() *capturingDispatcher {
	return &capturingDispatcher{}
}

func (d *capturingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *capturingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *capturingDispatcher) published() []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]events.Event, len(d.events))
	copy(out, d.events)
	return out
}

func clientUser(id string) *domain.User {
	return &domain.User{ID: id, Roles: []domain.Role{{ID: "role-client", Name: domain.RoleClient}}}
}

func agentUser(id string) *domain.User {
	return &domain.User{ID: id, Roles: []domain.Role{{ID: "role-agent", Name: domain.RoleAgent}}}
}

func adminUser(id string) *domain.User {
	return &domain.User{ID: id, Roles: []domain.Role{{ID: "role-admin", Name: domain.RoleAdmin}}}
}
