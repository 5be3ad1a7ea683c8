package service

import (
	"context"
	"strings"

	"github.com/spec-kit/customer-care/internal/domain"
	"github.com/spec-kit/customer-care/internal/events"
	"github.com/spec-kit/customer-care/internal/observability"
	"github.com/spec-kit/customer-care/internal/policy"
	"github.com/spec-kit/customer-care/internal/repository"
	apperrors "github.com/spec-kit/customer-care/pkg/util"
)

// TicketService coordinates ticket workflows: load the resource, consult the
// policy engine, mutate the store, shape the result. It owns no
// authorization rule itself.
type TicketService struct {
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
}

// TicketCreateInput describes ticket creation payload. Any status supplied
// by the caller never reaches here; new tickets always start open.
type TicketCreateInput struct {
	Title       string
	Description string
}

// TicketUpdateInput describes a partial update; nil fields stay untouched.
type TicketUpdateInput struct {
	Title       *string
	Description *string
	Status      *domain.TicketStatus
}

// TicketListFilter describes listing parameters.
type TicketListFilter struct {
	Status  *domain.TicketStatus
	Search  *string
	Page    int
	PerPage int
}

// TicketPage is one page of listing results plus the total match count.
type TicketPage struct {
	Tickets []domain.Ticket
	Total   int
	Page    int
	PerPage int
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
	}
}

// List returns the page of tickets the actor may view. For actors without a
// staff role the filter is intersected with ownership before querying, so a
// client can never see another client's tickets even in aggregate counts.
func (s *TicketService) List(ctx context.Context, actor *domain.User, filter TicketListFilter) (*TicketPage, error) {
	if !policy.CanListTickets(actor) {
		return nil, s.deny(policy.ResourceTicket, policy.ActionViewAny)
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage <= 0 {
		perPage = 10
	}

	repoFilter := repository.TicketFilter{
		Status:     filter.Status,
		SearchTerm: filter.Search,
		Limit:      perPage,
		Offset:     (page - 1) * perPage,
	}
	if !actor.HasRole(domain.RoleAgent, domain.RoleAdmin) {
		ownerID := actor.ID
		repoFilter.OwnerID = &ownerID
	}

	tickets, err := s.tickets.List(ctx, repoFilter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	total, err := s.tickets.Count(ctx, repoFilter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	return &TicketPage{Tickets: tickets, Total: total, Page: page, PerPage: perPage}, nil
}

// Create files a new ticket owned by the actor with status forced to open.
func (s *TicketService) Create(ctx context.Context, actor *domain.User, input TicketCreateInput) (*domain.Ticket, error) {
	if !policy.CanCreateTicket(actor) {
		return nil, s.deny(policy.ResourceTicket, policy.ActionCreate)
	}

	ticket := &domain.Ticket{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Status:      domain.TicketStatusOpen,
		UserID:      actor.ID,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		ActorID:  actor.ID,
		Payload: events.TicketCreatedPayload{
			Title:  ticket.Title,
			Status: ticket.Status,
		},
	})
	return ticket, nil
}

// Get fetches a single ticket, resolving not-found before any policy call.
func (s *TicketService) Get(ctx context.Context, actor *domain.User, id string) (*domain.Ticket, error) {
	ticket, err := s.loadTicket(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanViewTicket(actor, ticket) {
		return nil, s.deny(policy.ResourceTicket, policy.ActionView)
	}
	return ticket, nil
}

// Update applies a partial update; only supplied fields change. An empty
// payload leaves the ticket as-is.
func (s *TicketService) Update(ctx context.Context, actor *domain.User, id string, input TicketUpdateInput) (*domain.Ticket, error) {
	ticket, err := s.loadTicket(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanUpdateTicket(actor, ticket) {
		return nil, s.deny(policy.ResourceTicket, policy.ActionUpdate)
	}

	oldStatus := ticket.Status
	if input.Title != nil {
		ticket.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		ticket.Description = strings.TrimSpace(*input.Description)
	}
	if input.Status != nil {
		if !policy.CanTransition(ticket.Status, *input.Status) {
			return nil, apperrors.NewValidationError(map[string][]string{
				"status": {"invalid status value"},
			})
		}
		ticket.Status = *input.Status
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	if ticket.Status != oldStatus {
		s.publishStatusChange(ctx, actor.ID, ticket, oldStatus)
	}
	return ticket, nil
}

// ChangeStatus moves the ticket to the given lifecycle state.
func (s *TicketService) ChangeStatus(ctx context.Context, actor *domain.User, id string, status domain.TicketStatus) (*domain.Ticket, error) {
	ticket, err := s.loadTicket(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanChangeTicketStatus(actor, ticket) {
		return nil, s.deny(policy.ResourceTicket, policy.ActionChangeStatus)
	}
	if !policy.CanTransition(ticket.Status, status) {
		return nil, apperrors.NewValidationError(map[string][]string{
			"status": {"invalid status value"},
		})
	}

	oldStatus := ticket.Status
	ticket.Status = status
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	if oldStatus != ticket.Status {
		s.publishStatusChange(ctx, actor.ID, ticket, oldStatus)
	}
	return ticket, nil
}

// Delete removes the ticket.
func (s *TicketService) Delete(ctx context.Context, actor *domain.User, id string) error {
	ticket, err := s.loadTicket(ctx, id)
	if err != nil {
		return err
	}
	if !policy.CanDeleteTicket(actor, ticket) {
		return s.deny(policy.ResourceTicket, policy.ActionDelete)
	}

	if err := s.tickets.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketDeleted,
		TicketID: ticket.ID,
		ActorID:  actor.ID,
	})
	return nil
}

func (s *TicketService) loadTicket(ctx context.Context, id string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNoRows(err) {
			return nil, apperrors.NewNotFound("Ticket")
		}
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

func (s *TicketService) deny(resource policy.Resource, action policy.Action) error {
	s.metrics.RecordPolicyDenial(string(resource), string(action))
	return apperrors.NewForbidden()
}

func (s *TicketService) publishStatusChange(ctx context.Context, actorID string, ticket *domain.Ticket, oldStatus domain.TicketStatus) {
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticket.ID,
		ActorID:  actorID,
		Payload: events.TicketStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: ticket.Status,
		},
	})
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	publishWithDefaults(ctx, s.dispatcher, event)
}
