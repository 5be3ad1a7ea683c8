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

// ResponseService coordinates the ticket thread workflows. Response creation
// additionally loads the parent ticket so the policy engine can gate on its
// lifecycle state.
type ResponseService struct {
	responses  repository.ResponseRepository
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
}

// ResponseDependencies bundles collaborators for the response service.
type ResponseDependencies struct {
	ResponseRepo repository.ResponseRepository
	TicketRepo   repository.TicketRepository
	Dispatcher   events.Dispatcher
	Metrics      *observability.Metrics
}

// ResponseUpdateInput describes a partial update; nil fields stay untouched.
type ResponseUpdateInput struct {
	Content *string
}

// NewResponseService constructs the service.
func NewResponseService(deps ResponseDependencies) *ResponseService {
	return &ResponseService{
		responses:  deps.ResponseRepo,
		tickets:    deps.TicketRepo,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
	}
}

// ListByTicket returns the thread for a ticket. The parent must exist;
// visibility is deliberately permissive for authenticated users.
func (s *ResponseService) ListByTicket(ctx context.Context, actor *domain.User, ticketID string) ([]domain.Response, error) {
	if _, err := s.loadTicket(ctx, ticketID); err != nil {
		return nil, err
	}
	if !policy.CanListResponses(actor) {
		return nil, s.deny(policy.ActionViewAny)
	}

	responses, err := s.responses.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return responses, nil
}

// Create appends a response authored by the actor to the ticket thread.
func (s *ResponseService) Create(ctx context.Context, actor *domain.User, ticketID, content string) (*domain.Response, error) {
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !policy.CanCreateResponse(actor, ticket) {
		return nil, s.deny(policy.ActionCreate)
	}

	response := &domain.Response{
		Content:  strings.TrimSpace(content),
		TicketID: ticket.ID,
		UserID:   actor.ID,
	}
	if err := s.responses.Create(ctx, response); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventResponseAdded,
		TicketID: ticket.ID,
		ActorID:  actor.ID,
		Payload: events.ResponseAddedPayload{
			ResponseID:     response.ID,
			ContentPreview: contentPreview(response.Content, 120),
		},
	})
	return response, nil
}

// Get fetches a single response; not-found resolves before any policy call.
func (s *ResponseService) Get(ctx context.Context, actor *domain.User, id string) (*domain.Response, error) {
	response, err := s.loadResponse(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanViewResponse(actor, response) {
		return nil, s.deny(policy.ActionView)
	}
	return response, nil
}

// Update applies a partial update to a response.
func (s *ResponseService) Update(ctx context.Context, actor *domain.User, id string, input ResponseUpdateInput) (*domain.Response, error) {
	response, err := s.loadResponse(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanUpdateResponse(actor, response) {
		return nil, s.deny(policy.ActionUpdate)
	}

	if input.Content != nil {
		response.Content = strings.TrimSpace(*input.Content)
	}
	if err := s.responses.Update(ctx, response); err != nil {
		return nil, apperrors.MapError(err)
	}
	return response, nil
}

// Delete removes a response.
func (s *ResponseService) Delete(ctx context.Context, actor *domain.User, id string) error {
	response, err := s.loadResponse(ctx, id)
	if err != nil {
		return err
	}
	if !policy.CanDeleteResponse(actor, response) {
		return s.deny(policy.ActionDelete)
	}

	if err := s.responses.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventResponseDeleted,
		TicketID: response.TicketID,
		ActorID:  actor.ID,
		Payload:  events.ResponseDeletedPayload{ResponseID: response.ID},
	})
	return nil
}

func (s *ResponseService) loadTicket(ctx context.Context, id string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNoRows(err) {
			return nil, apperrors.NewNotFound("Ticket")
		}
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

func (s *ResponseService) loadResponse(ctx context.Context, id string) (*domain.Response, error) {
	response, err := s.responses.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNoRows(err) {
			return nil, apperrors.NewNotFound("Response")
		}
		return nil, apperrors.MapError(err)
	}
	return response, nil
}

func (s *ResponseService) deny(action policy.Action) error {
	s.metrics.RecordPolicyDenial(string(policy.ResourceResponse), string(action))
	return apperrors.NewForbidden()
}

func (s *ResponseService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	publishWithDefaults(ctx, s.dispatcher, event)
}

func contentPreview(content string, max int) string {
	content = strings.TrimSpace(content)
	if len(content) <= max {
		return content
	}
	if max <= 3 {
		return content[:max]
	}
	return content[:max-3] + "..."
}
