package service_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/customer-care/internal/domain"
	"github.com/spec-kit/customer-care/internal/events"
	"github.com/spec-kit/customer-care/internal/service"
)

type responseFixture struct {
	tickets    *service.TicketService
	responses  *service.ResponseService
	dispatcher *capturingDispatcher
}

func newResponseFixture() responseFixture {
	ticketRepo := newMemTicketRepo()
	responseRepo := newMemResponseRepo()
	dispatcher := newCapturingDispatcher()
	return responseFixture{
		tickets: service.NewTicketService(service.TicketDependencies{
			TicketRepo: ticketRepo,
			Dispatcher: dispatcher,
		}),
		responses: service.NewResponseService(service.ResponseDependencies{
			ResponseRepo: responseRepo,
			TicketRepo:   ticketRepo,
			Dispatcher:   dispatcher,
		}),
		dispatcher: dispatcher,
	}
}

func TestResponseCreate(t *testing.T) {
	ctx := context.Background()
	fix := newResponseFixture()
	client := clientUser("c1")
	agent := agentUser("a1")

	ticket, err := fix.tickets.Create(ctx, client, service.TicketCreateInput{
		Title: "email bouncing", Description: "all outbound mail rejected",
	})
	require.NoError(t, err)

	t.Run("clients and agents can respond to an open ticket", func(t *testing.T) {
		first, err := fix.responses.Create(ctx, client, ticket.ID, "  started this morning  ")
		require.NoError(t, err)
		assert.Equal(t, "started this morning", first.Content)
		assert.Equal(t, client.ID, first.UserID)
		assert.Equal(t, ticket.ID, first.TicketID)

		second, err := fix.responses.Create(ctx, agent, ticket.ID, "checking the relay logs")
		require.NoError(t, err)
		assert.Equal(t, agent.ID, second.UserID)

		published := fix.dispatcher.published()
		last := published[len(published)-1]
		assert.Equal(t, events.EventResponseAdded, last.Type)
		payload, ok := last.Payload.(events.ResponseAddedPayload)
		require.True(t, ok)
		assert.Equal(t, second.ID, payload.ResponseID)
	})

	t.Run("admins without client or agent role cannot respond", func(t *testing.T) {
		_, err := fix.responses.Create(ctx, adminUser("x1"), ticket.ID, "noted")
		assertStatusCode(t, err, http.StatusForbidden)
	})

	t.Run("missing parent resolves 404 before policy", func(t *testing.T) {
		_, err := fix.responses.Create(ctx, client, "no-such-ticket", "hello?")
		assertStatusCode(t, err, http.StatusNotFound)
	})

	t.Run("long content is previewed in the event payload", func(t *testing.T) {
		long := strings.Repeat("a", 200)
		_, err := fix.responses.Create(ctx, client, ticket.ID, long)
		require.NoError(t, err)

		published := fix.dispatcher.published()
		payload := published[len(published)-1].Payload.(events.ResponseAddedPayload)
		assert.Len(t, payload.ContentPreview, 120)
		assert.True(t, strings.HasSuffix(payload.ContentPreview, "..."))
	})
}

func TestResponseLifecycleGate(t *testing.T) {
	ctx := context.Background()
	fix := newResponseFixture()
	client := clientUser("c1")
	agent := agentUser("a1")

	ticket, err := fix.tickets.Create(ctx, client, service.TicketCreateInput{
		Title: "screen flicker", Description: "external monitor flickers",
	})
	require.NoError(t, err)

	// open -> respond ok
	_, err = fix.responses.Create(ctx, client, ticket.ID, "happens on hdmi only")
	require.NoError(t, err)

	// pending -> respond still ok
	_, err = fix.tickets.ChangeStatus(ctx, agent, ticket.ID, domain.TicketStatusPending)
	require.NoError(t, err)
	_, err = fix.responses.Create(ctx, agent, ticket.ID, "replacement cable ordered")
	require.NoError(t, err)

	// closed -> respond denied for everyone
	_, err = fix.tickets.ChangeStatus(ctx, agent, ticket.ID, domain.TicketStatusClosed)
	require.NoError(t, err)
	_, err = fix.responses.Create(ctx, client, ticket.ID, "it is back")
	assertStatusCode(t, err, http.StatusForbidden)
	_, err = fix.responses.Create(ctx, agent, ticket.ID, "reopening")
	assertStatusCode(t, err, http.StatusForbidden)

	// reopened -> respond ok again
	_, err = fix.tickets.ChangeStatus(ctx, agent, ticket.ID, domain.TicketStatusOpen)
	require.NoError(t, err)
	_, err = fix.responses.Create(ctx, client, ticket.ID, "still flickering after the new cable")
	require.NoError(t, err)

	thread, err := fix.responses.ListByTicket(ctx, client, ticket.ID)
	require.NoError(t, err)
	assert.Len(t, thread, 3)
}

func TestResponseReadUpdateDelete(t *testing.T) {
	ctx := context.Background()
	fix := newResponseFixture()
	client := clientUser("c1")
	agent := agentUser("a1")
	admin := adminUser("x1")

	ticket, err := fix.tickets.Create(ctx, client, service.TicketCreateInput{
		Title: "locked out", Description: "badge reader rejects me",
	})
	require.NoError(t, err)
	response, err := fix.responses.Create(ctx, client, ticket.ID, "tried both doors")
	require.NoError(t, err)

	t.Run("any authenticated user can read", func(t *testing.T) {
		for _, actor := range []*domain.User{client, clientUser("c2"), agent, admin} {
			got, err := fix.responses.Get(ctx, actor, response.ID)
			require.NoError(t, err, actor.ID)
			assert.Equal(t, response.ID, got.ID)
		}

		thread, err := fix.responses.ListByTicket(ctx, clientUser("c2"), ticket.ID)
		require.NoError(t, err)
		assert.Len(t, thread, 1)
	})

	t.Run("listing under a missing ticket is 404", func(t *testing.T) {
		_, err := fix.responses.ListByTicket(ctx, agent, "no-such-ticket")
		assertStatusCode(t, err, http.StatusNotFound)
	})

	t.Run("authors cannot edit, staff can", func(t *testing.T) {
		content := "tried both doors and the garage entrance"
		_, err := fix.responses.Update(ctx, client, response.ID, service.ResponseUpdateInput{Content: &content})
		assertStatusCode(t, err, http.StatusForbidden)

		updated, err := fix.responses.Update(ctx, agent, response.ID, service.ResponseUpdateInput{Content: &content})
		require.NoError(t, err)
		assert.Equal(t, content, updated.Content)
	})

	t.Run("nil content update is a no-op", func(t *testing.T) {
		before, err := fix.responses.Get(ctx, agent, response.ID)
		require.NoError(t, err)
		after, err := fix.responses.Update(ctx, agent, response.ID, service.ResponseUpdateInput{})
		require.NoError(t, err)
		assert.Equal(t, before.Content, after.Content)
	})

	t.Run("delete is admin only", func(t *testing.T) {
		assertStatusCode(t, fix.responses.Delete(ctx, client, response.ID), http.StatusForbidden)
		assertStatusCode(t, fix.responses.Delete(ctx, agent, response.ID), http.StatusForbidden)
		require.NoError(t, fix.responses.Delete(ctx, admin, response.ID))

		published := fix.dispatcher.published()
		last := published[len(published)-1]
		assert.Equal(t, events.EventResponseDeleted, last.Type)

		_, err := fix.responses.Get(ctx, admin, response.ID)
		assertStatusCode(t, err, http.StatusNotFound)
	})
}
