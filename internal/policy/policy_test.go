package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/customer-care/internal/domain"
	"github.com/spec-kit/customer-care/internal/policy"
)

func userWith(id string, names ...domain.RoleName) *domain.User {
	roles := make([]domain.Role, 0, len(names))
	for _, name := range names {
		roles = append(roles, domain.Role{ID: "role-" + string(name), Name: name})
	}
	return &domain.User{ID: id, Name: "u-" + id, Email: id + "@example.com", Roles: roles}
}

func ticketOwnedBy(ownerID string, status domain.TicketStatus) *domain.Ticket {
	return &domain.Ticket{ID: "t-1", Title: "printer on fire", Status: status, UserID: ownerID}
}

func TestTicketDecisions(t *testing.T) {
	owner := userWith("c1", domain.RoleClient)
	otherClient := userWith("c2", domain.RoleClient)
	agent := userWith("a1", domain.RoleAgent)
	admin := userWith("x1", domain.RoleAdmin)
	ticket := ticketOwnedBy(owner.ID, domain.TicketStatusOpen)

	t.Run("view any", func(t *testing.T) {
		for _, actor := range []*domain.User{owner, otherClient, agent, admin} {
			assert.True(t, policy.CanListTickets(actor), actor.ID)
		}
		assert.False(t, policy.CanListTickets(nil))
	})

	t.Run("view", func(t *testing.T) {
		assert.True(t, policy.CanViewTicket(owner, ticket))
		assert.False(t, policy.CanViewTicket(otherClient, ticket))
		assert.True(t, policy.CanViewTicket(agent, ticket))
		assert.True(t, policy.CanViewTicket(admin, ticket))
		assert.False(t, policy.CanViewTicket(owner, nil))
	})

	t.Run("create is client only", func(t *testing.T) {
		assert.True(t, policy.CanCreateTicket(owner))
		assert.False(t, policy.CanCreateTicket(agent))
		assert.False(t, policy.CanCreateTicket(admin))
		assert.False(t, policy.CanCreateTicket(nil))
	})

	t.Run("update is staff only", func(t *testing.T) {
		assert.False(t, policy.CanUpdateTicket(owner, ticket))
		assert.True(t, policy.CanUpdateTicket(agent, ticket))
		assert.True(t, policy.CanUpdateTicket(admin, ticket))
	})

	t.Run("delete is admin only", func(t *testing.T) {
		assert.False(t, policy.CanDeleteTicket(owner, ticket))
		assert.False(t, policy.CanDeleteTicket(agent, ticket))
		assert.True(t, policy.CanDeleteTicket(admin, ticket))
	})

	t.Run("status change is staff only", func(t *testing.T) {
		assert.False(t, policy.CanChangeTicketStatus(owner, ticket))
		assert.True(t, policy.CanChangeTicketStatus(agent, ticket))
		assert.True(t, policy.CanChangeTicketStatus(admin, ticket))
	})
}

func TestResponseDecisions(t *testing.T) {
	client := userWith("c1", domain.RoleClient)
	agent := userWith("a1", domain.RoleAgent)
	admin := userWith("x1", domain.RoleAdmin)

	t.Run("view any and view", func(t *testing.T) {
		response := &domain.Response{ID: "r-1", TicketID: "t-1", UserID: client.ID}
		for _, actor := range []*domain.User{client, agent, admin} {
			assert.True(t, policy.CanListResponses(actor), actor.ID)
			assert.True(t, policy.CanViewResponse(actor, response), actor.ID)
		}
		assert.False(t, policy.CanListResponses(nil))
	})

	t.Run("create follows parent status", func(t *testing.T) {
		for _, status := range []domain.TicketStatus{domain.TicketStatusOpen, domain.TicketStatusPending} {
			parent := ticketOwnedBy(client.ID, status)
			assert.True(t, policy.CanCreateResponse(client, parent), string(status))
			assert.True(t, policy.CanCreateResponse(agent, parent), string(status))
		}

		closed := ticketOwnedBy(client.ID, domain.TicketStatusClosed)
		assert.False(t, policy.CanCreateResponse(client, closed))
		assert.False(t, policy.CanCreateResponse(agent, closed))
	})

	t.Run("create requires client or agent role", func(t *testing.T) {
		parent := ticketOwnedBy(client.ID, domain.TicketStatusOpen)
		assert.False(t, policy.CanCreateResponse(admin, parent))
		assert.False(t, policy.CanCreateResponse(userWith("n1"), parent))
		assert.False(t, policy.CanCreateResponse(client, nil))
	})

	t.Run("update is staff only", func(t *testing.T) {
		response := &domain.Response{ID: "r-1", TicketID: "t-1", UserID: client.ID}
		assert.False(t, policy.CanUpdateResponse(client, response))
		assert.True(t, policy.CanUpdateResponse(agent, response))
		assert.True(t, policy.CanUpdateResponse(admin, response))
	})

	t.Run("delete is admin only", func(t *testing.T) {
		response := &domain.Response{ID: "r-1", TicketID: "t-1", UserID: client.ID}
		assert.False(t, policy.CanDeleteResponse(client, response))
		assert.False(t, policy.CanDeleteResponse(agent, response))
		assert.True(t, policy.CanDeleteResponse(admin, response))
	})
}

func TestDecideDeniesUnknownPairs(t *testing.T) {
	actor := userWith("x1", domain.RoleAdmin)

	assert.False(t, policy.Decide(actor, policy.Resource("widget"), policy.ActionView, policy.Context{}))
	assert.False(t, policy.Decide(actor, policy.ResourceTicket, policy.Action("transfer"), policy.Context{}))
	assert.False(t, policy.Decide(nil, policy.ResourceTicket, policy.ActionViewAny, policy.Context{}))
}

func TestMultiRoleActors(t *testing.T) {
	hybrid := userWith("h1", domain.RoleClient, domain.RoleAgent)
	foreign := ticketOwnedBy("someone-else", domain.TicketStatusOpen)

	assert.True(t, policy.CanCreateTicket(hybrid))
	assert.True(t, policy.CanViewTicket(hybrid, foreign))
	assert.True(t, policy.CanUpdateTicket(hybrid, foreign))
	assert.False(t, policy.CanDeleteTicket(hybrid, foreign))
}
