// Package policy implements the authorization decision engine for tickets
// and responses. Every decision is a pure function of the acting user's
// preloaded role set and the resource snapshot passed in; the engine performs
// no I/O and never mutates anything. Services consult it before every
// mutating or disclosing operation and translate a deny into a 403 outcome.
package policy

import "github.com/spec-kit/customer-care/internal/domain"

// Action tags the operation being decided.
type Action string

const (
	ActionViewAny      Action = "viewAny"
	ActionView         Action = "view"
	ActionCreate       Action = "create"
	ActionUpdate       Action = "update"
	ActionDelete       Action = "delete"
	ActionChangeStatus Action = "changeStatus"
)

// Resource names the entity kind a decision applies to.
type Resource string

const (
	ResourceTicket   Resource = "ticket"
	ResourceResponse Resource = "response"
)

// Context carries the resource snapshot a rule may consult. For response
// creation Ticket holds the parent ticket, since the response does not exist
// yet.
type Context struct {
	Ticket   *domain.Ticket
	Response *domain.Response
}

type rule func(actor *domain.User, rc Context) bool

// rules is the declarative decision table. Visibility is ownership-scoped
// for clients, action rights are role-scoped: staff drive tickets to
// resolution, the filer does not.
var rules = map[Resource]map[Action]rule{
	ResourceTicket: {
		ActionViewAny: anyAuthenticated,
		ActionView: func(actor *domain.User, rc Context) bool {
			if rc.Ticket == nil {
				return false
			}
			if actor.HasRole(domain.RoleAgent, domain.RoleAdmin) {
				return true
			}
			return actor.HasRole(domain.RoleClient) && actor.ID == rc.Ticket.UserID
		},
		ActionCreate: func(actor *domain.User, _ Context) bool {
			return actor.HasRole(domain.RoleClient)
		},
		ActionUpdate: staffOnly,
		ActionDelete: func(actor *domain.User, _ Context) bool {
			return actor.HasRole(domain.RoleAdmin)
		},
		ActionChangeStatus: staffOnly,
	},
	ResourceResponse: {
		ActionViewAny: anyAuthenticated,
		ActionView:    anyAuthenticated,
		ActionCreate: func(actor *domain.User, rc Context) bool {
			if rc.Ticket == nil {
				return false
			}
			return actor.HasRole(domain.RoleClient, domain.RoleAgent) &&
				AllowsResponses(rc.Ticket.Status)
		},
		ActionUpdate: staffOnly,
		ActionDelete: func(actor *domain.User, _ Context) bool {
			return actor.HasRole(domain.RoleAdmin)
		},
	},
}

func anyAuthenticated(actor *domain.User, _ Context) bool {
	return actor != nil
}

func staffOnly(actor *domain.User, _ Context) bool {
	return actor.HasRole(domain.RoleAgent, domain.RoleAdmin)
}

// Decide evaluates the rule for (actor, resource, action). Unknown
// resource/action pairs and nil actors always deny.
func Decide(actor *domain.User, res Resource, action Action, rc Context) bool {
	if actor == nil {
		return false
	}
	actions, ok := rules[res]
	if !ok {
		return false
	}
	decide, ok := actions[action]
	if !ok {
		return false
	}
	return decide(actor, rc)
}

// Typed wrappers so call sites read as the operation they guard.

func CanListTickets(actor *domain.User) bool {
	return Decide(actor, ResourceTicket, ActionViewAny, Context{})
}

func CanViewTicket(actor *domain.User, ticket *domain.Ticket) bool {
	return Decide(actor, ResourceTicket, ActionView, Context{Ticket: ticket})
}

func CanCreateTicket(actor *domain.User) bool {
	return Decide(actor, ResourceTicket, ActionCreate, Context{})
}

func CanUpdateTicket(actor *domain.User, ticket *domain.Ticket) bool {
	return Decide(actor, ResourceTicket, ActionUpdate, Context{Ticket: ticket})
}

func CanDeleteTicket(actor *domain.User, ticket *domain.Ticket) bool {
	return Decide(actor, ResourceTicket, ActionDelete, Context{Ticket: ticket})
}

func CanChangeTicketStatus(actor *domain.User, ticket *domain.Ticket) bool {
	return Decide(actor, ResourceTicket, ActionChangeStatus, Context{Ticket: ticket})
}

func CanListResponses(actor *domain.User) bool {
	return Decide(actor, ResourceResponse, ActionViewAny, Context{})
}

func CanViewResponse(actor *domain.User, response *domain.Response) bool {
	return Decide(actor, ResourceResponse, ActionView, Context{Response: response})
}

// CanCreateResponse gates on the parent ticket's lifecycle state: no new
// activity on a closed issue.
func CanCreateResponse(actor *domain.User, parent *domain.Ticket) bool {
	return Decide(actor, ResourceResponse, ActionCreate, Context{Ticket: parent})
}

func CanUpdateResponse(actor *domain.User, response *domain.Response) bool {
	return Decide(actor, ResourceResponse, ActionUpdate, Context{Response: response})
}

func CanDeleteResponse(actor *domain.User, response *domain.Response) bool {
	return Decide(actor, ResourceResponse, ActionDelete, Context{Response: response})
}
