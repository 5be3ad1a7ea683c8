package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/customer-care/internal/api/dto"
	"github.com/spec-kit/customer-care/internal/auth"
	"github.com/spec-kit/customer-care/internal/policy"
	"github.com/spec-kit/customer-care/internal/service"
	apperrors "github.com/spec-kit/customer-care/pkg/util"
)

// TicketsHandler manages ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// List GET /tickets.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	filter, err := parseTicketListQuery(c)
	if err != nil {
		return err
	}
	page, err := h.service.List(c.UserContext(), actor, filter)
	if err != nil {
		return err
	}

	items := make([]dto.TicketResource, 0, len(page.Tickets))
	for i := range page.Tickets {
		items = append(items, dto.NewTicketResource(&page.Tickets[i]))
	}
	return c.JSON(dto.PaginatedTickets{
		Data:  items,
		Links: dto.NewPageLinks(c.Path(), page.Page, page.PerPage, page.Total),
		Meta:  dto.NewPageMeta(c.Path(), page.Page, page.PerPage, len(items), page.Total),
	})
}

// Create POST /tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError(map[string][]string{"body": {"invalid payload"}})
	}
	if details := validateTicketPayload(req.Title, req.Description); len(details) > 0 {
		return apperrors.NewValidationError(details)
	}

	ticket, err := h.service.Create(c.UserContext(), actor, service.TicketCreateInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewTicketResource(ticket))
}

// Get GET /tickets/:id.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	ticket, err := h.service.Get(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTicketResource(ticket))
}

// Update PUT /tickets/:id.
func (h *TicketsHandler) Update(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError(map[string][]string{"body": {"invalid payload"}})
	}

	input := service.TicketUpdateInput{
		Title:       req.Title,
		Description: req.Description,
	}
	details := map[string][]string{}
	if req.Title != nil && (strings.TrimSpace(*req.Title) == "" || len(*req.Title) > 255) {
		details["title"] = []string{"title must be a non-empty string of at most 255 characters"}
	}
	if req.Description != nil && strings.TrimSpace(*req.Description) == "" {
		details["description"] = []string{"description must be a non-empty string"}
	}
	if req.Status != nil {
		status, ok := policy.ParseStatus(*req.Status)
		if !ok {
			details["status"] = []string{"status must be one of: open, pending, closed"}
		} else {
			input.Status = &status
		}
	}
	if len(details) > 0 {
		return apperrors.NewValidationError(details)
	}

	ticket, err := h.service.Update(c.UserContext(), actor, c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTicketResource(ticket))
}

// ChangeStatus PATCH /tickets/:id/status.
func (h *TicketsHandler) ChangeStatus(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.ChangeStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError(map[string][]string{"body": {"invalid payload"}})
	}
	status, ok := policy.ParseStatus(req.Status)
	if !ok {
		return apperrors.NewValidationError(map[string][]string{
			"status": {"status must be one of: open, pending, closed"},
		})
	}

	ticket, err := h.service.ChangeStatus(c.UserContext(), actor, c.Params("id"), status)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTicketResource(ticket))
}

// Delete DELETE /tickets/:id.
func (h *TicketsHandler) Delete(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	if err := h.service.Delete(c.UserContext(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Ticket deleted successfully"})
}

func parseTicketListQuery(c *fiber.Ctx) (service.TicketListFilter, error) {
	filter := service.TicketListFilter{
		Page:    parseInt(c.Query("page"), 1),
		PerPage: parseInt(c.Query("per_page"), 10),
	}
	if raw := c.Query("status"); raw != "" {
		status, ok := policy.ParseStatus(raw)
		if !ok {
			return filter, apperrors.NewValidationError(map[string][]string{
				"status": {"status must be one of: open, pending, closed"},
			})
		}
		filter.Status = &status
	}
	if search := c.Query("search"); search != "" {
		filter.Search = &search
	}
	return filter, nil
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func validateTicketPayload(title, description string) map[string][]string {
	details := map[string][]string{}
	if strings.TrimSpace(title) == "" {
		details["title"] = []string{"title is required"}
	} else if len(title) > 255 {
		details["title"] = []string{"title must be at most 255 characters"}
	}
	if strings.TrimSpace(description) == "" {
		details["description"] = []string{"description is required"}
	}
	return details
}
