package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/customer-care/internal/api/dto"
	"github.com/spec-kit/customer-care/internal/auth"
	"github.com/spec-kit/customer-care/internal/service"
	apperrors "github.com/spec-kit/customer-care/pkg/util"
)

// ResponsesHandler manages ticket response endpoints.
type ResponsesHandler struct {
	service *service.ResponseService
}

// NewResponsesHandler constructs handler.
func NewResponsesHandler(responseService *service.ResponseService) *ResponsesHandler {
	return &ResponsesHandler{service: responseService}
}

// ListByTicket GET /tickets/:id/responses.
func (h *ResponsesHandler) ListByTicket(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	responses, err := h.service.ListByTicket(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewResponseResources(responses)})
}

// Create POST /tickets/:id/responses.
func (h *ResponsesHandler) Create(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CreateResponseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError(map[string][]string{"body": {"invalid payload"}})
	}
	if strings.TrimSpace(req.Content) == "" {
		return apperrors.NewValidationError(map[string][]string{"content": {"content is required"}})
	}

	response, err := h.service.Create(c.UserContext(), actor, c.Params("id"), req.Content)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewResponseResource(response))
}

// Get GET /responses/:id.
func (h *ResponsesHandler) Get(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	response, err := h.service.Get(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewResponseResource(response))
}

// Update PUT /responses/:id.
func (h *ResponsesHandler) Update(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.UpdateResponseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError(map[string][]string{"body": {"invalid payload"}})
	}
	if req.Content != nil && strings.TrimSpace(*req.Content) == "" {
		return apperrors.NewValidationError(map[string][]string{"content": {"content must be a non-empty string"}})
	}

	response, err := h.service.Update(c.UserContext(), actor, c.Params("id"), service.ResponseUpdateInput{
		Content: req.Content,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewResponseResource(response))
}

// Delete DELETE /responses/:id.
func (h *ResponsesHandler) Delete(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	if err := h.service.Delete(c.UserContext(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Response deleted successfully"})
}
