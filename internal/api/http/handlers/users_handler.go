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

const minPasswordLength = 8

// UsersHandler manages account and credential endpoints.
type UsersHandler struct {
	service *service.AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService) *UsersHandler {
	return &UsersHandler{service: authService}
}

// Register POST /auth/register. New accounts always start as clients.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError(map[string][]string{"body": {"invalid payload"}})
	}

	details := map[string][]string{}
	if strings.TrimSpace(req.Name) == "" {
		details["name"] = []string{"name is required"}
	}
	if !validEmail(req.Email) {
		details["email"] = []string{"a valid email address is required"}
	}
	if len(req.Password) < minPasswordLength {
		details["password"] = []string{"password must be at least 8 characters"}
	}
	if len(details) > 0 {
		return apperrors.NewValidationError(details)
	}

	user, token, expiresAt, err := h.service.Register(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"user":       dto.NewUserResource(user),
		"token":      token,
		"expires_at": expiresAt,
	})
}

// Login POST /auth/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError(map[string][]string{"body": {"invalid payload"}})
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError(map[string][]string{
			"credentials": {"email and password are required"},
		})
	}

	user, token, expiresAt, err := h.service.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"user":       dto.NewUserResource(user),
		"token":      token,
		"expires_at": expiresAt,
	})
}

// ChangePassword POST /auth/password/change. Requires authentication.
func (h *UsersHandler) ChangePassword(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError(map[string][]string{"body": {"invalid payload"}})
	}
	if req.CurrentPassword == "" || len(req.NewPassword) < minPasswordLength {
		return apperrors.NewValidationError(map[string][]string{
			"new_password": {"new password must be at least 8 characters"},
		})
	}

	if err := h.service.ChangePassword(c.UserContext(), actor.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Password changed successfully"})
}

// RequestPasswordReset POST /auth/password/reset/request. Always answers with
// the same message so the endpoint does not leak which emails exist.
func (h *UsersHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError(map[string][]string{"body": {"invalid payload"}})
	}
	if !validEmail(req.Email) {
		return apperrors.NewValidationError(map[string][]string{
			"email": {"a valid email address is required"},
		})
	}

	if _, err := h.service.RequestPasswordReset(c.UserContext(), req.Email); err != nil {
		if de := apperrors.ToDomainError(err); de == nil || de.HTTPStatus != http.StatusNotFound {
			return err
		}
	}
	return c.JSON(fiber.Map{"message": "If the account exists, a reset token has been issued"})
}

// ConfirmPasswordReset POST /auth/password/reset/confirm.
func (h *UsersHandler) ConfirmPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetConfirm
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError(map[string][]string{"body": {"invalid payload"}})
	}
	details := map[string][]string{}
	if req.Token == "" {
		details["token"] = []string{"token is required"}
	}
	if len(req.NewPassword) < minPasswordLength {
		details["new_password"] = []string{"new password must be at least 8 characters"}
	}
	if len(details) > 0 {
		return apperrors.NewValidationError(details)
	}

	if err := h.service.ConfirmPasswordReset(c.UserContext(), req.Token, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Password reset successfully"})
}

func validEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1 && !strings.ContainsAny(email, " \t")
}
