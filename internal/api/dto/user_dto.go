package dto

import (
	"time"

	"github.com/spec-kit/customer-care/internal/domain"
)

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ChangePasswordRequest payload for authenticated password changes.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// PasswordResetRequest payload to start a reset flow.
type PasswordResetRequest struct {
	Email string `json:"email"`
}

// PasswordResetConfirm payload to complete a reset flow.
type PasswordResetConfirm struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UserResource is the wire shape of an account, including its role names.
type UserResource struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

// NewUserResource maps the domain model to its wire shape.
func NewUserResource(user *domain.User) UserResource {
	names := make([]string, 0, len(user.Roles))
	for _, role := range user.Roles {
		names = append(names, string(role.Name))
	}
	return UserResource{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Roles: names,
	}
}
