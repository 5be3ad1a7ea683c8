package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/customer-care/internal/domain"
)

func TestHasRole(t *testing.T) {
	user := &domain.User{
		ID: "u1",
		Roles: []domain.Role{
			{ID: "1", Name: domain.RoleClient},
			{ID: "2", Name: domain.RoleAgent},
		},
	}

	assert.True(t, user.HasRole(domain.RoleClient))
	assert.True(t, user.HasRole(domain.RoleAgent))
	assert.False(t, user.HasRole(domain.RoleAdmin))
	assert.True(t, user.HasRole(domain.RoleAdmin, domain.RoleAgent))

	empty := &domain.User{ID: "u2"}
	assert.False(t, empty.HasRole(domain.RoleClient))

	var nilUser *domain.User
	assert.False(t, nilUser.HasRole(domain.RoleClient))
}

func TestRoleNames(t *testing.T) {
	user := &domain.User{
		Roles: []domain.Role{
			{Name: domain.RoleClient},
			{Name: domain.RoleAdmin},
		},
	}

	assert.Equal(t, []domain.RoleName{domain.RoleClient, domain.RoleAdmin}, user.RoleNames())
	assert.Empty(t, (&domain.User{}).RoleNames())
}
