package domain

import "time"

// User is the domain model for any authenticated account. Permissions come
// entirely from the attached role set; there is no separate staff entity.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Roles        []Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasRole reports whether the user's role set intersects the given names.
// A single name acts as a singleton set; no roles at all yields false.
func (u *User) HasRole(names ...RoleName) bool {
	if u == nil {
		return false
	}
	for _, role := range u.Roles {
		for _, name := range names {
			if role.Name == name {
				return true
			}
		}
	}
	return false
}

// RoleNames returns the user's role names in attachment order.
func (u *User) RoleNames() []RoleName {
	names := make([]RoleName, 0, len(u.Roles))
	for _, role := range u.Roles {
		names = append(names, role.Name)
	}
	return names
}
