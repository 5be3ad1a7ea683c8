package domain

// RoleName is a named permission tag from the seeded role set.
type RoleName string

const (
	RoleClient RoleName = "client"
	RoleAgent  RoleName = "agent"
	RoleAdmin  RoleName = "admin"
)

// Role is one row of the roles table. Roles are seeded once and never
// mutated; membership lives in the role_user relation.
type Role struct {
	ID    string
	Name  RoleName
	Label string
}
