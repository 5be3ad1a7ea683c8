package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/customer-care/internal/domain"
)

// RoleRepository exposes the seeded roles table and the role_user
// many-to-many membership relation.
type RoleRepository interface {
	GetByName(ctx context.Context, name domain.RoleName) (*domain.Role, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Role, error)
	Attach(ctx context.Context, userID, roleID string) error
	Detach(ctx context.Context, userID, roleID string) error
}

type roleRepository struct {
	pool *pgxpool.Pool
}

// NewRoleRepository returns a Postgres-backed implementation.
func NewRoleRepository(pool *pgxpool.Pool) RoleRepository {
	return &roleRepository{pool: pool}
}

func (r *roleRepository) GetByName(ctx context.Context, name domain.RoleName) (*domain.Role, error) {
	const query = `SELECT id, name, label FROM roles WHERE name=$1`
	var role domain.Role
	if err := r.pool.QueryRow(ctx, query, name).Scan(&role.ID, &role.Name, &role.Label); err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepository) ListByUser(ctx context.Context, userID string) ([]domain.Role, error) {
	const query = `
        SELECT r.id, r.name, r.label
        FROM roles r
        JOIN role_user ru ON ru.role_id = r.id
        WHERE ru.user_id=$1
        ORDER BY r.name`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Role
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Label); err != nil {
			return nil, err
		}
		result = append(result, role)
	}
	return result, rows.Err()
}

func (r *roleRepository) Attach(ctx context.Context, userID, roleID string) error {
	const query = `
        INSERT INTO role_user (role_id, user_id)
        VALUES ($1,$2)
        ON CONFLICT DO NOTHING`
	_, err := r.pool.Exec(ctx, query, roleID, userID)
	return err
}

func (r *roleRepository) Detach(ctx context.Context, userID, roleID string) error {
	const query = `DELETE FROM role_user WHERE role_id=$1 AND user_id=$2`
	cmd, err := r.pool.Exec(ctx, query, roleID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
