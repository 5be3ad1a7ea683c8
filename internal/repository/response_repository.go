package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/customer-care/internal/domain"
)

// ResponseRepository manages ticket thread responses.
type ResponseRepository interface {
	Create(ctx context.Context, response *domain.Response) error
	Update(ctx context.Context, response *domain.Response) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Response, error)
	ListByTicket(ctx context.Context, ticketID string) ([]domain.Response, error)
}

type responseRepository struct {
	pool *pgxpool.Pool
}

// NewResponseRepository builds repository.
func NewResponseRepository(pool *pgxpool.Pool) ResponseRepository {
	return &responseRepository{pool: pool}
}

func (r *responseRepository) Create(ctx context.Context, response *domain.Response) error {
	const query = `
        INSERT INTO responses (content, ticket_id, user_id)
        VALUES ($1,$2,$3)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		response.Content,
		response.TicketID,
		response.UserID,
	).Scan(&response.ID, &response.CreatedAt, &response.UpdatedAt)
}

func (r *responseRepository) Update(ctx context.Context, response *domain.Response) error {
	// ticket_id and user_id are immutable foreign keys.
	const query = `
        UPDATE responses SET content=$1, updated_at=NOW()
        WHERE id=$2
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query, response.Content, response.ID).Scan(&response.UpdatedAt)
}

func (r *responseRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM responses WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *responseRepository) GetByID(ctx context.Context, id string) (*domain.Response, error) {
	const query = `
        SELECT id, content, ticket_id, user_id, created_at, updated_at
        FROM responses WHERE id=$1`
	var response domain.Response
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&response.ID,
		&response.Content,
		&response.TicketID,
		&response.UserID,
		&response.CreatedAt,
		&response.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &response, nil
}

func (r *responseRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.Response, error) {
	const query = `
        SELECT id, content, ticket_id, user_id, created_at, updated_at
        FROM responses WHERE ticket_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Response
	for rows.Next() {
		var response domain.Response
		if err := rows.Scan(
			&response.ID,
			&response.Content,
			&response.TicketID,
			&response.UserID,
			&response.CreatedAt,
			&response.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, response)
	}
	return result, rows.Err()
}
