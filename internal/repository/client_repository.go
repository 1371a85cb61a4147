package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/appogelardexa/ticket-triage/internal/domain"
	"github.com/appogelardexa/ticket-triage/pkg/util"
)

// ErrAmbiguousMatch signals that a name lookup matched more than one row.
var ErrAmbiguousMatch = errors.New("multiple matches")

// ClientRepository manages client persistence.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	GetByEmail(ctx context.Context, email string) (*domain.Client, error)
	GetByName(ctx context.Context, name string) (*domain.Client, error)
	List(ctx context.Context, limit, offset int) ([]domain.Client, error)
	Delete(ctx context.Context, id int64) error
}

type clientRepository struct {
	pool *pgxpool.Pool
}

// NewClientRepository builds the repository.
func NewClientRepository(pool *pgxpool.Pool) ClientRepository {
	return &clientRepository{pool: pool}
}

const clientColumns = `id, name, email, domain, company_id, created_at`

func (r *clientRepository) Create(ctx context.Context, client *domain.Client) error {
	const query = `
        INSERT INTO clients (name, email, domain, company_id)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		client.Name,
		client.Email,
		client.Domain,
		client.CompanyID,
	).Scan(&client.ID, &client.CreatedAt)
}

func (r *clientRepository) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	return r.fetchSingle(ctx, `SELECT `+clientColumns+` FROM clients WHERE id=$1`, id)
}

func (r *clientRepository) GetByEmail(ctx context.Context, email string) (*domain.Client, error) {
	return r.fetchSingle(ctx, `SELECT `+clientColumns+` FROM clients WHERE email=$1`, email)
}

// GetByName resolves a client by exact name. More than one match returns
// ErrAmbiguousMatch so callers can reject the reference instead of picking
// an arbitrary row.
func (r *clientRepository) GetByName(ctx context.Context, name string) (*domain.Client, error) {
	const query = `SELECT ` + clientColumns + ` FROM clients WHERE name=$1 LIMIT 2`
	rows, err := r.pool.Query(ctx, query, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clients, err := scanClients(rows)
	if err != nil {
		return nil, err
	}
	switch len(clients) {
	case 0:
		return nil, util.NewNotFound("client", map[string]any{"name": name})
	case 1:
		return &clients[0], nil
	default:
		return nil, ErrAmbiguousMatch
	}
}

func (r *clientRepository) List(ctx context.Context, limit, offset int) ([]domain.Client, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	const query = `SELECT ` + clientColumns + ` FROM clients ORDER BY id LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanClients(rows)
}

func (r *clientRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM clients WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return util.NewNotFound("client", map[string]any{"id": id})
	}
	return nil
}

func (r *clientRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Client, error) {
	var client domain.Client
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&client.ID,
		&client.Name,
		&client.Email,
		&client.Domain,
		&client.CompanyID,
		&client.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("client", nil)
		}
		return nil, err
	}
	return &client, nil
}

func scanClients(rows pgx.Rows) ([]domain.Client, error) {
	var result []domain.Client
	for rows.Next() {
		var client domain.Client
		if err := rows.Scan(
			&client.ID,
			&client.Name,
			&client.Email,
			&client.Domain,
			&client.CompanyID,
			&client.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, client)
	}
	return result, rows.Err()
}
