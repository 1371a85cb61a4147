package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/appogelardexa/ticket-triage/internal/domain"
	"github.com/appogelardexa/ticket-triage/pkg/util"
)

// StaffRepository handles persistence for internal staff.
type StaffRepository interface {
	Create(ctx context.Context, staff *domain.Staff) error
	GetByID(ctx context.Context, id int64) (*domain.Staff, error)
	GetByEmail(ctx context.Context, email string) (*domain.Staff, error)
	GetByName(ctx context.Context, name string) (*domain.Staff, error)
	List(ctx context.Context, limit, offset int) ([]domain.Staff, error)
	SetStatus(ctx context.Context, id int64, status domain.StaffStatus) error
}

type staffRepository struct {
	pool *pgxpool.Pool
}

// NewStaffRepository instantiates the repository.
func NewStaffRepository(pool *pgxpool.Pool) StaffRepository {
	return &staffRepository{pool: pool}
}

const staffColumns = `id, name, email, status, created_at`

func (r *staffRepository) Create(ctx context.Context, staff *domain.Staff) error {
	if staff.Status == "" {
		staff.Status = domain.StaffActive
	}
	const query = `
        INSERT INTO internal_staff (name, email, status)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		staff.Name,
		staff.Email,
		staff.Status,
	).Scan(&staff.ID, &staff.CreatedAt)
}

func (r *staffRepository) GetByID(ctx context.Context, id int64) (*domain.Staff, error) {
	return r.fetchSingle(ctx, `SELECT `+staffColumns+` FROM internal_staff WHERE id=$1`, id)
}

func (r *staffRepository) GetByEmail(ctx context.Context, email string) (*domain.Staff, error) {
	return r.fetchSingle(ctx, `SELECT `+staffColumns+` FROM internal_staff WHERE email=$1`, email)
}

// GetByName resolves staff by exact name; ambiguous matches are rejected.
func (r *staffRepository) GetByName(ctx context.Context, name string) (*domain.Staff, error) {
	const query = `SELECT ` + staffColumns + ` FROM internal_staff WHERE name=$1 LIMIT 2`
	rows, err := r.pool.Query(ctx, query, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	staff, err := scanStaff(rows)
	if err != nil {
		return nil, err
	}
	switch len(staff) {
	case 0:
		return nil, util.NewNotFound("staff", map[string]any{"name": name})
	case 1:
		return &staff[0], nil
	default:
		return nil, ErrAmbiguousMatch
	}
}

func (r *staffRepository) List(ctx context.Context, limit, offset int) ([]domain.Staff, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	const query = `SELECT ` + staffColumns + ` FROM internal_staff ORDER BY id LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStaff(rows)
}

func (r *staffRepository) SetStatus(ctx context.Context, id int64, status domain.StaffStatus) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE internal_staff SET status=$1 WHERE id=$2`, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return util.NewNotFound("staff", map[string]any{"id": id})
	}
	return nil
}

func (r *staffRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Staff, error) {
	var staff domain.Staff
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&staff.ID,
		&staff.Name,
		&staff.Email,
		&staff.Status,
		&staff.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("staff", nil)
		}
		return nil, err
	}
	return &staff, nil
}

func scanStaff(rows pgx.Rows) ([]domain.Staff, error) {
	var result []domain.Staff
	for rows.Next() {
		var staff domain.Staff
		if err := rows.Scan(
			&staff.ID,
			&staff.Name,
			&staff.Email,
			&staff.Status,
			&staff.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, staff)
	}
	return result, rows.Err()
}
