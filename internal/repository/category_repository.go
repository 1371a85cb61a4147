package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/appogelardexa/ticket-triage/internal/domain"
	"github.com/appogelardexa/ticket-triage/pkg/util"
)

// CategoryRepository manages category persistence. Category names are
// unique per department, so name lookups are always department-scoped.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	GetByDepartmentAndName(ctx context.Context, departmentID int64, name string) (*domain.Category, error)
	ListByDepartment(ctx context.Context, departmentID int64) ([]domain.Category, error)
}

type categoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository builds the repository.
func NewCategoryRepository(pool *pgxpool.Pool) CategoryRepository {
	return &categoryRepository{pool: pool}
}

func (r *categoryRepository) Create(ctx context.Context, category *domain.Category) error {
	const query = `
        INSERT INTO categories (department_id, name)
        VALUES ($1,$2)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		category.DepartmentID,
		category.Name,
	).Scan(&category.ID, &category.CreatedAt)
}

func (r *categoryRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	const query = `SELECT id, department_id, name, created_at FROM categories WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *categoryRepository) GetByDepartmentAndName(ctx context.Context, departmentID int64, name string) (*domain.Category, error) {
	const query = `SELECT id, department_id, name, created_at FROM categories WHERE department_id=$1 AND name=$2`
	var category domain.Category
	if err := r.pool.QueryRow(ctx, query, departmentID, name).Scan(
		&category.ID,
		&category.DepartmentID,
		&category.Name,
		&category.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("category", map[string]any{"department_id": departmentID, "name": name})
		}
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) ListByDepartment(ctx context.Context, departmentID int64) ([]domain.Category, error) {
	const query = `SELECT id, department_id, name, created_at FROM categories WHERE department_id=$1 ORDER BY id`
	rows, err := r.pool.Query(ctx, query, departmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Category
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(&category.ID, &category.DepartmentID, &category.Name, &category.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, category)
	}
	return result, rows.Err()
}

func (r *categoryRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Category, error) {
	var category domain.Category
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&category.ID,
		&category.DepartmentID,
		&category.Name,
		&category.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("category", nil)
		}
		return nil, err
	}
	return &category, nil
}
