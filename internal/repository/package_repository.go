package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/matchday-travel/lead-service/internal/domain"
)

// PackageRepository encapsulates travel package persistence.
type PackageRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Package, error)
	ListByEvent(ctx context.Context, eventID string) ([]domain.Package, error)
}

type packageRepository struct {
	pool *pgxpool.Pool
}

// NewPackageRepository instantiates the repository.
func NewPackageRepository(pool *pgxpool.Pool) PackageRepository {
	return &packageRepository{pool: pool}
}

func (r *packageRepository) GetByID(ctx context.Context, id string) (*domain.Package, error) {
	const query = `
        SELECT id, event_id, title, base_price, created_at
        FROM packages WHERE id=$1`
	var pkg domain.Package
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&pkg.ID,
		&pkg.EventID,
		&pkg.Title,
		&pkg.BasePrice,
		&pkg.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (r *packageRepository) ListByEvent(ctx context.Context, eventID string) ([]domain.Package, error) {
	const query = `
        SELECT id, event_id, title, base_price, created_at
        FROM packages WHERE event_id=$1 ORDER BY base_price ASC`
	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Package
	for rows.Next() {
		var pkg domain.Package
		if err := rows.Scan(
			&pkg.ID,
			&pkg.EventID,
			&pkg.Title,
			&pkg.BasePrice,
			&pkg.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, pkg)
	}
	return result, rows.Err()
}
