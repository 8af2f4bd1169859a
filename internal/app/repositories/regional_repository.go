package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/senadev/guias-backend/internal/app/models"
	"github.com/senadev/guias-backend/internal/pkg/apperrors"
)

// RegionalRepository handles regional office database operations. Regionals
// are seeded at startup and read-only afterward, so this is a read surface
// plus the idempotent seed insert.
type RegionalRepository struct {
	db *pgxpool.Pool
}

// NewRegionalRepository creates a new RegionalRepository
func NewRegionalRepository(db *pgxpool.Pool) *RegionalRepository {
	return &RegionalRepository{
		db: db,
	}
}

// GetAll retrieves all regionals ordered by name
func (r *RegionalRepository) GetAll(ctx context.Context) ([]*models.Regional, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, created_at
		FROM regionals
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("error querying regionals: %w", err)
	}
	defer rows.Close()

	var regionals []*models.Regional
	for rows.Next() {
		regional := &models.Regional{}
		if err := rows.Scan(&regional.ID, &regional.Name, &regional.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning regional: %w", err)
		}
		regionals = append(regionals, regional)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating regionals: %w", err)
	}

	return regionals, nil
}

// GetByID retrieves a regional by ID
func (r *RegionalRepository) GetByID(ctx context.Context, id int64) (*models.Regional, error) {
	regional := &models.Regional{}
	err := r.db.QueryRow(ctx, `
		SELECT id, name, created_at
		FROM regionals
		WHERE id = $1`,
		id).Scan(&regional.ID, &regional.Name, &regional.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRegionalNotFound
		}
		return nil, fmt.Errorf("error querying regional: %w", err)
	}

	return regional, nil
}

// EnsureByName inserts a regional if a row with the same name does not exist
// yet. ON CONFLICT makes re-running the seed a no-op.
func (r *RegionalRepository) EnsureByName(ctx context.Context, name string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO regionals (name)
		VALUES ($1)
		ON CONFLICT (name) DO NOTHING`,
		name)
	if err != nil {
		return fmt.Errorf("error seeding regional %q: %w", name, err)
	}
	return nil
}
