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

// ProgramRepository handles training program database operations. Like
// regionals, programs are seeded at startup and read-only afterward.
type ProgramRepository struct {
	db *pgxpool.Pool
}

// NewProgramRepository creates a new ProgramRepository
func NewProgramRepository(db *pgxpool.Pool) *ProgramRepository {
	return &ProgramRepository{
		db: db,
	}
}

// GetAll retrieves all training programs ordered by name
func (r *ProgramRepository) GetAll(ctx context.Context) ([]*models.TrainingProgram, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, created_at
		FROM training_programs
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("error querying training programs: %w", err)
	}
	defer rows.Close()

	var programs []*models.TrainingProgram
	for rows.Next() {
		program := &models.TrainingProgram{}
		if err := rows.Scan(&program.ID, &program.Name, &program.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning training program: %w", err)
		}
		programs = append(programs, program)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating training programs: %w", err)
	}

	return programs, nil
}

// GetByID retrieves a training program by ID
func (r *ProgramRepository) GetByID(ctx context.Context, id int64) (*models.TrainingProgram, error) {
	program := &models.TrainingProgram{}
	err := r.db.QueryRow(ctx, `
		SELECT id, name, created_at
		FROM training_programs
		WHERE id = $1`,
		id).Scan(&program.ID, &program.Name, &program.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProgramNotFound
		}
		return nil, fmt.Errorf("error querying training program: %w", err)
	}

	return program, nil
}

// EnsureByName inserts a training program if a row with the same name does
// not exist yet.
func (r *ProgramRepository) EnsureByName(ctx context.Context, name string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO training_programs (name)
		VALUES ($1)
		ON CONFLICT (name) DO NOTHING`,
		name)
	if err != nil {
		return fmt.Errorf("error seeding training program %q: %w", name, err)
	}
	return nil
}
