package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/senadev/guias-backend/internal/app/models"
	"github.com/senadev/guias-backend/internal/pkg/apperrors"
	"github.com/senadev/guias-backend/internal/pkg/dberrors"
)

// Unique constraint names from migrations/001_init.sql. The write-time
// violation of these constraints is the authoritative duplicate check.
const (
	constraintInstructorEmail    = "instructors_email_key"
	constraintInstructorUsername = "instructors_username_key"
)

// InstructorRepository handles instructor account database operations
type InstructorRepository struct {
	db *pgxpool.Pool
}

// NewInstructorRepository creates a new InstructorRepository
func NewInstructorRepository(db *pgxpool.Pool) *InstructorRepository {
	return &InstructorRepository{
		db: db,
	}
}

// Create inserts a new instructor and fills in its generated ID. Duplicate
// email or username surfaces as apperrors.ErrEmailAlreadyExists or
// apperrors.ErrUsernameAlreadyExists, taken from the unique-index rejection
// rather than any precheck.
func (r *InstructorRepository) Create(ctx context.Context, instructor *models.Instructor) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO instructors (full_name, email, regional_id, username, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		instructor.FullName, instructor.Email, instructor.RegionalID,
		instructor.Username, instructor.PasswordHash).
		Scan(&instructor.ID, &instructor.CreatedAt)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, constraintInstructorEmail) {
			return apperrors.ErrEmailAlreadyExists
		}
		if dberrors.IsDuplicateConstraintError(err, constraintInstructorUsername) {
			return apperrors.ErrUsernameAlreadyExists
		}
		return fmt.Errorf("error creating instructor: %w", err)
	}

	return nil
}

// GetByUsername retrieves an instructor by username
func (r *InstructorRepository) GetByUsername(ctx context.Context, username string) (*models.Instructor, error) {
	instructor := &models.Instructor{}
	err := r.db.QueryRow(ctx, `
		SELECT id, full_name, email, regional_id, username, password_hash, created_at
		FROM instructors
		WHERE username = $1`,
		username).Scan(
		&instructor.ID, &instructor.FullName, &instructor.Email, &instructor.RegionalID,
		&instructor.Username, &instructor.PasswordHash, &instructor.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInstructorNotFound
		}
		return nil, fmt.Errorf("error querying instructor: %w", err)
	}

	return instructor, nil
}

// GetByIDWithRegional retrieves an instructor with its regional resolved.
// A dangling regional reference leaves Regional nil; callers substitute a
// placeholder for display.
func (r *InstructorRepository) GetByIDWithRegional(ctx context.Context, id int64) (*models.Instructor, error) {
	instructor := &models.Instructor{}
	var regionalID *int64
	var regionalName *string

	err := r.db.QueryRow(ctx, `
		SELECT i.id, i.full_name, i.email, i.regional_id, i.username, i.password_hash, i.created_at,
		       r.id, r.name
		FROM instructors i
		LEFT JOIN regionals r ON r.id = i.regional_id
		WHERE i.id = $1`,
		id).Scan(
		&instructor.ID, &instructor.FullName, &instructor.Email, &instructor.RegionalID,
		&instructor.Username, &instructor.PasswordHash, &instructor.CreatedAt,
		&regionalID, &regionalName)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInstructorNotFound
		}
		return nil, fmt.Errorf("error querying instructor: %w", err)
	}

	if regionalID != nil && regionalName != nil {
		instructor.Regional = &models.Regional{ID: *regionalID, Name: *regionalName}
	}

	return instructor, nil
}

// EmailExists checks if an email is already registered. Advisory only: the
// unique index on instructors.email remains the correctness gate.
func (r *InstructorRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM instructors WHERE email = $1)`,
		email).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking email: %w", err)
	}

	return exists, nil
}
