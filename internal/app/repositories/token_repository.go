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

// TokenRepository handles refresh token database operations
type TokenRepository struct {
	db *pgxpool.Pool
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{
		db: db,
	}
}

// Create stores a new refresh token
func (r *TokenRepository) Create(ctx context.Context, token *models.RefreshToken) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO refresh_tokens (instructor_id, token, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		token.InstructorID, token.Token, token.ExpiresAt).
		Scan(&token.ID, &token.CreatedAt)

	if err != nil {
		return fmt.Errorf("error creating refresh token: %w", err)
	}

	return nil
}

// GetByToken retrieves a refresh token by its value
func (r *TokenRepository) GetByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	refreshToken := &models.RefreshToken{}
	err := r.db.QueryRow(ctx, `
		SELECT id, instructor_id, token, expires_at, revoked, created_at
		FROM refresh_tokens
		WHERE token = $1`,
		token).Scan(
		&refreshToken.ID, &refreshToken.InstructorID, &refreshToken.Token,
		&refreshToken.ExpiresAt, &refreshToken.Revoked, &refreshToken.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTokenNotFound
		}
		return nil, fmt.Errorf("error querying refresh token: %w", err)
	}

	return refreshToken, nil
}

// Revoke marks a refresh token as revoked
func (r *TokenRepository) Revoke(ctx context.Context, token string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE refresh_tokens
		SET revoked = TRUE
		WHERE token = $1`,
		token)
	if err != nil {
		return fmt.Errorf("error revoking refresh token: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperrors.ErrTokenNotFound
	}

	return nil
}

// DeleteExpired removes tokens that expired before the retention cutoff
func (r *TokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM refresh_tokens
		WHERE expires_at < NOW()`)
	if err != nil {
		return 0, fmt.Errorf("error deleting expired refresh tokens: %w", err)
	}

	return tag.RowsAffected(), nil
}
