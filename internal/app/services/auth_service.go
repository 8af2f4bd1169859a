package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"github.com/senadev/guias-backend/internal/app/models"
	"github.com/senadev/guias-backend/internal/app/models/dto"
	"github.com/senadev/guias-backend/internal/pkg/apperrors"
	"github.com/senadev/guias-backend/internal/pkg/auth"
	"github.com/senadev/guias-backend/internal/pkg/email"
)

// usernameAttempts bounds the regenerate-on-collision loop for generated
// usernames. The unique index rejection, not a precheck, triggers a retry.
const usernameAttempts = 5

var emailRegex = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)

// InstructorStore is the instructor persistence surface the auth service needs.
type InstructorStore interface {
	Create(ctx context.Context, instructor *models.Instructor) error
	GetByUsername(ctx context.Context, username string) (*models.Instructor, error)
	GetByIDWithRegional(ctx context.Context, id int64) (*models.Instructor, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// RegionalStore resolves regional references during registration.
type RegionalStore interface {
	GetByID(ctx context.Context, id int64) (*models.Regional, error)
}

// TokenStore persists refresh tokens backing authenticated sessions.
type TokenStore interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByToken(ctx context.Context, token string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, token string) error
}

// AuthService handles instructor registration and session management.
type AuthService struct {
	instructorRepo InstructorStore
	regionalRepo   RegionalStore
	tokenRepo      TokenStore
	emailService   email.EmailService
	jwtService     *auth.JWTService
	logger         zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	instructorRepo InstructorStore,
	regionalRepo RegionalStore,
	tokenRepo TokenStore,
	emailService email.EmailService,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		instructorRepo: instructorRepo,
		regionalRepo:   regionalRepo,
		tokenRepo:      tokenRepo,
		emailService:   emailService,
		jwtService:     jwtService,
		logger:         logger,
	}
}

// validateEmail validates an email address
func (s *AuthService) validateEmail(address string) error {
	if strings.TrimSpace(address) == "" {
		return apperrors.NewValidationError("email cannot be empty")
	}

	if !emailRegex.MatchString(strings.ToLower(address)) {
		return apperrors.ErrInvalidEmail
	}

	return nil
}

// Register creates a new instructor account with generated credentials and
// emails them to the instructor. Email delivery is best-effort: a delivery
// failure does not roll the registration back, it degrades the response to a
// warning carrying the credentials, since the plaintext is never stored.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if err := s.validateEmail(req.Email); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.FullName) == "" {
		return nil, apperrors.NewValidationError("full name cannot be empty")
	}

	// Advisory fast check; the unique index on instructors.email remains the
	// correctness gate at insert time.
	exists, err := s.instructorRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error checking email: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	regional, err := s.regionalRepo.GetByID(ctx, req.RegionalID)
	if err != nil {
		return nil, err
	}

	password, err := auth.GeneratePassword()
	if err != nil {
		return nil, fmt.Errorf("error generating password: %w", err)
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	instructor := &models.Instructor{
		FullName:     req.FullName,
		Email:        req.Email,
		RegionalID:   regional.ID,
		PasswordHash: passwordHash,
	}

	// Generated usernames can collide; regenerate on unique-index rejection.
	for attempt := 0; ; attempt++ {
		instructor.Username, err = auth.GenerateUsername(req.Email)
		if err != nil {
			return nil, fmt.Errorf("error generating username: %w", err)
		}

		err = s.instructorRepo.Create(ctx, instructor)
		if err == nil {
			break
		}
		if errors.Is(err, apperrors.ErrUsernameAlreadyExists) && attempt < usernameAttempts-1 {
			s.logger.Warn().Str("username", instructor.Username).Msg("Generated username collided, retrying")
			continue
		}
		if errors.Is(err, apperrors.ErrUsernameAlreadyExists) {
			return nil, apperrors.ErrUsernameGenerationLoop
		}
		return nil, err
	}

	s.logger.Info().
		Int64("instructorID", instructor.ID).
		Str("email", instructor.Email).
		Str("username", instructor.Username).
		Msg("Instructor registered")

	response := &dto.RegisterResponse{
		InstructorID: instructor.ID,
		Username:     instructor.Username,
		EmailSent:    true,
	}

	if err := s.emailService.SendCredentialsEmail(instructor.Email, instructor.FullName, instructor.Username, password); err != nil {
		// The record already exists; degrade instead of rolling back. The
		// plaintext travels in the response exactly once because it is
		// unrecoverable otherwise.
		s.logger.Error().Err(err).Str("email", instructor.Email).Msg("Failed to send credentials email")
		response.EmailSent = false
		response.Warning = "Registration succeeded but the credentials email could not be delivered. Save these credentials now; they cannot be recovered later."
		response.Password = password
	}

	return response, nil
}

// Login authenticates an instructor by username and password and opens a
// session. Unknown user and wrong password are indistinguishable to the
// caller: both return the same generic invalid-credentials error.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	instructor, err := s.instructorRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrInstructorNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error looking up instructor: %w", err)
	}

	if !auth.CheckPassword(instructor.PasswordHash, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, instructor)
}

// RefreshToken exchanges a valid refresh token for a fresh token pair,
// rotating the refresh token.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	stored, err := s.tokenRepo.GetByToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	if stored.Revoked {
		return nil, apperrors.ErrTokenRevoked
	}
	if !stored.IsValid() {
		return nil, apperrors.ErrTokenExpired
	}

	instructor, err := s.instructorRepo.GetByIDWithRegional(ctx, stored.InstructorID)
	if err != nil {
		return nil, err
	}

	if err := s.tokenRepo.Revoke(ctx, refreshToken); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, instructor)
}

// Logout revokes the presented refresh token, ending the session.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.tokenRepo.Revoke(ctx, refreshToken)
}

// GetProfile returns the current instructor's profile with the regional
// resolved. A dangling regional reference renders as "N/A".
func (s *AuthService) GetProfile(ctx context.Context, instructorID int64) (*dto.ProfileResponse, error) {
	instructor, err := s.instructorRepo.GetByIDWithRegional(ctx, instructorID)
	if err != nil {
		return nil, err
	}

	regionalName := missingReferencePlaceholder
	if instructor.Regional != nil {
		regionalName = instructor.Regional.Name
	}

	return &dto.ProfileResponse{
		ID:           instructor.ID,
		FullName:     instructor.FullName,
		Email:        instructor.Email,
		Username:     instructor.Username,
		RegionalName: regionalName,
	}, nil
}

// issueTokens creates and persists a session token pair for an instructor.
func (s *AuthService) issueTokens(ctx context.Context, instructor *models.Instructor) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(instructor.ID, instructor.Username)
	if err != nil {
		return nil, fmt.Errorf("error generating tokens: %w", err)
	}

	if err := s.tokenRepo.Create(ctx, &models.RefreshToken{
		InstructorID: instructor.ID,
		Token:        refreshToken,
		ExpiresAt:    s.jwtService.GetRefreshTokenExpiry(),
	}); err != nil {
		return nil, fmt.Errorf("error storing refresh token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: refreshExpiresIn,
	}, nil
}
