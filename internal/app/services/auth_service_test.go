package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/senadev/guias-backend/internal/app/models"
	"github.com/senadev/guias-backend/internal/app/models/dto"
	"github.com/senadev/guias-backend/internal/pkg/apperrors"
	"github.com/senadev/guias-backend/internal/pkg/auth"
	"github.com/senadev/guias-backend/internal/pkg/email"
)

type fakeInstructorStore struct {
	instructors  map[string]*models.Instructor // by username
	emails       map[string]bool
	nextID       int64
	createErrs   []error // consumed one per Create call before succeeding
	createCalled int
}

func newFakeInstructorStore() *fakeInstructorStore {
	return &fakeInstructorStore{
		instructors: make(map[string]*models.Instructor),
		emails:      make(map[string]bool),
		nextID:      1,
	}
}

func (f *fakeInstructorStore) Create(_ context.Context, instructor *models.Instructor) error {
	f.createCalled++
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		if err != nil {
			return err
		}
	}
	instructor.ID = f.nextID
	f.nextID++
	f.instructors[instructor.Username] = instructor
	f.emails[instructor.Email] = true
	return nil
}

func (f *fakeInstructorStore) GetByUsername(_ context.Context, username string) (*models.Instructor, error) {
	instructor, ok := f.instructors[username]
	if !ok {
		return nil, apperrors.ErrInstructorNotFound
	}
	return instructor, nil
}

func (f *fakeInstructorStore) GetByIDWithRegional(_ context.Context, id int64) (*models.Instructor, error) {
	for _, instructor := range f.instructors {
		if instructor.ID == id {
			return instructor, nil
		}
	}
	return nil, apperrors.ErrInstructorNotFound
}

func (f *fakeInstructorStore) EmailExists(_ context.Context, email string) (bool, error) {
	return f.emails[email], nil
}

type fakeRegionalStore struct {
	regionals map[int64]*models.Regional
}

func (f *fakeRegionalStore) GetByID(_ context.Context, id int64) (*models.Regional, error) {
	regional, ok := f.regionals[id]
	if !ok {
		return nil, apperrors.ErrRegionalNotFound
	}
	return regional, nil
}

type fakeTokenStore struct {
	tokens map[string]*models.RefreshToken
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]*models.RefreshToken)}
}

func (f *fakeTokenStore) Create(_ context.Context, token *models.RefreshToken) error {
	f.tokens[token.Token] = token
	return nil
}

func (f *fakeTokenStore) GetByToken(_ context.Context, token string) (*models.RefreshToken, error) {
	stored, ok := f.tokens[token]
	if !ok {
		return nil, apperrors.ErrTokenNotFound
	}
	return stored, nil
}

func (f *fakeTokenStore) Revoke(_ context.Context, token string) error {
	stored, ok := f.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	stored.Revoked = true
	return nil
}

type fakeEmailService struct {
	err   error
	sent  int
	calls []string // recipient emails
}

func (f *fakeEmailService) SendCredentialsEmail(toEmail, _, _, _ string) error {
	f.calls = append(f.calls, toEmail)
	if f.err != nil {
		return f.err
	}
	f.sent++
	return nil
}

func newTestAuthService(instructors *fakeInstructorStore, regionals *fakeRegionalStore, tokens *fakeTokenStore, mail email.EmailService) *AuthService {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 720 * time.Hour,
		TokenIssuer:     "guias.test",
	})
	return NewAuthService(instructors, regionals, tokens, mail, jwtService, zerolog.Nop())
}

func testRegionals() *fakeRegionalStore {
	return &fakeRegionalStore{regionals: map[int64]*models.Regional{
		2: {ID: 2, Name: "Huila"},
	}}
}

func TestRegisterSuccess(t *testing.T) {
	instructors := newFakeInstructorStore()
	mail := &fakeEmailService{}
	service := newTestAuthService(instructors, testRegionals(), newFakeTokenStore(), mail)

	resp, err := service.Register(context.Background(), &dto.RegisterRequest{
		FullName:   "Ana Gomez",
		Email:      "ana.gomez@sena.edu.co",
		RegionalID: 2,
	})
	require.NoError(t, err)

	assert.True(t, resp.EmailSent)
	assert.Empty(t, resp.Warning)
	assert.Empty(t, resp.Password, "plaintext password must not leak on a delivered email")
	assert.True(t, strings.HasPrefix(resp.Username, "ana.gomez"))
	assert.Equal(t, 1, mail.sent)

	assert.Equal(t, []string{"ana.gomez@sena.edu.co"}, mail.calls)

	created := instructors.instructors[resp.Username]
	require.NotNil(t, created)
	assert.NotEmpty(t, created.PasswordHash)
}

func TestRegisterEmailFailureDegradesToWarning(t *testing.T) {
	instructors := newFakeInstructorStore()
	mail := &fakeEmailService{err: errors.New("relay unreachable")}
	service := newTestAuthService(instructors, testRegionals(), newFakeTokenStore(), mail)

	resp, err := service.Register(context.Background(), &dto.RegisterRequest{
		FullName:   "Ana Gomez",
		Email:      "ana.gomez@sena.edu.co",
		RegionalID: 2,
	})
	require.NoError(t, err, "a failed credentials email must not undo the registration")

	assert.False(t, resp.EmailSent)
	assert.NotEmpty(t, resp.Warning)
	assert.Len(t, resp.Password, auth.GeneratedPasswordLength)

	// The account exists and the returned password actually works.
	created := instructors.instructors[resp.Username]
	require.NotNil(t, created)
	assert.True(t, auth.CheckPassword(created.PasswordHash, resp.Password))
}

func TestRegisterWithUnconfiguredRelayDegradesToWarning(t *testing.T) {
	// The shipped development config leaves SMTP credentials empty. The real
	// email service then reports delivery failure, and registration must still
	// hand back working credentials instead of claiming a successful send.
	instructors := newFakeInstructorStore()
	mail := email.NewEmailService(email.SMTPConfig{
		Host:   "smtp.example.com",
		Port:   587,
		UseTLS: true,
	}, zerolog.Nop())
	service := newTestAuthService(instructors, testRegionals(), newFakeTokenStore(), mail)

	resp, err := service.Register(context.Background(), &dto.RegisterRequest{
		FullName:   "Ana Gomez",
		Email:      "ana.gomez@sena.edu.co",
		RegionalID: 2,
	})
	require.NoError(t, err)

	assert.False(t, resp.EmailSent)
	assert.NotEmpty(t, resp.Warning)
	require.Len(t, resp.Password, auth.GeneratedPasswordLength)

	created := instructors.instructors[resp.Username]
	require.NotNil(t, created)
	assert.True(t, auth.CheckPassword(created.PasswordHash, resp.Password))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	instructors := newFakeInstructorStore()
	instructors.emails["ana.gomez@sena.edu.co"] = true
	service := newTestAuthService(instructors, testRegionals(), newFakeTokenStore(), &fakeEmailService{})

	_, err := service.Register(context.Background(), &dto.RegisterRequest{
		FullName:   "Ana Gomez",
		Email:      "ana.gomez@sena.edu.co",
		RegionalID: 2,
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestRegisterUnknownRegional(t *testing.T) {
	service := newTestAuthService(newFakeInstructorStore(), testRegionals(), newFakeTokenStore(), &fakeEmailService{})

	_, err := service.Register(context.Background(), &dto.RegisterRequest{
		FullName:   "Ana Gomez",
		Email:      "ana.gomez@sena.edu.co",
		RegionalID: 99,
	})
	assert.ErrorIs(t, err, apperrors.ErrRegionalNotFound)
}

func TestRegisterInvalidInput(t *testing.T) {
	service := newTestAuthService(newFakeInstructorStore(), testRegionals(), newFakeTokenStore(), &fakeEmailService{})

	_, err := service.Register(context.Background(), &dto.RegisterRequest{
		FullName:   "Ana Gomez",
		Email:      "not-an-email",
		RegionalID: 2,
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidEmail)

	_, err = service.Register(context.Background(), &dto.RegisterRequest{
		FullName:   "   ",
		Email:      "ana@sena.edu.co",
		RegionalID: 2,
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestRegisterRetriesOnUsernameCollision(t *testing.T) {
	instructors := newFakeInstructorStore()
	// First two inserts hit the username unique index, third succeeds.
	instructors.createErrs = []error{apperrors.ErrUsernameAlreadyExists, apperrors.ErrUsernameAlreadyExists, nil}
	service := newTestAuthService(instructors, testRegionals(), newFakeTokenStore(), &fakeEmailService{})

	resp, err := service.Register(context.Background(), &dto.RegisterRequest{
		FullName:   "Ana Gomez",
		Email:      "ana.gomez@sena.edu.co",
		RegionalID: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, instructors.createCalled)
	assert.NotEmpty(t, resp.Username)
}

func TestRegisterGivesUpAfterRepeatedCollisions(t *testing.T) {
	instructors := newFakeInstructorStore()
	for i := 0; i < usernameAttempts; i++ {
		instructors.createErrs = append(instructors.createErrs, apperrors.ErrUsernameAlreadyExists)
	}
	service := newTestAuthService(instructors, testRegionals(), newFakeTokenStore(), &fakeEmailService{})

	_, err := service.Register(context.Background(), &dto.RegisterRequest{
		FullName:   "Ana Gomez",
		Email:      "ana.gomez@sena.edu.co",
		RegionalID: 2,
	})
	assert.ErrorIs(t, err, apperrors.ErrUsernameGenerationLoop)
	assert.Equal(t, usernameAttempts, instructors.createCalled)
}

func registerTestInstructor(t *testing.T, instructors *fakeInstructorStore, password string) *models.Instructor {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	instructor := &models.Instructor{
		FullName:     "Ana Gomez",
		Email:        "ana.gomez@sena.edu.co",
		Username:     "ana482",
		RegionalID:   2,
		PasswordHash: hash,
	}
	require.NoError(t, instructors.Create(context.Background(), instructor))
	return instructor
}

func TestLoginSuccessPersistsRefreshToken(t *testing.T) {
	instructors := newFakeInstructorStore()
	tokens := newFakeTokenStore()
	registerTestInstructor(t, instructors, "s3cr3t!#9X")
	service := newTestAuthService(instructors, testRegionals(), tokens, &fakeEmailService{})

	resp, err := service.Login(context.Background(), &dto.LoginRequest{Username: "ana482", Password: "s3cr3t!#9X"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, 3600, resp.ExpiresIn)

	stored, ok := tokens.tokens[resp.RefreshToken]
	require.True(t, ok, "refresh token must be persisted so it can be revoked")
	assert.True(t, stored.IsValid())
}

func TestLoginErrorsAreIndistinguishable(t *testing.T) {
	instructors := newFakeInstructorStore()
	registerTestInstructor(t, instructors, "s3cr3t!#9X")
	service := newTestAuthService(instructors, testRegionals(), newFakeTokenStore(), &fakeEmailService{})

	_, unknownUserErr := service.Login(context.Background(), &dto.LoginRequest{Username: "nobody123", Password: "s3cr3t!#9X"})
	_, wrongPasswordErr := service.Login(context.Background(), &dto.LoginRequest{Username: "ana482", Password: "wrong"})

	assert.ErrorIs(t, unknownUserErr, apperrors.ErrInvalidCredentials)
	assert.ErrorIs(t, wrongPasswordErr, apperrors.ErrInvalidCredentials)
	assert.Equal(t, unknownUserErr.Error(), wrongPasswordErr.Error())
}

func TestRefreshTokenRotates(t *testing.T) {
	instructors := newFakeInstructorStore()
	tokens := newFakeTokenStore()
	registerTestInstructor(t, instructors, "s3cr3t!#9X")
	service := newTestAuthService(instructors, testRegionals(), tokens, &fakeEmailService{})

	login, err := service.Login(context.Background(), &dto.LoginRequest{Username: "ana482", Password: "s3cr3t!#9X"})
	require.NoError(t, err)

	refreshed, err := service.RefreshToken(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// The old token was revoked by the rotation and cannot be replayed.
	_, err = service.RefreshToken(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}

func TestRefreshTokenExpired(t *testing.T) {
	instructors := newFakeInstructorStore()
	tokens := newFakeTokenStore()
	instructor := registerTestInstructor(t, instructors, "s3cr3t!#9X")
	tokens.tokens["stale"] = &models.RefreshToken{
		InstructorID: instructor.ID,
		Token:        "stale",
		ExpiresAt:    time.Now().Add(-time.Hour),
	}
	service := newTestAuthService(instructors, testRegionals(), tokens, &fakeEmailService{})

	_, err := service.RefreshToken(context.Background(), "stale")
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestRefreshTokenUnknown(t *testing.T) {
	service := newTestAuthService(newFakeInstructorStore(), testRegionals(), newFakeTokenStore(), &fakeEmailService{})

	_, err := service.RefreshToken(context.Background(), "never-issued")
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)
}

func TestLogoutRevokesToken(t *testing.T) {
	instructors := newFakeInstructorStore()
	tokens := newFakeTokenStore()
	registerTestInstructor(t, instructors, "s3cr3t!#9X")
	service := newTestAuthService(instructors, testRegionals(), tokens, &fakeEmailService{})

	login, err := service.Login(context.Background(), &dto.LoginRequest{Username: "ana482", Password: "s3cr3t!#9X"})
	require.NoError(t, err)

	require.NoError(t, service.Logout(context.Background(), login.RefreshToken))
	assert.True(t, tokens.tokens[login.RefreshToken].Revoked)

	_, err = service.RefreshToken(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}

func TestGetProfile(t *testing.T) {
	instructors := newFakeInstructorStore()
	instructor := registerTestInstructor(t, instructors, "s3cr3t!#9X")
	instructor.Regional = &models.Regional{ID: 2, Name: "Huila"}
	service := newTestAuthService(instructors, testRegionals(), newFakeTokenStore(), &fakeEmailService{})

	profile, err := service.GetProfile(context.Background(), instructor.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Gomez", profile.FullName)
	assert.Equal(t, "Huila", profile.RegionalName)
}

func TestGetProfileDanglingRegional(t *testing.T) {
	instructors := newFakeInstructorStore()
	instructor := registerTestInstructor(t, instructors, "s3cr3t!#9X")
	instructor.Regional = nil
	service := newTestAuthService(instructors, testRegionals(), newFakeTokenStore(), &fakeEmailService{})

	profile, err := service.GetProfile(context.Background(), instructor.ID)
	require.NoError(t, err)
	assert.Equal(t, "N/A", profile.RegionalName)
}
