package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/senadev/guias-backend/internal/app/models/dto"
	"github.com/senadev/guias-backend/internal/pkg/apperrors"
)

func handleError(t *testing.T, err error) (int, *dto.APIResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	HandleAPIError(c, err)

	var body dto.APIResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return recorder.Code, &body
}

func TestHandleAPIErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   dto.ErrorCode
	}{
		{"no file selected", apperrors.ErrNoFileSelected, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"file type not allowed", apperrors.ErrFileTypeNotAllowed, http.StatusBadRequest, dto.ErrorCodeFileTypeNotAllowed},
		{"invalid email", apperrors.ErrInvalidEmail, http.StatusBadRequest, dto.ErrorCodeInvalidEmail},
		{"validation failed", apperrors.NewValidationError("full name cannot be empty"), http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials},
		{"token expired", apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken},
		{"token revoked", apperrors.ErrTokenRevoked, http.StatusUnauthorized, dto.ErrorCodeInvalidToken},
		{"token not found", apperrors.ErrTokenNotFound, http.StatusUnauthorized, dto.ErrorCodeTokenNotFound},
		{"email exists", apperrors.ErrEmailAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{"username generation loop", apperrors.ErrUsernameGenerationLoop, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{"regional not found", apperrors.ErrRegionalNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"program not found", apperrors.ErrProgramNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"instructor not found", apperrors.ErrInstructorNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"file not found", apperrors.ErrFileNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"unexpected error", errors.New("pool exhausted"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := handleError(t, tt.err)
			assert.Equal(t, tt.status, status)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.code, body.Error.Code)
		})
	}
}

func TestHandleAPIErrorHidesInternalDetails(t *testing.T) {
	status, body := handleError(t, errors.New("dial tcp 10.0.0.5:5432: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, status)
	require.NotNil(t, body.Error)
	assert.NotContains(t, body.Error.Message, "10.0.0.5")
}

func TestHandleAPIErrorLoginFailuresShareOneMessage(t *testing.T) {
	// Whatever the cause, a login failure must read the same to the caller.
	_, body := handleError(t, apperrors.ErrInvalidCredentials)
	require.NotNil(t, body.Error)
	assert.Equal(t, "Invalid credentials", body.Error.Message)
}
