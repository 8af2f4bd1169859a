package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/senadev/guias-backend/internal/pkg/auth"
)

func newGuardedRouter(jwtService *auth.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	authMiddleware := NewAuthMiddleware(jwtService)
	router.GET("/protected", authMiddleware.JWTAuth(), func(c *gin.Context) {
		id, ok := GetInstructorID(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "identity missing"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"instructorId": id, "username": c.GetString(ContextUsername)})
	})
	return router
}

func testJWTService(accessExp time.Duration) *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: time.Hour,
		TokenIssuer:     "guias.test",
	})
}

func TestJWTAuthAllowsValidToken(t *testing.T) {
	jwtService := testJWTService(time.Hour)
	router := newGuardedRouter(jwtService)

	accessToken, _, _, _, err := jwtService.GenerateTokenPair(42, "ana482")
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"instructorId":42`)
	assert.Contains(t, recorder.Body.String(), `"username":"ana482"`)
}

func TestJWTAuthRejectsMissingHeader(t *testing.T) {
	router := newGuardedRouter(testJWTService(time.Hour))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/protected", nil))

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Authentication required")
}

func TestJWTAuthRejectsExpiredToken(t *testing.T) {
	jwtService := testJWTService(-time.Minute)
	router := newGuardedRouter(jwtService)

	accessToken, _, _, _, err := jwtService.GenerateTokenPair(42, "ana482")
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "AUTH_004")
}

func TestJWTAuthRejectsGarbageToken(t *testing.T) {
	router := newGuardedRouter(testJWTService(time.Hour))

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "AUTH_003")
}

func TestJWTAuthRejectsTokenFromOtherSecret(t *testing.T) {
	router := newGuardedRouter(testJWTService(time.Hour))

	other := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "other-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: time.Hour,
		TokenIssuer:     "guias.test",
	})
	accessToken, _, _, _, err := other.GenerateTokenPair(42, "ana482")
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestGetInstructorIDWithoutGuard(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := GetInstructorID(c)
	assert.False(t, ok)
}
