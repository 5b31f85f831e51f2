package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atakan/campusadmin/internal/pkg/auth"
)

func newAuthTestRouter(t *testing.T) (*gin.Engine, *auth.JWTService) {
	t.Helper()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "test-secret-key",
		TokenExp:    time.Hour,
		TokenIssuer: "campusadmin-test",
	})

	router := gin.New()
	router.GET("/protected", NewAuthMiddleware(jwtService).RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userID": c.GetInt64(ContextUserID),
			"email":  c.GetString(ContextEmail),
			"role":   c.GetString(ContextRole),
		})
	})
	return router, jwtService
}

func TestRequireAuthAcceptsValidToken(t *testing.T) {
	router, jwtService := newAuthTestRouter(t)

	token, _, err := jwtService.GenerateToken(42, "admin@example.com", "admin")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(42), body["userID"])
	assert.Equal(t, "admin@example.com", body["email"])
	assert.Equal(t, "admin", body["role"])
}

func TestRequireAuthRejectsMissingHeader(t *testing.T) {
	router, _ := newAuthTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Authentication required", body["message"])
}

func TestRequireAuthRejectsExpiredToken(t *testing.T) {
	router, _ := newAuthTestRouter(t)

	expired := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "test-secret-key",
		TokenExp:    -time.Minute,
		TokenIssuer: "campusadmin-test",
	})
	token, _, err := expired.GenerateToken(42, "admin@example.com", "admin")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Token expired", body["message"])
}
