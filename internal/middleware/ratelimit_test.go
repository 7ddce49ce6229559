package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limmud-app/core/internal/pkg/jwt"
)

// A valid token must bypass the limiter before any Redis access, regardless
// of whether the auth middleware has run yet.
func TestRateLimitExemptsValidToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimit(nil))
	r.GET("/sources", func(c *gin.Context) { c.Status(http.StatusOK) })

	token, err := jwt.Sign("user1", time.Minute)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/sources", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHasValidToken(t *testing.T) {
	token, err := jwt.Sign("user1", time.Minute)
	require.NoError(t, err)

	withToken := testContext(t, "/sources")
	withToken.Request.Header.Set("Authorization", "Bearer "+token)
	assert.True(t, HasValidToken(withToken))

	garbage := testContext(t, "/sources")
	garbage.Request.Header.Set("Authorization", "Bearer not-a-token")
	assert.False(t, HasValidToken(garbage))

	assert.False(t, HasValidToken(testContext(t, "/sources")))
}
