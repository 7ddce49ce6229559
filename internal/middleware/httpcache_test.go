package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T, target string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req, err := http.NewRequest(http.MethodGet, target, nil)
	require.NoError(t, err)
	c.Request = req
	return c
}

func TestShouldSkipCachePath(t *testing.T) {
	patterns := []string{"/api/v1/uptime", "/api/v1/users/*"}

	assert.True(t, shouldSkipCachePath("/api/v1/uptime", patterns))
	assert.True(t, shouldSkipCachePath("/api/v1/users/abc/pattern", patterns))
	assert.False(t, shouldSkipCachePath("/api/v1/sources", patterns))
	assert.False(t, shouldSkipCachePath("/api/v1/uptime", nil))
}

func TestHasBypassTimestamp(t *testing.T) {
	assert.True(t, hasBypassTimestamp(testContext(t, "/api/v1/sources?ts=123")))
	assert.True(t, hasBypassTimestamp(testContext(t, "/api/v1/sources?_t=9")))
	assert.False(t, hasBypassTimestamp(testContext(t, "/api/v1/sources?category=halacha")))
}

func TestIsCacheableResponse(t *testing.T) {
	plain := http.Header{}
	assert.True(t, isCacheableResponse(http.StatusOK, plain))
	assert.False(t, isCacheableResponse(http.StatusNotFound, plain))

	private := http.Header{}
	private.Set("Cache-Control", "private, no-store")
	assert.False(t, isCacheableResponse(http.StatusOK, private))
}

func TestCacheBodyWriterOverflow(t *testing.T) {
	w := &cacheBodyWriter{}

	w.capture(make([]byte, httpCacheMaxBodyBytes-1))
	assert.False(t, w.overflow)

	w.capture([]byte("xx"))
	assert.True(t, w.overflow)
	assert.Len(t, w.body, httpCacheMaxBodyBytes)
}
