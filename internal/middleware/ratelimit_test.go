package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/shelfreview/internal/auth"
	"github.com/snnyvrz/shelfreview/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticValidator struct{}

func (staticValidator) ValidateAccessToken(token string) (*auth.Claims, error) {
	return &auth.Claims{UserID: token}, nil
}

func newRouter(store *limiterStore, withAuth bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	handlers := []gin.HandlerFunc{}
	if withAuth {
		handlers = append(handlers, auth.RequireAuth(staticValidator{}))
	}
	handlers = append(handlers, rateLimit(store, nil), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.POST("/summarize", handlers...)
	return r
}

func do(r *gin.Engine, remote, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/summarize", nil)
	req.RemoteAddr = remote
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimit_BurstThenReject(t *testing.T) {
	store := newLimiterStore(0.001, 2, time.Hour)
	r := newRouter(store, false)

	assert.Equal(t, http.StatusOK, do(r, "10.0.0.1:1234", "").Code)
	assert.Equal(t, http.StatusOK, do(r, "10.0.0.1:1234", "").Code)

	w := do(r, "10.0.0.1:1234", "")
	require.Equal(t, http.StatusTooManyRequests, w.Code)

	var resp validation.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, CodeRateLimited, resp.Code)

	assert.Equal(t, http.StatusOK, do(r, "10.0.0.2:1234", "").Code, "other clients keep their own bucket")
}

func TestRateLimit_KeyedByUser(t *testing.T) {
	store := newLimiterStore(0.001, 1, time.Hour)
	r := newRouter(store, true)

	assert.Equal(t, http.StatusOK, do(r, "10.0.0.1:1234", "alice").Code)
	assert.Equal(t, http.StatusTooManyRequests, do(r, "10.0.0.9:1234", "alice").Code)
	assert.Equal(t, http.StatusOK, do(r, "10.0.0.1:1234", "bob").Code)
}

func TestLimiterStore_EvictsIdleCallers(t *testing.T) {
	now := time.Unix(0, 0)
	store := newLimiterStore(1, 1, time.Minute)
	store.now = func() time.Time { return now }

	store.get("a")
	store.get("b")
	require.Equal(t, 2, store.len())

	now = now.Add(2 * time.Minute)
	store.get("c")
	assert.Equal(t, 1, store.len())
}
