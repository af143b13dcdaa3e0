package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shidoapp/shido/internal/ctxkeys"
	"github.com/shidoapp/shido/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func whoAmI(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte(ctxkeys.UserID(r.Context())))
}

func TestAuthMiddleware(t *testing.T) {
	auth := service.NewAuthService("secret", time.Hour)
	token, err := auth.GenerateJWT("user-1")
	require.NoError(t, err)

	h := AuthMiddleware(auth)(http.HandlerFunc(whoAmI))

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"valid token", "Bearer " + token, "user-1"},
		{"lowercase scheme", "bearer " + token, "user-1"},
		{"no header", "", ""},
		{"garbage token", "Bearer nope", ""},
		{"wrong scheme", "Basic " + token, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, rec.Body.String())
		})
	}
}

func TestRequireAuth(t *testing.T) {
	h := RequireAuth(whoAmI)

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("WWW-Authenticate"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(ctxkeys.WithUserID(req.Context(), "user-1"))
	rec = httptest.NewRecorder()
	h(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", rec.Body.String())
}

func TestRateLimiterPerKey(t *testing.T) {
	rl := NewRateLimiter(60, 2)

	assert.True(t, rl.Allow("a"))
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))

	// Separate bucket per key
	assert.True(t, rl.Allow("b"))
}

func TestRateLimitWrites(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	h := RateLimitWrites(rl)(whoAmI)

	send := func(userID, remote string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/habits", nil)
		req.RemoteAddr = remote
		if userID != "" {
			req = req.WithContext(ctxkeys.WithUserID(req.Context(), userID))
		}
		rec := httptest.NewRecorder()
		h(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send("user-1", "10.0.0.1:1234"))
	assert.Equal(t, http.StatusTooManyRequests, send("user-1", "10.0.0.2:1234"))
	assert.Equal(t, http.StatusOK, send("user-2", "10.0.0.1:1234"))
	assert.Equal(t, http.StatusOK, send("", "10.0.0.1:1234"))
	assert.Equal(t, http.StatusTooManyRequests, send("", "10.0.0.1:5678"))
}

func TestGetClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:4321"
	assert.Equal(t, "192.0.2.1", getClientIP(req))

	req.Header.Set("X-Real-IP", "198.51.100.7")
	assert.Equal(t, "198.51.100.7", getClientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.5, 10.0.0.1")
	assert.Equal(t, "203.0.113.5", getClientIP(req))
}

func TestRequestLoggingCapturesStatus(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /teapot", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	h := Chain(mux, RequestLogging)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/teapot", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestRequestLoggingCarriesUser(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	auth := service.NewAuthService("secret", time.Hour)
	token, err := auth.GenerateJWT("user-1")
	require.NoError(t, err)

	h := Chain(http.HandlerFunc(whoAmI), AuthMiddleware(auth), RequestLogging)
	req := httptest.NewRequest(http.MethodGet, "/api/habits", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Contains(t, buf.String(), `"user_id":"user-1"`)
}
