package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shidoapp/shido/internal/app"
	"github.com/shidoapp/shido/internal/clock"
	"github.com/shidoapp/shido/internal/config"
	"github.com/shidoapp/shido/internal/db/dbtest"
	"github.com/shidoapp/shido/internal/routes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	handler http.Handler
	token   string
	clock   *clock.Fixed
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := &config.Config{
		AppEnv:             "development",
		JWTSecret:          "test-secret",
		JWTExpiry:          time.Hour,
		RateLimitPerMinute: 600,
		RateLimitBurst:     100,
		MetricsEnabled:     true,
	}
	clk := clock.NewFixed(time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC))
	a := app.Wire(cfg, dbtest.New(t), clk)

	token, err := a.AuthService.GenerateJWT("user-1")
	require.NoError(t, err)

	return &testServer{
		handler: routes.SetupRoutes(a),
		token:   token,
		clock:   clk,
	}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestCompleteHabitFlow(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/goals", map[string]any{"name": "Fitness", "target_points": 100})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	goal := decode[map[string]any](t, rec)
	goalID := goal["id"].(string)
	assert.Equal(t, "Phase 1", goal["phase"])

	rec = s.do(t, http.MethodPost, "/api/habits", map[string]any{
		"name":                 "Workout",
		"type":                 "positive",
		"points":               10,
		"goal_id":              goalID,
		"confirmation_message": "Well done",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	habitID := decode[map[string]any](t, rec)["id"].(string)

	rec = s.do(t, http.MethodPost, "/api/habits/"+habitID+"/complete", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	result := decode[map[string]any](t, rec)
	assert.Equal(t, float64(10), result["daily_score"])
	assert.Equal(t, float64(10), result["lifetime_score"])
	assert.Equal(t, "Well done", result["confirmation_message"])
	assert.Equal(t, float64(10), result["goal"].(map[string]any)["current_points"])

	rec = s.do(t, http.MethodPost, "/api/habits/"+habitID+"/complete", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "already_completed", decode[map[string]any](t, rec)["status"])

	rec = s.do(t, http.MethodGet, "/api/dashboard/today", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	today := decode[map[string]any](t, rec)
	assert.Equal(t, "2024-03-01", today["date"])
	assert.Equal(t, float64(10), today["score"])
	assert.Equal(t, []any{habitID}, today["completed_habit_ids"])

	rec = s.do(t, http.MethodGet, "/api/history", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]any](t, rec), 1)

	rec = s.do(t, http.MethodGet, "/api/dashboard/calendar?month=2024-03-15", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cal := decode[map[string]any](t, rec)
	assert.Equal(t, "2024-03-01", cal["from"])
	assert.Equal(t, float64(1), cal["active_days"])
}

func TestErrorMapping(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/habits", map[string]any{"name": "", "type": "positive", "points": 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "name", decode[map[string]any](t, rec)["field"])

	rec = s.do(t, http.MethodPost, "/api/habits", map[string]any{"name": "X", "type": "sideways", "points": 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/habits/missing/complete", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/goals/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/dashboard/calendar?from=2024-03-10&to=2024-03-01", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRequiresToken(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/habits", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	s.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPhaseEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/phase?current=75&target=100", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]any](t, rec)
	assert.Equal(t, "Phase 4", body["phase"])
	assert.Equal(t, float64(75), body["percentage"])

	rec = s.do(t, http.MethodGet, "/api/phase?current=1&target=0", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHabitLifecycle(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/habits", map[string]any{"name": "Relapse", "type": 1, "points": 5})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	habitID := decode[map[string]any](t, rec)["id"].(string)

	for i := 0; i < 3; i++ {
		rec = s.do(t, http.MethodPost, "/api/habits/"+habitID+"/complete", nil)
		require.Equal(t, http.StatusCreated, rec.Code)
	}
	assert.Equal(t, float64(-15), decode[map[string]any](t, rec)["daily_score"])

	rec = s.do(t, http.MethodPatch, "/api/habits/"+habitID, map[string]any{"points": 7})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, float64(7), decode[map[string]any](t, rec)["points"])

	rec = s.do(t, http.MethodDelete, "/api/habits/"+habitID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/habits", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]any](t, rec))
}
