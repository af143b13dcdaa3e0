package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func scrape(t *testing.T) string {
	t.Helper()
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestRecordCompletion(t *testing.T) {
	RecordCompletion("negative", OutcomeRecorded, -5)
	RecordCompletion("positive", OutcomeAlreadyCompleted, 0)

	body := scrape(t)
	assert.Contains(t, body, `shido_scoring_completions_total{habit_type="negative",outcome="recorded"}`)
	assert.Contains(t, body, `shido_scoring_completions_total{habit_type="positive",outcome="already_completed"}`)
	assert.Contains(t, body, `shido_scoring_points_applied_total{habit_type="negative"} 5`)
	assert.NotContains(t, body, `shido_scoring_points_applied_total{habit_type="positive"}`)
}

func TestHandlerExposesMetrics(t *testing.T) {
	RecordGoalAdjustment("applied")
	RecordHTTPRequest(http.MethodGet, "GET /healthz", http.StatusOK, 3*time.Millisecond)

	body := scrape(t)
	assert.Contains(t, body, `shido_goals_adjustments_total{result="applied"} 1`)
	assert.Contains(t, body, "shido_http_requests_total")
	assert.Contains(t, body, "shido_http_request_duration_seconds_bucket")
}
