package routes

import (
	"net/http"

	"github.com/shidoapp/shido/internal/app"
	"github.com/shidoapp/shido/internal/handler"
	"github.com/shidoapp/shido/internal/metrics"
	"github.com/shidoapp/shido/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	home := handler.NewHomeHandler(app.DB)
	habit := handler.NewHabitHandler(app.HabitService, app.ScoringService)
	goal := handler.NewGoalHandler(app.GoalService)
	dashboard := handler.NewDashboardHandler(app.DashboardService)

	// Write endpoints share one limiter keyed by user
	limit := middleware.RateLimitWrites(app.RateLimiter)
	protected := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.RequireAuth(h)
	}
	write := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.RequireAuth(limit(h))
	}

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /healthz", home.Health)
	if app.Cfg.MetricsEnabled {
		mux.Handle("GET /metrics", metrics.Handler())
	}

	// ============================================================================
	// PROTECTED ROUTES (/api/*)
	// ============================================================================

	// Habits
	mux.HandleFunc("GET /api/habits", protected(habit.List))
	mux.HandleFunc("POST /api/habits", write(habit.Create))
	mux.HandleFunc("PATCH /api/habits/{id}", write(habit.Update))
	mux.HandleFunc("DELETE /api/habits/{id}", write(habit.Delete))
	mux.HandleFunc("POST /api/habits/{id}/complete", write(habit.Complete))

	// Goals
	mux.HandleFunc("GET /api/goals", protected(goal.List))
	mux.HandleFunc("GET /api/goals/{id}", protected(goal.Get))
	mux.HandleFunc("POST /api/goals", write(goal.Create))
	mux.HandleFunc("PUT /api/goals/{id}", write(goal.Update))
	mux.HandleFunc("POST /api/goals/{id}/adjust", write(goal.Adjust))
	mux.HandleFunc("DELETE /api/goals/{id}", write(goal.Delete))
	mux.HandleFunc("GET /api/phase", protected(goal.Phase))

	// Dashboard
	mux.HandleFunc("GET /api/dashboard/today", protected(dashboard.Today))
	mux.HandleFunc("GET /api/dashboard/calendar", protected(dashboard.Calendar))
	mux.HandleFunc("GET /api/history", protected(dashboard.History))

	// ============================================================================
	// FALLBACK
	// ============================================================================

	mux.HandleFunc("/{path...}", home.NotFound)

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.AuthMiddleware(app.AuthService), // Wraps logging so log lines carry the user
		middleware.RequestLogging,
	)

	return handler
}
