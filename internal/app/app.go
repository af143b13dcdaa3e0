package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shidoapp/shido/internal/clock"
	"github.com/shidoapp/shido/internal/config"
	"github.com/shidoapp/shido/internal/db"
	"github.com/shidoapp/shido/internal/middleware"
	"github.com/shidoapp/shido/internal/repository"
	"github.com/shidoapp/shido/internal/service"
)

type App struct {
	Cfg              *config.Config
	DB               *sqlx.DB
	Clock            clock.Clock
	AuthService      *service.AuthService
	HabitService     *service.HabitService
	GoalService      *service.GoalService
	ScoringService   *service.ScoringService
	DashboardService *service.DashboardService
	RateLimiter      *middleware.RateLimiter
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	clk, err := clock.NewSystem(cfg.Timezone)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to initialize clock: %w", err)
	}

	a := Wire(cfg, database, clk)
	return a, nil
}

// Wire builds the service graph on an already migrated database.
func Wire(cfg *config.Config, database *sqlx.DB, clk clock.Clock) *App {
	// Repositories
	habitRepository := repository.NewHabitRepository(database)
	goalRepository := repository.NewGoalRepository(database)
	completionRepository := repository.NewCompletionRepository(database)

	// Services
	authService := service.NewAuthService(cfg.JWTSecret, cfg.JWTExpiry)
	habitService := service.NewHabitService(habitRepository, clk)
	goalService := service.NewGoalService(goalRepository, clk)
	scoringService := service.NewScoringService(repository.NewTransactor(database), clk)
	dashboardService := service.NewDashboardService(completionRepository, clk)

	return &App{
		Cfg:              cfg,
		DB:               database,
		Clock:            clk,
		AuthService:      authService,
		HabitService:     habitService,
		GoalService:      goalService,
		ScoringService:   scoringService,
		DashboardService: dashboardService,
		RateLimiter:      middleware.NewRateLimiter(cfg.RateLimitPerMinute, cfg.RateLimitBurst),
	}
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
