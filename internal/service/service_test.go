package service_test

import (
	"testing"
	"time"

	"github.com/shidoapp/shido/internal/clock"
	"github.com/shidoapp/shido/internal/db/dbtest"
	"github.com/shidoapp/shido/internal/model"
	"github.com/shidoapp/shido/internal/repository"
	"github.com/shidoapp/shido/internal/service"
	"github.com/stretchr/testify/require"
)

var morning = time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)

type env struct {
	clock       *clock.Fixed
	habitRepo   repository.HabitRepository
	goalRepo    repository.GoalRepository
	completions repository.CompletionRepository
	tx          repository.Transactor
	habits      *service.HabitService
	goals       *service.GoalService
	scoring     *service.ScoringService
	dashboard   *service.DashboardService
}

func setup(t *testing.T) *env {
	t.Helper()

	database := dbtest.New(t)
	clk := clock.NewFixed(morning)

	e := &env{
		clock:       clk,
		habitRepo:   repository.NewHabitRepository(database),
		goalRepo:    repository.NewGoalRepository(database),
		completions: repository.NewCompletionRepository(database),
		tx:          repository.NewTransactor(database),
	}
	e.habits = service.NewHabitService(e.habitRepo, clk)
	e.goals = service.NewGoalService(e.goalRepo, clk)
	e.scoring = service.NewScoringService(e.tx, clk)
	e.dashboard = service.NewDashboardService(e.completions, clk)
	return e
}

func (e *env) goal(t *testing.T, userID, name string, target int) *model.Goal {
	t.Helper()
	g, err := e.goals.Create(userID, model.GoalDraft{Name: name, TargetPoints: target})
	require.NoError(t, err)
	return g
}

func (e *env) habit(t *testing.T, userID, name string, habitType model.HabitType, points int, goal *model.Goal) *model.Habit {
	t.Helper()
	draft := model.HabitDraft{Name: name, Type: habitType, Points: points}
	if goal != nil {
		draft.GoalID = &goal.ID
	}
	h, err := e.habits.Create(userID, draft)
	require.NoError(t, err)
	return h
}
