package service

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shidoapp/shido/internal/clock"
	"github.com/shidoapp/shido/internal/metrics"
	"github.com/shidoapp/shido/internal/model"
	"github.com/shidoapp/shido/internal/repository"
)

// CompletionResult is the state after a recorded completion. Goal is nil
// when the habit has no goal or its goal no longer exists.
type CompletionResult struct {
	Completion          *model.Completion
	ConfirmationMessage string
	DailyScore          int
	LifetimeScore       int
	Goal                *model.Goal
}

type ScoringService struct {
	tx    repository.Transactor
	clock clock.Clock
}

func NewScoringService(tx repository.Transactor, clk clock.Clock) *ScoringService {
	return &ScoringService{
		tx:    tx,
		clock: clk,
	}
}

// RecordCompletion logs one trigger of a habit and applies its points.
//
// A positive habit counts once per local day; a repeat returns
// ErrAlreadyCompleted and changes nothing. Negative habits may be logged any
// number of times. The log entry, the goal adjustment and the score reads
// share one transaction, so any failure leaves no trace.
func (s *ScoringService) RecordCompletion(userID, habitID string) (*CompletionResult, error) {
	var (
		result    *CompletionResult
		habitType = "unknown"
	)

	err := s.tx.InTx(func(r repository.Repos) error {
		habit, err := r.Habits.ByID(userID, habitID)
		if err != nil {
			return err
		}
		habitType = string(habit.Type)

		result, err = s.record(r, userID, habit, s.clock.Now())
		return err
	})

	switch {
	case err == nil:
		if result.Completion.GoalID != nil && *result.Completion.GoalID != "" {
			if result.Goal != nil {
				metrics.RecordGoalAdjustment("applied")
			} else {
				metrics.RecordGoalAdjustment("skipped")
			}
		}
		metrics.RecordCompletion(habitType, metrics.OutcomeRecorded, result.Completion.PointsApplied)
		slog.Debug("completion recorded",
			"user_id", userID,
			"habit_id", habitID,
			"points", result.Completion.PointsApplied,
			"log_date", result.Completion.LogDate.String(),
			"daily_score", result.DailyScore,
		)
		return result, nil
	case errors.Is(err, ErrAlreadyCompleted):
		metrics.RecordCompletion(habitType, metrics.OutcomeAlreadyCompleted, 0)
	case errors.Is(err, repository.ErrHabitNotFound):
		metrics.RecordCompletion(habitType, metrics.OutcomeNotFound, 0)
	default:
		metrics.RecordCompletion(habitType, metrics.OutcomeError, 0)
	}
	return nil, err
}

func (s *ScoringService) record(r repository.Repos, userID string, habit *model.Habit, now time.Time) (*CompletionResult, error) {
	today := model.DateOf(now)

	// Early exit only; the unique index decides races.
	if habit.Type == model.HabitTypePositive {
		done, err := r.Completions.ExistsForDate(userID, habit.ID, today)
		if err != nil {
			return nil, err
		}
		if done {
			return nil, ErrAlreadyCompleted
		}
	}

	entry := &model.Completion{
		ID:            uuid.Must(uuid.NewV7()).String(),
		UserID:        userID,
		HabitID:       habit.ID,
		HabitType:     habit.Type,
		GoalID:        habit.GoalID,
		PointsApplied: habit.PointsApplied(),
		LoggedAt:      now.UTC(),
		LogDate:       today,
	}

	err := r.Completions.Append(entry)
	if errors.Is(err, repository.ErrCompletionConflict) {
		return nil, ErrAlreadyCompleted
	}
	if err != nil {
		return nil, err
	}

	goal, err := applyToGoal(r.Goals, habit, entry)
	if err != nil {
		return nil, err
	}

	daily, err := r.Completions.DailyScore(userID, today)
	if err != nil {
		return nil, err
	}

	lifetime, err := r.Completions.LifetimeScore(userID)
	if err != nil {
		return nil, err
	}

	return &CompletionResult{
		Completion:          entry,
		ConfirmationMessage: habit.ConfirmationMessage,
		DailyScore:          daily,
		LifetimeScore:       lifetime,
		Goal:                goal,
	}, nil
}

// applyToGoal adjusts the goal named by the entry. A goal that has been
// deleted is skipped.
func applyToGoal(goals repository.GoalRepository, habit *model.Habit, entry *model.Completion) (*model.Goal, error) {
	if !habit.HasGoal() {
		return nil, nil
	}

	goal, err := goals.AdjustPoints(entry.UserID, *entry.GoalID, entry.PointsApplied, entry.LoggedAt)
	if errors.Is(err, repository.ErrGoalNotFound) {
		slog.Debug("habit goal no longer exists, skipping adjustment",
			"user_id", entry.UserID,
			"habit_id", habit.ID,
			"goal_id", *entry.GoalID,
		)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return goal, nil
}
