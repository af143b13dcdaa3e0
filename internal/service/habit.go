package service

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shidoapp/shido/internal/clock"
	"github.com/shidoapp/shido/internal/model"
	"github.com/shidoapp/shido/internal/repository"
	"github.com/shidoapp/shido/internal/validation"
)

type HabitService struct {
	repo  repository.HabitRepository
	clock clock.Clock
}

func NewHabitService(repo repository.HabitRepository, clk clock.Clock) *HabitService {
	return &HabitService{
		repo:  repo,
		clock: clk,
	}
}

func validateHabit(name string, habitType model.HabitType, points int) error {
	if err := validation.ValidateName(name); err != nil {
		return invalid("name", err)
	}
	if !habitType.Valid() {
		return invalid("type", model.ErrInvalidHabitType)
	}
	if err := validation.ValidatePoints(points); err != nil {
		return invalid("points", err)
	}
	return nil
}

func normalizeGoalID(goalID *string) *string {
	if goalID == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*goalID)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func (s *HabitService) Create(userID string, draft model.HabitDraft) (*model.Habit, error) {
	if err := validateHabit(draft.Name, draft.Type, draft.Points); err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	habit := &model.Habit{
		ID:                  uuid.New().String(),
		UserID:              userID,
		Name:                strings.TrimSpace(draft.Name),
		Type:                draft.Type,
		Points:              draft.Points,
		GoalID:              normalizeGoalID(draft.GoalID),
		ConfirmationMessage: draft.ConfirmationMessage,
		Active:              true,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	err := s.repo.Create(habit)
	if err != nil {
		return nil, err
	}

	return habit, nil
}

func (s *HabitService) ByID(userID, habitID string) (*model.Habit, error) {
	return s.repo.ByID(userID, habitID)
}

func (s *HabitService) List(userID string) ([]*model.Habit, error) {
	return s.repo.Habits(userID)
}

func (s *HabitService) Update(userID, habitID string, patch model.HabitPatch) (*model.Habit, error) {
	habit, err := s.repo.ByID(userID, habitID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		habit.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Type != nil {
		habit.Type = *patch.Type
	}
	if patch.Points != nil {
		habit.Points = *patch.Points
	}
	if patch.ConfirmationMessage != nil {
		habit.ConfirmationMessage = *patch.ConfirmationMessage
	}
	if patch.ClearGoal {
		habit.GoalID = nil
	} else if patch.GoalID != nil {
		habit.GoalID = normalizeGoalID(patch.GoalID)
	}

	if err := validateHabit(habit.Name, habit.Type, habit.Points); err != nil {
		return nil, err
	}

	habit.UpdatedAt = s.clock.Now().UTC()
	err = s.repo.Update(habit)
	if err != nil {
		return nil, err
	}

	return habit, nil
}

// Deactivate hides the habit from every view. Its log entries stay valid.
func (s *HabitService) Deactivate(userID, habitID string) error {
	return s.repo.Deactivate(userID, habitID)
}
