package service

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shidoapp/shido/internal/clock"
	"github.com/shidoapp/shido/internal/model"
	"github.com/shidoapp/shido/internal/repository"
	"github.com/shidoapp/shido/internal/validation"
)

type GoalService struct {
	repo  repository.GoalRepository
	clock clock.Clock
}

func NewGoalService(repo repository.GoalRepository, clk clock.Clock) *GoalService {
	return &GoalService{
		repo:  repo,
		clock: clk,
	}
}

func validateGoal(name string, target int) error {
	if err := validation.ValidateName(name); err != nil {
		return invalid("name", err)
	}
	if err := validation.ValidateTarget(target); err != nil {
		return invalid("target_points", err)
	}
	return nil
}

func (s *GoalService) Create(userID string, draft model.GoalDraft) (*model.Goal, error) {
	if err := validateGoal(draft.Name, draft.TargetPoints); err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	goal := &model.Goal{
		ID:            uuid.New().String(),
		UserID:        userID,
		Name:          strings.TrimSpace(draft.Name),
		TargetPoints:  draft.TargetPoints,
		CurrentPoints: 0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err := s.repo.Create(goal)
	if err != nil {
		return nil, err
	}

	return goal, nil
}

func (s *GoalService) ByID(userID, goalID string) (*model.Goal, error) {
	return s.repo.ByID(userID, goalID)
}

func (s *GoalService) Goals(userID string) ([]*model.Goal, error) {
	return s.repo.Goals(userID)
}

// Update renames or retargets a goal. Accumulated points are untouched.
func (s *GoalService) Update(userID, goalID, name string, targetPoints int) (*model.Goal, error) {
	if err := validateGoal(name, targetPoints); err != nil {
		return nil, err
	}

	goal, err := s.repo.ByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	goal.Name = strings.TrimSpace(name)
	goal.TargetPoints = targetPoints
	goal.UpdatedAt = s.clock.Now().UTC()

	err = s.repo.Update(goal)
	if err != nil {
		return nil, err
	}

	return goal, nil
}

// AdjustPoints is the only way current points change. The repository
// applies the delta atomically, so there is no read before the write.
func (s *GoalService) AdjustPoints(userID, goalID string, delta int) (*model.Goal, error) {
	return s.repo.AdjustPoints(userID, goalID, delta, s.clock.Now().UTC())
}

// Delete removes the goal only. Habits keep their goal id, which readers
// then resolve as "no goal".
func (s *GoalService) Delete(userID, goalID string) error {
	return s.repo.Delete(userID, goalID)
}
