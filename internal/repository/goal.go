package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/shidoapp/shido/internal/model"
)

type GoalRepository interface {
	Create(goal *model.Goal) error
	ByID(userID, goalID string) (*model.Goal, error)
	Goals(userID string) ([]*model.Goal, error)
	Update(goal *model.Goal) error
	AdjustPoints(userID, goalID string, delta int, updatedAt time.Time) (*model.Goal, error)
	Delete(userID, goalID string) error
}

type goalRepository struct {
	db Querier
}

func NewGoalRepository(db Querier) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(goal *model.Goal) error {
	query := `INSERT INTO goals (id, user_id, name, target_points, current_points, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(query,
		goal.ID,
		goal.UserID,
		goal.Name,
		goal.TargetPoints,
		goal.CurrentPoints,
		goal.CreatedAt,
		goal.UpdatedAt,
	)

	return storageError("create goal", err)
}

func (r *goalRepository) ByID(userID, goalID string) (*model.Goal, error) {
	goal := &model.Goal{}
	query := `SELECT * FROM goals WHERE id = $1 AND user_id = $2`

	err := r.db.Get(goal, query, goalID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, storageError("get goal", err)
	}

	return goal, nil
}

func (r *goalRepository) Goals(userID string) ([]*model.Goal, error) {
	goals := []*model.Goal{}
	query := `SELECT * FROM goals WHERE user_id = $1 ORDER BY created_at DESC, id ASC`

	err := r.db.Select(&goals, query, userID)
	if err != nil {
		return nil, storageError("list goals", err)
	}

	return goals, nil
}

// Update changes the goal definition. current_points is not in
// the SET list; AdjustPoints is its only writer.
func (r *goalRepository) Update(goal *model.Goal) error {
	query := `UPDATE goals
	          SET name = $1, target_points = $2, updated_at = $3
	          WHERE id = $4 AND user_id = $5`

	result, err := r.db.Exec(query,
		goal.Name,
		goal.TargetPoints,
		goal.UpdatedAt,
		goal.ID,
		goal.UserID,
	)
	if err != nil {
		return storageError("update goal", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return storageError("update goal", err)
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}

// AdjustPoints adds delta to current_points in a single statement and
// returns the row as written. The increment happens inside the database so
// concurrent adjustments of the same goal cannot lose an update.
func (r *goalRepository) AdjustPoints(userID, goalID string, delta int, updatedAt time.Time) (*model.Goal, error) {
	goal := &model.Goal{}
	query := `UPDATE goals
	          SET current_points = current_points + $1, updated_at = $2
	          WHERE id = $3 AND user_id = $4
	          RETURNING *`

	err := r.db.Get(goal, query, delta, updatedAt, goalID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, storageError("adjust goal points", err)
	}

	return goal, nil
}

func (r *goalRepository) Delete(userID, goalID string) error {
	query := `DELETE FROM goals WHERE id = $1 AND user_id = $2`
	result, err := r.db.Exec(query, goalID, userID)
	if err != nil {
		return storageError("delete goal", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return storageError("delete goal", err)
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}
