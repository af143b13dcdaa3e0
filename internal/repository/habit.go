package repository

import (
	"database/sql"
	"errors"

	"github.com/shidoapp/shido/internal/model"
)

type HabitRepository interface {
	Create(habit *model.Habit) error
	ByID(userID, habitID string) (*model.Habit, error)
	Habits(userID string) ([]*model.Habit, error)
	Update(habit *model.Habit) error
	Deactivate(userID, habitID string) error
}

type habitRepository struct {
	db Querier
}

func NewHabitRepository(db Querier) HabitRepository {
	return &habitRepository{db: db}
}

func (r *habitRepository) Create(habit *model.Habit) error {
	query := `INSERT INTO habits (id, user_id, name, habit_type, points, goal_id, confirmation_message, active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Exec(query,
		habit.ID,
		habit.UserID,
		habit.Name,
		string(habit.Type),
		habit.Points,
		habit.GoalID,
		habit.ConfirmationMessage,
		habit.Active,
		habit.CreatedAt,
		habit.UpdatedAt,
	)

	return storageError("create habit", err)
}

// ByID returns active habits only; inactive ones read as not found.
func (r *habitRepository) ByID(userID, habitID string) (*model.Habit, error) {
	habit := &model.Habit{}
	query := `SELECT * FROM habits WHERE id = $1 AND user_id = $2 AND active = TRUE`

	err := r.db.Get(habit, query, habitID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrHabitNotFound
	}
	if err != nil {
		return nil, storageError("get habit", err)
	}

	return habit, nil
}

// Habits lists active habits: positive before negative, then by points
// descending. Newer habits win remaining ties.
func (r *habitRepository) Habits(userID string) ([]*model.Habit, error) {
	habits := []*model.Habit{}

	query := `SELECT * FROM habits
	          WHERE user_id = $1 AND active = TRUE
	          ORDER BY CASE habit_type WHEN 'positive' THEN 0 ELSE 1 END ASC,
	                   points DESC,
	                   created_at DESC,
	                   id ASC`

	err := r.db.Select(&habits, query, userID)
	if err != nil {
		return nil, storageError("list habits", err)
	}

	return habits, nil
}

func (r *habitRepository) Update(habit *model.Habit) error {
	query := `UPDATE habits
	          SET name = $1, habit_type = $2, points = $3, goal_id = $4, confirmation_message = $5, updated_at = $6
	          WHERE id = $7 AND user_id = $8 AND active = TRUE`

	result, err := r.db.Exec(query,
		habit.Name,
		string(habit.Type),
		habit.Points,
		habit.GoalID,
		habit.ConfirmationMessage,
		habit.UpdatedAt,
		habit.ID,
		habit.UserID,
	)
	if err != nil {
		return storageError("update habit", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return storageError("update habit", err)
	}

	if rows == 0 {
		return ErrHabitNotFound
	}

	return nil
}

// Deactivate soft-deletes a habit. Repeating it on an inactive habit is a
// no-op; only an unknown id is an error. Log entries are never touched.
func (r *habitRepository) Deactivate(userID, habitID string) error {
	query := `UPDATE habits SET active = FALSE WHERE id = $1 AND user_id = $2`

	result, err := r.db.Exec(query, habitID, userID)
	if err != nil {
		return storageError("deactivate habit", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return storageError("deactivate habit", err)
	}

	if rows == 0 {
		return ErrHabitNotFound
	}

	return nil
}
