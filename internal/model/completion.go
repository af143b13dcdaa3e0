package model

import (
	"time"
)

// Completion is one entry of the append-only completion log. GoalID is the
// habit's goal at the moment the entry was written and is not updated when
// the habit is repointed later.
type Completion struct {
	ID            string    `db:"id" json:"id"`
	UserID        string    `db:"user_id" json:"-"`
	HabitID       string    `db:"habit_id" json:"habit_id"`
	HabitType     HabitType `db:"habit_type" json:"habit_type"`
	GoalID        *string   `db:"goal_id" json:"goal_id"`
	PointsApplied int       `db:"points_applied" json:"points_applied"`
	LoggedAt      time.Time `db:"logged_at" json:"logged_at"`
	LogDate       Date      `db:"log_date" json:"log_date"`
}

type DailyScore struct {
	Date  Date `db:"log_date" json:"date"`
	Score int  `db:"score" json:"score"`
}
