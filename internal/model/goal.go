package model

import (
	"time"
)

type Goal struct {
	ID            string    `db:"id"`
	UserID        string    `db:"user_id"`
	Name          string    `db:"name"`
	TargetPoints  int       `db:"target_points"`
	CurrentPoints int       `db:"current_points"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// Phase is always derived from the two point counters, never stored.
func (g *Goal) Phase() Phase {
	return ClassifyPhase(g.CurrentPoints, g.TargetPoints)
}

func (g *Goal) Percentage() int {
	return Percentage(g.CurrentPoints, g.TargetPoints)
}

type GoalDraft struct {
	Name         string `json:"name"`
	TargetPoints int    `json:"target_points"`
}
