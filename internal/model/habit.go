package model

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

type HabitType string

const (
	HabitTypePositive HabitType = "positive"
	HabitTypeNegative HabitType = "negative"
)

var ErrInvalidHabitType = errors.New("invalid habit type")

// ParseHabitType converts the external representations of a habit type into
// the canonical enum. Older clients send 0 for positive and 1 for negative.
func ParseHabitType(s string) (HabitType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "positive", "0":
		return HabitTypePositive, nil
	case "negative", "1":
		return HabitTypeNegative, nil
	}
	return "", ErrInvalidHabitType
}

func (t HabitType) Valid() bool {
	return t == HabitTypePositive || t == HabitTypeNegative
}

// Sign is +1 for positive habits and -1 for negative ones.
func (t HabitType) Sign() int {
	if t == HabitTypeNegative {
		return -1
	}
	return 1
}

func (t *HabitType) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	var s string
	switch v := raw.(type) {
	case string:
		s = v
	case float64:
		switch v {
		case 0:
			s = "0"
		case 1:
			s = "1"
		default:
			return ErrInvalidHabitType
		}
	default:
		return ErrInvalidHabitType
	}

	parsed, err := ParseHabitType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

type Habit struct {
	ID                  string    `db:"id" json:"id"`
	UserID              string    `db:"user_id" json:"-"`
	Name                string    `db:"name" json:"name"`
	Type                HabitType `db:"habit_type" json:"type"`
	Points              int       `db:"points" json:"points"`
	GoalID              *string   `db:"goal_id" json:"goal_id"`
	ConfirmationMessage string    `db:"confirmation_message" json:"confirmation_message"`
	Active              bool      `db:"active" json:"active"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time `db:"updated_at" json:"updated_at"`
}

// PointsApplied is the signed delta a single completion of the habit produces.
func (h *Habit) PointsApplied() int {
	return h.Type.Sign() * h.Points
}

func (h *Habit) HasGoal() bool {
	return h.GoalID != nil && *h.GoalID != ""
}

type HabitDraft struct {
	Name                string    `json:"name"`
	Type                HabitType `json:"type"`
	Points              int       `json:"points"`
	GoalID              *string   `json:"goal_id"`
	ConfirmationMessage string    `json:"confirmation_message"`
}

// HabitPatch carries the fields of an edit. Nil fields are left unchanged;
// ClearGoal detaches the habit from its goal.
type HabitPatch struct {
	Name                *string    `json:"name"`
	Type                *HabitType `json:"type"`
	Points              *int       `json:"points"`
	GoalID              *string    `json:"goal_id"`
	ClearGoal           bool       `json:"clear_goal"`
	ConfirmationMessage *string    `json:"confirmation_message"`
}
