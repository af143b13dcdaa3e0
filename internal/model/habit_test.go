package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHabitType(t *testing.T) {
	tests := []struct {
		in      string
		want    HabitType
		wantErr bool
	}{
		{"positive", HabitTypePositive, false},
		{"negative", HabitTypeNegative, false},
		{"0", HabitTypePositive, false},
		{"1", HabitTypeNegative, false},
		{" Positive ", HabitTypePositive, false},
		{"2", "", true},
		{"", "", true},
		{"good", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHabitType(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidHabitType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHabitTypeUnmarshalJSON(t *testing.T) {
	var draft HabitDraft
	err := json.Unmarshal([]byte(`{"name":"Workout","type":"positive","points":10}`), &draft)
	require.NoError(t, err)
	assert.Equal(t, HabitTypePositive, draft.Type)

	err = json.Unmarshal([]byte(`{"name":"Relapse","type":1,"points":5}`), &draft)
	require.NoError(t, err)
	assert.Equal(t, HabitTypeNegative, draft.Type)

	err = json.Unmarshal([]byte(`{"type":3}`), &draft)
	assert.ErrorIs(t, err, ErrInvalidHabitType)

	err = json.Unmarshal([]byte(`{"type":true}`), &draft)
	assert.ErrorIs(t, err, ErrInvalidHabitType)
}

func TestPointsApplied(t *testing.T) {
	workout := &Habit{Type: HabitTypePositive, Points: 10}
	relapse := &Habit{Type: HabitTypeNegative, Points: 5}
	free := &Habit{Type: HabitTypeNegative, Points: 0}

	assert.Equal(t, 10, workout.PointsApplied())
	assert.Equal(t, -5, relapse.PointsApplied())
	assert.Equal(t, 0, free.PointsApplied())
}

func TestHasGoal(t *testing.T) {
	empty := ""
	id := "goal-1"

	assert.False(t, (&Habit{}).HasGoal())
	assert.False(t, (&Habit{GoalID: &empty}).HasGoal())
	assert.True(t, (&Habit{GoalID: &id}).HasGoal())
}
