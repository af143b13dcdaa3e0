package service

import (
	"errors"
	"time"

	"github.com/shidoapp/shido/internal/clock"
	"github.com/shidoapp/shido/internal/model"
	"github.com/shidoapp/shido/internal/repository"
)

var ErrInvalidRange = errors.New("calendar range end is before its start")

// maxCalendarDays bounds a single calendar query to about a year.
const maxCalendarDays = 366

type TodaySummary struct {
	Date              model.Date
	Score             int
	CompletedHabitIDs map[string]struct{}
}

func (s *TodaySummary) Completed(habitID string) bool {
	_, ok := s.CompletedHabitIDs[habitID]
	return ok
}

type Calendar struct {
	From       model.Date
	To         model.Date
	Days       []model.DailyScore
	ActiveDays int
	BestDay    int
}

type DashboardService struct {
	completions repository.CompletionRepository
	clock       clock.Clock
}

func NewDashboardService(completions repository.CompletionRepository, clk clock.Clock) *DashboardService {
	return &DashboardService{
		completions: completions,
		clock:       clk,
	}
}

func (s *DashboardService) Today() model.Date {
	return s.clock.Today()
}

// TodaySummary is computed from today's log entries alone. Negative habits
// are never "done" and so never appear in CompletedHabitIDs.
func (s *DashboardService) TodaySummary(userID string) (*TodaySummary, error) {
	today := s.clock.Today()

	entries, err := s.completions.ListForDate(userID, today)
	if err != nil {
		return nil, err
	}

	summary := &TodaySummary{
		Date:              today,
		CompletedHabitIDs: make(map[string]struct{}),
	}
	for _, e := range entries {
		summary.Score += e.PointsApplied
		if e.HabitType == model.HabitTypePositive {
			summary.CompletedHabitIDs[e.HabitID] = struct{}{}
		}
	}

	return summary, nil
}

func (s *DashboardService) LifetimeScore(userID string) (int, error) {
	return s.completions.LifetimeScore(userID)
}

// Calendar returns per-day scores for the inclusive range. Days without
// entries are omitted. BestDay is never below zero.
func (s *DashboardService) Calendar(userID string, from, to model.Date) (*Calendar, error) {
	if to.Before(from) {
		return nil, invalid("to", ErrInvalidRange)
	}
	if from.AddDays(maxCalendarDays).Before(to) {
		return nil, &ValidationError{Field: "to", Message: "range is longer than one year"}
	}

	days, err := s.completions.DailyScores(userID, from, to)
	if err != nil {
		return nil, err
	}

	cal := &Calendar{From: from, To: to, Days: days}
	for _, d := range days {
		if d.Score > 0 {
			cal.ActiveDays++
		}
		if d.Score > cal.BestDay {
			cal.BestDay = d.Score
		}
	}

	return cal, nil
}

// Month is Calendar for the month containing day.
func (s *DashboardService) Month(userID string, day model.Date) (*Calendar, error) {
	first := model.Date{Year: day.Year, Month: day.Month, Day: 1}
	last := model.DateOf(first.In(time.UTC).AddDate(0, 1, -1))
	return s.Calendar(userID, first, last)
}

// History is the user's whole completion log, newest first.
func (s *DashboardService) History(userID string) ([]*model.Completion, error) {
	return s.completions.ListForUser(userID)
}
