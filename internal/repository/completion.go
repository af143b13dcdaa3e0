package repository

import (
	"github.com/shidoapp/shido/internal/db"
	"github.com/shidoapp/shido/internal/model"
)

// CompletionRepository is the append-only completion log. Entries are never
// updated or deleted.
type CompletionRepository interface {
	Append(entry *model.Completion) error
	ExistsForDate(userID, habitID string, date model.Date) (bool, error)
	ListForDate(userID string, date model.Date) ([]*model.Completion, error)
	ListForUser(userID string) ([]*model.Completion, error)
	DailyScore(userID string, date model.Date) (int, error)
	LifetimeScore(userID string) (int, error)
	DailyScores(userID string, from, to model.Date) ([]model.DailyScore, error)
}

type completionRepository struct {
	db Querier
}

func NewCompletionRepository(db Querier) CompletionRepository {
	return &completionRepository{db: db}
}

// Append inserts the entry. The partial unique index on positive habits is
// the authority on once-per-day; a rejected insert comes back as
// ErrCompletionConflict.
func (r *completionRepository) Append(entry *model.Completion) error {
	query := `INSERT INTO completion_log (id, user_id, habit_id, habit_type, goal_id, points_applied, logged_at, log_date)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(query,
		entry.ID,
		entry.UserID,
		entry.HabitID,
		string(entry.HabitType),
		entry.GoalID,
		entry.PointsApplied,
		entry.LoggedAt,
		entry.LogDate,
	)
	if db.IsUniqueViolation(err) {
		return ErrCompletionConflict
	}

	return storageError("append completion", err)
}

// ExistsForDate looks for a positive entry only, matching the unique index.
// Entries written while the habit was negative do not block it.
func (r *completionRepository) ExistsForDate(userID, habitID string, date model.Date) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM completion_log
	          WHERE user_id = $1 AND habit_id = $2 AND log_date = $3 AND habit_type = 'positive'`

	err := r.db.QueryRow(query, userID, habitID, date).Scan(&count)
	if err != nil {
		return false, storageError("check completion", err)
	}

	return count > 0, nil
}

func (r *completionRepository) ListForDate(userID string, date model.Date) ([]*model.Completion, error) {
	entries := []*model.Completion{}
	query := `SELECT * FROM completion_log WHERE user_id = $1 AND log_date = $2 ORDER BY logged_at ASC, id ASC`

	err := r.db.Select(&entries, query, userID, date)
	if err != nil {
		return nil, storageError("list completions for date", err)
	}

	return entries, nil
}

// ListForUser returns the user's whole log, newest first.
func (r *completionRepository) ListForUser(userID string) ([]*model.Completion, error) {
	entries := []*model.Completion{}
	query := `SELECT * FROM completion_log WHERE user_id = $1 ORDER BY logged_at DESC, id DESC`

	err := r.db.Select(&entries, query, userID)
	if err != nil {
		return nil, storageError("list completions", err)
	}

	return entries, nil
}

func (r *completionRepository) DailyScore(userID string, date model.Date) (int, error) {
	var score int
	query := `SELECT COALESCE(SUM(points_applied), 0) FROM completion_log WHERE user_id = $1 AND log_date = $2`

	err := r.db.QueryRow(query, userID, date).Scan(&score)
	if err != nil {
		return 0, storageError("daily score", err)
	}

	return score, nil
}

func (r *completionRepository) LifetimeScore(userID string) (int, error) {
	var score int
	query := `SELECT COALESCE(SUM(points_applied), 0) FROM completion_log WHERE user_id = $1`

	err := r.db.QueryRow(query, userID).Scan(&score)
	if err != nil {
		return 0, storageError("lifetime score", err)
	}

	return score, nil
}

// DailyScores returns one row per day in [from, to] that has entries.
func (r *completionRepository) DailyScores(userID string, from, to model.Date) ([]model.DailyScore, error) {
	scores := []model.DailyScore{}
	query := `SELECT log_date, COALESCE(SUM(points_applied), 0) AS score
	          FROM completion_log
	          WHERE user_id = $1 AND log_date >= $2 AND log_date <= $3
	          GROUP BY log_date
	          ORDER BY log_date ASC`

	err := r.db.Select(&scores, query, userID, from, to)
	if err != nil {
		return nil, storageError("daily scores", err)
	}

	return scores, nil
}
