package repository

import (
	"database/sql"
	"log/slog"

	"github.com/jmoiron/sqlx"
)

// Querier is satisfied by both *sqlx.DB and *sqlx.Tx, so every repository
// can run either on the pool or inside a transaction.
type Querier interface {
	sqlx.Ext
	QueryRow(query string, args ...any) *sql.Row
	Get(dest any, query string, args ...any) error
	Select(dest any, query string, args ...any) error
}

// Repos groups the repositories bound to one transaction.
type Repos struct {
	Habits      HabitRepository
	Goals       GoalRepository
	Completions CompletionRepository
}

// Transactor runs fn against repositories sharing a single transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
type Transactor interface {
	InTx(fn func(r Repos) error) error
}

type sqlTransactor struct {
	db *sqlx.DB
}

func NewTransactor(db *sqlx.DB) Transactor {
	return &sqlTransactor{db: db}
}

func (t *sqlTransactor) InTx(fn func(r Repos) error) (err error) {
	tx, err := t.db.Beginx()
	if err != nil {
		return storageError("begin transaction", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	err = fn(Repos{
		Habits:      NewHabitRepository(tx),
		Goals:       NewGoalRepository(tx),
		Completions: NewCompletionRepository(tx),
	})
	if err != nil {
		rbErr := tx.Rollback()
		if rbErr != nil {
			slog.Error("failed to roll back transaction", "error", rbErr, "cause", err)
		}
		return err
	}

	err = tx.Commit()
	if err != nil {
		return storageError("commit transaction", err)
	}
	return nil
}
