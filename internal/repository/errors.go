package repository

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("not found")

var (
	ErrHabitNotFound = fmt.Errorf("habit %w", ErrNotFound)
	ErrGoalNotFound  = fmt.Errorf("goal %w", ErrNotFound)

	// ErrCompletionConflict is returned when the store rejects a second
	// entry for a positive habit on the same day.
	ErrCompletionConflict = errors.New("completion already logged for this day")
)

// StorageError wraps a failure of the underlying record store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}
