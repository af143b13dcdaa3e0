package service

import (
	"errors"
	"fmt"

	"github.com/shidoapp/shido/internal/repository"
)

// ErrAlreadyCompleted rejects a second completion of a positive habit on
// the same day. It is a benign outcome, not a fault.
var ErrAlreadyCompleted = errors.New("habit already completed today")

// ValidationError reports bad input. It is always returned before any write.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func invalid(field string, err error) error {
	return &ValidationError{Field: field, Message: err.Error()}
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}

func IsStorage(err error) bool {
	var s *repository.StorageError
	return errors.As(err, &s)
}
