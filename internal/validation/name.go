package validation

import (
	"errors"
	"strings"
)

const maxNameLength = 100

var (
	ErrNameRequired = errors.New("name is required")
	ErrNameTooLong  = errors.New("name is too long (max 100 characters)")
)

// ValidateName validates habit and goal names
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)

	if trimmed == "" {
		return ErrNameRequired
	}

	if len([]rune(trimmed)) > maxNameLength {
		return ErrNameTooLong
	}

	return nil
}
