package validation

import "errors"

var (
	ErrNegativePoints = errors.New("points must not be negative")
	ErrInvalidTarget  = errors.New("target points must be greater than zero")
)

// ValidatePoints checks a habit's point magnitude. The sign comes from the
// habit type, so the stored value is never negative.
func ValidatePoints(points int) error {
	if points < 0 {
		return ErrNegativePoints
	}
	return nil
}

func ValidateTarget(target int) error {
	if target <= 0 {
		return ErrInvalidTarget
	}
	return nil
}
