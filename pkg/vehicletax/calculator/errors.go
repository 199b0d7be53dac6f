package calculator

import (
	"errors"
	"fmt"
)

// ErrNavigation matches every NavigationError.
var ErrNavigation = errors.New("navigation error")

// NavigationError is returned when a navigation command runs against its
// boundary. The cursor is left unchanged.
type NavigationError struct {
	Op     string
	Reason string
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func (e *NavigationError) Unwrap() error { return ErrNavigation }

// Reasons reported by the navigation commands.
const (
	ReasonAlreadyFirst = "already at the first vehicle"
	ReasonAtFirst      = "at the first vehicle"
	ReasonAtLast       = "at the last vehicle"
	ReasonAlreadyLast  = "already at the last vehicle"
	ReasonOutOfRange   = "position out of range"
)
