package installer

import (
	"errors"
	"fmt"
)

var (
	// ErrTargetNotFound is returned when the game directory does not exist.
	ErrTargetNotFound = errors.New("minecraft folder not found, install Java Edition first")
	// ErrRuntimeNotFound is returned when the payload has no Java runtime.
	ErrRuntimeNotFound = errors.New("bundled Java not found")

	errOptionsNotSet = errors.New("installer options are not set")
)

// FatalError is the single failure kind of Run. Err carries the cause and is
// matchable with errors.Is.
type FatalError struct {
	Step Step
	Err  error
}

// Error returns the human-readable cause.
func (e *FatalError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("step %s failed", e.Step)
	}

	return e.Err.Error()
}

// Unwrap returns the cause.
func (e *FatalError) Unwrap() error {
	return e.Err
}
