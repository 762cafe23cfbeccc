package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrNegativeGenerations indicates a run configured with fewer than zero generations.
	ErrNegativeGenerations = errors.New("sim: generations must not be negative")

	// ErrNoWorld indicates a simulator built without a world.
	ErrNoWorld = errors.New("sim: no world")
)

// RunError records the generation at which a run stopped.
type RunError struct {
	Generation int
	Wrapped    error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("generation %d: %v", e.Generation, e.Wrapped)
}

func (e *RunError) Unwrap() error {
	return e.Wrapped
}
