package automaton

import (
	"errors"
	"fmt"
)

// Domain errors for world construction and cell access.
var (
	// ErrInvalidIndex indicates a cell index outside [0, size).
	ErrInvalidIndex = errors.New("automaton: cell index out of range")

	// ErrInvalidSize indicates a world constructed with fewer than one cell.
	ErrInvalidSize = errors.New("automaton: world size must be at least 1")

	// ErrInvalidRule indicates a rule number outside 0-255.
	ErrInvalidRule = errors.New("automaton: rule must be in 0-255")
)

// IndexError wraps ErrInvalidIndex with the offending index.
type IndexError struct {
	Index int
	Size  int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: index %d, size %d", ErrInvalidIndex, e.Index, e.Size)
}

func (e *IndexError) Unwrap() error {
	return ErrInvalidIndex
}

// ParseRule converts an integer rule number to a rule byte.
func ParseRule(n int) (uint8, error) {
	if n < 0 || n > 255 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidRule, n)
	}
	return uint8(n), nil
}
