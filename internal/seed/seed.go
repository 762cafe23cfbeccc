// Package seed establishes the initial generation of a world.
package seed

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/san-kum/eca/internal/automaton"
)

// RandomStart selects random seeding in FromStart.
const RandomStart = "RANDOM"

var (
	ErrUnknownChar        = errors.New("seed: unknown character in start pattern")
	ErrInvalidProbability = errors.New("seed: live probability must be in [0, 1]")
)

// CharError reports a pattern character that is neither live nor dead.
type CharError struct {
	Char     rune
	Position int
}

func (e *CharError) Error() string {
	return fmt.Sprintf("%s: %q at position %d", ErrUnknownChar, e.Char, e.Position)
}

func (e *CharError) Unwrap() error {
	return ErrUnknownChar
}

// Center makes the cell at size/2 live.
func Center(w *automaton.World) error {
	return w.Set(w.Size()/2, true)
}

// Pattern assigns one cell per character of s. Cells past the end of s are
// left untouched; a pattern longer than the world fails with
// automaton.ErrInvalidIndex.
func Pattern(w *automaton.World, s string, live, dead rune) error {
	i := 0
	for _, c := range s {
		var state bool
		switch c {
		case live:
			state = true
		case dead:
			state = false
		default:
			return &CharError{Char: c, Position: i}
		}
		if err := w.Set(i, state); err != nil {
			return fmt.Errorf("pattern has more than %d cells: %w", w.Size(), err)
		}
		i++
	}
	return nil
}

// Random makes each cell live independently with probability p.
func Random(w *automaton.World, rng *rand.Rand, p float64) error {
	if p < 0 || p > 1 {
		return fmt.Errorf("%w: got %g", ErrInvalidProbability, p)
	}
	for i := 0; i < w.Size(); i++ {
		if err := w.Set(i, rng.Float64() < p); err != nil {
			return err
		}
	}
	return nil
}

// FromStart seeds w from a start string: empty for Center, RandomStart for
// Random, anything else as a Pattern.
func FromStart(w *automaton.World, start string, live, dead rune, rng *rand.Rand, p float64) error {
	switch start {
	case "":
		return Center(w)
	case RandomStart:
		return Random(w, rng, p)
	default:
		return Pattern(w, start, live, dead)
	}
}
