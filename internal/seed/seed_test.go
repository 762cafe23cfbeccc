package seed

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/san-kum/eca/internal/automaton"
)

func newWorld(t *testing.T, size int) *automaton.World {
	t.Helper()
	w, err := automaton.New(90, size, false)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	return w
}

func live(w *automaton.World) []int {
	var idx []int
	for i, c := range w.State() {
		if c {
			idx = append(idx, i)
		}
	}
	return idx
}

func TestCenter(t *testing.T) {
	tests := []struct {
		size int
		want int
	}{
		{1, 0},
		{7, 3},
		{80, 40},
	}

	for _, tt := range tests {
		w := newWorld(t, tt.size)
		if err := Center(w); err != nil {
			t.Fatalf("center failed: %v", err)
		}
		got := live(w)
		if len(got) != 1 || got[0] != tt.want {
			t.Errorf("size %d: live cells %v, want [%d]", tt.size, got, tt.want)
		}
	}
}

func TestPattern(t *testing.T) {
	w := newWorld(t, 6)
	if err := Pattern(w, "x-xx", 'x', '-'); err != nil {
		t.Fatalf("pattern failed: %v", err)
	}
	got := live(w)
	if len(got) != 3 || got[0] != 0 || got[1] != 2 || got[2] != 3 {
		t.Errorf("live cells %v, want [0 2 3]", got)
	}
}

func TestPattern_UnknownChar(t *testing.T) {
	w := newWorld(t, 6)
	err := Pattern(w, "#.?", '#', '.')
	if !errors.Is(err, ErrUnknownChar) {
		t.Fatalf("expected ErrUnknownChar, got %v", err)
	}
	var ce *CharError
	if !errors.As(err, &ce) || ce.Char != '?' || ce.Position != 2 {
		t.Errorf("unexpected char error: %v", err)
	}
}

func TestPattern_TooLong(t *testing.T) {
	w := newWorld(t, 3)
	if err := Pattern(w, "####", '#', '.'); !errors.Is(err, automaton.ErrInvalidIndex) {
		t.Errorf("expected ErrInvalidIndex, got %v", err)
	}
}

func TestRandom(t *testing.T) {
	w := newWorld(t, 1000)
	if err := Random(w, rand.New(rand.NewSource(1)), 0); err != nil {
		t.Fatalf("random failed: %v", err)
	}
	if w.Population() != 0 {
		t.Errorf("p=0 gave %d live cells", w.Population())
	}

	if err := Random(w, rand.New(rand.NewSource(1)), 1); err != nil {
		t.Fatalf("random failed: %v", err)
	}
	if w.Population() != 1000 {
		t.Errorf("p=1 gave %d live cells", w.Population())
	}

	if err := Random(w, rand.New(rand.NewSource(1)), 0.5); err != nil {
		t.Fatalf("random failed: %v", err)
	}
	if pop := w.Population(); pop < 400 || pop > 600 {
		t.Errorf("p=0.5 gave %d live cells", pop)
	}
}

func TestRandom_Reproducible(t *testing.T) {
	a, b := newWorld(t, 64), newWorld(t, 64)
	_ = Random(a, rand.New(rand.NewSource(42)), 0.3)
	_ = Random(b, rand.New(rand.NewSource(42)), 0.3)
	sa, sb := a.State(), b.State()
	for i := range sa {
		if sa[i] != sb[i] {
			t.Fatalf("same seed diverged at cell %d", i)
		}
	}
}

func TestRandom_InvalidProbability(t *testing.T) {
	w := newWorld(t, 4)
	for _, p := range []float64{-0.1, 1.5} {
		if err := Random(w, rand.New(rand.NewSource(1)), p); !errors.Is(err, ErrInvalidProbability) {
			t.Errorf("p=%g: expected ErrInvalidProbability, got %v", p, err)
		}
	}
}

func TestFromStart(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	w := newWorld(t, 9)
	if err := FromStart(w, "", '#', '.', rng, 0.5); err != nil {
		t.Fatal(err)
	}
	if got := live(w); len(got) != 1 || got[0] != 4 {
		t.Errorf("empty start: live %v", got)
	}

	w = newWorld(t, 9)
	if err := FromStart(w, "#.#", '#', '.', rng, 0.5); err != nil {
		t.Fatal(err)
	}
	if got := live(w); len(got) != 2 {
		t.Errorf("pattern start: live %v", got)
	}

	w = newWorld(t, 9)
	if err := FromStart(w, RandomStart, '#', '.', rng, 1); err != nil {
		t.Fatal(err)
	}
	if w.Population() != 9 {
		t.Errorf("random start p=1: population %d", w.Population())
	}
}
