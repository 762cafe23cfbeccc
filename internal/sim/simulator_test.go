package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/eca/internal/automaton"
)

func newSim(t *testing.T, rule uint8, size int, wrap bool) *Simulator {
	t.Helper()
	w, err := automaton.New(rule, size, wrap)
	if err != nil {
		t.Fatalf("new world failed: %v", err)
	}
	if err := w.Set(size/2, true); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	return New(w)
}

func TestSimulatorRun(t *testing.T) {
	s := newSim(t, 90, 7, false)

	result, err := s.Run(context.Background(), Config{Generations: 3, KeepHistory: true})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.History) != 4 {
		t.Errorf("expected 4 generations in history, got %d", len(result.History))
	}
	if result.Generations != 3 {
		t.Errorf("expected 3 steps, got %d", result.Generations)
	}

	want := []bool{true, false, true, false, true, false, true}
	for i := range want {
		if result.Final[i] != want[i] {
			t.Fatalf("final state mismatch at %d: %v", i, result.Final)
		}
	}

	if !result.History[0][3] {
		t.Error("history should start with the seeded generation")
	}
}

func TestSimulatorRun_NoHistory(t *testing.T) {
	s := newSim(t, 30, 21, true)

	result, err := s.Run(context.Background(), Config{Generations: 5})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.History != nil {
		t.Errorf("expected no history, got %d rows", len(result.History))
	}
	if len(result.Final) != 21 {
		t.Errorf("expected final state of 21 cells, got %d", len(result.Final))
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	s := newSim(t, 90, 5, false)
	if _, err := s.Run(context.Background(), Config{Generations: -1}); !errors.Is(err, ErrNegativeGenerations) {
		t.Errorf("expected ErrNegativeGenerations, got %v", err)
	}

	empty := New(nil)
	if _, err := empty.Run(context.Background(), Config{Generations: 1}); !errors.Is(err, ErrNoWorld) {
		t.Errorf("expected ErrNoWorld, got %v", err)
	}
}

func TestSimulatorCanceled(t *testing.T) {
	s := newSim(t, 90, 9, false)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := s.Run(ctx, Config{Generations: 10, KeepHistory: true})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	var runErr *RunError
	if !errors.As(err, &runErr) || runErr.Generation != 0 {
		t.Errorf("expected RunError at generation 0, got %v", err)
	}
	if result == nil || len(result.History) != 1 {
		t.Error("expected partial result with the seeded generation")
	}
}

type countMetric struct {
	count int
	live  int
}

func (c *countMetric) Name() string { return "count" }
func (c *countMetric) Observe(cells []bool, gen int) {
	c.count++
	for _, l := range cells {
		if l {
			c.live++
		}
	}
}
func (c *countMetric) Value() float64 { return float64(c.live) }
func (c *countMetric) Reset()         { c.count, c.live = 0, 0 }

type recorder struct {
	gens []int
}

func (r *recorder) OnGeneration(cells []bool, gen int) { r.gens = append(r.gens, gen) }

func TestSimulatorMetricsAndObservers(t *testing.T) {
	s := newSim(t, 90, 7, false)

	metric := &countMetric{}
	rec := &recorder{}
	s.AddMetric(metric)
	s.AddObserver(rec)

	result, err := s.Run(context.Background(), Config{Generations: 3})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if metric.count != 4 {
		t.Errorf("expected 4 observations, got %d", metric.count)
	}
	// 1 + 2 + 2 + 4 live cells over the rule 90 triangle.
	if result.Metrics["count"] != 9 {
		t.Errorf("expected count metric 9, got %v", result.Metrics["count"])
	}
	if len(rec.gens) != 4 || rec.gens[0] != 0 || rec.gens[3] != 3 {
		t.Errorf("observer saw generations %v", rec.gens)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Generations <= 0 {
		t.Error("DefaultConfig has invalid Generations")
	}
}

func TestRunError(t *testing.T) {
	err := &RunError{Generation: 12, Wrapped: context.DeadlineExceeded}
	expected := "generation 12: context deadline exceeded"
	if err.Error() != expected {
		t.Errorf("RunError.Error() = %q, want %q", err.Error(), expected)
	}
}
