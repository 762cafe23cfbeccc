package sim

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/san-kum/eca/internal/automaton"
)

type Simulator struct {
	world     *automaton.World
	metrics   []Metric
	observers []Observer
}

func New(world *automaton.World) *Simulator {
	return &Simulator{
		world:     world,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// World returns the simulated world.
func (s *Simulator) World() *automaton.World { return s.world }

// Run steps the world cfg.Generations times. Generation 0 is the seeded state
// and is observed before the first step. On cancellation the partial result
// is returned together with a *RunError wrapping the context error.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	result := &Result{
		Metrics: make(map[string]float64),
	}
	if cfg.KeepHistory {
		result.History = make([][]bool, 0, cfg.Generations+1)
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	log := Logger().With(
		zap.Uint8("rule", s.world.Rule()),
		zap.Int("cells", s.world.Size()),
		zap.Bool("wrap", s.world.Wrap()),
	)
	log.Debug("run started", zap.Int("generations", cfg.Generations))
	start := time.Now()

	cells := s.world.State()
	s.observe(result, cells, 0, cfg.KeepHistory)

	for i := 1; i <= cfg.Generations; i++ {
		select {
		case <-ctx.Done():
			s.finish(result, cells)
			log.Debug("run canceled", zap.Int("generation", i-1), zap.Error(ctx.Err()))
			return result, &RunError{Generation: i - 1, Wrapped: ctx.Err()}
		default:
		}

		s.world.Step()
		result.Generations++

		cells = s.world.State()
		s.observe(result, cells, i, cfg.KeepHistory)
	}

	s.finish(result, cells)
	log.Debug("run finished",
		zap.Int("generations", result.Generations),
		zap.Duration("elapsed", time.Since(start)),
	)

	return result, nil
}

func (s *Simulator) observe(result *Result, cells []bool, gen int, keep bool) {
	for _, m := range s.metrics {
		m.Observe(cells, gen)
	}
	for _, obs := range s.observers {
		obs.OnGeneration(cells, gen)
	}
	if keep {
		result.History = append(result.History, cells)
	}
}

func (s *Simulator) finish(result *Result, cells []bool) {
	result.Final = cells
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func (s *Simulator) validateConfig(cfg Config) error {
	if s.world == nil {
		return ErrNoWorld
	}
	if cfg.Generations < 0 {
		return fmt.Errorf("%w, got %d", ErrNegativeGenerations, cfg.Generations)
	}
	return nil
}
