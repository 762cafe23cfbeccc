package experiment

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/san-kum/eca/internal/automaton"
	"github.com/san-kum/eca/internal/config"
	"github.com/san-kum/eca/internal/seed"
	"github.com/san-kum/eca/internal/sim"
)

type Config struct {
	Rule        uint8
	Cells       int
	Generations int
	Wrap        bool
	Start       string
	Live        rune
	Dead        rune
	Probability float64
	Seed        int64
	Workers     int
	KeepHistory bool
}

// FromConfig converts a validated file/CLI configuration.
func FromConfig(c *config.Config) (Config, error) {
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	rule, _ := automaton.ParseRule(c.Rule)
	live, dead := c.Chars()
	return Config{
		Rule:        rule,
		Cells:       c.Cells,
		Generations: c.Steps,
		Wrap:        c.Wrap,
		Start:       c.Start,
		Live:        live,
		Dead:        dead,
		Probability: c.Probability,
		Seed:        c.Seed,
		Workers:     c.Workers,
		KeepHistory: true,
	}, nil
}

type Experiment struct {
	cfg        Config
	simulator  *sim.Simulator
	randSource *rand.Rand
}

func New(cfg Config) *Experiment {
	return &Experiment{
		cfg:        cfg,
		randSource: rand.New(rand.NewSource(cfg.Seed)),
	}
}

// Setup builds and seeds the world and attaches metrics and observers.
func (e *Experiment) Setup(metrics []sim.Metric, observers ...sim.Observer) error {
	world, err := automaton.New(e.cfg.Rule, e.cfg.Cells, e.cfg.Wrap)
	if err != nil {
		return err
	}
	world.SetWorkers(e.cfg.Workers)

	if err := seed.FromStart(world, e.cfg.Start, e.cfg.Live, e.cfg.Dead, e.randSource, e.cfg.Probability); err != nil {
		return fmt.Errorf("seed world: %w", err)
	}

	e.simulator = sim.New(world)
	for _, m := range metrics {
		e.simulator.AddMetric(m)
	}
	for _, o := range observers {
		e.simulator.AddObserver(o)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	return e.simulator.Run(ctx, sim.Config{
		Generations: e.cfg.Generations,
		KeepHistory: e.cfg.KeepHistory,
	})
}

// GetSimulator returns the underlying simulator for adding observers
func (e *Experiment) GetSimulator() *sim.Simulator {
	return e.simulator
}
