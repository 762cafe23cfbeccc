package automation

import (
	"context"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/eca/internal/analysis"
	"github.com/san-kum/eca/internal/config"
	"github.com/san-kum/eca/internal/experiment"
	"github.com/san-kum/eca/internal/metrics"
	"github.com/san-kum/eca/internal/sim"
	"github.com/san-kum/eca/internal/storage"
)

// Scenario defines a scripted sequence of runs
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single run in a scenario. Fields left out take the value
// of the named preset, or the defaults when no preset is given.
type ScenarioStep struct {
	Name          string `yaml:"name"`
	Preset        string `yaml:"preset"`
	Save          bool   `yaml:"save"`
	config.Config `yaml:",inline"`
}

func (s *ScenarioStep) UnmarshalYAML(node *yaml.Node) error {
	var head struct {
		Preset string `yaml:"preset"`
	}
	if err := node.Decode(&head); err != nil {
		return err
	}

	base := config.DefaultConfig()
	if head.Preset != "" {
		base = config.GetPreset(head.Preset)
		if base == nil {
			return fmt.Errorf("line %d: unknown preset: %s", node.Line, head.Preset)
		}
	}

	type plain ScenarioStep
	step := plain{Config: *base}
	if err := node.Decode(&step); err != nil {
		return err
	}
	*s = ScenarioStep(step)
	return nil
}

// StepResult is the outcome of one scenario step.
type StepResult struct {
	Name   string
	RunID  string
	Result *sim.Result
	Cycle  analysis.Cycle
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	for i := range scenario.Steps {
		if err := scenario.Steps[i].Validate(); err != nil {
			return nil, fmt.Errorf("%s step %d: %w", path, i+1, err)
		}
	}

	return &scenario, nil
}

// RunScenario executes all steps in order. Steps marked save are stored in
// st when it is not nil. Progress lines go to progress.
func RunScenario(ctx context.Context, scenario *Scenario, st *storage.Store, progress io.Writer) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))
	registry := experiment.NewRegistry()

	for i, step := range scenario.Steps {
		name := step.Name
		if name == "" {
			name = fmt.Sprintf("rule %d", step.Rule)
		}
		fmt.Fprintf(progress, "running step %d/%d: %s\n", i+1, len(scenario.Steps), name)

		cfg, err := experiment.FromConfig(&step.Config)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		exp := experiment.New(cfg)
		if err := exp.Setup(registry.DefaultMetrics()); err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		sr := StepResult{
			Name:   name,
			Result: result,
			Cycle:  analysis.DetectCycle(result.History),
		}

		if step.Save && st != nil {
			sr.RunID, err = st.Save(storage.RunMetadata{
				Rule:        cfg.Rule,
				Cells:       cfg.Cells,
				Wrap:        cfg.Wrap,
				Start:       cfg.Start,
				Probability: cfg.Probability,
				Seed:        cfg.Seed,
			}, result)
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}

		results = append(results, sr)
	}

	return results, nil
}

// DensitySweep runs one rule from random starts across a range of initial
// live probabilities.
type DensitySweep struct {
	Rule        uint8
	Cells       int
	Generations int
	Wrap        bool
	Min, Max    float64
	Points      int
	Seed        int64
}

// SweepResult holds the outcome of one sweep point
type SweepResult struct {
	Probability    float64
	InitialDensity float64
	FinalDensity   float64
	Activity       float64
}

// RunSweep executes a density sweep
func RunSweep(ctx context.Context, sweep *DensitySweep, progress io.Writer) ([]SweepResult, error) {
	if sweep.Points < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 points, got %d", sweep.Points)
	}
	if sweep.Min < 0 || sweep.Max > 1 || sweep.Min > sweep.Max {
		return nil, fmt.Errorf("sweep range [%g, %g] must lie within [0, 1]", sweep.Min, sweep.Max)
	}

	results := make([]SweepResult, 0, sweep.Points)
	step := (sweep.Max - sweep.Min) / float64(sweep.Points-1)

	for i := 0; i < sweep.Points; i++ {
		p := sweep.Min + float64(i)*step

		exp := experiment.New(experiment.Config{
			Rule:        sweep.Rule,
			Cells:       sweep.Cells,
			Generations: sweep.Generations,
			Wrap:        sweep.Wrap,
			Start:       "RANDOM",
			Live:        '#',
			Dead:        '.',
			Probability: p,
			Seed:        sweep.Seed + int64(i),
		})
		activity := metrics.NewActivity()
		if err := exp.Setup([]sim.Metric{activity}); err != nil {
			return nil, err
		}

		initial := metrics.Count(exp.GetSimulator().World().State())
		result, err := exp.Run(ctx)
		if err != nil {
			return nil, err
		}

		results = append(results, SweepResult{
			Probability:    p,
			InitialDensity: float64(initial) / float64(sweep.Cells),
			FinalDensity:   float64(metrics.Count(result.Final)) / float64(sweep.Cells),
			Activity:       result.Metrics[activity.Name()],
		})

		fmt.Fprintf(progress, "sweep %d/%d: random=%.3f\n", i+1, sweep.Points, p)
	}

	return results, nil
}

// TrialConfig defines repeated random-start runs of one rule
type TrialConfig struct {
	Rule        uint8
	Cells       int
	Generations int
	Wrap        bool
	Probability float64
	Trials      int
	Seed        int64
}

// TrialResult holds the outcome of a single trial
type TrialResult struct {
	Trial        int
	Seed         int64
	Cycle        analysis.Cycle
	FinalDensity float64
}

// RunTrials executes cfg.Trials runs, each from its own random start, and
// reports whether each one settled into a cycle.
func RunTrials(ctx context.Context, cfg *TrialConfig, progress io.Writer) ([]TrialResult, error) {
	results := make([]TrialResult, 0, cfg.Trials)

	for trial := 0; trial < cfg.Trials; trial++ {
		seed := cfg.Seed + int64(trial)
		exp := experiment.New(experiment.Config{
			Rule:        cfg.Rule,
			Cells:       cfg.Cells,
			Generations: cfg.Generations,
			Wrap:        cfg.Wrap,
			Start:       "RANDOM",
			Live:        '#',
			Dead:        '.',
			Probability: cfg.Probability,
			Seed:        seed,
			KeepHistory: true,
		})
		if err := exp.Setup(nil); err != nil {
			return nil, err
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return nil, err
		}

		results = append(results, TrialResult{
			Trial:        trial,
			Seed:         seed,
			Cycle:        analysis.DetectCycle(result.History),
			FinalDensity: float64(metrics.Count(result.Final)) / float64(cfg.Cells),
		})

		if (trial+1)%10 == 0 {
			fmt.Fprintf(progress, "trials: %d/%d complete\n", trial+1, cfg.Trials)
		}
	}

	return results, nil
}

// TrialStats summarizes trial results
func TrialStats(results []TrialResult) (cyclic, aperiodic int, meanDensity float64) {
	for _, r := range results {
		if r.Cycle.Period > 0 {
			cyclic++
		} else {
			aperiodic++
		}
		meanDensity += r.FinalDensity
	}
	if len(results) > 0 {
		meanDensity /= float64(len(results))
	}
	return
}
