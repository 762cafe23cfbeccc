package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/eca/internal/automaton"
	"github.com/san-kum/eca/internal/config"
	"github.com/san-kum/eca/internal/experiment"
	"github.com/san-kum/eca/internal/render"
	"github.com/san-kum/eca/internal/sim"
	"github.com/san-kum/eca/internal/storage"
	"github.com/san-kum/eca/internal/viz"
)

// resolveConfig layers the preset, the config file and explicitly set flags,
// in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	// Without a preset or config file every flag applies, defaults included.
	flags := cmd.Flags()
	layered := preset != "" || configFile != ""
	set := func(name string) bool { return !layered || flags.Changed(name) }

	if set("rule") {
		cfg.Rule = rule
	}
	if set("cells") {
		cfg.Cells = cells
	}
	if set("steps") {
		cfg.Steps = steps
	}
	if set("dead") {
		cfg.Dead = dead
	}
	if set("live") {
		cfg.Live = live
	}
	if set("start") {
		cfg.Start = start
	}
	if set("random") {
		cfg.Probability = probability
	}
	if set("wrap") {
		cfg.Wrap = wrap
	}
	if set("seed") {
		cfg.Seed = seed
	}
	if set("workers") {
		cfg.Workers = workers
	}
	if flags.Lookup("skip-to-end") != nil && set("skip-to-end") {
		cfg.SkipToEnd = skipToEnd
	}

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	mode, ok := render.ParseColorMode(colorMode)
	if !ok {
		return fmt.Errorf("invalid --color %q (want auto, always or never)", colorMode)
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	expCfg, err := experiment.FromConfig(cfg)
	if err != nil {
		return err
	}
	expCfg.KeepHistory = save

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "using rule %d\n", cfg.Rule)
	fmt.Fprintf(out, "simulating %d cells for %d generations\n", cfg.Cells, cfg.Steps)

	printer := render.NewPrinter(out, render.ForWriter(out, mode, expCfg.Live, expCfg.Dead))
	printer.SkipToEnd = cfg.SkipToEnd

	ms, err := selectMetrics(experiment.NewRegistry(), metricNames)
	if err != nil {
		return err
	}

	exp := experiment.New(expCfg)
	if err := exp.Setup(ms, printer); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	started := time.Now()
	result, runErr := exp.Run(ctx)
	if result == nil {
		return runErr
	}
	if err := printer.Finish(result.Final); err != nil {
		return err
	}
	if runErr != nil {
		return runErr
	}

	sim.Logger().Info("run complete",
		zap.Int("generations", result.Generations),
		zap.Duration("elapsed", time.Since(started)),
		zap.Any("metrics", result.Metrics),
	)

	if !save {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.RunMetadata{
		Rule:        expCfg.Rule,
		Cells:       expCfg.Cells,
		Wrap:        expCfg.Wrap,
		Start:       expCfg.Start,
		Probability: expCfg.Probability,
		Seed:        expCfg.Seed,
	}, result)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "run id: %s\n", runID)
	return nil
}

// selectMetrics resolves metric names, or returns every metric when none
// are given.
func selectMetrics(registry *experiment.Registry, names []string) ([]sim.Metric, error) {
	if len(names) == 0 {
		return registry.DefaultMetrics(), nil
	}
	ms := make([]sim.Metric, 0, len(names))
	for _, name := range names {
		m, err := registry.GetMetric(name)
		if err != nil {
			return nil, fmt.Errorf("%w (available: %v)", err, registry.ListMetrics())
		}
		ms = append(ms, m)
	}
	return ms, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	expCfg, err := experiment.FromConfig(cfg)
	if err != nil {
		return err
	}
	viz.SetTheme(theme)
	return viz.Run(expCfg, frameRate)
}

// benchRule times stepping for several world sizes, sequentially and with
// one worker per CPU.
func benchRule(cmd *cobra.Command, args []string) error {
	r, err := automaton.ParseRule(benchRuleNum)
	if err != nil {
		return err
	}
	sizes := []int{1024, 8192, 65536, 262144}
	parallel := max(runtime.NumCPU(), 2)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "benchmarking rule %d, %d generations\n\n", r, benchSteps)
	w := newTable(out)
	fmt.Fprintln(w, "CELLS\tWORKERS\tTIME\tCELLS/SEC")

	for _, size := range sizes {
		for _, n := range []int{1, parallel} {
			exp := experiment.New(experiment.Config{
				Rule:        r,
				Cells:       size,
				Generations: benchSteps,
				Wrap:        true,
				Start:       "RANDOM",
				Live:        render.DefaultLive,
				Dead:        render.DefaultDead,
				Probability: 0.5,
				Seed:        42,
				Workers:     n,
			})
			if err := exp.Setup(nil); err != nil {
				return err
			}

			started := time.Now()
			if _, err := exp.Run(context.Background()); err != nil {
				return err
			}
			elapsed := time.Since(started)

			rate := float64(size) * float64(benchSteps) / elapsed.Seconds()
			fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\n", size, n, elapsed.Round(time.Microsecond), rate)
		}
	}

	return w.Flush()
}
