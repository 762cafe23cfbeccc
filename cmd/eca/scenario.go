package main

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/eca/internal/automation"
	"github.com/san-kum/eca/internal/experiment"
	"github.com/san-kum/eca/internal/storage"
)

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if sc.Name != "" {
		fmt.Fprintf(out, "scenario: %s\n", sc.Name)
	}
	if sc.Description != "" {
		fmt.Fprintf(out, "%s\n", sc.Description)
	}
	fmt.Fprintln(out)

	results, err := automation.RunScenario(cmd.Context(), sc, st, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	w := newTable(out)
	fmt.Fprintln(w, "STEP\tGENS\tDENSITY\tACTIVITY\tCYCLE\tRUN")
	for _, r := range results {
		cycle := "-"
		if r.Cycle.Period > 0 {
			cycle = fmt.Sprintf("%d@%d", r.Cycle.Period, r.Cycle.Start)
		}
		runID := r.RunID
		if runID == "" {
			runID = "-"
		}
		fmt.Fprintf(w, "%s\t%d\t%.4f\t%.4f\t%s\t%s\n",
			r.Name, r.Result.Generations, r.Result.Metrics["density"], r.Result.Metrics["activity"], cycle, runID)
	}
	return w.Flush()
}

// sweepConfig resolves the world flags shared by sweep and trials.
func sweepConfig(cmd *cobra.Command) (experiment.Config, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return experiment.Config{}, err
	}
	return experiment.FromConfig(cfg)
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := sweepConfig(cmd)
	if err != nil {
		return err
	}

	results, err := automation.RunSweep(cmd.Context(), &automation.DensitySweep{
		Rule:        cfg.Rule,
		Cells:       cfg.Cells,
		Generations: cfg.Generations,
		Wrap:        cfg.Wrap,
		Min:         sweepMin,
		Max:         sweepMax,
		Points:      sweepPoints,
		Seed:        cfg.Seed,
	}, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	w := newTable(out)
	fmt.Fprintln(w, "RANDOM\tINITIAL\tFINAL\tACTIVITY")
	final := make([]float64, len(results))
	for i, r := range results {
		fmt.Fprintf(w, "%.3f\t%.4f\t%.4f\t%.4f\n", r.Probability, r.InitialDensity, r.FinalDensity, r.Activity)
		final[i] = r.FinalDensity
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, asciigraph.Plot(final,
		asciigraph.Height(8),
		asciigraph.Width(60),
		asciigraph.Caption(fmt.Sprintf("rule %d final density", cfg.Rule)),
	))
	return nil
}

func runTrials(cmd *cobra.Command, args []string) error {
	cfg, err := sweepConfig(cmd)
	if err != nil {
		return err
	}

	results, err := automation.RunTrials(cmd.Context(), &automation.TrialConfig{
		Rule:        cfg.Rule,
		Cells:       cfg.Cells,
		Generations: cfg.Generations,
		Wrap:        cfg.Wrap,
		Probability: cfg.Probability,
		Trials:      trialCount,
		Seed:        cfg.Seed,
	}, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	cyclic, aperiodic, mean := automation.TrialStats(results)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "rule %d, %d trials of %d generations\n", cfg.Rule, len(results), cfg.Generations)
	fmt.Fprintf(out, "cyclic: %d\n", cyclic)
	fmt.Fprintf(out, "aperiodic: %d\n", aperiodic)
	fmt.Fprintf(out, "mean final density: %.4f\n", mean)
	return nil
}
