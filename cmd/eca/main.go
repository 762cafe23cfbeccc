package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/eca/internal/config"
	"github.com/san-kum/eca/internal/render"
	"github.com/san-kum/eca/internal/sim"
	"github.com/san-kum/eca/internal/storage"
	"github.com/san-kum/eca/internal/viz"
)

var version = "0.3.0"

var (
	dataDir string
	verbose bool

	rule        int
	cells       int
	steps       int
	dead        string
	live        string
	start       string
	probability float64
	wrap        bool
	skipToEnd   bool
	seed        int64
	workers     int
	configFile  string
	preset      string
	save        bool
	colorMode   string
	metricNames []string

	frameRate int
	theme     string
	svgCell   float64
	outFile   string

	benchRuleNum int
	benchSteps   int

	sweepMin    float64
	sweepMax    float64
	sweepPoints int
	trialCount  int
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Without a subcommand the interactive
// preset picker is launched.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "eca",
		Short:   "elementary cellular automaton lab",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".eca", "data directory")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "debug logging to stderr")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run an automaton and print each generation",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addWorldFlags(runCmd)
	runCmd.Flags().BoolVar(&skipToEnd, "skip-to-end", false, "only print the final generation")
	runCmd.Flags().BoolVar(&save, "save", false, "store the run in the data directory")
	runCmd.Flags().StringVar(&colorMode, "color", string(render.ColorAuto), "color output: auto, always or never")
	runCmd.Flags().StringSliceVar(&metricNames, "metric", nil, "metrics to compute (default all)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run an automaton in the live terminal view",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addWorldFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 15, "generations per second")
	liveCmd.Flags().StringVar(&theme, "theme", viz.CurrentTheme.Name, "color theme")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "print a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	showCmd.Flags().StringVar(&colorMode, "color", string(render.ColorAuto), "color output: auto, always or never")

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot population over time",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "cycle detection and population spectrum",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export per-generation population to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export the space-time diagram as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().Float64Var(&svgCell, "cell-size", 4, "pixels per cell")
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				start := p.Start
				if start == "" {
					start = "center"
				}
				fmt.Fprintf(out, "  %-12s rule %-3d cells %-4d wrap %-5v start %s\n", name, p.Rule, p.Cells, p.Wrap, start)
			}
			return nil
		},
	}

	ruleCmd := &cobra.Command{
		Use:   "rule [number]",
		Short: "show a rule's table and equivalent rules",
		Args:  cobra.ExactArgs(1),
		RunE:  showRule,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark stepping throughput",
		Args:  cobra.NoArgs,
		RunE:  benchRule,
	}
	benchCmd.Flags().IntVarP(&benchRuleNum, "rule", "r", 30, "rule to benchmark")
	benchCmd.Flags().IntVarP(&benchSteps, "steps", "n", 200, "generations per measurement")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted sequence of runs from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "final density across initial live probabilities",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addWorldFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.05, "lowest live probability")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 0.95, "highest live probability")
	sweepCmd.Flags().IntVar(&sweepPoints, "points", 10, "number of probabilities")

	trialsCmd := &cobra.Command{
		Use:   "trials",
		Short: "repeat random starts and count runs that settle into a cycle",
		Args:  cobra.NoArgs,
		RunE:  runTrials,
	}
	addWorldFlags(trialsCmd)
	trialsCmd.Flags().IntVar(&trialCount, "trials", 20, "number of random starts")

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, showCmd, plotCmd, analyzeCmd,
		exportJSONCmd, exportCSVCmd, exportSVGCmd, presetsCmd, ruleCmd, benchCmd,
		scenarioCmd, sweepCmd, trialsCmd)

	return rootCmd
}

// addWorldFlags registers the flags describing a world and its start.
func addWorldFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&rule, "rule", "r", config.DefaultRule, "rule number 0-255")
	cmd.Flags().IntVarP(&cells, "cells", "c", config.DefaultCells, "number of cells")
	cmd.Flags().IntVarP(&steps, "steps", "n", config.DefaultSteps, "generations to simulate")
	cmd.Flags().StringVarP(&dead, "dead", "d", config.DefaultDead, "character for dead cells")
	cmd.Flags().StringVarP(&live, "live", "l", config.DefaultLive, "character for live cells")
	cmd.Flags().StringVar(&start, "start", "", "start pattern; empty for one center cell, RANDOM for random cells")
	cmd.Flags().Float64Var(&probability, "random", config.DefaultProbability, "live probability for RANDOM starts")
	cmd.Flags().BoolVarP(&wrap, "wrap", "w", false, "wrap the edges around")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	cmd.Flags().IntVar(&workers, "workers", 1, "goroutines per step on large worlds")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

func setupLogging() error {
	if !verbose {
		return nil
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	sim.SetLogger(logger)
	storage.SetLogger(logger)
	return nil
}
