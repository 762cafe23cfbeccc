package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/eca/internal/analysis"
	"github.com/san-kum/eca/internal/automaton"
	"github.com/san-kum/eca/internal/export"
	"github.com/san-kum/eca/internal/render"
	"github.com/san-kum/eca/internal/storage"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// loadRun reads a saved run's metadata and history.
func loadRun(runID string) (*storage.RunMetadata, [][]bool, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	history, err := st.LoadHistory(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(history) == 0 {
		return nil, nil, fmt.Errorf("run %s has no generations", runID)
	}
	return meta, history, nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := newTable(out)
	fmt.Fprintln(w, "ID\tRULE\tCELLS\tWRAP\tGENS\tSEED\tTIME")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%d\t%d\t%v\t%d\t%d\t%s\n",
			run.ID,
			run.Rule,
			run.Cells,
			run.Wrap,
			run.Generations,
			run.Seed,
			run.Timestamp.Format("2006-01-02 15:04:05"),
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	mode, ok := render.ParseColorMode(colorMode)
	if !ok {
		return fmt.Errorf("invalid --color %q (want auto, always or never)", colorMode)
	}
	meta, history, err := loadRun(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run: %s\n", meta.ID)
	fmt.Fprintf(out, "rule %d, %d cells, wrap %v, %d generations\n\n", meta.Rule, meta.Cells, meta.Wrap, meta.Generations)

	r := render.ForWriter(out, mode, render.DefaultLive, render.DefaultDead)
	for _, cells := range history {
		fmt.Fprintln(out, r.Render(cells))
	}

	if len(meta.Metrics) > 0 {
		names := make([]string, 0, len(meta.Metrics))
		for name := range meta.Metrics {
			names = append(names, name)
		}
		sort.Strings(names)

		fmt.Fprintln(out, "\nmetrics:")
		for _, name := range names {
			fmt.Fprintf(out, "  %s: %.6f\n", name, meta.Metrics[name])
		}
	}
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, history, err := loadRun(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run: %s\n", meta.ID)
	fmt.Fprintf(out, "rule: %d\n", meta.Rule)
	fmt.Fprintf(out, "generations: %d\n\n", len(history))

	series := analysis.PopulationSeries(history)
	if len(series) == 1 {
		series = append(series, series[0])
	}
	graph := asciigraph.Plot(series,
		asciigraph.Height(10),
		asciigraph.Width(max(min(render.TerminalWidth(90)-10, 100), 20)),
		asciigraph.Caption("population"),
	)
	fmt.Fprintln(out, graph)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, history, err := loadRun(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "analysis: %s\n", meta.ID)
	fmt.Fprintf(out, "rule: %d (equivalent: %s)\n\n", meta.Rule, joinRules(analysis.Equivalents(meta.Rule)))

	cycle := analysis.DetectCycle(history)
	if cycle.Period == 0 {
		fmt.Fprintf(out, "no repeated generation in %d generations\n", len(history))
	} else {
		fmt.Fprintf(out, "cycle: period %d from generation %d\n", cycle.Period, cycle.Start)
	}

	series := analysis.PopulationSeries(history)
	if len(series) < 4 {
		return nil
	}

	ps := analysis.PowerSpectrum(series)
	graph := asciigraph.Plot(ps,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("population power spectrum"),
	)
	fmt.Fprintln(out)
	fmt.Fprintln(out, graph)
	fmt.Fprintln(out)

	if period := analysis.DominantPeriod(series); period > 0 {
		fmt.Fprintf(out, "dominant period: %.2f generations\n", period)
	} else {
		fmt.Fprintln(out, "population is constant")
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, history, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(cmd.OutOrStdout(), meta, history)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, history, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.ExportCSV(cmd.OutOrStdout(), history)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	_, history, err := loadRun(args[0])
	if err != nil {
		return err
	}

	opts := export.DefaultSVGOptions()
	if svgCell > 0 {
		opts.CellSize = svgCell
	}

	if outFile == "" {
		return export.WriteSVG(cmd.OutOrStdout(), history, opts)
	}
	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	if err := export.WriteSVG(f, history, opts); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", outFile)
	return nil
}

func showRule(cmd *cobra.Command, args []string) error {
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid rule %q: %w", args[0], err)
	}
	r, err := automaton.ParseRule(n)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "rule %d (%s)\n\n", r, analysis.Binary(r))

	f := render.NewFormatter(render.DefaultLive, render.DefaultDead)
	var top, bottom []string
	for _, row := range analysis.Table(r) {
		top = append(top, row.Pattern(render.DefaultLive, render.DefaultDead))
		bottom = append(bottom, " "+f.Render([]bool{row.Next})+" ")
	}
	fmt.Fprintln(out, strings.Join(top, " "))
	fmt.Fprintln(out, strings.Join(bottom, " "))
	fmt.Fprintln(out)

	fmt.Fprintf(out, "mirror: %d\n", analysis.Mirror(r))
	fmt.Fprintf(out, "complement: %d\n", analysis.Complement(r))
	fmt.Fprintf(out, "mirror complement: %d\n", analysis.MirrorComplement(r))
	fmt.Fprintf(out, "equivalent: %s\n", joinRules(analysis.Equivalents(r)))
	return nil
}

func joinRules(rules []uint8) string {
	parts := make([]string, len(rules))
	for i, r := range rules {
		parts[i] = strconv.Itoa(int(r))
	}
	return strings.Join(parts, " ")
}
