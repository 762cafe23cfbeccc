package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/eca/internal/automaton"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRunPrintsGenerations(t *testing.T) {
	out, _, err := execute(t, "run", "-r", "90", "-c", "7", "-n", "3", "--color", "never")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	want := strings.Join([]string{
		"using rule 90",
		"simulating 7 cells for 3 generations",
		"...#...",
		"..#.#..",
		".#...#.",
		"#.#.#.#",
		"",
	}, "\n")
	if out != want {
		t.Errorf("output:\n%s\nwant:\n%s", out, want)
	}
}

func TestRunSkipToEnd(t *testing.T) {
	out, _, err := execute(t, "run", "-c", "7", "-n", "3", "--skip-to-end", "--color", "never")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.HasSuffix(out, "final state:\n#.#.#.#\n") {
		t.Errorf("output = %q", out)
	}
	if strings.Contains(out, "..#.#..") {
		t.Error("intermediate generations printed with --skip-to-end")
	}
}

func TestRunCustomCharsAndPattern(t *testing.T) {
	out, _, err := execute(t, "run", "-r", "204", "-c", "5", "-n", "1",
		"-l", "X", "-d", "_", "--start", "X_X", "--color", "never")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.HasSuffix(out, "X_X__\nX_X__\n") {
		t.Errorf("output = %q", out)
	}
}

func TestRunRejectsBadInput(t *testing.T) {
	_, _, err := execute(t, "run", "-r", "300")
	if !errors.Is(err, automaton.ErrInvalidRule) {
		t.Errorf("rule 300: err = %v, want ErrInvalidRule", err)
	}

	if _, _, err := execute(t, "run", "--start", "#?#", "--color", "never"); err == nil {
		t.Error("unknown start character should fail")
	}
	if _, _, err := execute(t, "run", "--color", "sometimes"); err == nil {
		t.Error("invalid --color should fail")
	}
	if _, _, err := execute(t, "run", "--preset", "nope"); err == nil {
		t.Error("unknown preset should fail")
	}
}

func TestRunPresetWithOverride(t *testing.T) {
	out, _, err := execute(t, "run", "--preset", "sierpinski", "-n", "2", "--color", "never")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out, "simulating 63 cells for 2 generations") {
		t.Errorf("output = %q", out)
	}
}

func TestRunConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eca.yaml")
	if err := os.WriteFile(path, []byte("rule: 30\ncells: 5\nsteps: 1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	out, _, err := execute(t, "run", "--config", path, "-r", "90", "--color", "never")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.HasPrefix(out, "using rule 90\nsimulating 5 cells for 1 generations\n") {
		t.Errorf("output = %q", out)
	}
}

func TestSaveAndInspect(t *testing.T) {
	dir := t.TempDir()
	_, errOut, err := execute(t, "--data", dir, "run", "-c", "7", "-n", "3", "--save", "--color", "never")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	runID := strings.TrimSpace(strings.TrimPrefix(errOut, "run id:"))
	if !strings.HasPrefix(runID, "rule90_") {
		t.Fatalf("run id = %q", runID)
	}

	out, _, err := execute(t, "--data", dir, "list")
	if err != nil || !strings.Contains(out, runID) {
		t.Errorf("list = %q, %v", out, err)
	}

	out, _, err = execute(t, "--data", dir, "show", runID, "--color", "never")
	if err != nil || !strings.Contains(out, "#.#.#.#") {
		t.Errorf("show = %q, %v", out, err)
	}

	out, _, err = execute(t, "--data", dir, "export-csv", runID)
	if err != nil {
		t.Fatalf("export-csv: %v", err)
	}
	if lines := strings.Split(strings.TrimSpace(out), "\n"); len(lines) != 5 {
		t.Errorf("csv has %d lines, want header + 4", len(lines))
	}

	out, _, err = execute(t, "--data", dir, "export-json", runID)
	if err != nil || !strings.Contains(out, `"rule": 90`) {
		t.Errorf("export-json = %q, %v", out, err)
	}

	out, _, err = execute(t, "--data", dir, "export-svg", runID)
	if err != nil || !strings.Contains(out, "<svg") {
		t.Errorf("export-svg = %q, %v", out, err)
	}

	out, _, err = execute(t, "--data", dir, "analyze", runID)
	if err != nil || !strings.Contains(out, "analysis: "+runID) {
		t.Errorf("analyze = %q, %v", out, err)
	}

	if _, _, err := execute(t, "--data", dir, "show", "missing"); err == nil {
		t.Error("show of an unknown run should fail")
	}
}

func TestListEmpty(t *testing.T) {
	out, _, err := execute(t, "--data", t.TempDir(), "list")
	if err != nil {
		t.Fatal(err)
	}
	if out != "no runs found\n" {
		t.Errorf("list = %q", out)
	}
}

func TestRuleCommand(t *testing.T) {
	out, _, err := execute(t, "rule", "30")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"rule 30 (00011110)", "mirror: 86", "complement: 135", "equivalent: 30 86 135 149"} {
		if !strings.Contains(out, want) {
			t.Errorf("rule output missing %q:\n%s", want, out)
		}
	}

	if _, _, err := execute(t, "rule", "256"); !errors.Is(err, automaton.ErrInvalidRule) {
		t.Errorf("rule 256: err = %v", err)
	}
}

func TestPresetsCommand(t *testing.T) {
	out, _, err := execute(t, "presets")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"sierpinski", "rule110", "traffic"} {
		if !strings.Contains(out, name) {
			t.Errorf("presets missing %s", name)
		}
	}
}

func TestTrialsCommand(t *testing.T) {
	out, _, err := execute(t, "trials", "-r", "0", "-c", "16", "-n", "3", "--trials", "4", "--seed", "3")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "cyclic: 4") || !strings.Contains(out, "mean final density: 0.0000") {
		t.Errorf("trials output = %q", out)
	}
}

func TestScenarioCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	body := "name: quick\nsteps:\n  - name: identity\n    rule: 204\n    cells: 5\n    steps: 2\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	out, _, err := execute(t, "--data", t.TempDir(), "scenario", path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "scenario: quick") || !strings.Contains(out, "identity") || !strings.Contains(out, "1@0") {
		t.Errorf("scenario output = %q", out)
	}
}

func TestRunMetricSelection(t *testing.T) {
	if _, _, err := execute(t, "run", "--metric", "energy", "--color", "never"); err == nil {
		t.Error("unknown metric should fail")
	}

	dir := t.TempDir()
	_, errOut, err := execute(t, "--data", dir, "run", "-c", "7", "-n", "3", "--save",
		"--metric", "density,activity", "--color", "never")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	runID := strings.TrimSpace(strings.TrimPrefix(errOut, "run id:"))

	out, _, err := execute(t, "--data", dir, "show", runID, "--color", "never")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(out, "density:") || !strings.Contains(out, "activity:") {
		t.Errorf("selected metrics missing:\n%s", out)
	}
	if strings.Contains(out, "entropy:") || strings.Contains(out, "population:") {
		t.Errorf("unselected metrics stored:\n%s", out)
	}
}
