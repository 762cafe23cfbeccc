package viz

import (
	"fmt"
	"math/rand"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/eca/internal/analysis"
	"github.com/san-kum/eca/internal/automaton"
	"github.com/san-kum/eca/internal/experiment"
	"github.com/san-kum/eca/internal/render"
	"github.com/san-kum/eca/internal/seed"
)

const (
	defaultWidth     = 80
	defaultHeight    = 24
	statsHeight      = 10
	populationWindow = 120
	maxFPS           = 60
)

// TickMsg advances the model whose run id matches ID. Ticks left over from an
// earlier model are dropped.
type TickMsg struct {
	ID   int
	Time time.Time
}

var lastRunID atomic.Int64

// Model runs a world and shows its most recent generations, newest at the
// bottom.
type Model struct {
	cfg           experiment.Config
	world         *automaton.World
	id            int
	genOffset     int // generations run before the last wrap toggle
	rows          [][]bool
	population    []float64
	running       bool
	fps           int
	width, height int
	keys          keyMap
	help          help.Model
	err           error
}

// NewModel builds and seeds a world from cfg.
func NewModel(cfg experiment.Config, fps int) (Model, error) {
	if fps < 1 {
		fps = 10
	}
	m := Model{
		cfg:     cfg,
		id:      int(lastRunID.Add(1)),
		running: true,
		fps:     min(fps, maxFPS),
		width:   defaultWidth,
		height:  defaultHeight,
		keys:    defaultKeyMap(),
		help:    help.New(),
	}
	if err := m.reset(); err != nil {
		return Model{}, err
	}
	return m, nil
}

func (m Model) tick() tea.Cmd {
	id := m.id
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg{ID: id, Time: t} })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the world.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.trim()
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Pause):
			m.running = !m.running
		case key.Matches(msg, m.keys.Step):
			if !m.running {
				m.step()
			}
		case key.Matches(msg, m.keys.Reset):
			m.err = m.reset()
		case key.Matches(msg, m.keys.Wrap):
			m.err = m.toggleWrap()
		case key.Matches(msg, m.keys.Theme):
			NextTheme()
		case key.Matches(msg, m.keys.Faster):
			m.fps = min(m.fps*2, maxFPS)
		case key.Matches(msg, m.keys.Slower):
			m.fps = max(m.fps/2, 1)
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	case TickMsg:
		if msg.ID != m.id {
			return m, nil
		}
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

// Generation is the number of steps since the last reset.
func (m Model) Generation() int {
	return m.genOffset + m.world.Generation()
}

// step advances the world and records the new generation.
func (m *Model) step() {
	m.world.Step()
	m.record()
}

func (m *Model) record() {
	cells := m.world.State()
	m.rows = append(m.rows, cells)
	m.population = append(m.population, float64(m.world.Population()))
	m.trim()
}

func (m *Model) trim() {
	visible := max(m.height-statsHeight, 1)
	if len(m.rows) > visible {
		m.rows = m.rows[len(m.rows)-visible:]
	}
	if len(m.population) > populationWindow {
		m.population = m.population[len(m.population)-populationWindow:]
	}
}

// reset reseeds the world from the configuration, reproducing the same
// random start. The world is built on first use and cleared afterwards.
func (m *Model) reset() error {
	w := m.world
	if w == nil {
		var err error
		if w, err = automaton.New(m.cfg.Rule, m.cfg.Cells, m.cfg.Wrap); err != nil {
			return err
		}
		w.SetWorkers(m.cfg.Workers)
	} else {
		w.Clear()
	}
	m.genOffset = 0
	rng := rand.New(rand.NewSource(m.cfg.Seed))
	if err := seed.FromStart(w, m.cfg.Start, m.cfg.Live, m.cfg.Dead, rng, m.cfg.Probability); err != nil {
		return err
	}
	m.world = w
	m.rows = m.rows[:0]
	m.population = m.population[:0]
	m.record()
	return nil
}

// toggleWrap replaces the world with one of the opposite wrap mode holding the
// same cells.
func (m *Model) toggleWrap() error {
	w, err := automaton.New(m.world.Rule(), m.world.Size(), !m.world.Wrap())
	if err != nil {
		return err
	}
	w.SetWorkers(m.cfg.Workers)
	for i, live := range m.world.State() {
		if err := w.Set(i, live); err != nil {
			return err
		}
	}
	m.genOffset += m.world.Generation()
	m.world = w
	m.cfg.Wrap = w.Wrap()
	return nil
}

// View renders the TUI interface.
func (m Model) View() string {
	var s strings.Builder

	r := render.NewStyled(lipgloss.DefaultRenderer(), m.cfg.Live, m.cfg.Dead).
		WithColors(CurrentTheme.Live, CurrentTheme.Dead)
	for _, cells := range m.rows {
		if len(cells) > m.width && m.width > 0 {
			cells = cells[:m.width]
		}
		s.WriteString(r.Render(cells) + "\n")
	}

	status := StatusRunning.Render("RUNNING")
	if !m.running {
		status = StatusPaused.Render("PAUSED")
	}

	var stats strings.Builder
	stats.WriteString(headerStyle().Render(fmt.Sprintf("RULE %d", m.world.Rule())) + "  " + status + "\n")
	stats.WriteString(labelStyle.Render("Generation") + valueStyle.Render(fmt.Sprintf("%d", m.Generation())) + "\n")
	stats.WriteString(labelStyle.Render("Population") + valueStyle.Render(fmt.Sprintf("%d / %d", m.world.Population(), m.world.Size())) + "\n")
	stats.WriteString(labelStyle.Render("Wrap") + valueStyle.Render(fmt.Sprintf("%v", m.world.Wrap())) + "\n")
	stats.WriteString(labelStyle.Render("Speed") + valueStyle.Render(fmt.Sprintf("%d gen/s", m.fps)) + "\n")
	stats.WriteString(labelStyle.Render("Theme") + valueStyle.Render(CurrentTheme.Name) + "\n")
	stats.WriteString(labelStyle.Render("Binary") + mutedStyle().Render(analysis.Binary(m.world.Rule())) + "\n")
	if m.err != nil {
		stats.WriteString(StatusPaused.Render("error: "+m.err.Error()) + "\n")
	}

	panel := stats.String()
	if len(m.population) > 1 {
		chart := asciigraph.Plot(m.population, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Population"))
		panel = lipgloss.JoinHorizontal(lipgloss.Top, panel, "  ", graphStyle.Render(chart))
	} else {
		panel += SparklineChart(m.population, 30) + "\n"
	}

	s.WriteString(statsStyle.Render(panel) + "\n")
	s.WriteString(m.help.View(m.keys))
	return s.String()
}

// Run starts the live view of cfg.
func Run(cfg experiment.Config, fps int) error {
	m, err := NewModel(cfg, fps)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
