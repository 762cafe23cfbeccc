package viz

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/eca/internal/analysis"
	"github.com/san-kum/eca/internal/config"
	"github.com/san-kum/eca/internal/experiment"
	"github.com/san-kum/eca/internal/render"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

var presetInfo = map[string]string{
	"sierpinski": "rule 90 from one cell",
	"rule30":     "chaotic, used as a random source",
	"rule110":    "universal, gliders on a random ring",
	"traffic":    "rule 184 cars on a ring road",
	"random90":   "additive rule from noise",
	"ring":       "rule 150 on a small ring",
}

const (
	stateMenu = iota
	stateConfig
	stateSim
)

// params edited on the config screen, in display order.
var paramNames = []string{"rule", "cells", "random", "seed", "fps"}

type model struct {
	state, cursor int
	presets       []string
	selected      string
	cfg           *config.Config
	fps           int
	paramCursor   int
	editing       bool
	editBuf       string
	err           error
	width, height int
	liveModel     Model
}

func NewInteractiveApp() *model {
	return &model{
		state:   stateMenu,
		presets: config.ListPresets(),
		fps:     15,
		width:   defaultWidth,
		height:  defaultHeight,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.state == stateSim {
			newLive, cmd := m.liveModel.Update(msg)
			m.liveModel = newLive.(Model)
			return m, cmd
		}
		return m, nil
	default:
		if m.state == stateSim {
			newLive, cmd := m.liveModel.Update(msg)
			m.liveModel = newLive.(Model)
			return m, cmd
		}
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateConfig:
		return m.configKey(msg)
	case stateSim:
		if msg.String() == "esc" {
			m.state = stateConfig
			return m, nil
		}
		newLive, cmd := m.liveModel.Update(msg)
		m.liveModel = newLive.(Model)
		return m, cmd
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.selected = m.presets[m.cursor]
		m.cfg = config.GetPreset(m.selected)
		m.state, m.paramCursor, m.err = stateConfig, 0, nil
	}
	return m, nil
}

func (m model) configKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if m.editing {
		switch msg.String() {
		case "enter":
			m.err = m.setParam(paramNames[m.paramCursor], m.editBuf)
			m.editing, m.editBuf = false, ""
		case "esc":
			m.editing, m.editBuf = false, ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if s := msg.String(); len(s) == 1 {
				c := s[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' {
					m.editBuf += s
				}
			}
		}
		return m, nil
	}
	switch msg.String() {
	case "q", "esc":
		m.state = stateMenu
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(paramNames)-1 {
			m.paramCursor++
		}
	case "enter", " ":
		m.editing, m.editBuf = true, m.param(paramNames[m.paramCursor])
	case "w":
		m.cfg.Wrap = !m.cfg.Wrap
	case "left", "h":
		m.err = m.nudge(paramNames[m.paramCursor], -1)
	case "right", "l":
		m.err = m.nudge(paramNames[m.paramCursor], 1)
	case "s":
		cmd := m.start()
		return m, cmd
	}
	return m, nil
}

func (m *model) param(name string) string {
	switch name {
	case "rule":
		return strconv.Itoa(m.cfg.Rule)
	case "cells":
		return strconv.Itoa(m.cfg.Cells)
	case "random":
		return strconv.FormatFloat(m.cfg.Probability, 'f', 2, 64)
	case "seed":
		return strconv.FormatInt(m.cfg.Seed, 10)
	case "fps":
		return strconv.Itoa(m.fps)
	}
	return ""
}

func (m *model) setParam(name, val string) error {
	next := *m.cfg
	switch name {
	case "random":
		p, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return err
		}
		next.Probability = p
	case "seed":
		s, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return err
		}
		next.Seed = s
	default:
		n, err := strconv.Atoi(val)
		if err != nil {
			return err
		}
		switch name {
		case "rule":
			next.Rule = n
		case "cells":
			next.Cells = n
		case "fps":
			if n < 1 || n > maxFPS {
				return fmt.Errorf("fps must be in 1-%d", maxFPS)
			}
			m.fps = n
			return nil
		}
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*m.cfg = next
	return nil
}

func (m *model) nudge(name string, dir int) error {
	switch name {
	case "random":
		return m.setParam(name, strconv.FormatFloat(m.cfg.Probability+0.05*float64(dir), 'f', 2, 64))
	default:
		n, _ := strconv.Atoi(m.param(name))
		return m.setParam(name, strconv.Itoa(n+dir))
	}
}

func (m *model) start() tea.Cmd {
	cfg, err := experiment.FromConfig(m.cfg)
	if err != nil {
		m.err = err
		return nil
	}
	live, err := NewModel(cfg, m.fps)
	if err != nil {
		m.err = err
		return nil
	}
	sizeMsg := tea.WindowSizeMsg{Width: m.width, Height: m.height}
	updated, _ := live.Update(sizeMsg)
	m.liveModel = updated.(Model)
	m.state = stateSim
	return m.liveModel.Init()
}

func (m model) View() string {
	switch m.state {
	case stateMenu:
		return m.menuView()
	case stateConfig:
		return m.configView()
	default:
		return m.liveModel.View() + dim.Render("  esc: back")
	}
}

func (m model) menuView() string {
	var s strings.Builder
	s.WriteString(cyan.Render("ELEMENTARY CELLULAR AUTOMATA") + "\n\n")
	for i, name := range m.presets {
		line := fmt.Sprintf("%-12s %s", name, dim.Render(presetInfo[name]))
		if i == m.cursor {
			s.WriteString(green.Render("> ") + white.Render(line) + "\n")
		} else {
			s.WriteString("  " + line + "\n")
		}
	}
	s.WriteString("\n" + dim.Render("↑↓ select  enter choose  q quit"))
	return s.String()
}

func (m model) configView() string {
	var s strings.Builder
	s.WriteString(cyan.Render(strings.ToUpper(m.selected)) + "\n\n")

	live, dead := m.cfg.Chars()
	icons := render.NewFormatter(live, dead)
	var top, bottom []string
	for _, row := range analysis.Table(uint8(m.cfg.Rule)) {
		top = append(top, row.Pattern(live, dead))
		bottom = append(bottom, " "+icons.Render([]bool{row.Next})+" ")
	}
	s.WriteString("  " + strings.Join(top, " ") + "\n")
	s.WriteString("  " + strings.Join(bottom, " ") + "\n\n")

	for i, name := range paramNames {
		val := m.param(name)
		if m.editing && i == m.paramCursor {
			val = yellow.Render(m.editBuf + "_")
		}
		line := fmt.Sprintf("%-8s %s", name, val)
		if i == m.paramCursor {
			s.WriteString(green.Render("> ") + white.Render(line) + "\n")
		} else {
			s.WriteString("  " + dim.Render(line) + "\n")
		}
	}
	s.WriteString(fmt.Sprintf("  %-8s %v\n", "wrap", m.cfg.Wrap))

	if m.err != nil {
		s.WriteString("\n" + yellow.Render(m.err.Error()) + "\n")
	}
	s.WriteString("\n" + dim.Render("↑↓ select  ←→ adjust  enter edit  w wrap  s start  esc back"))
	return s.String()
}

// RunInteractive opens the preset picker.
func RunInteractive() error {
	_, err := tea.NewProgram(NewInteractiveApp(), tea.WithAltScreen()).Run()
	return err
}
