package render

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// ColorMode selects when output is colored.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

var (
	liveColor = lipgloss.Color("#00ff88")
	deadColor = lipgloss.Color("#444466")
)

// Styled colors runs of live and dead cells. Consecutive cells in the same
// state share one styled span.
type Styled struct {
	live, dead lipgloss.Style
	f          *Formatter
	buf        strings.Builder
}

func NewStyled(r *lipgloss.Renderer, live, dead rune) *Styled {
	return &Styled{
		live: r.NewStyle().Foreground(liveColor).Bold(true),
		dead: r.NewStyle().Foreground(deadColor),
		f:    NewFormatter(live, dead),
	}
}

// WithColors replaces the live and dead foreground colors.
func (s *Styled) WithColors(live, dead lipgloss.TerminalColor) *Styled {
	s.live = s.live.Foreground(live)
	s.dead = s.dead.Foreground(dead)
	return s
}

func (s *Styled) Render(cells []bool) string {
	s.buf.Reset()
	for start := 0; start < len(cells); {
		end := start
		for end < len(cells) && cells[end] == cells[start] {
			end++
		}
		span := s.f.Render(cells[start:end])
		if cells[start] {
			s.buf.WriteString(s.live.Render(span))
		} else {
			s.buf.WriteString(s.dead.Render(span))
		}
		start = end
	}
	return s.buf.String()
}

// ForWriter picks a plain or styled renderer for w according to mode. Auto
// colors only when w is a terminal.
func ForWriter(w io.Writer, mode ColorMode, live, dead rune) Renderer {
	switch mode {
	case ColorNever:
		return NewFormatter(live, dead)
	case ColorAlways:
		r := lipgloss.NewRenderer(w)
		r.SetColorProfile(termenv.ANSI256)
		return NewStyled(r, live, dead)
	default:
		if !IsTerminal(w) {
			return NewFormatter(live, dead)
		}
		return NewStyled(lipgloss.NewRenderer(w), live, dead)
	}
}

// IsTerminal reports whether w is an *os.File attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// TerminalWidth returns the width of the terminal on stdout, or fallback.
func TerminalWidth(fallback int) int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}

// ParseColorMode validates a --color flag value.
func ParseColorMode(s string) (ColorMode, bool) {
	switch m := ColorMode(s); m {
	case ColorAuto, ColorAlways, ColorNever:
		return m, true
	}
	return "", false
}
