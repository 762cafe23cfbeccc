// Package render turns generations into text.
package render

import (
	"strings"
	"unicode/utf8"
)

const (
	DefaultLive = '#'
	DefaultDead = '.'
)

// Renderer converts one generation to a line of text.
type Renderer interface {
	Render(cells []bool) string
}

// Formatter renders one rune per cell. It reuses its buffer between calls and
// is not safe for concurrent use.
type Formatter struct {
	Live, Dead rune
	buf        strings.Builder
}

func NewFormatter(live, dead rune) *Formatter {
	return &Formatter{Live: live, Dead: dead}
}

func (f *Formatter) Render(cells []bool) string {
	f.buf.Reset()
	f.buf.Grow(len(cells) * utf8.RuneLen(f.Live))
	for _, live := range cells {
		if live {
			f.buf.WriteRune(f.Live)
		} else {
			f.buf.WriteRune(f.Dead)
		}
	}
	return f.buf.String()
}

// Parse converts a rendered line back to cells. Any rune other than live is
// dead.
func Parse(line string, live rune) []bool {
	cells := make([]bool, 0, len(line))
	for _, c := range line {
		cells = append(cells, c == live)
	}
	return cells
}
