package export

import (
	"fmt"
	"io"
	"strings"
)

// SVGOptions controls the space-time diagram.
type SVGOptions struct {
	CellSize   float64
	Live       string
	Background string
}

func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		CellSize:   4,
		Live:       "#00ff88",
		Background: "#0a0a0a",
	}
}

// SpaceTimeSVG draws history as a space-time diagram: one row per generation,
// time flowing downwards. Horizontal runs of live cells are merged into a
// single rect.
func SpaceTimeSVG(history [][]bool, opts SVGOptions) string {
	if len(history) == 0 {
		return ""
	}
	if opts.CellSize <= 0 {
		opts.CellSize = DefaultSVGOptions().CellSize
	}

	cols := 0
	for _, row := range history {
		if len(row) > cols {
			cols = len(row)
		}
	}

	width := float64(cols) * opts.CellSize
	height := float64(len(history)) * opts.CellSize

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="%s">
`, width, height, width, height, opts.Background, opts.Live))

	for y, row := range history {
		for x := 0; x < len(row); {
			if !row[x] {
				x++
				continue
			}
			run := x
			for run < len(row) && row[run] {
				run++
			}
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f"/>
`, float64(x)*opts.CellSize, float64(y)*opts.CellSize, float64(run-x)*opts.CellSize, opts.CellSize))
			x = run
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// WriteSVG writes the diagram for history to w.
func WriteSVG(w io.Writer, history [][]bool, opts SVGOptions) error {
	_, err := io.WriteString(w, SpaceTimeSVG(history, opts))
	return err
}
