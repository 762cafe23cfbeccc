package render

import (
	"fmt"
	"io"
)

// Printer writes generations as they are produced. With SkipToEnd set it
// stays silent until Finish.
type Printer struct {
	w         io.Writer
	r         Renderer
	SkipToEnd bool
	err       error
}

func NewPrinter(w io.Writer, r Renderer) *Printer {
	return &Printer{w: w, r: r}
}

func (p *Printer) OnGeneration(cells []bool, gen int) {
	if p.SkipToEnd || p.err != nil {
		return
	}
	_, p.err = fmt.Fprintln(p.w, p.r.Render(cells))
}

// Finish prints the final generation when skipping to the end, and returns
// the first write error.
func (p *Printer) Finish(final []bool) error {
	if p.SkipToEnd && p.err == nil {
		_, p.err = fmt.Fprintf(p.w, "final state:\n%s\n", p.r.Render(final))
	}
	return p.err
}
