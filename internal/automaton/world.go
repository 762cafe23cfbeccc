package automaton

// World is a row of cells evolving under a single elementary rule.
type World struct {
	rule       uint8
	wrap       bool
	size       int
	workers    int
	generation int
	state      []bool
	stateNext  []bool
}

// New creates a world of size dead cells. Size must be at least 1.
func New(rule uint8, size int, wrap bool) (*World, error) {
	if size < 1 {
		return nil, ErrInvalidSize
	}
	return &World{
		rule:      rule,
		wrap:      wrap,
		size:      size,
		workers:   1,
		state:     make([]bool, size),
		stateNext: make([]bool, size),
	}, nil
}

func (w *World) Rule() uint8     { return w.rule }
func (w *World) Wrap() bool      { return w.wrap }
func (w *World) Size() int       { return w.size }
func (w *World) Generation() int { return w.generation }

// SetWorkers sets how many goroutines Step may use. Values below 1 are
// treated as 1. Rows shorter than MinParallelCells always step sequentially.
func (w *World) SetWorkers(n int) {
	if n < 1 {
		n = 1
	}
	w.workers = n
}

// Set overwrites the current-generation value of the cell at index.
func (w *World) Set(index int, live bool) error {
	if index < 0 || index >= w.size {
		return &IndexError{Index: index, Size: w.size}
	}
	w.state[index] = live
	return nil
}

// State returns a copy of the current generation, index 0 leftmost.
func (w *World) State() []bool {
	c := make([]bool, w.size)
	copy(c, w.state)
	return c
}

// Population returns the number of live cells.
func (w *World) Population() int {
	n := 0
	for _, live := range w.state {
		if live {
			n++
		}
	}
	return n
}

// Clear kills every cell and resets the generation counter.
func (w *World) Clear() {
	for i := range w.state {
		w.state[i] = false
	}
	w.generation = 0
}

// Step advances every cell by one generation at once.
func (w *World) Step() {
	if w.workers > 1 && w.size >= MinParallelCells {
		parallelFor(w.size, w.workers, minChunk, w.stepRange)
	} else {
		w.stepRange(0, w.size)
	}
	w.state, w.stateNext = w.stateNext, w.state
	w.generation++
}

// stepRange writes the next state of cells [start, end) into stateNext,
// reading only from state.
func (w *World) stepRange(start, end int) {
	for i := start; i < end; i++ {
		w.stateNext[i] = Apply(w.rule, w.Neighborhood(i))
	}
}

// Neighborhood returns the 3-bit encoding of cell i and its neighbors.
// Off-edge neighbors are dead unless the world wraps.
func (w *World) Neighborhood(i int) uint8 {
	var left, right bool
	if i == 0 {
		left = w.wrap && w.state[w.size-1]
	} else {
		left = w.state[i-1]
	}
	if i == w.size-1 {
		right = w.wrap && w.state[0]
	} else {
		right = w.state[i+1]
	}
	return Encode(left, w.state[i], right)
}

// Encode packs a neighborhood as left*4 + center*2 + right.
func Encode(left, center, right bool) uint8 {
	return bit(left)<<2 | bit(center)<<1 | bit(right)
}

// Apply returns bit k of rule.
func Apply(rule, k uint8) bool {
	return (rule>>(k&7))&1 != 0
}

func bit(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
