package metrics

import "math"

// Entropy is the mean Shannon entropy, in bits, of the distribution of
// adjacent cell pairs in each generation. It ranges from 0 (uniform row) to 2.
type Entropy struct {
	name    string
	sum     float64
	samples int
}

func NewEntropy() *Entropy {
	return &Entropy{name: "entropy"}
}

func (e *Entropy) Name() string { return e.name }

func (e *Entropy) Observe(cells []bool, gen int) {
	if len(cells) < 2 {
		return
	}
	e.sum += BlockEntropy(cells)
	e.samples++
}

func (e *Entropy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.sum / float64(e.samples)
}

func (e *Entropy) Reset() {
	e.sum = 0
	e.samples = 0
}

// BlockEntropy computes the entropy of the overlapping 2-cell blocks of cells.
func BlockEntropy(cells []bool) float64 {
	if len(cells) < 2 {
		return 0
	}
	var counts [4]int
	for i := 0; i+1 < len(cells); i++ {
		k := 0
		if cells[i] {
			k |= 2
		}
		if cells[i+1] {
			k |= 1
		}
		counts[k]++
	}

	n := float64(len(cells) - 1)
	h := 0.0
	for _, c := range counts {
		if c == 0 {
			continue
		}
		p := float64(c) / n
		h -= p * math.Log2(p)
	}
	return h
}
