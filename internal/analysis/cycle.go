package analysis

// Cycle describes the eventual periodicity of a run.
type Cycle struct {
	Start  int // first generation of the cycle
	Period int // 0 when no generation repeats
}

// DetectCycle finds the first generation that equals an earlier one.
func DetectCycle(history [][]bool) Cycle {
	seen := make(map[string]int, len(history))
	for gen, cells := range history {
		key := pack(cells)
		if first, ok := seen[key]; ok {
			return Cycle{Start: first, Period: gen - first}
		}
		seen[key] = gen
	}
	return Cycle{}
}

// PopulationSeries returns the live cell count of each generation.
func PopulationSeries(history [][]bool) []float64 {
	series := make([]float64, len(history))
	for i, cells := range history {
		n := 0
		for _, live := range cells {
			if live {
				n++
			}
		}
		series[i] = float64(n)
	}
	return series
}

func pack(cells []bool) string {
	b := make([]byte, (len(cells)+7)/8)
	for i, live := range cells {
		if live {
			b[i/8] |= 1 << (i % 8)
		}
	}
	return string(b)
}
