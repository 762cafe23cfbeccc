package sim

// Metric accumulates a statistic over the generations of a run.
type Metric interface {
	Name() string
	Observe(cells []bool, gen int)
	Value() float64
	Reset()
}

// Observer is notified of every generation, starting with the seeded one.
type Observer interface {
	OnGeneration(cells []bool, gen int)
}

type Config struct {
	Generations int
	KeepHistory bool
}

func DefaultConfig() Config {
	return Config{
		Generations: 24,
		KeepHistory: true,
	}
}

type Result struct {
	History     [][]bool
	Final       []bool
	Metrics     map[string]float64
	Generations int
}
