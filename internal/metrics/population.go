package metrics

// Population is the mean number of live cells per generation.
type Population struct {
	name    string
	total   int
	samples int
}

func NewPopulation() *Population {
	return &Population{name: "population"}
}

func (p *Population) Name() string { return p.name }

func (p *Population) Observe(cells []bool, gen int) {
	p.total += Count(cells)
	p.samples++
}

func (p *Population) Value() float64 {
	if p.samples == 0 {
		return 0
	}
	return float64(p.total) / float64(p.samples)
}

func (p *Population) Reset() {
	p.total = 0
	p.samples = 0
}

// Density is the mean fraction of live cells per generation.
type Density struct {
	name    string
	sum     float64
	samples int
}

func NewDensity() *Density {
	return &Density{name: "density"}
}

func (d *Density) Name() string { return d.name }

func (d *Density) Observe(cells []bool, gen int) {
	if len(cells) == 0 {
		return
	}
	d.sum += float64(Count(cells)) / float64(len(cells))
	d.samples++
}

func (d *Density) Value() float64 {
	if d.samples == 0 {
		return 0
	}
	return d.sum / float64(d.samples)
}

func (d *Density) Reset() {
	d.sum = 0
	d.samples = 0
}

// Count returns the number of live cells.
func Count(cells []bool) int {
	n := 0
	for _, live := range cells {
		if live {
			n++
		}
	}
	return n
}
