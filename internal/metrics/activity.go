package metrics

// Activity is the mean fraction of cells that flip between consecutive
// generations. A frozen or empty world scores 0.
type Activity struct {
	name    string
	prev    []bool
	sum     float64
	samples int
}

func NewActivity() *Activity {
	return &Activity{name: "activity"}
}

func (a *Activity) Name() string { return a.name }

func (a *Activity) Observe(cells []bool, gen int) {
	if a.prev != nil && len(a.prev) == len(cells) && len(cells) > 0 {
		changed := 0
		for i := range cells {
			if cells[i] != a.prev[i] {
				changed++
			}
		}
		a.sum += float64(changed) / float64(len(cells))
		a.samples++
	}
	if len(a.prev) != len(cells) {
		a.prev = make([]bool, len(cells))
	}
	copy(a.prev, cells)
}

func (a *Activity) Value() float64 {
	if a.samples == 0 {
		return 0
	}
	return a.sum / float64(a.samples)
}

func (a *Activity) Reset() {
	a.prev = nil
	a.sum = 0
	a.samples = 0
}
