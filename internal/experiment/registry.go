package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/eca/internal/metrics"
	"github.com/san-kum/eca/internal/sim"
)

type Registry struct {
	metrics map[string]func() sim.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		metrics: make(map[string]func() sim.Metric),
	}

	r.metrics["population"] = func() sim.Metric { return metrics.NewPopulation() }
	r.metrics["density"] = func() sim.Metric { return metrics.NewDensity() }
	r.metrics["activity"] = func() sim.Metric { return metrics.NewActivity() }
	r.metrics["entropy"] = func() sim.Metric { return metrics.NewEntropy() }

	return r
}

func (r *Registry) GetMetric(name string) (sim.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListMetrics() []string {
	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics returns a fresh instance of every registered metric.
func (r *Registry) DefaultMetrics() []sim.Metric {
	out := make([]sim.Metric, 0, len(r.metrics))
	for _, name := range r.ListMetrics() {
		out = append(out, r.metrics[name]())
	}
	return out
}
