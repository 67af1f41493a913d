package sandbox

import (
	"fmt"
	"sort"

	"github.com/san-kum/partsim/internal/integrators"
	"github.com/san-kum/partsim/internal/metrics"
	"github.com/san-kum/partsim/internal/physics"
)

// Registry maps names to integrator and metric constructors so config
// files and CLI flags can select them by string.
type Registry struct {
	integrators map[string]func() physics.Integrator
	metrics     map[string]func() metrics.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		integrators: make(map[string]func() physics.Integrator),
		metrics:     make(map[string]func() metrics.Metric),
	}

	r.integrators["euler"] = func() physics.Integrator { return integrators.NewEuler() }
	r.integrators["verlet"] = func() physics.Integrator { return integrators.NewVerlet() }

	r.metrics["kinetic_energy"] = func() metrics.Metric { return metrics.NewKineticEnergy() }
	r.metrics["containment"] = func() metrics.Metric { return metrics.NewContainment() }
	r.metrics["stick_strain"] = func() metrics.Metric { return metrics.NewStickStrain() }

	return r
}

func (r *Registry) GetIntegrator(name string) (physics.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func (r *Registry) GetMetric(name string) (metrics.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListIntegrators() []string {
	names := make([]string, 0, len(r.integrators))
	for name := range r.integrators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) ListMetrics() []string {
	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
