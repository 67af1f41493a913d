package metrics

import "github.com/san-kum/partsim/internal/physics"

type Metric interface {
	Name() string
	Observe(w *physics.World, t float32)
	Value() float64
	Reset()
}
