package metrics

import (
	"math"

	"github.com/san-kum/partsim/internal/physics"
)

const containmentTolerance = 1e-3

type Containment struct {
	name       string
	violations int
	samples    int
}

func NewContainment() *Containment {
	return &Containment{name: "containment"}
}

func (c *Containment) Name() string { return c.name }

func (c *Containment) Observe(w *physics.World, t float32) {
	c.samples++
	halfW := float64(w.Bounds()[0]) / 2
	halfH := float64(w.Bounds()[1]) / 2
	for _, p := range w.Particles() {
		if math.Abs(float64(p.Pos[0])) > halfW+containmentTolerance ||
			math.Abs(float64(p.Pos[1])) > halfH+containmentTolerance {
			c.violations++
			break
		}
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
}
