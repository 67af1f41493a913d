package metrics

import (
	"github.com/san-kum/partsim/internal/physics"
)

type KineticEnergy struct {
	name    string
	samples int
	total   float64
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (k *KineticEnergy) Name() string { return k.name }

func (k *KineticEnergy) Observe(w *physics.World, t float32) {
	particles := w.Particles()
	for i := range particles {
		p := &particles[i]
		v := w.VelocityOf(p)
		k.total += 0.5 * float64(p.Mass) * float64(v.LenSqr())
	}
	k.samples++
}

func (k *KineticEnergy) Value() float64 {
	if k.samples == 0 {
		return 0
	}
	return k.total / float64(k.samples)
}

func (k *KineticEnergy) Reset() {
	k.total = 0
	k.samples = 0
}
