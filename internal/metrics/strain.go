package metrics

import (
	"math"

	"github.com/san-kum/partsim/internal/physics"
)

type StickStrain struct {
	name    string
	samples int
	total   float64
}

func NewStickStrain() *StickStrain {
	return &StickStrain{name: "stick_strain"}
}

func (s *StickStrain) Name() string { return s.name }

func (s *StickStrain) Observe(w *physics.World, t float32) {
	for _, stick := range w.Sticks() {
		a, b, ok := w.ResolveStick(stick)
		if !ok || stick.RestLength == 0 {
			continue
		}
		dist := b.Pos.Sub(a.Pos).Len()
		s.total += math.Abs(float64(dist-stick.RestLength)) / float64(stick.RestLength)
		s.samples++
	}
}

func (s *StickStrain) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return s.total / float64(s.samples)
}

func (s *StickStrain) Reset() {
	s.total = 0
	s.samples = 0
}
