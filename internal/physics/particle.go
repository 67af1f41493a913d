package physics

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

type Particle struct {
	Pos         mgl32.Vec2
	Vel         mgl32.Vec2
	PrevPos     mgl32.Vec2
	Force       mgl32.Vec2
	Mass        float32
	Radius      float32
	Restitution float32
	Color       Color
	ID          uint32
}

func NewParticle(id uint32, pos, vel mgl32.Vec2, mass, radius, restitution float32, color Color) (Particle, error) {
	if mass <= 0 {
		return Particle{}, fmt.Errorf("%w: %g", ErrNonPositiveMass, mass)
	}
	if radius <= 0 {
		return Particle{}, fmt.Errorf("%w: %g", ErrNonPositiveRadius, radius)
	}
	return Particle{
		Pos:         pos,
		Vel:         vel,
		PrevPos:     pos.Sub(vel),
		Mass:        mass,
		Radius:      radius,
		Restitution: restitution,
		Color:       color,
		ID:          id,
	}, nil
}
