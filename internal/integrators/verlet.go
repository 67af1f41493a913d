package integrators

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/partsim/internal/physics"
)

type Verlet struct{}

func NewVerlet() *Verlet {
	return &Verlet{}
}

func (v *Verlet) Step(p *physics.Particle, gravity, scale float32, bounds mgl32.Vec2, dt float32) {
	vel := p.Pos.Sub(p.PrevPos)
	p.PrevPos = p.Pos

	acc := p.Force.Mul(1 / p.Mass)
	acc[1] += gravity

	p.Pos = p.Pos.Add(vel).Add(acc.Mul(scale * dt * dt))

	halfW := bounds[0] / 2
	halfH := bounds[1] / 2

	if p.Pos[0]-p.Radius < -halfW {
		p.Pos[0] = -halfW + p.Radius
		p.PrevPos[0] = p.Pos[0] + vel[0]
	} else if p.Pos[0]+p.Radius > halfW {
		p.Pos[0] = halfW - p.Radius
		p.PrevPos[0] = p.Pos[0] + vel[0]
	}
	if p.Pos[1]-p.Radius < -halfH {
		p.Pos[1] = -halfH + p.Radius
		p.PrevPos[1] = p.Pos[1] + vel[1]
	} else if p.Pos[1]+p.Radius > halfH {
		p.Pos[1] = halfH - p.Radius
		p.PrevPos[1] = p.Pos[1] + vel[1]
	}

	p.Force = mgl32.Vec2{}
}

func (v *Verlet) Velocity(p *physics.Particle) mgl32.Vec2 {
	return p.Pos.Sub(p.PrevPos)
}
