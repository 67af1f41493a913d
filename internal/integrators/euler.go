package integrators

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/partsim/internal/physics"
)

const groundFriction = 0.97

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(p *physics.Particle, gravity, scale float32, bounds mgl32.Vec2, dt float32) {
	g := gravity * scale
	p.Pos[0] += p.Vel[0] * dt
	p.Pos[1] += p.Vel[1]*dt + 0.5*g*dt*dt
	p.Vel[1] += g * dt

	halfW := bounds[0] / 2
	halfH := bounds[1] / 2

	if p.Pos[1]-p.Radius < -halfH {
		p.Pos[1] = -halfH + p.Radius
		p.Vel[1] *= -p.Restitution
		p.Vel = p.Vel.Mul(groundFriction)
	}
	if p.Pos[0]-p.Radius < -halfW {
		p.Pos[0] = -halfW + p.Radius
		p.Vel[0] *= -p.Restitution
	} else if p.Pos[0]+p.Radius > halfW {
		p.Pos[0] = halfW - p.Radius
		p.Vel[0] *= -p.Restitution
	}
	if p.Pos[1]+p.Radius > halfH {
		p.Pos[1] = halfH - p.Radius
		p.Vel[1] *= -p.Restitution
	}
}

func (e *Euler) Velocity(p *physics.Particle) mgl32.Vec2 {
	return p.Vel
}
