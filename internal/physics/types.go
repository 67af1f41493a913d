package physics

import "github.com/go-gl/mathgl/mgl32"

type Integrator interface {
	Step(p *Particle, gravity, scale float32, bounds mgl32.Vec2, dt float32)
	Velocity(p *Particle) mgl32.Vec2
}

type Color [4]uint8
