package physics

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

type World struct {
	particles   []Particle
	sticks      []Stick
	gravity     float32
	bounds      mgl32.Vec2
	scale       float32
	nextID      uint32
	integrator  Integrator
	solveSticks bool
}

func NewWorld(integ Integrator, gravity float32, bounds mgl32.Vec2, scale float32) *World {
	return &World{
		particles:  make([]Particle, 0),
		sticks:     make([]Stick, 0),
		gravity:    gravity,
		bounds:     bounds,
		scale:      scale,
		integrator: integ,
	}
}

func (w *World) Gravity() float32     { return w.gravity }
func (w *World) Bounds() mgl32.Vec2   { return w.bounds }
func (w *World) Scale() float32       { return w.scale }
func (w *World) NextID() uint32       { return w.nextID }
func (w *World) Particles() []Particle { return w.particles }
func (w *World) Sticks() []Stick       { return w.sticks }

func (w *World) SetBounds(b mgl32.Vec2) {
	if b != w.bounds {
		w.bounds = b
	}
}

func (w *World) SetStickSolver(enabled bool) {
	w.solveSticks = enabled
}

func (w *World) AllocateID() uint32 {
	id := w.nextID
	w.nextID++
	return id
}

func (w *World) AddParticle(p Particle) error {
	i := sort.Search(len(w.particles), func(i int) bool { return w.particles[i].ID >= p.ID })
	if i < len(w.particles) && w.particles[i].ID == p.ID {
		return fmt.Errorf("%w: %d", ErrDuplicateID, p.ID)
	}
	w.particles = append(w.particles, Particle{})
	copy(w.particles[i+1:], w.particles[i:])
	w.particles[i] = p
	return nil
}

func (w *World) FindParticle(id uint32) *Particle {
	i := sort.Search(len(w.particles), func(i int) bool { return w.particles[i].ID >= id })
	if i == len(w.particles) || w.particles[i].ID != id {
		return nil
	}
	return &w.particles[i]
}

func (w *World) AddStick(s Stick) {
	w.sticks = append(w.sticks, s)
}

func (w *World) ResolveStick(s Stick) (a, b *Particle, ok bool) {
	a = w.FindParticle(s.A)
	b = w.FindParticle(s.B)
	if a == nil || b == nil {
		return nil, nil, false
	}
	return a, b, true
}

func (w *World) Clear() {
	w.particles = w.particles[:0]
	w.sticks = w.sticks[:0]
}

func (w *World) ApplyGlobalImpulse(dx, dy float32) {
	for i := range w.particles {
		w.particles[i].Force[0] += dx
		w.particles[i].Force[1] += dy
	}
}

func (w *World) VelocityOf(p *Particle) mgl32.Vec2 {
	return w.integrator.Velocity(p)
}

func (w *World) Step(dt float32) {
	for i := range w.particles {
		w.integrator.Step(&w.particles[i], w.gravity, w.scale, w.bounds, dt)
	}
	if w.solveSticks {
		w.solveStickPass()
		w.clampToBounds()
	}
}

func (w *World) solveStickPass() {
	for _, s := range w.sticks {
		a := w.FindParticle(s.A)
		b := w.FindParticle(s.B)
		if a == nil || b == nil {
			continue
		}
		delta := b.Pos.Sub(a.Pos)
		dist := delta.Len()
		if dist == 0 {
			continue
		}
		diff := (dist - s.RestLength) / dist
		corr := delta.Mul(0.5 * diff)
		a.Pos = a.Pos.Add(corr)
		b.Pos = b.Pos.Sub(corr)
	}
}

func (w *World) clampToBounds() {
	halfW := w.bounds[0] / 2
	halfH := w.bounds[1] / 2
	for i := range w.particles {
		p := &w.particles[i]
		if p.Pos[0]-p.Radius < -halfW {
			p.Pos[0] = -halfW + p.Radius
		} else if p.Pos[0]+p.Radius > halfW {
			p.Pos[0] = halfW - p.Radius
		}
		if p.Pos[1]-p.Radius < -halfH {
			p.Pos[1] = -halfH + p.Radius
		} else if p.Pos[1]+p.Radius > halfH {
			p.Pos[1] = halfH - p.Radius
		}
	}
}
