package sandbox

import (
	"math"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/partsim/internal/physics"
)

// SpawnRequest carries explicit spawn parameters. Zero-value mass, radius,
// restitution, and color fall back to the spawner defaults.
type SpawnRequest struct {
	Pos         mgl32.Vec2
	Vel         mgl32.Vec2
	Mass        float32
	Radius      float32
	Restitution float32
	Color       physics.Color
}

type SpawnerConfig struct {
	Mass        float32
	Radius      float32
	Restitution float32
	SpeedScale  float32
	Seed        int64
}

// Spawner builds particles for the session commands: explicit spawns,
// slingshot releases, and ring bursts. All randomness (radius jitter,
// colors, scatter positions) comes from one seeded source.
type Spawner struct {
	mass        float32
	radius      float32
	restitution float32
	speedScale  float32
	rng         *rand.Rand
}

func NewSpawner(cfg SpawnerConfig) *Spawner {
	if cfg.Mass == 0 {
		cfg.Mass = 10
	}
	if cfg.Radius == 0 {
		cfg.Radius = 20
	}
	if cfg.Restitution == 0 {
		cfg.Restitution = 0.85
	}
	if cfg.SpeedScale == 0 {
		cfg.SpeedScale = 7
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return &Spawner{
		mass:        cfg.Mass,
		radius:      cfg.Radius,
		restitution: cfg.Restitution,
		speedScale:  cfg.SpeedScale,
		rng:         rand.New(rand.NewSource(cfg.Seed)),
	}
}

// Make builds a particle from an explicit request, allocating its id.
func (sp *Spawner) Make(w *physics.World, req SpawnRequest) (physics.Particle, error) {
	if req.Mass == 0 {
		req.Mass = sp.mass
	}
	if req.Radius == 0 {
		req.Radius = sp.radius
	}
	if req.Restitution == 0 {
		req.Restitution = sp.restitution
	}
	if req.Color == (physics.Color{}) {
		req.Color = sp.randomColor()
	}
	return physics.NewParticle(w.AllocateID(), req.Pos, req.Vel, req.Mass, req.Radius, req.Restitution, req.Color)
}

// MakeAt builds a slingshot particle released at pos and aimed from aim:
// the velocity is (pos - aim) scaled by the speed factor, the radius is
// jittered around the default.
func (sp *Spawner) MakeAt(w *physics.World, pos, aim mgl32.Vec2) (physics.Particle, error) {
	vel := pos.Sub(aim).Mul(sp.speedScale)
	return physics.NewParticle(w.AllocateID(), pos, vel, sp.mass, sp.jitteredRadius(), sp.restitution, sp.randomColor())
}

// RingParticle builds the i-th of n particles leaving center outward at the
// given speed, evenly spaced around a full circle.
func (sp *Spawner) RingParticle(w *physics.World, center mgl32.Vec2, i, n int, speed float32) (physics.Particle, error) {
	angle := float32(i) * 2 * math.Pi / float32(n)
	sin, cos := physics.FastSinCos(angle)
	vel := mgl32.Vec2{cos * speed, sin * speed}
	return physics.NewParticle(w.AllocateID(), center, vel, sp.mass, sp.jitteredRadius(), sp.restitution, sp.randomColor())
}

// Scatter builds a particle at a uniformly random position inside the world
// bounds, at rest.
func (sp *Spawner) Scatter(w *physics.World) (physics.Particle, error) {
	bounds := w.Bounds()
	radius := sp.jitteredRadius()
	halfW := bounds[0]/2 - radius
	halfH := bounds[1]/2 - radius
	if halfW < 0 {
		halfW = 0
	}
	if halfH < 0 {
		halfH = 0
	}
	pos := mgl32.Vec2{
		(sp.rng.Float32()*2 - 1) * halfW,
		(sp.rng.Float32()*2 - 1) * halfH,
	}
	return physics.NewParticle(w.AllocateID(), pos, mgl32.Vec2{}, sp.mass, radius, sp.restitution, sp.randomColor())
}

// jitteredRadius offsets the default radius by a uniform value in
// [-radius/4, +radius/4).
func (sp *Spawner) jitteredRadius() float32 {
	offset := sp.rng.Float32()*sp.radius*0.5 - sp.radius*0.25
	return sp.radius + offset
}

func (sp *Spawner) randomColor() physics.Color {
	return physics.Color{
		uint8(sp.rng.Intn(256)),
		uint8(sp.rng.Intn(256)),
		uint8(sp.rng.Intn(256)),
		255,
	}
}
