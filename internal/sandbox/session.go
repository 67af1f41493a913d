package sandbox

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/san-kum/partsim/internal/metrics"
	"github.com/san-kum/partsim/internal/physics"
)

type Session struct {
	mu      sync.Mutex
	world   *physics.World
	spawner *Spawner
	queue   []func(*physics.World)
	metrics []metrics.Metric
	rec     *Recorder
	log     *zap.Logger
	frame   uint64
	elapsed float32
}

type RunConfig struct {
	Dt       float32
	Duration float32
}

func (rc RunConfig) Validate() error {
	if rc.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", rc.Dt)
	}
	if rc.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", rc.Duration)
	}
	return nil
}

// Steps rounds to the nearest whole frame so a 1s run at 1/60 dt is 60
// frames despite float32 division error.
func (rc RunConfig) Steps() int {
	return int(math.Round(float64(rc.Duration) / float64(rc.Dt)))
}

type StickLine struct {
	A    mgl32.Vec2
	B    mgl32.Vec2
	Rest float32
}

type Snapshot struct {
	Frame     uint64
	Time      float32
	Bounds    mgl32.Vec2
	Particles []physics.Particle
	Sticks    []StickLine
}

func NewSession(w *physics.World, sp *Spawner, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{
		world:   w,
		spawner: sp,
		rec:     NewRecorder(),
		log:     log,
	}
}

func (s *Session) AddMetric(m metrics.Metric) {
	s.mu.Lock()
	s.metrics = append(s.metrics, m)
	s.mu.Unlock()
}

func (s *Session) ResetMetrics() {
	s.mu.Lock()
	for _, m := range s.metrics {
		m.Reset()
	}
	s.mu.Unlock()
}

func (s *Session) Do(cmd func(*physics.World)) {
	s.mu.Lock()
	s.queue = append(s.queue, cmd)
	s.mu.Unlock()
}

func (s *Session) Spawn(req SpawnRequest) {
	s.Do(func(w *physics.World) {
		p, err := s.spawner.Make(w, req)
		if err != nil {
			s.log.Warn("spawn rejected", zap.Error(err))
			return
		}
		if err := w.AddParticle(p); err != nil {
			s.log.Warn("spawn rejected", zap.Error(err))
		}
	})
}

// SpawnNow creates a particle immediately instead of queueing, returning
// its id. Used by drivers that need the id before the next frame, such as
// scripts linking freshly spawned particles.
func (s *Session) SpawnNow(req SpawnRequest) (uint32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.spawner.Make(s.world, req)
	if err != nil {
		return 0, err
	}
	if err := s.world.AddParticle(p); err != nil {
		return 0, err
	}
	return p.ID, nil
}

func (s *Session) SpawnAt(pos, aim mgl32.Vec2) {
	s.Do(func(w *physics.World) {
		p, err := s.spawner.MakeAt(w, pos, aim)
		if err != nil {
			s.log.Warn("spawn rejected", zap.Error(err))
			return
		}
		if err := w.AddParticle(p); err != nil {
			s.log.Warn("spawn rejected", zap.Error(err))
		}
	})
}

func (s *Session) Burst(center mgl32.Vec2, n int, speed float32) {
	s.Do(func(w *physics.World) {
		for i := 0; i < n; i++ {
			p, err := s.spawner.RingParticle(w, center, i, n, speed)
			if err != nil {
				s.log.Warn("spawn rejected", zap.Error(err))
				continue
			}
			if err := w.AddParticle(p); err != nil {
				s.log.Warn("spawn rejected", zap.Error(err))
			}
		}
	})
}

func (s *Session) Link(a, b uint32, rest float32) {
	s.Do(func(w *physics.World) {
		w.AddStick(physics.Stick{A: a, B: b, RestLength: rest})
	})
}

func (s *Session) LinkLast(rest float32) {
	s.Do(func(w *physics.World) {
		n := w.NextID()
		if n < 2 {
			return
		}
		w.AddStick(physics.Stick{A: n - 2, B: n - 1, RestLength: rest})
	})
}

func (s *Session) Impulse(dx, dy float32) {
	s.Do(func(w *physics.World) {
		w.ApplyGlobalImpulse(dx, dy)
	})
}

func (s *Session) Clear() {
	s.Do(func(w *physics.World) {
		w.Clear()
	})
}

func (s *Session) Resize(width, height float32) {
	s.Do(func(w *physics.World) {
		w.SetBounds(mgl32.Vec2{width, height})
	})
}

func (s *Session) StepFrame(dt float32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending := s.queue
	s.queue = nil
	for _, cmd := range pending {
		cmd(s.world)
	}

	s.world.Step(dt)
	s.frame++
	s.elapsed += dt

	for _, m := range s.metrics {
		m.Observe(s.world, s.elapsed)
	}
	s.rec.Capture(s.world, s.elapsed)
}

func (s *Session) Run(ctx context.Context, rc RunConfig) error {
	if err := rc.Validate(); err != nil {
		return err
	}
	s.ResetMetrics()

	steps := rc.Steps()
	s.log.Debug("run starting", zap.Int("steps", steps), zap.Float32("dt", rc.Dt))

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		s.StepFrame(rc.Dt)
	}

	s.log.Debug("run finished", zap.Int("steps", steps))
	return nil
}

func (s *Session) RunWithCallback(ctx context.Context, rc RunConfig, callback func(Snapshot) bool) error {
	if err := rc.Validate(); err != nil {
		return err
	}

	steps := rc.Steps()
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		s.StepFrame(rc.Dt)
		if !callback(s.Snapshot()) {
			return nil
		}
	}

	return nil
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Frame:  s.frame,
		Time:   s.elapsed,
		Bounds: s.world.Bounds(),
	}
	snap.Particles = append([]physics.Particle(nil), s.world.Particles()...)
	for _, st := range s.world.Sticks() {
		a, b, ok := s.world.ResolveStick(st)
		if !ok {
			continue
		}
		snap.Sticks = append(snap.Sticks, StickLine{A: a.Pos, B: b.Pos, Rest: st.RestLength})
	}
	return snap
}

func (s *Session) ParticleCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.world.Particles())
}

func (s *Session) ParticlePos(id uint32) (mgl32.Vec2, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.world.FindParticle(id)
	if p == nil {
		return mgl32.Vec2{}, false
	}
	return p.Pos, true
}

func (s *Session) KineticEnergy() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return worldKineticEnergy(s.world)
}

func (s *Session) MetricValues() map[string]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	vals := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		vals[m.Name()] = m.Value()
	}
	return vals
}

func (s *Session) FrameCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.Len()
}

func (s *Session) EnergySeries() []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.EnergySeries()
}

func (s *Session) YSeries() []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.YSeries()
}

func (s *Session) VYSeries() []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.VYSeries()
}
