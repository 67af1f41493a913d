package scenario

import (
	"context"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/san-kum/partsim/internal/integrators"
	"github.com/san-kum/partsim/internal/physics"
	"github.com/san-kum/partsim/internal/sandbox"
)

func playerSession(t *testing.T) *sandbox.Session {
	t.Helper()
	w := physics.NewWorld(integrators.NewEuler(), -9.81, mgl32.Vec2{800, 600}, 100)
	sp := sandbox.NewSpawner(sandbox.SpawnerConfig{Seed: 1})
	return sandbox.NewSession(w, sp, zap.NewNop())
}

func TestPlayerFiresInOrderOnce(t *testing.T) {
	sc := &Scenario{Events: []Event{
		{At: 1, Spawn: &SpawnEvent{X: 10}},
		{At: 0, Spawn: &SpawnEvent{X: 0}},
		{At: 2, Clear: true},
	}}
	p := NewPlayer(sc)
	sess := playerSession(t)

	if fired := p.Advance(0, sess); fired != 1 {
		t.Errorf("expected 1 event at t=0, got %d", fired)
	}
	sess.StepFrame(1.0 / 60.0)
	if got := sess.ParticleCount(); got != 1 {
		t.Errorf("expected 1 particle after first event, got %d", got)
	}

	if fired := p.Advance(0.5, sess); fired != 0 {
		t.Errorf("expected no refire between events, got %d", fired)
	}

	if fired := p.Advance(1.5, sess); fired != 1 {
		t.Errorf("expected 1 event at t=1.5, got %d", fired)
	}
	sess.StepFrame(1.0 / 60.0)
	if got := sess.ParticleCount(); got != 2 {
		t.Errorf("expected 2 particles, got %d", got)
	}

	if fired := p.Advance(10, sess); fired != 1 {
		t.Errorf("expected the clear to fire, got %d", fired)
	}
	sess.StepFrame(1.0 / 60.0)
	if got := sess.ParticleCount(); got != 0 {
		t.Errorf("expected cleared world, got %d particles", got)
	}

	if p.Remaining() != 0 {
		t.Errorf("expected no remaining events, got %d", p.Remaining())
	}
	if fired := p.Advance(100, sess); fired != 0 {
		t.Errorf("expected exhausted player to fire nothing, got %d", fired)
	}
}

func TestPlayerUnsortedScenario(t *testing.T) {
	sc := &Scenario{Events: []Event{
		{At: 3, Clear: true},
		{At: 0, Spawn: &SpawnEvent{}},
	}}
	p := NewPlayer(sc)
	sess := playerSession(t)

	if fired := p.Advance(0, sess); fired != 1 {
		t.Errorf("expected only the t=0 event, got %d", fired)
	}
	if p.Remaining() != 1 {
		t.Errorf("expected the clear still pending, got %d remaining", p.Remaining())
	}
}

func TestPlayerPlay(t *testing.T) {
	sc := &Scenario{Events: []Event{
		{At: 0, Spawn: &SpawnEvent{Y: 250}},
		{At: 0.5, Burst: &BurstEvent{Count: 4, Speed: 40}},
	}}
	p := NewPlayer(sc)
	sess := playerSession(t)

	err := p.Play(context.Background(), sess, sandbox.RunConfig{Dt: 1.0 / 60.0, Duration: 1})
	if err != nil {
		t.Fatalf("play failed: %v", err)
	}

	if got := sess.FrameCount(); got != 60 {
		t.Errorf("expected 60 frames, got %d", got)
	}
	if got := sess.ParticleCount(); got != 5 {
		t.Errorf("expected spawn plus burst of 4, got %d particles", got)
	}
	if p.Remaining() != 0 {
		t.Errorf("expected all events fired, got %d remaining", p.Remaining())
	}
}

func TestPlayerPlayValidates(t *testing.T) {
	p := NewPlayer(&Scenario{})
	sess := playerSession(t)

	if err := p.Play(context.Background(), sess, sandbox.RunConfig{Dt: 0, Duration: 1}); err == nil {
		t.Error("expected error for zero dt")
	}
}

func TestPlayerPlayHonorsContext(t *testing.T) {
	p := NewPlayer(&Scenario{})
	sess := playerSession(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := p.Play(ctx, sess, sandbox.RunConfig{Dt: 1.0 / 60.0, Duration: 1000})
	if err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestPlayerRewind(t *testing.T) {
	sc := &Scenario{Events: []Event{{At: 0, Spawn: &SpawnEvent{}}}}
	p := NewPlayer(sc)
	sess := playerSession(t)

	p.Advance(0, sess)
	if p.Remaining() != 0 {
		t.Fatalf("expected no remaining, got %d", p.Remaining())
	}

	p.Rewind()
	if p.Remaining() != 1 {
		t.Errorf("expected rewound player to replay, got %d remaining", p.Remaining())
	}
}
