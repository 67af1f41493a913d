package integrators

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/partsim/internal/physics"
)

func TestVerletAccumulatedForce(t *testing.T) {
	integ := NewVerlet()
	p, err := physics.NewParticle(0, mgl32.Vec2{0, 100}, mgl32.Vec2{}, 2, 1, 0.85, physics.Color{})
	if err != nil {
		t.Fatalf("new particle failed: %v", err)
	}
	p.Force = mgl32.Vec2{4, 0}
	bounds := mgl32.Vec2{100000, 100000}

	integ.Step(&p, -10, 1, bounds, 1)

	if p.Pos != (mgl32.Vec2{2, 90}) {
		t.Errorf("expected position (2,90), got %v", p.Pos)
	}
	if p.PrevPos != (mgl32.Vec2{0, 100}) {
		t.Errorf("expected previous position (0,100), got %v", p.PrevPos)
	}
	if p.Force != (mgl32.Vec2{}) {
		t.Errorf("expected force reset after step, got %v", p.Force)
	}
	if got := integ.Velocity(&p); got != (mgl32.Vec2{2, -10}) {
		t.Errorf("expected implicit velocity (2,-10), got %v", got)
	}
}

func TestVerletForceLastsOneStep(t *testing.T) {
	integ := NewVerlet()
	p, err := physics.NewParticle(0, mgl32.Vec2{}, mgl32.Vec2{}, 1, 1, 0.85, physics.Color{})
	if err != nil {
		t.Fatalf("new particle failed: %v", err)
	}
	p.Force = mgl32.Vec2{5, 0}
	bounds := mgl32.Vec2{100000, 100000}

	integ.Step(&p, 0, 1, bounds, 1)
	if p.Pos[0] != 5 {
		t.Fatalf("expected x 5 after forced step, got %f", p.Pos[0])
	}

	integ.Step(&p, 0, 1, bounds, 1)
	if p.Pos[0] != 10 {
		t.Errorf("expected inertia to carry x to 10, got %f", p.Pos[0])
	}
	if got := integ.Velocity(&p); got[0] != 5 {
		t.Errorf("expected implicit velocity to stay 5, got %f", got[0])
	}
}

func TestVerletFloorReflection(t *testing.T) {
	integ := NewVerlet()
	p, err := physics.NewParticle(0, mgl32.Vec2{0, -90}, mgl32.Vec2{0, -10}, 1, 5, 0.85, physics.Color{})
	if err != nil {
		t.Fatalf("new particle failed: %v", err)
	}
	bounds := mgl32.Vec2{400, 200}

	integ.Step(&p, 0, 1, bounds, 1)

	if math.Abs(float64(p.Pos[1]+95)) > 1e-4 {
		t.Errorf("expected snap to floor at -95, got %f", p.Pos[1])
	}
	if got := integ.Velocity(&p); math.Abs(float64(got[1]-10)) > 1e-4 {
		t.Errorf("expected reflected implicit velocity +10, got %f", got[1])
	}

	integ.Step(&p, 0, 1, bounds, 1)
	if math.Abs(float64(p.Pos[1]+85)) > 1e-4 {
		t.Errorf("expected upward motion to -85, got %f", p.Pos[1])
	}
}

func TestVerletReflectionIgnoresRestitution(t *testing.T) {
	integ := NewVerlet()
	bounds := mgl32.Vec2{400, 200}

	for _, restitution := range []float32{0.3, 1.0} {
		p, err := physics.NewParticle(0, mgl32.Vec2{0, -90}, mgl32.Vec2{0, -10}, 1, 5, restitution, physics.Color{})
		if err != nil {
			t.Fatalf("new particle failed: %v", err)
		}

		integ.Step(&p, 0, 1, bounds, 1)

		if got := integ.Velocity(&p); math.Abs(float64(got[1]-10)) > 1e-4 {
			t.Errorf("expected full reflection at restitution %f, got %f", restitution, got[1])
		}
	}
}

func TestVerletWallReflection(t *testing.T) {
	integ := NewVerlet()
	p, err := physics.NewParticle(0, mgl32.Vec2{95, 0}, mgl32.Vec2{10, 0}, 1, 5, 0.85, physics.Color{})
	if err != nil {
		t.Fatalf("new particle failed: %v", err)
	}
	bounds := mgl32.Vec2{200, 400}

	integ.Step(&p, 0, 1, bounds, 1)

	if math.Abs(float64(p.Pos[0]-95)) > 1e-4 {
		t.Errorf("expected snap to wall at 95, got %f", p.Pos[0])
	}
	if got := integ.Velocity(&p); math.Abs(float64(got[0]+10)) > 1e-4 {
		t.Errorf("expected reflected implicit velocity -10, got %f", got[0])
	}
}

func TestVerletContainmentUnderGravity(t *testing.T) {
	integ := NewVerlet()
	p, err := physics.NewParticle(0, mgl32.Vec2{0, 250}, mgl32.Vec2{0.5, 0}, 10, 20, 0.85, physics.Color{})
	if err != nil {
		t.Fatalf("new particle failed: %v", err)
	}
	bounds := mgl32.Vec2{800, 600}
	dt := float32(1.0 / 60)

	for i := 0; i < 600; i++ {
		integ.Step(&p, -9.81, 100, bounds, dt)
		if math.Abs(float64(p.Pos[0])) > 400+1e-3 || math.Abs(float64(p.Pos[1])) > 300+1e-3 {
			t.Fatalf("expected containment, got %v at step %d", p.Pos, i)
		}
	}
}
