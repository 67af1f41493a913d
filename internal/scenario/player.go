package scenario

import (
	"context"
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/partsim/internal/sandbox"
)

// Player replays a scenario against a session: a cursor over the
// time-sorted events, firing each one exactly once.
type Player struct {
	events []Event
	cursor int
}

func NewPlayer(sc *Scenario) *Player {
	events := append([]Event(nil), sc.Events...)
	sort.SliceStable(events, func(i, j int) bool { return events[i].At < events[j].At })
	return &Player{events: events}
}

// Advance enqueues every unfired event with At <= t, in order, and
// returns how many fired.
func (p *Player) Advance(t float32, sess *sandbox.Session) int {
	fired := 0
	for p.cursor < len(p.events) && p.events[p.cursor].At <= t {
		apply(&p.events[p.cursor], sess)
		p.cursor++
		fired++
	}
	return fired
}

// Remaining reports how many events have not fired yet.
func (p *Player) Remaining() int {
	return len(p.events) - p.cursor
}

// Rewind resets the cursor so the scenario can replay from the start.
func (p *Player) Rewind() {
	p.cursor = 0
}

// Play drives a full run: before each frame it fires the events due at
// that frame's start time, then steps the session.
func (p *Player) Play(ctx context.Context, sess *sandbox.Session, rc sandbox.RunConfig) error {
	if err := rc.Validate(); err != nil {
		return err
	}
	sess.ResetMetrics()

	steps := rc.Steps()
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		p.Advance(float32(i)*rc.Dt, sess)
		sess.StepFrame(rc.Dt)
	}
	return nil
}

func apply(ev *Event, sess *sandbox.Session) {
	switch {
	case ev.Spawn != nil:
		sp := ev.Spawn
		sess.Spawn(sandbox.SpawnRequest{
			Pos:         mgl32.Vec2{sp.X, sp.Y},
			Vel:         mgl32.Vec2{sp.VX, sp.VY},
			Mass:        sp.Mass,
			Radius:      sp.Radius,
			Restitution: sp.Restitution,
		})
	case ev.Burst != nil:
		sess.Burst(mgl32.Vec2{ev.Burst.X, ev.Burst.Y}, ev.Burst.Count, ev.Burst.Speed)
	case ev.Link != nil:
		sess.Link(ev.Link.A, ev.Link.B, ev.Link.Rest)
	case ev.Impulse != nil:
		sess.Impulse(ev.Impulse.DX, ev.Impulse.DY)
	case ev.Bounds != nil:
		sess.Resize(ev.Bounds.Width, ev.Bounds.Height)
	case ev.Clear:
		sess.Clear()
	}
}
