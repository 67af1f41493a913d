package scenario

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Scenario defines a timed sequence of sandbox commands
type Scenario struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Events      []Event `yaml:"events"`
}

// Event fires one action once simulation time reaches At. Exactly one
// action field must be set.
type Event struct {
	At      float32       `yaml:"at"`
	Spawn   *SpawnEvent   `yaml:"spawn,omitempty"`
	Burst   *BurstEvent   `yaml:"burst,omitempty"`
	Link    *LinkEvent    `yaml:"link,omitempty"`
	Impulse *ImpulseEvent `yaml:"impulse,omitempty"`
	Bounds  *BoundsEvent  `yaml:"bounds,omitempty"`
	Clear   bool          `yaml:"clear,omitempty"`
}

// SpawnEvent creates one particle with explicit kinematics. Zero mass,
// radius, or restitution fall back to the spawner defaults.
type SpawnEvent struct {
	X           float32 `yaml:"x"`
	Y           float32 `yaml:"y"`
	VX          float32 `yaml:"vx"`
	VY          float32 `yaml:"vy"`
	Mass        float32 `yaml:"mass"`
	Radius      float32 `yaml:"radius"`
	Restitution float32 `yaml:"restitution"`
}

// BurstEvent spawns a ring of particles leaving (X, Y) at Speed.
type BurstEvent struct {
	X     float32 `yaml:"x"`
	Y     float32 `yaml:"y"`
	Count int     `yaml:"count"`
	Speed float32 `yaml:"speed"`
}

// LinkEvent creates a stick between two particle ids.
type LinkEvent struct {
	A    uint32  `yaml:"a"`
	B    uint32  `yaml:"b"`
	Rest float32 `yaml:"rest"`
}

// ImpulseEvent applies a global force to every particle for one step.
type ImpulseEvent struct {
	DX float32 `yaml:"dx"`
	DY float32 `yaml:"dy"`
}

// BoundsEvent resizes the world rectangle.
type BoundsEvent struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

// Load reads a scenario from a YAML file, rejecting unknown fields,
// validates it, and sorts events by time.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var sc Scenario
	if err := dec.Decode(&sc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	sort.SliceStable(sc.Events, func(i, j int) bool { return sc.Events[i].At < sc.Events[j].At })
	return &sc, nil
}

// Validate checks that every event has a non-negative time and exactly
// one action.
func (sc *Scenario) Validate() error {
	for i, ev := range sc.Events {
		if ev.At < 0 {
			return fmt.Errorf("event %d: negative time %f", i+1, ev.At)
		}
		switch n := ev.actionCount(); {
		case n == 0:
			return fmt.Errorf("event %d: no action", i+1)
		case n > 1:
			return fmt.Errorf("event %d: multiple actions", i+1)
		}
	}
	for i, ev := range sc.Events {
		if ev.Burst != nil && ev.Burst.Count <= 0 {
			return fmt.Errorf("event %d: burst count must be positive, got %d", i+1, ev.Burst.Count)
		}
		if ev.Bounds != nil && (ev.Bounds.Width <= 0 || ev.Bounds.Height <= 0) {
			return fmt.Errorf("event %d: bounds must be positive, got %fx%f", i+1, ev.Bounds.Width, ev.Bounds.Height)
		}
	}
	return nil
}

func (ev *Event) actionCount() int {
	n := 0
	if ev.Spawn != nil {
		n++
	}
	if ev.Burst != nil {
		n++
	}
	if ev.Link != nil {
		n++
	}
	if ev.Impulse != nil {
		n++
	}
	if ev.Bounds != nil {
		n++
	}
	if ev.Clear {
		n++
	}
	return n
}
