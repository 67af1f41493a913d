package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/san-kum/partsim/internal/integrators"
	"github.com/san-kum/partsim/internal/physics"
	"github.com/san-kum/partsim/internal/sandbox"
	"github.com/san-kum/partsim/internal/scenario"
)

func testModel(t *testing.T, player *scenario.Player) (Model, *sandbox.Session) {
	t.Helper()
	w := physics.NewWorld(integrators.NewEuler(), -9.81, mgl32.Vec2{800, 600}, 100)
	sp := sandbox.NewSpawner(sandbox.SpawnerConfig{Seed: 1})
	sess := sandbox.NewSession(w, sp, zap.NewNop())
	return NewModel(sess, player, 1.0/60.0, "euler"), sess
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	nm, cmd := m.Update(msg)
	got, ok := nm.(Model)
	if !ok {
		t.Fatalf("update returned %T, expected Model", nm)
	}
	return got, cmd
}

func TestWatchTickStepsOneFrame(t *testing.T) {
	m, sess := testModel(t, nil)

	m, cmd := update(t, m, TickMsg(time.Now()))
	if got := sess.FrameCount(); got != 1 {
		t.Errorf("expected 1 frame after tick, got %d", got)
	}
	if cmd == nil {
		t.Error("expected tick to re-arm")
	}
	_ = m
}

func TestWatchPauseStopsStepping(t *testing.T) {
	m, sess := testModel(t, nil)

	m, _ = update(t, m, keyMsg(" "))
	m, _ = update(t, m, TickMsg(time.Now()))
	if got := sess.FrameCount(); got != 0 {
		t.Errorf("expected no frames while paused, got %d", got)
	}

	m, _ = update(t, m, keyMsg(" "))
	m, _ = update(t, m, TickMsg(time.Now()))
	if got := sess.FrameCount(); got != 1 {
		t.Errorf("expected stepping to resume, got %d frames", got)
	}
	_ = m
}

func TestWatchQuitKey(t *testing.T) {
	m, _ := testModel(t, nil)

	_, cmd := update(t, m, keyMsg("q"))
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected quit message, got %T", cmd())
	}
}

func TestWatchBurstKeyQueuesParticles(t *testing.T) {
	m, sess := testModel(t, nil)

	m, _ = update(t, m, keyMsg("b"))
	if got := sess.ParticleCount(); got != 0 {
		t.Fatalf("expected burst to wait for the frame, got %d particles", got)
	}

	m, _ = update(t, m, TickMsg(time.Now()))
	if got := sess.ParticleCount(); got != 8 {
		t.Errorf("expected 8 particles after frame, got %d", got)
	}
	_ = m
}

func TestWatchClearKey(t *testing.T) {
	m, sess := testModel(t, nil)

	m, _ = update(t, m, keyMsg("b"))
	m, _ = update(t, m, TickMsg(time.Now()))
	m, _ = update(t, m, keyMsg("r"))
	m, _ = update(t, m, TickMsg(time.Now()))

	if got := sess.ParticleCount(); got != 0 {
		t.Errorf("expected clear to empty the world, got %d particles", got)
	}
	_ = m
}

func TestWatchScenarioPlayerFiresBeforeFrame(t *testing.T) {
	sc := &scenario.Scenario{
		Events: []scenario.Event{
			{At: 0, Spawn: &scenario.SpawnEvent{Y: 100, Mass: 10, Radius: 5}},
		},
	}
	m, sess := testModel(t, scenario.NewPlayer(sc))

	m, _ = update(t, m, TickMsg(time.Now()))
	if got := sess.ParticleCount(); got != 1 {
		t.Errorf("expected scenario spawn on first tick, got %d particles", got)
	}
	if got := sess.FrameCount(); got != 1 {
		t.Errorf("expected 1 frame, got %d", got)
	}
	_ = m
}

func TestWatchViewShowsStats(t *testing.T) {
	m, _ := testModel(t, nil)

	out := m.View()
	for _, want := range []string{"frame", "particles", "energy", "running", "q quit"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in view", want)
		}
	}

	m, _ = update(t, m, keyMsg(" "))
	if !strings.Contains(m.View(), "paused") {
		t.Error("expected paused status in view")
	}
}
