// Package tui hosts the live watch dashboard: a bubbletea model that
// advances a sandbox session one frame per tick and maps the keyboard onto
// session commands.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/partsim/internal/sandbox"
	"github.com/san-kum/partsim/internal/scenario"
	"github.com/san-kum/partsim/internal/viz"
)

type TickMsg time.Time

// Model steps the session at 60 FPS. Keys queue session commands, so a
// burst fired from the dashboard lands exactly like one from a scenario
// file: at the start of the next frame.
type Model struct {
	sess   *sandbox.Session
	player *scenario.Player
	dt     float32
	mode   string

	paused bool
	width  int
	height int
}

// NewModel wires a session, an optional scenario player, and the per-frame
// dt into a watch model. mode is shown in the header.
func NewModel(sess *sandbox.Session, player *scenario.Player, dt float32, mode string) Model {
	return Model{
		sess:   sess,
		player: player,
		dt:     dt,
		mode:   mode,
		width:  80,
		height: 24,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "r":
			m.sess.Clear()
		case "b":
			m.sess.Burst(mgl32.Vec2{0, 0}, 8, 90)
		case "i":
			m.sess.Impulse(0, 140)
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case TickMsg:
		if !m.paused {
			if m.player != nil {
				t := float32(m.sess.FrameCount()) * m.dt
				m.player.Advance(t, m.sess)
			}
			m.sess.StepFrame(m.dt)
		}
		return m, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m Model) View() string {
	snap := m.sess.Snapshot()

	var b strings.Builder
	b.WriteString(viz.HeaderStyle.Render("partsim · " + m.mode))
	b.WriteString("\n")

	status := viz.RunningStyle.Render("● running")
	if m.paused {
		status = viz.PausedStyle.Render("○ paused")
	}
	b.WriteString(status)
	b.WriteString("\n\n")

	b.WriteString(viz.Stat("frame", fmt.Sprintf("%d", snap.Frame)) + "\n")
	b.WriteString(viz.Stat("time", fmt.Sprintf("%.2fs", snap.Time)) + "\n")
	b.WriteString(viz.Stat("particles", fmt.Sprintf("%d", len(snap.Particles))) + "\n")
	b.WriteString(viz.Stat("sticks", fmt.Sprintf("%d", len(snap.Sticks))) + "\n")
	b.WriteString(viz.Stat("energy", fmt.Sprintf("%.1f", m.sess.KineticEnergy())) + "\n")
	if m.player != nil {
		b.WriteString(viz.Stat("events left", fmt.Sprintf("%d", m.player.Remaining())) + "\n")
	}

	sparkWidth := m.width - 4
	if sparkWidth > 60 {
		sparkWidth = 60
	}
	if sparkWidth < 10 {
		sparkWidth = 10
	}
	b.WriteString("\n")
	b.WriteString(viz.Sparkline(m.sess.EnergySeries(), sparkWidth))
	b.WriteString("\n")

	b.WriteString(viz.HelpStyle.Render("space pause  b burst  i impulse  r clear  q quit"))
	b.WriteString("\n")
	return b.String()
}

// RunWatch drives the dashboard until the user quits.
func RunWatch(sess *sandbox.Session, player *scenario.Player, dt float32, mode string) error {
	p := tea.NewProgram(NewModel(sess, player, dt, mode), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
