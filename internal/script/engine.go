package script

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/san-kum/partsim/internal/sandbox"
)

// Engine wraps a single gopher-lua VM driving a sandbox session.
// Single-goroutine access only (the script owns the frame loop).
type Engine struct {
	vm   *lua.LState
	sess *sandbox.Session
	log  *zap.Logger
}

// NewEngine creates a Lua engine bound to a session and registers the
// sandbox API as globals. Spawn returns its id immediately; the other
// mutating calls queue until the next step.
func NewEngine(sess *sandbox.Session, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}

	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	e := &Engine{vm: vm, sess: sess, log: log}

	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	vm.SetGlobal("spawn", vm.NewFunction(e.luaSpawn))
	vm.SetGlobal("burst", vm.NewFunction(e.luaBurst))
	vm.SetGlobal("link", vm.NewFunction(e.luaLink))
	vm.SetGlobal("impulse", vm.NewFunction(e.luaImpulse))
	vm.SetGlobal("clear", vm.NewFunction(e.luaClear))
	vm.SetGlobal("resize", vm.NewFunction(e.luaResize))
	vm.SetGlobal("step", vm.NewFunction(e.luaStep))
	vm.SetGlobal("particles", vm.NewFunction(e.luaParticles))
	vm.SetGlobal("energy", vm.NewFunction(e.luaEnergy))
	vm.SetGlobal("pos", vm.NewFunction(e.luaPos))

	return e
}

// Run executes a script file.
func (e *Engine) Run(path string) error {
	if err := e.vm.DoFile(path); err != nil {
		e.log.Error("lua script error", zap.String("file", path), zap.Error(err))
		return fmt.Errorf("run %s: %w", path, err)
	}
	return nil
}

// RunString executes inline Lua source.
func (e *Engine) RunString(src string) error {
	if err := e.vm.DoString(src); err != nil {
		e.log.Error("lua script error", zap.Error(err))
		return err
	}
	return nil
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}

// spawn(tbl) -> id. Creates a particle immediately so the script can link
// it before the next step. Absent table fields fall back to spawner
// defaults.
func (e *Engine) luaSpawn(L *lua.LState) int {
	tbl := L.OptTable(1, L.NewTable())

	req := sandbox.SpawnRequest{
		Pos:         mgl32.Vec2{lFloat(tbl, "x"), lFloat(tbl, "y")},
		Vel:         mgl32.Vec2{lFloat(tbl, "vx"), lFloat(tbl, "vy")},
		Mass:        lFloat(tbl, "mass"),
		Radius:      lFloat(tbl, "radius"),
		Restitution: lFloat(tbl, "restitution"),
	}

	id, err := e.sess.SpawnNow(req)
	if err != nil {
		L.RaiseError("spawn: %s", err.Error())
		return 0
	}
	L.Push(lua.LNumber(id))
	return 1
}

// burst(n, x, y, speed)
func (e *Engine) luaBurst(L *lua.LState) int {
	n := L.CheckInt(1)
	x := float32(L.CheckNumber(2))
	y := float32(L.CheckNumber(3))
	speed := float32(L.CheckNumber(4))
	if n <= 0 {
		L.RaiseError("burst: count must be positive, got %d", n)
		return 0
	}
	e.sess.Burst(mgl32.Vec2{x, y}, n, speed)
	return 0
}

// link(a, b, rest)
func (e *Engine) luaLink(L *lua.LState) int {
	a := uint32(L.CheckInt(1))
	b := uint32(L.CheckInt(2))
	rest := float32(L.CheckNumber(3))
	e.sess.Link(a, b, rest)
	return 0
}

// impulse(dx, dy)
func (e *Engine) luaImpulse(L *lua.LState) int {
	dx := float32(L.CheckNumber(1))
	dy := float32(L.CheckNumber(2))
	e.sess.Impulse(dx, dy)
	return 0
}

// clear()
func (e *Engine) luaClear(L *lua.LState) int {
	e.sess.Clear()
	return 0
}

// resize(w, h)
func (e *Engine) luaResize(L *lua.LState) int {
	w := float32(L.CheckNumber(1))
	h := float32(L.CheckNumber(2))
	if w <= 0 || h <= 0 {
		L.RaiseError("resize: bounds must be positive, got %fx%f", w, h)
		return 0
	}
	e.sess.Resize(w, h)
	return 0
}

// step(dt, n). n defaults to 1.
func (e *Engine) luaStep(L *lua.LState) int {
	dt := float32(L.CheckNumber(1))
	n := L.OptInt(2, 1)
	if dt <= 0 {
		L.RaiseError("step: dt must be positive, got %f", dt)
		return 0
	}
	for i := 0; i < n; i++ {
		e.sess.StepFrame(dt)
	}
	return 0
}

// particles() -> n
func (e *Engine) luaParticles(L *lua.LState) int {
	L.Push(lua.LNumber(e.sess.ParticleCount()))
	return 1
}

// energy() -> e
func (e *Engine) luaEnergy(L *lua.LState) int {
	L.Push(lua.LNumber(e.sess.KineticEnergy()))
	return 1
}

// pos(id) -> x, y | nil
func (e *Engine) luaPos(L *lua.LState) int {
	id := uint32(L.CheckInt(1))
	pos, ok := e.sess.ParticlePos(id)
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(pos[0]))
	L.Push(lua.LNumber(pos[1]))
	return 2
}

// lFloat reads a float field from a Lua table.
func lFloat(t *lua.LTable, key string) float32 {
	return float32(lua.LVAsNumber(t.RawGetString(key)))
}
