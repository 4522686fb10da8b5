package script

import (
	"context"
	"fmt"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/touchgesture/internal/gesture"
)

// ModuleName is the global the gesture module is installed as.
const ModuleName = "gesture"

func (h *Host) registerModule() {
	mod := h.L.SetFuncs(h.L.NewTable(), map[string]lua.LGFunction{
		"swipe":   h.swipe,
		"tap":     h.tap,
		"unswipe": h.unswipe,
		"untap":   h.untap,
	})
	h.L.SetGlobal(ModuleName, mod)
}

// swipe(surface, direction, fn [, opts]) -> ok, err
func (h *Host) swipe(L *lua.LState) int {
	name := L.CheckString(1)
	dir, err := gesture.ParseDirection(L.CheckString(2))
	fn := L.CheckFunction(3)
	opts := L.OptTable(4, nil)
	if err != nil {
		return fail(L, err)
	}
	return h.register(L, name, dir.Kind(), fn, opts)
}

// tap(surface, fn [, opts]) -> ok, err
func (h *Host) tap(L *lua.LState) int {
	name := L.CheckString(1)
	fn := L.CheckFunction(2)
	opts := L.OptTable(3, nil)
	return h.register(L, name, gesture.KindTap, fn, opts)
}

// unswipe(surface, direction [, fingers]) -> ok
func (h *Host) unswipe(L *lua.LState) int {
	name := L.CheckString(1)
	dir, err := gesture.ParseDirection(L.CheckString(2))
	fingers := L.OptInt(3, gesture.DefaultFingers)
	if err != nil {
		L.Push(lua.LFalse)
		return 1
	}
	return h.unregister(L, name, dir.Kind(), fingers)
}

// untap(surface [, fingers]) -> ok
func (h *Host) untap(L *lua.LState) int {
	name := L.CheckString(1)
	fingers := L.OptInt(2, gesture.DefaultFingers)
	return h.unregister(L, name, gesture.KindTap, fingers)
}

func (h *Host) register(L *lua.LState, name string, kind gesture.Kind, fn *lua.LFunction, opts *lua.LTable) int {
	surface, err := h.resolver.Resolve(name)
	if err != nil {
		return fail(L, err)
	}

	fingers, c, err := options(opts)
	if err != nil {
		return fail(L, err)
	}
	cb := h.callback(name, fn)
	if err := h.registry.Register(surface, kind, fingers, cb, c); err != nil {
		return fail(L, err)
	}

	h.bindings[binding{surface: surface, key: gesture.Key{Kind: kind, Fingers: fingers}}] = struct{}{}
	L.Push(lua.LTrue)
	return 1
}

func (h *Host) unregister(L *lua.LState, name string, kind gesture.Kind, fingers int) int {
	surface, err := h.resolver.Resolve(name)
	if err != nil {
		L.Push(lua.LFalse)
		return 1
	}

	err = h.registry.Unregister(surface, kind, fingers)
	delete(h.bindings, binding{surface: surface, key: gesture.Key{Kind: kind, Fingers: fingers}})
	L.Push(lua.LBool(err == nil))
	return 1
}

// callback wraps a Lua function as a gesture callback. A Lua error or a
// false result lets the gesture fall through.
func (h *Host) callback(surface string, fn *lua.LFunction) gesture.Callback {
	return func(g *gesture.Gesture) {
		h.mu.Lock()
		defer h.mu.Unlock()

		if h.closed {
			g.Defer()
			return
		}

		ret, err := h.call(context.Background(), fn, gestureTable(h.L, surface, g))
		if err != nil {
			h.logger.Warn("%s callback on %s: %v", g.Name(), surface, err)
			g.Defer()
			return
		}
		if ret == lua.LFalse {
			g.Defer()
		}
	}
}

// options reads the optional registration table.
func options(opts *lua.LTable) (int, gesture.Constraints, error) {
	fingers := gesture.DefaultFingers
	var c gesture.Constraints
	if opts == nil {
		return fingers, c, nil
	}

	if n, ok := opts.RawGetString("fingers").(lua.LNumber); ok {
		if lua.LNumber(int(n)) != n {
			return 0, c, fmt.Errorf("%w: %v", gesture.ErrInvalidFingers, n)
		}
		fingers = int(n)
	}
	if n, ok := opts.RawGetString("duration").(lua.LNumber); ok {
		c.Duration = time.Duration(float64(n) * float64(time.Millisecond))
	}
	if n, ok := opts.RawGetString("threshold").(lua.LNumber); ok {
		c.Threshold = float64(n)
	}
	if n, ok := opts.RawGetString("restraint").(lua.LNumber); ok {
		c.Restraint = float64(n)
	}
	return fingers, c, nil
}

// gestureTable converts g for a Lua callback.
func gestureTable(L *lua.LState, surface string, g *gesture.Gesture) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("kind", lua.LString(g.Name()))
	t.RawSetString("fingers", lua.LNumber(g.Fingers))
	t.RawSetString("dist_x", numbers(L, g.DistX))
	t.RawSetString("dist_y", numbers(L, g.DistY))
	t.RawSetString("duration", lua.LNumber(float64(g.Duration)/float64(time.Millisecond)))
	t.RawSetString("surface", lua.LString(surface))
	if g.Target != nil {
		t.RawSetString("target", lua.LString(fmt.Sprint(g.Target)))
	}
	return t
}

func numbers(L *lua.LState, values []float64) *lua.LTable {
	t := L.CreateTable(len(values), 0)
	for _, v := range values {
		t.Append(lua.LNumber(v))
	}
	return t
}

func fail(L *lua.LState, err error) int {
	L.Push(lua.LFalse)
	L.Push(lua.LString(err.Error()))
	return 2
}
