package script

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/touchgesture/internal/gesture"
	"github.com/dshills/touchgesture/internal/logging"
	"github.com/dshills/touchgesture/internal/touch"
)

// DefaultTimeout bounds a single script run or callback.
const DefaultTimeout = 5 * time.Second

// Host runs Lua scripts against a gesture registry.
//
// gopher-lua states are not goroutine-safe. The host serializes script runs
// and gesture callbacks with a mutex, so callbacks may fire from any
// surface goroutine.
type Host struct {
	mu       sync.Mutex
	L        *lua.LState
	registry *gesture.Registry
	resolver touch.Resolver
	logger   *logging.Logger
	timeout  time.Duration

	bindings map[binding]struct{}
	closed   bool
}

// binding records a registration made by a script.
type binding struct {
	surface touch.Surface
	key     gesture.Key
}

// Option configures a Host.
type Option func(*Host)

// WithLogger sets the logger that receives print output and callback
// failures.
func WithLogger(l *logging.Logger) Option {
	return func(h *Host) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithTimeout bounds each script run and callback. Zero disables the limit.
func WithTimeout(d time.Duration) Option {
	return func(h *Host) {
		if d >= 0 {
			h.timeout = d
		}
	}
}

// NewHost creates a host whose scripts register on reg and name surfaces
// known to resolver.
func NewHost(reg *gesture.Registry, resolver touch.Resolver, opts ...Option) *Host {
	h := &Host{
		registry: reg,
		resolver: resolver,
		logger:   logging.Null,
		timeout:  DefaultTimeout,
		bindings: make(map[binding]struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.logger = h.logger.WithComponent("script")

	h.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(h.L)
	h.L.SetGlobal("print", h.L.NewFunction(h.print))
	h.registerModule()

	return h
}

// openSafeLibraries opens the libraries scripts may use. io, os, debug and
// package are left closed, and the chunk loaders are removed.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// Run executes code. name identifies the chunk in errors.
func (h *Host) Run(ctx context.Context, name, code string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrHostClosed
	}

	fn, err := h.L.Load(strings.NewReader(code), name)
	if err != nil {
		return &Error{Script: name, Err: err}
	}
	if _, err := h.call(ctx, fn); err != nil {
		return &Error{Script: name, Err: err}
	}
	return nil
}

// RunFile executes the script at path.
func (h *Host) RunFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading script %s: %w", path, err)
	}
	return h.Run(ctx, path, string(data))
}

// Bindings returns the number of gestures currently registered by scripts.
func (h *Host) Bindings() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.bindings)
}

// Close unregisters every gesture registered by scripts and releases the
// Lua state.
func (h *Host) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil
	}
	h.closed = true

	for b := range h.bindings {
		_ = h.registry.Unregister(b.surface, b.key.Kind, b.key.Fingers)
	}
	h.bindings = nil
	h.L.Close()
	return nil
}

// call runs fn with args under the host timeout and returns its first
// result. The caller holds h.mu.
func (h *Host) call(ctx context.Context, fn *lua.LFunction, args ...lua.LValue) (ret lua.LValue, err error) {
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}
	h.L.SetContext(ctx)
	defer h.L.RemoveContext()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()

	if err := h.L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, args...); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return lua.LNil, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return lua.LNil, err
	}

	ret = h.L.Get(-1)
	h.L.Pop(1)
	return ret, nil
}

// print writes its arguments to the host logger.
func (h *Host) print(L *lua.LState) int {
	n := L.GetTop()
	parts := make([]string, n)
	for i := 1; i <= n; i++ {
		parts[i-1] = L.ToStringMeta(L.Get(i)).String()
	}
	h.logger.Info("%s", strings.Join(parts, "\t"))
	return 0
}
