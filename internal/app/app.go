// Package app wires the gesture recognizer to its profile, scripts and
// consumers. It owns the lifecycle shared by the command-line tools: load
// the profile, bind it to the surfaces of a platform, run scripts, reload
// on change and shut everything down in reverse order.
package app

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"

	"github.com/dshills/touchgesture/internal/config"
	"github.com/dshills/touchgesture/internal/event"
	"github.com/dshills/touchgesture/internal/event/topic"
	"github.com/dshills/touchgesture/internal/gesture"
	"github.com/dshills/touchgesture/internal/logging"
	"github.com/dshills/touchgesture/internal/nav"
	"github.com/dshills/touchgesture/internal/script"
	"github.com/dshills/touchgesture/internal/touch"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the profile file.
	ConfigPath string

	// Profile is used when ConfigPath is empty. Nil means an empty profile.
	Profile *config.Profile

	// Scripts are Lua files run after the profile is applied.
	Scripts []string

	// LogLevel overrides the profile's log level when set.
	LogLevel string

	// LogOutput receives log lines. Defaults to os.Stderr.
	LogOutput io.Writer
}

// Application is the central coordinator for the recognizer and the
// components that feed and consume it.
type Application struct {
	mu sync.Mutex

	opts     Options
	resolver touch.Resolver

	logger   *logging.Logger
	bus      *event.Bus
	registry *gesture.Registry
	nav      *nav.Nav
	metrics  *Metrics

	profile *config.Profile
	host    *script.Host
	watcher *config.Watcher
	subs    []event.Subscription

	actionsMu sync.RWMutex
	actions   map[string]config.ActionFunc

	closed atomic.Bool
}

// New creates an application whose profile and scripts name the surfaces
// known to resolver.
func New(ctx context.Context, opts Options, resolver touch.Resolver) (*Application, error) {
	app := &Application{
		opts:     opts,
		resolver: resolver,
		metrics:  NewMetrics(),
		actions:  make(map[string]config.ActionFunc),
	}
	if err := app.bootstrap(ctx); err != nil {
		app.Shutdown()
		return nil, err
	}
	return app, nil
}

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap(ctx context.Context) error {
	// 1. Profile
	profile := app.opts.Profile
	if profile == nil {
		profile = config.Default()
	}
	if app.opts.ConfigPath != "" {
		p, err := config.Load(app.opts.ConfigPath)
		if err != nil {
			return &InitError{Component: "profile", Err: err}
		}
		profile = p
	}

	// 2. Logger
	level := profile.Level(logging.LevelInfo)
	if app.opts.LogLevel != "" {
		level = logging.ParseLevel(app.opts.LogLevel)
	}
	app.logger = logging.New(logging.Config{
		Level:  level,
		Output: app.opts.LogOutput,
		Prefix: "touchgesture",
	})

	// 3. Event bus and the subscribers owned by the application
	app.bus = event.NewBus(event.WithLogger(app.logger.WithComponent("event")))
	sub, err := app.Subscribe(gesture.TopicRoot+".**", app.metrics.Record, event.WithPriority(event.PriorityCritical))
	if err != nil {
		return &InitError{Component: "metrics", Err: err}
	}
	app.subs = append(app.subs, sub)

	// 4. Registry
	app.registry = gesture.NewRegistry(
		gesture.WithLogger(app.logger),
		gesture.WithPublisher(gesture.NewBusPublisher(app.bus)),
	)

	// 5. Navigation consumer
	app.nav = nav.New(
		nav.WithLogger(app.logger),
		nav.WithOnChange(func(shown bool) {
			app.logger.Info("navigation shown=%t", shown)
		}),
	)
	app.actions[nav.ActionShow] = app.nav.Action
	app.actions[nav.ActionHide] = app.nav.Action
	app.actions[nav.ActionToggle] = app.nav.Action

	// 6. Bindings and scripts
	app.mu.Lock()
	defer app.mu.Unlock()
	if err := app.load(ctx, profile); err != nil {
		return &InitError{Component: "script", Err: err}
	}
	return nil
}

// load applies p and runs the scripts. Profile bindings that fail are
// logged and skipped; script failures are returned. The caller holds
// app.mu.
func (app *Application) load(ctx context.Context, p *config.Profile) error {
	app.profile = p
	if err := p.Apply(app.registry, app.resolver, app.action); err != nil {
		app.logger.Warn("profile %s: %v", p.Path, err)
	}

	app.host = script.NewHost(app.registry, app.resolver, script.WithLogger(app.logger))
	var errs []error
	for _, path := range app.opts.Scripts {
		if err := app.host.RunFile(ctx, path); err != nil {
			errs = append(errs, err)
		}
	}
	app.logger.Debug("loaded %d surfaces, %d script bindings", app.registry.Len(), app.host.Bindings())
	return errors.Join(errs...)
}

// Reload replaces every binding with those of p and reruns the scripts.
func (app *Application) Reload(ctx context.Context, p *config.Profile) error {
	if app.closed.Load() {
		return ErrShutdown
	}

	app.mu.Lock()
	defer app.mu.Unlock()
	if app.closed.Load() {
		return ErrShutdown
	}

	if app.host != nil {
		_ = app.host.Close()
	}
	app.registry.Clear()
	if app.opts.LogLevel == "" {
		app.logger.SetLevel(p.Level(logging.LevelInfo))
	}

	if err := app.load(ctx, p); err != nil {
		return &ComponentError{Component: "script", Action: "reload", Err: err}
	}
	app.logger.Info("reloaded %s", p.Path)
	return nil
}

// Watch reloads the profile whenever its file changes, until ctx is done
// or the application shuts down.
func (app *Application) Watch(ctx context.Context, opts ...config.WatchOption) error {
	if app.opts.ConfigPath == "" {
		return ErrNoProfile
	}
	if app.closed.Load() {
		return ErrShutdown
	}

	opts = append([]config.WatchOption{
		config.WithWatchLogger(app.logger),
		config.WithErrorHandler(func(err error) {
			app.logger.Warn("profile not reloaded: %v", err)
		}),
	}, opts...)

	w, err := config.Watch(ctx, app.opts.ConfigPath, func(p *config.Profile) {
		if err := app.Reload(ctx, p); err != nil {
			app.logger.Warn("%v", err)
		}
	}, opts...)
	if err != nil {
		return &ComponentError{Component: "profile", Action: "watch", Err: err}
	}

	app.mu.Lock()
	old := app.watcher
	app.watcher = w
	app.mu.Unlock()
	if old != nil {
		_ = old.Close()
	}
	return nil
}

// Handle routes the profile action name to fn. Names handled by the
// navigation consumer are taken.
func (app *Application) Handle(name string, fn config.ActionFunc) error {
	app.actionsMu.Lock()
	defer app.actionsMu.Unlock()

	if _, ok := app.actions[name]; ok {
		return ErrDuplicateAction
	}
	app.actions[name] = fn
	return nil
}

// action dispatches a profile action. Unknown actions defer the gesture.
func (app *Application) action(name string, g *gesture.Gesture) {
	app.actionsMu.RLock()
	fn, ok := app.actions[name]
	app.actionsMu.RUnlock()

	if !ok {
		app.logger.Warn("no handler for action %q", name)
		g.Defer()
		return
	}
	fn(name, g)
}

// Subscribe calls fn with a copy of every claimed gesture whose topic
// matches pattern.
func (app *Application) Subscribe(pattern topic.Topic, fn func(gesture.Gesture), opts ...event.SubscriptionOption) (event.Subscription, error) {
	return app.bus.Subscribe(pattern, event.AsHandler[gesture.Gesture](func(_ context.Context, ev event.Event[gesture.Gesture]) error {
		fn(ev.Payload)
		return nil
	}), opts...)
}

// Shutdown releases every component in reverse initialization order. It
// is safe to call more than once.
func (app *Application) Shutdown() {
	if !app.closed.CompareAndSwap(false, true) {
		return
	}

	// The watcher waits for a reload in progress, which needs app.mu.
	app.mu.Lock()
	w := app.watcher
	app.watcher = nil
	app.mu.Unlock()
	if w != nil {
		_ = w.Close()
	}

	app.mu.Lock()
	defer app.mu.Unlock()

	if app.host != nil {
		_ = app.host.Close()
	}
	if app.registry != nil {
		app.registry.Clear()
	}
	for _, sub := range app.subs {
		_ = app.bus.Unsubscribe(sub)
	}
	app.subs = nil
}

// Logger returns the application logger.
func (app *Application) Logger() *logging.Logger {
	return app.logger
}

// Bus returns the event bus claimed gestures are published on.
func (app *Application) Bus() *event.Bus {
	return app.bus
}

// Registry returns the gesture registry.
func (app *Application) Registry() *gesture.Registry {
	return app.registry
}

// Nav returns the navigation consumer.
func (app *Application) Nav() *nav.Nav {
	return app.nav
}

// Metrics returns the gesture counters.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}

// Profile returns the profile currently applied.
func (app *Application) Profile() *config.Profile {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.profile
}

// Scripts returns the number of bindings registered by scripts.
func (app *Application) Scripts() int {
	app.mu.Lock()
	host := app.host
	app.mu.Unlock()
	if host == nil {
		return 0
	}
	return host.Bindings()
}
