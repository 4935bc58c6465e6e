package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/vk/webstage/internal/ctxlog"
	"github.com/vk/webstage/internal/descriptor"
	"github.com/vk/webstage/internal/diag"
	"github.com/vk/webstage/internal/injector"
	"github.com/vk/webstage/internal/naming"
	"github.com/vk/webstage/internal/registry"
	"github.com/vk/webstage/internal/resolver"
	"github.com/vk/webstage/internal/webapp"
)

// ErrAlreadyStarted is returned by Start on a harness whose phase sequence
// already ran. A harness is single-use per process.
var ErrAlreadyStarted = errors.New("harness already started")

// ErrNotReady is returned when a harness that never reached Serving, or has
// already stopped, is used as a test target.
var ErrNotReady = errors.New("harness not ready")

// FailedError is the terminal failure of a harness: the phase the startup
// sequence died in, and the cause.
type FailedError struct {
	Phase Phase
	Err   error
}

func (e *FailedError) Error() string {
	return fmt.Sprintf("harness failed during %s: %v", e.Phase, e.Err)
}

func (e *FailedError) Unwrap() error {
	return e.Err
}

// Harness deploys one web application in-process and exposes it on a local
// port. Construct with New, register dynamic routes, then Start once.
type Harness struct {
	outW    io.Writer
	logger  *slog.Logger
	config  *Config
	modules []registry.Module
	routes  map[string]webapp.HandlerFactory

	registry *registry.Registry
	naming   *naming.Context
	recorder *diag.Recorder
	desc     *descriptor.Descriptor
	server   *webapp.Server

	started atomic.Bool
	phase   atomic.Int32
	ready   chan struct{}

	mu      sync.Mutex
	failure *FailedError

	ctx context.Context
}

// New is the constructor for the harness. It returns a fully initialized
// Harness with its own isolated logger; nothing is deployed until Start.
// With no modules given, the compiled-in core fixture modules are used.
func New(outW io.Writer, cfg *Config, modules ...registry.Module) *Harness {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	if len(modules) == 0 {
		modules = coreModules
	}

	return &Harness{
		outW:    outW,
		logger:  logger,
		config:  cfg,
		modules: modules,
		routes:  make(map[string]webapp.HandlerFactory),
		ready:   make(chan struct{}),
	}
}

// Handle registers a dynamic route for the deployed application, relative
// to its context path. Must be called before Start.
func (h *Harness) Handle(pattern string, factory webapp.HandlerFactory) {
	if h.started.Load() {
		panic("harness routes must be registered before Start")
	}
	if _, exists := h.routes[pattern]; exists {
		panic(fmt.Sprintf("route '%s' already registered", pattern))
	}
	h.routes[pattern] = factory
}

// Start runs the startup phase sequence exactly once: populate the
// registry, parse the descriptor, resolve references, start the serving
// container. Any phase error parks the harness in the Failed state and is
// returned to the caller.
func (h *Harness) Start(ctx context.Context) error {
	if !h.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}

	ctx = ctxlog.WithLogger(ctx, h.logger)
	h.ctx = ctx
	h.recorder = diag.NewRecorder()

	// Phase 1: populate the component registry and publish direct entries.
	h.registry = registry.New()
	for _, mod := range h.modules {
		mod.Register(h.registry)
	}
	h.naming = naming.New(h.registry)
	for _, name := range h.registry.Names() {
		if err := h.naming.BindDirect(name, name); err != nil {
			return h.fail(PhaseUninitialized, err)
		}
	}
	h.setPhase(PhaseRegistryPopulated)
	h.logger.Debug("Component registry populated.", "bindings", h.registry.Len())

	// Phase 2: parse the deployment descriptor.
	desc, err := descriptor.Load(ctx, h.config.AppPath)
	if err != nil {
		return h.fail(PhaseRegistryPopulated, err)
	}
	h.desc = desc

	// Phase 3: resolve declared references and publish env entries.
	if err := resolver.ResolveAll(ctx, desc.References, h.registry, h.naming, h.recorder); err != nil {
		return h.fail(PhaseRegistryPopulated, err)
	}
	for name, val := range desc.EnvEntries {
		if err := h.naming.BindValue("env/"+name, val); err != nil {
			return h.fail(PhaseRegistryPopulated, err)
		}
	}
	h.naming.Freeze()
	h.setPhase(PhaseReferencesResolved)

	// Phase 4: start the serving container with the injector attached.
	app := webapp.NewApp(desc.Application.Name, desc.Application.ContextPath, h.staticDir())
	for pattern, factory := range h.routes {
		app.Handle(pattern, factory)
	}
	inj := injector.New(h.naming, h.recorder)
	h.server = webapp.NewServer(app, inj.Inject)
	if err := h.server.Start(ctx, h.config.Host, h.config.Port); err != nil {
		return h.fail(PhaseReferencesResolved, err)
	}

	h.setPhase(PhaseServing)
	close(h.ready)
	h.logger.Info("Harness is serving.", "url", h.mustURL())
	return nil
}

// WaitReady blocks until the harness reaches Serving, fails, or the context
// is done. It is the readiness handle handed to test drivers.
func (h *Harness) WaitReady(ctx context.Context) error {
	select {
	case <-h.ready:
	case <-ctx.Done():
		return ctx.Err()
	}
	return h.checkServing()
}

// URL returns the base URL of the deployed application, including its
// context path. It errors unless the harness is Serving.
func (h *Harness) URL() (string, error) {
	if err := h.checkServing(); err != nil {
		return "", err
	}
	return h.mustURL(), nil
}

// Stop shuts the serving container down gracefully and moves the harness to
// its terminal Stopped state.
func (h *Harness) Stop(ctx context.Context) error {
	if h.Phase() != PhaseServing {
		return h.checkServing()
	}
	ctx = ctxlog.WithLogger(ctx, h.logger)
	err := h.server.Shutdown(ctx)
	h.setPhase(PhaseStopped)
	return err
}

// Phase returns the current lifecycle phase.
func (h *Harness) Phase() Phase {
	return Phase(h.phase.Load())
}

// Diagnostics returns a snapshot of all diagnostic events recorded so far.
func (h *Harness) Diagnostics() []diag.Event {
	if h.recorder == nil {
		return nil
	}
	return h.recorder.Snapshot()
}

// Registry returns the harness's component registry. Primarily for testing.
func (h *Harness) Registry() *registry.Registry {
	return h.registry
}

// Naming returns the harness's naming context. Primarily for testing.
func (h *Harness) Naming() *naming.Context {
	return h.naming
}

// checkServing reports the terminal condition when the harness is not
// usable as a test target.
func (h *Harness) checkServing() error {
	switch h.Phase() {
	case PhaseServing:
		return nil
	case PhaseFailed:
		h.mu.Lock()
		defer h.mu.Unlock()
		return h.failure
	case PhaseStopped:
		return fmt.Errorf("%w: harness is stopped", ErrNotReady)
	default:
		return fmt.Errorf("%w: harness is %s", ErrNotReady, h.Phase())
	}
}

func (h *Harness) setPhase(p Phase) {
	h.phase.Store(int32(p))
	h.logger.Debug("Harness phase transition.", "phase", p.String())
}

// fail records the terminal failure, unblocks waiters, and returns the
// wrapped error.
func (h *Harness) fail(at Phase, err error) error {
	failure := &FailedError{Phase: at, Err: err}
	h.mu.Lock()
	h.failure = failure
	h.mu.Unlock()
	h.phase.Store(int32(PhaseFailed))
	close(h.ready)
	h.logger.Error("Harness startup failed.", "phase", at.String(), "error", err)
	return failure
}

// staticDir returns the application's static content directory, if present.
func (h *Harness) staticDir() string {
	dir := filepath.Join(h.config.AppPath, "static")
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return dir
	}
	return ""
}

// mustURL formats the serving URL; callers must have checked Serving.
func (h *Harness) mustURL() string {
	return fmt.Sprintf("http://%s%s", h.server.Addr(), h.desc.Application.ContextPath)
}
