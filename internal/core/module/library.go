package module

import (
	"context"
	"fmt"
	"sync"

	"github.com/zengine/zengine/internal/core/observability/log"
)

// Library is the explicitly owned handle for a dynamically loaded module. It
// replaces the process-wide instance variable such code traditionally keeps:
// the host constructs a Library during its startup sequence and calls
// Initialize/Uninitialize at well-defined points, so load and unload order
// never depends on global state.
type Library struct {
	factory Factory
	manager *Manager
	logger  log.Log

	mu     sync.Mutex
	module GameModule
}

// NewLibrary binds a module factory to a manager. The factory runs once per
// Initialize call, so every init/uninit cycle gets a fresh instance.
func NewLibrary(factory Factory, manager *Manager, logger log.Log) (*Library, error) {
	if factory == nil {
		return nil, ErrNilFactory
	}
	if logger == nil {
		logger = log.Nop()
	}
	return &Library{
		factory: factory,
		manager: manager,
		logger:  logger,
	}, nil
}

// Initialize constructs the module, registers it with the manager and
// initializes it. Calling Initialize on an already-initialized library is
// rejected with a warning and leaves the existing instance untouched.
func (l *Library) Initialize(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.module != nil {
		l.logger.Warn("library already initialized", log.String("module", l.module.Name()))
		return ErrAlreadyInitialized
	}

	gm := l.factory()
	if gm == nil {
		return ErrNilModule
	}

	if _, err := l.manager.Register(gm); err != nil {
		return fmt.Errorf("library initialize: %w", err)
	}
	if err := l.manager.Initialize(ctx, gm.Name()); err != nil {
		_ = l.manager.Unregister(ctx, gm.Name())
		return fmt.Errorf("library initialize: %w", err)
	}

	l.module = gm
	l.logger.Info("library initialized", log.String("module", gm.Name()))
	return nil
}

// Uninitialize shuts the module down and unregisters it. Calling Uninitialize
// on a never-initialized library is a warning no-op.
func (l *Library) Uninitialize(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.module == nil {
		l.logger.Warn("library not initialized, skipping uninitialization")
		return
	}

	name := l.module.Name()
	if err := l.manager.Unregister(ctx, name); err != nil {
		l.logger.Error("library uninitialize", log.String("module", name), log.Error(err))
	}

	l.module = nil
	l.logger.Info("library uninitialized", log.String("module", name))
}

// IsInitialized reports whether the library currently holds a live module.
func (l *Library) IsInitialized() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.module != nil
}

// Module returns the live module instance, or nil when uninitialized.
func (l *Library) Module() GameModule {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.module
}
