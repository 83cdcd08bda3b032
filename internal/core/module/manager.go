package module

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zengine/zengine/internal/core/observability/log"
)

// registration tracks one registered module and its runtime metrics.
type registration struct {
	module       GameModule
	instanceID   uuid.UUID
	registeredAt time.Time
	initialized  bool

	tickCount     uint64
	totalTickTime time.Duration
	lastTickTime  time.Duration
	errorCount    uint64
	lastError     error
}

func (r *registration) info(name string) Info {
	info := Info{
		Name:             name,
		InstanceID:       r.instanceID,
		RegisteredAt:     r.registeredAt,
		Initialized:      r.initialized,
		TickCount:        r.tickCount,
		LastTickDuration: r.lastTickTime,
		ErrorCount:       r.errorCount,
	}
	if r.tickCount > 0 {
		info.AverageTickDuration = r.totalTickTime / time.Duration(r.tickCount)
	}
	if r.lastError != nil {
		info.LastError = r.lastError.Error()
	}
	return info
}

// Manager is the engine's registry of active modules. Modules are registered
// explicitly from the startup sequence, initialized in registration order and
// shut down in reverse.
type Manager struct {
	modules map[string]*registration
	order   []string
	closed  bool
	mu      sync.RWMutex

	logger log.Log

	onRegistered   []func(Info)
	onUnregistered []func(string)
	onError        []func(string, error)
}

// NewManager creates an empty module manager.
func NewManager(logger log.Log) *Manager {
	if logger == nil {
		logger = log.Nop()
	}
	return &Manager{
		modules: make(map[string]*registration),
		logger:  logger,
	}
}

// Register adds a module to the registry. The module is not initialized until
// InitializeAll (or Initialize) is called. Registering a second module under
// an already-used name is an error.
func (m *Manager) Register(gm GameModule) (uuid.UUID, error) {
	if gm == nil {
		return uuid.Nil, ErrNilModule
	}
	name := gm.Name()
	if name == "" {
		return uuid.Nil, ErrEmptyName
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return uuid.Nil, ErrManagerClosed
	}
	if _, exists := m.modules[name]; exists {
		m.mu.Unlock()
		return uuid.Nil, fmt.Errorf("register %s: %w", name, ErrAlreadyRegistered)
	}

	reg := &registration{
		module:       gm,
		instanceID:   uuid.New(),
		registeredAt: time.Now(),
	}
	m.modules[name] = reg
	m.order = append(m.order, name)
	info := reg.info(name)
	callbacks := slices.Clone(m.onRegistered)
	m.mu.Unlock()

	m.logger.Info("module registered",
		log.String("module", name),
		log.String("instance_id", info.InstanceID.String()))

	for _, cb := range callbacks {
		cb(info)
	}
	return info.InstanceID, nil
}

// Unregister removes a module from the registry, shutting it down first if it
// is still initialized.
func (m *Manager) Unregister(ctx context.Context, name string) error {
	m.mu.Lock()
	reg, exists := m.modules[name]
	if !exists {
		m.mu.Unlock()
		return fmt.Errorf("unregister %s: %w", name, ErrNotRegistered)
	}
	delete(m.modules, name)
	m.order = slices.DeleteFunc(m.order, func(n string) bool { return n == name })
	callbacks := slices.Clone(m.onUnregistered)
	m.mu.Unlock()

	var err error
	if reg.initialized {
		if err = reg.module.Shutdown(ctx); err != nil {
			err = fmt.Errorf("shutdown %s: %w", name, err)
			m.notifyError(name, err)
		}
	}

	m.logger.Info("module unregistered", log.String("module", name))
	for _, cb := range callbacks {
		cb(name)
	}
	return err
}

// Get returns the registered module with the given name.
func (m *Manager) Get(name string) (GameModule, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	reg, exists := m.modules[name]
	if !exists {
		return nil, false
	}
	return reg.module, true
}

// Has reports whether a module with the given name is registered.
func (m *Manager) Has(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, exists := m.modules[name]
	return exists
}

// List returns snapshots of all registered modules in registration order.
func (m *Manager) List() []Info {
	m.mu.RLock()
	defer m.mu.RUnlock()

	infos := make([]Info, 0, len(m.order))
	for _, name := range m.order {
		infos = append(infos, m.modules[name].info(name))
	}
	return infos
}

// Count returns the number of registered modules.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.modules)
}

// Initialize initializes a single registered module.
func (m *Manager) Initialize(ctx context.Context, name string) error {
	m.mu.Lock()
	reg, exists := m.modules[name]
	if !exists {
		m.mu.Unlock()
		return fmt.Errorf("initialize %s: %w", name, ErrNotRegistered)
	}
	if reg.initialized {
		m.mu.Unlock()
		return fmt.Errorf("initialize %s: %w", name, ErrAlreadyInitialized)
	}
	m.mu.Unlock()

	if err := reg.module.Initialize(ctx); err != nil {
		err = fmt.Errorf("initialize %s: %w", name, err)
		m.notifyError(name, err)
		return err
	}

	m.mu.Lock()
	reg.initialized = true
	m.mu.Unlock()

	m.logger.Info("module initialized", log.String("module", name))
	return nil
}

// InitializeAll initializes every registered module in registration order.
// On failure the modules initialized so far are shut down in reverse order
// and the first error is returned.
func (m *Manager) InitializeAll(ctx context.Context) error {
	m.mu.RLock()
	order := slices.Clone(m.order)
	m.mu.RUnlock()

	var done []string
	for _, name := range order {
		if err := m.Initialize(ctx, name); err != nil {
			for i := len(done) - 1; i >= 0; i-- {
				_ = m.Shutdown(ctx, done[i])
			}
			return err
		}
		done = append(done, name)
	}
	return nil
}

// Shutdown shuts down a single initialized module. The module stays
// registered and can be initialized again.
func (m *Manager) Shutdown(ctx context.Context, name string) error {
	m.mu.Lock()
	reg, exists := m.modules[name]
	if !exists {
		m.mu.Unlock()
		return fmt.Errorf("shutdown %s: %w", name, ErrNotRegistered)
	}
	if !reg.initialized {
		m.mu.Unlock()
		return fmt.Errorf("shutdown %s: %w", name, ErrNotInitialized)
	}
	reg.initialized = false
	m.mu.Unlock()

	if err := reg.module.Shutdown(ctx); err != nil {
		err = fmt.Errorf("shutdown %s: %w", name, err)
		m.notifyError(name, err)
		return err
	}

	m.logger.Info("module shut down", log.String("module", name))
	return nil
}

// ShutdownAll shuts down every initialized module in reverse registration
// order and closes the manager. Further registrations are rejected.
func (m *Manager) ShutdownAll(ctx context.Context) error {
	m.mu.Lock()
	order := slices.Clone(m.order)
	m.closed = true
	m.mu.Unlock()

	var errs []error
	for i := len(order) - 1; i >= 0; i-- {
		if err := m.Shutdown(ctx, order[i]); err != nil && !errors.Is(err, ErrNotInitialized) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Tick drives one frame across all initialized modules. A failing module does
// not stop the others; errors are recorded per module, reported through the
// error callbacks and returned joined.
func (m *Manager) Tick(deltaTime float64) error {
	m.mu.RLock()
	order := slices.Clone(m.order)
	m.mu.RUnlock()

	var errs []error
	for _, name := range order {
		m.mu.RLock()
		reg, exists := m.modules[name]
		if !exists || !reg.initialized {
			m.mu.RUnlock()
			continue
		}
		gm := reg.module
		m.mu.RUnlock()

		start := time.Now()
		err := gm.Tick(deltaTime)
		elapsed := time.Since(start)

		m.mu.Lock()
		reg.tickCount++
		reg.totalTickTime += elapsed
		reg.lastTickTime = elapsed
		if err != nil {
			reg.errorCount++
			reg.lastError = err
		}
		m.mu.Unlock()

		if err != nil {
			err = fmt.Errorf("tick %s: %w", name, err)
			m.notifyError(name, err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// OnModuleRegistered registers a callback invoked after each registration.
func (m *Manager) OnModuleRegistered(cb func(Info)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onRegistered = append(m.onRegistered, cb)
}

// OnModuleUnregistered registers a callback invoked after each unregistration.
func (m *Manager) OnModuleUnregistered(cb func(string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onUnregistered = append(m.onUnregistered, cb)
}

// OnModuleError registers a callback invoked when a lifecycle or tick call
// returns an error.
func (m *Manager) OnModuleError(cb func(string, error)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onError = append(m.onError, cb)
}

func (m *Manager) notifyError(name string, err error) {
	m.mu.RLock()
	callbacks := slices.Clone(m.onError)
	m.mu.RUnlock()

	m.logger.Error("module error", log.String("module", name), log.Error(err))
	for _, cb := range callbacks {
		cb(name, err)
	}
}
