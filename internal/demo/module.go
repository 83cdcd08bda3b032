// Package demo is the example game module. It shows how a module registers
// with the engine's module manager, drives work from Tick and opts its data
// component into the schema registry.
package demo

import (
	"context"
	"fmt"
	"sync"

	"github.com/zengine/zengine/internal/core/module"
	"github.com/zengine/zengine/internal/core/observability/log"
	"github.com/zengine/zengine/internal/core/schema"
	"github.com/zengine/zengine/pkg/encoding"
)

// ModuleName is the fixed registration name of the demo module.
const ModuleName = "zengine-demo"

// healthRegenPerSecond restores the example component's health while ticking.
const healthRegenPerSecond = 2.5

var (
	_ module.GameModule     = (*Module)(nil)
	_ encoding.Serializable = (*Module)(nil)
)

// Module is the demo game module. One instance lives per library
// initialization; the engine owns the lifecycle.
type Module struct {
	logger  log.Log
	schemas *schema.Registry

	mu         sync.Mutex
	component  *ExampleComponent
	frameCount uint64
	elapsed    float64
}

// New creates an uninitialized demo module. The schema registry may be nil
// when the host does not use schema-backed serialization.
func New(logger log.Log, schemas *schema.Registry) *Module {
	if logger == nil {
		logger = log.Nop()
	}
	return &Module{
		logger:  logger.With(log.String("module", ModuleName)),
		schemas: schemas,
	}
}

// NewFactory returns the module factory the library entry point consumes.
func NewFactory(logger log.Log, schemas *schema.Registry) module.Factory {
	return func() module.GameModule {
		return New(logger, schemas)
	}
}

// Name returns the fixed module name regardless of lifecycle state.
func (m *Module) Name() string {
	return ModuleName
}

// Initialize registers the example component schema and creates the
// component's initial state.
func (m *Module) Initialize(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logger.Info("initializing module")

	if m.schemas != nil {
		if err := m.schemas.RegisterType(ExampleComponentSchema()); err != nil {
			return fmt.Errorf("register component schema: %w", err)
		}
	}

	m.component = NewExampleComponent()
	m.frameCount = 0
	m.elapsed = 0
	return nil
}

// Shutdown drops the component state and removes its schema from the
// registry.
func (m *Module) Shutdown(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logger.Info("shutting down module",
		log.Uint64("frames", m.frameCount),
		log.Float64("elapsed_seconds", m.elapsed))

	if m.schemas != nil {
		if err := m.schemas.UnregisterType(ExampleComponentTypeName); err != nil {
			m.logger.Warn("unregister component schema", log.Error(err))
		}
	}

	m.component = nil
	return nil
}

// Tick advances the module by one frame, regenerating the example
// component's health toward its maximum.
func (m *Module) Tick(deltaTime float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.component == nil {
		return module.ErrNotInitialized
	}

	m.frameCount++
	m.elapsed += deltaTime
	m.component.Regenerate(float32(healthRegenPerSecond * deltaTime))
	return nil
}

// FrameCount returns the number of ticks since initialization.
func (m *Module) FrameCount() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.frameCount
}

// Elapsed returns the accumulated tick time in seconds.
func (m *Module) Elapsed() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.elapsed
}

// Component returns a copy of the example component's current state, or nil
// when the module is not initialized.
func (m *Module) Component() *ExampleComponent {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.component == nil {
		return nil
	}
	clone := *m.component
	return &clone
}

// Serialize emits the module's component state in its schema wire form.
func (m *Module) Serialize() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.component == nil {
		return nil, module.ErrNotInitialized
	}
	return m.component.Marshal()
}

// Deserialize restores the module's component state from its wire form.
func (m *Module) Deserialize(raw []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.component == nil {
		return module.ErrNotInitialized
	}
	return m.component.Unmarshal(raw)
}
