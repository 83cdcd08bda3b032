package module

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// GameModule is the contract a loadable game module satisfies. The engine
// drives the lifecycle: Initialize once after registration, Tick every frame
// while the engine runs, Shutdown once before unregistration.
type GameModule interface {
	// Name returns the fixed module name. It must not depend on lifecycle
	// state and is the registration key inside the Manager.
	Name() string

	Initialize(ctx context.Context) error
	Shutdown(ctx context.Context) error

	// Tick is called once per engine frame with the elapsed time of the
	// previous frame in seconds.
	Tick(deltaTime float64) error
}

// Factory constructs a fresh module instance. Libraries hold a Factory rather
// than an instance so that init/uninit cycles never reuse state.
type Factory func() GameModule

// Info is a point-in-time snapshot of a registered module.
type Info struct {
	Name         string    `json:"name"`
	InstanceID   uuid.UUID `json:"instance_id"`
	RegisteredAt time.Time `json:"registered_at"`
	Initialized  bool      `json:"initialized"`

	TickCount           uint64        `json:"tick_count"`
	LastTickDuration    time.Duration `json:"last_tick_duration"`
	AverageTickDuration time.Duration `json:"average_tick_duration"`
	ErrorCount          uint64        `json:"error_count"`
	LastError           string        `json:"last_error,omitempty"`
}
