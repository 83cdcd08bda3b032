// Package engine drives the module manager: it owns the frame loop, the
// schema registry and the optional debug feed. It is the "host engine" side
// of the module contract, scaled down to what a single-process demo needs.
package engine

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zengine/zengine/internal/core/config"
	"github.com/zengine/zengine/internal/core/module"
	"github.com/zengine/zengine/internal/core/observability/log"
	"github.com/zengine/zengine/internal/core/schema"
	"github.com/zengine/zengine/internal/server"
)

// Engine wires the manager, schema registry and debug feed together and runs
// the frame loop.
type Engine struct {
	cfg     config.Config
	logger  log.Log
	manager *module.Manager
	schemas *schema.Registry
	debug   *server.DebugServer

	running int32 // atomic bool
	cancel  context.CancelFunc
	group   *errgroup.Group
	done    chan struct{}

	frameCount atomic.Uint64
}

// New creates a stopped engine from a validated config.
func New(cfg config.Config, logger log.Log) *Engine {
	if logger == nil {
		logger = log.Nop()
	}
	manager := module.NewManager(logger)
	eng := &Engine{
		cfg:     cfg,
		logger:  logger.With(log.String("component", "engine")),
		manager: manager,
		schemas: schema.NewRegistry(),
		done:    make(chan struct{}),
	}
	if cfg.Debug.Enabled {
		eng.debug = server.New(manager, logger, time.Second)
	}
	return eng
}

// Manager returns the engine's module manager. Startup code registers
// libraries against it explicitly.
func (e *Engine) Manager() *module.Manager { return e.manager }

// Schemas returns the engine's schema registry.
func (e *Engine) Schemas() *schema.Registry { return e.schemas }

// FrameCount returns the number of frames ticked since Start.
func (e *Engine) FrameCount() uint64 { return e.frameCount.Load() }

// Done is closed when the frame loop exits, either through Stop or after the
// configured run duration.
func (e *Engine) Done() <-chan struct{} { return e.done }

// Start launches the frame loop and, when configured, the debug feed. It
// returns immediately; the loop runs until Stop or the run duration elapses.
func (e *Engine) Start(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&e.running, 0, 1) {
		return module.ErrAlreadyInitialized
	}

	var loopCtx context.Context
	var cancel context.CancelFunc
	if e.cfg.RunDuration > 0 {
		loopCtx, cancel = context.WithTimeout(ctx, e.cfg.RunDuration)
	} else {
		loopCtx, cancel = context.WithCancel(ctx)
	}
	e.cancel = cancel

	if e.debug != nil {
		if err := e.debug.Start(e.cfg.Debug.Addr); err != nil {
			cancel()
			atomic.StoreInt32(&e.running, 0)
			return err
		}
	}

	group, groupCtx := errgroup.WithContext(loopCtx)
	e.group = group
	group.Go(func() error {
		defer close(e.done)
		e.runLoop(groupCtx)
		return nil
	})

	e.logger.Info("engine started",
		log.Int("tick_rate", e.cfg.TickRate),
		log.Duration("tick_interval", e.cfg.TickInterval()))
	return nil
}

// runLoop ticks the manager at the configured rate, passing the measured
// frame delta rather than the nominal interval.
func (e *Engine) runLoop(ctx context.Context) {
	ticker := time.NewTicker(e.cfg.TickInterval())
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			delta := now.Sub(last).Seconds()
			last = now
			e.frameCount.Add(1)
			if err := e.manager.Tick(delta); err != nil {
				e.logger.Warn("frame tick", log.Error(err))
			}
		}
	}
}

// Stop halts the frame loop, shuts the debug feed down and closes the module
// manager. Stopping a never-started engine is a no-op.
func (e *Engine) Stop(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&e.running, 1, 0) {
		return nil
	}

	e.cancel()
	_ = e.group.Wait()

	if e.debug != nil {
		if err := e.debug.Stop(ctx); err != nil {
			e.logger.Error("stop debug feed", log.Error(err))
		}
	}
	if err := e.manager.ShutdownAll(ctx); err != nil {
		return err
	}

	e.logger.Info("engine stopped", log.Uint64("frames", e.frameCount.Load()))
	return nil
}
