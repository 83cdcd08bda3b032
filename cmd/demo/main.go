// Command demo runs the host startup sequence: it builds the engine, attaches
// the demo module library at a known point, drives the frame loop and tears
// everything down on signal or after the configured run duration.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/zengine/zengine/internal/core/config"
	"github.com/zengine/zengine/internal/core/module"
	"github.com/zengine/zengine/internal/core/observability/log"
	"github.com/zengine/zengine/internal/demo"
	"github.com/zengine/zengine/internal/engine"
)

func main() {
	configPath := flag.String("config", "", "config file (YAML or JSON); defaults apply when empty")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.LoadFile(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "load config:", err)
			os.Exit(1)
		}
		cfg = *loaded
	}

	logger := log.New(log.ParseLevel(cfg.LogLevel))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	eng := engine.New(cfg, logger)

	// Explicit registration from the startup sequence rather than init-time
	// side effects: the library handle is owned here.
	lib, err := module.NewLibrary(demo.NewFactory(logger, eng.Schemas()), eng.Manager(), logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "create library:", err)
		os.Exit(1)
	}
	if err = lib.Initialize(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "initialize library:", err)
		os.Exit(1)
	}

	if err = eng.Start(ctx); err != nil {
		lib.Uninitialize(ctx)
		fmt.Fprintln(os.Stderr, "start engine:", err)
		os.Exit(1)
	}

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	select {
	case <-stopCh:
	case <-eng.Done():
	}
	cancel()

	shutdownCtx := context.Background()
	if err = eng.Stop(shutdownCtx); err != nil {
		fmt.Fprintln(os.Stderr, "stop engine:", err)
	}
	lib.Uninitialize(shutdownCtx)
}
