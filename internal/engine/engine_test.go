package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zengine/zengine/internal/core/config"
	"github.com/zengine/zengine/internal/core/module"
	"github.com/zengine/zengine/internal/demo"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.TickRate = 200
	cfg.Debug.Enabled = false
	return cfg
}

func TestEngineTicksModules(t *testing.T) {
	ctx := context.Background()
	eng := New(testConfig(), nil)

	lib, err := module.NewLibrary(demo.NewFactory(nil, eng.Schemas()), eng.Manager(), nil)
	require.NoError(t, err)
	require.NoError(t, lib.Initialize(ctx))

	require.NoError(t, eng.Start(ctx))
	time.Sleep(150 * time.Millisecond)
	require.NoError(t, eng.Stop(ctx))

	require.Greater(t, eng.FrameCount(), uint64(0))
	dm := lib.Module().(*demo.Module)
	require.Greater(t, dm.FrameCount(), uint64(0))

	lib.Uninitialize(ctx)
}

func TestEngineRunDuration(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	cfg.RunDuration = 50 * time.Millisecond
	eng := New(cfg, nil)

	require.NoError(t, eng.Start(ctx))
	select {
	case <-eng.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("frame loop did not stop after run duration")
	}
	require.NoError(t, eng.Stop(ctx))
}

func TestEngineDoubleStart(t *testing.T) {
	ctx := context.Background()
	eng := New(testConfig(), nil)

	require.NoError(t, eng.Start(ctx))
	require.ErrorIs(t, eng.Start(ctx), module.ErrAlreadyInitialized)
	require.NoError(t, eng.Stop(ctx))
	require.NoError(t, eng.Stop(ctx))
}

func TestEngineStopClosesManager(t *testing.T) {
	ctx := context.Background()
	eng := New(testConfig(), nil)

	require.NoError(t, eng.Start(ctx))
	require.NoError(t, eng.Stop(ctx))

	_, err := eng.Manager().Register(&nullModule{})
	require.ErrorIs(t, err, module.ErrManagerClosed)
}

type nullModule struct{}

func (*nullModule) Name() string                     { return "null" }
func (*nullModule) Initialize(context.Context) error { return nil }
func (*nullModule) Shutdown(context.Context) error   { return nil }
func (*nullModule) Tick(float64) error               { return nil }
