package server

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/zengine/zengine/internal/core/module"
)

type staticModule struct{ name string }

func (m *staticModule) Name() string                   { return m.name }
func (m *staticModule) Initialize(context.Context) error { return nil }
func (m *staticModule) Shutdown(context.Context) error   { return nil }
func (m *staticModule) Tick(float64) error               { return nil }

func startTestServer(t *testing.T) (*DebugServer, *module.Manager) {
	t.Helper()

	mgr := module.NewManager(nil)
	srv := New(mgr, nil, 20*time.Millisecond)
	require.NoError(t, srv.Start("127.0.0.1:0"))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Stop(ctx)
	})
	return srv, mgr
}

func TestDebugServerModules(t *testing.T) {
	srv, mgr := startTestServer(t)
	_, err := mgr.Register(&staticModule{name: "combat"})
	require.NoError(t, err)

	resp, err := http.Get("http://" + srv.Addr() + "/api/modules")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var snap Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	require.Len(t, snap.Modules, 1)
	require.Equal(t, "combat", snap.Modules[0].Name)
	require.False(t, snap.Modules[0].Initialized)
}

func TestDebugServerHealth(t *testing.T) {
	srv, _ := startTestServer(t)

	resp, err := http.Get("http://" + srv.Addr() + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestDebugServerFeed(t *testing.T) {
	srv, mgr := startTestServer(t)
	_, err := mgr.Register(&staticModule{name: "ai"})
	require.NoError(t, err)

	conn, resp, err := websocket.DefaultDialer.Dial("ws://"+srv.Addr()+"/ws", nil)
	require.NoError(t, err)
	if resp != nil {
		defer resp.Body.Close()
	}
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var snap Snapshot
	require.NoError(t, conn.ReadJSON(&snap))
	require.Len(t, snap.Modules, 1)
	require.Equal(t, "ai", snap.Modules[0].Name)
}

func TestDebugServerLifecycle(t *testing.T) {
	mgr := module.NewManager(nil)
	srv := New(mgr, nil, time.Second)

	require.NoError(t, srv.Start("127.0.0.1:0"))
	require.ErrorIs(t, srv.Start("127.0.0.1:0"), ErrServerAlreadyRunning)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, srv.Stop(ctx))

	require.ErrorIs(t, srv.Start("127.0.0.1:0"), ErrServerClosed)
}
