// Package server exposes the module manager's state over HTTP for debugging:
// a JSON snapshot endpoint and a websocket feed pushing snapshots every
// interval.
package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/zengine/zengine/internal/core/module"
	"github.com/zengine/zengine/internal/core/observability/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Snapshot is one frame of the debug feed.
type Snapshot struct {
	Timestamp time.Time     `json:"timestamp"`
	Modules   []module.Info `json:"modules"`
}

// DebugServer serves the module-state debug feed.
type DebugServer struct {
	manager  *module.Manager
	logger   log.Log
	interval time.Duration

	server   *http.Server
	listener net.Listener

	running int32 // atomic bool
	closed  int32 // atomic bool

	clients sync.Map // map[*websocket.Conn]struct{}
}

// New creates a debug server over the given manager. The interval controls
// how often websocket clients receive snapshots.
func New(manager *module.Manager, logger log.Log, interval time.Duration) *DebugServer {
	if logger == nil {
		logger = log.Nop()
	}
	if interval <= 0 {
		interval = time.Second
	}
	return &DebugServer{
		manager:  manager,
		logger:   logger.With(log.String("component", "debug-server")),
		interval: interval,
	}
}

// Start binds the listener and serves in the background until Stop.
func (s *DebugServer) Start(addr string) error {
	if atomic.LoadInt32(&s.closed) == 1 {
		return ErrServerClosed
	}
	if !atomic.CompareAndSwapInt32(&s.running, 0, 1) {
		return ErrServerAlreadyRunning
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/api/modules", s.handleModules)
	mux.HandleFunc("/ws", s.handleFeed)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		atomic.StoreInt32(&s.running, 0)
		return err
	}
	s.listener = listener
	s.server = &http.Server{Handler: mux}

	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.logger.Error("debug server stopped", log.Error(err))
		}
	}()

	s.logger.Info("debug feed listening", log.String("addr", listener.Addr().String()))
	return nil
}

// Addr returns the bound listen address, or empty before Start.
func (s *DebugServer) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop closes the feed connections and shuts the HTTP server down.
func (s *DebugServer) Stop(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&s.closed, 0, 1) {
		return nil
	}
	if atomic.LoadInt32(&s.running) == 0 {
		return nil
	}

	s.clients.Range(func(key, _ any) bool {
		_ = key.(*websocket.Conn).Close()
		return true
	})
	return s.server.Shutdown(ctx)
}

func (s *DebugServer) snapshot() Snapshot {
	return Snapshot{
		Timestamp: time.Now(),
		Modules:   s.manager.List(),
	}
}

func (s *DebugServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *DebugServer) handleModules(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.snapshot()); err != nil {
		s.logger.Error("encode snapshot", log.Error(err))
	}
}

func (s *DebugServer) handleFeed(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade", log.Error(err))
		return
	}

	s.clients.Store(conn, struct{}{})
	s.logger.Debug("feed client connected", log.String("remote", conn.RemoteAddr().String()))

	go s.streamSnapshots(conn)
}

func (s *DebugServer) streamSnapshots(conn *websocket.Conn) {
	defer func() {
		s.clients.Delete(conn)
		_ = conn.Close()
	}()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for range ticker.C {
		if atomic.LoadInt32(&s.closed) == 1 {
			return
		}
		if err := conn.WriteJSON(s.snapshot()); err != nil {
			s.logger.Debug("feed client dropped", log.Error(err))
			return
		}
	}
}
