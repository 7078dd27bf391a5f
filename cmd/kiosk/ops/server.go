// Package ops serves the kiosk's local operations endpoints: health status
// for fleet monitoring and Prometheus metrics.
package ops

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Status is the /healthz payload.
type Status struct {
	Mode          string    `json:"mode"`
	BackendOnline bool      `json:"backend_online"`
	Version       string    `json:"version"`
	Timestamp     time.Time `json:"timestamp"`
	UptimeSeconds int64     `json:"uptime_seconds"`
}

// Board is the shared status snapshot. The UI loop writes it; the ops
// handler reads it from its own goroutine.
type Board struct {
	mu            sync.RWMutex
	mode          string
	backendOnline bool
	startTime     time.Time
}

// NewBoard returns a board that reports the kiosk as starting up.
func NewBoard() *Board {
	return &Board{mode: "loading", backendOnline: true, startTime: time.Now()}
}

// SetMode publishes the UI mode.
func (b *Board) SetMode(mode string) {
	b.mu.Lock()
	b.mode = mode
	b.mu.Unlock()
}

// SetBackendOnline publishes the last connectivity probe result.
func (b *Board) SetBackendOnline(online bool) {
	b.mu.Lock()
	b.backendOnline = online
	b.mu.Unlock()
}

// Snapshot returns the current status.
func (b *Board) Snapshot(version string) Status {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return Status{
		Mode:          b.mode,
		BackendOnline: b.backendOnline,
		Version:       version,
		Timestamp:     time.Now(),
		UptimeSeconds: int64(time.Since(b.startTime).Seconds()),
	}
}

// Server is the local ops HTTP server.
type Server struct {
	addr    string
	version string
	board   *Board
	log     *logrus.Entry
}

// NewServer creates an ops server bound to addr.
func NewServer(addr, version string, board *Board, log *logrus.Entry) *Server {
	return &Server{addr: addr, version: version, board: board, log: log}
}

// Router builds the chi router with the two ops routes.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		status := s.board.Snapshot(s.version)
		code := http.StatusOK
		if !status.BackendOnline {
			code = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(status)
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// Start runs the server until it fails. Callers run it in a goroutine; the
// kiosk keeps working if the ops port is unavailable.
func (s *Server) Start() {
	s.log.WithField("addr", s.addr).Info("ops server listening")
	if err := http.ListenAndServe(s.addr, s.Router()); err != nil {
		s.log.WithError(err).Warn("ops server stopped")
	}
}
