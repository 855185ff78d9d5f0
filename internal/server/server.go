package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"github.com/lox/bjodds/internal/session"
)

// Server serves the analyzer form over HTTP and keeps live forms in sync
// over WebSocket.
type Server struct {
	addr        string
	upgrader    websocket.Upgrader
	connections map[*Connection]bool
	logger      *log.Logger
	mu          sync.RWMutex
	clock       quartz.Clock
	pulse       time.Duration
	pages       *template.Template
	httpServer  *http.Server
}

// Option configures a Server
type Option func(*Server)

// WithClock sets the clock used by per-connection pulse timers
func WithClock(clock quartz.Clock) Option {
	return func(s *Server) { s.clock = clock }
}

// WithPulse sets the result highlight duration for live forms
func WithPulse(d time.Duration) Option {
	return func(s *Server) { s.pulse = d }
}

// NewServer creates a new server
func NewServer(addr string, logger *log.Logger, opts ...Option) *Server {
	s := &Server{
		addr: addr,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// The form is served from the same origin; allow local tools too
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		connections: make(map[*Connection]bool),
		logger:      logger.WithPrefix("server"),
		clock:       quartz.NewReal(),
		pulse:       session.DefaultPulse,
		pages:       mustParsePages(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the HTTP routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /calculator", s.handleCalculator)
	mux.HandleFunc("POST /calculator", s.handleCalculatorSubmit)
	mux.HandleFunc("GET /api/estimate", s.handleEstimate)
	mux.HandleFunc("GET /api/strategy", s.handleStrategy)
	mux.HandleFunc("GET /ws", s.handleWebSocket)
	mux.HandleFunc("GET /health", s.handleHealth)
	return mux
}

// Start starts the server and blocks until it stops
func (s *Server) Start() error {
	s.logger.Info("Starting server", "addr", s.addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown closes live connections and stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	for conn := range s.connections {
		_ = conn.Close() // Ignore close errors during shutdown
	}
	s.connections = make(map[*Connection]bool)
	s.mu.Unlock()

	if err := s.httpServer.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ConnectionCount returns the number of live forms
func (s *Server) ConnectionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.connections)
}

func (s *Server) register(conn *Connection) {
	s.mu.Lock()
	s.connections[conn] = true
	total := len(s.connections)
	s.mu.Unlock()
	s.logger.Info("Client connected", "total", total)
}

func (s *Server) unregister(conn *Connection) {
	s.mu.Lock()
	if _, ok := s.connections[conn]; ok {
		delete(s.connections, conn)
		_ = conn.Close() // Ignore close errors during unregistration
	}
	total := len(s.connections)
	s.mu.Unlock()
	s.logger.Info("Client disconnected", "total", total)
}

// handleWebSocket handles WebSocket upgrade requests
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	client := NewConnection(conn, s.logger,
		session.WithClock(s.clock),
		session.WithPulse(s.pulse),
	)
	s.register(client)
	client.Start()

	// Connection cleanup is handled by the connection itself
	go func() {
		<-client.Done()
		s.unregister(client)
	}()
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK") // Ignore write errors for health check
}
