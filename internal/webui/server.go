package webui

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-logr/logr"
	"github.com/gorilla/mux"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/healthz"

	"github.com/thegeeklab/scheduler-kubernetes/pkg/spi"
)

// ServerConfig holds configuration for the HTTP server.
type ServerConfig struct {
	Addr         string        // Address to listen on (e.g., ":8080")
	ReadTimeout  time.Duration // Read timeout for HTTP server
	WriteTimeout time.Duration // Write timeout for HTTP server
	IdleTimeout  time.Duration // Idle timeout for HTTP server
}

// HealthzPath serves the liveness checks of the server.
const HealthzPath = "/healthz"

// Default timeouts for the HTTP server.
const (
	DefaultReadTimeout  = 10 * time.Second
	DefaultWriteTimeout = 30 * time.Second
	DefaultIdleTimeout  = 120 * time.Second
)

// DefaultServerConfig returns default server configuration.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:         ":8080",
		ReadTimeout:  DefaultReadTimeout,
		WriteTimeout: DefaultWriteTimeout,
		IdleTimeout:  DefaultIdleTimeout,
	}
}

// Server serves the schedule API.
type Server struct {
	config ServerConfig
	router *mux.Router
	server *http.Server
	log    logr.Logger
}

// NewServer creates a new HTTP server instance.
func NewServer(config ServerConfig, scheduler spi.Scheduler) *Server {
	log := ctrl.Log.WithName("webui")
	router := mux.NewRouter()

	NewAPIHandler(scheduler).RegisterRoutes(router)
	router.PathPrefix(HealthzPath).Handler(http.StripPrefix(HealthzPath, &healthz.Handler{
		Checks: map[string]healthz.Checker{"ping": healthz.Ping},
	}))

	return &Server{
		config: config,
		router: router,
		log:    log,
		server: &http.Server{
			Addr:         config.Addr,
			Handler:      router,
			ReadTimeout:  config.ReadTimeout,
			WriteTimeout: config.WriteTimeout,
			IdleTimeout:  config.IdleTimeout,
			BaseContext: func(_ net.Listener) context.Context {
				return ctrl.LoggerInto(context.Background(), log)
			},
		},
	}
}

// Handler returns the router of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start runs the HTTP server in a separate goroutine.
func (s *Server) Start() error {
	go func() {
		s.log.Info("Starting HTTP server", "addr", s.config.Addr)

		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error(err, "HTTP server failed")
		}
	}()

	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("Shutting down HTTP server")

	return s.server.Shutdown(ctx)
}
