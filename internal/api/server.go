// internal/api/server.go
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	apihandler "github.com/finsig/finsig/internal/api/handler/api"
	"github.com/finsig/finsig/internal/api/middleware"
	"github.com/finsig/finsig/internal/api/response"
	"github.com/finsig/finsig/internal/core"
	"github.com/finsig/finsig/internal/llm"
	"github.com/finsig/finsig/internal/metrics"
	"github.com/finsig/finsig/internal/storage/archive"
	"github.com/finsig/finsig/internal/storage/bar"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server is the HTTP server for the signal service.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	mux        *http.ServeMux
}

// Config holds server configuration.
type Config struct {
	Host        string
	Port        int
	APIKey      string // Empty disables authentication
	MetricsPath string // Empty disables the metrics endpoint
}

// Dependencies holds the components the server serves.
type Dependencies struct {
	Store       bar.Store
	Snapshotter *archive.Snapshotter // Optional
	Analyst     *llm.Analyst         // Optional
	Windows     core.WindowPair      // Default evaluation windows
	Metrics     *metrics.Registry
}

// NewServer creates a new HTTP server with all routes registered.
func NewServer(cfg Config, deps Dependencies, logger *zap.Logger) (*Server, error) {
	if deps.Store == nil {
		return nil, fmt.Errorf("bar store is required")
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.NewRegistry()
	}

	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:      metrics.HTTPMiddleware(deps.Metrics)(mux),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
		mux:    mux,
	}

	s.setupRoutes(cfg, deps)

	return s, nil
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes(cfg Config, deps Dependencies) {
	data := apihandler.NewDataHandler(deps.Store, deps.Snapshotter, deps.Metrics, s.logger)
	performance := apihandler.NewPerformanceHandler(deps.Store, deps.Windows, deps.Metrics, s.logger)
	analysis := apihandler.NewAnalysisHandler(performance, deps.Analyst, s.logger)

	auth := middleware.APIKeyAuth(cfg.APIKey)

	protected := func(h http.HandlerFunc) http.Handler {
		return auth(h)
	}

	// Health stays unauthenticated for probes
	s.mux.HandleFunc("GET /api/v1/health", s.handleHealth)

	s.mux.Handle("GET /api/v1/data", protected(data.List))
	s.mux.Handle("POST /api/v1/data", protected(data.Create))
	s.mux.Handle("DELETE /api/v1/data", protected(data.Purge))
	s.mux.Handle("POST /api/v1/data/bulk", protected(data.CreateBulk))
	s.mux.Handle("GET /api/v1/data/snapshots", protected(data.Snapshots))

	s.mux.Handle("GET /api/v1/strategy/performance", protected(performance.Evaluate))
	s.mux.Handle("GET /api/v1/strategy/analysis", protected(analysis.Analyze))

	if cfg.MetricsPath != "" {
		s.mux.Handle("GET "+cfg.MetricsPath,
			promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{}))
	}
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
