// Package api - Thin, deterministic API layer
// The API is ONLY responsible for: input ingestion, pipeline invocation, output serialization.
// The API NEVER performs rating logic.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"premium-quote/core/engine"
	"premium-quote/core/output"
	"premium-quote/internal/logging"
	"premium-quote/internal/metrics"
)

// Server is the API server
type Server struct {
	router   chi.Router
	pipeline *engine.Pipeline
	registry *output.Registry
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer
	logger   *zap.Logger
	version  string
	symbol   string
}

// Option configures a Server
type Option func(*Server)

// WithLogger sets the request and pipeline logger
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithCurrencySymbol sets the symbol used by the text format
func WithCurrencySymbol(symbol string) Option {
	return func(s *Server) {
		s.symbol = symbol
	}
}

// WithRegistry registers the server's collectors with reg and serves it
// on /metrics. Without it the server uses a private registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.gatherer = reg
		s.metrics = metrics.New(reg)
	}
}

// NewServer creates a new API server
func NewServer(version string, opts ...Option) *Server {
	s := &Server{
		logger:  zap.NewNop(),
		version: version,
		symbol:  "₹",
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		reg := prometheus.NewRegistry()
		s.gatherer = reg
		s.metrics = metrics.New(reg)
	}

	s.registry = output.DefaultRegistry(s.symbol)
	s.pipeline = engine.New(
		engine.WithLogger(s.logger),
		engine.WithDiagnostics(logging.NewAdvisorySink(s.logger)),
		engine.WithMetrics(s.metrics, "api"),
	)

	s.router = chi.NewRouter()
	s.registerRoutes()
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	r := s.router
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(s.observe)

	// Core endpoints
	r.Route("/v1/quotes", func(r chi.Router) {
		r.Post("/", s.handleQuote)
		r.Post("/batch", s.handleBatch)
	})
	r.Get("/health", s.handleHealth)

	// Supporting endpoints
	r.Get("/version", s.handleVersion)
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
}

// observe records request latency and logs each request
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		elapsed := time.Since(start)

		s.metrics.ObserveRequest(route, strconv.Itoa(status), elapsed)
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("route", route),
			zap.Int("status", status),
			zap.Duration("duration", elapsed),
			zap.String("request_id", middleware.GetReqID(r.Context())))
	})
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe starts the server and shuts it down when ctx is done
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("quote API listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
