package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	projectservice "github.com/thenoetrevino/quadro/internal/services/project"
	responsibleservice "github.com/thenoetrevino/quadro/internal/services/responsible"
)

const (
	// DefaultRecalcInterval is how often schedule metrics are refreshed
	DefaultRecalcInterval = time.Hour

	shutdownTimeout = 5 * time.Second
)

// Server is the project status REST server
type Server struct {
	projects       projectservice.Service
	responsibles   responsibleservice.Service
	router         *gin.Engine
	metrics        *Metrics
	recalcInterval time.Duration
}

// Option configures a Server
type Option func(*Server)

// WithRecalcInterval sets how often Run refreshes every project's metrics.
// Zero disables the periodic refresh; the startup refresh still runs.
func WithRecalcInterval(d time.Duration) Option {
	return func(s *Server) {
		s.recalcInterval = d
	}
}

// NewServer creates a new server and registers its routes
func NewServer(projects projectservice.Service, responsibles responsibleservice.Service, opts ...Option) *Server {
	router := gin.New()

	s := &Server{
		projects:       projects,
		responsibles:   responsibles,
		router:         router,
		metrics:        NewMetrics(),
		recalcInterval: DefaultRecalcInterval,
	}
	for _, opt := range opts {
		opt(s)
	}

	router.Use(gin.Recovery(), s.observe)

	router.GET("/healthz", s.handleHealth)

	api := router.Group("/api")
	{
		api.GET("/metrics", s.handleMetrics)

		api.GET("/projects", s.handleListProjects)
		api.GET("/projects/:id", s.handleGetProject)
		api.POST("/projects", s.handleCreateProject)
		api.PUT("/projects/:id", s.handleUpdateProject)
		api.DELETE("/projects/:id", s.handleDeleteProject)
		api.GET("/projects/status/:status", s.handleProjectsByStatus)
		api.PATCH("/projects/:id/status/:status", s.handleChangeStatus)

		api.GET("/responsibles", s.handleListResponsibles)
		api.GET("/responsibles/:id", s.handleGetResponsible)
		api.POST("/responsibles", s.handleCreateResponsible)
		api.PUT("/responsibles/:id", s.handleUpdateResponsible)
		api.DELETE("/responsibles/:id", s.handleDeleteResponsible)
	}

	return s
}

// Handler exposes the router, mainly for httptest
func (s *Server) Handler() http.Handler {
	return s.router
}

// Metrics returns the live counters
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
// Metrics are recalculated once at startup and then on every interval.
func (s *Server) Run(ctx context.Context, addr string) error {
	lc := net.ListenConfig{}
	listener, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, listener)
}

// Serve is Run on an existing listener
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.recalculate(ctx)
	go s.scheduleRecalculation(ctx)

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", listener.Addr().String())
		serveErr <- srv.Serve(listener)
	}()

	select {
	case <-ctx.Done():
		slog.Info("server context cancelled, shutting down")
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

// scheduleRecalculation keeps days late and remaining time current as days pass
func (s *Server) scheduleRecalculation(ctx context.Context) {
	if s.recalcInterval <= 0 {
		return
	}
	ticker := time.NewTicker(s.recalcInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.recalculate(ctx)
		}
	}
}

func (s *Server) recalculate(ctx context.Context) {
	n, err := s.projects.RecalculateAll(ctx)
	if err != nil {
		slog.Error("failed to recalculate project metrics", "error", err)
		return
	}
	s.metrics.AddRecalculations(n)
	if n > 0 {
		slog.Info("project metrics recalculated", "updated", n)
	}
}

// observe counts and logs every request
func (s *Server) observe(c *gin.Context) {
	start := time.Now()
	s.metrics.IncRequests()
	s.metrics.InFlight.Add(1)
	defer s.metrics.InFlight.Add(-1)

	c.Next()

	status := c.Writer.Status()
	if status >= http.StatusBadRequest {
		s.metrics.IncRequestErrors()
	}
	slog.Debug("request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", status,
		"duration", time.Since(start),
	)
}
