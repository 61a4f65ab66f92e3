package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/pscheid92/mergington/internal/adapter/metrics"
	"github.com/pscheid92/mergington/internal/domain"
	"github.com/pscheid92/mergington/internal/platform/config"
)

type appService interface {
	Login(ctx context.Context, username, password string) (domain.Session, domain.Teacher, error)
	Logout(ctx context.Context, token string) int
	CurrentTeacher(ctx context.Context, token string) (string, bool)
	RequireTeacher(ctx context.Context, token string) (string, error)
	Teacher(username string) (domain.Teacher, bool)
	ListActivities(ctx context.Context) domain.Catalog
	Enroll(ctx context.Context, name, email, actingUser string) (string, error)
	Unenroll(ctx context.Context, name, email, actingUser string) (string, error)
}

type Server struct {
	echo   *echo.Echo
	config *config.Config

	app appService

	metricsRegistry *prometheus.Registry
	httpMetrics     *metrics.HTTPMetrics

	healthChecks []HealthCheck
	startTime    time.Time
}

// NewServer wires the echo router. reg may be nil, in which case neither
// HTTP metrics nor /metrics are registered.
func NewServer(cfg *config.Config, app appService, reg *prometheus.Registry, healthChecks []HealthCheck) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	srv := &Server{
		echo:            e,
		config:          cfg,
		app:             app,
		metricsRegistry: reg,
		healthChecks:    healthChecks,
		startTime:       time.Now(),
	}
	if reg != nil && cfg.MetricsEnabled {
		srv.httpMetrics = metrics.NewHTTPMetrics(reg)
	}

	srv.registerRoutes()

	return srv
}

func (s *Server) Start() error {
	slog.Info("Starting server", "port", s.config.Port)
	if err := s.echo.Start(":" + s.config.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}

// ServeHTTP exposes the router so the server can be driven by httptest.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}
