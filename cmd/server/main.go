package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/pscheid92/mergington/internal/adapter/httpserver"
	"github.com/pscheid92/mergington/internal/adapter/jsonfile"
	"github.com/pscheid92/mergington/internal/adapter/memory"
	"github.com/pscheid92/mergington/internal/adapter/metrics"
	"github.com/pscheid92/mergington/internal/app"
	"github.com/pscheid92/mergington/internal/domain"
	"github.com/pscheid92/mergington/internal/platform/config"
	"github.com/pscheid92/mergington/internal/platform/logging"
	"github.com/pscheid92/mergington/internal/platform/version"
	"golang.org/x/sync/errgroup"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupCredentials(cfg *config.Config) *jsonfile.CredentialStore {
	teachers, err := jsonfile.LoadTeachers(cfg.TeachersFile)
	if err != nil {
		slog.Error("Failed to load teachers", "path", cfg.TeachersFile, "error", err)
		os.Exit(1)
	}
	slog.Info("Teachers loaded", "path", cfg.TeachersFile, "count", len(teachers))
	return jsonfile.NewCredentialStore(teachers)
}

func setupCatalog(cfg *config.Config) domain.Catalog {
	if cfg.ActivitiesFile == "" {
		return memory.DefaultCatalog()
	}

	catalog, err := jsonfile.LoadCatalog(cfg.ActivitiesFile)
	if err != nil {
		slog.Error("Failed to load activities", "path", cfg.ActivitiesFile, "error", err)
		os.Exit(1)
	}
	slog.Info("Activities loaded", "path", cfg.ActivitiesFile, "count", catalog.Len())
	return catalog
}

func healthChecks(appSvc *app.Service, credentials *jsonfile.CredentialStore) []httpserver.HealthCheck {
	return []httpserver.HealthCheck{
		{
			Name: "activities",
			Check: func(ctx context.Context) error {
				if appSvc.ListActivities(ctx).Len() == 0 {
					return errors.New("activity catalog is empty")
				}
				return nil
			},
		},
		{
			Name: "teachers",
			Check: func(context.Context) error {
				if credentials.Len() == 0 {
					return errors.New("no teachers loaded")
				}
				return nil
			},
		},
	}
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	// Initialize structured logging
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	info := version.Get()
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port, "version", info.Version, "commit", info.Commit)

	credentials := setupCredentials(cfg)
	sessions := memory.NewSessionRepo(clock)
	activities := memory.NewActivityRepo(setupCatalog(cfg))

	reg := metrics.NewRegistry()
	rosterMetrics := metrics.NewRosterMetrics(reg)
	metrics.RegisterSessionGauge(reg, sessions.Count)

	appSvc := app.NewService(credentials, sessions, activities, rosterMetrics)
	srv := httpserver.NewServer(cfg, appSvc, reg, healthChecks(appSvc, credentials))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}
