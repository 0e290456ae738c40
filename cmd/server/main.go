package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/mergington/activities/internal/adapter/httpserver"
	"github.com/mergington/activities/internal/adapter/metrics"
	"github.com/mergington/activities/internal/app"
	"github.com/mergington/activities/internal/catalog"
	"github.com/mergington/activities/internal/platform/config"
	"github.com/mergington/activities/internal/platform/logging"
	"github.com/mergington/activities/internal/platform/version"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupStore(cfg *config.Config) *catalog.InMemoryStore {
	mode, err := catalog.ParseLockMode(cfg.CatalogLocking)
	if err != nil {
		slog.Error("Invalid catalog locking mode", "error", err)
		os.Exit(1)
	}
	if mode == catalog.LockNone {
		slog.Warn("Catalog locking disabled, concurrent roster changes are unsafe")
	}

	return catalog.NewInMemoryStore(catalog.DefaultSeed(),
		catalog.WithLockMode(mode),
		catalog.WithCapacityEnforcement(cfg.EnforceCapacity),
	)
}

func runGracefulShutdown(srv *httpserver.Server, cfg *config.Config) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		close(done)
	}()

	return done
}

func main() {
	cfg := setupConfig()

	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting",
		"env", cfg.AppEnv,
		"port", cfg.Port,
		"version", version.Version,
		"catalog_locking", cfg.CatalogLocking,
		"enforce_capacity", cfg.EnforceCapacity,
	)

	registry := metrics.NewRegistry()
	rosterMetrics := metrics.NewRosterMetrics(registry)

	store := setupStore(cfg)
	appSvc := app.NewService(store, rosterMetrics)
	if err := appSvc.SyncRosterMetrics(context.Background()); err != nil {
		slog.Error("Failed to initialize roster metrics", "error", err)
		os.Exit(1)
	}

	srv, err := httpserver.NewServer(cfg, appSvc, registry, clockwork.NewRealClock())
	if err != nil {
		slog.Error("Failed to create server", "error", err)
		os.Exit(1)
	}

	done := runGracefulShutdown(srv, cfg)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
	slog.Info("Server stopped")
}
