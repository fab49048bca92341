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
	"github.com/pscheid92/bufferpad/internal/adapter/httpserver"
	"github.com/pscheid92/bufferpad/internal/adapter/metrics"
	"github.com/pscheid92/bufferpad/internal/buffer"
	"github.com/pscheid92/bufferpad/internal/platform/config"
	"github.com/pscheid92/bufferpad/internal/platform/logging"
	"github.com/pscheid92/bufferpad/internal/platform/version"
)

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

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "version", version.Get().String(), "debug", cfg.DebugMode())

	reg := metrics.NewRegistry()
	store := buffer.NewStore(clock, metrics.NewBufferMetrics(reg))

	healthChecks := []httpserver.HealthCheck{
		{Name: "metrics", Check: metrics.GatherCheck(reg)},
	}

	srv, err := httpserver.NewServer(cfg, store, clock, reg, healthChecks)
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
}
