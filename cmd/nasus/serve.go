package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/kachayev/nasus/config"
	"github.com/kachayev/nasus/filesystem"
	nasushttp "github.com/kachayev/nasus/http"
)

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	if len(args) > 0 {
		port, err := strconv.Atoi(args[0])
		if err != nil || port < 1 || port > 65535 {
			return fmt.Errorf("invalid port %q", args[0])
		}
		cfg.Server.Port = port
	}

	authHeader, err := resolveCredential(cfg.Auth)
	if err != nil {
		return err
	}

	store, err := filesystem.New(cfg.Files.Dir)
	if err != nil {
		return fmt.Errorf("open served directory: %w", err)
	}
	defer func() { _ = store.Close() }()

	handlerConfig := nasushttp.HandlerConfig{
		Dir:            cfg.Files.Dir,
		NoListing:      cfg.Files.NoIndex,
		IndexDoc:       cfg.Files.IndexDoc,
		Exclude:        cfg.Files.Exclude,
		FollowSymlinks: cfg.Files.FollowSymlink,
		IncludeHidden:  cfg.Files.IncludeHidden,
		NoCache:        cfg.Files.NoCache,
		NoCompression:  cfg.Files.NoCompression,
		CORS:           cfg.CORS,
		AuthHeader:     authHeader,
		Realm:          cfg.Auth.Realm,
	}

	handler, err := nasushttp.NewHandler(&handlerConfig, store)
	if err != nil {
		return fmt.Errorf("build handler: %w", err)
	}

	var metricsServer *http.Server
	if cfg.Metrics.Enabled() {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		handler = handler.WithMetrics(nasushttp.NewMetrics(reg))
		metricsServer = newMetricsServer(cfg.Metrics.Addr, reg)

		go func() {
			slog.Info("starting metrics server", "addr", cfg.Metrics.Addr)
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("metrics server error", "err", err)
			}
		}()
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Bind, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "err", err)
		}
		if metricsServer != nil {
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				slog.Error("metrics server shutdown error", "err", err)
			}
		}
	}()

	slog.Info("serving directory", "dir", cfg.Files.Dir, "addr", addr, "auth", cfg.Auth.Enabled())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// newMetricsServer serves the registry on its own listener so /metrics can
// never shadow a served file of the same name.
func newMetricsServer(addr string, reg *prometheus.Registry) *http.Server {
	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	return &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
}
