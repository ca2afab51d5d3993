package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/lysyi3m/benefit-slides/app/api"
	"github.com/lysyi3m/benefit-slides/app/benefits"
	"github.com/lysyi3m/benefit-slides/app/cache"
	"github.com/lysyi3m/benefit-slides/app/cfg"
	"github.com/lysyi3m/benefit-slides/app/loader"
	"github.com/lysyi3m/benefit-slides/app/metrics"
	"github.com/lysyi3m/benefit-slides/app/tasks"
	"github.com/lysyi3m/benefit-slides/app/theme"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	appCfg, err := cfg.Load()
	if err != nil {
		return err
	}
	if appCfg == nil {
		return nil
	}

	setupLogger(appCfg.Debug, appCfg.LogJSON)

	slog.Info("Starting Benefit Slides", "version", appCfg.Version, "source_url", appCfg.SourceURL)

	brand, err := theme.Load(appCfg.ThemeFile)
	if err != nil {
		return fmt.Errorf("failed to load theme: %w", err)
	}

	runtime := benefits.NewRuntimeConfig(appCfg.SlideIntervalSeconds, appCfg.RefreshIntervalMinutes)
	slog.Debug("Runtime configuration",
		"slide_interval", runtime.SlideInterval().String(),
		"refresh_interval", runtime.RefreshInterval().String())

	appMetrics := metrics.New()
	slot := cache.New()

	fetcher := loader.NewHTTPFetcher(
		loader.WithUserAgent(appCfg.UserAgent),
		loader.WithRateLimit(appCfg.UpstreamRate),
	)

	benefitsLoader := loader.New(fetcher, slot, appCfg.SourceURL, runtime,
		loader.WithTimeout(appCfg.FetchTimeout),
		loader.WithFreshFor(appCfg.CacheTTL),
		loader.WithMetrics(appMetrics),
	)

	if appCfg.Prefetch {
		scheduler := tasks.NewScheduler(tasks.NewRefreshFactory(benefitsLoader), runtime.RefreshInterval(), appCfg.WorkerCount)
		scheduler.Start()
		defer scheduler.Stop()
		slog.Info("Background refresh enabled", "workers", appCfg.WorkerCount, "interval", runtime.RefreshInterval().String())
	}

	generator := benefits.NewGenerator(brand.Name+" medlemsfordele", selfURL(appCfg.BaseUrl), appCfg.Version)
	handler := api.NewHandler(benefitsLoader, slot, generator, brand, appCfg.Version)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      api.NewServer(handler, appMetrics),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	var serveErr error
	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case serveErr = <-serverErrChan:
	}

	slog.Info("Shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	return serveErr
}

func setupLogger(debug, jsonOutput bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler = slog.NewTextHandler(os.Stdout, opts)
	if jsonOutput {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}

func selfURL(baseURL string) string {
	if baseURL == "" {
		return ""
	}
	return strings.TrimRight(baseURL, "/") + "/api/benefits/rss"
}
