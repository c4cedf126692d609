package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tokview/tokview/internal/config"
	"github.com/tokview/tokview/internal/tiktok"
	"github.com/tokview/tokview/internal/web"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	listen := flag.String("listen", "", "Listen address, overrides config")
	proxyURL := flag.String("proxy", "", "Upstream proxy URL (http/https/socks5), overrides config")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1)
	}
	if *listen != "" {
		cfg.Listen = *listen
	}
	if *proxyURL != "" {
		cfg.Proxy = *proxyURL
	}

	client := tiktok.NewClient().
		WithBaseURL(cfg.BaseURL).
		WithUserAgent(cfg.UserAgent).
		WithTimeout(cfg.Timeout.Std()).
		WithPageInterval(cfg.PageInterval.Std()).
		WithMediaInterval(cfg.MediaInterval.Std()).
		WithLogger(logger)
	if cfg.Proxy != "" {
		if err := client.SetProxy(cfg.Proxy); err != nil {
			logger.Error("set proxy", "error", err)
			os.Exit(1)
		}
		logger.Info("upstream proxy configured", "proxy", cfg.Proxy)
	}

	srv, err := web.NewServer(client, logger, cfg.Metrics)
	if err != nil {
		logger.Error("build server", "error", err)
		os.Exit(1)
	}

	httpSrv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("listening", "addr", cfg.Listen, "metrics", cfg.Metrics)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("serve", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
}
