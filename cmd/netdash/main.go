package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"netdash/internal/alerts"
	"netdash/internal/auth"
	"netdash/internal/config"
	"netdash/internal/history"
	"netdash/internal/logging"
	"netdash/internal/metrics"
	"netdash/internal/monitor"
	"netdash/internal/server"
	"netdash/internal/storage"
	"netdash/internal/topology"
)

func main() {
	var (
		configPath = flag.String("config", "config.yaml", "path to configuration file (YAML)")
		addr       = flag.String("addr", "", "address for the web server (overrides listen_addr)")
		exportPath = flag.String("export", "", "write the active topology document to this path and exit")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.ListenAddr = *addr
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, *exportPath, logger); err != nil {
		logger.Fatal("netdash stopped", zap.Error(err))
	}
}

func run(cfg config.Config, exportPath string, logger *zap.Logger) error {
	devices, err := loadDevices(cfg.TopologyFile, logger)
	if err != nil {
		return err
	}
	state := topology.New(devices)

	if exportPath != "" {
		if err := storage.SaveDocument(exportPath, state.Export(time.Now())); err != nil {
			return fmt.Errorf("export topology: %w", err)
		}
		logger.Info("topology exported", zap.String("path", exportPath), zap.Int("devices", len(devices)))
		return nil
	}

	directory := auth.NewDirectory(0)
	if err := directory.SeedDefaults(); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	for _, nu := range cfg.Users {
		if _, err := directory.Add(nu); err != nil {
			return fmt.Errorf("add configured user %s: %w", nu.Username, err)
		}
	}

	feed := alerts.NewFeed(cfg.AlertLimit)
	for _, a := range alerts.Seed(time.Now()) {
		feed.Add(a)
	}

	reg := metrics.NewRegistry()
	window := history.NewWindow(cfg.HistorySize)
	gen := monitor.New(cfg.MetricsInterval(), window,
		monitor.WithRecorder(reg),
		monitor.WithLogger(logger.Named("monitor")))
	gen.Start()
	defer gen.Stop()

	srv := server.New(cfg.ListenAddr, server.Deps{
		Topology:  state,
		Traffic:   window,
		Live:      gen,
		Alerts:    feed,
		Directory: directory,
		Sessions:  auth.NewSessions(cfg.SessionTTL()),
		Metrics:   reg,
		Logger:    logger.Named("http"),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("server shutdown", zap.Error(err))
		}
	}()

	logger.Info("netdash listening",
		zap.String("addr", cfg.ListenAddr),
		zap.Int("devices", len(devices)),
		zap.Duration("metrics_interval", cfg.MetricsInterval()))
	if err := srv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func loadDevices(path string, logger *zap.Logger) ([]topology.Device, error) {
	if path == "" {
		return topology.DefaultDevices(), nil
	}
	doc, err := storage.LoadDocument(path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Warn("topology file not found, using built-in topology", zap.String("path", path))
		return topology.DefaultDevices(), nil
	}
	if err != nil {
		return nil, err
	}
	logger.Info("loaded topology", zap.String("path", path), zap.Int("devices", len(doc.Devices)))
	return doc.Devices, nil
}
