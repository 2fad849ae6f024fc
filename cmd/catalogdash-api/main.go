package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"catalogdash/internal/bootstrap"
	"catalogdash/internal/config"
	"catalogdash/internal/dashboard"
	"catalogdash/internal/gallery"
	httpserver "catalogdash/internal/http-server"
	"catalogdash/internal/http-server/sessions"
	"catalogdash/internal/logger"
	"catalogdash/internal/pkg/clock"
)

func main() {
	var (
		configPath = flag.String("config", "./config/config.yaml", "path to config.yaml")
		host       = flag.String("host", "", "override host")
		port       = flag.Int("port", 0, "override port")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("load config failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:     cfg.Log.Level,
		Format:    cfg.Log.Format,
		AddSource: cfg.Log.AddSource,
		Env:       cfg.Env,
	})
	slog.SetDefault(log)

	if *host != "" {
		cfg.Server.Host = *host
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	svc, err := bootstrap.BuildCatalog(cfg, log, reg)
	if err != nil {
		log.Error("build catalog client failed", "err", err)
		os.Exit(1)
	}

	api := httpserver.New(log, reg, reg)
	api.RegisterRoutes(httpserver.Deps{
		Renderer: gallery.NewController(svc, log),
		Dashboard: dashboard.NewService(svc, dashboard.Options{
			TopWords:  cfg.Dashboard.TopWords,
			NoneLabel: cfg.Dashboard.NoneLabel,
		}, log),
		Vocabulary: svc,
		Sessions:   sessions.NewStore(sessions.DefaultIdleTTL, cfg.Gallery.DefaultPageSize, clock.NewRealClock()),
		Timeout:    2 * cfg.HTTP.Timeout(),
		AllTimeout: cfg.HTTP.AllTimeout(),
	})

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))

	srv := &http.Server{
		Addr:              addr,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Info("api started", "addr", addr, "catalog", cfg.Catalog.BaseURL)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case sig := <-stop:
		log.Info("shutdown signal received", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("graceful shutdown failed", "err", err)
			_ = srv.Close()
		}
		log.Info("server stopped gracefully")

	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("server closed")
			return
		}
		log.Error("server stopped with error", "err", err)
		os.Exit(1)
	}
}
