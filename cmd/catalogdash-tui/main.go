package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"catalogdash/internal/bootstrap"
	"catalogdash/internal/config"
	"catalogdash/internal/dashboard"
	"catalogdash/internal/gallery"
	"catalogdash/internal/logger"
	"catalogdash/internal/render"
	"catalogdash/internal/tui"
)

func main() {
	var (
		configPath = flag.String("config", "./config/config.yaml", "path to config.yaml")
		baseURL    = flag.String("base-url", "", "override catalog base URL")
		logFile    = flag.String("log", "", "log file (stdout belongs to the UI)")
	)
	flag.Parse()

	path := *configPath
	if _, err := os.Stat(path); err != nil {
		path = ""
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config failed:", err)
		os.Exit(1)
	}
	if *baseURL != "" {
		cfg.Catalog.BaseURL = *baseURL
	}
	if *logFile != "" {
		cfg.Log.File = *logFile
	}

	log := logger.Discard()
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintln(os.Stderr, "open log file failed:", err)
			os.Exit(1)
		}
		defer f.Close()

		log = logger.New(logger.Options{
			Level:     cfg.Log.Level,
			Format:    cfg.Log.Format,
			AddSource: cfg.Log.AddSource,
			Env:       cfg.Env,
			Writer:    f,
		})
	}
	slog.SetDefault(log)

	svc, err := bootstrap.BuildCatalog(cfg, log, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "build catalog client failed:", err)
		os.Exit(1)
	}

	m := tui.New(tui.Deps{
		Controller: gallery.NewController(svc, log),
		Dashboard: dashboard.NewService(svc, dashboard.Options{
			TopWords:  cfg.Dashboard.TopWords,
			NoneLabel: cfg.Dashboard.NoneLabel,
		}, log),
		Vocabulary: svc,
		Renderer:   render.New(render.DefaultStyles()),
		PageSize:   cfg.Gallery.DefaultPageSize,
		Log:        log,
	})

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "tui failed:", err)
		os.Exit(1)
	}
}
