package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"catalogdash/internal/apis/catalog"
	"catalogdash/internal/bootstrap"
	"catalogdash/internal/config"
	"catalogdash/internal/logger"
	"catalogdash/internal/render"
)

var (
	configPath string
	outputFile string
	baseURL    string
	timeout    time.Duration
)

type app struct {
	cfg     *config.Config
	log     *slog.Logger
	catalog *catalog.CachedService
	render  *render.Renderer
}

var rootCmd = &cobra.Command{
	Use:           "catalogdash-cli",
	Short:         "Query the product catalog from the terminal",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./config/config.yaml", "path to config.yaml")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "out", "o", "", "write the result as JSON to this file")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "override catalog base URL")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "overall deadline for the command (0 = none)")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(vocabCmd)
}

func setup() (*app, error) {
	path := configPath
	if _, err := os.Stat(path); err != nil && !rootCmd.PersistentFlags().Changed("config") {
		path = ""
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// overrides
	if baseURL != "" {
		cfg.Catalog.BaseURL = baseURL
	}
	if outputFile != "" {
		cfg.CLI.OutputFile = outputFile
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	log := logger.New(logger.Options{
		Level:     cfg.Log.Level,
		Format:    cfg.Log.Format,
		AddSource: cfg.Log.AddSource,
		Env:       cfg.Env,
		Writer:    os.Stderr,
	})
	slog.SetDefault(log)

	svc, err := bootstrap.BuildCatalog(cfg, log, nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog client: %w", err)
	}

	return &app{
		cfg:     cfg,
		log:     log,
		catalog: svc,
		render:  render.New(render.DefaultStyles()),
	}, nil
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	if timeout > 0 {
		return context.WithTimeout(cmd.Context(), timeout)
	}
	return context.WithCancel(cmd.Context())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
