package client

import (
	"log/slog"
	"net/http"
	"time"

	"catalogdash/internal/client/httpc"
	"catalogdash/internal/client/transport"
	"catalogdash/internal/metrics"
)

type Transport = transport.Transport

type Options struct {
	HTTPClient *http.Client
	Retries    int
	Workers    int

	BaseDelay time.Duration
	MaxDelay  time.Duration

	Metrics *metrics.Upstream
	Logger  *slog.Logger
}

func Build(opts Options) (Transport, error) {
	return transport.Build(transport.Options{
		HTTPClient:  opts.HTTPClient,
		Retries:     opts.Retries,
		Concurrency: opts.Workers,
		BaseDelay:   opts.BaseDelay,
		MaxDelay:    opts.MaxDelay,
		Metrics:     opts.Metrics,
		Logger:      opts.Logger,
	})
}

func NewHTTPClient(timeout time.Duration) *http.Client {
	return httpc.New(timeout)
}
