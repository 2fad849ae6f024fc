package bootstrap

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"catalogdash/internal/client"
	"catalogdash/internal/client/transport"
	"catalogdash/internal/config"
	"catalogdash/internal/metrics"
)

// BuildTransport assembles the outbound HTTP chain for the catalog. reg may be
// nil, in which case upstream metrics are collected but never exposed.
func BuildTransport(profile *config.Config, log *slog.Logger, reg prometheus.Registerer) (transport.Transport, error) {
	log.Info("profile",
		"env", profile.Env,
		"catalog", profile.Catalog.BaseURL,
		"timeout_s", profile.HTTP.TimeoutSeconds,
		"retries", profile.HTTP.Retries,
		"concurrency", profile.HTTP.Concurrency,
	)

	httpClient := client.NewHTTPClient(profile.HTTP.AllTimeout())

	return client.Build(client.Options{
		HTTPClient: httpClient,
		Retries:    profile.HTTP.Retries,
		Workers:    profile.HTTP.Concurrency,
		Metrics:    metrics.NewUpstream(reg),
		Logger:     log,
	})
}
