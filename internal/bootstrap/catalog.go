package bootstrap

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"catalogdash/internal/apis/catalog"
	"catalogdash/internal/apis/catalog/endpoints"
	"catalogdash/internal/config"
	"catalogdash/internal/pkg/clock"
)

// BuildCatalog wires transport and cache into a ready catalog service.
func BuildCatalog(profile *config.Config, log *slog.Logger, reg prometheus.Registerer) (*catalog.CachedService, error) {
	tr, err := BuildTransport(profile, log, reg)
	if err != nil {
		return nil, err
	}

	svc := catalog.New(tr, catalog.Options{
		BaseURL: profile.Catalog.BaseURL,
		Paths: endpoints.Paths{
			Products:   profile.Catalog.ProductsPath,
			All:        profile.Catalog.AllPath,
			Tags:       profile.Catalog.TagsPath,
			Labels:     profile.Catalog.LabelsPath,
			Promotions: profile.Catalog.PromotionsPath,
		},
		Timeout:            profile.HTTP.Timeout(),
		AllTimeout:         profile.HTTP.AllTimeout(),
		VocabularyPageSize: profile.Catalog.VocabularyPageSize,
		Logger:             log,
	})

	return catalog.WithCache(svc, profile.Dashboard.CacheTTL(), clock.NewRealClock()), nil
}
