package catalog

import (
	"context"
	"time"

	"catalogdash/internal/cache"
	"catalogdash/internal/domain/models"
	"catalogdash/internal/pkg/clock"
)

const (
	allKey        = "products/all"
	vocabularyKey = "vocabulary"
)

// CachedService adds the read-through caches on top of a Service:
// the full listing expires after AllTTL, the vocabulary never expires.
// Bounds and pages always go to the catalog.
type CachedService struct {
	next  Service
	all   *cache.Cache[[]models.ProductSummary]
	vocab *cache.Cache[models.Vocabulary]
}

func WithCache(next Service, allTTL time.Duration, clk clock.Clock) *CachedService {
	return &CachedService{
		next:  next,
		all:   cache.New[[]models.ProductSummary](allTTL, clk),
		vocab: cache.New[models.Vocabulary](0, clk),
	}
}

func (c *CachedService) FetchBounds(ctx context.Context, filters models.FilterSet) (models.PriceBounds, error) {
	return c.next.FetchBounds(ctx, filters)
}

func (c *CachedService) FetchPage(ctx context.Context, filters models.FilterSet, rng models.PriceRange, cursor models.PageCursor) (models.ProductPage, error) {
	return c.next.FetchPage(ctx, filters, rng, cursor)
}

func (c *CachedService) FetchVocabulary(ctx context.Context) (models.Vocabulary, error) {
	return c.vocab.Get(ctx, vocabularyKey, c.next.FetchVocabulary)
}

func (c *CachedService) FetchAll(ctx context.Context) ([]models.ProductSummary, error) {
	return c.all.Get(ctx, allKey, c.next.FetchAll)
}

// AllFetchedAt reports when the cached full listing was loaded.
func (c *CachedService) AllFetchedAt() (time.Time, bool) {
	return c.all.StoredAt(allKey)
}
