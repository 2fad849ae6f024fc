package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"catalogdash/internal/apis/catalog/endpoints"
	"catalogdash/internal/apis/catalog/mapper"
	"catalogdash/internal/client"
	"catalogdash/internal/domain/models"
)

const userAgent = "catalogdash/1.0 (+https://github.com/catalogdash)"

// Service is the catalog client used by the gallery controller and the
// aggregate dashboard.
type Service interface {
	FetchBounds(ctx context.Context, filters models.FilterSet) (models.PriceBounds, error)
	FetchPage(ctx context.Context, filters models.FilterSet, rng models.PriceRange, cursor models.PageCursor) (models.ProductPage, error)
	FetchVocabulary(ctx context.Context) (models.Vocabulary, error)
	FetchAll(ctx context.Context) ([]models.ProductSummary, error)
}

type Options struct {
	BaseURL            string
	Paths              endpoints.Paths
	Timeout            time.Duration
	AllTimeout         time.Duration
	VocabularyPageSize int
	Logger             *slog.Logger
}

type service struct {
	api        *endpoints.Client
	log        *slog.Logger
	timeout    time.Duration
	allTimeout time.Duration
	vocabSize  int
}

func New(transport client.Transport, opts Options) Service {
	if opts.BaseURL == "" {
		opts.BaseURL = "http://localhost:8000/api"
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.AllTimeout <= 0 {
		opts.AllTimeout = 40 * time.Second
	}
	if opts.VocabularyPageSize <= 0 {
		opts.VocabularyPageSize = 1000
	}

	s := &service{
		log:        opts.Logger,
		timeout:    opts.Timeout,
		allTimeout: opts.AllTimeout,
		vocabSize:  opts.VocabularyPageSize,
	}
	s.api = endpoints.New(transport, opts.BaseURL, opts.Paths, applyDefaultHeaders)
	return s
}

func applyDefaultHeaders(req *http.Request) {
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
}

// FetchBounds runs the aggregate probe (page 1, page_size 1) for filters.
// A 404 or a zero count yields EmptyBounds, not an error.
func (s *service) FetchBounds(ctx context.Context, filters models.FilterSet) (models.PriceBounds, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	l, err := s.api.ListProducts(ctx, endpoints.ProductQuery{
		Filters:  filters,
		Page:     1,
		PageSize: 1,
	})
	if err != nil {
		if endpoints.IsNotFound(err) {
			s.log.Debug("bounds probe: no matching products", "query", filters.Query)
			return models.EmptyBounds(), nil
		}
		return models.PriceBounds{}, fmt.Errorf("fetch bounds: %w", err)
	}

	if l.Count == 0 {
		return models.EmptyBounds(), nil
	}
	if l.Aggregate == nil {
		return models.PriceBounds{}, fmt.Errorf("fetch bounds: %w: no min_price/max_price in probe", endpoints.ErrMalformedPayload)
	}

	b := models.PriceBounds{Min: l.Aggregate.MinPrice, Max: l.Aggregate.MaxPrice}
	if err := b.Validate(); err != nil {
		return models.PriceBounds{}, fmt.Errorf("fetch bounds: %w: %v", endpoints.ErrMalformedPayload, err)
	}

	s.log.Debug("bounds probe", "count", l.Count, "min_price", b.Min, "max_price", b.Max)
	return b, nil
}

// FetchPage runs the full listing query. A 404 maps to a NotFound page.
func (s *service) FetchPage(ctx context.Context, filters models.FilterSet, rng models.PriceRange, cursor models.PageCursor) (models.ProductPage, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	l, err := s.api.ListProducts(ctx, endpoints.ProductQuery{
		Filters:  filters,
		Range:    &rng,
		Page:     cursor.Page,
		PageSize: cursor.Size,
	})
	if err != nil {
		if endpoints.IsNotFound(err) {
			return models.ProductPage{NotFound: true, Items: []models.ProductSummary{}}, nil
		}
		return models.ProductPage{}, fmt.Errorf("fetch page %d: %w", cursor.Page, err)
	}

	return models.ProductPage{
		TotalCount: l.Count,
		Items:      mapper.FromProducts(l.Items),
	}, nil
}

// FetchVocabulary reads the three category endpoints concurrently.
// A 404 on one endpoint leaves that list empty.
func (s *service) FetchVocabulary(ctx context.Context) (models.Vocabulary, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var out models.Vocabulary
	g, gctx := errgroup.WithContext(ctx)

	fetch := func(path string, dst *[]string) {
		g.Go(func() error {
			names, err := s.api.ListNames(gctx, path, s.vocabSize)
			if err != nil {
				if endpoints.IsNotFound(err) {
					*dst = []string{}
					return nil
				}
				return fmt.Errorf("fetch vocabulary %s: %w", path, err)
			}
			*dst = names
			return nil
		})
	}

	fetch(s.api.Paths.Tags, &out.Tags)
	fetch(s.api.Paths.Labels, &out.Labels)
	fetch(s.api.Paths.Promotions, &out.Promotions)

	if err := g.Wait(); err != nil {
		return models.Vocabulary{}, err
	}

	s.log.Debug("vocabulary fetched",
		"tags", len(out.Tags),
		"labels", len(out.Labels),
		"promotions", len(out.Promotions),
	)
	return out, nil
}

func (s *service) FetchAll(ctx context.Context) ([]models.ProductSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, s.allTimeout)
	defer cancel()

	items, err := s.api.ListAll(ctx)
	if err != nil {
		if endpoints.IsNotFound(err) {
			return []models.ProductSummary{}, nil
		}
		return nil, fmt.Errorf("fetch all products: %w", err)
	}

	s.log.Info("full listing fetched", "count", len(items))
	return mapper.FromProducts(items), nil
}
