// Package gallery decides, for every interaction, which catalog queries a
// render needs and keeps the session's filters, price bounds and page
// cursor consistent with what was fetched.
package gallery

import (
	"context"
	"fmt"
	"log/slog"

	"catalogdash/internal/apis/catalog/endpoints"
	"catalogdash/internal/domain/models"
)

// Catalog is the subset of the catalog client a render uses.
type Catalog interface {
	FetchBounds(ctx context.Context, filters models.FilterSet) (models.PriceBounds, error)
	FetchPage(ctx context.Context, filters models.FilterSet, rng models.PriceRange, cursor models.PageCursor) (models.ProductPage, error)
}

type Controller struct {
	catalog Catalog
	log     *slog.Logger
}

func NewController(catalog Catalog, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}
	return &Controller{catalog: catalog, log: log}
}

// Render runs one render cycle for filters: at most a bounds probe (only
// when filters differ from the previous render) followed by a page query.
// Any error is a *QueryError and the session is left as it was before the
// failing query.
func (c *Controller) Render(ctx context.Context, s *Session, filters models.FilterSet) (View, error) {
	filters = filters.Normalized()

	refreshed, err := c.Prepare(ctx, s, filters)
	if err != nil {
		return View{}, err
	}

	if s.Bounds.Empty {
		s.recordCount(0)
		return c.view(s, filters, OutcomeEmpty, nil, 0, refreshed), nil
	}

	rng := s.PriceRange()
	page, err := c.catalog.FetchPage(ctx, filters, rng, s.Cursor)
	if err != nil {
		c.log.Error("page query failed", "err", err, "page", s.Cursor.Page, "page_size", s.Cursor.Size)
		return View{}, newQueryError(StagePage, err)
	}

	if page.Empty() {
		s.recordCount(0)
		return c.view(s, filters, OutcomeEmpty, nil, 0, refreshed), nil
	}
	if len(page.Items) == 0 {
		err := fmt.Errorf("%w: count %d but no items on page %d", endpoints.ErrMalformedPayload, page.TotalCount, s.Cursor.Page)
		c.log.Error("page query failed", "err", err, "page", s.Cursor.Page, "page_size", s.Cursor.Size)
		return View{}, newQueryError(StagePage, err)
	}

	// Items belong to the requested page even if the clamp below moves the
	// cursor for the next render.
	v := c.view(s, filters, OutcomeResults, page.Items, page.TotalCount, refreshed)
	s.recordCount(page.TotalCount)
	v.TotalPages = s.TotalPages()
	v.CanPrev = v.Cursor.Page > 1
	v.CanNext = v.Cursor.Page < v.TotalPages
	return v, nil
}

// Prepare runs only the bounds step of a render: when filters differ from
// the session's it fetches bounds and resets page and price range. It
// reports whether bounds were fetched. Price narrowing and page seeks made
// after Prepare are used by the next Render without another probe.
func (c *Controller) Prepare(ctx context.Context, s *Session, filters models.FilterSet) (bool, error) {
	filters = filters.Normalized()
	if prev, ok := s.Filters(); ok && prev.Equal(filters) {
		return false, nil
	}

	b, err := c.catalog.FetchBounds(ctx, filters)
	if err != nil {
		c.log.Error("bounds query failed", "err", err, "query", filters.Query)
		return false, newQueryError(StageBounds, err)
	}
	s.resetForFilters(filters, b)

	c.log.Debug("filters changed",
		"query", filters.Query,
		"tags", filters.Tags,
		"labels", filters.Labels,
		"promotions", filters.Promotions,
		"empty", b.Empty,
		"min_price", b.Min,
		"max_price", b.Max,
	)
	return true, nil
}

func (c *Controller) view(s *Session, f models.FilterSet, o Outcome, items []models.ProductSummary, count int, refreshed bool) View {
	if items == nil {
		items = []models.ProductSummary{}
	}
	return View{
		Outcome:         o,
		Filters:         f,
		Items:           items,
		TotalCount:      count,
		Cursor:          s.Cursor,
		TotalPages:      s.TotalPages(),
		Bounds:          s.Bounds,
		Range:           s.PriceRange(),
		RangeFixed:      s.Bounds.Fixed(),
		CanPrev:         s.CanPrev(),
		CanNext:         s.CanNext(),
		BoundsRefreshed: refreshed,
	}
}
