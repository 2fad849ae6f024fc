package endpoints

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"catalogdash/internal/apis/catalog/responses"
	"catalogdash/internal/domain/models"
)

const (
	pageBodyLimit = 4 * 1024 * 1024
	allBodyLimit  = 64 * 1024 * 1024
)

// ProductQuery is one filtered, bounded, paginated listing request.
// A nil Range sends no price parameters.
type ProductQuery struct {
	Filters  models.FilterSet
	Range    *models.PriceRange
	Page     int
	PageSize int
}

func (q ProductQuery) Values() url.Values {
	v := url.Values{}
	f := q.Filters.Normalized()

	if f.Query != "" {
		v.Set("search", f.Query)
	}
	for _, t := range f.Tags {
		v.Add("tags__name", t)
	}
	for _, l := range f.Labels {
		v.Add("labels__name", l)
	}
	for _, p := range f.Promotions {
		v.Add("promotion_tags__name", p)
	}
	if q.Range != nil {
		v.Set("price_min", strconv.Itoa(q.Range.Min))
		v.Set("price_max", strconv.Itoa(q.Range.Max))
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		v.Set("page_size", strconv.Itoa(q.PageSize))
	}
	return v
}

func (c *Client) ListProducts(ctx context.Context, q ProductQuery) (responses.Listing, error) {
	b, err := c.get(ctx, c.Paths.Products, q.Values(), pageBodyLimit)
	if err != nil {
		return responses.Listing{}, err
	}

	l, err := responses.ParseListing(b)
	if err != nil {
		return responses.Listing{}, fmt.Errorf("ListProducts: %w", err)
	}
	return l, nil
}

// ListAll reads the unfiltered dump used by the aggregate views.
func (c *Client) ListAll(ctx context.Context) ([]responses.Product, error) {
	b, err := c.get(ctx, c.Paths.All, nil, allBodyLimit)
	if err != nil {
		return nil, err
	}

	l, err := responses.ParseListing(b)
	if err != nil {
		return nil, fmt.Errorf("ListAll: %w", err)
	}
	return l.Items, nil
}
