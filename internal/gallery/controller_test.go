package gallery

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogdash/internal/apis/catalog/endpoints"
	"catalogdash/internal/domain/models"
	"catalogdash/internal/logger"
)

type pageCall struct {
	Filters models.FilterSet
	Range   models.PriceRange
	Cursor  models.PageCursor
}

type fakeCatalog struct {
	bounds    models.PriceBounds
	boundsErr error
	count     int
	notFound  bool
	noItems   bool
	pageErr   error

	boundsCalls []models.FilterSet
	pageCalls   []pageCall
}

func (f *fakeCatalog) FetchBounds(_ context.Context, filters models.FilterSet) (models.PriceBounds, error) {
	f.boundsCalls = append(f.boundsCalls, filters)
	if f.boundsErr != nil {
		return models.PriceBounds{}, f.boundsErr
	}
	return f.bounds, nil
}

func (f *fakeCatalog) FetchPage(_ context.Context, filters models.FilterSet, rng models.PriceRange, cursor models.PageCursor) (models.ProductPage, error) {
	f.pageCalls = append(f.pageCalls, pageCall{Filters: filters, Range: rng, Cursor: cursor})
	if f.pageErr != nil {
		return models.ProductPage{}, f.pageErr
	}
	if f.notFound {
		return models.ProductPage{NotFound: true}, nil
	}
	items := make([]models.ProductSummary, 0, cursor.Size)
	if f.noItems {
		return models.ProductPage{TotalCount: f.count, Items: items}, nil
	}
	for i := (cursor.Page - 1) * cursor.Size; i < min(cursor.Page*cursor.Size, f.count); i++ {
		items = append(items, models.ProductSummary{ID: i + 1})
	}
	return models.ProductPage{TotalCount: f.count, Items: items}, nil
}

func newController(f *fakeCatalog) *Controller {
	return NewController(f, logger.Discard())
}

func TestRender_FirstRenderProbesThenFetchesPage(t *testing.T) {
	f := &fakeCatalog{bounds: models.PriceBounds{Min: 100, Max: 900}, count: 25}
	c := newController(f)
	s := NewSession(12)

	v, err := c.Render(context.Background(), s, models.NewFilterSet("tea", nil, nil, nil))
	require.NoError(t, err)

	assert.Len(t, f.boundsCalls, 1)
	require.Len(t, f.pageCalls, 1)
	assert.Equal(t, models.PriceRange{Min: 100, Max: 900}, f.pageCalls[0].Range)
	assert.Equal(t, OutcomeResults, v.Outcome)
	assert.True(t, v.BoundsRefreshed)
	assert.Equal(t, 3, v.TotalPages)
	assert.Len(t, v.Items, 12)
	assert.False(t, v.CanPrev)
	assert.True(t, v.CanNext)
}

func TestRender_FilterChangeResetsPage(t *testing.T) {
	f := &fakeCatalog{bounds: models.PriceBounds{Min: 1, Max: 50}, count: 40}
	c := newController(f)
	s := NewSession(6)
	ctx := context.Background()

	_, err := c.Render(ctx, s, models.NewFilterSet("", []string{"green"}, nil, nil))
	require.NoError(t, err)
	require.True(t, s.NextPage())
	require.True(t, s.NextPage())
	_, err = c.Render(ctx, s, models.NewFilterSet("", []string{"green"}, nil, nil))
	require.NoError(t, err)
	assert.Equal(t, 3, s.Cursor.Page)

	v, err := c.Render(ctx, s, models.NewFilterSet("", []string{"green", "black"}, nil, nil))
	require.NoError(t, err)
	assert.Equal(t, 1, v.Cursor.Page)
	assert.Equal(t, 1, f.pageCalls[len(f.pageCalls)-1].Cursor.Page)
	assert.Len(t, f.boundsCalls, 2)
}

func TestRender_SameFiltersInAnyOrderSkipProbe(t *testing.T) {
	f := &fakeCatalog{bounds: models.PriceBounds{Min: 1, Max: 50}, count: 10}
	c := newController(f)
	s := NewSession(12)
	ctx := context.Background()

	_, err := c.Render(ctx, s, models.NewFilterSet("q", []string{"a", "b"}, []string{"x"}, nil))
	require.NoError(t, err)
	v, err := c.Render(ctx, s, models.FilterSet{Query: "q", Tags: []string{"b", "a", "a"}, Labels: []string{"x"}})
	require.NoError(t, err)

	assert.Len(t, f.boundsCalls, 1)
	assert.Len(t, f.pageCalls, 2)
	assert.False(t, v.BoundsRefreshed)
}

func TestRender_PageSizeChangeKeepsBoundsAndClamps(t *testing.T) {
	f := &fakeCatalog{bounds: models.PriceBounds{Min: 10, Max: 20}, count: 25}
	c := newController(f)
	s := NewSession(6)
	ctx := context.Background()
	filters := models.NewFilterSet("", nil, nil, nil)

	_, err := c.Render(ctx, s, filters)
	require.NoError(t, err)
	for s.NextPage() {
	}
	require.Equal(t, 5, s.Cursor.Page)

	before := s.Bounds
	require.NoError(t, s.SetPageSize(24))
	assert.Equal(t, 2, s.Cursor.Page)

	v, err := c.Render(ctx, s, filters)
	require.NoError(t, err)
	assert.Len(t, f.boundsCalls, 1)
	assert.Equal(t, before, s.Bounds)
	assert.Equal(t, models.PageCursor{Page: 2, Size: 24}, f.pageCalls[len(f.pageCalls)-1].Cursor)
	assert.Equal(t, 2, v.TotalPages)
	assert.False(t, v.CanNext)
}

func TestRender_ClampsWhenCountShrinks(t *testing.T) {
	f := &fakeCatalog{bounds: models.PriceBounds{Min: 10, Max: 20}, count: 30}
	c := newController(f)
	s := NewSession(12)
	ctx := context.Background()
	filters := models.NewFilterSet("", nil, nil, nil)

	_, err := c.Render(ctx, s, filters)
	require.NoError(t, err)
	s.NextPage()
	s.NextPage()

	f.count = 13
	_, err = c.Render(ctx, s, filters)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Cursor.Page)
	assert.Equal(t, 2, s.TotalPages())
}

func TestSetPageSize_RejectsUnknownSize(t *testing.T) {
	s := NewSession(12)
	assert.Error(t, s.SetPageSize(10))
	assert.Equal(t, 12, s.Cursor.Size)
}

func TestRender_NavigationScenario(t *testing.T) {
	f := &fakeCatalog{bounds: models.PriceBounds{Min: 1, Max: 99}, count: 25}
	c := newController(f)
	s := NewSession(12)
	ctx := context.Background()
	filters := models.NewFilterSet("", nil, nil, nil)

	v, err := c.Render(ctx, s, filters)
	require.NoError(t, err)
	assert.Equal(t, 3, v.TotalPages)
	assert.False(t, v.CanPrev)
	assert.False(t, s.PrevPage())

	for _, want := range []int{2, 3} {
		require.True(t, s.NextPage())
		v, err = c.Render(ctx, s, filters)
		require.NoError(t, err)
		assert.Equal(t, want, v.Cursor.Page)
	}
	assert.False(t, v.CanNext)
	assert.True(t, v.CanPrev)
	assert.False(t, s.NextPage())
	assert.Len(t, v.Items, 1)
}

func TestRender_FixedBounds(t *testing.T) {
	f := &fakeCatalog{bounds: models.PriceBounds{Min: 1000, Max: 1000}, count: 3}
	c := newController(f)
	s := NewSession(12)

	v, err := c.Render(context.Background(), s, models.NewFilterSet("", nil, nil, nil))
	require.NoError(t, err)

	assert.True(t, v.RangeFixed)
	assert.Equal(t, models.PriceRange{Min: 1000, Max: 1000}, v.Range)
	require.Len(t, f.pageCalls, 1)
	assert.Equal(t, models.PriceRange{Min: 1000, Max: 1000}, f.pageCalls[0].Range)
	assert.False(t, s.NarrowPrice(models.PriceRange{Min: 0, Max: 5000}))
}

func TestRender_NarrowedRangeUntilFilterChange(t *testing.T) {
	f := &fakeCatalog{bounds: models.PriceBounds{Min: 100, Max: 1000}, count: 5}
	c := newController(f)
	s := NewSession(12)
	ctx := context.Background()
	filters := models.NewFilterSet("", nil, nil, nil)

	_, err := c.Render(ctx, s, filters)
	require.NoError(t, err)
	require.True(t, s.NarrowPrice(models.PriceRange{Min: 900, Max: 50}))

	_, err = c.Render(ctx, s, filters)
	require.NoError(t, err)
	assert.Equal(t, models.PriceRange{Min: 100, Max: 900}, f.pageCalls[1].Range)

	require.True(t, s.NarrowPrice(models.PriceRange{Min: 200, Max: 300}))
	_, err = c.Render(ctx, s, filters)
	require.NoError(t, err)
	assert.Equal(t, models.PriceRange{Min: 200, Max: 300}, f.pageCalls[2].Range)

	_, err = c.Render(ctx, s, models.NewFilterSet("other", nil, nil, nil))
	require.NoError(t, err)
	assert.Equal(t, models.PriceRange{Min: 100, Max: 1000}, f.pageCalls[3].Range)
	assert.False(t, s.RangeNarrowed())
}

func TestRender_EmptyBoundsSkipPageQuery(t *testing.T) {
	f := &fakeCatalog{bounds: models.EmptyBounds()}
	c := newController(f)
	s := NewSession(12)

	v, err := c.Render(context.Background(), s, models.NewFilterSet("nothing", nil, nil, nil))
	require.NoError(t, err)

	assert.True(t, v.Empty())
	assert.Empty(t, f.pageCalls)
	assert.Equal(t, 1, v.TotalPages)
	assert.Empty(t, v.Items)
	assert.False(t, v.CanNext)
	assert.False(t, v.CanPrev)
}

func TestRender_PageNotFoundIsEmptyState(t *testing.T) {
	f := &fakeCatalog{bounds: models.PriceBounds{Min: 1, Max: 2}, notFound: true}
	c := newController(f)
	s := NewSession(12)

	v, err := c.Render(context.Background(), s, models.NewFilterSet("", nil, nil, nil))
	require.NoError(t, err)

	assert.Equal(t, OutcomeEmpty, v.Outcome)
	assert.Len(t, f.boundsCalls, 1)
	assert.Len(t, f.pageCalls, 1)
	assert.Equal(t, 1, v.TotalPages)
}

func TestRender_ZeroCountIsEmptyState(t *testing.T) {
	f := &fakeCatalog{bounds: models.PriceBounds{Min: 1, Max: 2}, count: 0}
	c := newController(f)

	v, err := c.Render(context.Background(), NewSession(12), models.NewFilterSet("", nil, nil, nil))
	require.NoError(t, err)
	assert.True(t, v.Empty())
	assert.Equal(t, 1, v.TotalPages)
}

func TestRender_FatalErrors(t *testing.T) {
	upstream := &endpoints.APIError{Status: 500, Message: "boom"}

	t.Run("bounds", func(t *testing.T) {
		f := &fakeCatalog{boundsErr: upstream}
		c := newController(f)
		s := NewSession(12)

		_, err := c.Render(context.Background(), s, models.NewFilterSet("x", nil, nil, nil))
		var qe *QueryError
		require.ErrorAs(t, err, &qe)
		assert.Equal(t, StageBounds, qe.Stage)
		assert.Equal(t, 500, qe.Status)
		assert.Empty(t, f.pageCalls)

		_, known := s.Filters()
		assert.False(t, known)
	})

	t.Run("page", func(t *testing.T) {
		f := &fakeCatalog{bounds: models.PriceBounds{Min: 1, Max: 2}, pageErr: upstream}
		c := newController(f)

		_, err := c.Render(context.Background(), NewSession(12), models.NewFilterSet("x", nil, nil, nil))
		var qe *QueryError
		require.ErrorAs(t, err, &qe)
		assert.Equal(t, StagePage, qe.Stage)
		assert.Equal(t, 500, qe.Status)
	})

	t.Run("timeout", func(t *testing.T) {
		f := &fakeCatalog{boundsErr: context.DeadlineExceeded}
		c := newController(f)

		_, err := c.Render(context.Background(), NewSession(12), models.NewFilterSet("x", nil, nil, nil))
		assert.True(t, errors.Is(err, context.DeadlineExceeded))
		var qe *QueryError
		require.ErrorAs(t, err, &qe)
		assert.Zero(t, qe.Status)
	})
}

func TestPrepare_NarrowAndSeekCostOnePageQuery(t *testing.T) {
	f := &fakeCatalog{bounds: models.PriceBounds{Min: 100, Max: 1000}, count: 30}
	c := newController(f)
	s := NewSession(12)
	ctx := context.Background()
	filters := models.NewFilterSet("x", []string{"b", "a"}, nil, nil)

	fetched, err := c.Prepare(ctx, s, filters)
	require.NoError(t, err)
	assert.True(t, fetched)
	assert.Empty(t, f.pageCalls)

	require.True(t, s.NarrowPrice(models.PriceRange{Min: 200, Max: 500}))
	require.True(t, s.SeekPage(3))

	v, err := c.Render(ctx, s, models.NewFilterSet("x", []string{"a", "b"}, nil, nil))
	require.NoError(t, err)

	assert.Len(t, f.boundsCalls, 1)
	require.Len(t, f.pageCalls, 1)
	assert.Equal(t, models.PageCursor{Page: 3, Size: 12}, f.pageCalls[0].Cursor)
	assert.Equal(t, models.PriceRange{Min: 200, Max: 500}, f.pageCalls[0].Range)
	assert.Equal(t, 3, v.Cursor.Page)
	assert.False(t, v.CanNext)

	fetched, err = c.Prepare(ctx, s, filters)
	require.NoError(t, err)
	assert.False(t, fetched)
	assert.Len(t, f.boundsCalls, 1)
}

func TestSeekPage(t *testing.T) {
	f := &fakeCatalog{bounds: models.PriceBounds{Min: 1, Max: 9}, count: 25}
	c := newController(f)
	s := NewSession(12)

	assert.False(t, s.SeekPage(0))
	assert.True(t, s.SeekPage(9))
	assert.Equal(t, 9, s.Cursor.Page)

	_, err := c.Render(context.Background(), s, models.NewFilterSet("q", nil, nil, nil))
	require.NoError(t, err)

	require.True(t, s.SeekPage(9))
	assert.Equal(t, 3, s.Cursor.Page)
}

func TestRender_CountWithoutItemsIsFatal(t *testing.T) {
	f := &fakeCatalog{bounds: models.PriceBounds{Min: 1, Max: 2}, count: 1, noItems: true}
	c := newController(f)

	v, err := c.Render(context.Background(), NewSession(12), models.NewFilterSet("x", nil, nil, nil))
	var qe *QueryError
	require.ErrorAs(t, err, &qe)
	assert.Equal(t, StagePage, qe.Stage)
	assert.ErrorIs(t, err, endpoints.ErrMalformedPayload)
	assert.Empty(t, v.Items)
	assert.Empty(t, v.Outcome)
}

func TestRender_BoundsIdempotentForSameFilters(t *testing.T) {
	f := &fakeCatalog{bounds: models.PriceBounds{Min: 5, Max: 7}, count: 1}
	c := newController(f)
	ctx := context.Background()
	filters := models.NewFilterSet("x", nil, nil, nil)

	a, err := c.Render(ctx, NewSession(12), filters)
	require.NoError(t, err)
	b, err := c.Render(ctx, NewSession(12), filters)
	require.NoError(t, err)
	assert.Equal(t, a.Bounds, b.Bounds)
}
