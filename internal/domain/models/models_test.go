package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterSet_EqualIgnoresOrderAndDuplicates(t *testing.T) {
	a := FilterSet{Query: "milk", Tags: []string{"b", "a"}, Labels: []string{"x", "x"}}
	b := NewFilterSet("milk", []string{"a", "b"}, []string{"x"}, nil)

	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(a))
}

func TestFilterSet_EqualDetectsChanges(t *testing.T) {
	base := NewFilterSet("milk", []string{"a"}, nil, nil)

	assert.False(t, base.Equal(NewFilterSet("milk ", []string{"a"}, nil, nil)))
	assert.False(t, base.Equal(NewFilterSet("milk", []string{"a", "b"}, nil, nil)))
	assert.False(t, base.Equal(NewFilterSet("milk", []string{"a"}, []string{"a"}, nil)))
	assert.False(t, base.Equal(NewFilterSet("milk", []string{"a"}, nil, []string{"1+1"})))
}

func TestFilterSet_BlankNamesDropped(t *testing.T) {
	f := NewFilterSet("", []string{" ", "", "BEST "}, nil, nil)
	assert.Equal(t, []string{"BEST"}, f.Tags)
	assert.True(t, f.Equal(FilterSet{Tags: []string{"BEST"}}))
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0, 12))
	assert.Equal(t, 1, TotalPages(12, 12))
	assert.Equal(t, 2, TotalPages(13, 12))
	assert.Equal(t, 3, TotalPages(25, 12))
	assert.Equal(t, 5, TotalPages(25, 6))
	assert.Equal(t, 1, TotalPages(25, 0))
}

func TestPageCursor_Clamp(t *testing.T) {
	assert.Equal(t, PageCursor{Page: 2, Size: 24}, PageCursor{Page: 5, Size: 24}.Clamp(2))
	assert.Equal(t, PageCursor{Page: 1, Size: 6}, PageCursor{Page: 0, Size: 6}.Clamp(3))
	assert.Equal(t, PageCursor{Page: 1, Size: 6}, PageCursor{Page: 4, Size: 6}.Clamp(0))
}

func TestNewCursor_InvalidSizeFallsBack(t *testing.T) {
	assert.Equal(t, PageCursor{Page: 1, Size: DefaultPageSize}, NewCursor(7))
	assert.Equal(t, PageCursor{Page: 1, Size: 24}, NewCursor(24))
}

func TestNextPageSize_Cycles(t *testing.T) {
	assert.Equal(t, 12, NextPageSize(6))
	assert.Equal(t, 24, NextPageSize(12))
	assert.Equal(t, 6, NextPageSize(24))
	assert.Equal(t, 6, NextPageSize(5))
}

func TestPriceBounds_Clamp(t *testing.T) {
	b := PriceBounds{Min: 1000, Max: 5000}

	assert.Equal(t, PriceRange{Min: 1500, Max: 3000}, b.Clamp(PriceRange{Min: 1500, Max: 3000}))
	assert.Equal(t, PriceRange{Min: 1000, Max: 5000}, b.Clamp(PriceRange{Min: 0, Max: 9000}))
	assert.Equal(t, PriceRange{Min: 1500, Max: 3000}, b.Clamp(PriceRange{Min: 3000, Max: 1500}))
}

func TestPriceBounds_FixedClampsToSingleValue(t *testing.T) {
	b := PriceBounds{Min: 1000, Max: 1000}

	assert.True(t, b.Fixed())
	assert.Equal(t, PriceRange{Min: 1000, Max: 1000}, b.Clamp(PriceRange{Min: 0, Max: 5000}))
}

func TestPriceBounds_Validate(t *testing.T) {
	assert.NoError(t, PriceBounds{Min: 0, Max: 0}.Validate())
	assert.Error(t, PriceBounds{Min: 10, Max: 5}.Validate())
	assert.Error(t, PriceBounds{Min: -1, Max: 5}.Validate())
}

func TestProductPage_Empty(t *testing.T) {
	assert.True(t, ProductPage{}.Empty())
	assert.True(t, ProductPage{NotFound: true}.Empty())
	assert.False(t, ProductPage{TotalCount: 3, Items: make([]ProductSummary, 3)}.Empty())
}
