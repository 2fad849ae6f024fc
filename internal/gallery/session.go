package gallery

import (
	"fmt"

	"catalogdash/internal/domain/models"
)

// Session is the per-user state that survives between renders.
// It is not safe for concurrent use; callers serialize interactions.
type Session struct {
	prev *models.FilterSet

	Bounds models.PriceBounds
	Cursor models.PageCursor

	rng      models.PriceRange
	rangeSet bool

	totalPages int
	lastCount  int
	countKnown bool
}

func NewSession(pageSize int) *Session {
	return &Session{
		Cursor:     models.NewCursor(pageSize),
		totalPages: 1,
	}
}

// Filters returns the filter set of the last successful bounds fetch.
func (s *Session) Filters() (models.FilterSet, bool) {
	if s.prev == nil {
		return models.FilterSet{}, false
	}
	return *s.prev, true
}

func (s *Session) TotalPages() int { return max(s.totalPages, 1) }

func (s *Session) CanPrev() bool { return s.Cursor.Page > 1 }

func (s *Session) CanNext() bool { return s.Cursor.Page < s.TotalPages() }

// NextPage moves forward one page. It reports false at the last page.
func (s *Session) NextPage() bool {
	if !s.CanNext() {
		return false
	}
	s.Cursor.Page++
	return true
}

// PrevPage moves back one page. It reports false at page 1.
func (s *Session) PrevPage() bool {
	if !s.CanPrev() {
		return false
	}
	s.Cursor.Page--
	return true
}

// SeekPage jumps to page n. Until a page for the current filters has been
// fetched the total is unknown and n is taken as is; the render that
// follows clamps it. It reports false for n < 1.
func (s *Session) SeekPage(n int) bool {
	if n < 1 {
		return false
	}
	if s.countKnown {
		n = min(n, s.TotalPages())
	}
	s.Cursor.Page = n
	return true
}

// SetPageSize switches the page size and clamps the current page against
// the last known total count. The page number is not reset.
func (s *Session) SetPageSize(size int) error {
	if !models.ValidPageSize(size) {
		return fmt.Errorf("page size %d not in %v", size, models.PageSizes)
	}
	s.Cursor.Size = size
	if s.countKnown {
		s.totalPages = models.TotalPages(s.lastCount, size)
		s.Cursor = s.Cursor.Clamp(s.totalPages)
	}
	return nil
}

// NarrowPrice selects a sub-range of the current bounds. It is ignored
// (false) before the first render, for empty bounds and for fixed bounds.
func (s *Session) NarrowPrice(r models.PriceRange) bool {
	if s.prev == nil || s.Bounds.Empty || s.Bounds.Fixed() {
		return false
	}
	s.rng = s.Bounds.Clamp(r)
	s.rangeSet = true
	return true
}

// PriceRange is what the next page query will use: the narrowed range if
// one was chosen for the current filters, otherwise the full bounds.
func (s *Session) PriceRange() models.PriceRange {
	if !s.rangeSet {
		return s.Bounds.Clamp(s.Bounds.Full())
	}
	return s.Bounds.Clamp(s.rng)
}

func (s *Session) RangeNarrowed() bool { return s.rangeSet }

func (s *Session) resetForFilters(f models.FilterSet, b models.PriceBounds) {
	s.prev = &f
	s.Bounds = b
	s.rng = b.Full()
	s.rangeSet = false
	s.Cursor.Page = 1
	s.countKnown = false
	s.totalPages = 1
}

func (s *Session) recordCount(count int) {
	s.lastCount = count
	s.countKnown = true
	s.totalPages = models.TotalPages(count, s.Cursor.Size)
	s.Cursor = s.Cursor.Clamp(s.totalPages)
}
