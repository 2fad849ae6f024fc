package gallery

import "catalogdash/internal/domain/models"

type Outcome string

const (
	OutcomeResults Outcome = "results"
	OutcomeEmpty   Outcome = "empty"
)

// View is everything the presentation layer needs for one render.
type View struct {
	Outcome    Outcome                 `json:"outcome"`
	Filters    models.FilterSet        `json:"filters"`
	Items      []models.ProductSummary `json:"items"`
	TotalCount int                     `json:"total_count"`
	Cursor     models.PageCursor       `json:"cursor"`
	TotalPages int                     `json:"total_pages"`
	Bounds     models.PriceBounds      `json:"bounds"`
	Range      models.PriceRange       `json:"price_range"`
	RangeFixed bool                    `json:"price_range_fixed"`
	CanPrev    bool                    `json:"can_prev"`
	CanNext    bool                    `json:"can_next"`

	// BoundsRefreshed is set when this render fetched new bounds.
	BoundsRefreshed bool `json:"bounds_refreshed"`
}

func (v View) Empty() bool { return v.Outcome == OutcomeEmpty }
