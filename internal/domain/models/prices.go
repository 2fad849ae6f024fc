package models

import "fmt"

// PriceBounds is the server-computed min/max price for a FilterSet.
// Empty marks "nothing matched"; Min and Max are then both zero.
type PriceBounds struct {
	Min   int  `json:"min_price"`
	Max   int  `json:"max_price"`
	Empty bool `json:"empty"`
}

func EmptyBounds() PriceBounds {
	return PriceBounds{Empty: true}
}

func (b PriceBounds) Validate() error {
	if b.Min < 0 || b.Max < 0 {
		return fmt.Errorf("negative price bounds min=%d max=%d", b.Min, b.Max)
	}
	if b.Min > b.Max {
		return fmt.Errorf("price bounds min=%d > max=%d", b.Min, b.Max)
	}
	return nil
}

// Fixed reports a single-value (or empty) range: no interactive selection.
func (b PriceBounds) Fixed() bool {
	return b.Min == b.Max
}

func (b PriceBounds) Full() PriceRange {
	return PriceRange{Min: b.Min, Max: b.Max}
}

// Clamp fits r inside the bounds. A reversed range is swapped first.
// For fixed bounds the result is always (Min, Min).
func (b PriceBounds) Clamp(r PriceRange) PriceRange {
	if b.Fixed() {
		return PriceRange{Min: b.Min, Max: b.Min}
	}
	if r.Min > r.Max {
		r.Min, r.Max = r.Max, r.Min
	}
	r.Min = min(max(r.Min, b.Min), b.Max)
	r.Max = min(max(r.Max, b.Min), b.Max)
	return r
}

type PriceRange struct {
	Min int `json:"price_min"`
	Max int `json:"price_max"`
}
