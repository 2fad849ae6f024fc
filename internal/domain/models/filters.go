package models

import (
	"slices"
	"strings"
)

// FilterSet is the query plus the selected tag/label/promotion names.
// Name lists are sets: order and duplicates do not matter for Equal.
type FilterSet struct {
	Query      string   `json:"query"`
	Tags       []string `json:"tags"`
	Labels     []string `json:"labels"`
	Promotions []string `json:"promotions"`
}

func NewFilterSet(query string, tags, labels, promotions []string) FilterSet {
	return FilterSet{
		Query:      query,
		Tags:       normalizeNames(tags),
		Labels:     normalizeNames(labels),
		Promotions: normalizeNames(promotions),
	}
}

// Normalized returns a copy with sorted, deduplicated, non-blank name sets.
func (f FilterSet) Normalized() FilterSet {
	return NewFilterSet(f.Query, f.Tags, f.Labels, f.Promotions)
}

func (f FilterSet) Equal(o FilterSet) bool {
	a, b := f.Normalized(), o.Normalized()
	return a.Query == b.Query &&
		slices.Equal(a.Tags, b.Tags) &&
		slices.Equal(a.Labels, b.Labels) &&
		slices.Equal(a.Promotions, b.Promotions)
}

func normalizeNames(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	slices.Sort(out)
	return slices.Compact(out)
}
