// Package dashboard computes the aggregate views over the full product
// listing: average price per label, product count per promotion and the
// tag and product-name frequency lists.
package dashboard

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"catalogdash/internal/domain/models"
)

type LabelPrice struct {
	Label   string  `json:"label"`
	Average float64 `json:"average_price"`
	Count   int     `json:"count"`
}

type PromotionCount struct {
	Promotion string `json:"promotion"`
	Count     int    `json:"count"`
}

type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

type Snapshot struct {
	FetchedAt   time.Time        `json:"fetched_at"`
	Total       int              `json:"total"`
	LabelPrices []LabelPrice     `json:"label_prices"`
	Promotions  []PromotionCount `json:"promotions"`
	TagWords    []WordCount      `json:"tag_words"`
	NameWords   []WordCount      `json:"name_words"`
}

func (s Snapshot) Empty() bool { return s.Total == 0 }

type Options struct {
	TopWords  int
	NoneLabel string
}

func (o Options) withDefaults() Options {
	if o.TopWords <= 0 {
		o.TopWords = 100
	}
	if strings.TrimSpace(o.NoneLabel) == "" {
		o.NoneLabel = "none"
	}
	return o
}

// Compute builds every aggregate from products. Only the first label, tag
// and promotion of a product take part in grouping.
func Compute(products []models.ProductSummary, opts Options) Snapshot {
	opts = opts.withDefaults()

	return Snapshot{
		Total:       len(products),
		LabelPrices: averageByLabel(products, opts.NoneLabel),
		Promotions:  countByPromotion(products, opts.NoneLabel),
		TagWords:    topWords(products, opts.TopWords, models.ProductSummary.FirstTag),
		NameWords:   topWords(products, opts.TopWords, func(p models.ProductSummary) string { return p.Name }),
	}
}

func groupKey(name, none string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return none
	}
	return name
}

func averageByLabel(products []models.ProductSummary, none string) []LabelPrice {
	type acc struct {
		sum   int
		count int
	}
	groups := map[string]*acc{}
	for _, p := range products {
		if p.NoPrice {
			continue
		}
		k := groupKey(p.FirstLabel(), none)
		a, ok := groups[k]
		if !ok {
			a = &acc{}
			groups[k] = a
		}
		a.sum += p.Price
		a.count++
	}

	out := make([]LabelPrice, 0, len(groups))
	for k, a := range groups {
		out = append(out, LabelPrice{Label: k, Average: float64(a.sum) / float64(a.count), Count: a.count})
	}
	slices.SortFunc(out, func(a, b LabelPrice) int {
		if c := cmp.Compare(b.Average, a.Average); c != 0 {
			return c
		}
		return cmp.Compare(a.Label, b.Label)
	})
	return out
}

func countByPromotion(products []models.ProductSummary, none string) []PromotionCount {
	counts := map[string]int{}
	for _, p := range products {
		counts[groupKey(p.FirstPromotion(), none)]++
	}

	out := make([]PromotionCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, PromotionCount{Promotion: k, Count: n})
	}
	slices.SortFunc(out, func(a, b PromotionCount) int { return cmp.Compare(a.Promotion, b.Promotion) })
	return out
}

// topWords counts the trimmed, non-blank values of pick and keeps the n
// most frequent, ties broken by name.
func topWords(products []models.ProductSummary, n int, pick func(models.ProductSummary) string) []WordCount {
	counts := map[string]int{}
	for _, p := range products {
		w := strings.TrimSpace(pick(p))
		if w == "" {
			continue
		}
		counts[w]++
	}

	out := make([]WordCount, 0, len(counts))
	for w, c := range counts {
		out = append(out, WordCount{Word: w, Count: c})
	}
	slices.SortFunc(out, func(a, b WordCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Word, b.Word)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

type Source interface {
	FetchAll(ctx context.Context) ([]models.ProductSummary, error)
}

// fetchedAter is implemented by cached sources.
type fetchedAter interface {
	AllFetchedAt() (time.Time, bool)
}

type Service struct {
	src  Source
	opts Options
	log  *slog.Logger
}

func NewService(src Source, opts Options, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{src: src, opts: opts.withDefaults(), log: log}
}

func (s *Service) Snapshot(ctx context.Context) (Snapshot, error) {
	products, err := s.src.FetchAll(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("dashboard: %w", err)
	}

	snap := Compute(products, s.opts)
	snap.FetchedAt = time.Now()
	if fa, ok := s.src.(fetchedAter); ok {
		if at, ok := fa.AllFetchedAt(); ok {
			snap.FetchedAt = at
		}
	}

	s.log.Debug("dashboard computed",
		"products", snap.Total,
		"labels", len(snap.LabelPrices),
		"promotions", len(snap.Promotions),
	)
	return snap, nil
}
