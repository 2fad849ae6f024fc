package mapper

import (
	"strings"

	"catalogdash/internal/apis/catalog/responses"
	"catalogdash/internal/domain/models"
)

func FromProduct(p responses.Product) models.ProductSummary {
	return models.ProductSummary{
		ID:          p.ID.Value,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.Value,
		NoPrice:     !p.Price.Valid,
		ImageURL:    p.ImageURL,
		Tags:        names(p.Tags),
		Labels:      names(p.Labels),
		Promotions:  names(p.Promotions),
	}
}

func FromProducts(ps []responses.Product) []models.ProductSummary {
	out := make([]models.ProductSummary, 0, len(ps))
	for _, p := range ps {
		out = append(out, FromProduct(p))
	}
	return out
}

// names keeps the catalog order; refs without a usable name are dropped.
func names(refs []responses.CategoryRef) []string {
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		if strings.TrimSpace(r.Name) == "" {
			continue
		}
		out = append(out, r.Name)
	}
	return out
}
