package models

// ProductSummary is one catalog product. NoPrice marks a product whose
// price was missing or null; Price is then zero.
type ProductSummary struct {
	ID          int      `json:"id"`
	Name        string   `json:"product_name"`
	Description string   `json:"product_description"`
	Price       int      `json:"price"`
	NoPrice     bool     `json:"no_price,omitempty"`
	ImageURL    string   `json:"image_url"`
	Tags        []string `json:"tags"`
	Labels      []string `json:"labels"`
	Promotions  []string `json:"promotion_tags"`
}

func (p ProductSummary) FirstTag() string       { return first(p.Tags) }
func (p ProductSummary) FirstLabel() string     { return first(p.Labels) }
func (p ProductSummary) FirstPromotion() string { return first(p.Promotions) }

func first(s []string) string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}

// ProductPage is one page of a filtered query.
// NotFound is set when the catalog answered 404 for the query.
type ProductPage struct {
	TotalCount int              `json:"total_count"`
	Items      []ProductSummary `json:"items"`
	NotFound   bool             `json:"not_found,omitempty"`
}

func (p ProductPage) Empty() bool {
	return p.NotFound || p.TotalCount == 0
}

type Vocabulary struct {
	Tags       []string `json:"tags"`
	Labels     []string `json:"labels"`
	Promotions []string `json:"promotions"`
}
