package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"catalogdash/internal/domain/models"
	"catalogdash/internal/gallery"
)

const CardsPerRow = 3

type BadgeKind int

const (
	BadgeLabel BadgeKind = iota
	BadgeTag
	BadgePromotion
)

type Renderer struct {
	st Styles
}

func New(st Styles) *Renderer {
	return &Renderer{st: st}
}

func (r *Renderer) badge(kind BadgeKind, name string) string {
	return r.st.Badge.Background(badgeColors[kind]).Render(name)
}

// Card renders one product: image reference, badges, name, price and description.
func (r *Renderer) Card(p models.ProductSummary) string {
	inner := CardWidth - 4

	var badges []string
	for _, l := range p.Labels {
		badges = append(badges, r.badge(BadgeLabel, l))
	}
	for _, t := range p.Tags {
		badges = append(badges, r.badge(BadgeTag, t))
	}
	for _, pr := range p.Promotions {
		badges = append(badges, r.badge(BadgePromotion, pr))
	}

	lines := []string{
		r.st.Muted.Render(truncate("img: "+orDash(p.ImageURL), inner)),
	}
	if len(badges) > 0 {
		lines = append(lines, lipgloss.NewStyle().Width(inner).Render(strings.Join(badges, " ")))
	}
	lines = append(lines,
		r.st.Title.Render(truncate(p.Name, inner)),
		r.st.Price.Render(price(p)),
	)
	if d := strings.TrimSpace(p.Description); d != "" {
		lines = append(lines, truncate(d, inner*2))
	}

	return r.st.Card.Render(strings.Join(lines, "\n"))
}

// Gallery renders a full controller view. The empty state replaces the
// cards entirely.
func (r *Renderer) Gallery(v gallery.View) string {
	var sb strings.Builder

	sb.WriteString(r.header(v))
	sb.WriteString("\n\n")

	if v.Empty() {
		sb.WriteString(r.st.Subtitle.Render("No products match the current filters."))
		sb.WriteString("\n")
		return sb.String()
	}

	for i := 0; i < len(v.Items); i += CardsPerRow {
		row := make([]string, 0, CardsPerRow)
		for _, p := range v.Items[i:min(i+CardsPerRow, len(v.Items))] {
			row = append(row, r.Card(p))
		}
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, row...))
		sb.WriteString("\n")
	}

	sb.WriteString(r.footer(v))
	sb.WriteString("\n")
	return sb.String()
}

func (r *Renderer) header(v gallery.View) string {
	title := r.st.Title.Render("Products")

	var price string
	switch {
	case v.Bounds.Empty:
		price = "price: -"
	case v.RangeFixed:
		price = fmt.Sprintf("price: %s (fixed)", Thousands(v.Range.Min))
	default:
		price = fmt.Sprintf("price: %s - %s of %s - %s",
			Thousands(v.Range.Min), Thousands(v.Range.Max),
			Thousands(v.Bounds.Min), Thousands(v.Bounds.Max))
	}

	info := fmt.Sprintf("%d found, %d per page, %s", v.TotalCount, v.Cursor.Size, price)
	return lipgloss.JoinVertical(lipgloss.Left, title, r.st.Muted.Render(info))
}

func (r *Renderer) footer(v gallery.View) string {
	prev, next := "< prev", "next >"
	if !v.CanPrev {
		prev = r.st.Muted.Render(prev)
	}
	if !v.CanNext {
		next = r.st.Muted.Render(next)
	}
	return fmt.Sprintf("%s   page %d / %d   %s", prev, v.Cursor.Page, v.TotalPages, next)
}

// Failure renders a fatal query error. Nothing else is shown for the render.
func (r *Renderer) Failure(err error) string {
	var qe *gallery.QueryError
	if errors.As(err, &qe) && qe.Status != 0 {
		return r.st.Error.Render(fmt.Sprintf("Catalog request failed with status %d", qe.Status))
	}
	return r.st.Error.Render("Catalog request failed: " + err.Error())
}

// Vocabulary lists the selectable names per category.
func (r *Renderer) Vocabulary(v models.Vocabulary) string {
	section := func(title string, names []string) string {
		body := r.st.Muted.Render("(none)")
		if len(names) > 0 {
			body = strings.Join(names, ", ")
		}
		return r.st.Title.Render(title) + "\n" + body
	}
	return strings.Join([]string{
		section("Tags", v.Tags),
		section("Labels", v.Labels),
		section("Promotions", v.Promotions),
	}, "\n\n") + "\n"
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func price(p models.ProductSummary) string {
	if p.NoPrice {
		return "price n/a"
	}
	return Thousands(p.Price)
}
