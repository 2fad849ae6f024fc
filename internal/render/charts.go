package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"catalogdash/internal/dashboard"
)

const barWidth = 40

// bar draws a horizontal bar of value scaled against maxVal.
func (r *Renderer) bar(value, maxVal float64) string {
	n := 0
	if maxVal > 0 {
		n = int(value / maxVal * barWidth)
	}
	if value > 0 && n == 0 {
		n = 1
	}
	return r.st.Bar.Render(strings.Repeat("█", n))
}

func labelColumn(names []string) lipgloss.Style {
	w := 0
	for _, n := range names {
		w = max(w, lipgloss.Width(n))
	}
	return lipgloss.NewStyle().Width(min(w, 24) + 1)
}

func (r *Renderer) noData(title string) string {
	return r.st.Title.Render(title) + "\n" + r.st.Subtitle.Render("no data")
}

func (r *Renderer) LabelPrices(rows []dashboard.LabelPrice) string {
	const title = "Average price by label"
	if len(rows) == 0 {
		return r.noData(title)
	}

	names := make([]string, len(rows))
	top := 0.0
	for i, row := range rows {
		names[i] = row.Label
		top = max(top, row.Average)
	}
	col := labelColumn(names)

	lines := []string{r.st.Title.Render(title)}
	for _, row := range rows {
		lines = append(lines, fmt.Sprintf("%s %s %s",
			col.Render(truncate(row.Label, 24)),
			r.bar(row.Average, top),
			Thousands(int(row.Average+0.5)),
		))
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) PromotionCounts(rows []dashboard.PromotionCount) string {
	const title = "Products by promotion"
	if len(rows) == 0 {
		return r.noData(title)
	}

	names := make([]string, len(rows))
	top := 0
	for i, row := range rows {
		names[i] = row.Promotion
		top = max(top, row.Count)
	}
	col := labelColumn(names)

	lines := []string{r.st.Title.Render(title)}
	for _, row := range rows {
		lines = append(lines, fmt.Sprintf("%s %s %d",
			col.Render(truncate(row.Promotion, 24)),
			r.bar(float64(row.Count), float64(top)),
			row.Count,
		))
	}
	return strings.Join(lines, "\n")
}

// Words renders a ranked frequency list, the text form of a word cloud.
func (r *Renderer) Words(title string, rows []dashboard.WordCount) string {
	if len(rows) == 0 {
		return r.noData(title)
	}

	lines := []string{r.st.Title.Render(title)}
	for i, row := range rows {
		word := row.Word
		if i < 3 {
			word = lipgloss.NewStyle().Bold(true).Render(word)
		}
		lines = append(lines, fmt.Sprintf("%3d. %s (%d)", i+1, word, row.Count))
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) Dashboard(s dashboard.Snapshot) string {
	if s.Empty() {
		return r.noData("Dashboard") + "\n"
	}

	head := r.st.Muted.Render(fmt.Sprintf("%d products, fetched %s", s.Total, s.FetchedAt.Format("2006-01-02 15:04:05")))
	parts := []string{
		head,
		r.LabelPrices(s.LabelPrices),
		r.PromotionCounts(s.Promotions),
		r.Words("Top tags", s.TagWords),
		r.Words("Top product names", s.NameWords),
	}
	return strings.Join(parts, "\n\n") + "\n"
}
