// Package render turns controller views and dashboard snapshots into
// terminal text with lipgloss.
package render

import "github.com/charmbracelet/lipgloss"

var (
	Primary     = lipgloss.Color("#101F38")
	Accent      = lipgloss.Color("#8BC34A")
	Muted       = lipgloss.Color("#8a93a3")
	Destructive = lipgloss.Color("#e53935")
	Info        = lipgloss.Color("#2196F3")

	badgeColors = map[BadgeKind]lipgloss.Color{
		BadgeLabel:     lipgloss.Color("#4db6ac"),
		BadgeTag:       lipgloss.Color("#29434e"),
		BadgePromotion: lipgloss.Color("#ff8a65"),
	}
)

type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Card     lipgloss.Style
	Price    lipgloss.Style
	Bar      lipgloss.Style
	Badge    lipgloss.Style
}

// CardWidth is the outer width of one product card.
const CardWidth = 34

func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true),
		Subtitle: lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true),
		Muted: lipgloss.NewStyle().
			Foreground(Muted),
		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),
		Card: lipgloss.NewStyle().
			Width(CardWidth-2).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Muted),
		Price: lipgloss.NewStyle().
			Foreground(Info).
			Bold(true),
		Bar: lipgloss.NewStyle().
			Foreground(Accent),
		Badge: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1),
	}
}
