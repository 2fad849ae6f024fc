// Package tui is the interactive terminal front end: a product gallery
// driven by the gallery controller and a dashboard tab.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"catalogdash/internal/dashboard"
	"catalogdash/internal/domain/models"
	"catalogdash/internal/gallery"
	"catalogdash/internal/render"
)

type Tab int

const (
	TabGallery Tab = iota
	TabDashboard
)

type VocabularySource interface {
	FetchVocabulary(ctx context.Context) (models.Vocabulary, error)
}

type Deps struct {
	Controller *gallery.Controller
	Dashboard  *dashboard.Service
	Vocabulary VocabularySource
	Renderer   *render.Renderer
	PageSize   int
	Log        *slog.Logger
}

type renderedMsg struct {
	view gallery.View
	err  error
}

type vocabularyMsg struct {
	vocab models.Vocabulary
	err   error
}

type dashboardMsg struct {
	snap dashboard.Snapshot
	err  error
}

type Model struct {
	deps    Deps
	session *gallery.Session
	keys    keyMap
	help    help.Model

	input    textinput.Model
	focused  bool
	query    string
	vocab    models.Vocabulary
	vocabErr error

	// -1 means no selection.
	tagIdx, labelIdx, promoIdx int

	tab     Tab
	loading bool

	view    gallery.View
	hasView bool
	err     error

	snap    dashboard.Snapshot
	hasSnap bool
	dashErr error

	width int
}

func New(deps Deps) Model {
	if deps.Log == nil {
		deps.Log = slog.Default()
	}
	if deps.Renderer == nil {
		deps.Renderer = render.New(render.DefaultStyles())
	}

	ti := textinput.New()
	ti.Placeholder = "search products..."
	ti.CharLimit = 100
	ti.Width = 40
	ti.Cursor.SetMode(cursor.CursorStatic)

	return Model{
		deps:     deps,
		session:  gallery.NewSession(deps.PageSize),
		keys:     defaultKeys(),
		help:     help.New(),
		input:    ti,
		tagIdx:   -1,
		labelIdx: -1,
		promoIdx: -1,
		loading:  true,
	}
}

// Init loads the vocabulary and runs the first render.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetchVocabulary(), m.render())
}

// Filters builds the filter set from the committed query and pickers.
func (m Model) Filters() models.FilterSet {
	return models.NewFilterSet(m.query,
		pick(m.vocab.Tags, m.tagIdx),
		pick(m.vocab.Labels, m.labelIdx),
		pick(m.vocab.Promotions, m.promoIdx),
	)
}

func pick(names []string, idx int) []string {
	if idx < 0 || idx >= len(names) {
		return nil
	}
	return []string{names[idx]}
}

// cycle advances through -1 (none), 0..n-1.
func cycle(idx, n int) int {
	if n == 0 {
		return -1
	}
	idx++
	if idx >= n {
		return -1
	}
	return idx
}

func (m Model) render() tea.Cmd {
	ctrl, s, f := m.deps.Controller, m.session, m.Filters()
	return func() tea.Msg {
		v, err := ctrl.Render(context.Background(), s, f)
		return renderedMsg{view: v, err: err}
	}
}

func (m Model) fetchVocabulary() tea.Cmd {
	src := m.deps.Vocabulary
	if src == nil {
		return nil
	}
	return func() tea.Msg {
		v, err := src.FetchVocabulary(context.Background())
		return vocabularyMsg{vocab: v, err: err}
	}
}

func (m Model) fetchDashboard() tea.Cmd {
	svc := m.deps.Dashboard
	if svc == nil {
		return nil
	}
	return func() tea.Msg {
		snap, err := svc.Snapshot(context.Background())
		return dashboardMsg{snap: snap, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case renderedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			m.hasView = false
			m.deps.Log.Error("render failed", "err", msg.err)
			return m, nil
		}
		m.err = nil
		m.view = msg.view
		m.hasView = true
		return m, nil

	case vocabularyMsg:
		if msg.err != nil {
			m.vocabErr = msg.err
			m.deps.Log.Warn("vocabulary unavailable", "err", msg.err)
			return m, nil
		}
		m.vocab = msg.vocab
		return m, nil

	case dashboardMsg:
		m.loading = false
		m.snap, m.dashErr, m.hasSnap = msg.snap, msg.err, msg.err == nil
		return m, nil

	case tea.KeyMsg:
		if m.focused {
			return m.updateInput(msg)
		}
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		m.focused = false
		m.input.Blur()
		m.query = strings.TrimSpace(m.input.Value())
		return m.startRender()
	case key.Matches(msg, m.keys.Cancel):
		m.focused = false
		m.input.Blur()
		m.input.SetValue(m.query)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if m.loading {
		return m, nil
	}

	if key.Matches(msg, m.keys.Tab) {
		if m.tab == TabGallery {
			m.tab = TabDashboard
			m.loading = m.deps.Dashboard != nil
			return m, m.fetchDashboard()
		}
		m.tab = TabGallery
		return m, nil
	}
	if m.tab != TabGallery {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Search):
		m.focused = true
		m.input.Focus()
		return m, nil
	case key.Matches(msg, m.keys.Tag):
		m.tagIdx = cycle(m.tagIdx, len(m.vocab.Tags))
		return m.startRender()
	case key.Matches(msg, m.keys.Label):
		m.labelIdx = cycle(m.labelIdx, len(m.vocab.Labels))
		return m.startRender()
	case key.Matches(msg, m.keys.Promotion):
		m.promoIdx = cycle(m.promoIdx, len(m.vocab.Promotions))
		return m.startRender()
	case key.Matches(msg, m.keys.PageSize):
		if err := m.session.SetPageSize(models.NextPageSize(m.session.Cursor.Size)); err != nil {
			return m, nil
		}
		return m.startRender()
	case key.Matches(msg, m.keys.Prev):
		if !m.session.PrevPage() {
			return m, nil
		}
		return m.startRender()
	case key.Matches(msg, m.keys.Next):
		if !m.session.NextPage() {
			return m, nil
		}
		return m.startRender()
	case key.Matches(msg, m.keys.RaiseMin), key.Matches(msg, m.keys.LowerMax), key.Matches(msg, m.keys.ResetRng):
		if !m.narrow(msg) {
			return m, nil
		}
		return m.startRender()
	}

	return m, nil
}

// narrow moves one end of the price range by a tenth of the bounds span.
func (m Model) narrow(msg tea.KeyMsg) bool {
	b := m.session.Bounds
	r := m.session.PriceRange()
	step := max(1, (b.Max-b.Min)/10)

	switch {
	case key.Matches(msg, m.keys.RaiseMin):
		if r.Min+step > r.Max {
			return false
		}
		r.Min += step
	case key.Matches(msg, m.keys.LowerMax):
		if r.Max-step < r.Min {
			return false
		}
		r.Max -= step
	default:
		r = b.Full()
	}
	return m.session.NarrowPrice(r)
}

func (m Model) startRender() (tea.Model, tea.Cmd) {
	m.loading = true
	return m, m.render()
}

func (m Model) View() string {
	var sb strings.Builder

	switch m.tab {
	case TabDashboard:
		switch {
		case m.loading:
			sb.WriteString("loading dashboard...\n")
		case m.dashErr != nil:
			sb.WriteString(m.deps.Renderer.Failure(m.dashErr) + "\n")
		case m.hasSnap:
			sb.WriteString(m.deps.Renderer.Dashboard(m.snap))
		}
	default:
		sb.WriteString(m.filterBar())
		sb.WriteString("\n\n")
		switch {
		case m.err != nil:
			sb.WriteString(m.deps.Renderer.Failure(m.err) + "\n")
		case m.loading && !m.hasView:
			sb.WriteString("loading...\n")
		case m.hasView:
			sb.WriteString(m.deps.Renderer.Gallery(m.view))
		}
	}

	sb.WriteString("\n")
	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}

func (m Model) filterBar() string {
	search := m.query
	if m.focused {
		search = m.input.View()
	} else if search == "" {
		search = "-"
	}

	label := func(names []string, idx int) string {
		if p := pick(names, idx); len(p) > 0 {
			return p[0]
		}
		return "any"
	}

	line := fmt.Sprintf("search: %s | tag: %s | label: %s | promotion: %s",
		search,
		label(m.vocab.Tags, m.tagIdx),
		label(m.vocab.Labels, m.labelIdx),
		label(m.vocab.Promotions, m.promoIdx),
	)
	if m.vocabErr != nil {
		line += " | filters unavailable"
	}
	if m.loading {
		line += " | loading"
	}
	return line
}

// Session exposes the gallery session, mainly for tests.
func (m Model) Session() *gallery.Session { return m.session }
