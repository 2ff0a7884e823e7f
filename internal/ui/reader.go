package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jpreston/bloggerpro/internal/model"
	"github.com/jpreston/bloggerpro/internal/store"
)

// readerModel is the public-facing preview: published posts only, newest
// first, as excerpt cards.
type readerModel struct {
	posts  []model.Post
	cursor int
}

func newReader(st *store.Store) *readerModel {
	var published []model.Post
	for _, p := range st.List() {
		if p.Published() {
			published = append(published, p)
		}
	}
	return &readerModel{posts: published}
}

func (m *readerModel) name() string { return "Reader" }

func (m *readerModel) update(msg tea.Msg) (screen, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.posts)-1 {
			m.cursor++
		}
	case "enter":
		if len(m.posts) > 0 {
			post := m.posts[m.cursor]
			return m, func() tea.Msg { return openPostMsg{post: post, back: backToReader} }
		}
	case "esc", "q":
		return m, func() tea.Msg { return showDashboardMsg{} }
	}
	return m, nil
}

func (m *readerModel) view(width int) string {
	var b strings.Builder
	b.WriteString(screenTitleStyle.Render("Reader"))

	if len(m.posts) == 0 {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("Nothing published yet."))
	}

	cardWidth := width - 6
	if cardWidth < 30 {
		cardWidth = 30
	}

	for i, p := range m.posts {
		var card strings.Builder
		card.WriteString(cardCategoryStyle.Render(p.Category()))
		card.WriteString(dimStyle.Render(" · " + p.CreatedAt.Format("Jan 2, 2006")))
		card.WriteString("\n")
		card.WriteString(statValueStyle.Render(p.Title))
		card.WriteString("\n")
		card.WriteString(rowStyle.Render(p.Excerpt))

		style := cardStyle
		if i == m.cursor {
			style = selectedCardStyle
		}
		b.WriteString("\n")
		b.WriteString(style.Width(cardWidth).Render(card.String()))
	}

	b.WriteString("\n")
	b.WriteString(footerStyle.Render("↑/↓ select · enter read · esc back"))
	return b.String()
}
