package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jpreston/bloggerpro/internal/model"
	"github.com/jpreston/bloggerpro/internal/store"
	"github.com/jpreston/bloggerpro/internal/util"
)

// dashboardModel is the management screen: stats, search, and the post list.
type dashboardModel struct {
	st     *store.Store
	search textinput.Model
	posts  []model.Post
	cursor int

	// confirming holds the post pending deletion, nil otherwise.
	confirming *model.Post

	notice string
}

func newDashboard(st *store.Store, notice string) *dashboardModel {
	search := textinput.New()
	search.Placeholder = "Search posts..."
	search.Prompt = "/ "
	search.Width = 40

	return &dashboardModel{
		st:     st,
		search: search,
		posts:  st.List(),
		notice: notice,
	}
}

func (m *dashboardModel) name() string { return "Dashboard" }

func (m *dashboardModel) refresh() {
	m.posts = m.st.Search(m.search.Value())
	if m.cursor >= len(m.posts) {
		m.cursor = len(m.posts) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *dashboardModel) selected() *model.Post {
	if len(m.posts) == 0 {
		return nil
	}
	return &m.posts[m.cursor]
}

func (m *dashboardModel) update(msg tea.Msg) (screen, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.confirming != nil {
		return m.updateConfirm(key)
	}

	if m.search.Focused() {
		return m.updateSearch(key, msg)
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
	case "/":
		m.search.Focus()
		return m, textinput.Blink
	case "n":
		return m, func() tea.Msg { return openEditorMsg{post: nil} }
	case "enter":
		if p := m.selected(); p != nil {
			post := *p
			return m, func() tea.Msg { return openPostMsg{post: post, back: backToDashboard} }
		}
	case "e":
		if p := m.selected(); p != nil {
			post := *p
			return m, func() tea.Msg { return openEditorMsg{post: &post} }
		}
	case "d":
		if p := m.selected(); p != nil {
			post := *p
			m.confirming = &post
		}
	case "r":
		return m, func() tea.Msg { return showReaderMsg{} }
	case "s":
		return m, func() tea.Msg { return showSettingsMsg{} }
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m *dashboardModel) updateConfirm(key tea.KeyMsg) (screen, tea.Cmd) {
	switch key.String() {
	case "y":
		id := m.confirming.ID
		m.confirming = nil
		if err := m.st.Delete(id); err != nil {
			uiLogger.Error().Err(err).Str("id", string(id)).Msg("delete failed")
			m.notice = ""
		} else {
			m.notice = "Post deleted"
		}
		m.refresh()
	case "n", "esc":
		m.confirming = nil
	}
	return m, nil
}

func (m *dashboardModel) updateSearch(key tea.KeyMsg, msg tea.Msg) (screen, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.search.Blur()
		m.search.SetValue("")
		m.refresh()
		return m, nil
	case "enter":
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.refresh()
	return m, cmd
}

func (m *dashboardModel) view(width int) string {
	var b strings.Builder

	b.WriteString(screenTitleStyle.Render("Dashboard"))
	b.WriteString("\n")
	b.WriteString(m.statsRow())
	b.WriteString("\n\n")
	b.WriteString(m.search.View())
	b.WriteString("\n\n")
	b.WriteString(m.postList(width))

	if m.confirming != nil {
		prompt := fmt.Sprintf("Delete %q? (y/n)", m.confirming.Title)
		b.WriteString("\n")
		b.WriteString(confirmStyle.Render(prompt))
	}

	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(noticeStyle.Render(m.notice))
	}

	b.WriteString("\n")
	b.WriteString(footerStyle.Render("↑/↓ select · enter view · n new · e edit · d delete · / search · r reader · s settings · q quit"))
	return b.String()
}

func (m *dashboardModel) statsRow() string {
	stats := m.st.Stats()
	box := func(label string, value int) string {
		return statBoxStyle.Render(
			statValueStyle.Render(fmt.Sprintf("%d", value)) + " " + statLabelStyle.Render(label),
		)
	}
	return joinHorizontal(
		box("Total Posts", stats.Total),
		box("Published", stats.Published),
		box("Drafts", stats.Drafts),
	)
}

func (m *dashboardModel) postList(width int) string {
	if len(m.posts) == 0 {
		return dimStyle.Render("No posts found.")
	}

	titleWidth := width - 30
	if titleWidth < 20 {
		titleWidth = 20
	}

	rows := make([]string, 0, len(m.posts))
	for i, p := range m.posts {
		line := fmt.Sprintf("%-*s  %-9s  %s",
			titleWidth, util.Truncate(p.Title, titleWidth),
			p.Status, p.UpdatedAt.Format("Jan 2, 2006"))
		if i == m.cursor {
			rows = append(rows, selectedRowStyle.Render("▸ "+line))
		} else {
			rows = append(rows, rowStyle.Render("  "+line))
		}
	}
	return strings.Join(rows, "\n")
}
