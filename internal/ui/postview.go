package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jpreston/bloggerpro/internal/model"
	"github.com/jpreston/bloggerpro/internal/render"
	"github.com/jpreston/bloggerpro/internal/util"
)

// postViewModel shows a single post rendered for the terminal.
type postViewModel struct {
	post model.Post
	back backTarget
	vp   viewport.Model
}

func newPostView(post model.Post, back backTarget, width, height int) *postViewModel {
	bodyWidth := width - 4
	if bodyWidth < 30 {
		bodyWidth = 30
	}

	vp := viewport.New(bodyWidth, viewportHeight(height))
	vp.SetContent(render.MarkdownCached(post.Content, util.ContentHashString(post.Content), bodyWidth))

	return &postViewModel{post: post, back: back, vp: vp}
}

func viewportHeight(height int) int {
	h := height - 9
	if h < 5 {
		h = 5
	}
	return h
}

func (m *postViewModel) name() string { return m.post.Title }

func (m *postViewModel) update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		bodyWidth := msg.Width - 4
		if bodyWidth < 30 {
			bodyWidth = 30
		}
		m.vp.Width = bodyWidth
		m.vp.Height = viewportHeight(msg.Height)
		m.vp.SetContent(render.MarkdownCached(m.post.Content, util.ContentHashString(m.post.Content), bodyWidth))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q", "backspace":
			if m.back == backToReader {
				return m, func() tea.Msg { return showReaderMsg{} }
			}
			return m, func() tea.Msg { return showDashboardMsg{} }
		}
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m *postViewModel) view(width int) string {
	var b strings.Builder

	b.WriteString(screenTitleStyle.Render(m.post.Title))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("By " + m.post.Author + " · " + m.post.CreatedAt.Format("Jan 2, 2006") + " · "))
	b.WriteString(statusBadge(m.post.Published()))
	if m.post.CoverImage != "" {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("Cover: " + util.Truncate(m.post.CoverImage, 60)))
	}
	b.WriteString("\n\n")
	b.WriteString(m.vp.View())
	b.WriteString("\n")
	b.WriteString(footerStyle.Render("↑/↓ scroll · esc back"))
	return b.String()
}
