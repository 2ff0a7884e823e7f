package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jpreston/bloggerpro/internal/config"
)

// settingsModel shows the blog settings and the shareable public link.
// Publishing is simulated, so "copy" only acknowledges locally.
type settingsModel struct {
	cfg    *config.Config
	copied bool
}

func newSettings(cfg *config.Config) *settingsModel {
	return &settingsModel{cfg: cfg}
}

func (m *settingsModel) name() string { return "Settings" }

func (m *settingsModel) update(msg tea.Msg) (screen, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "c":
		m.copied = true
	case "esc", "q":
		return m, func() tea.Msg { return showDashboardMsg{} }
	}
	return m, nil
}

func (m *settingsModel) view(width int) string {
	var b strings.Builder

	b.WriteString(screenTitleStyle.Render("Settings"))
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("Blog name"))
	b.WriteString("\n")
	b.WriteString(rowStyle.Render(m.cfg.Site.Name))
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("Author"))
	b.WriteString("\n")
	b.WriteString(rowStyle.Render(m.cfg.Site.Author))
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("Public URL"))
	b.WriteString("\n")
	b.WriteString(rowStyle.Render(m.cfg.Site.PublicURL))
	b.WriteString("\n")

	if m.copied {
		b.WriteString(noticeStyle.Render("Link copied to simulation clipboard!"))
		b.WriteString("\n")
	}

	b.WriteString(footerStyle.Render("c copy link · esc back"))
	return b.String()
}
