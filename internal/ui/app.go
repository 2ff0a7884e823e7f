// Package ui is the terminal interface: the view router and its screens.
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/jpreston/bloggerpro/internal/ai"
	"github.com/jpreston/bloggerpro/internal/config"
	"github.com/jpreston/bloggerpro/internal/model"
	"github.com/jpreston/bloggerpro/internal/store"
)

var uiLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	uiLogger = l
}

// screen is one routed view. Each screen model carries exactly the data it
// needs, so navigating away cannot leak stale selection state.
type screen interface {
	update(msg tea.Msg) (screen, tea.Cmd)
	view(width int) string
	name() string
}

// Navigation messages. Screens emit these; the App builds the target screen.
type (
	showDashboardMsg struct {
		// notice is a transient line shown on arrival, e.g. "Draft saved".
		notice string
	}
	showReaderMsg   struct{}
	showSettingsMsg struct{}

	// openEditorMsg opens the editor: post == nil means create mode.
	openEditorMsg struct{ post *model.Post }

	// openPostMsg opens the single-post view; back says where to return.
	openPostMsg struct {
		post model.Post
		back backTarget
	}
)

type backTarget int

const (
	backToDashboard backTarget = iota
	backToReader
)

// App is the view router. It owns the shared dependencies and the active
// screen; it starts on the dashboard and runs for the lifetime of the session.
type App struct {
	store     *store.Store
	assistant ai.Assistant
	cfg       *config.Config

	width  int
	height int

	screen screen
}

func NewApp(st *store.Store, assistant ai.Assistant, cfg *config.Config) App {
	return App{
		store:     st,
		assistant: assistant,
		cfg:       cfg,
		width:     80,
		height:    24,
		screen:    newDashboard(st, ""),
	}
}

func (a App) Init() tea.Cmd {
	return nil
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

	case showDashboardMsg:
		a.screen = newDashboard(a.store, msg.notice)
		return a, nil

	case showReaderMsg:
		a.screen = newReader(a.store)
		return a, nil

	case showSettingsMsg:
		a.screen = newSettings(a.cfg)
		return a, nil

	case openEditorMsg:
		editor, cmd := newEditor(a.store, a.assistant, msg.post, a.width, a.height)
		a.screen = editor
		return a, cmd

	case openPostMsg:
		a.screen = newPostView(msg.post, msg.back, a.width, a.height)
		return a, nil
	}

	var cmd tea.Cmd
	a.screen, cmd = a.screen.update(msg)
	return a, cmd
}

func (a App) View() string {
	header := a.header()
	body := a.screen.view(a.width)
	return header + "\n" + body
}

// header is the persistent top bar: app name and active screen breadcrumb.
func (a App) header() string {
	brand := headerBrandStyle.Render(" " + a.cfg.Site.Name + " ")
	crumb := headerCrumbStyle.Render(" Pages › " + a.screen.name())
	return brand + crumb
}
