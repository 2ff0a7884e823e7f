package ui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jpreston/bloggerpro/internal/ai"
	"github.com/jpreston/bloggerpro/internal/editor"
	"github.com/jpreston/bloggerpro/internal/model"
	"github.com/jpreston/bloggerpro/internal/store"
	"github.com/jpreston/bloggerpro/internal/util"
)

// Generation results arrive as messages so the event loop stays responsive
// while the model writes.
type (
	draftGeneratedMsg struct {
		result editor.DraftResult
		err    error
	}
	coverGeneratedMsg struct {
		uri string
		err error
	}
)

const (
	focusTitle = iota
	focusTopic
	focusBody
	focusCount
)

// editorModel is the authoring screen, for both new posts and edits.
type editorModel struct {
	st        *store.Store
	assistant ai.Assistant
	session   *editor.Session

	title textinput.Model
	topic textinput.Model
	body  textarea.Model
	spin  spinner.Model

	focus  int
	cancel context.CancelFunc

	notice  string
	failure string
}

func newEditor(st *store.Store, assistant ai.Assistant, post *model.Post, width, height int) (*editorModel, tea.Cmd) {
	session := editor.NewSession(post)

	title := textinput.New()
	title.Placeholder = "Post title"
	title.Prompt = ""
	title.SetValue(session.Title)
	title.Focus()

	topic := textinput.New()
	topic.Placeholder = "Topic, e.g. \"urban gardening for beginners\""
	topic.Prompt = ""

	body := textarea.New()
	body.Placeholder = "Write your post in Markdown..."
	body.SetValue(session.Content)
	body.SetWidth(width - 4)
	body.SetHeight(bodyHeight(height))

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = spinnerStyle

	m := &editorModel{
		st:        st,
		assistant: assistant,
		session:   session,
		title:     title,
		topic:     topic,
		body:      body,
		spin:      spin,
	}
	return m, textinput.Blink
}

func bodyHeight(height int) int {
	h := height - 14
	if h < 5 {
		h = 5
	}
	return h
}

func (m *editorModel) name() string {
	if m.session.Editing() {
		return "Edit Post"
	}
	return "New Post"
}

// syncSession copies the input widgets into the session before any
// operation that reads it.
func (m *editorModel) syncSession() {
	m.session.Title = m.title.Value()
	m.session.Content = m.body.Value()
	m.session.TopicPrompt = m.topic.Value()
}

func (m *editorModel) update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.body.SetWidth(msg.Width - 4)
		m.body.SetHeight(bodyHeight(msg.Height))
		return m, nil

	case spinner.TickMsg:
		if !m.session.Busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case draftGeneratedMsg:
		return m.finishDraft(msg)

	case coverGeneratedMsg:
		return m.finishCover(msg)

	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

func (m *editorModel) updateKey(key tea.KeyMsg) (screen, tea.Cmd) {
	switch key.String() {
	case "esc":
		if m.session.Busy && m.cancel != nil {
			m.cancel()
			return m, nil
		}
		return m, func() tea.Msg { return showDashboardMsg{} }

	case "tab":
		m.setFocus((m.focus + 1) % focusCount)
		return m, textinput.Blink

	case "shift+tab":
		m.setFocus((m.focus + focusCount - 1) % focusCount)
		return m, textinput.Blink

	case "ctrl+g":
		return m.startDraft()

	case "ctrl+o":
		return m.startCover()

	case "ctrl+s":
		return m.save(model.StatusDraft)

	case "ctrl+p":
		return m.save(model.StatusPublished)
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusTitle:
		m.title, cmd = m.title.Update(key)
	case focusTopic:
		m.topic, cmd = m.topic.Update(key)
	case focusBody:
		m.body, cmd = m.body.Update(key)
	}
	return m, cmd
}

func (m *editorModel) setFocus(focus int) {
	m.focus = focus
	m.title.Blur()
	m.topic.Blur()
	m.body.Blur()
	switch focus {
	case focusTitle:
		m.title.Focus()
	case focusTopic:
		m.topic.Focus()
	case focusBody:
		m.body.Focus()
	}
}

func (m *editorModel) startDraft() (screen, tea.Cmd) {
	m.syncSession()
	if !m.session.CanGenerateDraft() {
		return m, nil
	}

	m.session.Busy = true
	m.notice = ""
	m.failure = ""

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel

	assistant := m.assistant
	topic := m.session.TopicPrompt
	currentTitle := m.session.Title
	generate := func() tea.Msg {
		result, err := editor.GenerateDraft(ctx, assistant, topic, currentTitle)
		return draftGeneratedMsg{result: result, err: err}
	}
	return m, tea.Batch(generate, m.spin.Tick)
}

func (m *editorModel) finishDraft(msg draftGeneratedMsg) (screen, tea.Cmd) {
	m.session.Busy = false
	m.cancel = nil

	if msg.result.ContentSet {
		m.session.ApplyDraft(msg.result)
		m.body.SetValue(m.session.Content)
		m.title.SetValue(m.session.Title)
	}

	switch {
	case errors.Is(msg.err, context.Canceled):
		m.failure = "Generation cancelled"
	case msg.err != nil:
		uiLogger.Error().Err(msg.err).Msg("draft generation failed")
		m.failure = "Failed to generate content. Please try again."
	default:
		m.notice = "Draft generated"
	}
	return m, nil
}

func (m *editorModel) startCover() (screen, tea.Cmd) {
	m.syncSession()
	if !m.session.CanGenerateCover() {
		return m, nil
	}

	m.session.Busy = true
	m.notice = ""
	m.failure = ""

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel

	assistant := m.assistant
	subject := m.session.CoverSubject()
	generate := func() tea.Msg {
		uri, err := editor.GenerateCover(ctx, assistant, subject)
		return coverGeneratedMsg{uri: uri, err: err}
	}
	return m, tea.Batch(generate, m.spin.Tick)
}

func (m *editorModel) finishCover(msg coverGeneratedMsg) (screen, tea.Cmd) {
	m.session.Busy = false
	m.cancel = nil

	switch {
	case errors.Is(msg.err, context.Canceled):
		m.failure = "Generation cancelled"
	case msg.err != nil:
		uiLogger.Error().Err(msg.err).Msg("cover generation failed")
		m.failure = "Failed to generate image. Please try again."
	default:
		m.session.ApplyCover(msg.uri)
		m.notice = "Cover image updated"
	}
	return m, nil
}

func (m *editorModel) save(status model.Status) (screen, tea.Cmd) {
	if m.session.Busy {
		return m, nil
	}
	m.syncSession()

	post, err := m.session.Save(m.st, status)
	if err != nil {
		uiLogger.Error().Err(err).Msg("save failed")
		m.failure = "Failed to save post"
		return m, nil
	}

	notice := "Draft saved"
	if post.Published() {
		notice = "Post published"
	}
	return m, func() tea.Msg { return showDashboardMsg{notice: notice} }
}

func (m *editorModel) view(width int) string {
	var b strings.Builder

	b.WriteString(screenTitleStyle.Render(m.name()))
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("Title"))
	b.WriteString("\n")
	b.WriteString(m.title.View())
	b.WriteString("\n")

	if m.session.CoverImage != "" {
		b.WriteString(dimStyle.Render("Cover: " + util.Truncate(m.session.CoverImage, 60)))
		b.WriteString("\n")
	}

	b.WriteString(labelStyle.Render("Content"))
	b.WriteString("\n")
	b.WriteString(m.body.View())
	b.WriteString("\n")

	b.WriteString(m.aiPanel())

	if m.failure != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.failure))
	} else if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(noticeStyle.Render(m.notice))
	}

	b.WriteString("\n")
	b.WriteString(footerStyle.Render("tab focus · ctrl+g draft · ctrl+o cover · ctrl+s save · ctrl+p publish · esc back"))
	return b.String()
}

func (m *editorModel) aiPanel() string {
	var b strings.Builder
	b.WriteString("AI Assistant\n")
	b.WriteString("Topic: ")
	b.WriteString(m.topic.View())
	if m.session.Busy {
		b.WriteString("\n")
		b.WriteString(m.spin.View())
		b.WriteString(dimStyle.Render(" Generating... (esc to cancel)"))
	}
	return aiPanelStyle.Render(b.String())
}
