// Package editor holds the transient state of one editing session and the
// AI-assisted drafting tasks it can run.
package editor

import (
	"context"

	"github.com/jpreston/bloggerpro/internal/ai"
	"github.com/jpreston/bloggerpro/internal/model"
	"github.com/jpreston/bloggerpro/internal/store"
	"github.com/jpreston/bloggerpro/internal/util"
)

// Session is the per-editing-session draft state. It is never persisted and
// is discarded on navigation away from the editor.
type Session struct {
	// PostID is set when editing an existing post; empty means create mode.
	PostID model.PostID

	Title       string
	Content     string
	CoverImage  string
	TopicPrompt string

	// Busy gates the two generation actions; while true both are disabled
	// at the interface level.
	Busy bool
}

// NewSession starts a create-mode session, or an edit session initialized
// from the given post.
func NewSession(post *model.Post) *Session {
	if post == nil {
		return &Session{}
	}
	return &Session{
		PostID:     post.ID,
		Title:      post.Title,
		Content:    post.Content,
		CoverImage: post.CoverImage,
	}
}

func (s *Session) Editing() bool {
	return s.PostID != ""
}

// CanGenerateDraft reports whether the write-draft action is available.
func (s *Session) CanGenerateDraft() bool {
	return !s.Busy && s.TopicPrompt != ""
}

// CanGenerateCover reports whether the cover-image action is available.
func (s *Session) CanGenerateCover() bool {
	return !s.Busy && (s.Title != "" || s.TopicPrompt != "")
}

// CoverSubject is what the cover image is generated from: the title when one
// exists, the topic prompt otherwise.
func (s *Session) CoverSubject() string {
	if s.Title != "" {
		return s.Title
	}
	return s.TopicPrompt
}

// DraftResult carries the outcome of a draft-generation task. Content and
// Title each apply only when their flag is set.
type DraftResult struct {
	Content    string
	ContentSet bool

	Title    string
	TitleSet bool
}

// GenerateDraft runs the article generation chain. The article call goes
// first; a title call over the generated text follows only when the article
// call succeeded and the title captured at dispatch time was empty. The
// context is honored at each provider call. A title failure after a
// successful article call still reports the article so the caller does not
// lose it.
func GenerateDraft(ctx context.Context, assistant ai.Assistant, topic, currentTitle string) (DraftResult, error) {
	content, err := assistant.GenerateArticle(ctx, topic)
	if err != nil {
		return DraftResult{}, err
	}

	res := DraftResult{Content: content, ContentSet: true}
	if currentTitle != "" {
		return res, nil
	}

	title, err := assistant.GenerateTitle(ctx, content)
	if err != nil {
		return res, err
	}
	res.Title = title
	res.TitleSet = true
	return res, nil
}

// GenerateCover runs the cover-image task for a title or topic.
func GenerateCover(ctx context.Context, assistant ai.Assistant, subject string) (string, error) {
	return assistant.GenerateCoverImage(ctx, subject)
}

// ApplyDraft merges a successful draft result into the session. Fields the
// task did not produce are left untouched.
func (s *Session) ApplyDraft(res DraftResult) {
	if res.ContentSet {
		s.Content = res.Content
	}
	if res.TitleSet {
		s.Title = res.Title
	}
}

// ApplyCover overwrites the cover image reference.
func (s *Session) ApplyCover(uri string) {
	s.CoverImage = uri
}

// Fields is the partial post handed to the store on save. The excerpt is
// rederived from the current content so edits keep it in sync.
func (s *Session) Fields(status model.Status) store.Fields {
	title := s.Title
	content := s.Content
	coverImage := s.CoverImage
	excerpt := util.Excerpt(content)
	return store.Fields{
		Title:      &title,
		Content:    &content,
		Excerpt:    &excerpt,
		CoverImage: &coverImage,
		Status:     &status,
	}
}

// Save hands the draft to the store: update when editing an existing post,
// create otherwise. The caller discards the session afterwards.
func (s *Session) Save(st *store.Store, status model.Status) (model.Post, error) {
	if s.Editing() {
		return st.Update(s.PostID, s.Fields(status))
	}
	return st.Create(s.Fields(status)), nil
}
