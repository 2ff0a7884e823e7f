package editor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpreston/bloggerpro/internal/ai"
	"github.com/jpreston/bloggerpro/internal/model"
	"github.com/jpreston/bloggerpro/internal/store"
)

// fakeAssistant scripts the three operations and records their invocations.
type fakeAssistant struct {
	article    string
	articleErr error
	title      string
	titleErr   error
	cover      string
	coverErr   error

	articleCalls []string
	titleCalls   []string
	coverCalls   []string
}

func (f *fakeAssistant) GenerateArticle(_ context.Context, topic string) (string, error) {
	f.articleCalls = append(f.articleCalls, topic)
	return f.article, f.articleErr
}

func (f *fakeAssistant) GenerateTitle(_ context.Context, article string) (string, error) {
	f.titleCalls = append(f.titleCalls, article)
	return f.title, f.titleErr
}

func (f *fakeAssistant) GenerateCoverImage(_ context.Context, topic string) (string, error) {
	f.coverCalls = append(f.coverCalls, topic)
	return f.cover, f.coverErr
}

func TestNewSession(t *testing.T) {
	t.Run("Create mode", func(t *testing.T) {
		s := NewSession(nil)
		assert.False(t, s.Editing())
		assert.Empty(t, s.Title)
	})

	t.Run("Edit mode copies post fields", func(t *testing.T) {
		post := &model.Post{
			ID:         "p1",
			Title:      "Existing",
			Content:    "Body",
			CoverImage: "cover.png",
		}
		s := NewSession(post)

		assert.True(t, s.Editing())
		assert.Equal(t, "Existing", s.Title)
		assert.Equal(t, "Body", s.Content)
		assert.Equal(t, "cover.png", s.CoverImage)
		assert.Empty(t, s.TopicPrompt)
	})
}

func TestActionGuards(t *testing.T) {
	s := &Session{}
	assert.False(t, s.CanGenerateDraft(), "empty topic prompt must disable drafting")
	assert.False(t, s.CanGenerateCover(), "empty title and prompt must disable cover generation")

	s.TopicPrompt = "topic"
	assert.True(t, s.CanGenerateDraft())
	assert.True(t, s.CanGenerateCover())

	s.Busy = true
	assert.False(t, s.CanGenerateDraft(), "busy must disable drafting")
	assert.False(t, s.CanGenerateCover(), "busy must disable cover generation")
}

func TestCoverSubject(t *testing.T) {
	s := &Session{Title: "A Title", TopicPrompt: "a topic"}
	assert.Equal(t, "A Title", s.CoverSubject())

	s.Title = ""
	assert.Equal(t, "a topic", s.CoverSubject())
}

func TestGenerateDraft(t *testing.T) {
	ctx := context.Background()

	t.Run("Chains title generation when title is empty", func(t *testing.T) {
		fake := &fakeAssistant{article: "# Article", title: "Generated Title"}

		res, err := GenerateDraft(ctx, fake, "gardening", "")
		require.NoError(t, err)

		assert.True(t, res.ContentSet)
		assert.Equal(t, "# Article", res.Content)
		assert.True(t, res.TitleSet)
		assert.Equal(t, "Generated Title", res.Title)
		assert.Equal(t, []string{"gardening"}, fake.articleCalls)
		assert.Equal(t, []string{"# Article"}, fake.titleCalls)
	})

	t.Run("Skips title generation when a title exists", func(t *testing.T) {
		fake := &fakeAssistant{article: "# Article"}

		res, err := GenerateDraft(ctx, fake, "gardening", "Kept Title")
		require.NoError(t, err)

		assert.True(t, res.ContentSet)
		assert.False(t, res.TitleSet)
		assert.Empty(t, fake.titleCalls)
	})

	t.Run("Empty article still chains title generation", func(t *testing.T) {
		fake := &fakeAssistant{article: "", title: "Untitled Post"}

		res, err := GenerateDraft(ctx, fake, "gardening", "")
		require.NoError(t, err)

		assert.True(t, res.ContentSet)
		assert.Equal(t, "", res.Content)
		assert.Len(t, fake.titleCalls, 1)
	})

	t.Run("Article failure produces no result", func(t *testing.T) {
		fake := &fakeAssistant{articleErr: ai.ErrGenerationFailed}

		res, err := GenerateDraft(ctx, fake, "gardening", "")
		assert.ErrorIs(t, err, ai.ErrGenerationFailed)
		assert.False(t, res.ContentSet)
		assert.False(t, res.TitleSet)
		assert.Empty(t, fake.titleCalls, "title generation must not run after a failed article call")
	})

	t.Run("Title failure still reports the article", func(t *testing.T) {
		fake := &fakeAssistant{article: "# Article", titleErr: errors.New("boom")}

		res, err := GenerateDraft(ctx, fake, "gardening", "")
		assert.Error(t, err)
		assert.True(t, res.ContentSet)
		assert.Equal(t, "# Article", res.Content)
		assert.False(t, res.TitleSet)
	})
}

func TestApplyDraft(t *testing.T) {
	s := &Session{Title: "Old Title", Content: "Old Content"}

	s.ApplyDraft(DraftResult{Content: "New Content", ContentSet: true})
	assert.Equal(t, "New Content", s.Content)
	assert.Equal(t, "Old Title", s.Title, "title must be untouched when the task produced none")

	s.ApplyDraft(DraftResult{})
	assert.Equal(t, "New Content", s.Content, "empty result must not alter the session")
}

func TestGenerateCover(t *testing.T) {
	fake := &fakeAssistant{cover: "data:image/png;base64,xyz"}

	uri, err := GenerateCover(context.Background(), fake, "My Title")
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,xyz", uri)
	assert.Equal(t, []string{"My Title"}, fake.coverCalls)
}

func newTestStore() *store.Store {
	st := store.New(store.NewMemoryPersistence(nil), "Jane Preston")
	st.Load()
	return st
}

func TestSave(t *testing.T) {
	t.Run("Create mode creates a post", func(t *testing.T) {
		st := newTestStore()
		s := &Session{Title: "New", Content: "Body", CoverImage: "img"}

		post, err := s.Save(st, model.StatusPublished)
		require.NoError(t, err)

		assert.Equal(t, "New", post.Title)
		assert.Equal(t, model.StatusPublished, post.Status)
		assert.Equal(t, "img", post.CoverImage)
		assert.Equal(t, "Body...", post.Excerpt)
		assert.Len(t, st.List(), 1)
	})

	t.Run("Editing content rederives the excerpt", func(t *testing.T) {
		st := newTestStore()
		title := "Original"
		existing := st.Create(store.Fields{Title: &title})

		s := NewSession(&existing)
		s.Content = "Fresh **body** text"

		post, err := s.Save(st, model.StatusDraft)
		require.NoError(t, err)
		assert.Equal(t, "Fresh body text...", post.Excerpt)
	})

	t.Run("Edit mode updates in place", func(t *testing.T) {
		st := newTestStore()
		title := "Original"
		existing := st.Create(store.Fields{Title: &title})

		s := NewSession(&existing)
		s.Title = "Edited"

		post, err := s.Save(st, model.StatusDraft)
		require.NoError(t, err)

		assert.Equal(t, existing.ID, post.ID)
		assert.Equal(t, "Edited", post.Title)
		assert.Len(t, st.List(), 1)
	})

	t.Run("Editing a deleted post reports not found", func(t *testing.T) {
		st := newTestStore()
		s := &Session{PostID: "gone"}

		_, err := s.Save(st, model.StatusDraft)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}
