// Package store owns the canonical post list and its snapshot persistence.
package store

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jpreston/bloggerpro/internal/model"
	"github.com/jpreston/bloggerpro/internal/util"
)

// ErrNotFound is reported for mutations against a nonexistent post id.
var ErrNotFound = errors.New("post not found")

var storeLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	storeLogger = l
}

// Fields is a partial post: nil fields are left untouched on update and
// defaulted on create.
type Fields struct {
	Title      *string
	Content    *string
	Excerpt    *string
	CoverImage *string
	Status     *model.Status
	Tags       []string
}

// Stats are the dashboard counters.
type Stats struct {
	Total     int
	Published int
	Drafts    int
}

// Store is the sole owner of the post list. Every mutation rewrites the full
// snapshot through the injected Persistence. Consumers only ever receive
// copies of posts, never references into the canonical list.
type Store struct {
	mu          sync.RWMutex
	posts       []model.Post
	persistence Persistence
	author      string
}

func New(p Persistence, author string) *Store {
	return &Store{
		persistence: p,
		author:      author,
	}
}

// Load reads the persisted snapshot. On absence, read failure or a snapshot
// that fails validation, the store falls back to the seed set; startup never
// fails on a bad snapshot.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.persistence.Load()
	if err != nil {
		storeLogger.Warn().Err(err).Msg("Could not load snapshot, falling back to seed posts")
		s.posts = SeedPosts()
		return
	}

	for i := range posts {
		if err := posts[i].Validate(); err != nil {
			storeLogger.Warn().Err(err).Msg("Invalid snapshot, falling back to seed posts")
			s.posts = SeedPosts()
			return
		}
	}

	s.posts = posts
	storeLogger.Info().Int("posts", len(posts)).Msg("Snapshot loaded")
}

// List returns all posts in store order: newest-created-first, since creation
// prepends. Edits do not re-sort.
func (s *Store) List() []model.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clonePosts(s.posts)
}

func (s *Store) FindByID(id model.PostID) (model.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.posts {
		if s.posts[i].ID == id {
			return s.posts[i].Clone(), nil
		}
	}
	return model.Post{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Create fills defaults, prepends the new post and persists the snapshot.
func (s *Store) Create(f Fields) model.Post {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	post := model.Post{
		ID:        model.PostID(uuid.New().String()),
		Title:     "Untitled Post",
		Author:    s.author,
		Status:    model.StatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
		Tags:      []string{"New"},
	}

	if f.Title != nil && *f.Title != "" {
		post.Title = *f.Title
	}
	if f.Content != nil {
		post.Content = *f.Content
	}
	if f.CoverImage != nil {
		post.CoverImage = *f.CoverImage
	}
	if f.Status != nil && f.Status.Valid() {
		post.Status = *f.Status
	}
	if f.Tags != nil {
		post.Tags = append([]string(nil), f.Tags...)
	}
	if f.Excerpt != nil {
		post.Excerpt = *f.Excerpt
	} else {
		post.Excerpt = util.Excerpt(post.Content)
	}

	s.posts = append([]model.Post{post}, s.posts...)
	s.persist()

	storeLogger.Info().Str("post_id", string(post.ID)).Str("title", post.Title).Msg("Post created")
	return post.Clone()
}

// Update shallow-merges the supplied fields over the existing post and
// refreshes updatedAt. ID and createdAt are never touched.
func (s *Store) Update(id model.PostID, f Fields) (model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.posts {
		if s.posts[i].ID != id {
			continue
		}

		post := &s.posts[i]
		if f.Title != nil {
			post.Title = *f.Title
		}
		if f.Content != nil {
			post.Content = *f.Content
		}
		if f.Excerpt != nil {
			post.Excerpt = *f.Excerpt
		}
		if f.CoverImage != nil {
			post.CoverImage = *f.CoverImage
		}
		if f.Status != nil && f.Status.Valid() {
			post.Status = *f.Status
		}
		if f.Tags != nil {
			post.Tags = append([]string(nil), f.Tags...)
		}
		post.UpdatedAt = time.Now().UTC()

		s.persist()
		storeLogger.Info().Str("post_id", string(id)).Msg("Post updated")
		return post.Clone(), nil
	}

	return model.Post{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Delete removes a post permanently. Callers are responsible for obtaining
// user confirmation first; there is no soft delete.
func (s *Store) Delete(id model.PostID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.posts {
		if s.posts[i].ID == id {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			s.persist()
			storeLogger.Info().Str("post_id", string(id)).Msg("Post deleted")
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Search filters posts by case-insensitive substring match on title or
// content. The empty query returns the full list; relative order is preserved.
func (s *Store) Search(query string) []model.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if query == "" {
		return clonePosts(s.posts)
	}

	q := strings.ToLower(query)
	var matches []model.Post
	for i := range s.posts {
		p := &s.posts[i]
		if strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.Content), q) {
			matches = append(matches, p.Clone())
		}
	}
	return matches
}

func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{Total: len(s.posts)}
	for i := range s.posts {
		if s.posts[i].Published() {
			stats.Published++
		} else {
			stats.Drafts++
		}
	}
	return stats
}

// persist rewrites the whole snapshot. Callers hold the write lock.
func (s *Store) persist() {
	if err := s.persistence.Save(s.posts); err != nil {
		storeLogger.Error().Err(err).Msg("Error persisting snapshot")
	}
}

func clonePosts(posts []model.Post) []model.Post {
	out := make([]model.Post, len(posts))
	for i := range posts {
		out[i] = posts[i].Clone()
	}
	return out
}
