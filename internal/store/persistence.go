package store

import "github.com/jpreston/bloggerpro/internal/model"

// Persistence reads and writes the full post list as one snapshot. Backends
// overwrite the prior snapshot wholesale on every Save.
type Persistence interface {
	Load() ([]model.Post, error)
	Save(posts []model.Post) error
}

// MemoryPersistence holds the snapshot in memory. Used as a test double and
// as the fallback when no storage backend is configured.
type MemoryPersistence struct {
	posts []model.Post
	// LoadErr, when set, is returned by Load to simulate a broken snapshot.
	LoadErr error
}

func NewMemoryPersistence(posts []model.Post) *MemoryPersistence {
	return &MemoryPersistence{posts: clonePosts(posts)}
}

func (m *MemoryPersistence) Load() ([]model.Post, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return clonePosts(m.posts), nil
}

func (m *MemoryPersistence) Save(posts []model.Post) error {
	m.posts = clonePosts(posts)
	return nil
}
