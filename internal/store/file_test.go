package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jpreston/bloggerpro/internal/model"
	"github.com/jpreston/bloggerpro/internal/util/compression"
)

func testPosts() []model.Post {
	now := time.Now().UTC().Truncate(time.Second)
	return []model.Post{
		{
			ID:        "p1",
			Title:     "Round Trip",
			Content:   "body",
			Excerpt:   "body...",
			Author:    "Jane Preston",
			Status:    model.StatusPublished,
			CreatedAt: now,
			UpdatedAt: now,
			Tags:      []string{"Test"},
		},
	}
}

func TestFilePersistence(t *testing.T) {
	t.Run("Round trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "posts.json")
		p := NewFilePersistence(path, nil)

		if err := p.Save(testPosts()); err != nil {
			t.Fatalf("Unexpected save error: %v", err)
		}

		loaded, err := NewFilePersistence(path, nil).Load()
		if err != nil {
			t.Fatalf("Unexpected load error: %v", err)
		}
		if len(loaded) != 1 || loaded[0].ID != "p1" || loaded[0].Title != "Round Trip" {
			t.Errorf("Unexpected snapshot contents: %v", loaded)
		}
		if loaded[0].Status != model.StatusPublished {
			t.Errorf("Expected published status, got %q", loaded[0].Status)
		}
	})

	t.Run("Round trip with zstd", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "posts.json.zst")
		p := NewFilePersistence(path, compression.ZstdCompressor{})

		if err := p.Save(testPosts()); err != nil {
			t.Fatalf("Unexpected save error: %v", err)
		}

		loaded, err := NewFilePersistence(path, compression.ZstdCompressor{}).Load()
		if err != nil {
			t.Fatalf("Unexpected load error: %v", err)
		}
		if len(loaded) != 1 || loaded[0].ID != "p1" {
			t.Errorf("Unexpected snapshot contents: %v", loaded)
		}
	})

	t.Run("Missing file reports error", func(t *testing.T) {
		p := NewFilePersistence(filepath.Join(t.TempDir(), "absent.json"), nil)
		if _, err := p.Load(); err == nil {
			t.Error("Expected an error for a missing snapshot")
		}
	})

	t.Run("Corrupt file reports error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "posts.json")
		if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
			t.Fatal(err)
		}

		p := NewFilePersistence(path, nil)
		if _, err := p.Load(); err == nil {
			t.Error("Expected a parse error")
		}
	})

	t.Run("Unchanged snapshot is not rewritten", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "posts.json")
		p := NewFilePersistence(path, nil)
		posts := testPosts()

		if err := p.Save(posts); err != nil {
			t.Fatal(err)
		}
		first, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}

		// A skipped save must not recreate the removed file.
		if err := os.Remove(path); err != nil {
			t.Fatal(err)
		}
		if err := p.Save(posts); err != nil {
			t.Fatal(err)
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("Expected save to be skipped, file exists (first write at %v)", first.ModTime())
		}
	})
}
