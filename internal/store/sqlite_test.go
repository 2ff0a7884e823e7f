package store

import (
	"testing"

	"github.com/jpreston/bloggerpro/internal/db"
)

func setupTestDB(t *testing.T) db.DB {
	t.Helper()

	database := db.NewSQLite(":memory:")
	if err := database.InitDB(); err != nil {
		t.Fatalf("Failed to initialize test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	return database
}

func TestSQLitePersistence(t *testing.T) {
	t.Run("Round trip", func(t *testing.T) {
		p := NewSQLitePersistence(setupTestDB(t))

		if err := p.Save(testPosts()); err != nil {
			t.Fatalf("Unexpected save error: %v", err)
		}

		loaded, err := p.Load()
		if err != nil {
			t.Fatalf("Unexpected load error: %v", err)
		}
		if len(loaded) != 1 || loaded[0].ID != "p1" {
			t.Errorf("Unexpected snapshot contents: %v", loaded)
		}
	})

	t.Run("Save overwrites prior snapshot", func(t *testing.T) {
		p := NewSQLitePersistence(setupTestDB(t))

		if err := p.Save(testPosts()); err != nil {
			t.Fatal(err)
		}
		if err := p.Save(nil); err != nil {
			t.Fatal(err)
		}

		loaded, err := p.Load()
		if err != nil {
			t.Fatalf("Unexpected load error: %v", err)
		}
		if len(loaded) != 0 {
			t.Errorf("Expected empty snapshot, got %d posts", len(loaded))
		}
	})

	t.Run("Empty database reports error", func(t *testing.T) {
		p := NewSQLitePersistence(setupTestDB(t))
		if _, err := p.Load(); err == nil {
			t.Error("Expected an error when no snapshot is stored")
		}
	})
}
