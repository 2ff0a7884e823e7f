package cache

import "testing"

func TestCache(t *testing.T) {
	t.Run("Set and Get", func(t *testing.T) {
		c := NewCache[string, int]()
		c.Set("a", 1)

		if v, ok := c.Get("a"); !ok || v != 1 {
			t.Errorf("Expected (1, true), got (%d, %v)", v, ok)
		}
		if _, ok := c.Get("missing"); ok {
			t.Error("Expected miss for absent key")
		}
	})

	t.Run("Delete", func(t *testing.T) {
		c := NewCache[string, string]()
		c.Set("k", "v")
		c.Delete("k")

		if _, ok := c.Get("k"); ok {
			t.Error("Expected key to be deleted")
		}
	})

	t.Run("Clear", func(t *testing.T) {
		c := NewCache[int, int]()
		c.Set(1, 1)
		c.Set(2, 2)
		c.Clear()

		if c.Len() != 0 {
			t.Errorf("Expected empty cache, got %d items", c.Len())
		}
	})
}

func TestRenderedMarkdownCache(t *testing.T) {
	ClearRenderedMarkdownCache()

	SetRenderedMarkdown("hash", 80, "rendered")

	if got, ok := GetRenderedMarkdown("hash", 80); !ok || got != "rendered" {
		t.Errorf("Expected cache hit, got (%q, %v)", got, ok)
	}

	// Same content at a different width is a distinct entry.
	if _, ok := GetRenderedMarkdown("hash", 120); ok {
		t.Error("Expected miss for different width")
	}
}
