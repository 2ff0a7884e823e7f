package cache

import "fmt"

// Rendered markdown is cached by content hash and terminal width, since the
// styled output depends on both.

var renderedMarkdownCache = NewCache[string, string]()

func renderedKey(contentHash string, width int) string {
	return fmt.Sprintf("%s:%d", contentHash, width)
}

func GetRenderedMarkdown(contentHash string, width int) (string, bool) {
	return renderedMarkdownCache.Get(renderedKey(contentHash, width))
}

func SetRenderedMarkdown(contentHash string, width int, rendered string) {
	renderedMarkdownCache.Set(renderedKey(contentHash, width), rendered)
}

func ClearRenderedMarkdownCache() {
	renderedMarkdownCache.Clear()
}
