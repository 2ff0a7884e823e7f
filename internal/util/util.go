// Package util provides utility functions for excerpt derivation, content
// hashing and front matter parsing.
package util

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gomarkdown/markdown"
	"github.com/mmarkdown/mmark/v2/mast"
)

// ExcerptLength is the number of characters of content kept in a derived excerpt.
const ExcerptLength = 150

// Excerpt derives a list-view summary from post content: the first
// ExcerptLength characters with markup punctuation (#, *, backtick) stripped,
// suffixed with an ellipsis marker.
func Excerpt(content string) string {
	runes := []rune(content)
	if len(runes) > ExcerptLength {
		runes = runes[:ExcerptLength]
	}

	var b strings.Builder
	for _, r := range runes {
		switch r {
		case '#', '*', '`':
			continue
		}
		b.WriteRune(r)
	}
	return b.String() + "..."
}

// Truncate returns at most n characters of s.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func ContentHash(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

func ContentHashString(content string) string {
	return ContentHash([]byte(content))
}

// FrontMatter is the metadata block optionally present at the top of an
// imported markdown file, delimited by %%% markers (mmark convention).
type FrontMatter struct {
	*mast.TitleData

	// Consumed is the byte offset where the post body starts.
	Consumed int
}

// GetFrontMatter parses a %%%-delimited TOML front matter block.
func GetFrontMatter(md []byte) (*FrontMatter, error) {
	md = markdown.NormalizeNewlines(md)
	md = bytes.TrimLeft(md, "\n \t\r")

	delimiter := []byte("%%%")

	if len(md) < 2*len(delimiter) {
		return nil, fmt.Errorf("invalid front matter format")
	}

	first := bytes.Index(md[:len(delimiter)+1], delimiter)
	if first == -1 {
		return nil, fmt.Errorf("invalid front matter format")
	}

	second := bytes.Index(md[first+len(delimiter):], delimiter)
	if second == -1 {
		return nil, fmt.Errorf("invalid front matter format")
	}

	end := second + 2*len(delimiter) + 1
	if end > len(md) {
		return nil, fmt.Errorf("invalid front matter format")
	}

	frontMatter := md[len(delimiter) : end-len(delimiter)-1]
	info := &FrontMatter{
		TitleData: &mast.TitleData{},
	}

	if _, err := toml.Decode(string(frontMatter), info); err != nil {
		return nil, fmt.Errorf("failed to decode front matter: %w", err)
	}

	info.Consumed = end
	return info, nil
}
