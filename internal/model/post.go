// Package model defines core data structures and types for the blog application.
package model

import (
	"fmt"
	"time"
)

type PostID string

// Status is the publication state of a post. Only the two named values exist.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

func (s Status) Valid() bool {
	return s == StatusDraft || s == StatusPublished
}

// Post is the sole persisted entity. Field names match the snapshot format
// exactly; timestamps serialize to their RFC 3339 textual form.
type Post struct {
	ID PostID `json:"id"`

	Title   string `json:"title"`
	Content string `json:"content"`

	// Excerpt is derived from Content at creation time unless supplied.
	Excerpt string `json:"excerpt"`

	// CoverImage is a URI or a data URI with an inline image payload.
	CoverImage string `json:"coverImage,omitempty"`

	Author string `json:"author"`
	Status Status `json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Tags is ordered; the first element doubles as the display category.
	Tags []string `json:"tags"`
}

// Category returns the display category shown in list views.
func (p *Post) Category() string {
	if len(p.Tags) > 0 && p.Tags[0] != "" {
		return p.Tags[0]
	}
	return "Article"
}

func (p *Post) Published() bool {
	return p.Status == StatusPublished
}

// Validate checks the invariants every stored post must satisfy.
func (p *Post) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("post has no id")
	}
	if !p.Status.Valid() {
		return fmt.Errorf("post %s has invalid status %q", p.ID, p.Status)
	}
	if p.UpdatedAt.Before(p.CreatedAt) {
		return fmt.Errorf("post %s updated before created", p.ID)
	}
	return nil
}

// Clone returns a copy of the post with its own tag slice. The store hands
// out clones so no consumer holds a mutable reference into the canonical list.
func (p *Post) Clone() Post {
	c := *p
	if p.Tags != nil {
		c.Tags = append([]string(nil), p.Tags...)
	}
	return c
}
