package store

import (
	"time"

	"github.com/jpreston/bloggerpro/internal/model"
)

// SeedPosts is the fixed fallback library used when no snapshot exists or the
// stored one cannot be parsed.
func SeedPosts() []model.Post {
	now := time.Now().UTC()
	return []model.Post{
		{
			ID:    "1",
			Title: "The Future of AI Content Generation",
			Content: "The landscape of content creation is shifting rapidly with the introduction of advanced reasoning models. " +
				"Writers are no longer just creators; they are curators and editors of AI-enhanced narratives.\n\n" +
				"This shift allows for more creativity and faster iteration cycles. In this post, we explore the nuances of this revolution...",
			Excerpt:    "Exploring how next-generation AI models are revolutionizing the way writers work.",
			CoverImage: "https://images.unsplash.com/photo-1677442136019-21780ecad995?auto=format&fit=crop&q=80&w=1200",
			Author:     "Jane Preston",
			Status:     model.StatusPublished,
			CreatedAt:  now,
			UpdatedAt:  now,
			Tags:       []string{"AI", "Tech"},
		},
	}
}
