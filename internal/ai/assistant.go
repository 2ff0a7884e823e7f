// Package ai wraps the external generative service used to draft articles,
// titles and cover images.
package ai

import (
	"context"
	"errors"
	"os"
)

// ErrGenerationFailed is the single opaque condition every transport or
// provider failure collapses into. Callers are not expected to distinguish
// failure modes; there are no retries.
var ErrGenerationFailed = errors.New("generation failed")

// Assistant defines the three independent generation operations.
// This enables testing with fakes.
type Assistant interface {
	// GenerateArticle produces a markdown article for a topic.
	GenerateArticle(ctx context.Context, topic string) (string, error)

	// GenerateTitle produces a short title for an article's text.
	GenerateTitle(ctx context.Context, article string) (string, error)

	// GenerateCoverImage produces an image reference, usually a data URI.
	GenerateCoverImage(ctx context.Context, topic string) (string, error)
}

// CredentialProvider supplies the provider credential at call time. It is
// passed at construction; the client never reads the environment implicitly.
type CredentialProvider func() string

// StaticCredential always returns the same key.
func StaticCredential(key string) CredentialProvider {
	return func() string { return key }
}

// EnvCredential reads the named environment variable at call time. An unset
// variable is not special-cased; the request is attempted and fails naturally.
func EnvCredential(name string) CredentialProvider {
	return func() string { return os.Getenv(name) }
}
