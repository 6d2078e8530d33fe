package repository

import (
	"context"
	"errors"

	"github.com/spec-kit/blog-gateway/internal/domain"
)

var (
	// ErrNotFound is returned when no post has the requested slug.
	ErrNotFound = errors.New("post not found")
	// ErrDuplicateSlug is returned by InsertUnique when the slug is already taken.
	ErrDuplicateSlug = errors.New("duplicate slug")
)

// MaxListLimit caps the number of posts a single list call may request.
const MaxListLimit = 100

// PostFilter captures list parameters. Limit <= 0 means no limit.
type PostFilter struct {
	Limit int
}

// PostRepository encapsulates blog post persistence.
//
// Find returns posts ordered newest first by publish date, falling back to the
// creation time for unpublished posts, with creation time breaking ties.
// InsertUnique relies on a unique index over slug: of two concurrent inserts
// with the same slug exactly one succeeds and the other gets ErrDuplicateSlug.
type PostRepository interface {
	Find(ctx context.Context, filter PostFilter) ([]domain.BlogPost, error)
	FindBySlug(ctx context.Context, slug string) (*domain.BlogPost, error)
	InsertUnique(ctx context.Context, post *domain.BlogPost) error
}
