package dto

import "github.com/spec-kit/blog-gateway/internal/content"

// CreatePostResponse is returned after a post is stored.
type CreatePostResponse struct {
	Slug string `json:"slug"`
}

// ListPostsResponse wraps GET /blogs.
type ListPostsResponse struct {
	Posts []content.PublicPost `json:"posts"`
}

// PostResponse wraps GET /blogs/:slug.
type PostResponse struct {
	Post content.PublicPost `json:"post"`
}
