package domain

import "time"

// BlogPost is the stored content entity. Slug is unique and never changes once created.
type BlogPost struct {
	ID          string
	Slug        string
	Title       string
	Author      string
	Excerpt     string
	Image       string
	Content     string
	PublishedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SortTime is the instant used for ordering and display: PublishedAt when set, else CreatedAt.
func (p *BlogPost) SortTime() time.Time {
	if p.PublishedAt != nil && !p.PublishedAt.IsZero() {
		return *p.PublishedAt
	}
	return p.CreatedAt
}
