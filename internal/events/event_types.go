package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventPostCreated EventType = "post_created"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Slug      string      `json:"slug"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// PostCreatedPayload payload.
type PostCreatedPayload struct {
	Title       string     `json:"title"`
	Author      string     `json:"author"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}
