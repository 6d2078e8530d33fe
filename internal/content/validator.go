package content

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// DefaultAuthor is shown when a post has no author.
const DefaultAuthor = "Editorial Team"

// Rule names reported in issues.
const (
	RuleRequired  = "required"
	RuleMinLength = "min_length"
	RuleMaxLength = "max_length"
	RulePattern   = "pattern"
	RuleURL       = "url"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// PostInput is the raw create payload.
type PostInput struct {
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	Author  string `json:"author"`
	Excerpt string `json:"excerpt"`
	Image   string `json:"image"`
	Content string `json:"content"`
	Date    string `json:"date"`
}

// ValidPost is a payload that passed validation, trimmed and with defaults applied.
type ValidPost struct {
	Slug        string
	Title       string
	Author      string
	Excerpt     string
	Image       string
	Content     string
	PublishedAt *time.Time
}

// Issue describes one violated rule.
type Issue struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError lists every issue found in a payload.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.Field+": "+issue.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// HasField reports whether any issue concerns field.
func (e *ValidationError) HasField(field string) bool {
	for _, issue := range e.Issues {
		if issue.Field == field {
			return true
		}
	}
	return false
}

// FieldRule holds the constraints for one payload field. Zero values disable a check.
type FieldRule struct {
	Field    string
	Required bool
	MinLen   int
	MaxLen   int
	Pattern  *regexp.Regexp
	URL      bool
}

// PostRules are the constraints applied to a create payload.
var PostRules = []FieldRule{
	{Field: "slug", Required: true, MaxLen: 160, Pattern: slugPattern},
	{Field: "title", Required: true, MinLen: 3, MaxLen: 160},
	{Field: "author", MaxLen: 120},
	{Field: "excerpt", MaxLen: 320},
	{Field: "image", URL: true},
	{Field: "content", Required: true, MinLen: 20},
}

// dateLayouts are tried in order when parsing an explicit publish date.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
	time.RFC1123,
	time.RFC1123Z,
}

// Validator checks create payloads against a rule table.
type Validator struct {
	rules []FieldRule
}

// NewValidator builds a validator for rules; nil means PostRules.
func NewValidator(rules []FieldRule) *Validator {
	if rules == nil {
		rules = PostRules
	}
	return &Validator{rules: rules}
}

// Validate checks in against the rules using slug as the already-normalized slug candidate.
func (v *Validator) Validate(in PostInput, slug string) (*ValidPost, error) {
	values := map[string]string{
		"slug":    strings.TrimSpace(slug),
		"title":   strings.TrimSpace(in.Title),
		"author":  strings.TrimSpace(in.Author),
		"excerpt": strings.TrimSpace(in.Excerpt),
		"image":   strings.TrimSpace(in.Image),
		"content": strings.TrimSpace(in.Content),
	}

	var issues []Issue
	for _, rule := range v.rules {
		issues = append(issues, rule.check(values[rule.Field])...)
	}
	if len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}

	post := &ValidPost{
		Slug:    values["slug"],
		Title:   values["title"],
		Author:  values["author"],
		Excerpt: values["excerpt"],
		Image:   values["image"],
		Content: values["content"],
	}
	if post.Author == "" {
		post.Author = DefaultAuthor
	}
	if published, ok := ParsePublishDate(in.Date); ok {
		post.PublishedAt = &published
	}
	return post, nil
}

func (r FieldRule) check(val string) []Issue {
	if val == "" {
		if r.Required {
			return []Issue{{Field: r.Field, Rule: RuleRequired, Message: fmt.Sprintf("%s is required", r.Field)}}
		}
		return nil
	}

	var issues []Issue
	n := utf8.RuneCountInString(val)
	if r.MinLen > 0 && n < r.MinLen {
		issues = append(issues, Issue{Field: r.Field, Rule: RuleMinLength,
			Message: fmt.Sprintf("%s must be at least %d characters", r.Field, r.MinLen)})
	}
	if r.MaxLen > 0 && n > r.MaxLen {
		issues = append(issues, Issue{Field: r.Field, Rule: RuleMaxLength,
			Message: fmt.Sprintf("%s must be at most %d characters", r.Field, r.MaxLen)})
	}
	if r.Pattern != nil && !r.Pattern.MatchString(val) {
		issues = append(issues, Issue{Field: r.Field, Rule: RulePattern,
			Message: fmt.Sprintf("%s has an invalid format", r.Field)})
	}
	if r.URL && !isAbsoluteURL(val) {
		issues = append(issues, Issue{Field: r.Field, Rule: RuleURL,
			Message: fmt.Sprintf("%s must be an absolute URL", r.Field)})
	}
	return issues
}

func isAbsoluteURL(val string) bool {
	u, err := url.Parse(val)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// ParsePublishDate parses raw and returns midnight UTC of that day.
// Unparseable or blank input reports false.
func ParsePublishDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		t = t.UTC()
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}
