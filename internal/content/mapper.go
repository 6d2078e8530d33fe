package content

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/spec-kit/blog-gateway/internal/domain"
)

const (
	excerptLimit  = 180
	excerptSuffix = "…"
	displayLayout = "January 2, 2006"
)

var (
	markdownLink  = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	markdownMarks = regexp.MustCompile("[#>*_`-]")
	whitespace    = regexp.MustCompile(`\s+`)
)

// PublicPost is the representation returned to readers.
type PublicPost struct {
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	Author  string `json:"author"`
	Excerpt string `json:"excerpt"`
	Image   string `json:"image,omitempty"`
	Content string `json:"content"`
	Date    string `json:"date"`
}

// ToPublic maps a stored post to its public form.
func ToPublic(p *domain.BlogPost) PublicPost {
	out := PublicPost{
		Slug:    p.Slug,
		Title:   p.Title,
		Author:  p.Author,
		Excerpt: strings.TrimSpace(p.Excerpt),
		Image:   p.Image,
		Content: p.Content,
		Date:    DisplayDate(p),
	}
	if strings.TrimSpace(out.Author) == "" {
		out.Author = DefaultAuthor
	}
	if out.Excerpt == "" {
		out.Excerpt = DeriveExcerpt(p.Content)
	}
	return out
}

// DisplayDate formats the publish date, or the creation date when unpublished.
func DisplayDate(p *domain.BlogPost) string {
	t := p.SortTime()
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(displayLayout)
}

// DeriveExcerpt strips markdown punctuation from body and shortens it to a summary.
func DeriveExcerpt(body string) string {
	s := markdownLink.ReplaceAllString(body, "$1")
	s = markdownMarks.ReplaceAllString(s, "")
	s = strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
	if utf8.RuneCountInString(s) <= excerptLimit {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:excerptLimit])) + excerptSuffix
}
