package content

import (
	"regexp"
	"strings"
)

var (
	slugDisallowed = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaces     = regexp.MustCompile(`\s+`)
	slugHyphens    = regexp.MustCompile(`-+`)
)

// NormalizeSlug turns arbitrary text into a URL-safe slug. It never fails and
// NormalizeSlug(NormalizeSlug(x)) == NormalizeSlug(x).
func NormalizeSlug(raw string) string {
	s := strings.ToLower(raw)
	s = slugDisallowed.ReplaceAllString(s, "")
	s = slugSpaces.ReplaceAllString(s, "-")
	s = slugHyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// SlugCandidate picks the explicit slug when one is given, otherwise the title.
func SlugCandidate(slug, title string) string {
	if strings.TrimSpace(slug) != "" {
		return NormalizeSlug(slug)
	}
	return NormalizeSlug(title)
}
