package content

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() PostInput {
	return PostInput{
		Title:   "  A Valid Title  ",
		Content: "This body is comfortably longer than twenty characters.",
	}
}

func TestValidate_AppliesDefaults(t *testing.T) {
	in := validInput()
	post, err := NewValidator(nil).Validate(in, SlugCandidate(in.Slug, in.Title))
	require.NoError(t, err)

	assert.Equal(t, "a-valid-title", post.Slug)
	assert.Equal(t, "A Valid Title", post.Title)
	assert.Equal(t, DefaultAuthor, post.Author)
	assert.Empty(t, post.Excerpt)
	assert.Empty(t, post.Image)
	assert.Nil(t, post.PublishedAt)
}

func TestValidate_KeepsProvidedFields(t *testing.T) {
	in := validInput()
	in.Author = " Jo "
	in.Excerpt = "Short summary"
	in.Image = "https://cdn.example.com/cover.png"
	in.Date = "2024-01-05"

	post, err := NewValidator(nil).Validate(in, "a-valid-title")
	require.NoError(t, err)

	assert.Equal(t, "Jo", post.Author)
	assert.Equal(t, "Short summary", post.Excerpt)
	assert.Equal(t, "https://cdn.example.com/cover.png", post.Image)
	require.NotNil(t, post.PublishedAt)
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), *post.PublishedAt)
}

func TestValidate_BadDateIsIgnored(t *testing.T) {
	in := validInput()
	in.Date = "sometime next week"

	post, err := NewValidator(nil).Validate(in, "a-valid-title")
	require.NoError(t, err)
	assert.Nil(t, post.PublishedAt)
}

func TestValidate_Issues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*PostInput)
		slug   string
		field  string
		rule   string
	}{
		{name: "short content", mutate: func(p *PostInput) { p.Content = "too short" }, slug: "ok", field: "content", rule: RuleMinLength},
		{name: "missing content", mutate: func(p *PostInput) { p.Content = "   " }, slug: "ok", field: "content", rule: RuleRequired},
		{name: "short title", mutate: func(p *PostInput) { p.Title = "ab" }, slug: "ok", field: "title", rule: RuleMinLength},
		{name: "long title", mutate: func(p *PostInput) { p.Title = strings.Repeat("t", 161) }, slug: "ok", field: "title", rule: RuleMaxLength},
		{name: "long author", mutate: func(p *PostInput) { p.Author = strings.Repeat("a", 121) }, slug: "ok", field: "author", rule: RuleMaxLength},
		{name: "long excerpt", mutate: func(p *PostInput) { p.Excerpt = strings.Repeat("e", 321) }, slug: "ok", field: "excerpt", rule: RuleMaxLength},
		{name: "relative image", mutate: func(p *PostInput) { p.Image = "/img/cover.png" }, slug: "ok", field: "image", rule: RuleURL},
		{name: "ftp image", mutate: func(p *PostInput) { p.Image = "ftp://files.example.com/a.png" }, slug: "ok", field: "image", rule: RuleURL},
		{name: "empty slug", mutate: func(p *PostInput) {}, slug: "", field: "slug", rule: RuleRequired},
		{name: "bad slug", mutate: func(p *PostInput) {}, slug: "Not A Slug", field: "slug", rule: RulePattern},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			_, err := NewValidator(nil).Validate(in, tt.slug)
			require.Error(t, err)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.True(t, verr.HasField(tt.field), "issues: %+v", verr.Issues)

			found := false
			for _, issue := range verr.Issues {
				if issue.Field == tt.field && issue.Rule == tt.rule {
					found = true
				}
			}
			assert.True(t, found, "want rule %s on %s, got %+v", tt.rule, tt.field, verr.Issues)
		})
	}
}

func TestValidate_CollectsAllIssues(t *testing.T) {
	_, err := NewValidator(nil).Validate(PostInput{Title: "x", Content: "short"}, "x")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.HasField("title"))
	assert.True(t, verr.HasField("content"))
	assert.Contains(t, verr.Error(), "content")
}

func TestValidate_TitleLengthCountsRunes(t *testing.T) {
	in := validInput()
	in.Title = "héé"
	_, err := NewValidator(nil).Validate(in, "hee")
	assert.NoError(t, err)
}

func TestParsePublishDate(t *testing.T) {
	jan5 := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		in     string
		want   time.Time
		wantOK bool
	}{
		{in: "2024-01-05", want: jan5, wantOK: true},
		{in: "2024-01-05T18:30:00Z", want: jan5, wantOK: true},
		{in: "2024-01-05T22:00:00-05:00", want: jan5.AddDate(0, 0, 1), wantOK: true},
		{in: "January 5, 2024", want: jan5, wantOK: true},
		{in: "Jan 5, 2024", want: jan5, wantOK: true},
		{in: "2024/01/05", want: jan5, wantOK: true},
		{in: "", wantOK: false},
		{in: "not a date", wantOK: false},
		{in: "2024-13-45", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParsePublishDate(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
