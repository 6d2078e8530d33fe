package repository

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/blog-gateway/internal/domain"
	"github.com/spec-kit/blog-gateway/internal/persistence"
)

func newTestRepo(t *testing.T) *sqlitePostRepository {
	t.Helper()
	lite, err := persistence.NewSQLite(context.Background(), filepath.Join(t.TempDir(), "blog.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(lite.Close)
	return NewSQLitePostRepository(lite.DB).(*sqlitePostRepository)
}

func samplePost(slug string) *domain.BlogPost {
	return &domain.BlogPost{
		Slug:    slug,
		Title:   "Title for " + slug,
		Author:  "Tester",
		Content: "Content long enough to be a real post body.",
	}
}

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestSQLiteRepo_InsertAndFind(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	post := samplePost("first-post")
	post.PublishedAt = day(2024, 1, 5)
	post.Image = "https://example.com/a.png"
	require.NoError(t, repo.InsertUnique(ctx, post))
	assert.NotEmpty(t, post.ID)
	assert.False(t, post.CreatedAt.IsZero())

	got, err := repo.FindBySlug(ctx, "first-post")
	require.NoError(t, err)
	assert.Equal(t, post.ID, got.ID)
	assert.Equal(t, post.Title, got.Title)
	assert.Equal(t, "https://example.com/a.png", got.Image)
	require.NotNil(t, got.PublishedAt)
	assert.True(t, got.PublishedAt.Equal(*post.PublishedAt))
	assert.True(t, got.CreatedAt.Equal(post.CreatedAt))
}

func TestSQLiteRepo_NotFound(t *testing.T) {
	repo := newTestRepo(t)
	_, err := repo.FindBySlug(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteRepo_DuplicateSlug(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	require.NoError(t, repo.InsertUnique(ctx, samplePost("same")))
	err := repo.InsertUnique(ctx, samplePost("same"))
	assert.ErrorIs(t, err, ErrDuplicateSlug)
}

func TestSQLiteRepo_ConcurrentDuplicateInserts(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
		others    []error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.InsertUnique(ctx, samplePost("race"))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, ErrDuplicateSlug):
				conflicts++
			default:
				others = append(others, err)
			}
		}()
	}
	wg.Wait()

	require.Empty(t, others)
	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, conflicts)
}

func TestSQLiteRepo_FindOrdering(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	step := 0
	repo.now = func() time.Time {
		step++
		return base.Add(time.Duration(step) * time.Minute)
	}

	inserts := []struct {
		slug      string
		published *time.Time
	}{
		{slug: "old", published: day(2023, 1, 1)},
		{slug: "tie-first", published: day(2024, 2, 1)},
		{slug: "tie-second", published: day(2024, 2, 1)},
		{slug: "unpublished", published: nil}, // sorts by created_at, 2024-06-01
		{slug: "newest", published: day(2024, 12, 1)},
	}
	for _, in := range inserts {
		p := samplePost(in.slug)
		p.PublishedAt = in.published
		require.NoError(t, repo.InsertUnique(ctx, p))
	}

	all, err := repo.Find(ctx, PostFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"newest", "unpublished", "tie-second", "tie-first", "old"}, slugs(all))

	limited, err := repo.Find(ctx, PostFilter{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"newest", "unpublished"}, slugs(limited))
}

func TestSQLiteRepo_FindEmpty(t *testing.T) {
	posts, err := newTestRepo(t).Find(context.Background(), PostFilter{Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func slugs(posts []domain.BlogPost) []string {
	out := make([]string, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.Slug)
	}
	return out
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(fmt.Errorf("constraint failed: UNIQUE constraint failed: blog_posts.slug (2067)")))
	assert.False(t, isUniqueViolation(errors.New("database is locked")))
}
