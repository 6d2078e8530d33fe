package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/blog-gateway/internal/domain"
)

const sqlitePostColumns = `id, slug, title, author, excerpt, image, content, published_at, created_at, updated_at`

type sqlitePostRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLitePostRepository returns a repository over an open SQLite database.
// Timestamps are stored as unix milliseconds.
func NewSQLitePostRepository(db *sql.DB) PostRepository {
	return &sqlitePostRepository{db: db, now: time.Now}
}

func (r *sqlitePostRepository) InsertUnique(ctx context.Context, post *domain.BlogPost) error {
	now := r.now().UTC().Truncate(time.Millisecond)
	id := uuid.NewString()

	var published sql.NullInt64
	if post.PublishedAt != nil {
		published = sql.NullInt64{Int64: post.PublishedAt.UnixMilli(), Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO blog_posts (`+sqlitePostColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, post.Slug, post.Title, post.Author, post.Excerpt, post.Image, post.Content,
		published, now.UnixMilli(), now.UnixMilli(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateSlug
		}
		return fmt.Errorf("insert post: %w", err)
	}

	post.ID = id
	post.CreatedAt = now
	post.UpdatedAt = now
	return nil
}

func (r *sqlitePostRepository) FindBySlug(ctx context.Context, slug string) (*domain.BlogPost, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+sqlitePostColumns+` FROM blog_posts WHERE slug = ?`, slug)
	post, err := scanSQLitePost(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find post %q: %w", slug, err)
	}
	return post, nil
}

func (r *sqlitePostRepository) Find(ctx context.Context, filter PostFilter) ([]domain.BlogPost, error) {
	query := `SELECT ` + sqlitePostColumns + ` FROM blog_posts
		ORDER BY COALESCE(published_at, created_at) DESC, created_at DESC`
	var args []any
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var result []domain.BlogPost
	for rows.Next() {
		post, err := scanSQLitePost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		result = append(result, *post)
	}
	return result, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLitePost(row rowScanner) (*domain.BlogPost, error) {
	var (
		post               domain.BlogPost
		published          sql.NullInt64
		created, updatedAt int64
	)
	if err := row.Scan(
		&post.ID,
		&post.Slug,
		&post.Title,
		&post.Author,
		&post.Excerpt,
		&post.Image,
		&post.Content,
		&published,
		&created,
		&updatedAt,
	); err != nil {
		return nil, err
	}
	if published.Valid {
		t := time.UnixMilli(published.Int64).UTC()
		post.PublishedAt = &t
	}
	post.CreatedAt = time.UnixMilli(created).UTC()
	post.UpdatedAt = time.UnixMilli(updatedAt).UTC()
	return &post, nil
}

func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "constraint failed: UNIQUE")
}
