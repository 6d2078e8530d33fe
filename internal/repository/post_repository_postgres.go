package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/blog-gateway/internal/domain"
)

const pgUniqueViolation = "23505"

type postgresPostRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresPostRepository returns a Postgres-backed implementation.
func NewPostgresPostRepository(pool *pgxpool.Pool) PostRepository {
	return &postgresPostRepository{pool: pool}
}

func (r *postgresPostRepository) InsertUnique(ctx context.Context, post *domain.BlogPost) error {
	const query = `
        INSERT INTO blog_posts (slug, title, author, excerpt, image, content, published_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id::text, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		post.Slug,
		post.Title,
		post.Author,
		post.Excerpt,
		post.Image,
		post.Content,
		post.PublishedAt,
	).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrDuplicateSlug
		}
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

func (r *postgresPostRepository) FindBySlug(ctx context.Context, slug string) (*domain.BlogPost, error) {
	const query = `
        SELECT id::text, slug, title, author, excerpt, image, content, published_at, created_at, updated_at
        FROM blog_posts WHERE slug=$1`

	post, err := scanPost(r.pool.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find post %q: %w", slug, err)
	}
	return post, nil
}

func (r *postgresPostRepository) Find(ctx context.Context, filter PostFilter) ([]domain.BlogPost, error) {
	query := `SELECT id::text, slug, title, author, excerpt, image, content, published_at, created_at, updated_at
             FROM blog_posts
             ORDER BY COALESCE(published_at, created_at) DESC, created_at DESC`
	args := []any{}
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var result []domain.BlogPost
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		result = append(result, *post)
	}
	return result, rows.Err()
}

func scanPost(row pgx.Row) (*domain.BlogPost, error) {
	var post domain.BlogPost
	if err := row.Scan(
		&post.ID,
		&post.Slug,
		&post.Title,
		&post.Author,
		&post.Excerpt,
		&post.Image,
		&post.Content,
		&post.PublishedAt,
		&post.CreatedAt,
		&post.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &post, nil
}
