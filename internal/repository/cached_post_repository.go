package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/blog-gateway/internal/domain"
)

const postCachePrefix = "blog:post:"

// cachedPostRepository serves FindBySlug from Redis. Posts are immutable once
// created, so entries never need invalidation; list queries always hit the store.
type cachedPostRepository struct {
	inner  PostRepository
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedPostRepository wraps inner with a read-through cache. A nil client returns inner unchanged.
func NewCachedPostRepository(inner PostRepository, client *redis.Client, ttl time.Duration, logger *zap.Logger) PostRepository {
	if client == nil {
		return inner
	}
	return &cachedPostRepository{inner: inner, client: client, ttl: ttl, logger: logger}
}

func (r *cachedPostRepository) Find(ctx context.Context, filter PostFilter) ([]domain.BlogPost, error) {
	return r.inner.Find(ctx, filter)
}

func (r *cachedPostRepository) InsertUnique(ctx context.Context, post *domain.BlogPost) error {
	return r.inner.InsertUnique(ctx, post)
}

func (r *cachedPostRepository) FindBySlug(ctx context.Context, slug string) (*domain.BlogPost, error) {
	key := postCachePrefix + slug

	raw, err := r.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var post domain.BlogPost
		if jsonErr := json.Unmarshal(raw, &post); jsonErr == nil {
			return &post, nil
		}
		r.logger.Warn("discarding undecodable cache entry", zap.String("key", key))
	case !errors.Is(err, redis.Nil):
		r.logger.Warn("post cache read failed", zap.String("key", key), zap.Error(err))
	}

	post, err := r.inner.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if encoded, jsonErr := json.Marshal(post); jsonErr == nil {
		if setErr := r.client.Set(ctx, key, encoded, r.ttl).Err(); setErr != nil {
			r.logger.Warn("post cache write failed", zap.String("key", key), zap.Error(setErr))
		}
	}
	return post, nil
}
