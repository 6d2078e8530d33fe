package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/blog-gateway/internal/content"
	"github.com/spec-kit/blog-gateway/internal/domain"
	"github.com/spec-kit/blog-gateway/internal/events"
	"github.com/spec-kit/blog-gateway/internal/repository"
	apperrors "github.com/spec-kit/blog-gateway/pkg/util"
)

// BlogService runs the post write pipeline and read path.
type BlogService struct {
	posts      repository.PostRepository
	validator  *content.Validator
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// BlogDependencies bundles collaborators for the blog service.
type BlogDependencies struct {
	PostRepo   repository.PostRepository
	Validator  *content.Validator
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewBlogService constructs the service.
func NewBlogService(deps BlogDependencies) *BlogService {
	validator := deps.Validator
	if validator == nil {
		validator = content.NewValidator(nil)
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BlogService{
		posts:      deps.PostRepo,
		validator:  validator,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// Create validates and stores a new post and returns its slug.
func (s *BlogService) Create(ctx context.Context, input content.PostInput) (string, error) {
	slug := content.SlugCandidate(input.Slug, input.Title)

	valid, err := s.validator.Validate(input, slug)
	if err != nil {
		var verr *content.ValidationError
		if errors.As(err, &verr) {
			return "", apperrors.NewValidationError("invalid blog payload", verr.Issues)
		}
		return "", apperrors.NewInternalError(err)
	}

	post := &domain.BlogPost{
		Slug:        valid.Slug,
		Title:       valid.Title,
		Author:      valid.Author,
		Excerpt:     valid.Excerpt,
		Image:       valid.Image,
		Content:     valid.Content,
		PublishedAt: valid.PublishedAt,
	}
	if err := s.posts.InsertUnique(ctx, post); err != nil {
		if errors.Is(err, repository.ErrDuplicateSlug) {
			return "", apperrors.NewSlugConflict(post.Slug)
		}
		return "", apperrors.NewPersistenceFailed(err)
	}

	s.publishEvent(ctx, events.Event{
		Type: events.EventPostCreated,
		Slug: post.Slug,
		Payload: events.PostCreatedPayload{
			Title:       post.Title,
			Author:      post.Author,
			PublishedAt: post.PublishedAt,
		},
	})
	return post.Slug, nil
}

// List returns posts newest first. limitParam is the raw query value.
func (s *BlogService) List(ctx context.Context, limitParam string) ([]content.PublicPost, error) {
	posts, err := s.posts.Find(ctx, repository.PostFilter{Limit: ParseLimit(limitParam)})
	if err != nil {
		return nil, apperrors.NewPersistenceFailed(err)
	}

	result := make([]content.PublicPost, 0, len(posts))
	for i := range posts {
		result = append(result, content.ToPublic(&posts[i]))
	}
	return result, nil
}

// GetBySlug returns the post with the exact slug.
func (s *BlogService) GetBySlug(ctx context.Context, slug string) (content.PublicPost, error) {
	post, err := s.posts.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return content.PublicPost{}, apperrors.NewNotFound("post")
		}
		return content.PublicPost{}, apperrors.NewPersistenceFailed(err)
	}
	return content.ToPublic(post), nil
}

// ParseLimit converts a raw limit to a repository limit: positive values are
// capped at repository.MaxListLimit, anything else means no limit (0).
func ParseLimit(raw string) int {
	raw = strings.TrimSpace(raw)
	n, err := strconv.Atoi(raw)
	if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(raw, "-") {
		return repository.MaxListLimit
	}
	if err != nil || n <= 0 {
		return 0
	}
	if n > repository.MaxListLimit {
		return repository.MaxListLimit
	}
	return n
}

func (s *BlogService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now().UTC()
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}
