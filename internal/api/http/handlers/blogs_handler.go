package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/blog-gateway/internal/api/dto"
	"github.com/spec-kit/blog-gateway/internal/content"
	"github.com/spec-kit/blog-gateway/internal/service"
	apperrors "github.com/spec-kit/blog-gateway/pkg/util"
)

// BlogsHandler serves the blog post endpoints.
type BlogsHandler struct {
	service *service.BlogService
}

// NewBlogsHandler constructs handler.
func NewBlogsHandler(blogService *service.BlogService) *BlogsHandler {
	return &BlogsHandler{service: blogService}
}

// ListPosts GET /blogs.
func (h *BlogsHandler) ListPosts(c *fiber.Ctx) error {
	posts, err := h.service.List(c.UserContext(), c.Query("limit"))
	if err != nil {
		return err
	}
	return c.JSON(dto.ListPostsResponse{Posts: posts})
}

// GetPost GET /blogs/:slug.
func (h *BlogsHandler) GetPost(c *fiber.Ctx) error {
	post, err := h.service.GetBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return err
	}
	return c.JSON(dto.PostResponse{Post: post})
}

// CreatePost POST /blogs. Mounted behind the auth gate.
func (h *BlogsHandler) CreatePost(c *fiber.Ctx) error {
	var req content.PostInput
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", []content.Issue{{
			Field:   "body",
			Rule:    "json",
			Message: "request body must be a JSON object",
		}})
	}

	slug, err := h.service.Create(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.CreatePostResponse{Slug: slug})
}
