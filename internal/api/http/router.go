package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/blog-gateway/internal/api/http/handlers"
	"github.com/spec-kit/blog-gateway/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Blogs          *handlers.BlogsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Reads are public; creating a post requires a bearer token.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Health.Metrics)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/verify", cfg.Auth.Verify)

	app.Get("/blogs", cfg.Blogs.ListPosts)
	app.Get("/blogs/:slug", cfg.Blogs.GetPost)
	app.Post("/blogs", cfg.AuthMiddleware.Handle, cfg.Blogs.CreatePost)

	app.Use(notFound)
}
