package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/blog-gateway/internal/api/dto"
	"github.com/spec-kit/blog-gateway/internal/auth"
	"github.com/spec-kit/blog-gateway/internal/service"
	apperrors "github.com/spec-kit/blog-gateway/pkg/util"
)

// AuthHandler exposes login and token verification.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if strings.TrimSpace(req.SecretKey) == "" {
		return apperrors.NewBadRequest("secretKey is required")
	}

	token, expiresIn, err := h.auth.Login(req.SecretKey)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid secret key"})
		}
		return apperrors.NewInternalError(err)
	}

	return c.JSON(dto.LoginResponse{Token: token, ExpiresIn: expiresIn})
}

// Verify handles POST /auth/verify.
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	var req dto.VerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if strings.TrimSpace(req.Token) == "" {
		return apperrors.NewBadRequest("token is required")
	}

	claims, err := h.auth.Verify(strings.TrimSpace(req.Token))
	if err != nil {
		return c.Status(http.StatusUnauthorized).JSON(dto.VerifyResponse{
			Valid: false,
			Error: "Invalid or expired token",
		})
	}

	return c.JSON(dto.VerifyResponse{Valid: true, Decoded: decodedToken(claims)})
}

func decodedToken(claims *auth.Claims) *dto.DecodedToken {
	decoded := &dto.DecodedToken{
		Scope:    make([]string, 0, len(claims.Scope)),
		IssuedAt: claims.IssuedAtMillis,
	}
	for _, s := range claims.Scope {
		decoded.Scope = append(decoded.Scope, string(s))
	}
	if claims.IssuedAt != nil {
		decoded.Iat = claims.IssuedAt.Unix()
	}
	if claims.ExpiresAt != nil {
		decoded.ExpiresAt = claims.ExpiresAt.Unix()
	}
	return decoded
}
