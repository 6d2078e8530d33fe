package auth

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/blog-gateway/pkg/util"
)

func newGateApp(tm *TokenManager) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var de *apperrors.DomainError
			if errors.As(err, &de) {
				return c.Status(de.HTTPStatus).SendString(de.Code)
			}
			return c.SendStatus(http.StatusInternalServerError)
		},
	})
	gate := NewAuthMiddleware(tm)
	app.Post("/gated", gate.Handle, func(c *fiber.Ctx) error {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			return c.SendStatus(http.StatusInternalServerError)
		}
		return c.SendString(string(claims.Scope[0]))
	})
	return app
}

func doGated(t *testing.T, app *fiber.App, header string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/gated", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour, "1h")
	token, _, err := tm.Issue()
	require.NoError(t, err)

	status, body := doGated(t, newGateApp(tm), "Bearer "+token)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "blog:create", body)
}

func TestAuthMiddleware_MissingCredential(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour, "1h")
	token, _, _ := tm.Issue()
	app := newGateApp(tm)

	for _, header := range []string{"", "Basic abc", token, "Bearer ", "Bearer"} {
		status, body := doGated(t, app, header)
		assert.Equal(t, http.StatusUnauthorized, status, "header %q", header)
		assert.Equal(t, apperrors.CodeMissingCredential, body, "header %q", header)
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour, "1h")
	foreign, _, _ := NewTokenManager("other-secret", time.Hour, "1h").Issue()

	status, body := doGated(t, newGateApp(tm), "Bearer "+foreign)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, apperrors.CodeInvalidOrExpired, body)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	past := time.Now().Add(-2 * time.Hour)
	tm := NewTokenManager(testSecret, time.Hour, "1h")
	token, _, err := tm.WithClock(fixedClock(past)).Issue()
	require.NoError(t, err)

	status, body := doGated(t, newGateApp(tm), "bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, apperrors.CodeInvalidOrExpired, body)
}

func TestBearerToken(t *testing.T) {
	tok, ok := BearerToken("Bearer abc.def")
	assert.True(t, ok)
	assert.Equal(t, "abc.def", tok)

	_, ok = BearerToken("Token abc")
	assert.False(t, ok)
}
