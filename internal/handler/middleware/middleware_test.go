package middleware_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaronipollock/memory-palace-sub001/internal/domain"
	"github.com/aaronipollock/memory-palace-sub001/internal/handler"
	"github.com/aaronipollock/memory-palace-sub001/internal/handler/middleware"
	"github.com/aaronipollock/memory-palace-sub001/internal/repository"
	"github.com/aaronipollock/memory-palace-sub001/pkg/blacklist"
	"github.com/aaronipollock/memory-palace-sub001/pkg/jwt"
)

func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{
		ErrorHandler: handler.NewErrorHandler(false),
	})
}

func okHandler(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body, &parsed))
	return parsed.Error.Code
}

func newTokenService(t *testing.T) *jwt.TokenService {
	t.Helper()

	svc, err := jwt.NewTokenService("middleware-test-secret", time.Hour, 24*time.Hour, "test")
	require.NoError(t, err)
	return svc
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	t.Parallel()

	app := newTestApp()
	app.Get("/protected", middleware.AuthMiddleware(newTokenService(t), blacklist.NewMemoryBlacklist()), okHandler)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/protected", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MissingToken", errorCode(t, resp))
}

func TestAuthMiddlewareRejectsMalformedHeader(t *testing.T) {
	t.Parallel()

	app := newTestApp()
	app.Get("/protected", middleware.AuthMiddleware(newTokenService(t), blacklist.NewMemoryBlacklist()), okHandler)

	for _, header := range []string{"token-without-scheme", "Basic dXNlcjpwYXNz", "Bearer "} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", header)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "header %q", header)
	}
}

func TestAuthMiddlewareRejectsInvalidToken(t *testing.T) {
	t.Parallel()

	app := newTestApp()
	app.Get("/protected", middleware.AuthMiddleware(newTokenService(t), blacklist.NewMemoryBlacklist()), okHandler)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not.a.real.token")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "InvalidToken", errorCode(t, resp))
}

func TestAuthMiddlewareRejectsRevokedToken(t *testing.T) {
	t.Parallel()

	tokens := newTokenService(t)
	bl := blacklist.NewMemoryBlacklist()

	app := newTestApp()
	app.Get("/protected", middleware.AuthMiddleware(tokens, bl), okHandler)

	token, _, err := tokens.GenerateAccessToken("user-1", "user@example.com")
	require.NoError(t, err)
	require.NoError(t, bl.Add(context.Background(), token, time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "TokenRevoked", errorCode(t, resp))
}

func TestAuthMiddlewareRejectsRefreshTokenOnAPIRoutes(t *testing.T) {
	t.Parallel()

	tokens := newTokenService(t)

	app := newTestApp()
	app.Get("/protected", middleware.AuthMiddleware(tokens, blacklist.NewMemoryBlacklist()), okHandler)

	refreshToken, err := tokens.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+refreshToken)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "InvalidToken", errorCode(t, resp))
}

func TestAuthMiddlewarePopulatesLocals(t *testing.T) {
	t.Parallel()

	tokens := newTokenService(t)

	app := newTestApp()
	app.Get("/protected", middleware.AuthMiddleware(tokens, blacklist.NewMemoryBlacklist()), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": c.Locals(middleware.LocalUserID),
			"email":   c.Locals(middleware.LocalEmail),
		})
	})

	token, _, err := tokens.GenerateAccessToken("user-1", "user@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed map[string]string
	require.NoError(t, json.Unmarshal(body, &parsed))
	assert.Equal(t, "user-1", parsed["user_id"])
	assert.Equal(t, "user@example.com", parsed["email"])
}

func TestCSRFGuardAllowsSafeMethods(t *testing.T) {
	t.Parallel()

	app := newTestApp()
	app.Get("/data", middleware.CSRFGuard(), okHandler)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/data", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCSRFGuardRejectsMissingTokens(t *testing.T) {
	t.Parallel()

	app := newTestApp()
	app.Post("/data", middleware.CSRFGuard(), okHandler)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/data", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "CsrfMismatch", errorCode(t, resp))
}

func TestCSRFGuardRejectsMismatch(t *testing.T) {
	t.Parallel()

	app := newTestApp()
	app.Post("/data", middleware.CSRFGuard(), okHandler)

	req := httptest.NewRequest(http.MethodPost, "/data", nil)
	req.AddCookie(&http.Cookie{Name: middleware.CSRFCookieName, Value: "cookie-value"})
	req.Header.Set(middleware.CSRFHeaderName, "different-value")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "CsrfMismatch", errorCode(t, resp))
}

func TestCSRFGuardAllowsMatchingTokens(t *testing.T) {
	t.Parallel()

	app := newTestApp()
	app.Post("/data", middleware.CSRFGuard(), okHandler)

	req := httptest.NewRequest(http.MethodPost, "/data", nil)
	req.AddCookie(&http.Cookie{Name: middleware.CSRFCookieName, Value: "matching-token"})
	req.Header.Set(middleware.CSRFHeaderName, "matching-token")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRateLimiterBlocksAfterMax(t *testing.T) {
	t.Parallel()

	app := newTestApp()
	app.Get("/limited", middleware.RateLimiter(2, time.Minute), okHandler)

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/limited", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode, "request %d within budget", i+1)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/limited", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed struct {
		Error struct {
			Code       string `json:"code"`
			RetryAfter int    `json:"retry_after"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body, &parsed))
	assert.Equal(t, "RateLimited", parsed.Error.Code)
	assert.Greater(t, parsed.Error.RetryAfter, 0)
	assert.LessOrEqual(t, parsed.Error.RetryAfter, 60)
}

func TestRateLimiterRetryAfterFitsWindow(t *testing.T) {
	t.Parallel()

	app := newTestApp()
	app.Get("/limited", middleware.RateLimiter(1, time.Second), okHandler)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/limited", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/limited", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed struct {
		Error struct {
			RetryAfter int `json:"retry_after"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body, &parsed))
	assert.LessOrEqual(t, parsed.Error.RetryAfter, 1)
}

type staticPalaceRepo struct {
	palace *domain.MemoryPalace
}

func (r *staticPalaceRepo) Create(context.Context, *domain.MemoryPalace) error { return nil }

func (r *staticPalaceRepo) GetByID(_ context.Context, id string) (*domain.MemoryPalace, error) {
	if r.palace != nil && r.palace.ID == id {
		return r.palace, nil
	}
	return nil, repository.ErrNotFound
}

func (r *staticPalaceRepo) GetByOwner(context.Context, string) ([]*domain.MemoryPalace, error) {
	return nil, nil
}
func (r *staticPalaceRepo) Update(context.Context, *domain.MemoryPalace) error { return nil }
func (r *staticPalaceRepo) Delete(context.Context, string) error               { return nil }
func (r *staticPalaceRepo) DeleteByOwner(context.Context, string) error        { return nil }

type staticUserRepo struct {
	user *domain.User
}

func (r *staticUserRepo) Create(context.Context, *domain.User) error { return nil }

func (r *staticUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if r.user != nil && r.user.ID == id {
		return r.user, nil
	}
	return nil, repository.ErrNotFound
}

func (r *staticUserRepo) GetByEmail(context.Context, string) (*domain.User, error) {
	return nil, repository.ErrNotFound
}

func (r *staticUserRepo) GetByUsername(context.Context, string) (*domain.User, error) {
	return nil, repository.ErrNotFound
}
func (r *staticUserRepo) UpdateLastLogin(context.Context, string) error { return nil }
func (r *staticUserRepo) Delete(context.Context, string) error          { return nil }

func ownershipApp(palaceRepo repository.PalaceRepository, userRepo repository.UserRepository, userID string) *fiber.App {
	app := newTestApp()
	app.Get("/palaces/:id",
		func(c *fiber.Ctx) error {
			c.Locals(middleware.LocalUserID, userID)
			return c.Next()
		},
		middleware.RequirePalaceOwnership(palaceRepo, userRepo),
		func(c *fiber.Ctx) error {
			palace := c.Locals(middleware.LocalPalace).(*domain.MemoryPalace)
			return c.JSON(palace)
		})
	return app
}

func TestPalaceOwnershipAllowsOwner(t *testing.T) {
	t.Parallel()

	repo := &staticPalaceRepo{palace: &domain.MemoryPalace{ID: "p1", OwnerID: "user-1", Name: "Mine"}}
	app := ownershipApp(repo, &staticUserRepo{}, "user-1")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/palaces/p1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPalaceOwnershipRejectsNonOwner(t *testing.T) {
	t.Parallel()

	repo := &staticPalaceRepo{palace: &domain.MemoryPalace{ID: "p1", OwnerID: "user-1"}}
	users := &staticUserRepo{user: &domain.User{ID: "user-2", IsAdmin: false}}
	app := ownershipApp(repo, users, "user-2")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/palaces/p1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Forbidden", errorCode(t, resp))
}

func TestPalaceOwnershipAllowsAdmin(t *testing.T) {
	t.Parallel()

	repo := &staticPalaceRepo{palace: &domain.MemoryPalace{ID: "p1", OwnerID: "user-1"}}
	users := &staticUserRepo{user: &domain.User{ID: "admin-1", IsAdmin: true}}
	app := ownershipApp(repo, users, "admin-1")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/palaces/p1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPalaceOwnershipReportsMissingPalace(t *testing.T) {
	t.Parallel()

	app := ownershipApp(&staticPalaceRepo{}, &staticUserRepo{}, "user-1")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/palaces/unknown", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NotFound", errorCode(t, resp))
}
