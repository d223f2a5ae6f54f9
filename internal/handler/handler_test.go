package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaronipollock/memory-palace-sub001/internal/apperr"
	"github.com/aaronipollock/memory-palace-sub001/internal/config"
	"github.com/aaronipollock/memory-palace-sub001/internal/handler"
)

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(body, &parsed))
	return parsed
}

func TestErrorHandlerMapsApplicationErrors(t *testing.T) {
	t.Parallel()

	app := fiber.New(fiber.Config{ErrorHandler: handler.NewErrorHandler(false)})
	app.Get("/conflict", func(c *fiber.Ctx) error {
		return apperr.AlreadyExists("email")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/conflict", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	parsed := decodeBody(t, resp)
	errObj := parsed["error"].(map[string]any)
	assert.Equal(t, "AlreadyExists", errObj["code"])
	assert.Equal(t, "email already exists", errObj["message"])
}

func TestErrorHandlerSetsRetryAfterHeader(t *testing.T) {
	t.Parallel()

	app := fiber.New(fiber.Config{ErrorHandler: handler.NewErrorHandler(true)})
	app.Get("/limited", func(c *fiber.Ctx) error {
		return apperr.RateLimited(120)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/limited", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "120", resp.Header.Get("Retry-After"))
}

func TestErrorHandlerHidesDetailInProduction(t *testing.T) {
	t.Parallel()

	cause := errors.New("dial tcp 10.0.0.5:27017: connection refused")

	for _, tc := range []struct {
		name       string
		production bool
		wantDetail bool
	}{
		{"development exposes detail", false, true},
		{"production hides detail", true, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			app := fiber.New(fiber.Config{ErrorHandler: handler.NewErrorHandler(tc.production)})
			app.Get("/boom", func(c *fiber.Ctx) error {
				return apperr.Internal(cause)
			})

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
			require.NoError(t, err)
			assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

			parsed := decodeBody(t, resp)
			_, hasDetail := parsed["detail"]
			assert.Equal(t, tc.wantDetail, hasDetail)

			errObj := parsed["error"].(map[string]any)
			assert.Equal(t, "internal server error", errObj["message"])
		})
	}
}

func TestErrorHandlerWrapsUnknownErrors(t *testing.T) {
	t.Parallel()

	app := fiber.New(fiber.Config{ErrorHandler: handler.NewErrorHandler(true)})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("something unexpected")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	parsed := decodeBody(t, resp)
	errObj := parsed["error"].(map[string]any)
	assert.Equal(t, "Internal", errObj["code"])
	assert.NotContains(t, errObj["message"], "something unexpected")
}

func TestRefreshWithoutTokenIsRejected(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	h := handler.NewAuthHandler(nil, nil, cfg)

	app := fiber.New(fiber.Config{ErrorHandler: handler.NewErrorHandler(false)})
	app.Post("/api/v1/auth/refresh", h.Refresh)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	parsed := decodeBody(t, resp)
	errObj := parsed["error"].(map[string]any)
	assert.Equal(t, "MissingToken", errObj["code"])
}

func TestRefreshIgnoresBodyToken(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	h := handler.NewAuthHandler(nil, nil, cfg)

	app := fiber.New(fiber.Config{ErrorHandler: handler.NewErrorHandler(false)})
	app.Post("/api/v1/auth/refresh", h.Refresh)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh",
		strings.NewReader(`{"refresh_token":"some-token"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "only the cookie carries the refresh token")

	parsed := decodeBody(t, resp)
	errObj := parsed["error"].(map[string]any)
	assert.Equal(t, "MissingToken", errObj["code"])
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()

	healthy := handler.NewHealthHandler(map[string]handler.Pinger{
		"mongodb": func(context.Context) error { return nil },
		"redis":   func(context.Context) error { return nil },
	})

	app := fiber.New()
	app.Get("/health", healthy.Health)
	app.Get("/ready", healthy.Ready)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/ready", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	parsed := decodeBody(t, resp)
	deps := parsed["dependencies"].(map[string]any)
	assert.Equal(t, "ok", deps["mongodb"])
	assert.Equal(t, "ok", deps["redis"])
}

func TestReadyReportsUnavailableDependency(t *testing.T) {
	t.Parallel()

	degraded := handler.NewHealthHandler(map[string]handler.Pinger{
		"mongodb": func(context.Context) error { return errors.New("down") },
		"redis":   func(context.Context) error { return nil },
	})

	app := fiber.New()
	app.Get("/ready", degraded.Ready)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ready", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	parsed := decodeBody(t, resp)
	assert.Equal(t, "degraded", parsed["status"])
	deps := parsed["dependencies"].(map[string]any)
	assert.Equal(t, "unavailable", deps["mongodb"])
	assert.Equal(t, "ok", deps["redis"])
}
