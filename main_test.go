package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"storerating/internal/config"
	"storerating/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		AppPort:              ":0",
		Environment:          "test",
		FrontendURL:          "*",
		DBDriver:             "sqlite",
		JWTSecret:            "main_test_secret",
		JWTTTL:               time.Hour,
		RateLimitMaxRequests: 2,
		RateLimitWindow:      time.Minute,
	}
}

func setupTestApp(t *testing.T, deps appDeps) *fiber.App {
	t.Helper()
	deps.cfg = testConfig()
	deps.db = testutil.SetupTestDatabase(t)
	return newApp(deps)
}

func get(t *testing.T, app *fiber.App, path string) (*http.Response, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestHealthReportsBrokerStatus(t *testing.T) {
	app := setupTestApp(t, appDeps{})

	resp, body := get(t, app, "/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var health map[string]string
	require.NoError(t, json.Unmarshal([]byte(body), &health))
	assert.Equal(t, "healthy", health["status"])
	assert.Equal(t, "disconnected", health["broker"])
}

func TestMetricsEndpoint(t *testing.T) {
	app := setupTestApp(t, appDeps{})

	get(t, app, "/health")
	resp, body := get(t, app, "/metrics")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "storerating_http_requests_total")
	assert.Contains(t, body, `path="/health"`)
}

func TestProtectedRouteWithoutToken(t *testing.T) {
	app := setupTestApp(t, appDeps{})

	req := httptest.NewRequest(http.MethodPost, "/api/ratings", strings.NewReader(`{"storeId":1,"rating":3}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUnknownRouteUsesMessageShape(t *testing.T) {
	app := setupTestApp(t, appDeps{})

	for _, path := range []string{"/api/nope", "/api/admin/nope", "/api/owner/nope", "/api/users/nope"} {
		resp, body := get(t, app, path)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)

		var payload map[string]string
		require.NoError(t, json.Unmarshal([]byte(body), &payload), path)
		assert.NotEmpty(t, payload["message"], path)
	}
}

func TestAuthRoutesAreRateLimited(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	app := setupTestApp(t, appDeps{redis: client})

	login := func() *http.Response {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		resp.Body.Close()
		return resp
	}

	assert.Equal(t, http.StatusBadRequest, login().StatusCode)
	assert.Equal(t, http.StatusBadRequest, login().StatusCode)
	blocked := login()
	assert.Equal(t, http.StatusTooManyRequests, blocked.StatusCode)
	assert.NotEmpty(t, blocked.Header.Get(fiber.HeaderRetryAfter))

	// other API routes are not throttled
	resp, _ := get(t, app, "/api/stores")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
