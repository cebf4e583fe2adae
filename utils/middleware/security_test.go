package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorsConfig(t *testing.T) {
	cfg := corsConfig(" http://localhost:3000 , https://studyflow.app ,")
	assert.Equal(t, "http://localhost:3000,https://studyflow.app", cfg.AllowOrigins)
	assert.True(t, cfg.AllowCredentials)
	assert.Contains(t, cfg.AllowHeaders, InternalSecretHeader)

	for _, allowed := range []string{"*", ""} {
		cfg = corsConfig(allowed)
		assert.Equal(t, "*", cfg.AllowOrigins)
		assert.False(t, cfg.AllowCredentials)
	}
}

func TestRateLimitSkipsHealthChecks(t *testing.T) {
	app := fiber.New()
	SetupSecurity(app, SecurityConfig{
		AllowedOrigins:    "http://localhost:3000",
		RateLimitRequests: 1,
		RateLimitWindow:   time.Minute,
		DisableRequestLog: true,
	})
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/api/v1/tasks", func(c *fiber.Ctx) error { return c.SendString("tasks") })

	status := func(path string) int {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, path, nil), -1)
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}

	assert.Equal(t, fiber.StatusOK, status("/api/v1/tasks"))
	assert.Equal(t, fiber.StatusTooManyRequests, status("/api/v1/tasks"))
	for i := 0; i < 3; i++ {
		assert.Equal(t, fiber.StatusOK, status("/ping"))
	}
}
