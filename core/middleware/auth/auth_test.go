package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(cfg Config) *fiber.App {
	app := fiber.New()
	app.Use(New(cfg))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/metrics", func(c *fiber.Ctx) error { return c.SendString("metrics") })
	return app
}

func TestAuth(t *testing.T) {
	app := newApp(Config{
		ApiKey: "secret",
		Next:   func(c *fiber.Ctx) bool { return c.Path() == "/metrics" },
	})

	tests := []struct {
		name   string
		path   string
		key    string
		status int
	}{
		{"missing key", "/", "", fiber.StatusUnauthorized},
		{"wrong key", "/", "nope", fiber.StatusForbidden},
		{"valid key", "/", "secret", fiber.StatusOK},
		{"skipped path", "/metrics", "", fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.key != "" {
				req.Header.Set(HeaderName, tt.key)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestAuth_Disabled(t *testing.T) {
	app := newApp(Config{})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
