package api

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The stats source is wired after app start, so the route must exist
// immediately and start serving data once SetCacheStats runs.
func TestCacheStatsRouteBeforeAndAfterWiring(t *testing.T) {
	m := NewModule(nil)
	app := fiber.New()
	app.Get("/api/cache/stats", m.handleCacheStats)

	get := func() (int, string) {
		req := httptest.NewRequest("GET", "/api/cache/stats", nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp.StatusCode, string(raw)
	}

	code, body := get()
	assert.Equal(t, fiber.StatusServiceUnavailable, code)
	assert.Contains(t, body, "not available")

	m.SetCacheStats(func() any {
		return map[string]any{"hits": 3, "misses": 1}
	})

	code, body = get()
	assert.Equal(t, fiber.StatusOK, code)
	assert.Contains(t, body, `"hits":3`)
}
