package middleware_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/platform-admin-api/internal/middleware"
)

func decodeJSON(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, json.Unmarshal(data, target))
}

func newRoleApp(role interface{}, allowed ...string) *fiber.App {
	app := fiber.New()
	app.Get("/admin",
		func(c *fiber.Ctx) error {
			if role != nil {
				c.Locals("user_role", role)
			}
			return c.Next()
		},
		middleware.RequireRole(allowed...),
		func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		},
	)
	return app
}

func TestRequireRole_AllowsMatchingRole(t *testing.T) {
	app := newRoleApp("admin", "admin")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireRole_NormalizesCase(t *testing.T) {
	app := newRoleApp("  ADMIN ", "admin")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireRole_RejectsOtherRole(t *testing.T) {
	app := newRoleApp("moderator", "admin")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequireRole_RejectsMissingRole(t *testing.T) {
	app := newRoleApp(nil, "admin")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestJWTAndRoleChainProtectsAdminRoutes(t *testing.T) {
	app := newProtectedApp(middleware.RequireRole("admin"))

	signed := signToken(t, testSecret, map[string]interface{}{
		"sub":  1,
		"role": "moderator",
	})
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
