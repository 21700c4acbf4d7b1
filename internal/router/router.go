package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/platform-admin-api/internal/config"
	"github.com/noah-isme/platform-admin-api/internal/handler"
	"github.com/noah-isme/platform-admin-api/internal/middleware"
	"github.com/noah-isme/platform-admin-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler           *handler.AuthHandler
	ModeratorHandler      *handler.AdminModeratorHandler
	ActivityHandler       *handler.AdminActivityHandler
	ActivityStreamHandler *handler.ActivityStreamHandler
	JWTMiddleware         fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	app.Get("/metrics", observability.MetricsHandler())

	if deps.AuthHandler != nil {
		deps.AuthHandler.Register(api)
	}

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	admin := api.Group("/admin", jwtMiddleware, middleware.RequireRole("admin"))

	if deps.ModeratorHandler != nil {
		deps.ModeratorHandler.Register(admin.Group("/moderators"))
	}

	if deps.ActivityHandler != nil {
		activity := admin.Group("/activity")
		deps.ActivityHandler.Register(activity)

		if deps.ActivityStreamHandler != nil {
			deps.ActivityStreamHandler.Register(activity)
		}
	}
}
