package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/orphanage-admin/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health *handlers.HealthHandler
	Auth   *handlers.AuthHandler
	Users  *handlers.UsersHandler
	Staff  *handlers.StaffHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	api.Post("/auth/login", cfg.Auth.Login)

	users := api.Group("/users")
	users.Get("/", cfg.Users.List)
	users.Post("/", cfg.Users.Create)
	users.Put("/:id", cfg.Users.Update)
	users.Delete("/:id", cfg.Users.Delete)
	users.Post("/:id/password/reset", cfg.Users.ResetPassword)

	staff := api.Group("/staff")
	staff.Get("/", cfg.Staff.List)
	staff.Get("/:id", cfg.Staff.GetByID)
	staff.Post("/", cfg.Staff.Create)
	staff.Put("/:id", cfg.Staff.Update)
	staff.Delete("/:id", cfg.Staff.Delete)
}
