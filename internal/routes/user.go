package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/simplebank/simplebank/internal/middleware"
	"github.com/simplebank/simplebank/internal/user"
)

// RegisterUserRoutes wires user endpoints. Creation is the single admin-only
// operation of the API; listing and the profile view are user-only.
func RegisterUserRoutes(app *fiber.App, h *user.Handler) {
	app.Post("/user", middleware.RequireAdmin(), h.Create)
	app.Get("/user/list", middleware.RequireUser(), h.List)
	app.Get("/user/me", middleware.RequireUser(), h.Profile)
}
