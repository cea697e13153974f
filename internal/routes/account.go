package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/simplebank/simplebank/internal/account"
	"github.com/simplebank/simplebank/internal/middleware"
)

// RegisterAccountRoutes wires account endpoints. The user gate sits on the
// whole /account prefix so the admin credential gets 403 for any path under
// it, matching the path-level role enforcement of the security layer.
func RegisterAccountRoutes(app *fiber.App, h *account.Handler, idempotency fiber.Handler) {
	grp := app.Group("/account", middleware.RequireUser())
	grp.Get("/:id", h.Get)
	if idempotency != nil {
		grp.Post("/deposit/:id", idempotency, h.Deposit)
		grp.Post("/withdraw/:id", idempotency, h.Withdraw)
		return
	}
	grp.Post("/deposit/:id", h.Deposit)
	grp.Post("/withdraw/:id", h.Withdraw)
}
