package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/simplebank/simplebank/internal/middleware"
	"github.com/simplebank/simplebank/internal/transfer"
)

// RegisterTransferRoutes wires the transfer endpoint behind the user gate,
// covering the whole /transfer prefix for the same path-level 403 behavior
// as the account routes.
func RegisterTransferRoutes(app *fiber.App, h *transfer.Handler, idempotency fiber.Handler) {
	grp := app.Group("/transfer", middleware.RequireUser())
	if idempotency != nil {
		grp.Post("/", idempotency, h.Transfer)
		return
	}
	grp.Post("/", h.Transfer)
}
