package middleware

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/simplebank/simplebank/internal/auth"
)

// RequireUser admits authenticated non-admin callers. Applied at the group
// level so that any path under a user-only prefix answers 403 to the admin
// credential, whether or not a terminal route exists.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, _ := c.Locals("identity").(auth.Identity)
		if !identity.Authenticated() {
			return fiber.NewError(http.StatusUnauthorized, auth.ErrUnauthenticated.Error())
		}
		if identity.Admin {
			return fiber.NewError(http.StatusForbidden, auth.ErrForbidden.Error())
		}
		return c.Next()
	}
}

// RequireAdmin admits only the administrator credential.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, _ := c.Locals("identity").(auth.Identity)
		if !identity.Authenticated() {
			return fiber.NewError(http.StatusUnauthorized, auth.ErrUnauthenticated.Error())
		}
		if !identity.Admin {
			return fiber.NewError(http.StatusForbidden, auth.ErrForbidden.Error())
		}
		return c.Next()
	}
}
