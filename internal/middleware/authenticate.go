package middleware

import (
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/simplebank/simplebank/internal/auth"
	"github.com/simplebank/simplebank/internal/config"
	"github.com/simplebank/simplebank/internal/user"
)

const basicPrefix = "basic "

// Authenticate resolves request credentials into an auth.Identity stored in
// the request locals. The admin key header and HTTP Basic credentials are
// checked in that order; presenting either with a wrong value ends the
// request with 401. Requests without credentials continue unauthenticated so
// the role gates can decide.
func Authenticate(cfg config.Config, users user.Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if key := c.Get(auth.AdminKeyHeader); key != "" {
			if subtle.ConstantTimeCompare([]byte(key), []byte(cfg.AdminToken)) != 1 {
				return fiber.NewError(http.StatusUnauthorized, "invalid admin key")
			}
			c.Locals("identity", auth.AdminIdentity())
			return c.Next()
		}

		authz := c.Get(fiber.HeaderAuthorization)
		if authz == "" {
			return c.Next()
		}
		if !strings.HasPrefix(strings.ToLower(authz), basicPrefix) {
			return fiber.NewError(http.StatusUnauthorized, "unsupported authorization scheme")
		}

		username, password, ok := decodeBasic(strings.TrimSpace(authz[len(basicPrefix):]))
		if !ok {
			return fiber.NewError(http.StatusUnauthorized, "malformed basic credentials")
		}

		u, err := users.FindByUsername(c.UserContext(), username)
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "bad credentials")
		}
		if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)); err != nil {
			return fiber.NewError(http.StatusUnauthorized, "bad credentials")
		}

		c.Locals("identity", auth.UserIdentity(u.ID))
		return c.Next()
	}
}

func decodeBasic(encoded string) (username, password string, ok bool) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", "", false
	}
	username, password, ok = strings.Cut(string(raw), ":")
	return username, password, ok
}
