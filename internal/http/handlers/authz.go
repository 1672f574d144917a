package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"localcart/internal/gateway"
	applog "localcart/internal/log"
	"localcart/internal/services"
)

func bearer(c *fiber.Ctx) string {
	h := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

// RequireUser verifies the bearer token and puts the uid into the request
// context for everything downstream.
func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok := bearer(c)
		if tok == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Please sign in."})
		}
		uid, err := auth.Verify(tok)
		if err != nil {
			applog.Security(c, "auth.token.reject", nil)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Your session has expired. Please sign in again."})
		}
		c.Locals("uid", uid)
		c.SetUserContext(gateway.WithUID(c.UserContext(), uid))
		return c.Next()
	}
}
