package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"project/backend/config"
	"project/backend/session"
	"project/backend/utils"
)

// AuthMiddleware verifies the bearer token signature and expiry, then
// checks the session store still holds the identical token for that
// user. A token that was logged out is rejected even while its
// signature remains valid.
func AuthMiddleware(cfg *config.Config, store session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return utils.Unauthorized(c, "Missing authorization token")
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		userID, email, err := utils.ParseJWTToken(tokenString, cfg)
		if err != nil {
			return utils.Unauthorized(c, "Invalid token")
		}

		stored, err := store.Get(c.Context(), userID)
		if err != nil || stored != tokenString {
			return utils.Unauthorized(c, "Session expired or revoked")
		}

		c.Locals("user_id", userID)
		c.Locals("email", email)
		return c.Next()
	}
}

// UserID reads the authenticated member id set by AuthMiddleware.
func UserID(c *fiber.Ctx) uint {
	id, _ := c.Locals("user_id").(uint)
	return id
}
