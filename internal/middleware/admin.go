package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/wastedash/internal/types"
)

// AdminKeyHeader carries the operator key on admin routes.
const AdminKeyHeader = "X-Admin-Key"

// AdminKey validates that the request carries the configured operator key.
// An empty configured key disables every admin route.
func AdminKey(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return authorize(c, key, "authorization.admin")
	}
}

// authorize performs the key check
func authorize(c *fiber.Ctx, key, errorType string) error {
	if key == "" {
		return &types.CustomError{
			Code:    fiber.StatusForbidden,
			Message: "Admin routes are disabled",
			Type:    errorType,
		}
	}

	given := c.Get(AdminKeyHeader)
	if given == "" {
		return &types.CustomError{
			Code:    fiber.StatusUnauthorized,
			Message: "Header \"" + AdminKeyHeader + "\" not found",
			Type:    errorType,
		}
	}

	if subtle.ConstantTimeCompare([]byte(given), []byte(key)) != 1 {
		return &types.CustomError{
			Code:    fiber.StatusForbidden,
			Message: "Invalid admin key",
			Type:    errorType,
		}
	}

	c.Locals("admin", true)
	return c.Next()
}
