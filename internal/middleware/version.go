package middleware

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/wastedash/internal/calc"
)

// FormulaVersionHeader tells clients which diversion formula produced the figures.
const FormulaVersionHeader = "X-Formula-Version"

// VersionMiddleware parses the X-Api-Version header, stores it in context and stamps
// the formula version on the response.
func VersionMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		version := c.Get("X-Api-Version", "1.0.0")

		// Support version aliases
		if version == "1.0" || version == "1" {
			version = "1.0.0"
		}

		// Store version in context
		c.Locals("apiVersion", version)
		c.Set(FormulaVersionHeader, strconv.Itoa(calc.FormulaVersion))

		return c.Next()
	}
}
