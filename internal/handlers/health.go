package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/wastedash/internal/config"
	"github.com/localnerve/wastedash/internal/services"
	"gorm.io/gorm"
)

// HealthHandler reports database and cache reachability
type HealthHandler struct {
	Config *config.Config
	DB     *gorm.DB
	Cache  services.Pinger
}

// Health handles GET /health
// @Summary Service health
// @Tags Health
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	result := services.HealthCheck(c.UserContext(), h.Config, h.DB, h.Cache)
	status := fiber.StatusOK
	if result.Status != "healthy" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(result)
}
