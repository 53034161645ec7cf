package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/localnerve/wastedash/internal/config"
	"github.com/localnerve/wastedash/internal/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Pinger is anything that can report reachability, such as the shared tenant cache.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	Cache        string            `json:"cache"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

func (r *HealthCheckResult) fail(msg string) {
	r.Status = "unhealthy"
	if r.ErrorMessage == "" {
		r.ErrorMessage = msg
	} else {
		r.ErrorMessage = strings.Join([]string{r.ErrorMessage, msg}, "; ")
	}
}

// HealthCheck pings the database and, when one is configured, the shared cache.
func HealthCheck(ctx context.Context, cfg *config.Config, db *gorm.DB, cache Pinger) HealthCheckResult {
	log := logger.FromContext(ctx)
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	// Check database connectivity
	sqlDB, err := db.DB()
	if err != nil {
		result.Database = "error"
		result.Details["database_error"] = err.Error()
		result.fail(fmt.Sprintf("Database connection error: %v", err))
		log.Warn("Health check failed - database connection", zap.Error(err))
	} else if err := sqlDB.PingContext(ctx); err != nil {
		result.Database = "unreachable"
		result.Details["database_ping_error"] = err.Error()
		result.fail(fmt.Sprintf("Database ping failed: %v", err))
		log.Warn("Health check failed - database ping", zap.Error(err))
	} else {
		result.Database = "ok"
		result.Details["database_type"] = cfg.DBType
		result.Details["database_name"] = cfg.DBDatabase
	}

	// Check the shared cache
	if cache == nil {
		result.Cache = "disabled"
	} else if err := cache.Ping(ctx); err != nil {
		result.Cache = "unreachable"
		result.Details["cache_error"] = err.Error()
		result.fail(fmt.Sprintf("Cache ping failed: %v", err))
		log.Warn("Health check failed - cache ping", zap.Error(err))
	} else {
		result.Cache = "ok"
	}

	if result.Status == "healthy" {
		log.Debug("Health check passed - all systems operational")
	}

	return result
}
