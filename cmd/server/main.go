// main.go
//
// Multi-tenant waste diversion and environmental impact service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of wastedash.
// wastedash is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// wastedash is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with wastedash.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/localnerve/wastedash/internal/cache"
	"github.com/localnerve/wastedash/internal/config"
	"github.com/localnerve/wastedash/internal/database"
	"github.com/localnerve/wastedash/internal/handlers"
	"github.com/localnerve/wastedash/internal/logger"
	"github.com/localnerve/wastedash/internal/middleware"
	"github.com/localnerve/wastedash/internal/services"
	"github.com/localnerve/wastedash/internal/utils"
	"go.uber.org/zap"

	_ "github.com/localnerve/wastedash/docs/api" // Swagger docs
)

// @title Wastedash API
// @version 1.0.0
// @description Multi-tenant waste diversion and environmental impact service
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/localnerve/wastedash
// @contact.email info@localnerve.com

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey AdminKey
// @in header
// @name X-Admin-Key

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.Init(logger.LogConfig{
		Level:       cfg.LogLevel,
		Environment: cfg.Environment,
		ServiceName: "wastedash",
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	// Connect to database (app pool)
	appDB, err := database.Connect(cfg)
	if err != nil {
		zlog.Fatal("Failed to connect to app database", zap.Error(err))
	}
	defer database.Close(appDB)

	// Connect to database (admin pool)
	adminDB, err := database.ConnectAdmin(cfg)
	if err != nil {
		zlog.Fatal("Failed to connect to admin database", zap.Error(err))
	}
	defer database.Close(adminDB)

	// Run auto-migrations with the pool that owns the schema
	if err := database.AutoMigrate(adminDB); err != nil {
		zlog.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Tenant cache: shared Redis when configured, in-process otherwise
	var tenantCache cache.Cache[services.TenantInfo]
	var cachePinger services.Pinger
	if cfg.CacheURL != "" {
		redisCache, err := cache.NewRedisCache[services.TenantInfo](context.Background(), cfg.CacheURL, "wastedash:tenant:")
		if err != nil {
			zlog.Fatal("Failed to connect to tenant cache", zap.Error(err))
		}
		defer func() { _ = redisCache.Close() }()
		tenantCache, cachePinger = redisCache, redisCache
		zlog.Info("Using Redis tenant cache")
	} else {
		tenantCache = cache.NewTTLCache[services.TenantInfo]()
	}

	registry := services.NewRegistry(appDB, adminDB, tenantCache, cfg.CacheTTL)
	provider := services.NewContextProvider(registry, appDB)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler:          customErrorHandler,
		DisableStartupMessage: cfg.Environment == "production",
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.Middleware())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("wastedash")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API routes under /api
	api := app.Group("/api")
	api.Use(middleware.VersionMiddleware())

	healthHandler := &handlers.HealthHandler{Config: cfg, DB: appDB, Cache: cachePinger}
	api.Get("/health", healthHandler.Health)

	handlers.Routes{
		Registry:        registry,
		Provider:        provider,
		AdminKey:        cfg.AdminKey,
		RecalcBatchSize: cfg.RecalcBatchSize,
	}.Register(api)

	if cfg.AdminKey == "" {
		zlog.Warn("ADMIN_KEY is not set, admin routes are disabled")
	}

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return utils.ErrorResponse(c, "[404] Resource Not Found", fiber.StatusNotFound, "notFound")
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		zlog.Info("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	zlog.Info("Starting server", zap.String("port", port), zap.String("db_type", cfg.DBType))
	if err := app.Listen(":" + port); err != nil {
		zlog.Fatal("Failed to start server", zap.Error(err))
	}

	zlog.Info("Server stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	logger.FromContext(c.UserContext()).Debug("Unhandled request error", zap.Error(err))
	return utils.ErrorHandler(c, err)
}
