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
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/localnerve/wastedash/internal/cache"
	"github.com/localnerve/wastedash/internal/config"
	"github.com/localnerve/wastedash/internal/database"
	"github.com/localnerve/wastedash/internal/logger"
	"github.com/localnerve/wastedash/internal/services"
	"github.com/localnerve/wastedash/internal/utils"
	"go.uber.org/zap"
)

func main() {
	var serverOnly bool
	flag.BoolVar(&serverOnly, "server", false, "only check that the HTTP listener accepts connections")
	flag.Parse()

	// Logs go to stderr, stdout carries only the JSON result
	zlog, err := logger.Init(logger.LogConfig{Level: "warn", Environment: os.Getenv("APP_ENV"), ServiceName: "healthcheck"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = zlog.Sync() }()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		zlog.Fatal("Failed to load configuration", zap.Error(err))
	}

	if serverOnly {
		if err := utils.PingServer(cfg.Port); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Connect to database (app pool)
	appDB, err := database.Connect(cfg)
	if err != nil {
		zlog.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(appDB)

	// Shared cache, when configured
	var pinger services.Pinger
	if cfg.CacheURL != "" {
		if err := utils.PingService(cfg.CacheURL, 2*time.Second); err != nil {
			zlog.Warn("Cache unreachable", zap.String("url", cfg.CacheURL), zap.Error(err))
		}
		if redisCache, err := cache.NewRedisCache[services.TenantInfo](ctx, cfg.CacheURL, "wastedash:tenant:"); err == nil {
			defer func() { _ = redisCache.Close() }()
			pinger = redisCache
		} else {
			pinger = failedPinger{err}
		}
	}

	// Perform health check
	result := services.HealthCheck(ctx, cfg, appDB, pinger)

	// Output result as JSON
	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		zlog.Fatal("Failed to marshal health check result", zap.Error(err))
	}

	fmt.Println(string(output))

	// Exit with appropriate code
	if result.Status != "healthy" {
		os.Exit(1)
	}
}

type failedPinger struct{ err error }

func (f failedPinger) Ping(context.Context) error { return f.err }
