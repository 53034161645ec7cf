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

// Command wastectl administers tenants and runs maintenance jobs against the
// wastedash database.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/localnerve/wastedash/internal/cache"
	"github.com/localnerve/wastedash/internal/config"
	"github.com/localnerve/wastedash/internal/database"
	"github.com/localnerve/wastedash/internal/logger"
	"github.com/localnerve/wastedash/internal/services"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var rootFlags = struct {
	envFile string
	verbose bool
}{}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "wastectl",
		Short:         "Administer wastedash tenants and data",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if rootFlags.envFile != "" {
				if err := godotenv.Load(rootFlags.envFile); err != nil {
					return fmt.Errorf("failed to load %s: %w", rootFlags.envFile, err)
				}
			}
			level := "warn"
			if rootFlags.verbose {
				level = "debug"
			}
			_, err := logger.Init(logger.LogConfig{Level: level, Environment: "cli", ServiceName: "wastectl"})
			return err
		},
	}

	root.PersistentFlags().StringVarP(&rootFlags.envFile, "env-file", "f", "", "path to a .env file to load before reading configuration")
	root.PersistentFlags().BoolVarP(&rootFlags.verbose, "verbose", "v", false, "verbose logging")

	root.AddCommand(
		newProvisionCommand(),
		newRecalculateCommand(),
		newTenantsCommand(),
		newSchemaCommand(),
	)
	return root
}

// env is the database and registry a command works against.
type env struct {
	cfg      *config.Config
	db       *gorm.DB
	admin    *gorm.DB
	registry *services.Registry
	closers  []func()
}

func (e *env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i]()
	}
}

// openEnv connects both pools. Registry mutations invalidate the shared cache when one
// is configured so running servers see them.
func openEnv(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	e := &env{cfg: cfg}

	if e.db, err = database.Connect(cfg); err != nil {
		return nil, err
	}
	e.closers = append(e.closers, func() { _ = database.Close(e.db) })

	if e.admin, err = database.ConnectAdmin(cfg); err != nil {
		e.Close()
		return nil, err
	}
	e.closers = append(e.closers, func() { _ = database.Close(e.admin) })

	var tenantCache cache.Cache[services.TenantInfo]
	if cfg.CacheURL != "" {
		redisCache, err := cache.NewRedisCache[services.TenantInfo](ctx, cfg.CacheURL, "wastedash:tenant:")
		if err != nil {
			zap.L().Warn("Tenant cache unavailable, changes reach servers when their entries expire", zap.Error(err))
		} else {
			e.closers = append(e.closers, func() { _ = redisCache.Close() })
			tenantCache = redisCache
		}
	}

	e.registry = services.NewRegistry(e.db, e.admin, tenantCache, cfg.CacheTTL)
	return e, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
