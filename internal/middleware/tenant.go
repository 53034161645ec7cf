// tenant.go
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

package middleware

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/wastedash/internal/logger"
	"github.com/localnerve/wastedash/internal/services"
	"github.com/localnerve/wastedash/internal/types"
	"github.com/localnerve/wastedash/internal/utils"
	"go.uber.org/zap"
)

const tenantKey = "tenant"

// TenantLoader resolves a slug into a tenant context.
type TenantLoader interface {
	Load(ctx context.Context, slug string) (*services.TenantContext, error)
}

// Tenant resolves the :slug route parameter and stores the tenant context for the handlers.
// Unknown and inactive slugs end the request with the "client not found" 404.
func Tenant(loader TenantLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		slug := c.Params("slug")
		tc, err := loader.Load(c.UserContext(), slug)
		if err != nil {
			if errors.Is(err, types.ErrTenantNotFound) {
				return utils.TenantNotFoundResponse(c, slug)
			}
			return utils.ServiceErrorResponse(c, err, "tenant.resolve")
		}

		c.Locals(tenantKey, tc)
		reqLogger := logger.FromContext(c.UserContext()).With(zap.Uint64("tenant_id", tc.ID()))
		c.SetUserContext(logger.WithContext(c.UserContext(), reqLogger))

		return c.Next()
	}
}

// TenantFrom returns the tenant context stored by Tenant, or nil.
func TenantFrom(c *fiber.Ctx) *services.TenantContext {
	tc, _ := c.Locals(tenantKey).(*services.TenantContext)
	return tc
}

// RequireFeature rejects requests for tenants that do not have feature enabled.
// It must run after Tenant.
func RequireFeature(feature string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tc := TenantFrom(c)
		if tc == nil {
			return utils.TenantNotFoundResponse(c, c.Params("slug"))
		}
		if !tc.FeatureEnabled(feature) {
			return &types.CustomError{
				Code:    fiber.StatusForbidden,
				Message: "Feature '" + feature + "' is not enabled for this client",
				Type:    "tenant.feature",
			}
		}
		return c.Next()
	}
}
