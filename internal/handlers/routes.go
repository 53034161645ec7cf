// routes.go
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

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/wastedash/internal/middleware"
	"github.com/localnerve/wastedash/internal/services"
)

// Routes holds what the /api routes need.
type Routes struct {
	Registry        *services.Registry
	Provider        middleware.TenantLoader
	AdminKey        string
	RecalcBatchSize int
}

// Register mounts the tenant and waste routes on api.
func (r Routes) Register(api fiber.Router) {
	tenantHandler := &TenantHandler{Registry: r.Registry}
	wasteHandler := &WasteHandler{}
	reportHandler := &ReportHandler{}
	recalcHandler := &RecalcHandler{BatchSize: r.RecalcBatchSize}

	admin := middleware.AdminKey(r.AdminKey)
	tenant := middleware.Tenant(r.Provider)
	waste := middleware.RequireFeature(services.FeatureWaste)

	tenants := api.Group("/tenants")

	// Tenant picker and registry administration. Admin routes reach inactive tenants,
	// so they do not resolve through the tenant middleware.
	tenants.Get("/", tenantHandler.ListTenants)
	tenants.Post("/", admin, tenantHandler.Provision)
	tenants.Patch("/:slug/active", admin, tenantHandler.SetActive)
	tenants.Put("/:slug/settings/:key", admin, tenantHandler.SetSetting)
	tenants.Put("/:slug/features/:feature", admin, tenantHandler.SetFeature)

	tenants.Get("/:slug", tenant, tenantHandler.GetTenant)

	// Waste data, always scoped by the resolved tenant
	tenants.Get("/:slug/waste", tenant, waste, wasteHandler.ListObservations)
	tenants.Post("/:slug/waste", tenant, waste, wasteHandler.CreateObservation)
	tenants.Get("/:slug/waste/:id", tenant, waste, wasteHandler.GetObservation)
	tenants.Patch("/:slug/waste/:id", tenant, waste, wasteHandler.UpdateObservation)
	tenants.Post("/:slug/documents", tenant, waste, wasteHandler.RegisterDocument)

	tenants.Get("/:slug/summary", tenant, waste, reportHandler.Summary)
	tenants.Get("/:slug/years", tenant, waste, reportHandler.Years)
	tenants.Get("/:slug/report", tenant, waste, reportHandler.Report)

	tenants.Post("/:slug/recalculate", admin, tenant, recalcHandler.Recalculate)
}
