package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/wastedash/internal/middleware"
	"github.com/localnerve/wastedash/internal/services"
	"github.com/localnerve/wastedash/internal/utils"
)

// TenantHandler handles tenant registry routes
type TenantHandler struct {
	Registry *services.Registry
}

// TenantListItem is one entry of the tenant picker.
type TenantListItem struct {
	ID           uint64  `json:"id"`
	Slug         string  `json:"slug"`
	Name         string  `json:"name"`
	Logo         *string `json:"logo,omitempty"`
	PrimaryColor *string `json:"primaryColor,omitempty"`
	IsActive     bool    `json:"isActive"`
	DashboardURL string  `json:"dashboardUrl"`
}

// ProvisionResponse is returned for a newly provisioned tenant.
type ProvisionResponse struct {
	ID           uint64 `json:"id"`
	Slug         string `json:"slug"`
	DashboardURL string `json:"dashboardUrl"`
}

// ActiveRequest toggles a tenant.
type ActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// SettingRequest sets one setting override.
type SettingRequest struct {
	Value string `json:"value" validate:"max=4096"`
}

// FeatureRequest toggles one feature.
type FeatureRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

// ListTenants handles GET /api/tenants
// @Summary List tenants
// @Description The tenant picker: active tenants ordered by name
// @Tags Tenants
// @Produce json
// @Success 200 {array} TenantListItem
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /tenants [get]
func (h *TenantHandler) ListTenants(c *fiber.Ctx) error {
	tenants, err := h.Registry.List(c.UserContext(), false)
	if err != nil {
		return utils.ServiceErrorResponse(c, err, "tenant.list")
	}

	items := make([]TenantListItem, 0, len(tenants))
	for _, t := range tenants {
		items = append(items, TenantListItem{
			ID:           t.ID,
			Slug:         t.Slug,
			Name:         t.Name,
			Logo:         t.Logo,
			PrimaryColor: t.PrimaryColor,
			IsActive:     t.IsActive,
			DashboardURL: services.DashboardURL(t.Slug),
		})
	}
	return utils.SuccessResponse(c, items, fiber.StatusOK)
}

// Provision handles POST /api/tenants
// @Summary Provision a tenant
// @Description Create a tenant with its feature flags and setting overrides
// @Tags Tenants
// @Accept json
// @Produce json
// @Security AdminKey
// @Param body body services.ProvisionInput true "Tenant to create"
// @Success 201 {object} ProvisionResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /tenants [post]
func (h *TenantHandler) Provision(c *fiber.Ctx) error {
	var in services.ProvisionInput
	if err := parseBody(c, &in); err != nil {
		return utils.ServiceErrorResponse(c, err, "tenant.provision")
	}

	tenant, err := h.Registry.Provision(c.UserContext(), in)
	if err != nil {
		return utils.ServiceErrorResponse(c, err, "tenant.provision")
	}

	c.Location("/api/tenants/" + tenant.Slug)
	return utils.SuccessResponse(c, ProvisionResponse{
		ID:           tenant.ID,
		Slug:         tenant.Slug,
		DashboardURL: services.DashboardURL(tenant.Slug),
	}, fiber.StatusCreated)
}

// GetTenant handles GET /api/tenants/:slug
// @Summary Get a tenant
// @Description The resolved tenant with effective settings and feature flags
// @Tags Tenants
// @Produce json
// @Param slug path string true "Tenant slug"
// @Success 200 {object} services.TenantInfo
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /tenants/{slug} [get]
func (h *TenantHandler) GetTenant(c *fiber.Ctx) error {
	tc := middleware.TenantFrom(c)
	return utils.SuccessResponse(c, tc.Info(), fiber.StatusOK)
}

// SetActive handles PATCH /api/tenants/:slug/active
// @Summary Activate or deactivate a tenant
// @Tags Tenants
// @Accept json
// @Produce json
// @Security AdminKey
// @Param slug path string true "Tenant slug"
// @Param body body ActiveRequest true "New state"
// @Success 200 {object} models.Tenant
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /tenants/{slug}/active [patch]
func (h *TenantHandler) SetActive(c *fiber.Ctx) error {
	var req ActiveRequest
	if err := parseBody(c, &req); err != nil {
		return utils.ServiceErrorResponse(c, err, "tenant.active")
	}
	if _, err := utils.Validate(req); err != nil {
		return utils.ServiceErrorResponse(c, err, "tenant.active")
	}

	tenant, err := h.Registry.SetActive(c.UserContext(), c.Params("slug"), *req.Active)
	if err != nil {
		return utils.ServiceErrorResponse(c, err, "tenant.active")
	}
	return utils.SuccessResponse(c, tenant, fiber.StatusOK)
}

// SetSetting handles PUT /api/tenants/:slug/settings/:key
// @Summary Override a tenant setting
// @Tags Tenants
// @Accept json
// @Produce json
// @Security AdminKey
// @Param slug path string true "Tenant slug"
// @Param key path string true "Setting key"
// @Param body body SettingRequest true "Setting value"
// @Success 204
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /tenants/{slug}/settings/{key} [put]
func (h *TenantHandler) SetSetting(c *fiber.Ctx) error {
	var req SettingRequest
	if err := parseBody(c, &req); err != nil {
		return utils.ServiceErrorResponse(c, err, "tenant.setting")
	}
	if _, err := utils.Validate(req); err != nil {
		return utils.ServiceErrorResponse(c, err, "tenant.setting")
	}

	if err := h.Registry.SetSetting(c.UserContext(), c.Params("slug"), c.Params("key"), req.Value); err != nil {
		return utils.ServiceErrorResponse(c, err, "tenant.setting")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetFeature handles PUT /api/tenants/:slug/features/:feature
// @Summary Enable or disable a tenant feature
// @Tags Tenants
// @Accept json
// @Produce json
// @Security AdminKey
// @Param slug path string true "Tenant slug"
// @Param feature path string true "Feature" Enums(waste, energy, water, circular_economy)
// @Param body body FeatureRequest true "Flag value"
// @Success 204
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /tenants/{slug}/features/{feature} [put]
func (h *TenantHandler) SetFeature(c *fiber.Ctx) error {
	var req FeatureRequest
	if err := parseBody(c, &req); err != nil {
		return utils.ServiceErrorResponse(c, err, "tenant.feature")
	}
	if _, err := utils.Validate(req); err != nil {
		return utils.ServiceErrorResponse(c, err, "tenant.feature")
	}

	if err := h.Registry.SetFeature(c.UserContext(), c.Params("slug"), c.Params("feature"), *req.Enabled); err != nil {
		return utils.ServiceErrorResponse(c, err, "tenant.feature")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
