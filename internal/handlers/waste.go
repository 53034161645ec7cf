package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/wastedash/internal/middleware"
	"github.com/localnerve/wastedash/internal/models"
	"github.com/localnerve/wastedash/internal/services"
	"github.com/localnerve/wastedash/internal/utils"
)

// WasteHandler handles waste observation routes. Every operation goes through the
// resolved tenant context.
type WasteHandler struct{}

// ListObservations handles GET /api/tenants/:slug/waste
// @Summary List waste observations
// @Description Observations in date order, optionally limited to [from, to)
// @Tags Waste
// @Produce json
// @Param slug path string true "Tenant slug"
// @Param from query string false "Inclusive start date (YYYY-MM-DD)"
// @Param to query string false "Exclusive end date (YYYY-MM-DD)"
// @Success 200 {array} models.WasteObservation
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /tenants/{slug}/waste [get]
func (h *WasteHandler) ListObservations(c *fiber.Ctx) error {
	r, err := parseDateRange(c)
	if err != nil {
		return utils.ServiceErrorResponse(c, err, "waste.list")
	}

	observations, err := middleware.TenantFrom(c).Observations(c.UserContext(), r)
	if err != nil {
		return utils.ServiceErrorResponse(c, err, "waste.list")
	}
	if observations == nil {
		observations = []models.WasteObservation{}
	}
	return utils.SuccessResponse(c, observations, fiber.StatusOK)
}

// CreateObservation handles POST /api/tenants/:slug/waste
// @Summary Record a waste observation
// @Description Total, diversion and unmeasured impacts are derived server-side; supplied values are ignored
// @Tags Waste
// @Accept json
// @Produce json
// @Param slug path string true "Tenant slug"
// @Param body body services.ObservationInput true "Observation"
// @Success 201 {object} models.WasteObservation
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /tenants/{slug}/waste [post]
func (h *WasteHandler) CreateObservation(c *fiber.Ctx) error {
	var in services.ObservationInput
	if err := parseBody(c, &in); err != nil {
		return utils.ServiceErrorResponse(c, err, "waste.insert")
	}

	obs, err := middleware.TenantFrom(c).Insert(c.UserContext(), in)
	if err != nil {
		return utils.ServiceErrorResponse(c, err, "waste.insert")
	}
	return utils.SuccessResponse(c, obs, fiber.StatusCreated)
}

// GetObservation handles GET /api/tenants/:slug/waste/:id
// @Summary Get a waste observation
// @Tags Waste
// @Produce json
// @Param slug path string true "Tenant slug"
// @Param id path int true "Observation id"
// @Success 200 {object} models.WasteObservation
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /tenants/{slug}/waste/{id} [get]
func (h *WasteHandler) GetObservation(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.ServiceErrorResponse(c, err, "waste.get")
	}

	obs, err := middleware.TenantFrom(c).Observation(c.UserContext(), id)
	if err != nil {
		return utils.ServiceErrorResponse(c, err, "waste.get")
	}
	return utils.SuccessResponse(c, obs, fiber.StatusOK)
}

// UpdateObservation handles PATCH /api/tenants/:slug/waste/:id
// @Summary Correct a waste observation
// @Description Applies the supplied fields and re-derives every derived value
// @Tags Waste
// @Accept json
// @Produce json
// @Param slug path string true "Tenant slug"
// @Param id path int true "Observation id"
// @Param body body services.ObservationPatch true "Fields to change"
// @Success 200 {object} models.WasteObservation
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /tenants/{slug}/waste/{id} [patch]
func (h *WasteHandler) UpdateObservation(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.ServiceErrorResponse(c, err, "waste.update")
	}

	var patch services.ObservationPatch
	if err := parseBody(c, &patch); err != nil {
		return utils.ServiceErrorResponse(c, err, "waste.update")
	}

	obs, err := middleware.TenantFrom(c).Update(c.UserContext(), id, patch)
	if err != nil {
		return utils.ServiceErrorResponse(c, err, "waste.update")
	}
	return utils.SuccessResponse(c, obs, fiber.StatusOK)
}

// RegisterDocument handles POST /api/tenants/:slug/documents
// @Summary Register a source document
// @Description Records an uploaded file so observations can reference it
// @Tags Waste
// @Accept json
// @Produce json
// @Param slug path string true "Tenant slug"
// @Param body body services.DocumentInput true "Document"
// @Success 201 {object} models.SourceDocument
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /tenants/{slug}/documents [post]
func (h *WasteHandler) RegisterDocument(c *fiber.Ctx) error {
	var in services.DocumentInput
	if err := parseBody(c, &in); err != nil {
		return utils.ServiceErrorResponse(c, err, "document.register")
	}

	doc, err := middleware.TenantFrom(c).RegisterDocument(c.UserContext(), in)
	if err != nil {
		return utils.ServiceErrorResponse(c, err, "document.register")
	}
	return utils.SuccessResponse(c, doc, fiber.StatusCreated)
}
