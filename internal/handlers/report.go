package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/wastedash/internal/middleware"
	"github.com/localnerve/wastedash/internal/utils"
)

// ReportHandler serves aggregated figures for dashboards and reports
type ReportHandler struct {
	// Now is the clock used for default years. Nil means time.Now.
	Now func() time.Time
}

func (h *ReportHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// Summary handles GET /api/tenants/:slug/summary
// @Summary Aggregate a reporting window
// @Description Monthly totals and the window total. TRUE windows run October through September.
// @Tags Reports
// @Produce json
// @Param slug path string true "Tenant slug"
// @Param window query string false "Window kind" Enums(year, quarter, true_year, true_quarter)
// @Param year query int false "Year; defaults to the current (TRUE) year"
// @Param quarter query int false "Quarter 1-4 for quarter windows"
// @Success 200 {object} services.Summary
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /tenants/{slug}/summary [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	w, err := parseWindow(c, h.now())
	if err != nil {
		return utils.ServiceErrorResponse(c, err, "summary")
	}

	summary, err := middleware.TenantFrom(c).Summary(c.UserContext(), w)
	if err != nil {
		return utils.ServiceErrorResponse(c, err, "summary")
	}
	return utils.SuccessResponse(c, summary, fiber.StatusOK)
}

// Years handles GET /api/tenants/:slug/years
// @Summary List reporting years
// @Description Calendar and TRUE years that contain observations
// @Tags Reports
// @Produce json
// @Param slug path string true "Tenant slug"
// @Success 200 {object} services.ReportingYears
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /tenants/{slug}/years [get]
func (h *ReportHandler) Years(c *fiber.Ctx) error {
	years, err := middleware.TenantFrom(c).Years(c.UserContext())
	if err != nil {
		return utils.ServiceErrorResponse(c, err, "years")
	}
	return utils.SuccessResponse(c, years, fiber.StatusOK)
}

// Report handles GET /api/tenants/:slug/report
// @Summary Report payload
// @Description Tenant branding, settings, scoped observations and their totals for a report renderer
// @Tags Reports
// @Produce json
// @Param slug path string true "Tenant slug"
// @Param from query string false "Inclusive start date (YYYY-MM-DD)"
// @Param to query string false "Exclusive end date (YYYY-MM-DD)"
// @Success 200 {object} services.ReportData
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /tenants/{slug}/report [get]
func (h *ReportHandler) Report(c *fiber.Ctx) error {
	r, err := parseDateRange(c)
	if err != nil {
		return utils.ServiceErrorResponse(c, err, "report")
	}

	report, err := middleware.TenantFrom(c).Report(c.UserContext(), r)
	if err != nil {
		return utils.ServiceErrorResponse(c, err, "report")
	}
	return utils.SuccessResponse(c, report, fiber.StatusOK)
}
