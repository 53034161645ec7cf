package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/wastedash/internal/middleware"
	"github.com/localnerve/wastedash/internal/services"
	"github.com/localnerve/wastedash/internal/types"
	"github.com/localnerve/wastedash/internal/utils"
)

// RecalcHandler runs the recalculation job for one tenant
type RecalcHandler struct {
	BatchSize int
}

// RecalcRequest selects the rows to recalculate. All fields are optional.
type RecalcRequest struct {
	Window    string `json:"window,omitempty" validate:"omitempty,oneof=year quarter true_year true_quarter"`
	Year      int    `json:"year,omitempty"`
	Quarter   int    `json:"quarter,omitempty"`
	AfterID   uint64 `json:"afterId,omitempty"`
	BatchSize int    `json:"batchSize,omitempty" validate:"omitempty,min=1,max=5000"`
	DryRun    bool   `json:"dryRun,omitempty"`
}

// Recalculate handles POST /api/tenants/:slug/recalculate
// @Summary Recalculate derived values
// @Description Re-derives total, diversion and unmeasured impacts with the current formula. Rows that fail are reported with 207.
// @Tags Admin
// @Accept json
// @Produce json
// @Security AdminKey
// @Param slug path string true "Tenant slug"
// @Param body body RecalcRequest false "Run options"
// @Success 200 {object} services.RecalcResult
// @Success 207 {object} utils.PartialResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /tenants/{slug}/recalculate [post]
func (h *RecalcHandler) Recalculate(c *fiber.Ctx) error {
	var req RecalcRequest
	if len(c.Body()) > 0 {
		if err := parseBody(c, &req); err != nil {
			return utils.ServiceErrorResponse(c, err, "recalculate")
		}
	}
	if _, err := utils.Validate(req); err != nil {
		return utils.ServiceErrorResponse(c, err, "recalculate")
	}

	opts := services.RecalcOptions{
		AfterID:   req.AfterID,
		BatchSize: req.BatchSize,
		DryRun:    req.DryRun,
	}
	if opts.BatchSize == 0 {
		opts.BatchSize = h.BatchSize
	}
	if req.Window != "" {
		w, err := services.ParseWindow(req.Window, req.Year, req.Quarter)
		if err != nil {
			return utils.ServiceErrorResponse(c, err, "recalculate")
		}
		opts.Window = &w
	}

	result, err := middleware.TenantFrom(c).Recalculate(c.UserContext(), opts)
	if err != nil {
		var pf *types.PartialBatchFailure
		if errors.As(err, &pf) {
			return utils.PartialResponse(c, result, pf.FailedIDs)
		}
		return utils.ServiceErrorResponse(c, err, "recalculate")
	}
	return utils.SuccessResponse(c, result, fiber.StatusOK)
}
