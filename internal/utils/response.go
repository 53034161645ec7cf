package utils

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/wastedash/internal/logger"
	"github.com/localnerve/wastedash/internal/types"
	"go.uber.org/zap"
)

// TenantPickerURL lists the tenants a lost client can choose from.
const TenantPickerURL = "/api/tenants"

// SuccessResponse sends a standard success response
func SuccessResponse(c *fiber.Ctx, data interface{}, status int) error {
	return c.Status(status).JSON(data)
}

func errorBody(c *fiber.Ctx, message string, status int, errorType string) fiber.Map {
	body := fiber.Map{
		"status":    status,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
	}
	if errorType != "" {
		body["type"] = errorType
	}
	return body
}

// ErrorResponse sends the standard error envelope
func ErrorResponse(c *fiber.Ctx, message string, status int, errorType string) error {
	return c.Status(status).JSON(errorBody(c, message, status, errorType))
}

// NotFoundResponse sends a 404 not found response
func NotFoundResponse(c *fiber.Ctx, message string) error {
	return ErrorResponse(c, message, fiber.StatusNotFound, "notFound")
}

// TenantNotFoundResponse sends the "client not found" 404 with a link back to the tenant picker.
func TenantNotFoundResponse(c *fiber.Ctx, slug string) error {
	body := errorBody(c, "Client '"+slug+"' not found", fiber.StatusNotFound, "tenant.notFound")
	body["picker"] = TenantPickerURL
	return c.Status(fiber.StatusNotFound).JSON(body)
}

// PartialResponse sends a 207 carrying the job result and the ids that failed.
func PartialResponse(c *fiber.Ctx, result interface{}, failedIDs []uint64) error {
	return c.Status(fiber.StatusMultiStatus).JSON(fiber.Map{
		"ok":        false,
		"status":    fiber.StatusMultiStatus,
		"message":   "Some rows could not be processed",
		"failedIds": failedIDs,
		"result":    result,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// ServiceErrorResponse maps a service error onto the error envelope. errorType names the
// failing operation and is used for unexpected errors.
func ServiceErrorResponse(c *fiber.Ctx, err error, errorType string) error {
	var ve *types.ValidationError
	var pf *types.PartialBatchFailure
	var ce *types.CustomError

	switch {
	case errors.As(err, &ve):
		return ErrorResponse(c, ve.Error(), fiber.StatusBadRequest, "validation")
	case errors.Is(err, types.ErrTenantNotFound):
		return TenantNotFoundResponse(c, c.Params("slug"))
	case errors.Is(err, types.ErrConflict):
		return ErrorResponse(c, err.Error(), fiber.StatusConflict, "conflict")
	case errors.Is(err, types.ErrNotFound):
		return NotFoundResponse(c, "Resource not found")
	case errors.As(err, &pf):
		return PartialResponse(c, nil, pf.FailedIDs)
	case errors.As(err, &ce):
		return ErrorResponse(c, ce.Message, ce.Code, ce.Type)
	}

	logger.FromContext(c.UserContext()).Error("Request failed",
		zap.String("operation", errorType),
		zap.String("url", c.OriginalURL()),
		zap.Error(err),
	)
	return ErrorResponse(c, "Internal server error", fiber.StatusInternalServerError, errorType)
}

// ErrorHandler is the fiber.Config ErrorHandler: fiber errors keep their code, everything
// else goes through ServiceErrorResponse.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		errorType := "unknown"
		if fe.Code == fiber.StatusNotFound {
			errorType = "notFound"
		}
		return ErrorResponse(c, fe.Message, fe.Code, errorType)
	}
	return ServiceErrorResponse(c, err, "unknown")
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Status    int    `json:"status"`
	Message   string `json:"message"`
	Ok        bool   `json:"ok"`
	Timestamp string `json:"timestamp"`
	URL       string `json:"url"`
	Type      string `json:"type,omitempty"`
	Picker    string `json:"picker,omitempty"`
}

// PartialResponseStruct defines the schema for 207 batch responses
type PartialResponseStruct struct {
	Status    int         `json:"status"`
	Message   string      `json:"message"`
	Ok        bool        `json:"ok"`
	FailedIDs []uint64    `json:"failedIds"`
	Result    interface{} `json:"result"`
	Timestamp string      `json:"timestamp"`
}
