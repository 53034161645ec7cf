// common.go
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
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/wastedash/internal/services"
	"github.com/localnerve/wastedash/internal/types"
)

// parseDateRange reads the optional from/to query parameters into a half-open range.
// It returns nil when neither is present.
func parseDateRange(c *fiber.Ctx) (*services.DateRange, error) {
	fromStr := strings.TrimSpace(c.Query("from"))
	toStr := strings.TrimSpace(c.Query("to"))
	if fromStr == "" && toStr == "" {
		return nil, nil
	}

	var from, to time.Time
	var err error
	if fromStr != "" {
		if from, err = services.ParseObservationDate(fromStr); err != nil {
			return nil, types.NewValidationError("from", "'%s' is not a valid date", fromStr)
		}
	}
	if toStr != "" {
		if to, err = services.ParseObservationDate(toStr); err != nil {
			return nil, types.NewValidationError("to", "'%s' is not a valid date", toStr)
		}
	}
	return services.NewDateRange(from, to)
}

// parseID reads a positive integer route parameter.
func parseID(c *fiber.Ctx, name string) (uint64, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, types.NewValidationError(name, "'%s' is not a valid id", raw)
	}
	return id, nil
}

// parseWindow reads window, year and quarter query parameters. The year defaults to the
// current TRUE year for TRUE windows and the current calendar year otherwise.
func parseWindow(c *fiber.Ctx, now time.Time) (services.Window, error) {
	kind := strings.TrimSpace(c.Query("window"))
	year := now.UTC().Year()
	if kind == string(services.WindowTrueYear) || kind == string(services.WindowTrueQuarter) {
		year = services.TrueYearOf(now)
	}

	if raw := c.Query("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil {
			return services.Window{}, types.NewValidationError("year", "'%s' is not a number", raw)
		}
		year = y
	}

	quarter := 0
	if raw := c.Query("quarter"); raw != "" {
		q, err := strconv.Atoi(raw)
		if err != nil {
			return services.Window{}, types.NewValidationError("quarter", "'%s' is not a number", raw)
		}
		quarter = q
	}

	return services.ParseWindow(kind, year, quarter)
}

// parseBody decodes the JSON request body into target.
func parseBody(c *fiber.Ctx, target interface{}) error {
	if len(c.Body()) == 0 {
		return types.NewValidationError("", "request body is required")
	}
	if err := c.BodyParser(target); err != nil {
		return types.NewValidationError("", "invalid request body: %v", err)
	}
	return nil
}
