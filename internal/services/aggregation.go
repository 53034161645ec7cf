// aggregation.go
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

package services

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/localnerve/wastedash/internal/calc"
	"github.com/localnerve/wastedash/internal/models"
	"github.com/localnerve/wastedash/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// WindowKind names a reporting window shape.
type WindowKind string

const (
	WindowYear        WindowKind = "year"
	WindowQuarter     WindowKind = "quarter"
	WindowTrueYear    WindowKind = "true_year"
	WindowTrueQuarter WindowKind = "true_quarter"
)

const (
	minYear = 1900
	maxYear = 2200
	// The TRUE year ends in September; October starts the next one.
	trueYearStartMonth = time.October
)

// Window is a half-open [Start, End) reporting interval in UTC.
type Window struct {
	Kind    WindowKind `json:"kind"`
	Year    int        `json:"year"`
	Quarter int        `json:"quarter,omitempty"`
	Start   time.Time  `json:"start"`
	End     time.Time  `json:"end"`
}

func monthStart(year int, month time.Month) time.Time {
	// time.Date normalizes months outside 1..12 into the adjacent year.
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}

func checkYear(year int) error {
	if year < minYear || year > maxYear {
		return types.NewValidationError("year", "must be between %d and %d", minYear, maxYear)
	}
	return nil
}

func checkQuarter(quarter int) error {
	if quarter < 1 || quarter > 4 {
		return types.NewValidationError("quarter", "must be between 1 and 4")
	}
	return nil
}

// YearWindow is January through December of year.
func YearWindow(year int) Window {
	start := monthStart(year, time.January)
	return Window{Kind: WindowYear, Year: year, Start: start, End: start.AddDate(1, 0, 0)}
}

// QuarterWindow is calendar quarter q of year.
func QuarterWindow(year, quarter int) (Window, error) {
	if err := checkQuarter(quarter); err != nil {
		return Window{}, err
	}
	start := monthStart(year, time.Month(1+3*(quarter-1)))
	return Window{Kind: WindowQuarter, Year: year, Quarter: quarter, Start: start, End: start.AddDate(0, 3, 0)}, nil
}

// TrueYearWindow is October of year-1 through September of year.
func TrueYearWindow(year int) Window {
	start := monthStart(year-1, trueYearStartMonth)
	return Window{Kind: WindowTrueYear, Year: year, Start: start, End: start.AddDate(1, 0, 0)}
}

// TrueQuarterWindow is quarter q of the TRUE year. Q1 is October through December of year-1.
func TrueQuarterWindow(year, quarter int) (Window, error) {
	if err := checkQuarter(quarter); err != nil {
		return Window{}, err
	}
	start := monthStart(year-1, trueYearStartMonth+time.Month(3*(quarter-1)))
	return Window{Kind: WindowTrueQuarter, Year: year, Quarter: quarter, Start: start, End: start.AddDate(0, 3, 0)}, nil
}

// ParseWindow builds a window from its kind name, year and (for quarter kinds) quarter.
func ParseWindow(kind string, year, quarter int) (Window, error) {
	if err := checkYear(year); err != nil {
		return Window{}, err
	}
	switch WindowKind(kind) {
	case WindowYear, "":
		return YearWindow(year), nil
	case WindowQuarter:
		return QuarterWindow(year, quarter)
	case WindowTrueYear:
		return TrueYearWindow(year), nil
	case WindowTrueQuarter:
		return TrueQuarterWindow(year, quarter)
	}
	return Window{}, types.NewValidationError("window", "unknown window '%s'", kind)
}

// TrueYearOf returns the TRUE year containing t.
func TrueYearOf(t time.Time) int {
	t = t.UTC()
	if t.Month() >= trueYearStartMonth {
		return t.Year() + 1
	}
	return t.Year()
}

// Range returns the window as a DateRange.
func (w Window) Range() *DateRange {
	return &DateRange{From: w.Start, To: w.End}
}

// Months returns the first instant of every month in the window, ascending.
func (w Window) Months() []time.Time {
	var months []time.Time
	for m := w.Start; m.Before(w.End); m = m.AddDate(0, 1, 0) {
		months = append(months, m)
	}
	return months
}

// Label is a short human name for the window.
func (w Window) Label() string {
	switch w.Kind {
	case WindowQuarter:
		return fmt.Sprintf("%d-Q%d", w.Year, w.Quarter)
	case WindowTrueYear:
		return fmt.Sprintf("TRUE %d", w.Year)
	case WindowTrueQuarter:
		return fmt.Sprintf("TRUE %d-Q%d", w.Year, w.Quarter)
	}
	return fmt.Sprintf("%d", w.Year)
}

// Totals are the summed quantities, derived diversion and impact sums of a set of observations.
type Totals struct {
	Observations    int     `json:"observations"`
	OrganicWaste    float64 `json:"organicWaste"`
	InorganicWaste  float64 `json:"inorganicWaste"`
	RecyclableWaste float64 `json:"recyclableWaste"`
	PodaWaste       float64 `json:"podaWaste"`
	TotalWaste      float64 `json:"totalWaste"`
	Deviation       float64 `json:"deviation"`
	TreesSaved      float64 `json:"treesSaved"`
	WaterSaved      float64 `json:"waterSaved"`
	EnergySaved     float64 `json:"energySaved"`
}

// MonthSummary is the Totals of one calendar month.
type MonthSummary struct {
	Month time.Time `json:"month"`
	Label string    `json:"label"`
	Totals
}

// Summary is the aggregation of one window.
type Summary struct {
	Window Window         `json:"window"`
	Label  string         `json:"label"`
	Months []MonthSummary `json:"months"`
	Totals Totals         `json:"totals"`
}

// accumulator sums in decimal so month and window totals agree exactly.
type accumulator struct {
	count                int
	q                    calc.Quantities
	trees, water, energy decimal.Decimal
	total                decimal.Decimal
}

func (a *accumulator) addObservation(obs *models.WasteObservation) {
	a.count++
	a.q = a.q.Add(QuantitiesOf(obs))
	a.trees = a.trees.Add(decimalOf(obs.TreesSaved))
	a.water = a.water.Add(decimalOf(obs.WaterSaved))
	a.energy = a.energy.Add(decimalOf(obs.EnergySaved))
}

func (a *accumulator) addMonth(m Totals) {
	a.count += m.Observations
	a.q = a.q.Add(calc.Quantities{Organic: m.OrganicWaste, Inorganic: m.InorganicWaste, Recyclable: m.RecyclableWaste, Poda: m.PodaWaste})
	a.total = a.total.Add(decimal.NewFromFloat(m.TotalWaste))
	a.trees = a.trees.Add(decimal.NewFromFloat(m.TreesSaved))
	a.water = a.water.Add(decimal.NewFromFloat(m.WaterSaved))
	a.energy = a.energy.Add(decimal.NewFromFloat(m.EnergySaved))
}

// totals derives diversion from the summed categories. When sumOfTotals is set the total
// is the accumulated month totals rather than the category sum.
func (a *accumulator) totals(sumOfTotals bool) Totals {
	total := calc.Total(a.q)
	if sumOfTotals {
		total = a.total.InexactFloat64()
	}
	return Totals{
		Observations:    a.count,
		OrganicWaste:    a.q.Organic,
		InorganicWaste:  a.q.Inorganic,
		RecyclableWaste: a.q.Recyclable,
		PodaWaste:       a.q.Poda,
		TotalWaste:      total,
		Deviation:       calc.DiversionRate(a.q),
		TreesSaved:      a.trees.InexactFloat64(),
		WaterSaved:      a.water.InexactFloat64(),
		EnergySaved:     a.energy.InexactFloat64(),
	}
}

func decimalOf(f *float64) decimal.Decimal {
	if f == nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(*f)
}

func monthKey(t time.Time) time.Time {
	t = t.UTC()
	return monthStart(t.Year(), t.Month())
}

// SummarizeObservations aggregates already-scoped observations into a window summary.
// Observations outside the window are ignored.
func SummarizeObservations(w Window, observations []models.WasteObservation) Summary {
	summary := Summary{Window: w, Label: w.Label(), Months: []MonthSummary{}}

	buckets := make(map[time.Time]*accumulator)
	for i := range observations {
		obs := &observations[i]
		if !w.Range().Contains(obs.Date) {
			continue
		}
		key := monthKey(obs.Date)
		acc, ok := buckets[key]
		if !ok {
			acc = &accumulator{}
			buckets[key] = acc
		}
		acc.addObservation(obs)
	}
	if len(buckets) == 0 {
		return summary
	}

	var window accumulator
	for _, month := range w.Months() {
		acc, ok := buckets[month]
		if !ok {
			acc = &accumulator{}
		}
		m := MonthSummary{Month: month, Label: month.Format("2006-01"), Totals: acc.totals(false)}
		summary.Months = append(summary.Months, m)
		window.addMonth(m.Totals)
	}
	summary.Totals = window.totals(true)

	return summary
}

// Summarize aggregates the tenant's observations in w by month. The month list is gap-free
// when the window has data and empty when it has none; zero data yields zero totals.
func Summarize(ctx context.Context, db *gorm.DB, tenantID uint64, w Window) (*Summary, error) {
	observations, err := ListObservations(ctx, db, tenantID, w.Range())
	if err != nil {
		return nil, err
	}
	summary := SummarizeObservations(w, observations)
	return &summary, nil
}

// ReportingYears lists the calendar and TRUE years that contain observations, ascending.
type ReportingYears struct {
	Calendar []int `json:"calendar"`
	True     []int `json:"true"`
}

// ListReportingYears returns the years the tenant has observations in.
func ListReportingYears(ctx context.Context, db *gorm.DB, tenantID uint64) (*ReportingYears, error) {
	if err := requireTenant(tenantID); err != nil {
		return nil, err
	}

	var dates []time.Time
	if err := tenantScope(ctx, db, tenantID).Model(&models.WasteObservation{}).
		Order("date ASC").Pluck("date", &dates).Error; err != nil {
		return nil, err
	}

	years := &ReportingYears{Calendar: []int{}, True: []int{}}
	for _, d := range dates {
		if y := d.UTC().Year(); !slices.Contains(years.Calendar, y) {
			years.Calendar = append(years.Calendar, y)
		}
		if y := TrueYearOf(d); !slices.Contains(years.True, y) {
			years.True = append(years.True, y)
		}
	}
	return years, nil
}
