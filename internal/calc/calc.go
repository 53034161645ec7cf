// calc.go
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

// Package calc derives the diversion rate and environmental impact estimates from raw
// waste quantities. Every function is pure and deterministic.
//
// Arithmetic runs on shopspring/decimal so that totals of two-decimal inputs are exact and
// rounding is half away from zero on the decimal value, not on its binary approximation.
package calc

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// FormulaVersion identifies the current diversion formula. Version 1 left pruning waste out
// of both numerator and denominator; version 2 counts it as diverted material.
const FormulaVersion = 2

// Impact conversion factors, per metric ton.
const (
	treesPerTonPaper   = 17
	treesPerTonPoda    = 2
	litersPerTonPaper  = 26000
	litersPerTonPoda   = 5000
	kwPerTonRecyclable = 500
	podaEnergyWeight   = "0.5"
)

// ErrInvalidQuantity is returned for negative or non-finite input.
var ErrInvalidQuantity = errors.New("calc: invalid quantity")

var (
	thousand = decimal.NewFromInt(1000)
	hundred  = decimal.NewFromInt(100)
)

// Quantities are the raw waste categories of one observation or an aggregate, in kg.
type Quantities struct {
	Organic    float64 `json:"organicWaste"`
	Inorganic  float64 `json:"inorganicWaste"`
	Recyclable float64 `json:"recyclableWaste"`
	Poda       float64 `json:"podaWaste"`
}

// Validate rejects negative and non-finite quantities.
func (q Quantities) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"organicWaste", q.Organic},
		{"inorganicWaste", q.Inorganic},
		{"recyclableWaste", q.Recyclable},
		{"podaWaste", q.Poda},
	} {
		if err := checkQuantity(f.name, f.value); err != nil {
			return err
		}
	}
	return nil
}

// Add returns the category-wise sum of q and o.
func (q Quantities) Add(o Quantities) Quantities {
	return Quantities{
		Organic:    sum(q.Organic, o.Organic),
		Inorganic:  sum(q.Inorganic, o.Inorganic),
		Recyclable: sum(q.Recyclable, o.Recyclable),
		Poda:       sum(q.Poda, o.Poda),
	}
}

// Total is the sum of all four categories. Input must be valid.
func Total(q Quantities) float64 {
	return totalDec(q).InexactFloat64()
}

// DiversionRate is the share of total waste diverted from landfill (recyclable plus poda),
// as a percentage rounded to two decimals. It is 0 only when every category is 0 and 100
// when nothing is landfill-bound. Input must be valid.
func DiversionRate(q Quantities) float64 {
	total := totalDec(q)
	if total.IsZero() {
		return 0
	}
	diverted := dec(q.Recyclable).Add(dec(q.Poda))
	return diverted.Div(total).Mul(hundred).Round(2).InexactFloat64()
}

// LegacyDiversionRate is the version 1 formula, which ignored pruning waste entirely.
// It is kept to report how far stored values drifted before migration.
func LegacyDiversionRate(q Quantities) float64 {
	total := dec(q.Organic).Add(dec(q.Inorganic)).Add(dec(q.Recyclable))
	if total.IsZero() {
		return 0
	}
	return dec(q.Recyclable).Div(total).Mul(hundred).Round(2).InexactFloat64()
}

// Breakdown is the optional split of the recyclable quantity by material, in kg.
type Breakdown map[string]float64

var paperKeys = map[string]struct{}{
	"paper":           {},
	"cardboard":       {},
	"paper_cardboard": {},
	"papel":           {},
	"carton":          {},
	"cartón":          {},
	"papel_carton":    {},
}

// PaperCardboard returns the paper and cardboard share of the recyclable quantity.
// Without a breakdown the whole recyclable quantity is used.
func (b Breakdown) PaperCardboard(recyclable float64) float64 {
	if len(b) == 0 {
		return recyclable
	}
	total := decimal.Zero
	for k, v := range b {
		if _, ok := paperKeys[strings.ToLower(strings.TrimSpace(k))]; ok && v > 0 && !math.IsInf(v, 0) {
			total = total.Add(dec(v))
		}
	}
	return total.InexactFloat64()
}

// Measured holds impact values recorded directly by the tenant. Nil means not measured.
type Measured struct {
	TreesSaved  *float64
	WaterSaved  *float64
	EnergySaved *float64
}

// Impact is the resolved environmental impact of an observation.
type Impact struct {
	TreesSaved     float64 `json:"treesSaved"`
	WaterSaved     float64 `json:"waterSaved"`
	EnergySaved    float64 `json:"energySaved"`
	TreesMeasured  bool    `json:"treesMeasured"`
	WaterMeasured  bool    `json:"waterMeasured"`
	EnergyMeasured bool    `json:"energyMeasured"`
}

// EstimateImpact computes the fallback impact estimates. Input must be valid.
func EstimateImpact(q Quantities, paperCardboardKg float64) Impact {
	paperTons := dec(paperCardboardKg).Div(thousand)
	podaTons := dec(q.Poda).Div(thousand)

	trees := paperTons.Mul(decimal.NewFromInt(treesPerTonPaper)).
		Add(podaTons.Mul(decimal.NewFromInt(treesPerTonPoda)))
	water := paperTons.Mul(decimal.NewFromInt(litersPerTonPaper)).
		Add(podaTons.Mul(decimal.NewFromInt(litersPerTonPoda)))

	effective := dec(q.Recyclable).Add(dec(q.Poda).Mul(decimal.RequireFromString(podaEnergyWeight)))
	energy := effective.Div(thousand).Mul(decimal.NewFromInt(kwPerTonRecyclable))

	return Impact{
		TreesSaved:  trees.Round(0).InexactFloat64(),
		WaterSaved:  water.Round(0).InexactFloat64(),
		EnergySaved: energy.Round(0).InexactFloat64(),
	}
}

// ResolveImpact prefers measured values and estimates the rest.
func ResolveImpact(q Quantities, b Breakdown, m Measured) Impact {
	est := EstimateImpact(q, b.PaperCardboard(q.Recyclable))
	if m.TreesSaved != nil {
		est.TreesSaved, est.TreesMeasured = *m.TreesSaved, true
	}
	if m.WaterSaved != nil {
		est.WaterSaved, est.WaterMeasured = *m.WaterSaved, true
	}
	if m.EnergySaved != nil {
		est.EnergySaved, est.EnergyMeasured = *m.EnergySaved, true
	}
	return est
}

// Derived is everything the server computes for an observation.
type Derived struct {
	TotalWaste float64
	Deviation  float64
	Impact     Impact
}

// Derive validates q and the measured values and computes all derived fields.
func Derive(q Quantities, b Breakdown, m Measured) (Derived, error) {
	if err := q.Validate(); err != nil {
		return Derived{}, err
	}
	for name, v := range map[string]*float64{"treesSaved": m.TreesSaved, "waterSaved": m.WaterSaved, "energySaved": m.EnergySaved} {
		if v != nil {
			if err := checkQuantity(name, *v); err != nil {
				return Derived{}, err
			}
		}
	}
	return Derived{
		TotalWaste: Total(q),
		Deviation:  DiversionRate(q),
		Impact:     ResolveImpact(q, b, m),
	}, nil
}

func checkQuantity(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s is not a finite number", ErrInvalidQuantity, name)
	}
	if v < 0 {
		return fmt.Errorf("%w: %s must not be negative", ErrInvalidQuantity, name)
	}
	return nil
}

func totalDec(q Quantities) decimal.Decimal {
	return dec(q.Organic).Add(dec(q.Inorganic)).Add(dec(q.Recyclable)).Add(dec(q.Poda))
}

func sum(a, b float64) float64 {
	return dec(a).Add(dec(b)).InexactFloat64()
}

func dec(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}
