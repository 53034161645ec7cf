// waste_store.go
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
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/localnerve/wastedash/internal/calc"
	"github.com/localnerve/wastedash/internal/logger"
	"github.com/localnerve/wastedash/internal/models"
	"github.com/localnerve/wastedash/internal/types"
	"github.com/localnerve/wastedash/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/hints"
)

// Accepted observation date layouts. Dates without a zone are UTC.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01",
}

// ParseObservationDate parses a date in any accepted layout and returns it in UTC.
func ParseObservationDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, types.NewValidationError("date", "is required")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, types.NewValidationError("date", "'%s' is not a valid date", s)
}

// DateRange is a half-open [From, To) interval. A zero bound is open.
type DateRange struct {
	From time.Time
	To   time.Time
}

// NewDateRange builds a range, rejecting To before From.
func NewDateRange(from, to time.Time) (*DateRange, error) {
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return nil, types.NewValidationError("to", "must not be before from")
	}
	return &DateRange{From: from.UTC(), To: to.UTC()}, nil
}

// Contains reports whether t falls inside the range.
func (r *DateRange) Contains(t time.Time) bool {
	if r == nil {
		return true
	}
	if !r.From.IsZero() && t.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && !t.Before(r.To) {
		return false
	}
	return true
}

func (r *DateRange) apply(query *gorm.DB) *gorm.DB {
	if r == nil {
		return query
	}
	if !r.From.IsZero() {
		query = query.Where("date >= ?", r.From)
	}
	if !r.To.IsZero() {
		query = query.Where("date < ?", r.To)
	}
	return query
}

// ObservationInput is a new waste observation as received from a caller.
// TotalWaste and Deviation are accepted for compatibility and ignored.
type ObservationInput struct {
	Date            string             `json:"date"`
	DocumentID      *uint64            `json:"documentId,omitempty"`
	OrganicWaste    *types.FlexFloat64 `json:"organicWaste"`
	InorganicWaste  *types.FlexFloat64 `json:"inorganicWaste"`
	RecyclableWaste *types.FlexFloat64 `json:"recyclableWaste"`
	PodaWaste       *types.FlexFloat64 `json:"podaWaste"`
	TreesSaved      *types.FlexFloat64 `json:"treesSaved,omitempty"`
	WaterSaved      *types.FlexFloat64 `json:"waterSaved,omitempty"`
	EnergySaved     *types.FlexFloat64 `json:"energySaved,omitempty"`
	RawData         map[string]any     `json:"rawData,omitempty"`
	Notes           *string            `json:"notes,omitempty"`
	TotalWaste      *types.FlexFloat64 `json:"totalWaste,omitempty"`
	Deviation       *types.FlexFloat64 `json:"deviation,omitempty"`
}

// ObservationPatch changes some fields of an observation. Nil fields are left alone.
// Supplying an impact value marks it measured. Derived values are ignored.
type ObservationPatch struct {
	Date            *string            `json:"date,omitempty"`
	DocumentID      *uint64            `json:"documentId,omitempty"`
	OrganicWaste    *types.FlexFloat64 `json:"organicWaste,omitempty"`
	InorganicWaste  *types.FlexFloat64 `json:"inorganicWaste,omitempty"`
	RecyclableWaste *types.FlexFloat64 `json:"recyclableWaste,omitempty"`
	PodaWaste       *types.FlexFloat64 `json:"podaWaste,omitempty"`
	TreesSaved      *types.FlexFloat64 `json:"treesSaved,omitempty"`
	WaterSaved      *types.FlexFloat64 `json:"waterSaved,omitempty"`
	EnergySaved     *types.FlexFloat64 `json:"energySaved,omitempty"`
	RawData         map[string]any     `json:"rawData,omitempty"`
	Notes           *string            `json:"notes,omitempty"`
	TotalWaste      *types.FlexFloat64 `json:"totalWaste,omitempty"`
	Deviation       *types.FlexFloat64 `json:"deviation,omitempty"`
}

// rawDetail is the part of RawData the calculator reads.
type rawDetail struct {
	RecyclableBreakdown calc.Breakdown `json:"recyclableBreakdown"`
}

func requireTenant(tenantID uint64) error {
	if tenantID == 0 {
		return types.ErrTenantRequired
	}
	return nil
}

// tenantScope restricts a query to one tenant and tags the SQL with the tenant id.
func tenantScope(ctx context.Context, db *gorm.DB, tenantID uint64) *gorm.DB {
	return db.WithContext(ctx).
		Session(&gorm.Session{Logger: db.Logger.LogMode(gormlogger.Silent)}).
		Clauses(hints.CommentBefore("select", fmt.Sprintf("tenant_id=%d", tenantID))).
		Where("tenant_id = ?", tenantID)
}

func quantity(field string, f *types.FlexFloat64) (float64, error) {
	if f == nil {
		return 0, nil
	}
	v := f.Float64()
	if err := (calc.Quantities{Organic: v}).Validate(); err != nil {
		return 0, types.NewValidationError(field, "must be a finite, non-negative number")
	}
	return v, nil
}

func optionalQuantity(field string, f *types.FlexFloat64) (*float64, error) {
	if f == nil {
		return nil, nil
	}
	v, err := quantity(field, f)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (in ObservationInput) toModel(tenantID uint64) (*models.WasteObservation, error) {
	date, err := ParseObservationDate(in.Date)
	if err != nil {
		return nil, err
	}

	obs := &models.WasteObservation{
		TenantID:   tenantID,
		DocumentID: in.DocumentID,
		Date:       date,
		Notes:      in.Notes,
	}

	if obs.OrganicWaste, err = quantity("organicWaste", in.OrganicWaste); err != nil {
		return nil, err
	}
	if obs.InorganicWaste, err = quantity("inorganicWaste", in.InorganicWaste); err != nil {
		return nil, err
	}
	if obs.RecyclableWaste, err = quantity("recyclableWaste", in.RecyclableWaste); err != nil {
		return nil, err
	}
	poda, err := quantity("podaWaste", in.PodaWaste)
	if err != nil {
		return nil, err
	}
	obs.PodaWaste = &poda

	if err := setMeasured(obs, in.TreesSaved, in.WaterSaved, in.EnergySaved); err != nil {
		return nil, err
	}

	if in.RawData != nil {
		if obs.RawData, err = models.NewJSON(in.RawData); err != nil {
			return nil, types.NewValidationError("rawData", "%v", err)
		}
	}

	return obs, nil
}

func (p ObservationPatch) apply(obs *models.WasteObservation) error {
	var err error
	if p.Date != nil {
		if obs.Date, err = ParseObservationDate(*p.Date); err != nil {
			return err
		}
	}
	if p.DocumentID != nil {
		obs.DocumentID = p.DocumentID
	}
	if p.OrganicWaste != nil {
		if obs.OrganicWaste, err = quantity("organicWaste", p.OrganicWaste); err != nil {
			return err
		}
	}
	if p.InorganicWaste != nil {
		if obs.InorganicWaste, err = quantity("inorganicWaste", p.InorganicWaste); err != nil {
			return err
		}
	}
	if p.RecyclableWaste != nil {
		if obs.RecyclableWaste, err = quantity("recyclableWaste", p.RecyclableWaste); err != nil {
			return err
		}
	}
	if p.PodaWaste != nil {
		if obs.PodaWaste, err = optionalQuantity("podaWaste", p.PodaWaste); err != nil {
			return err
		}
	}
	if err := setMeasured(obs, p.TreesSaved, p.WaterSaved, p.EnergySaved); err != nil {
		return err
	}
	if p.RawData != nil {
		if obs.RawData, err = models.NewJSON(p.RawData); err != nil {
			return types.NewValidationError("rawData", "%v", err)
		}
	}
	if p.Notes != nil {
		obs.Notes = p.Notes
	}
	return nil
}

func setMeasured(obs *models.WasteObservation, trees, water, energy *types.FlexFloat64) error {
	if v, err := optionalQuantity("treesSaved", trees); err != nil {
		return err
	} else if v != nil {
		obs.TreesSaved, obs.TreesSavedMeasured = v, true
	}
	if v, err := optionalQuantity("waterSaved", water); err != nil {
		return err
	} else if v != nil {
		obs.WaterSaved, obs.WaterSavedMeasured = v, true
	}
	if v, err := optionalQuantity("energySaved", energy); err != nil {
		return err
	} else if v != nil {
		obs.EnergySaved, obs.EnergySavedMeasured = v, true
	}
	return nil
}

// QuantitiesOf reads the raw quantities of an observation.
func QuantitiesOf(obs *models.WasteObservation) calc.Quantities {
	return calc.Quantities{
		Organic:    obs.OrganicWaste,
		Inorganic:  obs.InorganicWaste,
		Recyclable: obs.RecyclableWaste,
		Poda:       obs.Poda(),
	}
}

func breakdownOf(raw models.JSON) (calc.Breakdown, error) {
	var detail rawDetail
	if err := raw.Decode(&detail); err != nil {
		return nil, types.NewValidationError("rawData.recyclableBreakdown", "must map material names to numbers")
	}
	return detail.RecyclableBreakdown, nil
}

// deriveObservation recomputes every derived field from the raw quantities.
// Measured impact values are kept.
func deriveObservation(obs *models.WasteObservation) error {
	breakdown, err := breakdownOf(obs.RawData)
	if err != nil {
		return err
	}

	var measured calc.Measured
	if obs.TreesSavedMeasured {
		measured.TreesSaved = obs.TreesSaved
	}
	if obs.WaterSavedMeasured {
		measured.WaterSaved = obs.WaterSaved
	}
	if obs.EnergySavedMeasured {
		measured.EnergySaved = obs.EnergySaved
	}

	derived, err := calc.Derive(QuantitiesOf(obs), breakdown, measured)
	if err != nil {
		return types.NewValidationError("", "%v", err)
	}

	obs.TotalWaste = derived.TotalWaste
	obs.Deviation = derived.Deviation
	trees, water, energy := derived.Impact.TreesSaved, derived.Impact.WaterSaved, derived.Impact.EnergySaved
	obs.TreesSaved, obs.WaterSaved, obs.EnergySaved = &trees, &water, &energy
	return nil
}

func checkDocument(ctx context.Context, db *gorm.DB, tenantID uint64, documentID *uint64) error {
	if documentID == nil {
		return nil
	}
	var count int64
	if err := tenantScope(ctx, db, tenantID).Model(&models.SourceDocument{}).
		Where("id = ?", *documentID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return types.NewValidationError("documentId", "document %d does not exist", *documentID)
	}
	return nil
}

// InsertObservation validates input, derives totals, diversion and impacts, and stores
// the observation for tenantID.
func InsertObservation(ctx context.Context, db *gorm.DB, tenantID uint64, in ObservationInput) (*models.WasteObservation, error) {
	if err := requireTenant(tenantID); err != nil {
		return nil, err
	}

	obs, err := in.toModel(tenantID)
	if err != nil {
		return nil, err
	}
	if err := deriveObservation(obs); err != nil {
		return nil, err
	}
	if err := checkDocument(ctx, db, tenantID, obs.DocumentID); err != nil {
		return nil, err
	}

	if err := db.WithContext(ctx).Omit(clause.Associations).Create(obs).Error; err != nil {
		return nil, fmt.Errorf("insert observation: %w", err)
	}

	observationWriteCounter.WithLabelValues("insert").Inc()
	logger.FromContext(ctx).Debug("Observation inserted",
		zap.Uint64("tenant_id", tenantID),
		zap.Uint64("observation_id", obs.ID),
		zap.Float64("deviation", obs.Deviation),
	)

	return obs, nil
}

// ListObservations returns the tenant's observations in date order, optionally limited to
// a half-open date range.
func ListObservations(ctx context.Context, db *gorm.DB, tenantID uint64, r *DateRange) ([]models.WasteObservation, error) {
	if err := requireTenant(tenantID); err != nil {
		return nil, err
	}

	var observations []models.WasteObservation
	err := r.apply(tenantScope(ctx, db, tenantID)).
		Order("date ASC").Order("id ASC").
		Find(&observations).Error
	if err != nil {
		return nil, err
	}
	return observations, nil
}

// GetObservation returns one observation. Ids owned by another tenant are not found.
func GetObservation(ctx context.Context, db *gorm.DB, tenantID, id uint64) (*models.WasteObservation, error) {
	if err := requireTenant(tenantID); err != nil {
		return nil, err
	}

	var obs models.WasteObservation
	if err := tenantScope(ctx, db, tenantID).Where("id = ?", id).First(&obs).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrNotFound
		}
		return nil, err
	}
	return &obs, nil
}

// UpdateObservation applies patch to the tenant's observation and re-derives every
// derived field.
func UpdateObservation(ctx context.Context, db *gorm.DB, tenantID, id uint64, patch ObservationPatch) (*models.WasteObservation, error) {
	if err := requireTenant(tenantID); err != nil {
		return nil, err
	}

	var obs models.WasteObservation
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{Logger: tx.Logger.LogMode(gormlogger.Silent)}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND tenant_id = ?", id, tenantID).
			First(&obs).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.ErrNotFound
			}
			return err
		}

		if err := patch.apply(&obs); err != nil {
			return err
		}
		if err := deriveObservation(&obs); err != nil {
			return err
		}
		if patch.DocumentID != nil {
			if err := checkDocument(ctx, tx, tenantID, obs.DocumentID); err != nil {
				return err
			}
		}

		return tx.Omit(clause.Associations).Save(&obs).Error
	})
	if err != nil {
		return nil, err
	}

	observationWriteCounter.WithLabelValues("update").Inc()
	return &obs, nil
}

// DocumentInput registers an uploaded source file.
type DocumentInput struct {
	FileName string `json:"fileName" validate:"required,max=255"`
	FileSize int64  `json:"fileSize" validate:"gte=0"`
}

// RegisterDocument records a source document for tenantID.
func RegisterDocument(ctx context.Context, db *gorm.DB, tenantID uint64, in DocumentInput) (*models.SourceDocument, error) {
	if err := requireTenant(tenantID); err != nil {
		return nil, err
	}
	if _, err := utils.Validate(in); err != nil {
		return nil, err
	}

	doc := &models.SourceDocument{TenantID: tenantID, FileName: in.FileName, FileSize: in.FileSize}
	if err := db.WithContext(ctx).Omit(clause.Associations).Create(doc).Error; err != nil {
		return nil, fmt.Errorf("register document: %w", err)
	}
	return doc, nil
}
