// recalc.go
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
	"time"

	"github.com/google/uuid"
	"github.com/localnerve/wastedash/internal/logger"
	"github.com/localnerve/wastedash/internal/models"
	"github.com/localnerve/wastedash/internal/types"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultRecalcBatchSize is used when RecalcOptions.BatchSize is not positive.
const DefaultRecalcBatchSize = 200

// RecalcOptions controls a recalculation run.
type RecalcOptions struct {
	// Window limits the run to observations dated inside it.
	Window *Window
	// AfterID resumes a previous run after the last id it processed.
	AfterID   uint64
	BatchSize int
	// DryRun counts the rows that would change without writing them.
	DryRun bool
}

// RecalcResult reports what a run did.
type RecalcResult struct {
	RunID     string   `json:"runId"`
	TenantID  uint64   `json:"tenantId"`
	Scanned   int      `json:"scanned"`
	Updated   int      `json:"updated"`
	Unchanged int      `json:"unchanged"`
	FailedIDs []uint64 `json:"failedIds"`
	LastID    uint64   `json:"lastId"`
	DryRun    bool     `json:"dryRun"`
}

type derivedSnapshot struct {
	total, deviation     float64
	trees, water, energy *float64
}

func snapshotOf(obs *models.WasteObservation) derivedSnapshot {
	return derivedSnapshot{
		total:     obs.TotalWaste,
		deviation: obs.Deviation,
		trees:     obs.TreesSaved,
		water:     obs.WaterSaved,
		energy:    obs.EnergySaved,
	}
}

func equalPtr(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (s derivedSnapshot) equal(o derivedSnapshot) bool {
	return s.total == o.total && s.deviation == o.deviation &&
		equalPtr(s.trees, o.trees) && equalPtr(s.water, o.water) && equalPtr(s.energy, o.energy)
}

// Recalculate re-derives total, diversion and non-measured impacts for the tenant's
// observations in id order, writing only rows whose stored values differ. Raw quantities
// are never written. Rows that fail are logged and skipped; if any failed, the result is
// returned together with a *types.PartialBatchFailure.
func Recalculate(ctx context.Context, db *gorm.DB, tenantID uint64, opts RecalcOptions) (*RecalcResult, error) {
	if err := requireTenant(tenantID); err != nil {
		return nil, err
	}

	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultRecalcBatchSize
	}

	result := &RecalcResult{
		RunID:     uuid.NewString(),
		TenantID:  tenantID,
		FailedIDs: []uint64{},
		LastID:    opts.AfterID,
		DryRun:    opts.DryRun,
	}
	log := logger.FromContext(ctx).With(zap.String("run_id", result.RunID), zap.Uint64("tenant_id", tenantID))
	started := time.Now()

	var dates *DateRange
	if opts.Window != nil {
		dates = opts.Window.Range()
	}

	for {
		if err := ctx.Err(); err != nil {
			log.Warn("Recalculation interrupted", zap.Uint64("last_id", result.LastID), zap.Error(err))
			return result, err
		}

		var batch []models.WasteObservation
		if err := dates.apply(tenantScope(ctx, db, tenantID)).
			Where("id > ?", result.LastID).
			Order("id ASC").
			Limit(batchSize).
			Find(&batch).Error; err != nil {
			return result, err
		}
		if len(batch) == 0 {
			break
		}

		for i := range batch {
			recalcRow(ctx, db, log, &batch[i], result)
		}
		result.LastID = batch[len(batch)-1].ID

		if len(batch) < batchSize {
			break
		}
	}

	log.Info("Recalculation finished",
		zap.Int("scanned", result.Scanned),
		zap.Int("updated", result.Updated),
		zap.Int("unchanged", result.Unchanged),
		zap.Int("failed", len(result.FailedIDs)),
		zap.Bool("dry_run", opts.DryRun),
		zap.Duration("elapsed", time.Since(started)),
	)

	if len(result.FailedIDs) > 0 {
		return result, &types.PartialBatchFailure{FailedIDs: result.FailedIDs}
	}
	return result, nil
}

func recalcRow(ctx context.Context, db *gorm.DB, log *zap.Logger, obs *models.WasteObservation, result *RecalcResult) {
	result.Scanned++
	before := snapshotOf(obs)

	if err := deriveObservation(obs); err != nil {
		log.Warn("Recalculation failed for row", zap.Uint64("observation_id", obs.ID), zap.Error(err))
		result.FailedIDs = append(result.FailedIDs, obs.ID)
		recalcRowsCounter.WithLabelValues("failed").Inc()
		return
	}

	if before.equal(snapshotOf(obs)) {
		result.Unchanged++
		recalcRowsCounter.WithLabelValues("unchanged").Inc()
		return
	}

	if !result.DryRun {
		err := db.WithContext(ctx).Model(&models.WasteObservation{}).
			Where("id = ? AND tenant_id = ?", obs.ID, obs.TenantID).
			Updates(map[string]any{
				"total_waste":  obs.TotalWaste,
				"deviation":    obs.Deviation,
				"trees_saved":  obs.TreesSaved,
				"water_saved":  obs.WaterSaved,
				"energy_saved": obs.EnergySaved,
			}).Error
		if err != nil {
			log.Warn("Recalculation write failed", zap.Uint64("observation_id", obs.ID), zap.Error(err))
			result.FailedIDs = append(result.FailedIDs, obs.ID)
			recalcRowsCounter.WithLabelValues("failed").Inc()
			return
		}
	}

	log.Debug("Observation recalculated",
		zap.Uint64("observation_id", obs.ID),
		zap.Float64("deviation_before", before.deviation),
		zap.Float64("deviation_after", obs.Deviation),
	)
	result.Updated++
	recalcRowsCounter.WithLabelValues("updated").Inc()
}
