package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/localnerve/wastedash/internal/models"
	"github.com/localnerve/wastedash/internal/services"
	"github.com/localnerve/wastedash/internal/testhelpers"
	"github.com/localnerve/wastedash/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// legacyRow is stored with the version 1 formula: pruning waste left out of the total.
func legacyRow(t *testing.T, db *gorm.DB, tenantID uint64, date string) *models.WasteObservation {
	t.Helper()
	return testhelpers.CreateTestObservation(t, db, tenantID, testhelpers.ObservationFixture{
		Date:       date,
		Organic:    60,
		Recyclable: 20,
		Poda:       testhelpers.Float(20),
		TotalWaste: 80,
		Deviation:  25,
	})
}

func reload(t *testing.T, db *gorm.DB, id uint64) models.WasteObservation {
	t.Helper()
	var obs models.WasteObservation
	require.NoError(t, db.First(&obs, id).Error)
	return obs
}

func TestRecalculateUpdatesLegacyRows(t *testing.T) {
	ctx := context.Background()
	db := testhelpers.NewTestDB(t)
	tenant := testhelpers.CreateTestTenant(t, db, "acme")

	row := legacyRow(t, db, tenant.ID, "2024-05-01")

	result, err := services.Recalculate(ctx, db, tenant.ID, services.RecalcOptions{})
	require.NoError(t, err)
	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, 1, result.Scanned)
	assert.Equal(t, 1, result.Updated)
	assert.Empty(t, result.FailedIDs)
	assert.Equal(t, row.ID, result.LastID)

	obs := reload(t, db, row.ID)
	assert.Equal(t, 100.0, obs.TotalWaste)
	assert.Equal(t, 40.0, obs.Deviation)
	assert.Equal(t, 60.0, obs.OrganicWaste, "raw quantities are not rewritten")
	assert.Equal(t, 20.0, obs.RecyclableWaste)
	assert.Equal(t, 20.0, *obs.PodaWaste)
	require.NotNil(t, obs.TreesSaved)
	// 0.02 t paper * 17 + 0.02 t poda * 2
	assert.Equal(t, 0.0, *obs.TreesSaved)
	assert.Equal(t, 620.0, *obs.WaterSaved)
	assert.Equal(t, 15.0, *obs.EnergySaved)

	again, err := services.Recalculate(ctx, db, tenant.ID, services.RecalcOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, again.Scanned)
	assert.Zero(t, again.Updated)
	assert.Equal(t, 1, again.Unchanged)
}

func TestRecalculateKeepsMeasuredImpacts(t *testing.T) {
	ctx := context.Background()
	db := testhelpers.NewTestDB(t)
	tenant := testhelpers.CreateTestTenant(t, db, "acme")

	row := legacyRow(t, db, tenant.ID, "2024-05-01")
	require.NoError(t, db.Model(&models.WasteObservation{}).Where("id = ?", row.ID).
		Updates(map[string]any{"trees_saved": 99.0, "trees_saved_measured": true}).Error)

	_, err := services.Recalculate(ctx, db, tenant.ID, services.RecalcOptions{})
	require.NoError(t, err)

	obs := reload(t, db, row.ID)
	assert.Equal(t, 99.0, *obs.TreesSaved)
	assert.True(t, obs.TreesSavedMeasured)
	assert.Equal(t, 40.0, obs.Deviation)
}

func TestRecalculateReportsFailedRows(t *testing.T) {
	ctx := context.Background()
	db := testhelpers.NewTestDB(t)
	tenant := testhelpers.CreateTestTenant(t, db, "acme")

	good := legacyRow(t, db, tenant.ID, "2024-05-01")
	bad := testhelpers.CreateTestObservation(t, db, tenant.ID, testhelpers.ObservationFixture{
		Date:       "2024-06-01",
		Recyclable: 10,
		RawData:    `{"recyclableBreakdown": "lots"}`,
	})
	after := legacyRow(t, db, tenant.ID, "2024-07-01")

	result, err := services.Recalculate(ctx, db, tenant.ID, services.RecalcOptions{})
	var partial *types.PartialBatchFailure
	require.True(t, errors.As(err, &partial), "got %v", err)
	assert.Equal(t, []uint64{bad.ID}, partial.FailedIDs)

	require.NotNil(t, result)
	assert.Equal(t, 3, result.Scanned)
	assert.Equal(t, 2, result.Updated)
	assert.Equal(t, []uint64{bad.ID}, result.FailedIDs)

	assert.Equal(t, 40.0, reload(t, db, good.ID).Deviation)
	assert.Equal(t, 40.0, reload(t, db, after.ID).Deviation)
	assert.Equal(t, 0.0, reload(t, db, bad.ID).TotalWaste)
}

func TestRecalculateBatchesAndResumes(t *testing.T) {
	ctx := context.Background()
	db := testhelpers.NewTestDB(t)
	tenant := testhelpers.CreateTestTenant(t, db, "acme")

	var rows []*models.WasteObservation
	for _, d := range []string{"2024-01-01", "2024-02-01", "2024-03-01", "2024-04-01", "2024-05-01"} {
		rows = append(rows, legacyRow(t, db, tenant.ID, d))
	}

	result, err := services.Recalculate(ctx, db, tenant.ID, services.RecalcOptions{BatchSize: 2, AfterID: rows[1].ID})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Scanned)
	assert.Equal(t, 3, result.Updated)
	assert.Equal(t, rows[4].ID, result.LastID)

	assert.Equal(t, 25.0, reload(t, db, rows[0].ID).Deviation)
	assert.Equal(t, 25.0, reload(t, db, rows[1].ID).Deviation)
	assert.Equal(t, 40.0, reload(t, db, rows[2].ID).Deviation)
}

func TestRecalculateWindowAndDryRun(t *testing.T) {
	ctx := context.Background()
	db := testhelpers.NewTestDB(t)
	tenant := testhelpers.CreateTestTenant(t, db, "acme")

	inside := legacyRow(t, db, tenant.ID, "2024-12-01")
	outside := legacyRow(t, db, tenant.ID, "2025-12-01")
	w := services.TrueYearWindow(2025)

	dry, err := services.Recalculate(ctx, db, tenant.ID, services.RecalcOptions{Window: &w, DryRun: true})
	require.NoError(t, err)
	assert.True(t, dry.DryRun)
	assert.Equal(t, 1, dry.Scanned)
	assert.Equal(t, 1, dry.Updated)
	assert.Equal(t, 25.0, reload(t, db, inside.ID).Deviation, "dry run writes nothing")

	result, err := services.Recalculate(ctx, db, tenant.ID, services.RecalcOptions{Window: &w})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 40.0, reload(t, db, inside.ID).Deviation)
	assert.Equal(t, 25.0, reload(t, db, outside.ID).Deviation)
}

func TestRecalculateLeavesOtherTenants(t *testing.T) {
	ctx := context.Background()
	db := testhelpers.NewTestDB(t)
	acme := testhelpers.CreateTestTenant(t, db, "acme")
	other := testhelpers.CreateTestTenant(t, db, "other")

	legacyRow(t, db, acme.ID, "2024-05-01")
	foreign := legacyRow(t, db, other.ID, "2024-05-01")

	result, err := services.Recalculate(ctx, db, acme.ID, services.RecalcOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Scanned)
	assert.Equal(t, 25.0, reload(t, db, foreign.ID).Deviation)
}

func TestRecalculateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	db := testhelpers.NewTestDB(t)
	tenant := testhelpers.CreateTestTenant(t, db, "acme")
	legacyRow(t, db, tenant.ID, "2024-05-01")

	result, err := services.Recalculate(ctx, db, tenant.ID, services.RecalcOptions{})
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, result)
	assert.Zero(t, result.Scanned)
}
