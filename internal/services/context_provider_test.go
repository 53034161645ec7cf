package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/localnerve/wastedash/internal/cache"
	"github.com/localnerve/wastedash/internal/calc"
	"github.com/localnerve/wastedash/internal/services"
	"github.com/localnerve/wastedash/internal/testhelpers"
	"github.com/localnerve/wastedash/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResolver struct {
	calls int
}

func (s *stubResolver) Resolve(_ context.Context, slug string) (*services.TenantInfo, error) {
	s.calls++
	return nil, types.ErrTenantNotFound
}

func TestLoadUnknownSlugNeverTouchesStore(t *testing.T) {
	resolver := &stubResolver{}
	// A nil store panics if anything reaches it.
	provider := services.NewContextProvider(resolver, nil)

	tc, err := provider.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, types.ErrTenantNotFound)
	assert.Nil(t, tc)
	assert.Equal(t, 1, resolver.calls)
}

func TestTenantContextScopesData(t *testing.T) {
	ctx := context.Background()
	db := testhelpers.NewTestDB(t)
	reg := services.NewRegistry(db, nil, cache.NoopCache[services.TenantInfo]{}, time.Minute)
	provider := services.NewContextProvider(reg, db)

	for _, slug := range []string{"north", "south"} {
		_, err := reg.Provision(ctx, services.ProvisionInput{Slug: slug, Name: "Org " + slug, Features: []string{"waste"}})
		require.NoError(t, err)
	}

	north, err := provider.Load(ctx, "north")
	require.NoError(t, err)
	south, err := provider.Load(ctx, "south")
	require.NoError(t, err)

	assert.Equal(t, "north", north.Slug())
	assert.Equal(t, "Org north", north.DisplayName())
	assert.True(t, north.FeatureEnabled("waste"))
	assert.False(t, north.FeatureEnabled("energy"))
	currency, ok := north.Setting("currency")
	assert.True(t, ok)
	assert.Equal(t, "MXN", currency)
	_, ok = north.Setting("missing")
	assert.False(t, ok)

	obs, err := north.Insert(ctx, services.ObservationInput{Date: "2025-01-15", OrganicWaste: flex(30), RecyclableWaste: flex(10)})
	require.NoError(t, err)
	assert.Equal(t, north.ID(), obs.TenantID)

	_, err = south.Observation(ctx, obs.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)
	_, err = south.Update(ctx, obs.ID, services.ObservationPatch{OrganicWaste: flex(1)})
	assert.ErrorIs(t, err, types.ErrNotFound)

	southObs, err := south.Observations(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, southObs)

	summary, err := north.Summary(ctx, services.TrueYearWindow(2025))
	require.NoError(t, err)
	assert.Equal(t, 40.0, summary.Totals.TotalWaste)

	years, err := north.Years(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{2025}, years.Calendar)

	doc, err := north.RegisterDocument(ctx, services.DocumentInput{FileName: "jan.csv", FileSize: 12})
	require.NoError(t, err)
	_, err = south.Insert(ctx, services.ObservationInput{Date: "2025-01-15", DocumentID: &doc.ID})
	assert.True(t, types.IsValidation(err))

	result, err := north.Recalculate(ctx, services.RecalcOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Scanned)
	assert.Zero(t, result.Updated)
}

func TestTenantContextReport(t *testing.T) {
	ctx := context.Background()
	db := testhelpers.NewTestDB(t)
	reg := services.NewRegistry(db, nil, cache.NoopCache[services.TenantInfo]{}, time.Minute)
	provider := services.NewContextProvider(reg, db)

	color := "#112233"
	_, err := reg.Provision(ctx, services.ProvisionInput{Slug: "acme", Name: "Acme", PrimaryColor: &color})
	require.NoError(t, err)
	tc, err := provider.Load(ctx, "acme")
	require.NoError(t, err)

	for _, d := range []string{"2025-01-10", "2025-02-10", "2025-03-10"} {
		_, err := tc.Insert(ctx, services.ObservationInput{Date: d, InorganicWaste: flex(50), RecyclableWaste: flex(50)})
		require.NoError(t, err)
	}

	r, err := services.NewDateRange(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), time.Time{})
	require.NoError(t, err)
	report, err := tc.Report(ctx, r)
	require.NoError(t, err)

	assert.Equal(t, "Acme", report.Tenant.DisplayName)
	assert.Equal(t, "#112233", *report.Tenant.PrimaryColor)
	assert.Equal(t, calc.FormulaVersion, report.FormulaVersion)
	require.NotNil(t, report.From)
	assert.Nil(t, report.To)
	assert.Len(t, report.Observations, 2)
	assert.Equal(t, 200.0, report.Totals.TotalWaste)
	assert.Equal(t, 50.0, report.Totals.Deviation)
	assert.Equal(t, "pdf", report.Settings["report_format"])

	empty, err := tc.Report(ctx, &services.DateRange{From: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	assert.NotNil(t, empty.Observations)
	assert.Empty(t, empty.Observations)
	assert.Zero(t, empty.Totals.TotalWaste)
}
