package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/localnerve/wastedash/internal/cache"
	"github.com/localnerve/wastedash/internal/models"
	"github.com/localnerve/wastedash/internal/services"
	"github.com/localnerve/wastedash/internal/testhelpers"
	"github.com/localnerve/wastedash/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newRegistry(t *testing.T) (*gorm.DB, *services.Registry) {
	t.Helper()
	db := testhelpers.NewTestDB(t)
	return db, services.NewRegistry(db, nil, cache.NewTTLCache[services.TenantInfo](), time.Minute)
}

func strPtr(s string) *string { return &s }

func TestProvisionAndResolve(t *testing.T) {
	ctx := context.Background()
	_, reg := newRegistry(t)

	tenant, err := reg.Provision(ctx, services.ProvisionInput{
		Slug:         "acme-recycling",
		Name:         "Acme Recycling",
		PrimaryColor: strPtr("#00aa55"),
		Features:     []string{"waste", "water", "waste"},
		Settings:     map[string]string{"currency": "USD"},
	})
	require.NoError(t, err)
	assert.NotZero(t, tenant.ID)
	assert.True(t, tenant.IsActive)

	info, err := reg.Resolve(ctx, "acme-recycling")
	require.NoError(t, err)
	assert.Equal(t, tenant.ID, info.Tenant.ID)
	assert.Equal(t, "/acme-recycling/dashboard", info.DashboardURL())

	assert.Equal(t, map[string]bool{
		"waste":            true,
		"energy":           false,
		"water":            true,
		"circular_economy": false,
	}, info.Features)

	assert.Equal(t, "USD", info.Settings["currency"])
	assert.Equal(t, "America/Mexico_City", info.Settings["timezone"])
	assert.Equal(t, "es", info.Settings["language"])
}

func TestProvisionPersistsOnlyOverrides(t *testing.T) {
	ctx := context.Background()
	db, reg := newRegistry(t)

	tenant, err := reg.Provision(ctx, services.ProvisionInput{Slug: "acme", Name: "Acme"})
	require.NoError(t, err)

	var settings, flags int64
	db.Model(&models.TenantSetting{}).Where("tenant_id = ?", tenant.ID).Count(&settings)
	db.Model(&models.FeatureFlag{}).Where("tenant_id = ?", tenant.ID).Count(&flags)
	assert.Equal(t, int64(0), settings)
	assert.Equal(t, int64(len(services.FeatureCatalog)), flags)
}

func TestProvisionDuplicateSlugConflict(t *testing.T) {
	ctx := context.Background()
	db, reg := newRegistry(t)

	in := services.ProvisionInput{Slug: "acme", Name: "Acme", Features: []string{"waste"}, Settings: map[string]string{"units": "t"}}
	_, err := reg.Provision(ctx, in)
	require.NoError(t, err)

	in.Name = "Acme Two"
	_, err = reg.Provision(ctx, in)
	require.ErrorIs(t, err, types.ErrConflict)

	var tenants, flags, settings int64
	db.Model(&models.Tenant{}).Count(&tenants)
	db.Model(&models.FeatureFlag{}).Count(&flags)
	db.Model(&models.TenantSetting{}).Count(&settings)
	assert.Equal(t, int64(1), tenants)
	assert.Equal(t, int64(len(services.FeatureCatalog)), flags)
	assert.Equal(t, int64(1), settings)
}

func TestProvisionConcurrentSameSlug(t *testing.T) {
	ctx := context.Background()
	db, reg := newRegistry(t)

	const workers = 6
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = reg.Provision(ctx, services.ProvisionInput{Slug: "race", Name: "Race"})
		}(i)
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		if err == nil {
			created++
			continue
		}
		assert.ErrorIs(t, err, types.ErrConflict)
	}
	assert.Equal(t, 1, created)

	var count int64
	db.Model(&models.Tenant{}).Where("slug = ?", "race").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestProvisionValidation(t *testing.T) {
	ctx := context.Background()
	db, reg := newRegistry(t)

	tests := []struct {
		name  string
		in    services.ProvisionInput
		field string
	}{
		{"uppercase slug", services.ProvisionInput{Slug: "Acme", Name: "Acme"}, "slug"},
		{"slug with spaces", services.ProvisionInput{Slug: "acme corp", Name: "Acme"}, "slug"},
		{"double hyphen", services.ProvisionInput{Slug: "acme--corp", Name: "Acme"}, "slug"},
		{"missing name", services.ProvisionInput{Slug: "acme"}, "name"},
		{"unknown feature", services.ProvisionInput{Slug: "acme", Name: "Acme", Features: []string{"solar"}}, "features[0]"},
		{"bad email", services.ProvisionInput{Slug: "acme", Name: "Acme", ContactEmail: strPtr("nope")}, "contactEmail"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reg.Provision(ctx, tt.in)
			var ve *types.ValidationError
			require.True(t, errors.As(err, &ve), "got %v", err)
			assert.Equal(t, tt.field, ve.Field)
		})
	}

	var count int64
	db.Model(&models.Tenant{}).Count(&count)
	assert.Zero(t, count)
}

func TestResolveUnknownAndInactive(t *testing.T) {
	ctx := context.Background()
	_, reg := newRegistry(t)

	_, err := reg.Resolve(ctx, "missing")
	assert.ErrorIs(t, err, types.ErrTenantNotFound)

	_, err = reg.Resolve(ctx, "../etc")
	assert.ErrorIs(t, err, types.ErrTenantNotFound)

	_, err = reg.Provision(ctx, services.ProvisionInput{Slug: "acme", Name: "Acme"})
	require.NoError(t, err)

	// Warm the cache, then deactivate.
	_, err = reg.Resolve(ctx, "acme")
	require.NoError(t, err)

	tenant, err := reg.SetActive(ctx, "acme", false)
	require.NoError(t, err)
	assert.False(t, tenant.IsActive)

	_, err = reg.Resolve(ctx, "acme")
	assert.ErrorIs(t, err, types.ErrTenantNotFound)

	info, err := reg.Lookup(ctx, "acme")
	require.NoError(t, err)
	assert.False(t, info.Tenant.IsActive)

	_, err = reg.SetActive(ctx, "missing", true)
	assert.ErrorIs(t, err, types.ErrTenantNotFound)
}

func TestResolveCacheInvalidatedByMutations(t *testing.T) {
	ctx := context.Background()
	db, reg := newRegistry(t)

	_, err := reg.Provision(ctx, services.ProvisionInput{Slug: "acme", Name: "Acme"})
	require.NoError(t, err)

	info, err := reg.Resolve(ctx, "acme")
	require.NoError(t, err)

	// Callers cannot corrupt the cached entry.
	info.Settings["currency"] = "EUR"

	// Direct writes are invisible until a registry mutation invalidates the entry.
	require.NoError(t, db.Model(&models.Tenant{}).Where("slug = ?", "acme").Update("name", "Renamed").Error)
	info, err = reg.Resolve(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, "Acme", info.Tenant.Name)
	assert.Equal(t, "MXN", info.Settings["currency"])

	require.NoError(t, reg.SetSetting(ctx, "acme", "currency", "USD"))
	info, err = reg.Resolve(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", info.Tenant.Name)
	assert.Equal(t, "USD", info.Settings["currency"])

	require.NoError(t, reg.SetSetting(ctx, "acme", "currency", "CAD"))
	info, err = reg.Resolve(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, "CAD", info.Settings["currency"])

	var count int64
	db.Model(&models.TenantSetting{}).Where(&models.TenantSetting{Key: "currency"}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestSetFeature(t *testing.T) {
	ctx := context.Background()
	_, reg := newRegistry(t)

	_, err := reg.Provision(ctx, services.ProvisionInput{Slug: "acme", Name: "Acme"})
	require.NoError(t, err)

	require.NoError(t, reg.SetFeature(ctx, "acme", "energy", true))
	info, err := reg.Resolve(ctx, "acme")
	require.NoError(t, err)
	assert.True(t, info.FeatureEnabled("energy"))
	assert.False(t, info.FeatureEnabled("waste"))

	err = reg.SetFeature(ctx, "acme", "solar", true)
	assert.True(t, types.IsValidation(err))

	err = reg.SetFeature(ctx, "missing", "waste", true)
	assert.ErrorIs(t, err, types.ErrTenantNotFound)
}

func TestMissingFeatureRowReadsFalse(t *testing.T) {
	ctx := context.Background()
	db, reg := newRegistry(t)
	testhelpers.CreateTestTenant(t, db, "legacy", "waste")

	info, err := reg.Resolve(ctx, "legacy")
	require.NoError(t, err)
	assert.Len(t, info.Features, len(services.FeatureCatalog))
	assert.True(t, info.Features["waste"])
	assert.False(t, info.Features["circular_economy"])
	assert.False(t, info.FeatureEnabled("not-a-feature"))
}

func TestListTenants(t *testing.T) {
	ctx := context.Background()
	_, reg := newRegistry(t)

	for _, in := range []services.ProvisionInput{
		{Slug: "zeta", Name: "Zeta"},
		{Slug: "alpha", Name: "Alpha"},
		{Slug: "gone", Name: "Gone"},
	} {
		_, err := reg.Provision(ctx, in)
		require.NoError(t, err)
	}
	_, err := reg.SetActive(ctx, "gone", false)
	require.NoError(t, err)

	active, err := reg.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "alpha", active[0].Slug)
	assert.Equal(t, "zeta", active[1].Slug)

	all, err := reg.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestProvisionRollsBackOnPartialFailure(t *testing.T) {
	ctx := context.Background()
	db, reg := newRegistry(t)

	// Flags are written before settings, so this fails the unit halfway through.
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("fail_settings", func(tx *gorm.DB) {
		if _, ok := tx.Statement.Dest.(*[]models.TenantSetting); ok {
			_ = tx.AddError(errors.New("settings insert failed"))
		}
	}))

	in := services.ProvisionInput{Slug: "acme", Name: "Acme", Features: []string{"waste"}, Settings: map[string]string{"currency": "USD"}}
	_, err := reg.Provision(ctx, in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "settings insert failed")
	assert.NotErrorIs(t, err, types.ErrConflict)

	var tenants, flags, settings int64
	require.NoError(t, db.Model(&models.Tenant{}).Count(&tenants).Error)
	require.NoError(t, db.Model(&models.FeatureFlag{}).Count(&flags).Error)
	require.NoError(t, db.Model(&models.TenantSetting{}).Count(&settings).Error)
	assert.Zero(t, tenants)
	assert.Zero(t, flags)
	assert.Zero(t, settings)

	_, err = reg.Resolve(ctx, "acme")
	assert.ErrorIs(t, err, types.ErrTenantNotFound)

	require.NoError(t, db.Callback().Create().Remove("fail_settings"))
	tenant, err := reg.Provision(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "acme", tenant.Slug)
}
