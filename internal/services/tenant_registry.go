// tenant_registry.go
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
	"maps"
	"slices"
	"time"

	"github.com/localnerve/wastedash/data"
	"github.com/localnerve/wastedash/internal/cache"
	"github.com/localnerve/wastedash/internal/logger"
	"github.com/localnerve/wastedash/internal/models"
	"github.com/localnerve/wastedash/internal/types"
	"github.com/localnerve/wastedash/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// Feature identifiers
const (
	FeatureWaste           = "waste"
	FeatureEnergy          = "energy"
	FeatureWater           = "water"
	FeatureCircularEconomy = "circular_economy"
)

// FeatureCatalog is every optional module a tenant can enable.
var FeatureCatalog = []string{FeatureWaste, FeatureEnergy, FeatureWater, FeatureCircularEconomy}

// IsKnownFeature reports whether feature is in the catalog.
func IsKnownFeature(feature string) bool {
	return slices.Contains(FeatureCatalog, feature)
}

// DashboardURL is the tenant's dashboard entry point.
func DashboardURL(slug string) string {
	return "/" + slug + "/dashboard"
}

// TenantInfo is a resolved tenant: its row, its effective settings (defaults merged with
// overrides) and a flag for every catalog feature.
type TenantInfo struct {
	Tenant   models.Tenant     `json:"tenant"`
	Settings map[string]string `json:"settings"`
	Features map[string]bool   `json:"features"`
}

// FeatureEnabled reports the flag for feature. Unknown features are disabled.
func (i *TenantInfo) FeatureEnabled(feature string) bool {
	return i.Features[feature]
}

// DashboardURL is the tenant's dashboard entry point.
func (i *TenantInfo) DashboardURL() string {
	return DashboardURL(i.Tenant.Slug)
}

func (i TenantInfo) clone() *TenantInfo {
	i.Settings = maps.Clone(i.Settings)
	i.Features = maps.Clone(i.Features)
	return &i
}

// ProvisionInput describes a new tenant.
type ProvisionInput struct {
	Slug           string            `json:"slug" validate:"required,max=100,slug"`
	Name           string            `json:"name" validate:"required,max=255"`
	Description    *string           `json:"description,omitempty"`
	Logo           *string           `json:"logo,omitempty" validate:"omitempty,max=512"`
	PrimaryColor   *string           `json:"primaryColor,omitempty" validate:"omitempty,hexcolor"`
	SecondaryColor *string           `json:"secondaryColor,omitempty" validate:"omitempty,hexcolor"`
	Subdomain      *string           `json:"subdomain,omitempty" validate:"omitempty,max=100"`
	ContactEmail   *string           `json:"contactEmail,omitempty" validate:"omitempty,email"`
	ContactPhone   *string           `json:"contactPhone,omitempty" validate:"omitempty,max=50"`
	Address        *string           `json:"address,omitempty"`
	Features       types.FlexStrings `json:"features" validate:"dive,oneof=waste energy water circular_economy"`
	Settings       map[string]string `json:"settings" validate:"dive,keys,required,max=100,endkeys"`
}

// Registry owns tenants, their settings and feature flags.
// Reads go through db; mutations go through admin.
type Registry struct {
	db    *gorm.DB
	admin *gorm.DB
	cache cache.Cache[TenantInfo]
	ttl   time.Duration
}

// NewRegistry creates a Registry. A nil admin uses db for mutations; a nil cache disables caching.
func NewRegistry(db, admin *gorm.DB, c cache.Cache[TenantInfo], ttl time.Duration) *Registry {
	if admin == nil {
		admin = db
	}
	if c == nil {
		c = cache.NoopCache[TenantInfo]{}
	}
	return &Registry{db: db, admin: admin, cache: c, ttl: ttl}
}

// Resolve returns the active tenant for slug, or types.ErrTenantNotFound.
func (r *Registry) Resolve(ctx context.Context, slug string) (*TenantInfo, error) {
	if !utils.SlugPattern.MatchString(slug) {
		tenantResolveCounter.WithLabelValues("not_found").Inc()
		return nil, types.ErrTenantNotFound
	}

	if info, ok := r.cache.Get(ctx, slug); ok && info.Tenant.IsActive {
		tenantResolveCounter.WithLabelValues("hit").Inc()
		return info.clone(), nil
	}

	info, err := r.load(ctx, slug)
	if err != nil {
		if errors.Is(err, types.ErrTenantNotFound) {
			tenantResolveCounter.WithLabelValues("not_found").Inc()
		}
		return nil, err
	}
	if !info.Tenant.IsActive {
		tenantResolveCounter.WithLabelValues("not_found").Inc()
		return nil, types.ErrTenantNotFound
	}

	tenantResolveCounter.WithLabelValues("miss").Inc()
	r.cache.Set(ctx, slug, *info, r.ttl)
	return info.clone(), nil
}

// Lookup returns the tenant for slug whether or not it is active. It bypasses the cache.
func (r *Registry) Lookup(ctx context.Context, slug string) (*TenantInfo, error) {
	if !utils.SlugPattern.MatchString(slug) {
		return nil, types.ErrTenantNotFound
	}
	return r.load(ctx, slug)
}

func (r *Registry) load(ctx context.Context, slug string) (*TenantInfo, error) {
	db := r.db.WithContext(ctx).Session(&gorm.Session{Logger: r.db.Logger.LogMode(gormlogger.Silent)})

	var tenant models.Tenant
	if err := db.Where("slug = ?", slug).First(&tenant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrTenantNotFound
		}
		return nil, err
	}

	var settings []models.TenantSetting
	if err := db.Where("tenant_id = ?", tenant.ID).Find(&settings).Error; err != nil {
		return nil, err
	}

	var flags []models.FeatureFlag
	if err := db.Where("tenant_id = ?", tenant.ID).Find(&flags).Error; err != nil {
		return nil, err
	}

	return buildTenantInfo(tenant, settings, flags), nil
}

func buildTenantInfo(tenant models.Tenant, settings []models.TenantSetting, flags []models.FeatureFlag) *TenantInfo {
	info := &TenantInfo{
		Tenant:   tenant,
		Settings: data.DefaultSettings(),
		Features: make(map[string]bool, len(FeatureCatalog)),
	}
	for _, s := range settings {
		info.Settings[s.Key] = s.Value
	}
	for _, f := range FeatureCatalog {
		info.Features[f] = false
	}
	for _, f := range flags {
		if IsKnownFeature(f.Feature) {
			info.Features[f.Feature] = f.Enabled
		}
	}
	return info
}

// Provision creates a tenant with one feature flag row per catalog feature and one
// setting row per override, all in one transaction.
func (r *Registry) Provision(ctx context.Context, in ProvisionInput) (*models.Tenant, error) {
	log := logger.FromContext(ctx).With(zap.String("slug", in.Slug))

	if _, err := utils.Validate(in); err != nil {
		tenantProvisionCounter.WithLabelValues("invalid").Inc()
		return nil, err
	}

	enabled := types.NormalizeStrings(in.Features)
	tenant := models.Tenant{
		Slug:           in.Slug,
		Name:           in.Name,
		Description:    in.Description,
		Logo:           in.Logo,
		PrimaryColor:   in.PrimaryColor,
		SecondaryColor: in.SecondaryColor,
		Subdomain:      in.Subdomain,
		ContactEmail:   in.ContactEmail,
		ContactPhone:   in.ContactPhone,
		Address:        in.Address,
		IsActive:       true,
	}

	err := r.admin.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Tenant{}).Where("slug = ?", in.Slug).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return types.ErrConflict
		}

		if err := tx.Create(&tenant).Error; err != nil {
			return err
		}

		flags := make([]models.FeatureFlag, 0, len(FeatureCatalog))
		for _, f := range FeatureCatalog {
			flags = append(flags, models.FeatureFlag{
				TenantID: tenant.ID,
				Feature:  f,
				Enabled:  slices.Contains(enabled, f),
			})
		}
		if err := tx.Create(&flags).Error; err != nil {
			return err
		}

		if len(in.Settings) > 0 {
			settings := make([]models.TenantSetting, 0, len(in.Settings))
			for _, key := range slices.Sorted(maps.Keys(in.Settings)) {
				settings = append(settings, models.TenantSetting{
					TenantID: tenant.ID,
					Key:      key,
					Value:    in.Settings[key],
				})
			}
			if err := tx.Create(&settings).Error; err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, types.ErrConflict) || errors.Is(err, gorm.ErrDuplicatedKey) {
			tenantProvisionCounter.WithLabelValues("conflict").Inc()
			log.Info("Tenant provisioning rejected, slug exists")
			return nil, fmt.Errorf("tenant %q: %w", in.Slug, types.ErrConflict)
		}
		tenantProvisionCounter.WithLabelValues("error").Inc()
		log.Error("Tenant provisioning failed", zap.Error(err))
		return nil, fmt.Errorf("provisioning failed: %w", err)
	}

	r.cache.Delete(ctx, in.Slug)
	tenantProvisionCounter.WithLabelValues("created").Inc()
	log.Info("Tenant provisioned", zap.Uint64("tenant_id", tenant.ID), zap.Strings("features", enabled))

	return &tenant, nil
}

// List returns tenants ordered by name. Inactive tenants are included on request.
func (r *Registry) List(ctx context.Context, includeInactive bool) ([]models.Tenant, error) {
	query := r.db.WithContext(ctx).Session(&gorm.Session{Logger: r.db.Logger.LogMode(gormlogger.Silent)})
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}

	var tenants []models.Tenant
	if err := query.Order("name ASC").Order("slug ASC").Find(&tenants).Error; err != nil {
		return nil, err
	}
	return tenants, nil
}

// SetActive activates or deactivates a tenant. Tenants are never deleted.
func (r *Registry) SetActive(ctx context.Context, slug string, active bool) (*models.Tenant, error) {
	var tenant models.Tenant
	err := r.admin.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.lockTenant(tx, slug, &tenant); err != nil {
			return err
		}
		if tenant.IsActive == active {
			return nil
		}
		tenant.IsActive = active
		return tx.Model(&tenant).Update("is_active", active).Error
	})
	if err != nil {
		return nil, err
	}

	r.cache.Delete(ctx, slug)
	logger.FromContext(ctx).Info("Tenant activation changed", zap.String("slug", slug), zap.Bool("active", active))
	return &tenant, nil
}

// SetSetting stores a per-tenant override for key.
func (r *Registry) SetSetting(ctx context.Context, slug, key, value string) error {
	if err := utils.ValidateValue("key", key, "required,max=100"); err != nil {
		return err
	}

	err := r.admin.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tenant models.Tenant
		if err := r.lockTenant(tx, slug, &tenant); err != nil {
			return err
		}
		setting := models.TenantSetting{TenantID: tenant.ID, Key: key, Value: value}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(&setting).Error
	})
	if err != nil {
		return err
	}

	r.cache.Delete(ctx, slug)
	return nil
}

// SetFeature enables or disables a catalog feature for a tenant.
func (r *Registry) SetFeature(ctx context.Context, slug, feature string, enabled bool) error {
	if !IsKnownFeature(feature) {
		return types.NewValidationError("feature", "unknown feature '%s'", feature)
	}

	err := r.admin.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tenant models.Tenant
		if err := r.lockTenant(tx, slug, &tenant); err != nil {
			return err
		}
		flag := models.FeatureFlag{TenantID: tenant.ID, Feature: feature, Enabled: enabled}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "feature"}},
			DoUpdates: clause.AssignmentColumns([]string{"enabled", "updated_at"}),
		}).Create(&flag).Error
	})
	if err != nil {
		return err
	}

	r.cache.Delete(ctx, slug)
	return nil
}

func (r *Registry) lockTenant(tx *gorm.DB, slug string, tenant *models.Tenant) error {
	err := tx.Session(&gorm.Session{Logger: tx.Logger.LogMode(gormlogger.Silent)}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("slug = ?", slug).
		First(tenant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return types.ErrTenantNotFound
	}
	return err
}
