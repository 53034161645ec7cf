// tenant.go
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

package models

import (
	"time"
)

// Tenant is an isolated client organization. ID is the only key used to scope child rows.
type Tenant struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Slug           string    `gorm:"uniqueIndex;size:100;not null" json:"slug"`
	Name           string    `gorm:"size:255;not null" json:"name"`
	Description    *string   `gorm:"type:text" json:"description,omitempty"`
	Logo           *string   `gorm:"size:512" json:"logo,omitempty"`
	PrimaryColor   *string   `gorm:"size:16" json:"primaryColor,omitempty"`
	SecondaryColor *string   `gorm:"size:16" json:"secondaryColor,omitempty"`
	Subdomain      *string   `gorm:"size:100" json:"subdomain,omitempty"`
	ContactEmail   *string   `gorm:"size:255" json:"contactEmail,omitempty"`
	ContactPhone   *string   `gorm:"size:50" json:"contactPhone,omitempty"`
	Address        *string   `gorm:"type:text" json:"address,omitempty"`
	IsActive       bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// TenantSetting is a per-tenant override of a system default setting.
type TenantSetting struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"-"`
	TenantID  uint64    `gorm:"not null;uniqueIndex:idx_tenant_setting_key" json:"tenantId"`
	Key       string    `gorm:"size:100;not null;uniqueIndex:idx_tenant_setting_key" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	Tenant    *Tenant   `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// FeatureFlag toggles an optional module for a tenant. One row per catalog feature.
type FeatureFlag struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"-"`
	TenantID  uint64    `gorm:"not null;uniqueIndex:idx_tenant_feature" json:"tenantId"`
	Feature   string    `gorm:"size:64;not null;uniqueIndex:idx_tenant_feature" json:"feature"`
	Enabled   bool      `gorm:"not null;default:false" json:"enabled"`
	Tenant    *Tenant   `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// TableName overrides the table name for Tenant
func (Tenant) TableName() string {
	return "tenants"
}

// TableName overrides the table name for TenantSetting
func (TenantSetting) TableName() string {
	return "tenant_settings"
}

// TableName overrides the table name for FeatureFlag
func (FeatureFlag) TableName() string {
	return "feature_flags"
}
