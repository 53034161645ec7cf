// waste.go
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

// WasteObservation is one recorded waste measurement for a tenant.
// TotalWaste, Deviation and the non-measured impact fields are derived server-side.
type WasteObservation struct {
	ID              uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	TenantID        uint64    `gorm:"not null;index:idx_waste_tenant_date,priority:1" json:"tenantId"`
	DocumentID      *uint64   `gorm:"index" json:"documentId,omitempty"`
	Date            time.Time `gorm:"not null;index:idx_waste_tenant_date,priority:2" json:"date"`
	OrganicWaste    float64   `gorm:"not null;default:0" json:"organicWaste"`
	InorganicWaste  float64   `gorm:"not null;default:0" json:"inorganicWaste"`
	RecyclableWaste float64   `gorm:"not null;default:0" json:"recyclableWaste"`
	// PodaWaste is nil on rows recorded before pruning waste was tracked.
	PodaWaste  *float64 `json:"podaWaste"`
	TotalWaste float64  `gorm:"not null;default:0" json:"totalWaste"`
	Deviation  float64  `gorm:"not null;default:0" json:"deviation"`

	TreesSaved          *float64 `json:"treesSaved,omitempty"`
	WaterSaved          *float64 `json:"waterSaved,omitempty"`
	EnergySaved         *float64 `json:"energySaved,omitempty"`
	TreesSavedMeasured  bool     `gorm:"not null;default:false" json:"treesSavedMeasured"`
	WaterSavedMeasured  bool     `gorm:"not null;default:false" json:"waterSavedMeasured"`
	EnergySavedMeasured bool     `gorm:"not null;default:false" json:"energySavedMeasured"`

	RawData JSON    `json:"rawData,omitempty"`
	Notes   *string `gorm:"type:text" json:"notes,omitempty"`

	Tenant    *Tenant         `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
	Document  *SourceDocument `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Poda returns the pruning waste quantity, reading legacy nulls as zero.
func (o *WasteObservation) Poda() float64 {
	if o.PodaWaste == nil {
		return 0
	}
	return *o.PodaWaste
}

// SourceDocument records the uploaded file an observation was imported from.
type SourceDocument struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	TenantID  uint64    `gorm:"not null;index" json:"tenantId"`
	FileName  string    `gorm:"size:255;not null" json:"fileName"`
	FileSize  int64     `gorm:"not null;default:0" json:"fileSize"`
	Processed bool      `gorm:"not null;default:false" json:"processed"`
	Tenant    *Tenant   `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName overrides the table name for WasteObservation
func (WasteObservation) TableName() string {
	return "waste_observations"
}

// TableName overrides the table name for SourceDocument
func (SourceDocument) TableName() string {
	return "source_documents"
}
