// Package testhelpers provides databases, fixtures and HTTP assertions for tests.
package testhelpers

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/localnerve/wastedash/internal/database"
	"github.com/localnerve/wastedash/internal/models"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewTestDB creates a private in-memory SQLite database with every model migrated.
// The pool holds a single connection so all goroutines see the same database.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), database.NewGormConfig("silent"))
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get underlying SQL DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// CreateTestTenant inserts an active tenant with a flag row for each feature listed.
func CreateTestTenant(t *testing.T, db *gorm.DB, slug string, features ...string) *models.Tenant {
	t.Helper()

	tenant := models.Tenant{Slug: slug, Name: slug + " org", IsActive: true}
	if err := db.Create(&tenant).Error; err != nil {
		t.Fatalf("Failed to create tenant %s: %v", slug, err)
	}
	for _, f := range features {
		flag := models.FeatureFlag{TenantID: tenant.ID, Feature: f, Enabled: true}
		if err := db.Create(&flag).Error; err != nil {
			t.Fatalf("Failed to create feature %s for %s: %v", f, slug, err)
		}
	}
	return &tenant
}

// ObservationFixture describes a raw observation row. Derived columns are written as given,
// so fixtures can simulate rows stored by an older formula.
type ObservationFixture struct {
	Date                                string
	Organic, Inorganic, Recyclable      float64
	Poda                                *float64
	TotalWaste, Deviation               float64
	TreesSaved, WaterSaved, EnergySaved *float64
	RawData                             string
}

// CreateTestObservation inserts a waste observation row directly, bypassing derivation.
func CreateTestObservation(t *testing.T, db *gorm.DB, tenantID uint64, f ObservationFixture) *models.WasteObservation {
	t.Helper()

	date, err := time.Parse("2006-01-02", f.Date)
	if err != nil {
		t.Fatalf("Invalid fixture date %q: %v", f.Date, err)
	}

	obs := models.WasteObservation{
		TenantID:        tenantID,
		Date:            date.UTC(),
		OrganicWaste:    f.Organic,
		InorganicWaste:  f.Inorganic,
		RecyclableWaste: f.Recyclable,
		PodaWaste:       f.Poda,
		TotalWaste:      f.TotalWaste,
		Deviation:       f.Deviation,
		TreesSaved:      f.TreesSaved,
		WaterSaved:      f.WaterSaved,
		EnergySaved:     f.EnergySaved,
	}
	if f.RawData != "" {
		obs.RawData = models.JSON{JSON: datatypes.JSON(f.RawData)}
	}
	if err := db.Omit("Tenant", "Document").Create(&obs).Error; err != nil {
		t.Fatalf("Failed to create observation: %v", err)
	}
	return &obs
}

// Float returns a pointer to f.
func Float(f float64) *float64 {
	return &f
}
