package main

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/localnerve/wastedash/internal/config"
	"github.com/localnerve/wastedash/internal/database"
	"github.com/localnerve/wastedash/internal/models"
	"github.com/localnerve/wastedash/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// migratedSQLite points the environment at a fresh pure-Go sqlite file with the schema in place.
func migratedSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wastedash.db")
	t.Setenv("DB_TYPE", "sqlite-nocgo")
	t.Setenv("DB_DATABASE", path)
	t.Setenv("CACHE_URL", "")

	db, err := database.Connect(&config.Config{DBType: "sqlite-nocgo", DBDatabase: path, DBLogLevel: "silent"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func TestParseSettings(t *testing.T) {
	settings, err := parseSettings([]string{"currency=USD", " units =kg", "motto=a=b"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"currency": "USD", "units": "kg", "motto": "a=b"}, settings)

	_, err = parseSettings([]string{"novalue"})
	assert.Error(t, err)
	_, err = parseSettings([]string{"=x"})
	assert.Error(t, err)
}

func TestSchemaCommand(t *testing.T) {
	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"schema"})

	require.NoError(t, root.Execute())

	ddl := out.String()
	for _, table := range []string{"tenants", "tenant_settings", "feature_flags", "source_documents", "waste_observations"} {
		assert.Contains(t, ddl, "=== "+table+" ===")
	}
	assert.True(t, strings.Contains(ddl, "CREATE TABLE"))
}

func TestRecalculateRequiresTarget(t *testing.T) {
	root := newRootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"recalculate", "--dry-run"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tenant")
}

func TestProvisionCommand(t *testing.T) {
	db := migratedSQLite(t)
	args := []string{"provision", "--slug", "acme", "--name", "Acme Recycling",
		"--feature", "waste", "--feature", "water", "--setting", "currency=USD",
		"--subdomain", "acme", "--contact-phone", "+52 55 1234 5678", "--address", "Av. Reforma 1"}

	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs(args)
	require.NoError(t, root.Execute())

	var tenant models.Tenant
	require.NoError(t, db.Where("slug = ?", "acme").First(&tenant).Error)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "id:", strings.Fields(lines[0])[0])
	assert.Equal(t, fmt.Sprint(tenant.ID), strings.Fields(lines[0])[1])
	assert.Equal(t, []string{"slug:", "acme"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"dashboard:", "/acme/dashboard"}, strings.Fields(lines[2]))

	require.NotNil(t, tenant.Subdomain)
	assert.Equal(t, "acme", *tenant.Subdomain)
	require.NotNil(t, tenant.ContactPhone)
	assert.Equal(t, "+52 55 1234 5678", *tenant.ContactPhone)
	require.NotNil(t, tenant.Address)
	assert.Equal(t, "Av. Reforma 1", *tenant.Address)
	assert.Nil(t, tenant.ContactEmail)

	again := newRootCommand()
	var secondOut bytes.Buffer
	again.SetOut(&secondOut)
	again.SetArgs(args)
	err := again.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrConflict)
	assert.Empty(t, secondOut.String())

	var tenants, flags, settings int64
	require.NoError(t, db.Model(&models.Tenant{}).Count(&tenants).Error)
	require.NoError(t, db.Model(&models.FeatureFlag{}).Count(&flags).Error)
	require.NoError(t, db.Model(&models.TenantSetting{}).Count(&settings).Error)
	assert.Equal(t, int64(1), tenants)
	assert.Equal(t, int64(4), flags)
	assert.Equal(t, int64(1), settings)
}
