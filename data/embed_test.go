package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, "America/Mexico_City", s["timezone"])
	assert.Equal(t, "MXN", s["currency"])
	assert.Equal(t, "es", s["language"])

	s["timezone"] = "UTC"
	assert.Equal(t, "America/Mexico_City", DefaultSettings()["timezone"], "callers get a copy")
}

func TestInitdbMariaDBPrivileges(t *testing.T) {
	sql := InitdbMariaDBPrivileges("wastedash", "wd_app")
	assert.Contains(t, sql, "ON wastedash.waste_observations TO 'wd_app'@'%'")
	assert.NotContains(t, sql, "__DB_")
	assert.NotContains(t, sql, "DELETE ON")
}
