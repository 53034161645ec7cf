package data

import (
	_ "embed"
	"encoding/json"
	"strings"
)

//go:embed initdb/mariadb/003-ddl-privileges.sql
var initdbMariaDBPrivileges string

//go:embed defaults/settings.json
var defaultSettingsJSON []byte

// InitdbMariaDBPrivileges returns the app-user grant script for the given database and user.
// Tables must already exist (AutoMigrate through the admin pool).
func InitdbMariaDBPrivileges(database, appUser string) string {
	return strings.NewReplacer(
		"__DB_DATABASE__", database,
		"__DB_APP_USER__", appUser,
	).Replace(initdbMariaDBPrivileges)
}

// DefaultSettings returns a fresh copy of the system default tenant settings.
func DefaultSettings() map[string]string {
	settings := make(map[string]string)
	if err := json.Unmarshal(defaultSettingsJSON, &settings); err != nil {
		panic("data: embedded defaults/settings.json is invalid: " + err.Error())
	}
	return settings
}
