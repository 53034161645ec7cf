// containers.go
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

package testhelpers

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	gomysql "github.com/go-sql-driver/mysql"
	"github.com/localnerve/wastedash/data"
	"github.com/localnerve/wastedash/internal/config"
	"github.com/localnerve/wastedash/internal/database"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// DBContainer is a throwaway database server and the configuration that reaches it.
type DBContainer struct {
	Container testcontainers.Container
	Config    *config.Config
}

// Terminate stops the container. t may be nil outside of tests.
func (c *DBContainer) Terminate(t *testing.T) {
	if c == nil || c.Container == nil {
		return
	}
	if err := c.Container.Terminate(context.Background()); err != nil {
		logMessage(t, "Failed to terminate database container: %v", err)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func containerConfig(dbType string) *config.Config {
	return &config.Config{
		DBType:                 dbType,
		DBDatabase:             getEnv("DB_DATABASE", "wastedash"),
		DBAppUser:              getEnv("DB_APP_USER", "wd_app"),
		DBAppPassword:          getEnv("DB_APP_PASSWORD", "wd_app_pass"),
		DBAppConnectionLimit:   5,
		DBAdminUser:            getEnv("DB_ADMIN_USER", "wd_admin"),
		DBAdminPassword:        getEnv("DB_ADMIN_PASSWORD", "wd_admin_pass"),
		DBAdminConnectionLimit: 2,
		DBLogLevel:             "silent",
		AdminKey:               "test-admin-key",
		RecalcBatchSize:        50,
	}
}

// StartMariaDB starts MariaDB, creates the app and admin users, migrates the schema through
// the admin pool and applies the app-user grants.
func StartMariaDB(t *testing.T) (*DBContainer, error) {
	ctx := context.Background()
	cfg := containerConfig("mariadb")
	rootPassword := getEnv("DB_ROOT_PASSWORD", "rootpass")

	tcpPort, err := nat.NewPort("tcp", "3306")
	if err != nil {
		return nil, err
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        getEnv("DB_IMAGE", "mariadb:11"),
			ExposedPorts: []string{string(tcpPort)},
			Env: map[string]string{
				"MARIADB_ROOT_PASSWORD": rootPassword,
				"MARIADB_DATABASE":      cfg.DBDatabase,
			},
			WaitingFor: wait.ForListeningPort(tcpPort).WithStartupTimeout(90 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start MariaDB: %w", err)
	}
	dbc := &DBContainer{Container: container, Config: cfg}

	host, _ := container.Host(ctx)
	port, _ := container.MappedPort(ctx, tcpPort)
	cfg.DBHost = host
	cfg.DBPort = port.Port()

	if err := performMariaDBInit(t, cfg, rootPassword); err != nil {
		dbc.Terminate(t)
		return nil, err
	}

	logMessage(t, "MariaDB ready at %s:%s", cfg.DBHost, cfg.DBPort)
	return dbc, nil
}

func performMariaDBInit(t *testing.T, cfg *config.Config, rootPassword string) error {
	mc := gomysql.NewConfig()
	mc.User = "root"
	mc.Passwd = rootPassword
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(cfg.DBHost, cfg.DBPort)

	db, err := sql.Open("mysql", mc.FormatDSN())
	if err != nil {
		return fmt.Errorf("failed to connect to MariaDB for setup: %w", err)
	}
	defer db.Close()

	// Wait for connection to be really ready
	for i := 0; i < 30; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(1 * time.Second)
	}
	if err != nil {
		return fmt.Errorf("MariaDB not ready after 30 seconds: %w", err)
	}

	statements := []string{
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", cfg.DBDatabase),
		fmt.Sprintf("CREATE USER IF NOT EXISTS '%s'@'%%' IDENTIFIED BY '%s'", cfg.DBAdminUser, cfg.DBAdminPassword),
		fmt.Sprintf("CREATE USER IF NOT EXISTS '%s'@'%%' IDENTIFIED BY '%s'", cfg.DBAppUser, cfg.DBAppPassword),
		fmt.Sprintf("GRANT ALL PRIVILEGES ON %s.* TO '%s'@'%%'", cfg.DBDatabase, cfg.DBAdminUser),
		"FLUSH PRIVILEGES",
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("%w : when executing > %s", err, stmt)
		}
	}

	// Tables must exist before table-level grants.
	admin, err := database.ConnectAdmin(cfg)
	if err != nil {
		return err
	}
	defer database.Close(admin)
	if err := database.AutoMigrate(admin); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	if err := executeSQL(db, data.InitdbMariaDBPrivileges(cfg.DBDatabase, cfg.DBAppUser)); err != nil {
		return fmt.Errorf("failed to execute %s privileges init sql: %w", cfg.DBType, err)
	}

	logMessage(t, "MariaDB initialized: database %s, app user %s", cfg.DBDatabase, cfg.DBAppUser)
	return nil
}

// StartPostgres starts Postgres with the admin user as owner, migrates the schema and
// grants the app user read/insert/update.
func StartPostgres(t *testing.T) (*DBContainer, error) {
	ctx := context.Background()
	cfg := containerConfig("postgres")

	tcpPort, err := nat.NewPort("tcp", "5432")
	if err != nil {
		return nil, err
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        getEnv("DB_IMAGE_POSTGRES", "postgres:16-alpine"),
			ExposedPorts: []string{string(tcpPort)},
			Env: map[string]string{
				"POSTGRES_USER":     cfg.DBAdminUser,
				"POSTGRES_PASSWORD": cfg.DBAdminPassword,
				"POSTGRES_DB":       cfg.DBDatabase,
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start Postgres: %w", err)
	}
	dbc := &DBContainer{Container: container, Config: cfg}

	host, _ := container.Host(ctx)
	port, _ := container.MappedPort(ctx, tcpPort)
	cfg.DBHost = host
	cfg.DBPort = port.Port()

	admin, err := database.ConnectAdmin(cfg)
	if err != nil {
		dbc.Terminate(t)
		return nil, err
	}
	defer database.Close(admin)

	if err := database.AutoMigrate(admin); err != nil {
		dbc.Terminate(t)
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	statements := []string{
		fmt.Sprintf("CREATE USER %s WITH PASSWORD '%s'", cfg.DBAppUser, cfg.DBAppPassword),
		fmt.Sprintf("GRANT SELECT, INSERT, UPDATE ON ALL TABLES IN SCHEMA public TO %s", cfg.DBAppUser),
		fmt.Sprintf("GRANT USAGE, SELECT ON ALL SEQUENCES IN SCHEMA public TO %s", cfg.DBAppUser),
	}
	for _, stmt := range statements {
		if err := admin.Exec(stmt).Error; err != nil {
			dbc.Terminate(t)
			return nil, fmt.Errorf("%w : when executing > %s", err, stmt)
		}
	}

	logMessage(t, "Postgres ready at %s:%s", cfg.DBHost, cfg.DBPort)
	return dbc, nil
}

// executeSQL runs a script statement by statement, dropping -- comments.
func executeSQL(db *sql.DB, script string) error {
	var lines []string
	for _, l := range strings.Split(script, "\n") {
		lines = append(lines, excludeComment(l))
	}

	for _, q := range strings.Split(strings.Join(lines, " "), ";") {
		q = strings.TrimSpace(q)
		if q == "" {
			continue
		}
		if _, err := db.Exec(q); err != nil {
			return fmt.Errorf("%s : when executing > %s", err.Error(), q)
		}
	}
	return nil
}

// excludeComment strips a trailing -- comment that is not inside a quoted string.
func excludeComment(line string) string {
	var quote rune
	for i, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
		case r == '-' && strings.HasPrefix(line[i:], "--"):
			return line[:i]
		}
	}
	return line
}

func logMessage(t *testing.T, format string, args ...any) {
	if t != nil {
		t.Logf(format, args...)
	} else {
		fmt.Printf(format+"\n", args...)
	}
}
