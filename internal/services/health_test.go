package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/localnerve/wastedash/internal/config"
	"github.com/localnerve/wastedash/internal/services"
	"github.com/localnerve/wastedash/internal/testhelpers"
	"github.com/stretchr/testify/assert"
)

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

func TestHealthCheck(t *testing.T) {
	ctx := context.Background()
	db := testhelpers.NewTestDB(t)
	cfg := &config.Config{DBType: "sqlite", DBDatabase: "memory"}

	t.Run("no cache", func(t *testing.T) {
		result := services.HealthCheck(ctx, cfg, db, nil)
		assert.Equal(t, "healthy", result.Status)
		assert.Equal(t, "ok", result.Database)
		assert.Equal(t, "disabled", result.Cache)
		assert.Equal(t, "sqlite", result.Details["database_type"])
	})

	t.Run("cache up", func(t *testing.T) {
		result := services.HealthCheck(ctx, cfg, db, fakePinger{})
		assert.Equal(t, "healthy", result.Status)
		assert.Equal(t, "ok", result.Cache)
	})

	t.Run("cache down", func(t *testing.T) {
		result := services.HealthCheck(ctx, cfg, db, fakePinger{err: errors.New("connection refused")})
		assert.Equal(t, "unhealthy", result.Status)
		assert.Equal(t, "unreachable", result.Cache)
		assert.Contains(t, result.ErrorMessage, "connection refused")
	})
}

func TestHealthCheckClosedDatabase(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	sqlDB, err := db.DB()
	assert.NoError(t, err)
	_ = sqlDB.Close()

	result := services.HealthCheck(context.Background(), &config.Config{DBType: "sqlite"}, db, nil)
	assert.Equal(t, "unhealthy", result.Status)
	assert.Equal(t, "unreachable", result.Database)
	assert.NotEmpty(t, result.ErrorMessage)
}
