package middleware_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/wastedash/internal/cache"
	"github.com/localnerve/wastedash/internal/middleware"
	"github.com/localnerve/wastedash/internal/services"
	"github.com/localnerve/wastedash/internal/testhelpers"
	"github.com/localnerve/wastedash/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTenantApp(t *testing.T) *fiber.App {
	t.Helper()
	db := testhelpers.NewTestDB(t)
	reg := services.NewRegistry(db, nil, cache.NewTTLCache[services.TenantInfo](), time.Minute)
	_, err := reg.Provision(context.Background(), services.ProvisionInput{Slug: "acme", Name: "Acme", Features: []string{"waste"}})
	require.NoError(t, err)
	_, err = reg.Provision(context.Background(), services.ProvisionInput{Slug: "closed", Name: "Closed"})
	require.NoError(t, err)
	_, err = reg.SetActive(context.Background(), "closed", false)
	require.NoError(t, err)

	app := fiber.New(fiber.Config{ErrorHandler: utils.ErrorHandler})
	group := app.Group("/t/:slug", middleware.Tenant(services.NewContextProvider(reg, db)))
	group.Get("/name", func(c *fiber.Ctx) error {
		return c.SendString(middleware.TenantFrom(c).DisplayName())
	})
	group.Get("/waste", middleware.RequireFeature("waste"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	group.Get("/energy", middleware.RequireFeature("energy"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func TestTenantMiddleware(t *testing.T) {
	app := setupTenantApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/t/acme/name", nil))
	require.NoError(t, err)
	testhelpers.AssertStatus(t, resp, fiber.StatusOK)

	for _, slug := range []string{"missing", "closed"} {
		resp, err = app.Test(httptest.NewRequest("GET", "/t/"+slug+"/name", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

		var body utils.ErrorResponseStruct
		testhelpers.ParseJSON(t, resp, &body)
		assert.Equal(t, "tenant.notFound", body.Type)
		assert.Equal(t, utils.TenantPickerURL, body.Picker)
		assert.False(t, body.Ok)
	}
}

func TestRequireFeature(t *testing.T) {
	app := setupTenantApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/t/acme/waste", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/t/acme/energy", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	var body utils.ErrorResponseStruct
	testhelpers.ParseJSON(t, resp, &body)
	assert.Equal(t, "tenant.feature", body.Type)
}

func TestAdminKey(t *testing.T) {
	newApp := func(key string) *fiber.App {
		app := fiber.New(fiber.Config{ErrorHandler: utils.ErrorHandler})
		app.Post("/admin", middleware.AdminKey(key), func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusNoContent)
		})
		return app
	}

	tests := []struct {
		name       string
		configured string
		header     string
		expected   int
	}{
		{"valid key", "s3cret", "s3cret", fiber.StatusNoContent},
		{"missing header", "s3cret", "", fiber.StatusUnauthorized},
		{"wrong key", "s3cret", "guess", fiber.StatusForbidden},
		{"disabled", "", "anything", fiber.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/admin", nil)
			if tt.header != "" {
				req.Header.Set(middleware.AdminKeyHeader, tt.header)
			}
			resp, err := newApp(tt.configured).Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, resp.StatusCode)
		})
	}
}

func TestVersionMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.VersionMiddleware())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("apiVersion").(string))
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Api-Version", "1.0")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "2", resp.Header.Get(middleware.FormulaVersionHeader))

	body := make([]byte, 16)
	n, _ := resp.Body.Read(body)
	assert.Equal(t, "1.0.0", string(body[:n]))
}
