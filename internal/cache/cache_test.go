package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type entry struct {
	Slug string `json:"slug"`
	N    int    `json:"n"`
}

func TestTTLCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewTTLCache[entry]()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Set(ctx, "acme", entry{Slug: "acme", N: 1}, time.Minute)
	c.Set(ctx, "forever", entry{Slug: "forever"}, 0)

	got, ok := c.Get(ctx, "acme")
	require.True(t, ok)
	assert.Equal(t, 1, got.N)

	now = now.Add(2 * time.Minute)
	_, ok = c.Get(ctx, "acme")
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len(), "expired entry is evicted on read")

	_, ok = c.Get(ctx, "forever")
	assert.True(t, ok)
}

func TestTTLCacheDelete(t *testing.T) {
	ctx := context.Background()
	c := NewTTLCache[entry]()
	c.Set(ctx, "acme", entry{Slug: "acme"}, time.Minute)
	c.Delete(ctx, "acme")

	_, ok := c.Get(ctx, "acme")
	assert.False(t, ok)
}

func TestTTLCacheConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	c := NewTTLCache[int]()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i%4)
			for j := 0; j < 100; j++ {
				c.Set(ctx, key, j, time.Minute)
				c.Get(ctx, key)
				if j%10 == 0 {
					c.Delete(ctx, key)
				}
			}
		}(i)
	}
	wg.Wait()
	assert.LessOrEqual(t, c.Len(), 4)
}

func TestNoopCache(t *testing.T) {
	ctx := context.Background()
	var c Cache[entry] = NoopCache[entry]{}
	c.Set(ctx, "acme", entry{Slug: "acme"}, time.Minute)
	_, ok := c.Get(ctx, "acme")
	assert.False(t, ok)
}

func TestRedisCache(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	port, err := nat.NewPort("tcp", "6379")
	require.NoError(t, err)

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{string(port)},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	defer func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate Redis container: %v", err)
		}
	}()

	host, err := container.Host(ctx)
	require.NoError(t, err)
	mapped, err := container.MappedPort(ctx, port)
	require.NoError(t, err)

	c, err := NewRedisCache[entry](ctx, fmt.Sprintf("redis://%s:%s/0", host, mapped.Port()), "wastedash:test:")
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Ping(ctx))

	_, ok := c.Get(ctx, "acme")
	assert.False(t, ok)

	c.Set(ctx, "acme", entry{Slug: "acme", N: 7}, time.Minute)
	got, ok := c.Get(ctx, "acme")
	require.True(t, ok)
	assert.Equal(t, entry{Slug: "acme", N: 7}, got)

	c.Delete(ctx, "acme")
	_, ok = c.Get(ctx, "acme")
	assert.False(t, ok)
}

func TestNewRedisCacheRejectsBadURL(t *testing.T) {
	_, err := NewRedisCache[entry](context.Background(), "not-a-url", "x:")
	require.Error(t, err)
}
