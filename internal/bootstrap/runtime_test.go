package bootstrap

import (
	"context"
	"testing"

	"ganboo/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitRuntime_MemorySeedsDemoUsers(t *testing.T) {
	rt, err := InitRuntime(context.Background(), &config.Config{StoreBackend: config.StoreBackendMemory}, Options{SkipRedis: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rt.Close() })

	assert.Nil(t, rt.DB)
	assert.Nil(t, rt.Redis)
	u, err := rt.Store.GetByCode(context.Background(), "GANBOO-A1B2")
	require.NoError(t, err)
	assert.Equal(t, uint(1), u.ID)
}

func TestInitRuntime_SQLite(t *testing.T) {
	cfg := &config.Config{
		Env:          "test",
		StoreBackend: config.StoreBackendDatabase,
		DBDriver:     "sqlite",
		SQLitePath:   ":memory:",
	}
	rt, err := InitRuntime(context.Background(), cfg, Options{SeedDemo: true, SkipRedis: true})
	require.NoError(t, err)

	require.NotNil(t, rt.DB)
	u, err := rt.Store.Get(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "小美", u.DisplayName)

	assert.NoError(t, rt.Close())
	assert.Nil(t, rt.DB)
}

func TestInitRuntime_UnknownBackend(t *testing.T) {
	_, err := InitRuntime(context.Background(), &config.Config{StoreBackend: "etcd"}, Options{SkipRedis: true})
	assert.Error(t, err)
}
