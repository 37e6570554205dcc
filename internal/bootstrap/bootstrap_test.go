package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/shobi-backend/pkg/config"
	"github.com/angelmondragon/shobi-backend/pkg/logger"
)

const catalogDoc = `[{"brandInfo":{"name":"Maison"},"perfumes":[{"code":"A1","inspiredBy":"Rose"},{"code":"B2","inspiredBy":"Lime"}]}]`

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.ErrorLevel, Output: io.Discard})
}

func baseConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(catalogDoc), 0o644))
	return &config.Config{
		Catalog:    config.CatalogConfig{Source: path, Watch: true, FetchTimeout: time.Second},
		Favorites:  config.FavoritesConfig{Backend: config.FavoritesBackendFile, Slot: "shobi-favorites", Dir: filepath.Join(dir, "favs")},
		Storefront: config.StorefrontConfig{PurchaseBaseURL: "https://shop.example", PurchaseTemplate: "{base}/p/{code}"},
	}
}

func TestBuildFileBackend(t *testing.T) {
	ctx := context.Background()
	cfg := baseConfig(t)

	res, err := Build(ctx, cfg, testLogger(), prometheus.NewRegistry())
	require.NoError(t, err)
	t.Cleanup(func() { _ = res.Close() })

	require.NoError(t, res.Holder.Load(ctx))
	assert.Equal(t, 2, res.Holder.Snapshot().Len())
	assert.Equal(t, "file", res.Favorites.Backend())
	assert.Equal(t, cfg.Catalog.Source, res.WatchPath())
	assert.Nil(t, res.IdempotencyStore())
	assert.Equal(t, "https://shop.example/p/A1", res.Options().PurchaseURL("A1"))

	member, err := res.Favorites.Toggle(ctx, "", "A1")
	require.NoError(t, err)
	assert.True(t, member)
	_, err = os.Stat(filepath.Join(cfg.Favorites.Dir, "shobi-favorites.json"))
	assert.NoError(t, err)
}

func TestBuildMemoryBackendWithoutWatch(t *testing.T) {
	cfg := baseConfig(t)
	cfg.Favorites.Backend = config.FavoritesBackendMemory
	cfg.Catalog.Watch = false

	res, err := Build(context.Background(), cfg, testLogger(), nil)
	require.NoError(t, err)
	assert.Equal(t, "memory", res.Favorites.Backend())
	assert.Empty(t, res.WatchPath())
	assert.NoError(t, res.Close())
}

func TestBuildSQLBackendRunsMigrations(t *testing.T) {
	ctx := context.Background()
	cfg := baseConfig(t)
	cfg.Favorites.Backend = config.FavoritesBackendSQL
	cfg.DB = config.DBConfig{
		Driver: config.DBDriverSQLite,
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
	}

	res, err := Build(ctx, cfg, testLogger(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = res.Close() })
	require.NotNil(t, res.DB)
	require.NoError(t, res.Holder.Load(ctx))

	member, err := res.Favorites.Toggle(ctx, "phone", "B2")
	require.NoError(t, err)
	assert.True(t, member)
	payload, err := res.Slot.Read(ctx, "shobi-favorites:phone")
	require.NoError(t, err)
	assert.JSONEq(t, `["B2"]`, string(payload))
}

func TestBuildFailsWhenRedisUnreachable(t *testing.T) {
	cfg := baseConfig(t)
	cfg.Favorites.Backend = config.FavoritesBackendRedis
	cfg.Redis = config.RedisConfig{Address: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond}

	_, err := Build(context.Background(), cfg, testLogger(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bootstrap redis")
}
