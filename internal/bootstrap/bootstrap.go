package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/angelmondragon/shobi-backend/internal/catalog"
	"github.com/angelmondragon/shobi-backend/internal/favorites"
	"github.com/angelmondragon/shobi-backend/internal/render"
	"github.com/angelmondragon/shobi-backend/pkg/config"
	"github.com/angelmondragon/shobi-backend/pkg/db"
	"github.com/angelmondragon/shobi-backend/pkg/logger"
	"github.com/angelmondragon/shobi-backend/pkg/metrics"
	"github.com/angelmondragon/shobi-backend/pkg/migrate"
	"github.com/angelmondragon/shobi-backend/pkg/redis"
)

// Resources is everything a process needs to serve the catalog.
type Resources struct {
	Config    *config.Config
	Logger    *logger.Logger
	Source    catalog.Source
	Holder    *catalog.Holder
	Slot      favorites.Slot
	Favorites favorites.Service
	Redis     *redis.Client
	DB        *db.Client

	closers []func() error
}

// Build connects the configured backends and prepares the catalog holder.
// The catalog is not loaded; callers decide how to treat a failed load. reg
// may be nil.
func Build(ctx context.Context, cfg *config.Config, logg *logger.Logger, reg prometheus.Registerer) (*Resources, error) {
	res := &Resources{Config: cfg, Logger: logg}

	if err := res.connect(ctx); err != nil {
		return nil, multierr.Append(err, res.Close())
	}

	slot, err := res.openSlot()
	if err != nil {
		return nil, multierr.Append(err, res.Close())
	}
	res.Slot = slot

	res.Source = catalog.NewSource(cfg.Catalog.Source, catalog.ParseFormat(cfg.Catalog.Format), cfg.Catalog.FetchTimeout)
	res.Holder = catalog.NewHolder(catalog.NewSourceLoader(res.Source, metrics.NewCatalogMetrics(reg)), logg)

	favs, err := favorites.NewService(favorites.ServiceParams{
		Slot:     slot,
		BaseName: cfg.Favorites.Slot,
		Catalog:  res.Holder,
		Logger:   logg,
		Metrics:  metrics.NewFavoritesMetrics(reg),
	})
	if err != nil {
		return nil, multierr.Append(err, res.Close())
	}
	res.Favorites = favs
	return res, nil
}

func (r *Resources) connect(ctx context.Context) error {
	cfg := r.Config
	backend := cfg.Favorites.FavoritesBackend()

	if backend == config.FavoritesBackendRedis || cfg.Redis.URL != "" || cfg.Redis.Address != "" {
		client, err := redis.New(ctx, cfg.Redis, r.Logger)
		if err != nil {
			return fmt.Errorf("bootstrap redis: %w", err)
		}
		r.Redis = client
		r.closers = append(r.closers, client.Close)
	}

	if backend == config.FavoritesBackendSQL {
		client, err := db.New(ctx, cfg.DB, r.Logger)
		if err != nil {
			return fmt.Errorf("bootstrap database: %w", err)
		}
		r.DB = client
		r.closers = append(r.closers, client.Close)
		if err := migrate.MaybeRun(ctx, cfg, r.Logger, client); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
	}
	return nil
}

func (r *Resources) openSlot() (favorites.Slot, error) {
	switch r.Config.Favorites.FavoritesBackend() {
	case config.FavoritesBackendMemory:
		return favorites.NewMemorySlot(), nil
	case config.FavoritesBackendRedis:
		return favorites.NewRedisSlot(r.Redis), nil
	case config.FavoritesBackendSQL:
		return favorites.NewSQLSlot(r.DB), nil
	case config.FavoritesBackendFile:
		return favorites.NewFileSlot(filepath.Clean(r.Config.Favorites.Dir)), nil
	}
	return nil, fmt.Errorf("unsupported favorites backend %q", r.Config.Favorites.Backend)
}

// Options returns the storefront link options.
func (r *Resources) Options() render.Options {
	return render.Options{
		PurchaseBase:     r.Config.Storefront.PurchaseBaseURL,
		PurchaseTemplate: r.Config.Storefront.PurchaseTemplate,
	}
}

// IdempotencyStore returns the redis client when one is connected.
func (r *Resources) IdempotencyStore() redis.IdempotencyStore {
	if r.Redis == nil {
		return nil
	}
	return r.Redis
}

// WatchPath returns the catalog file to watch, or "" when the source is not
// a local file or watching is off.
func (r *Resources) WatchPath() string {
	if !r.Config.Catalog.Watch {
		return ""
	}
	if fs, ok := r.Source.(*catalog.FileSource); ok {
		return fs.Path
	}
	return ""
}

// Close releases every connected backend, newest first.
func (r *Resources) Close() error {
	var err error
	for i := len(r.closers) - 1; i >= 0; i-- {
		err = multierr.Append(err, r.closers[i]())
	}
	r.closers = nil
	return err
}
