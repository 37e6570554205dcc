package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/angelmondragon/shobi-backend/api/controllers"
	"github.com/angelmondragon/shobi-backend/api/routes"
	"github.com/angelmondragon/shobi-backend/internal/bootstrap"
	"github.com/angelmondragon/shobi-backend/internal/catalog"
	"github.com/angelmondragon/shobi-backend/pkg/config"
	"github.com/angelmondragon/shobi-backend/pkg/instance"
	"github.com/angelmondragon/shobi-backend/pkg/logger"
	"github.com/angelmondragon/shobi-backend/pkg/metrics"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logg); err != nil {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
	logg.Info(ctx, "api server shut down gracefully")
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) (err error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	res, err := bootstrap.Build(ctx, cfg, logg, registry)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, res.Close())
	}()

	// A failed initial load is served as DATA_UNAVAILABLE until a reload succeeds.
	_ = res.Holder.Load(ctx)

	pingers := map[string]controllers.Pinger{}
	if res.Redis != nil {
		pingers["redis"] = res.Redis
	}
	if res.DB != nil {
		pingers["database"] = res.DB
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	logCtx := logg.WithFields(ctx, map[string]any{
		"env":       cfg.App.Env,
		"addr":      addr,
		"instance":  instance.ID(),
		"favorites": res.Favorites.Backend(),
		"catalog":   res.Source.String(),
	})
	logg.Info(logCtx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, routes.Dependencies{
			Catalog:     res.Holder,
			Favorites:   res.Favorites,
			Options:     res.Options(),
			Pingers:     pingers,
			Idempotency: res.IdempotencyStore(),
			HTTPMetrics: metrics.NewHTTPMetrics(registry),
			Gatherer:    registry,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if path := res.WatchPath(); path != "" {
		watcher, err := catalog.NewWatcher(path, res.Holder, cfg.Catalog.Debounce, logg)
		if err != nil {
			logg.Warn(logCtx, "catalog watcher disabled: "+err.Error())
		} else {
			group.Go(func() error {
				return watcher.Run(groupCtx)
			})
		}
	}

	return group.Wait()
}
