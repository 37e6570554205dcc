package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/angelmondragon/shobi-backend/api/responses"
	"github.com/angelmondragon/shobi-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/shobi-backend/pkg/errors"
	"github.com/angelmondragon/shobi-backend/pkg/logger"
)

const readyPingTimeout = 2 * time.Second

// Pinger is a dependency checked by the readiness endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Shobi-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady fails while the catalog has never loaded or a dependency is down.
func HealthReady(cfg *config.Config, holder CatalogHolder, deps map[string]Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		w.Header().Set("X-Shobi-Env", cfg.App.Env)

		cat, err := snapshot(holder)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		pingCtx, cancel := context.WithTimeout(ctx, readyPingTimeout)
		defer cancel()
		for name, dep := range deps {
			if dep == nil {
				continue
			}
			if err := dep.Ping(pingCtx); err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, name+" unavailable").
					WithDetails(map[string]any{"dependency": name}))
				return
			}
		}

		responses.WriteSuccess(w, map[string]any{"status": "ready", "items": cat.Len()})
	}
}
