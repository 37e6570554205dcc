package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/shobi-backend/api/middleware"
	"github.com/angelmondragon/shobi-backend/api/responses"
	"github.com/angelmondragon/shobi-backend/api/validators"
	"github.com/angelmondragon/shobi-backend/internal/catalog"
	"github.com/angelmondragon/shobi-backend/internal/favorites"
	"github.com/angelmondragon/shobi-backend/internal/filter"
	"github.com/angelmondragon/shobi-backend/internal/render"
	"github.com/angelmondragon/shobi-backend/internal/session"
	pkgerrors "github.com/angelmondragon/shobi-backend/pkg/errors"
	"github.com/angelmondragon/shobi-backend/pkg/logger"
)

const maxQueryLen = 200

// CatalogHolder exposes the current catalog snapshot.
type CatalogHolder interface {
	Snapshot() *catalog.Catalog
	Err() error
}

// CatalogReloader can replace the snapshot from its source.
type CatalogReloader interface {
	CatalogHolder
	Load(ctx context.Context) error
}

func snapshot(holder CatalogHolder) (*catalog.Catalog, error) {
	if holder == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable")
	}
	if err := holder.Err(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDataUnavailable, err, "catalog not loaded")
	}
	return holder.Snapshot(), nil
}

func stateFromQuery(r *http.Request) (filter.State, error) {
	showFavorites, err := validators.ParseQueryBool(r, "favorites")
	if err != nil {
		return filter.State{}, err
	}
	state := filter.State{
		SearchQuery:      validators.Truncate(r.URL.Query().Get("q"), maxQueryLen),
		ShowingFavorites: showFavorites,
	}
	state.SelectBrand(validators.SanitizeString(r.URL.Query().Get("brand"), maxQueryLen))
	for _, category := range filter.Categories {
		for _, value := range validators.ParseQueryList(r, string(category)) {
			state.Activate(category, value)
		}
	}
	return state, nil
}

// PerfumeList renders the filtered catalog for the calling client.
func PerfumeList(holder CatalogHolder, favs favorites.Service, opts render.Options, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		cat, err := snapshot(holder)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if favs == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "favorites service unavailable"))
			return
		}

		state, err := stateFromQuery(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		store, err := favs.Store(ctx, middleware.ClientIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		view := session.New(session.Params{
			Catalog:   cat,
			Favorites: store,
			Options:   opts,
			State:     state,
		}).View()
		responses.WriteSuccess(w, view)
	}
}

// PerfumeDetail returns the detail model of one code.
func PerfumeDetail(holder CatalogHolder, opts render.Options, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		cat, err := snapshot(holder)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		code := strings.TrimSpace(chi.URLParam(r, "code"))
		if logg != nil {
			ctx = logg.WithItemCode(ctx, code)
		}
		model, ok := session.New(session.Params{Catalog: cat, Options: opts}).Details(code)
		if !ok {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "perfume not found").
				WithDetails(map[string]any{"code": code}))
			return
		}
		responses.WriteSuccess(w, model)
	}
}

// BrandList returns the brands of the snapshot with their item counts.
func BrandList(holder CatalogHolder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cat, err := snapshot(holder)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cat.BrandSummaries())
	}
}

// FacetList returns the selectable filter values with their item counts.
func FacetList(holder CatalogHolder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cat, err := snapshot(holder)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, filter.CountFacets(cat.Items))
	}
}

type reloadResponse struct {
	Source   string    `json:"source"`
	Items    int       `json:"items"`
	Rejected int       `json:"rejected"`
	Brands   int       `json:"brands"`
	LoadedAt time.Time `json:"loaded_at"`
}

// CatalogReload fetches the source again and swaps the snapshot on success.
func CatalogReload(holder CatalogReloader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if holder == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}
		if err := holder.Load(ctx); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		cat := holder.Snapshot()
		responses.WriteSuccess(w, reloadResponse{
			Source:   cat.Source,
			Items:    cat.Len(),
			Rejected: cat.Rejected,
			Brands:   len(cat.Brands),
			LoadedAt: cat.LoadedAt,
		})
	}
}
