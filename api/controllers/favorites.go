package controllers

import (
	"net/http"
	"strings"

	"github.com/angelmondragon/shobi-backend/api/middleware"
	"github.com/angelmondragon/shobi-backend/api/responses"
	"github.com/angelmondragon/shobi-backend/api/validators"
	"github.com/angelmondragon/shobi-backend/internal/favorites"
	pkgerrors "github.com/angelmondragon/shobi-backend/pkg/errors"
	"github.com/angelmondragon/shobi-backend/pkg/logger"
)

type toggleFavoritePayload struct {
	Code string `json:"code" validate:"required"`
}

type toggleFavoriteResponse struct {
	Code     string `json:"code"`
	Favorite bool   `json:"favorite"`
}

// FavoritesList returns the codes saved in the client's slot.
func FavoritesList(svc favorites.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "favorites service unavailable"))
			return
		}
		codes, err := svc.List(ctx, middleware.ClientIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"codes": codes, "count": len(codes)})
	}
}

// FavoritesToggle flips a code in the client's slot. Codes outside the
// catalog report their current membership unchanged.
func FavoritesToggle(svc favorites.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "favorites service unavailable"))
			return
		}

		var payload toggleFavoritePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		code := strings.TrimSpace(payload.Code)
		if logg != nil {
			ctx = logg.WithItemCode(ctx, code)
		}

		member, err := svc.Toggle(ctx, middleware.ClientIDFromContext(ctx), code)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, toggleFavoriteResponse{Code: code, Favorite: member})
	}
}
