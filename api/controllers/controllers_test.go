package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/shobi-backend/api/middleware"
	"github.com/angelmondragon/shobi-backend/internal/catalog"
	"github.com/angelmondragon/shobi-backend/internal/favorites"
	"github.com/angelmondragon/shobi-backend/internal/render"
	"github.com/angelmondragon/shobi-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/shobi-backend/pkg/errors"
)

type stubLoader struct {
	cat *catalog.Catalog
	err error
}

func (s *stubLoader) Load(context.Context) (*catalog.Catalog, error) {
	return s.cat, s.err
}

func testCatalog() *catalog.Catalog {
	cat := catalog.New([]catalog.Item{
		{Code: "A1", InspiredBy: "Rose Noir", Brand: "Maison", GenderAffinity: "feminine", Audiences: []string{"feminine"},
			MainAccords: []string{"rose", "woody"}, BestSuitedFor: catalog.Suitability{Season: []string{"fall"}}},
		{Code: "B2", InspiredBy: "Lime Basil", Brand: "Atelier", GenderAffinity: "unisex", Audiences: []string{"unisex"},
			MainAccords: []string{"citrus"}, BestSuitedFor: catalog.Suitability{Season: []string{"summer"}}},
		{Code: "C3", InspiredBy: "Cedar", Brand: "Maison", GenderAffinity: "masculine", Audiences: []string{"masculine"},
			MainAccords: []string{"woody"}},
	}, map[string]catalog.BrandInfo{
		"Maison":  {Name: "Maison", Description: "Paris"},
		"Atelier": {Name: "Atelier"},
	}, 1)
	cat.Source = "test.json"
	return cat
}

func loadedHolder(t *testing.T) *catalog.Holder {
	t.Helper()
	holder := catalog.NewHolder(&stubLoader{cat: testCatalog()}, nil)
	require.NoError(t, holder.Load(context.Background()))
	return holder
}

func failedHolder(t *testing.T) *catalog.Holder {
	t.Helper()
	holder := catalog.NewHolder(&stubLoader{err: pkgerrors.New(pkgerrors.CodeDataUnavailable, "missing file")}, nil)
	require.Error(t, holder.Load(context.Background()))
	return holder
}

func favoritesService(t *testing.T, holder *catalog.Holder) favorites.Service {
	t.Helper()
	svc, err := favorites.NewService(favorites.ServiceParams{Slot: favorites.NewMemorySlot(), Catalog: holder})
	require.NoError(t, err)
	return svc
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dest any) {
	t.Helper()
	envelope := struct {
		Data json.RawMessage `json:"data"`
	}{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, dest))
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	envelope := struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope.Error.Code
}

func cardCodes(view render.View) []string {
	out := []string{}
	for _, c := range view.Cards {
		out = append(out, c.Code)
	}
	return out
}

func TestPerfumeListAppliesQueryFilters(t *testing.T) {
	holder := loadedHolder(t)
	handler := PerfumeList(holder, favoritesService(t, holder), render.DefaultOptions(), nil)

	cases := []struct {
		query string
		want  []string
	}{
		{"/api/v1/perfumes", []string{"A1", "B2", "C3"}},
		{"/api/v1/perfumes?q=ROSE", []string{"A1"}},
		{"/api/v1/perfumes?q=%20basil", []string{"B2"}},
		{"/api/v1/perfumes?q=%20rose", []string{}},
		{"/api/v1/perfumes?brand=%20Maison%20", []string{"A1", "C3"}},
		{"/api/v1/perfumes?brand=Maison", []string{"A1", "C3"}},
		{"/api/v1/perfumes?accords=rose,woody", []string{"A1"}},
		{"/api/v1/perfumes?gender=feminine&gender=unisex", []string{"A1", "B2"}},
		{"/api/v1/perfumes?season=summer", []string{"B2"}},
		{"/api/v1/perfumes?brands=Atelier", []string{"B2"}},
		{"/api/v1/perfumes?favorites=true", []string{}},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.query, nil))
		require.Equal(t, http.StatusOK, rec.Code, tc.query)

		var view render.View
		decodeData(t, rec, &view)
		assert.Equal(t, tc.want, cardCodes(view), tc.query)
		assert.Equal(t, 3, view.Total, tc.query)
	}
}

func TestPerfumeListRejectsBadInput(t *testing.T) {
	holder := loadedHolder(t)
	handler := PerfumeList(holder, favoritesService(t, holder), render.DefaultOptions(), nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/perfumes?favorites=perhaps", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/perfumes", nil)
	req = req.WithContext(middleware.WithClientID(req.Context(), "not a valid id!"))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCatalogEndpointsReportLoadFailure(t *testing.T) {
	holder := failedHolder(t)
	handlers := map[string]http.Handler{
		"list":   PerfumeList(holder, favoritesService(t, holder), render.DefaultOptions(), nil),
		"detail": PerfumeDetail(holder, render.DefaultOptions(), nil),
		"brands": BrandList(holder, nil),
		"facets": FacetList(holder, nil),
	}
	for name, h := range handlers {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, name)
		assert.Equal(t, string(pkgerrors.CodeDataUnavailable), errorCode(t, rec), name)
		assert.Contains(t, rec.Body.String(), render.LoadErrorMessage, name)
	}
}

func TestPerfumeDetail(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/api/v1/perfumes/{code}", PerfumeDetail(loadedHolder(t), render.DefaultOptions(), nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/perfumes/A1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var model struct {
		Code             string `json:"code"`
		BrandDescription string `json:"brand_description"`
		PurchaseURL      string `json:"purchase_url"`
	}
	decodeData(t, rec, &model)
	assert.Equal(t, "A1", model.Code)
	assert.Equal(t, "Paris", model.BrandDescription)
	assert.Equal(t, render.DefaultPurchaseBase+"/search?s=A1", model.PurchaseURL)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/perfumes/ZZ", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, string(pkgerrors.CodeNotFound), errorCode(t, rec))
}

func TestBrandAndFacetLists(t *testing.T) {
	holder := loadedHolder(t)

	rec := httptest.NewRecorder()
	BrandList(holder, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/brands", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var brands []catalog.BrandSummary
	decodeData(t, rec, &brands)
	require.Len(t, brands, 2)
	assert.Equal(t, "Atelier", brands[0].Name)
	assert.Equal(t, 2, brands[1].Count)

	rec = httptest.NewRecorder()
	FacetList(holder, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/facets", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var facets map[string][]struct {
		Value string `json:"value"`
		Count int    `json:"count"`
	}
	decodeData(t, rec, &facets)
	require.Len(t, facets["accords"], 3)
	assert.Equal(t, "woody", facets["accords"][2].Value)
	assert.Equal(t, 2, facets["accords"][2].Count)
}

func TestFavoritesToggleAndList(t *testing.T) {
	holder := loadedHolder(t)
	svc := favoritesService(t, holder)
	toggle := FavoritesToggle(svc, nil)
	list := FavoritesList(svc, nil)

	send := func(client, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/favorites/toggle", strings.NewReader(body))
		req = req.WithContext(middleware.WithClientID(req.Context(), client))
		rec := httptest.NewRecorder()
		toggle.ServeHTTP(rec, req)
		return rec
	}

	rec := send("phone", `{"code":"B2"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp toggleFavoriteResponse
	decodeData(t, rec, &resp)
	assert.Equal(t, toggleFavoriteResponse{Code: "B2", Favorite: true}, resp)

	rec = send("phone", `{"code":"nope"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &resp)
	assert.False(t, resp.Favorite)

	rec = send("phone", `{"code":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/favorites", nil)
	req = req.WithContext(middleware.WithClientID(req.Context(), "phone"))
	rec = httptest.NewRecorder()
	list.ServeHTTP(rec, req)
	var listed struct {
		Codes []string `json:"codes"`
		Count int      `json:"count"`
	}
	decodeData(t, rec, &listed)
	assert.Equal(t, []string{"B2"}, listed.Codes)

	rec = httptest.NewRecorder()
	list.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/favorites", nil))
	decodeData(t, rec, &listed)
	assert.Empty(t, listed.Codes)

	rec = httptest.NewRecorder()
	PerfumeList(holder, svc, render.DefaultOptions(), nil).ServeHTTP(rec,
		httptest.NewRequest(http.MethodGet, "/api/v1/perfumes?favorites", nil).WithContext(middleware.WithClientID(context.Background(), "phone")))
	var view render.View
	decodeData(t, rec, &view)
	assert.Equal(t, []string{"B2"}, cardCodes(view))
	assert.True(t, view.Cards[0].Favorite)
}

type switchLoader struct {
	cats []*catalog.Catalog
	errs []error
	call int
}

func (s *switchLoader) Load(context.Context) (*catalog.Catalog, error) {
	i := s.call
	s.call++
	return s.cats[i], s.errs[i]
}

func TestCatalogReload(t *testing.T) {
	second := catalog.New([]catalog.Item{{Code: "Z9", InspiredBy: "Oud", Brand: "Maison"}}, nil, 0)
	loader := &switchLoader{
		cats: []*catalog.Catalog{testCatalog(), second, nil},
		errs: []error{nil, nil, pkgerrors.New(pkgerrors.CodeDataUnavailable, "gone")},
	}
	holder := catalog.NewHolder(loader, nil)
	require.NoError(t, holder.Load(context.Background()))
	handler := CatalogReload(holder, nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/catalog/reload", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var resp reloadResponse
	decodeData(t, rec, &resp)
	assert.Equal(t, 1, resp.Items)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/catalog/reload", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, 1, holder.Snapshot().Len())
}

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

func TestHealthReady(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "test"}}

	rec := httptest.NewRecorder()
	HealthReady(cfg, loadedHolder(t), map[string]Pinger{"redis": stubPinger{}}, nil).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "test", rec.Header().Get("X-Shobi-Env"))

	rec = httptest.NewRecorder()
	HealthReady(cfg, failedHolder(t), nil, nil).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, string(pkgerrors.CodeDataUnavailable), errorCode(t, rec))

	rec = httptest.NewRecorder()
	HealthReady(cfg, loadedHolder(t), map[string]Pinger{"redis": stubPinger{err: errors.New("refused")}}, nil).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, string(pkgerrors.CodeDependency), errorCode(t, rec))

	rec = httptest.NewRecorder()
	HealthLive(cfg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
