package session

import (
	"context"

	"github.com/angelmondragon/shobi-backend/internal/catalog"
	"github.com/angelmondragon/shobi-backend/internal/details"
	"github.com/angelmondragon/shobi-backend/internal/filter"
	"github.com/angelmondragon/shobi-backend/internal/render"
)

// Favorites is the mutable favorites set a session works against.
type Favorites interface {
	render.Favorites
	Toggle(ctx context.Context, code string) bool
}

// Params groups the collaborators of a session.
type Params struct {
	Catalog   *catalog.Catalog
	Favorites Favorites
	Options   render.Options
	// LoadErr marks a session whose catalog failed to load; every view is
	// the error view.
	LoadErr error
	State   filter.State
}

// Session owns one browsing state. Every mutation returns the re-rendered view.
type Session struct {
	catalog   *catalog.Catalog
	favorites Favorites
	opts      render.Options
	loadErr   error
	state     filter.State
}

func New(params Params) *Session {
	cat := params.Catalog
	if cat == nil {
		cat = catalog.Empty()
	}
	return &Session{
		catalog:   cat,
		favorites: params.Favorites,
		opts:      params.Options,
		loadErr:   params.LoadErr,
		state:     params.State,
	}
}

// State returns a copy of the current filter state.
func (s *Session) State() filter.State {
	return s.state
}

func (s *Session) Search(query string) render.View {
	s.state.SetSearch(query)
	return s.View()
}

func (s *Session) ToggleFavoritesView() render.View {
	s.state.ToggleFavoritesView()
	return s.View()
}

func (s *Session) SelectBrand(name string) render.View {
	s.state.SelectBrand(name)
	return s.View()
}

func (s *Session) ActivateFilter(category filter.Category, value string) render.View {
	s.state.Activate(category, value)
	return s.View()
}

func (s *Session) DeactivateFilter(category filter.Category, value string) render.View {
	s.state.Deactivate(category, value)
	return s.View()
}

func (s *Session) ClearFilters() render.View {
	s.state.Clear()
	return s.View()
}

// ToggleFavorite flips membership of a known code. Unknown codes change
// nothing. It reports the membership afterwards.
func (s *Session) ToggleFavorite(ctx context.Context, code string) (bool, render.View) {
	if s.favorites == nil {
		return false, s.View()
	}
	if !s.catalog.Contains(code) {
		return s.favorites.Contains(code), s.View()
	}
	member := s.favorites.Toggle(ctx, code)
	return member, s.View()
}

// View runs the filter pipeline and renders the result.
func (s *Session) View() render.View {
	if s.loadErr != nil {
		return render.ErrorView()
	}
	var favs filter.Membership
	if s.favorites != nil {
		favs = s.favorites
	}
	filtered := filter.Apply(s.catalog.Items, favs, s.state)
	var rf render.Favorites
	if s.favorites != nil {
		rf = s.favorites
	}
	return render.Build(filtered, s.catalog.Len(), rf, s.state, s.opts)
}

// Details returns the detail model of code.
func (s *Session) Details(code string) (details.Model, bool) {
	return details.Show(s.catalog, code, s.opts)
}
