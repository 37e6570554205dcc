package render

import (
	"fmt"
	"strings"

	"github.com/angelmondragon/shobi-backend/internal/catalog"
	"github.com/angelmondragon/shobi-backend/internal/filter"
)

const (
	DefaultPurchaseBase     = "https://leparfum.com.gr/en/module/iqitsearch"
	DefaultPurchaseTemplate = "{base}/search?s={code}"

	EmptyFavoritesMessage = "You have no favorites."
	EmptySearchMessage    = "No perfumes matched your search."
	LoadErrorMessage      = "Error: could not load data."
)

// Favorites is the membership view the renderer needs.
type Favorites interface {
	filter.Membership
	Len() int
}

// Options controls derived links.
type Options struct {
	PurchaseBase     string
	PurchaseTemplate string
}

// DefaultOptions returns the storefront defaults.
func DefaultOptions() Options {
	return Options{PurchaseBase: DefaultPurchaseBase, PurchaseTemplate: DefaultPurchaseTemplate}
}

// PurchaseURL fills the template with the base and the code; the code is
// embedded verbatim.
func (o Options) PurchaseURL(code string) string {
	base := strings.TrimRight(o.PurchaseBase, "/")
	if base == "" {
		base = DefaultPurchaseBase
	}
	tmpl := o.PurchaseTemplate
	if tmpl == "" {
		tmpl = DefaultPurchaseTemplate
	}
	return strings.NewReplacer("{base}", base, "{code}", code).Replace(tmpl)
}

// Badge is a classification affordance; activating it adds Value to the
// Category filter.
type Badge struct {
	Category filter.Category `json:"category"`
	Value    string          `json:"value"`
	Icon     string          `json:"icon"`
	Active   bool            `json:"active"`
}

// Card is one rendered item.
type Card struct {
	Code        string  `json:"code"`
	InspiredBy  string  `json:"inspired_by"`
	Brand       string  `json:"brand"`
	PurchaseURL string  `json:"purchase_url"`
	Favorite    bool    `json:"favorite"`
	Badges      []Badge `json:"badges"`
}

// View is the rendered result page.
type View struct {
	Cards            []Card              `json:"cards"`
	Count            string              `json:"count"`
	Empty            string              `json:"empty,omitempty"`
	Error            string              `json:"error,omitempty"`
	Shown            int                 `json:"shown"`
	Total            int                 `json:"total"`
	FavoritesCount   int                 `json:"favorites_count"`
	ShowingFavorites bool                `json:"showing_favorites"`
	SelectedBrand    string              `json:"selected_brand,omitempty"`
	SearchQuery      string              `json:"search_query,omitempty"`
	Active           map[string][]string `json:"active_filters"`
}

// Build projects the filtered items into a view. total is the size of the
// whole catalog.
func Build(filtered []catalog.Item, total int, favorites Favorites, state filter.State, opts Options) View {
	cards := make([]Card, 0, len(filtered))
	for _, item := range filtered {
		cards = append(cards, Card{
			Code:        item.Code,
			InspiredBy:  item.InspiredBy,
			Brand:       item.Brand,
			PurchaseURL: opts.PurchaseURL(item.Code),
			Favorite:    favorites != nil && favorites.Contains(item.Code),
			Badges:      badges(item, state.Active),
		})
	}

	view := View{
		Cards:            cards,
		Count:            countLine(len(cards), total, state),
		Shown:            len(cards),
		Total:            total,
		ShowingFavorites: state.ShowingFavorites,
		SelectedBrand:    state.SelectedBrand,
		SearchQuery:      state.SearchQuery,
		Active:           activeFilters(state.Active),
	}
	if favorites != nil {
		view.FavoritesCount = favorites.Len()
	}
	if len(cards) == 0 {
		view.Empty = EmptySearchMessage
		if state.ShowingFavorites {
			view.Empty = EmptyFavoritesMessage
		}
	}
	return view
}

// ErrorView is shown when the catalog could not be loaded.
func ErrorView() View {
	return View{
		Cards:  []Card{},
		Count:  LoadErrorMessage,
		Error:  LoadErrorMessage,
		Active: map[string][]string{},
	}
}

func countLine(shown, total int, state filter.State) string {
	switch {
	case state.SelectedBrand != "":
		return fmt.Sprintf("Showing %d of %d results for %s", shown, total, state.SelectedBrand)
	case state.ShowingFavorites:
		return fmt.Sprintf("Showing %d favorite(s) of %d results", shown, total)
	}
	return fmt.Sprintf("Showing %d of %d results", shown, total)
}

func badges(item catalog.Item, active filter.Facets) []Badge {
	out := make([]Badge, 0, len(item.Audiences)+len(item.MainAccords))
	for _, audience := range item.Audiences {
		out = append(out, Badge{
			Category: filter.CategoryGender,
			Value:    audience,
			Icon:     GenderIcon(audience),
			Active:   active.Gender.Has(audience),
		})
	}
	seen := map[string]struct{}{}
	for _, accord := range item.MainAccords {
		if _, dup := seen[accord]; dup {
			continue
		}
		seen[accord] = struct{}{}
		out = append(out, Badge{
			Category: filter.CategoryAccords,
			Value:    accord,
			Icon:     AccordIcon(accord),
			Active:   active.Accords.Has(accord),
		})
	}
	return out
}

func activeFilters(active filter.Facets) map[string][]string {
	out := map[string][]string{}
	for _, category := range filter.Categories {
		if values := active.Values(category); len(values) > 0 {
			out[string(category)] = values
		}
	}
	return out
}
