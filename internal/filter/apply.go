package filter

import (
	"strings"

	"github.com/angelmondragon/shobi-backend/internal/catalog"
	"golang.org/x/text/cases"
)

// Membership answers favorites lookups.
type Membership interface {
	Contains(code string) bool
}

// Apply narrows items through the primary view, facet and search stages.
// The result is a subsequence of items in their original order; items is
// never modified.
func Apply(items []catalog.Item, favorites Membership, state State) []catalog.Item {
	out := make([]catalog.Item, 0, len(items))
	state.Active = state.Active.normalized()

	// Casers are stateful; one per call.
	folder := cases.Fold()
	query := ""
	if state.SearchQuery != "" {
		query = folder.String(state.SearchQuery)
	}

	for _, item := range items {
		if !inPrimaryView(item, favorites, state) {
			continue
		}
		if !matchesGender(item, state.Active.Gender) {
			continue
		}
		if !anyOf(item.BestSuitedFor.Season, state.Active.Season) {
			continue
		}
		if !anyOf(item.BestSuitedFor.Occasion, state.Active.Occasion) {
			continue
		}
		if !allOf(item.MainAccords, state.Active.Accords) {
			continue
		}
		if query != "" && !matchesQuery(folder, item, query) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func inPrimaryView(item catalog.Item, favorites Membership, state State) bool {
	switch {
	case state.SelectedBrand != "":
		return item.Brand == state.SelectedBrand
	case len(state.Active.Brands) > 0:
		return state.Active.Brands.Has(item.Brand)
	case state.ShowingFavorites:
		return favorites != nil && favorites.Contains(item.Code)
	}
	return true
}

// Vocabulary values match by audience tag; anything else falls back to
// substring containment on the raw affinity.
func matchesGender(item catalog.Item, selected Set) bool {
	if len(selected) == 0 {
		return true
	}
	for value := range selected {
		if isAudience(value) {
			if item.HasAudience(value) {
				return true
			}
			continue
		}
		if strings.Contains(item.GenderAffinity, value) {
			return true
		}
	}
	return false
}

func isAudience(value string) bool {
	for _, a := range catalog.Audiences {
		if a == value {
			return true
		}
	}
	return false
}

func anyOf(values []string, selected Set) bool {
	if len(selected) == 0 {
		return true
	}
	for _, v := range values {
		if selected.Has(v) {
			return true
		}
	}
	return false
}

func allOf(values []string, selected Set) bool {
	if len(selected) == 0 {
		return true
	}
	have := make(map[string]struct{}, len(values))
	for _, v := range values {
		have[v] = struct{}{}
	}
	for v := range selected {
		if _, ok := have[v]; !ok {
			return false
		}
	}
	return true
}

func matchesQuery(folder cases.Caser, item catalog.Item, query string) bool {
	return strings.Contains(folder.String(item.InspiredBy), query) ||
		strings.Contains(folder.String(item.Brand), query) ||
		strings.Contains(folder.String(item.Code), query)
}
