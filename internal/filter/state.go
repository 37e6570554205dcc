package filter

import (
	"sort"
	"strings"
)

// Category names a facet of the active filters.
type Category string

const (
	CategoryGender   Category = "gender"
	CategoryAccords  Category = "accords"
	CategorySeason   Category = "season"
	CategoryOccasion Category = "occasion"
	CategoryBrands   Category = "brands"
)

// Categories lists every facet in display order.
var Categories = []Category{CategoryGender, CategoryAccords, CategorySeason, CategoryOccasion, CategoryBrands}

// ParseCategory maps user supplied names, singular or plural, to a category.
func ParseCategory(value string) (Category, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "gender", "genders", "audience", "audiences":
		return CategoryGender, true
	case "accord", "accords":
		return CategoryAccords, true
	case "season", "seasons":
		return CategorySeason, true
	case "occasion", "occasions":
		return CategoryOccasion, true
	case "brand", "brands":
		return CategoryBrands, true
	}
	return "", false
}

// Set is an unordered collection of facet values.
type Set map[string]struct{}

// NewSet builds a set from values, skipping blanks.
func NewSet(values ...string) Set {
	s := Set{}
	for _, v := range values {
		if v != "" {
			s[v] = struct{}{}
		}
	}
	return s
}

func (s Set) Has(value string) bool {
	_, ok := s[value]
	return ok
}

// Values returns the members sorted.
func (s Set) Values() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Facets holds the selected values per category.
type Facets struct {
	Gender   Set
	Accords  Set
	Season   Set
	Occasion Set
	Brands   Set
}

func (f *Facets) set(category Category) *Set {
	switch category {
	case CategoryGender:
		return &f.Gender
	case CategoryAccords:
		return &f.Accords
	case CategorySeason:
		return &f.Season
	case CategoryOccasion:
		return &f.Occasion
	case CategoryBrands:
		return &f.Brands
	}
	return nil
}

// Values returns the selected values of one category, sorted.
func (f Facets) Values(category Category) []string {
	s := f.set(category)
	if s == nil {
		return nil
	}
	return s.Values()
}

func (f Facets) normalized() Facets {
	out := Facets{}
	for _, category := range Categories {
		src := f.set(category)
		if len(*src) == 0 {
			continue
		}
		dst := out.set(category)
		*dst = Set{}
		for v := range *src {
			if n := normalizeValue(category, v); n != "" {
				(*dst)[n] = struct{}{}
			}
		}
	}
	return out
}

// State is the session scoped filter state. The zero value has nothing selected.
type State struct {
	SearchQuery      string
	SelectedBrand    string
	ShowingFavorites bool
	Active           Facets
}

// SetSearch replaces the query and leaves the favorites view.
func (s *State) SetSearch(query string) {
	s.SearchQuery = query
	s.ShowingFavorites = false
}

// ToggleFavoritesView flips the favorites view and clears the query.
func (s *State) ToggleFavoritesView() {
	s.ShowingFavorites = !s.ShowingFavorites
	s.SearchQuery = ""
}

// SelectBrand restricts the view to one brand; blank clears it.
func (s *State) SelectBrand(name string) {
	s.SelectedBrand = strings.TrimSpace(name)
}

// Activate adds a value to a category. Blank values and unknown categories are ignored.
func (s *State) Activate(category Category, value string) {
	value = normalizeValue(category, value)
	set := s.Active.set(category)
	if set == nil || value == "" {
		return
	}
	if *set == nil {
		*set = Set{}
	}
	(*set)[value] = struct{}{}
}

// Deactivate removes a value from a category.
func (s *State) Deactivate(category Category, value string) {
	set := s.Active.set(category)
	if set == nil {
		return
	}
	delete(*set, normalizeValue(category, value))
}

// Toggle activates the value when absent and deactivates it otherwise.
// It reports whether the value is active afterwards.
func (s *State) Toggle(category Category, value string) bool {
	set := s.Active.set(category)
	if set == nil {
		return false
	}
	if set.Has(normalizeValue(category, value)) {
		s.Deactivate(category, value)
		return false
	}
	s.Activate(category, value)
	return set.Has(normalizeValue(category, value))
}

// Clear drops every active facet; the query, brand and view are kept.
func (s *State) Clear() {
	s.Active = Facets{}
}

// IsZero reports whether nothing narrows the catalog.
func (s State) IsZero() bool {
	return s.SearchQuery == "" &&
		s.SelectedBrand == "" &&
		!s.ShowingFavorites &&
		len(s.Active.Gender) == 0 &&
		len(s.Active.Accords) == 0 &&
		len(s.Active.Season) == 0 &&
		len(s.Active.Occasion) == 0 &&
		len(s.Active.Brands) == 0
}

// Brand names keep their case; every other facet is compared lowercased.
func normalizeValue(category Category, value string) string {
	value = strings.TrimSpace(value)
	if category == CategoryBrands {
		return value
	}
	return strings.ToLower(value)
}
