package filter

import (
	"sort"

	"github.com/angelmondragon/shobi-backend/internal/catalog"
)

// FacetCount is one selectable value and the number of items carrying it.
type FacetCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// CountFacets tallies the distinct values of every category over items.
// Values are sorted; an item counts once per value.
func CountFacets(items []catalog.Item) map[Category][]FacetCount {
	tallies := map[Category]map[string]int{}
	for _, c := range Categories {
		tallies[c] = map[string]int{}
	}
	for _, item := range items {
		tallyDistinct(tallies[CategoryGender], item.Audiences)
		tallyDistinct(tallies[CategoryAccords], item.MainAccords)
		tallyDistinct(tallies[CategorySeason], item.BestSuitedFor.Season)
		tallyDistinct(tallies[CategoryOccasion], item.BestSuitedFor.Occasion)
		tallyDistinct(tallies[CategoryBrands], []string{item.Brand})
	}

	out := make(map[Category][]FacetCount, len(tallies))
	for category, counts := range tallies {
		list := make([]FacetCount, 0, len(counts))
		for value, n := range counts {
			list = append(list, FacetCount{Value: value, Count: n})
		}
		sort.Slice(list, func(i, j int) bool { return list[i].Value < list[j].Value })
		out[category] = list
	}
	return out
}

func tallyDistinct(counts map[string]int, values []string) {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		counts[v]++
	}
}
