package catalog

import "sort"

// BrandSummary is a brand with the number of items it carries.
type BrandSummary struct {
	BrandInfo
	Count int `json:"count"`
}

// BrandSummaries lists every brand that owns at least one item, sorted by name.
// Brands without metadata get an empty description.
func (c *Catalog) BrandSummaries() []BrandSummary {
	if c == nil {
		return []BrandSummary{}
	}
	counts := map[string]int{}
	for _, item := range c.Items {
		counts[item.Brand]++
	}
	out := make([]BrandSummary, 0, len(counts))
	for name, count := range counts {
		info, ok := c.Brands[name]
		if !ok {
			info = BrandInfo{Name: name}
		}
		out = append(out, BrandSummary{BrandInfo: info, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
