package catalog

import "time"

// UnknownBrand names items whose grouping carries no brand.
const UnknownBrand = "Unknown Brand"

// Audience values recognised inside the free-text gender affinity.
const (
	AudienceMasculine = "masculine"
	AudienceFeminine  = "feminine"
	AudienceUnisex    = "unisex"
)

// Audiences is the fixed audience vocabulary in display order.
var Audiences = []string{AudienceMasculine, AudienceFeminine, AudienceUnisex}

// Item is one scent entry of the catalog.
type Item struct {
	Code           string      `json:"code"`
	InspiredBy     string      `json:"inspired_by"`
	Brand          string      `json:"brand"`
	Description    string      `json:"description"`
	GenderAffinity string      `json:"gender_affinity"`
	Audiences      []string    `json:"audiences"`
	MainAccords    []string    `json:"main_accords"`
	BestSuitedFor  Suitability `json:"best_suited_for"`
	Notes          Notes       `json:"notes"`
}

// Suitability lists the seasons and occasions an item is recommended for.
type Suitability struct {
	Season   []string `json:"season"`
	Occasion []string `json:"occasion"`
}

// Notes holds the three note tiers of a scent pyramid.
type Notes struct {
	Top   []string `json:"top"`
	Heart []string `json:"heart"`
	Base  []string `json:"base"`
}

// BrandInfo is the metadata of one brand grouping.
type BrandInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// HasAudience reports whether the item was tagged with the audience at load time.
func (i Item) HasAudience(audience string) bool {
	for _, a := range i.Audiences {
		if a == audience {
			return true
		}
	}
	return false
}

// Catalog is an immutable snapshot of a loaded catalog document.
type Catalog struct {
	Items    []Item
	Brands   map[string]BrandInfo
	Rejected int
	Source   string
	LoadedAt time.Time

	index map[string]int
}

// New builds a snapshot and its code index. When codes repeat, lookups resolve
// to the first occurrence.
func New(items []Item, brands map[string]BrandInfo, rejected int) *Catalog {
	if items == nil {
		items = []Item{}
	}
	if brands == nil {
		brands = map[string]BrandInfo{}
	}
	index := make(map[string]int, len(items))
	for i, item := range items {
		if _, exists := index[item.Code]; !exists {
			index[item.Code] = i
		}
	}
	return &Catalog{
		Items:    items,
		Brands:   brands,
		Rejected: rejected,
		index:    index,
	}
}

// Empty returns a snapshot with no items.
func Empty() *Catalog {
	return New(nil, nil, 0)
}

// Len returns the number of items; nil catalogs are empty.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Items)
}

// Lookup returns the item with the given code.
func (c *Catalog) Lookup(code string) (Item, bool) {
	if c == nil {
		return Item{}, false
	}
	idx, ok := c.index[code]
	if !ok {
		return Item{}, false
	}
	return c.Items[idx], true
}

// Contains reports whether code belongs to the snapshot.
func (c *Catalog) Contains(code string) bool {
	_, ok := c.Lookup(code)
	return ok
}

// Brand returns the brand metadata for name.
func (c *Catalog) Brand(name string) (BrandInfo, bool) {
	if c == nil {
		return BrandInfo{}, false
	}
	info, ok := c.Brands[name]
	return info, ok
}
