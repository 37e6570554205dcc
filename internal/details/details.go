package details

import (
	"github.com/angelmondragon/shobi-backend/internal/catalog"
	"github.com/angelmondragon/shobi-backend/internal/render"
)

// NoDescription is shown when an item has no description.
const NoDescription = "No description available."

// Tier is one non-empty level of the note pyramid.
type Tier struct {
	Name  string   `json:"name"`
	Notes []string `json:"notes"`
}

// Model is the full attribute set of one item.
type Model struct {
	Code             string   `json:"code"`
	InspiredBy       string   `json:"inspired_by"`
	Brand            string   `json:"brand"`
	BrandDescription string   `json:"brand_description,omitempty"`
	GenderAffinity   string   `json:"gender_affinity"`
	Audiences        []string `json:"audiences"`
	MainAccords      []string `json:"main_accords"`
	Seasons          []string `json:"seasons"`
	Occasions        []string `json:"occasions"`
	Notes            []Tier   `json:"notes"`
	Description      string   `json:"description"`
	DescriptionHTML  string   `json:"description_html"`
	PurchaseURL      string   `json:"purchase_url"`
	Boost            Boost    `json:"boost"`
}

// Show builds the detail model of code. A miss returns false.
func Show(cat *catalog.Catalog, code string, opts render.Options) (Model, bool) {
	item, ok := cat.Lookup(code)
	if !ok {
		return Model{}, false
	}

	model := Model{
		Code:            item.Code,
		InspiredBy:      item.InspiredBy,
		Brand:           item.Brand,
		GenderAffinity:  item.GenderAffinity,
		Audiences:       item.Audiences,
		MainAccords:     item.MainAccords,
		Seasons:         item.BestSuitedFor.Season,
		Occasions:       item.BestSuitedFor.Occasion,
		Notes:           tiers(item.Notes),
		Description:     item.Description,
		DescriptionHTML: DescriptionHTML(item.Description),
		PurchaseURL:     opts.PurchaseURL(item.Code),
		Boost:           BoostFor(item.MainAccords),
	}
	if model.Description == "" {
		model.Description = NoDescription
	}
	if info, ok := cat.Brand(item.Brand); ok {
		model.BrandDescription = info.Description
	}
	return model, true
}

func tiers(notes catalog.Notes) []Tier {
	out := make([]Tier, 0, 3)
	for _, tier := range []Tier{
		{Name: "top", Notes: notes.Top},
		{Name: "heart", Notes: notes.Heart},
		{Name: "base", Notes: notes.Base},
	} {
		if len(tier.Notes) > 0 {
			out = append(out, tier)
		}
	}
	return out
}
