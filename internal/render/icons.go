package render

import "strings"

const defaultAccordIcon = "fa-solid fa-droplet"

var genderIcons = map[string]string{
	"masculine": "fa-solid fa-mars",
	"feminine":  "fa-solid fa-venus",
	"unisex":    "fa-solid fa-venus-mars",
}

// Accord families keyed by a word the accord name contains.
var accordIcons = []struct {
	family string
	icon   string
}{
	{"citrus", "fa-solid fa-lemon"},
	{"floral", "fa-solid fa-spa"},
	{"rose", "fa-solid fa-spa"},
	{"woody", "fa-solid fa-tree"},
	{"fresh", "fa-solid fa-wind"},
	{"aquatic", "fa-solid fa-water"},
	{"marine", "fa-solid fa-water"},
	{"sweet", "fa-solid fa-candy-cane"},
	{"gourmand", "fa-solid fa-cookie"},
	{"vanilla", "fa-solid fa-cookie"},
	{"spicy", "fa-solid fa-pepper-hot"},
	{"amber", "fa-solid fa-sun"},
	{"oriental", "fa-solid fa-sun"},
	{"leather", "fa-solid fa-horse"},
	{"smoky", "fa-solid fa-smog"},
	{"fruity", "fa-solid fa-apple-whole"},
	{"green", "fa-solid fa-leaf"},
	{"aromatic", "fa-solid fa-mortar-pestle"},
	{"musky", "fa-solid fa-feather"},
	{"powdery", "fa-solid fa-feather"},
}

// GenderIcon returns the icon class of an audience value.
func GenderIcon(audience string) string {
	if icon, ok := genderIcons[audience]; ok {
		return icon
	}
	return "fa-solid fa-user"
}

// AccordIcon returns the icon class of the first matching accord family.
func AccordIcon(accord string) string {
	accord = strings.ToLower(accord)
	for _, entry := range accordIcons {
		if strings.Contains(accord, entry.family) {
			return entry.icon
		}
	}
	return defaultAccordIcon
}
