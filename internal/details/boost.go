package details

const (
	ClassHeavy = "heavy"
	ClassLight = "light"
)

// Dose is the additive amount recommended for one bottle size.
type Dose struct {
	Bottle string `json:"bottle"`
	Amount string `json:"amount"`
}

// Boost is the dosage guide of an item.
type Boost struct {
	Class  string `json:"class"`
	Dosage []Dose `json:"dosage"`
}

var heavyAccords = map[string]struct{}{
	"gourmand": {},
	"oriental": {},
	"amber":    {},
	"spicy":    {},
	"leather":  {},
	"woody":    {},
}

// BoostFor classifies accords as heavy when any heavy accord is present.
func BoostFor(accords []string) Boost {
	for _, accord := range accords {
		if _, ok := heavyAccords[accord]; ok {
			return Boost{Class: ClassHeavy, Dosage: []Dose{
				{Bottle: "30ml", Amount: "2ml"},
				{Bottle: "50ml", Amount: "3-4ml"},
				{Bottle: "100ml", Amount: "5ml"},
			}}
		}
	}
	return Boost{Class: ClassLight, Dosage: []Dose{
		{Bottle: "30ml", Amount: "1ml"},
		{Bottle: "50ml", Amount: "2ml"},
		{Bottle: "100ml", Amount: "3ml"},
	}}
}

// For returns the amount for a bottle size.
func (b Boost) For(bottle string) (string, bool) {
	for _, d := range b.Dosage {
		if d.Bottle == bottle {
			return d.Amount, true
		}
	}
	return "", false
}
