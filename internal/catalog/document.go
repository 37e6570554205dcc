package catalog

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	pkgerrors "github.com/angelmondragon/shobi-backend/pkg/errors"
	"github.com/go-playground/validator/v10"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// Format identifies the encoding of a catalog document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat maps a configured format name; blank yields an empty format so
// callers can fall back to detection.
func ParseFormat(value string) Format {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yaml", "yml":
		return FormatYAML
	case "json":
		return FormatJSON
	}
	return ""
}

var validate = validator.New()

// identity holds the mandatory fields checked before a record is kept.
type identity struct {
	Code       string `validate:"required"`
	InspiredBy string `validate:"required"`
}

// Parse decodes a catalog document and flattens it into a snapshot.
//
// The document is either a sequence of brand groupings ({brandInfo, perfumes})
// or a flat sequence of item records. Records missing a code or display name
// are dropped and only counted in Catalog.Rejected.
func Parse(data []byte, format Format) (*Catalog, error) {
	var doc any
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	default:
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDataUnavailable, err, "malformed catalog document")
	}

	entries, ok := doc.([]any)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeDataUnavailable, "catalog document must be a sequence").
			WithDetails(map[string]any{"got": fmt.Sprintf("%T", doc)})
	}

	b := &builder{brands: map[string]BrandInfo{}}
	if isNested(entries) {
		for _, entry := range entries {
			b.addGroup(entry)
		}
	} else {
		for _, entry := range entries {
			record, _ := entry.(map[string]any)
			b.addRecord(record, "")
		}
	}
	return New(b.items, b.brands, b.rejected), nil
}

func isNested(entries []any) bool {
	if len(entries) == 0 {
		return false
	}
	first, ok := entries[0].(map[string]any)
	if !ok {
		return false
	}
	_, ok = first["perfumes"].([]any)
	return ok
}

type builder struct {
	items    []Item
	brands   map[string]BrandInfo
	rejected int
}

func (b *builder) addGroup(entry any) {
	group, ok := entry.(map[string]any)
	if !ok {
		return
	}
	perfumes, ok := group["perfumes"].([]any)
	if !ok {
		return
	}

	info, _ := group["brandInfo"].(map[string]any)
	name := text(info["name"])
	if name == "" {
		name = UnknownBrand
	}
	if _, seen := b.brands[name]; !seen {
		b.brands[name] = BrandInfo{Name: name, Description: text(info["description"])}
	}

	for _, p := range perfumes {
		record, _ := p.(map[string]any)
		b.addRecord(record, name)
	}
}

// addRecord normalizes one item record. A non-empty brand overrides whatever
// brand the record carries.
func (b *builder) addRecord(record map[string]any, brand string) {
	if record == nil {
		b.rejected++
		return
	}

	id := identity{Code: text(record["code"]), InspiredBy: text(record["inspiredBy"])}
	if err := validate.Struct(id); err != nil {
		b.rejected++
		return
	}

	if brand == "" {
		brand = text(record["brand"])
		if brand == "" {
			brand = UnknownBrand
		}
		if _, seen := b.brands[brand]; !seen {
			b.brands[brand] = BrandInfo{Name: brand}
		}
	}

	suited, _ := record["bestSuitedFor"].(map[string]any)
	notes, _ := record["notes"].(map[string]any)
	affinity := category(text(record["genderAffinity"]))

	b.items = append(b.items, Item{
		Code:           id.Code,
		InspiredBy:     id.InspiredBy,
		Brand:          brand,
		Description:    text(record["description"]),
		GenderAffinity: affinity,
		Audiences:      audiencesOf(affinity),
		MainAccords:    categories(record["mainAccords"]),
		BestSuitedFor: Suitability{
			Season:   categories(suited["season"]),
			Occasion: categories(suited["occasion"]),
		},
		Notes: Notes{
			Top:   texts(notes["top"]),
			Heart: texts(notes["heart"]),
			Base:  texts(notes["base"]),
		},
	})
}

func audiencesOf(affinity string) []string {
	out := []string{}
	for _, audience := range Audiences {
		if strings.Contains(affinity, audience) {
			out = append(out, audience)
		}
	}
	return out
}

// text renders scalar values as trimmed strings; anything else is blank.
func text(v any) string {
	switch value := v.(type) {
	case string:
		return strings.TrimSpace(value)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	}
	return ""
}

func category(value string) string {
	return strings.ToLower(norm.NFKC.String(strings.TrimSpace(value)))
}

// texts reads a list of display strings, keeping their case.
func texts(v any) []string {
	return collect(v, func(s string) string { return s })
}

// categories reads a list of categorical values lowercased. The legacy single
// string form ("spring/summer") is split on '/' and ','.
func categories(v any) []string {
	return collect(v, category)
}

func collect(v any, transform func(string) string) []string {
	out := []string{}
	switch value := v.(type) {
	case []any:
		for _, element := range value {
			if s := transform(text(element)); s != "" {
				out = append(out, s)
			}
		}
	case string:
		for _, part := range strings.FieldsFunc(value, func(r rune) bool { return r == '/' || r == ',' }) {
			if s := transform(strings.TrimSpace(part)); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
