package pricing

import (
	"regexp"
	"strings"

	"github.com/ternarybob/salecaption/internal/models"
)

// Placeholders rendered when a format is missing its value.
const (
	PlaceholderValue    = "[Price Value]"
	PlaceholderMultiBuy = "[X for $Y Price]"
	PlaceholderCustom   = "[Custom Price]"
)

var firstNumber = regexp.MustCompile(`\d*\.?\d+`)

// perPoundAliases are extra compacted spellings accepted for the "/ lb." unit.
var perPoundAliases = []string{"xlb", "perlb"}

// unitFormat describes a catalog entry priced by unit.
type unitFormat struct {
	format   models.PriceFormat
	currency string
	unit     string
	perPound bool
}

var unitFormats = map[models.PriceFormat]unitFormat{
	models.PriceCentsPerPound:   {format: models.PriceCentsPerPound, currency: "¢", unit: "/ lb.", perPound: true},
	models.PriceDollarsPerPound: {format: models.PriceDollarsPerPound, currency: "$", unit: "/ lb.", perPound: true},
	models.PriceDollarsEach:     {format: models.PriceDollarsEach, currency: "$", unit: "each"},
	models.PriceCentsEach:       {format: models.PriceCentsEach, currency: "¢", unit: "each"},
}

// Normalize maps an extracted price onto the first matching catalog format.
// Unmatched text becomes a CUSTOM price carrying the text verbatim; absent
// values become CUSTOM "N/A".
func Normalize(text string) models.PriceSelection {
	text = strings.TrimSpace(text)
	if models.IsSentinel(text) {
		return models.PriceSelection{Format: models.PriceCustom, Custom: "N/A"}
	}

	for _, opt := range models.PriceFormats() {
		switch opt.Format {
		case models.PriceCustom:
			continue
		case models.PriceMultiBuy:
			if isMultiBuy(text) {
				return models.PriceSelection{Format: models.PriceMultiBuy, Value: text}
			}
		default:
			uf, ok := unitFormats[opt.Format]
			if !ok || !uf.matches(text) {
				continue
			}
			value := firstNumber.FindString(text)
			if value == "" {
				return models.PriceSelection{Format: models.PriceCustom, Custom: text}
			}
			return models.PriceSelection{Format: uf.format, Value: value}
		}
	}
	return models.PriceSelection{Format: models.PriceCustom, Custom: text}
}

func isMultiBuy(text string) bool {
	return strings.Contains(strings.ToLower(text), "for") &&
		(strings.Contains(text, "$") || strings.Contains(text, "¢"))
}

// matches requires the unit to appear and, when the text names a currency, that it agrees.
func (u unitFormat) matches(text string) bool {
	c := compact(text)
	found := strings.Contains(c, compact(u.unit))
	if !found && u.perPound {
		for _, alias := range perPoundAliases {
			if strings.Contains(c, alias) {
				found = true
				break
			}
		}
	}
	if !found {
		return false
	}

	hasDollar := strings.Contains(text, "$")
	hasCent := strings.Contains(text, "¢")
	switch {
	case hasDollar && !hasCent:
		return u.currency == "$"
	case hasCent && !hasDollar:
		return u.currency == "¢"
	}
	return true
}

// compact lowercases s and drops spaces and dots so "/ lb." and "/lb" compare equal.
func compact(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '.' || r == '\t' {
			return -1
		}
		return r
	}, strings.ToLower(s))
}

// Render produces the display string of a price selection.
func Render(sel models.PriceSelection) string {
	switch sel.Format {
	case models.PriceCustom:
		if sel.Custom == "" {
			return PlaceholderCustom
		}
		return sel.Custom
	case models.PriceMultiBuy:
		if sel.Value == "" {
			return PlaceholderMultiBuy
		}
		return sel.Value
	}

	uf, ok := unitFormats[sel.Format]
	if !ok {
		return sel.Value
	}
	if sel.Value == "" {
		return PlaceholderValue + " " + uf.unit
	}
	switch uf.format {
	case models.PriceCentsPerPound:
		return sel.Value + "¢ / lb."
	case models.PriceDollarsPerPound:
		return "$" + sel.Value + " / lb."
	case models.PriceDollarsEach:
		return "$" + sel.Value + " each"
	case models.PriceCentsEach:
		return sel.Value + "¢ each"
	}
	return sel.Value
}

// HasPlaceholder reports whether a rendered price is unusable in a sale caption.
func HasPlaceholder(rendered string) bool {
	if strings.TrimSpace(rendered) == "" {
		return true
	}
	for _, marker := range []string{PlaceholderValue, PlaceholderMultiBuy, PlaceholderCustom, "N/A"} {
		if strings.Contains(rendered, marker) {
			return true
		}
	}
	return false
}
