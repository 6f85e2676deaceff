// Package locale maps free-text country names to one of the supported
// language/market profiles (en, es, pt, de, fr).
package locale

import "strings"

// Supported language codes.
const (
	EN = "en"
	ES = "es"
	PT = "pt"
	DE = "de"
	FR = "fr"
)

// Country keyword tables, checked in priority order: es, pt, de, fr.
// Matching is substring-based on the normalized country, so "Mexico City"
// and "mexico" both resolve to es.
var (
	esCountries = []string{"spain", "mexico", "chile", "argentina", "colombia", "peru"}
	ptCountries = []string{"brazil", "portugal"}
	deCountries = []string{"germany", "austria", "switzerland"}
	frCountries = []string{"france"}
)

// Resolve returns the locale for a country/lang pair.
//
// An explicit lang other than "auto" is returned verbatim, without
// validating it against the supported set; downstream lookup tables fall
// back to their English entries for unknown codes.
func Resolve(country, lang string) string {
	if lang != "" && lang != "auto" {
		return lang
	}

	c := strings.ToLower(strings.TrimSpace(country))
	switch {
	case containsAny(c, esCountries):
		return ES
	case containsAny(c, ptCountries):
		return PT
	case containsAny(c, deCountries):
		return DE
	case containsAny(c, frCountries):
		return FR
	}
	return EN
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
