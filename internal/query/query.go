// Package query builds the search engine query string from the user
// keyword, country and resolved locale.
package query

import (
	"strings"

	"github.com/lucasfdcampos/dealer-api/internal/domain"
)

// channelTemplates são as frases de canal por idioma usadas no modo dealer.
// A ordem dentro de cada lista é preservada no OR-group gerado.
var channelTemplates = map[string][]string{
	"en": {
		"forklift dealer",
		"material handling dealer",
		"mhe distributor",
		"forklift rental",
		"forklift sales and service",
		"used forklift",
		"forklift parts",
		"warehouse equipment distributor",
	},
	"es": {
		"distribuidor de montacargas",
		"concesionario de montacargas",
		"alquiler de montacargas",
		"venta y servicio de montacargas",
		"carretillas elevadoras distribuidor",
	},
	"pt": {
		"revendedor de empilhadeiras",
		"distribuidor de empilhadeira",
		"locação de empilhadeiras",
		"venda e assistência técnica",
		"peças empilhadeira",
	},
	"de": {
		"Gabelstapler Händler",
		"Vertriebspartner",
		"Mietstapler",
		"Service Gabelstapler",
		"Gabelstapler Ersatzteile",
	},
	"fr": {
		"concessionnaire chariots élévateurs",
		"distributeur manutention",
		"location chariots élévateurs",
		"vente et service",
		"pièces chariots élévateurs",
	},
}

// Build returns the single query string for one search invocation.
//
// Dealer mode prefixes the keyword with the locale's channel phrases as a
// quoted OR-group (falling back to the English phrases for unknown
// locales); any other mode passes the keyword through untouched.
func Build(keyword, country, lang, mode string) string {
	suffix := ""
	if country != "" {
		suffix = " " + country
	}
	if mode != domain.ModeDealer {
		return strings.TrimSpace(keyword + suffix)
	}

	templates, ok := channelTemplates[lang]
	if !ok {
		templates = channelTemplates["en"]
	}
	quoted := make([]string, len(templates))
	for i, t := range templates {
		quoted[i] = `"` + t + `"`
	}
	orPart := strings.Join(quoted, " OR ")
	return strings.TrimSpace("(" + orPart + ") " + keyword + suffix)
}
