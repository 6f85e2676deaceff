// Package transform converts raw search hits into scored candidate leads.
//
// Two independent OEM layers keep manufacturer sites out of the results:
// a hostname suffix blocklist (hard exclusion, counted separately) and a
// brand-keyword score penalty that also catches OEM-affiliated sites on
// non-blocklisted domains.
package transform

import (
	"net/url"
	"strings"

	"github.com/lucasfdcampos/dealer-api/internal/domain"
)

// oemBlocklistSuffixes são os sufixos de domínio dos fabricantes (OEM).
// Apenas match de sufixo com ponto, para não derrubar subdomínios de
// revendedores que contenham a marca no nome.
var oemBlocklistSuffixes = []string{
	".hyster.com",
	".hyster-yale.com",
	".toyotaforklift.com",
	".toyotaforklifts.com",
	".toyotamaterialhandling.com",
	".jungheinrich.com",
	".jungheinrich.cn",
	".crown.com",
	".linde-mh.com",
	".linde-mh.cn",
	".still.de",
	".still.com",
	".komatsu.com",
	".logisnext.com",
	".mitsubishi-logisnext.com",
	".hyundai-ce.com",
	".doosan.com",
	".kalmarglobal.com",
}

// oemKeywords penalizam a pontuação quando a marca aparece no hostname
// ou no texto do resultado.
var oemKeywords = []string{
	"hyster",
	"toyota",
	"jungheinrich",
	"crown",
	"linde",
	"still",
	"komatsu",
	"mitsubishi",
	"hyundai",
	"doosan",
	"kalmar",
}

// positiveKeywords cover dealer/distributor/rental/service/parts
// terminology across the supported locales. Each distinct keyword present
// in the text adds its own +12.
var positiveKeywords = []string{
	"dealer",
	"distributor",
	"rental",
	"service",
	"parts",
	"used forklift",
	"warehouse",
	// ES
	"concesionario",
	"distribuidor",
	"alquiler",
	"servicio",
	"repuestos",
	"montacargas",
	"carretillas elevadoras",
	// PT
	"revendedor",
	"locação",
	"assistência",
	"peças",
	"empilhadeira",
	"empilhadeiras",
	// DE
	"händler",
	"miet",
	"ersatzteile",
	"gabelstapler",
	// FR
	"concessionnaire",
	"location",
	"pièces",
	"chariots élévateurs",
}

// forkliftTerms add a one-time +15 when any product term is present.
var forkliftTerms = []string{
	"forklift",
	"mhe",
	"montacargas",
	"carretillas elevadoras",
	"empilhadeira",
	"empilhadeiras",
	"gabelstapler",
	"chariots élévateurs",
}

var contactWords = []string{"contact", "contacto", "kontakt"}

// Score thresholds for dealer-mode filtering. Non-English search coverage
// is sparser and noisier, so the bar is lower outside en.
const (
	DealerThresholdEN    = 35
	DealerThresholdOther = 28
)

// Threshold returns the dealer-mode score cutoff for a locale, or 0
// outside dealer mode (no score filtering).
func Threshold(mode, lang string) int {
	if mode != domain.ModeDealer {
		return 0
	}
	if lang == "en" {
		return DealerThresholdEN
	}
	return DealerThresholdOther
}

// Result is the outcome of transforming one raw hit.
type Result struct {
	Lead    domain.Lead
	Blocked bool
}

// FromHit converts a raw hit into a scored Lead.
//
// Returns (nil, false) when the link does not parse; such hits simply do
// not produce a lead and are not counted anywhere. Returns Blocked=true
// when the hostname matches the OEM suffix blocklist.
func FromHit(hit domain.RawHit, country, mode string) (*Result, bool) {
	if hit.Link == "" {
		return nil, false
	}
	u, err := url.Parse(hit.Link)
	if err != nil || u.Hostname() == "" {
		return nil, false
	}
	website := strings.ToLower(u.Hostname())

	if IsBlockedDomain(website) {
		return &Result{Blocked: true}, true
	}

	company := strings.TrimSpace(hit.Title)
	if company == "" {
		company = strings.TrimPrefix(website, "www.")
	}

	text := hit.Title + " " + hit.Snippet + " " + hit.DisplayLink

	return &Result{
		Lead: domain.Lead{
			Country:   country,
			Company:   company,
			Website:   website,
			SourceURL: hit.Link,
			Score:     ComputeScore(text, website, mode),
			Tags:      DeriveTags(text),
		},
	}, true
}

// IsBlockedDomain reports whether the hostname is an OEM domain.
// A host matches when it equals a blocklisted domain or ends with the
// dotted suffix; "myhyster.com" does not match ".hyster.com".
func IsBlockedDomain(hostname string) bool {
	host := strings.TrimPrefix(strings.ToLower(hostname), "www.")
	for _, suffix := range oemBlocklistSuffixes {
		if host == strings.TrimPrefix(suffix, ".") || strings.HasSuffix(host, suffix) {
			return true
		}
	}
	return false
}

// ComputeScore applies the dealer heuristic to the hit text and hostname.
// The result is clamped to [0,100].
func ComputeScore(text, website, mode string) int {
	lower := strings.ToLower(text)
	hostLower := strings.ToLower(website)
	score := 10

	for _, kw := range positiveKeywords {
		if strings.Contains(lower, kw) {
			score += 12
		}
	}

	for _, kw := range forkliftTerms {
		if strings.Contains(lower, kw) {
			score += 15
			break
		}
	}

	for _, w := range contactWords {
		if strings.Contains(lower, w) {
			score += 6
			break
		}
	}

	for _, kw := range oemKeywords {
		if strings.Contains(hostLower, kw) || strings.Contains(lower, kw) {
			score -= 28
			break
		}
	}

	if mode == domain.ModeDealer {
		score += 5
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// tagRules are ordered presence tests; a tag is emitted at most once, in
// first-match order.
var tagRules = []struct {
	tag   string
	words []string
}{
	{"dealer", []string{"dealer", "concesionario", "distributor"}},
	{"rental", []string{"rental", "alquiler", "locação", "miet"}},
	{"service", []string{"service", "servicio"}},
	{"parts", []string{"parts", "pieza", "peças"}},
}

// DeriveTags classifies the hit text into dealer/rental/service/parts tags.
func DeriveTags(text string) []string {
	lower := strings.ToLower(text)
	tags := []string{}
	for _, rule := range tagRules {
		for _, w := range rule.words {
			if strings.Contains(lower, w) {
				tags = append(tags, rule.tag)
				break
			}
		}
	}
	return tags
}
