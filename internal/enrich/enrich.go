// Package enrich augments leads with a contact email and phone found by
// visiting a small set of likely pages on the lead's own website.
package enrich

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/lucasfdcampos/dealer-api/internal/domain"
)

// maxPageVisits caps how many pages are fetched per lead. Unreachable
// pages do not consume the budget.
const maxPageVisits = 4

// maxResponseBytes limits how much of a contact page is read.
const maxResponseBytes = 2 * 1024 * 1024

// universalPaths are tried on every site, in order. Localized variants
// are appended per locale.
var universalPaths = []string{"/", "/contact", "/contact-us", "/about", "/about-us"}

var localizedPaths = map[string][]string{
	"es": {"/contacto", "/contactenos", "/acerca", "/acerca-de"},
	"pt": {"/contato", "/fale-conosco"},
	"de": {"/kontakt", "/uber-uns"},
	"fr": {"/contact", "/a-propos"},
}

var (
	emailRe = regexp.MustCompile(`(?i)[A-Z0-9._%+\-]+@[A-Z0-9.\-]+\.[A-Z]{2,}`)
	phoneRe = regexp.MustCompile(`\+?\d[\d\s().\-]{6,}\d`)
	digitRe = regexp.MustCompile(`\D`)
)

// Enricher crawls candidate contact pages with a per-page timeout.
type Enricher struct {
	timeout time.Duration
	workers int
	http    *http.Client
}

// New creates an Enricher. timeout bounds each page fetch; workers sets
// the pool size used by EnrichAll.
func New(timeout time.Duration, workers int) *Enricher {
	return &Enricher{
		timeout: timeout,
		workers: workers,
		http:    &http.Client{},
	}
}

// Single visits candidate pages of a website in order, stopping once both
// an email and a phone were found or the page budget is spent. Individual
// fetch failures skip to the next candidate path.
func (e *Enricher) Single(ctx context.Context, website, lang, country string) (domain.EnrichmentResult, error) {
	origin := safeOrigin(website)
	paths := BuildPaths(lang)

	var email, phone string
	visited := 0

	for _, p := range paths {
		if visited >= maxPageVisits || (email != "" && phone != "") {
			break
		}
		if err := ctx.Err(); err != nil {
			return domain.EnrichmentResult{}, err
		}
		body, err := e.fetchPage(ctx, origin+p)
		if err != nil {
			continue
		}
		visited++
		if email == "" {
			email = ExtractEmail(body)
		}
		if phone == "" {
			phone = ExtractPhone(body)
		}
	}

	return domain.EnrichmentResult{
		Email:      email,
		Phone:      phone,
		EmailScore: ScoreEmail(email),
		PhoneScore: ScorePhone(phone, country),
	}, nil
}

// BuildPaths returns the ordered candidate path list for a locale.
func BuildPaths(lang string) []string {
	paths := make([]string, 0, len(universalPaths)+4)
	paths = append(paths, universalPaths...)
	paths = append(paths, localizedPaths[lang]...)
	return paths
}

// safeOrigin derives scheme+host from a website value, defaulting to https
// for bare hostnames or unparseable input.
func safeOrigin(website string) string {
	raw := website
	if !strings.HasPrefix(raw, "http") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "https://" + website
	}
	return u.Scheme + "://" + u.Host
}

// fetchPage GETs one candidate page under the per-page timeout. Non-2xx
// counts as a failed fetch; non-HTML bodies are still returned as text.
func (e *Enricher) fetchPage(ctx context.Context, pageURL string) (string, error) {
	tctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(tctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "text/html,*/*")

	resp, err := e.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// ExtractEmail returns the first email-looking match in the text, or "".
func ExtractEmail(text string) string {
	return emailRe.FindString(text)
}

// ExtractPhone returns the first phone-looking match whose digit count is
// between 7 and 20. Later matches are considered when the first fails the
// digit filter.
func ExtractPhone(text string) string {
	for _, m := range phoneRe.FindAllString(text, -1) {
		digits := digitRe.ReplaceAllString(m, "")
		if len(digits) >= 7 && len(digits) <= 20 {
			return strings.TrimSpace(m)
		}
	}
	return ""
}

// ScoreEmail rates the confidence of an extracted email.
func ScoreEmail(email string) int {
	switch {
	case email == "":
		return 0
	case strings.HasSuffix(email, "example.com"):
		return 10
	case strings.Contains(email, "info@"):
		return 50
	case strings.Contains(email, "sales") || strings.Contains(email, "contact"):
		return 70
	default:
		return 60
	}
}

// ScorePhone rates the confidence of an extracted phone. The country-name
// bonus is a weak locale-consistency signal, not a dialing-code check.
func ScorePhone(phone, country string) int {
	if phone == "" {
		return 0
	}
	digits := digitRe.ReplaceAllString(phone, "")
	score := 50
	if len(digits) >= 10 {
		score = 70
	}
	prefix := country
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	if prefix != "" && strings.Contains(phone, prefix) {
		score += 5
	}
	if score > 90 {
		return 90
	}
	return score
}
