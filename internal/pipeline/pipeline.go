// Package pipeline orchestrates the complete lead discovery + enrichment flow.
//
// Phases:
//  1. Cache check   – Redis; return immediately on hit
//  2. Locale/query  – resolve locale, build the channel-phrase query
//  3. Discovery     – Google CSE gateway (all-or-nothing)
//  4. Transform     – blocklist, scoring, tags, dealer threshold
//  5. Enrichment    – optional contact crawl (3 workers)
//  6. Assembly      – meta counters, warm the cache
package pipeline

import (
	"context"
	"strings"

	"github.com/lucasfdcampos/dealer-api/internal/cache"
	"github.com/lucasfdcampos/dealer-api/internal/domain"
	"github.com/lucasfdcampos/dealer-api/internal/locale"
	"github.com/lucasfdcampos/dealer-api/internal/query"
	"github.com/lucasfdcampos/dealer-api/internal/transform"
)

// Searcher is the gateway to the external search API.
type Searcher interface {
	Search(ctx context.Context, query string, limit, start int) ([]domain.RawHit, error)
}

// Enricher populates contact fields for a batch of leads.
type Enricher interface {
	EnrichAll(ctx context.Context, leads []domain.Lead, lang, country string) []domain.Lead
}

// Deps holds injectable collaborators. Redis may be nil.
type Deps struct {
	Search Searcher
	Enrich Enricher
	Redis  *cache.Client
}

// Run executes the full pipeline for a search request.
func Run(ctx context.Context, req domain.SearchRequest, deps Deps) (*domain.LeadsResponse, error) {
	// ── Phase 1: Redis response cache ───────────────────────────────────────
	var cacheKey string
	if deps.Redis != nil {
		cacheKey = cache.LeadsKey(req)
		if resp, err := deps.Redis.GetLeads(ctx, cacheKey); err == nil && resp != nil {
			resp.Cached = true
			return resp, nil
		}
	}

	// ── Phase 2: Locale + query ─────────────────────────────────────────────
	lang := locale.Resolve(req.Country, req.Lang)
	q := query.Build(req.Keyword, req.Country, lang, req.Mode)
	threshold := transform.Threshold(req.Mode, lang)

	// ── Phase 3: Discovery ──────────────────────────────────────────────────
	hits, err := deps.Search.Search(ctx, q, req.Limit, req.Start)
	if err != nil {
		return nil, err
	}

	// ── Phase 4: Transform + filter ─────────────────────────────────────────
	meta := domain.Meta{TotalItems: len(hits)}
	leads := make([]domain.Lead, 0, len(hits))
	for _, hit := range hits {
		res, ok := transform.FromHit(hit, req.Country, req.Mode)
		if !ok {
			continue // unparseable link, not counted anywhere
		}
		if res.Blocked {
			meta.FilteredByBlacklist++
			continue
		}
		if req.Mode == domain.ModeDealer && res.Lead.Score < threshold {
			meta.FilteredByScore++
			continue
		}
		leads = append(leads, res.Lead)
	}

	if len(leads) > req.Limit {
		leads = leads[:req.Limit]
	}

	// ── Phase 5: Enrichment ─────────────────────────────────────────────────
	if req.Enrich && len(leads) > 0 {
		leads = deps.Enrich.EnrichAll(ctx, leads, lang, req.Country)
	}

	// ── Phase 6: Assembly ───────────────────────────────────────────────────
	meta.Kept = len(leads)
	meta.UniqueDomains = countUniqueDomains(leads)

	resp := &domain.LeadsResponse{
		OK:      true,
		Results: leads,
		Meta:    meta,
	}

	if deps.Redis != nil && cacheKey != "" {
		_ = deps.Redis.SetLeads(ctx, cacheKey, resp)
	}

	return resp, nil
}

func countUniqueDomains(leads []domain.Lead) int {
	seen := make(map[string]struct{}, len(leads))
	for _, l := range leads {
		w := strings.ToLower(l.Website)
		if w == "" {
			continue
		}
		seen[w] = struct{}{}
	}
	return len(seen)
}
