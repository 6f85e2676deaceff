package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lucasfdcampos/dealer-api/internal/domain"
)

// fakeSearcher returns canned hits and records the queries it saw.
type fakeSearcher struct {
	hits    []domain.RawHit
	err     error
	queries []string
}

func (f *fakeSearcher) Search(_ context.Context, query string, _, _ int) ([]domain.RawHit, error) {
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	return f.hits, nil
}

// fakeEnricher stamps a marker email on every lead.
type fakeEnricher struct{ called bool }

func (f *fakeEnricher) EnrichAll(_ context.Context, leads []domain.Lead, _, _ string) []domain.Lead {
	f.called = true
	out := make([]domain.Lead, len(leads))
	copy(out, leads)
	for i := range out {
		out[i].Email = "found@" + out[i].Website
	}
	return out
}

func dealerHit(host, title string) domain.RawHit {
	return domain.RawHit{
		Link:        "https://" + host + "/",
		Title:       title,
		Snippet:     "forklift dealer rental service parts",
		DisplayLink: host,
	}
}

func baseRequest() domain.SearchRequest {
	return domain.SearchRequest{
		Keyword: "forklift",
		Country: "Spain",
		Mode:    domain.ModeDealer,
		Lang:    "auto",
		Limit:   5,
	}
}

func TestRunDealerFlow(t *testing.T) {
	fs := &fakeSearcher{hits: []domain.RawHit{
		dealerHit("acme-lifts.es", "Acme Lifts"),
		dealerHit("parts.hyster.com", "Hyster OEM"), // blocklisted
		{Link: "https://weak.example/", Title: "nothing relevant"},
		{Link: ""}, // unparseable, not counted
	}}

	resp, err := Run(context.Background(), baseRequest(), Deps{Search: fs, Enrich: &fakeEnricher{}})
	require.NoError(t, err)
	require.True(t, resp.OK)

	// Spanish locale → channel phrases in the single emitted query.
	require.Len(t, fs.queries, 1)
	require.Contains(t, fs.queries[0], `"distribuidor de montacargas"`)
	require.Contains(t, fs.queries[0], "forklift Spain")

	require.Equal(t, 4, resp.Meta.TotalItems)
	require.Equal(t, 1, resp.Meta.FilteredByBlacklist)
	require.Equal(t, 1, resp.Meta.FilteredByScore, "weak hit under the es threshold of 28")
	require.Equal(t, 1, resp.Meta.Kept)
	require.Equal(t, 1, resp.Meta.UniqueDomains)

	require.Len(t, resp.Results, 1)
	require.Equal(t, "acme-lifts.es", resp.Results[0].Website)
	require.GreaterOrEqual(t, resp.Results[0].Score, 28)
	require.Empty(t, resp.Results[0].Email, "enrich not requested")
}

func TestRunBroadModeSkipsScoreFilter(t *testing.T) {
	fs := &fakeSearcher{hits: []domain.RawHit{
		{Link: "https://weak.example/", Title: "nothing relevant"},
	}}

	req := baseRequest()
	req.Mode = domain.ModeBroad

	resp, err := Run(context.Background(), req, Deps{Search: fs})
	require.NoError(t, err)
	require.Equal(t, 0, resp.Meta.FilteredByScore)
	require.Equal(t, 1, resp.Meta.Kept)
}

func TestRunTruncatesToLimitBeforeEnrichment(t *testing.T) {
	var hits []domain.RawHit
	hosts := []string{"a.es", "b.es", "c.es", "d.es"}
	for _, h := range hosts {
		hits = append(hits, dealerHit(h, "Dealer "+h))
	}
	fs := &fakeSearcher{hits: hits}
	fe := &fakeEnricher{}

	req := baseRequest()
	req.Limit = 2
	req.Enrich = true

	resp, err := Run(context.Background(), req, Deps{Search: fs, Enrich: fe})
	require.NoError(t, err)
	require.True(t, fe.called)
	require.Len(t, resp.Results, 2)
	require.Equal(t, "a.es", resp.Results[0].Website)
	require.Equal(t, "b.es", resp.Results[1].Website)
	require.Equal(t, "found@a.es", resp.Results[0].Email)
}

func TestRunUpstreamErrorFailsWhole(t *testing.T) {
	fs := &fakeSearcher{err: errors.New("google api returned 403")}

	_, err := Run(context.Background(), baseRequest(), Deps{Search: fs})
	require.Error(t, err)
	require.Contains(t, err.Error(), "403")
}

func TestRunIsIdempotent(t *testing.T) {
	fs := &fakeSearcher{hits: []domain.RawHit{
		dealerHit("acme-lifts.es", "Acme Lifts"),
		dealerHit("beta-lifts.es", "Beta Lifts"),
	}}

	first, err := Run(context.Background(), baseRequest(), Deps{Search: fs})
	require.NoError(t, err)
	second, err := Run(context.Background(), baseRequest(), Deps{Search: fs})
	require.NoError(t, err)

	require.Equal(t, first.Results, second.Results)
	require.Equal(t, first.Meta, second.Meta)
}

func TestRunUniqueDomainsCountsDistinctWebsites(t *testing.T) {
	fs := &fakeSearcher{hits: []domain.RawHit{
		dealerHit("acme-lifts.es", "Acme Lifts"),
		dealerHit("acme-lifts.es", "Acme Lifts contact page"),
		dealerHit("beta-lifts.es", "Beta Lifts"),
	}}

	resp, err := Run(context.Background(), baseRequest(), Deps{Search: fs})
	require.NoError(t, err)
	require.Equal(t, 3, resp.Meta.Kept, "no dedup of rows")
	require.Equal(t, 2, resp.Meta.UniqueDomains)
}
