// Package search is the gateway to the Google Custom Search JSON API.
//
// The CSE caps each call at 10 results, so a request for more than 10
// hits is split into two pages fetched concurrently. The gateway is
// all-or-nothing: a single failed page fails the whole search, since
// without the base results there is nothing useful to return downstream.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lucasfdcampos/dealer-api/internal/domain"
)

const defaultBaseURL = "https://www.googleapis.com/customsearch/v1"

// cseMaxPerCall is the hard per-call result cap of the CSE API.
const cseMaxPerCall = 10

// Client issues paginated calls against the CSE endpoint.
type Client struct {
	apiKey  string
	cseID   string
	baseURL string
	timeout time.Duration
	http    *http.Client
}

// New creates a gateway client with the given credentials and per-call timeout.
func New(apiKey, cseID string, timeout time.Duration) *Client {
	return &Client{
		apiKey:  apiKey,
		cseID:   cseID,
		baseURL: defaultBaseURL,
		timeout: timeout,
		http:    &http.Client{},
	}
}

// WithBaseURL overrides the CSE endpoint. Used by tests.
func (c *Client) WithBaseURL(base string) *Client {
	c.baseURL = base
	return c
}

// Search fetches up to limit raw hits for the query, starting at the
// given offset (0 means the API default of 1).
//
// Pages are fetched concurrently and concatenated in issue order once
// all complete; the first page error aborts the operation.
func (c *Client) Search(ctx context.Context, query string, limit, start int) ([]domain.RawHit, error) {
	firstBatch := limit
	if firstBatch > cseMaxPerCall {
		firstBatch = cseMaxPerCall
	}
	secondBatch := 0
	if limit > cseMaxPerCall {
		secondBatch = limit - cseMaxPerCall
		if secondBatch > cseMaxPerCall {
			secondBatch = cseMaxPerCall
		}
	}

	startOffset := start
	if startOffset < 1 {
		startOffset = 1
	}

	// Each goroutine writes only its own page index.
	pages := make([][]domain.RawHit, 2)
	var g errgroup.Group

	g.Go(func() error {
		hits, err := c.fetchPage(ctx, query, startOffset, firstBatch)
		if err != nil {
			return err
		}
		pages[0] = hits
		return nil
	})
	if secondBatch > 0 {
		g.Go(func() error {
			hits, err := c.fetchPage(ctx, query, startOffset+cseMaxPerCall, secondBatch)
			if err != nil {
				return err
			}
			pages[1] = hits
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []domain.RawHit
	for _, p := range pages {
		all = append(all, p...)
	}
	return all, nil
}

// cseResponse is the subset of the CSE payload we consume.
type cseResponse struct {
	Items []domain.RawHit `json:"items"`
}

func (c *Client) fetchPage(ctx context.Context, query string, start, num int) ([]domain.RawHit, error) {
	if num > cseMaxPerCall {
		num = cseMaxPerCall
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("cx", c.cseID)
	params.Set("q", query)
	params.Set("num", strconv.Itoa(num))
	params.Set("start", strconv.Itoa(start))

	tctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(tctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cse request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return nil, fmt.Errorf("google api returned %d: %s", resp.StatusCode, string(body))
	}

	var payload cseResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("cse response decode: %w", err)
	}
	return payload.Items, nil
}
