// Package cache provides an optional Redis-backed response cache.
//
// Key strategy:
//   - Leads responses: dealer:leads:v1:{sha256(normalized request)} → TTL 6 h
//
// Only assembled responses are cached; the pipeline itself stays
// stateless per request.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/lucasfdcampos/dealer-api/internal/domain"
)

const (
	LeadsTTL = 6 * time.Hour

	leadsPrefix = "dealer:leads:v1:"
)

// Client wraps redis.Client with domain-aware helpers.
type Client struct {
	rdb *redis.Client
}

// New creates a new cache Client.
// addr example: "localhost:6379"
func New(addr, password string, db int) *Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &Client{rdb: rdb}
}

// Ping checks connectivity.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (c *Client) Close() error { return c.rdb.Close() }

// LeadsKey returns the cache key for a normalized search request.
func LeadsKey(req domain.SearchRequest) string {
	raw := fmt.Sprintf("%s|%s|%s|%s|%d|%d|enrich=%v",
		req.Keyword, req.Country, req.Mode, req.Lang, req.Limit, req.Start, req.Enrich)
	h := sha256.Sum256([]byte(raw))
	return leadsPrefix + fmt.Sprintf("%x", h)
}

// GetLeads returns a cached response or nil on miss.
func (c *Client) GetLeads(ctx context.Context, key string) (*domain.LeadsResponse, error) {
	val, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, err
	}
	var resp domain.LeadsResponse
	if err := json.Unmarshal(val, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SetLeads stores a response with LeadsTTL.
func (c *Client) SetLeads(ctx context.Context, key string, resp *domain.LeadsResponse) error {
	b, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, b, LeadsTTL).Err()
}

// DeleteLeads removes a cached response.
func (c *Client) DeleteLeads(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, key).Err()
}
