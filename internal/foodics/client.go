// Package foodics is a thin HTTP client for the remote branches API.
package foodics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"stolik/internal/model"
)

const apiPrefix = "/api/v5"

// Client calls the branches API with bearer-token auth. GETs may be served
// from an optional redis cache; every outbound request may pass through an
// optional rate limiter. There is no retry: a failed request is the
// caller's problem.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client

	redis    *redis.Client
	cacheTTL time.Duration
	limiter  *rate.Limiter
}

// apiResponse is the envelope every endpoint wraps its payload in.
type apiResponse[T any] struct {
	Data T `json:"data"`
}

// New constructs a client for the API at baseURL.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// UseRedisCache enables redis caching of GET responses for ttl. Any
// successful update invalidates the cache wholesale.
func (c *Client) UseRedisCache(redisClient *redis.Client, ttl time.Duration) {
	c.redis = redisClient
	c.cacheTTL = ttl
}

// UseRateLimit throttles outbound requests to perSecond with the given burst.
func (c *Client) UseRateLimit(perSecond float64, burst int) {
	if perSecond <= 0 || burst <= 0 {
		c.limiter = nil
		return
	}
	c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
}

// ListBranches fetches all branches with their sections and tables.
func (c *Client) ListBranches(ctx context.Context) ([]model.Branch, error) {
	endpoint := c.baseURL + apiPrefix + "/branches?include=sections.tables"
	cacheKey := "branches"

	var resp apiResponse[[]model.Branch]
	if c.readCache(ctx, cacheKey, &resp) {
		return resp.Data, nil
	}

	if err := c.doGet(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	c.writeCache(ctx, cacheKey, resp)
	return resp.Data, nil
}

// GetBranch fetches one branch with its sections and tables.
func (c *Client) GetBranch(ctx context.Context, id string) (*model.Branch, error) {
	endpoint := fmt.Sprintf("%s%s/branches/%s?include=sections.tables", c.baseURL, apiPrefix, url.PathEscape(id))
	cacheKey := "branch:" + id

	var resp apiResponse[model.Branch]
	if c.readCache(ctx, cacheKey, &resp) {
		return &resp.Data, nil
	}

	if err := c.doGet(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	c.writeCache(ctx, cacheKey, resp)
	return &resp.Data, nil
}

// UpdateBranch sends a partial-branch PUT body and returns the updated
// branch record.
func (c *Client) UpdateBranch(ctx context.Context, id string, payload any) (*model.Branch, error) {
	endpoint := fmt.Sprintf("%s%s/branches/%s", c.baseURL, apiPrefix, url.PathEscape(id))

	var resp apiResponse[model.Branch]
	if err := c.doPut(ctx, endpoint, payload, &resp); err != nil {
		return nil, err
	}
	c.invalidateCache(ctx, id)
	return &resp.Data, nil
}

// EnableReservations switches reservation acceptance on for a branch.
func (c *Client) EnableReservations(ctx context.Context, id string) (*model.Branch, error) {
	return c.UpdateBranch(ctx, id, map[string]bool{"accepts_reservations": true})
}

// DisableReservations switches reservation acceptance off for a branch.
func (c *Client) DisableReservations(ctx context.Context, id string) (*model.Branch, error) {
	return c.UpdateBranch(ctx, id, map[string]bool{"accepts_reservations": false})
}

// DisableAll disables reservations for every given branch concurrently,
// waits for all requests to settle and returns the first error seen. There
// is no partial-success reporting.
func (c *Client) DisableAll(ctx context.Context, ids []string) error {
	errs := make(chan error, len(ids))
	for _, id := range ids {
		go func(id string) {
			_, err := c.DisableReservations(ctx, id)
			errs <- err
		}(id)
	}

	var first error
	for range ids {
		if err := <-errs; err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (c *Client) readCache(ctx context.Context, key string, out any) bool {
	if c.redis == nil || c.cacheTTL <= 0 {
		return false
	}
	val, err := c.redis.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(val), out) == nil
}

func (c *Client) writeCache(ctx context.Context, key string, val any) {
	if c.redis == nil || c.cacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(val)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, key, data, c.cacheTTL).Err()
}

func (c *Client) invalidateCache(ctx context.Context, id string) {
	if c.redis == nil {
		return
	}
	_ = c.redis.Del(ctx, "branches", "branch:"+id).Err()
}

func (c *Client) doGet(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return err
	}
	return c.do(ctx, req, out)
}

func (c *Client) doPut(ctx context.Context, endpoint string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(ctx, req, out)
}

func (c *Client) do(ctx context.Context, req *http.Request, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("API Error: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
