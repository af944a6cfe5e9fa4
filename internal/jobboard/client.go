package jobboard

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const maxResponseBytes = 10 << 20

var userAgent = "job-aggregator/1.0"

// RateLimitedClient wraps an http.Client with rate limiting. One client is
// shared by every search against the same provider, so burst bounds how many
// concurrent searches reach it without queueing.
type RateLimitedClient struct {
	client      *http.Client
	rateLimiter *rate.Limiter
}

func NewRateLimitedClient(requestsPerSecond float64, burst int, timeout time.Duration) *RateLimitedClient {
	if burst < 1 {
		burst = 1
	}
	return &RateLimitedClient{
		client: &http.Client{
			Timeout: timeout,
		},
		rateLimiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

func (c *RateLimitedClient) Do(req *http.Request) (*http.Response, error) {
	err := c.rateLimiter.Wait(req.Context())
	if err != nil {
		return nil, err
	}
	return c.client.Do(req)
}

// getJSON issues a GET to endpoint with params and decodes a 2xx JSON body
// into out.
func (c *RateLimitedClient) getJSON(ctx context.Context, endpoint string, params url.Values, token string, out any) error {
	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("parsing endpoint: %w", err)
	}
	q := u.Query()
	for k, vs := range params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.Do(req)
	if err != nil {
		return fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
