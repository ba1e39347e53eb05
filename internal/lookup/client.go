// Package lookup talks to the remote company lookup endpoint:
//
//	GET {endpoint}?q={query}&limit={n}  ->  {"companies":[{"id":1,"name":"...","reviews_count":3}]}
package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"safelogist/internal/domain"
)

// maxBodyBytes caps how much of a response body is read
const maxBodyBytes = 1 << 20

var (
	// ErrUnexpectedStatus is matched by errors.Is for any non-200 response
	ErrUnexpectedStatus = errors.New("unexpected status")
	// ErrMalformedResponse covers undecodable bodies and a missing companies key
	ErrMalformedResponse = errors.New("malformed response")
)

// StatusError carries the status code of a rejected response
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("lookup: unexpected status %d", e.Code)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrUnexpectedStatus
}

type searchResponse struct {
	Companies *[]domain.Company `json:"companies"`
}

// Client queries the lookup endpoint
type Client struct {
	endpoint   *url.URL
	httpClient *http.Client
	timeout    time.Duration
	userAgent  string
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout bounds every request; zero leaves requests unbounded
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// NewClient creates a client for the given endpoint URL
func NewClient(endpoint string, opts ...Option) (*Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid lookup endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid lookup endpoint %q: scheme must be http or https", endpoint)
	}

	c := &Client{
		endpoint:   u,
		httpClient: http.DefaultClient,
		userAgent:  "safelogist",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Search returns up to limit companies matching query, in endpoint order
func (c *Client) Search(ctx context.Context, query string, limit int) ([]domain.Company, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL(query, limit), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build lookup request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lookup request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &StatusError{Code: resp.StatusCode}
	}

	var body searchResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if body.Companies == nil {
		return nil, fmt.Errorf("%w: missing companies key", ErrMalformedResponse)
	}

	items := *body.Companies
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (c *Client) searchURL(query string, limit int) string {
	u := *c.endpoint
	q := u.Query()
	q.Set("q", query)
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	u.RawQuery = q.Encode()
	return u.String()
}
