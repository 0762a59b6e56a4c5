// Package source loads graph snapshots from the graph API or from disk.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/matsen/simgraph/internal/paper"
)

const (
	// DefaultBaseURL is the graph API served by the local backend.
	DefaultBaseURL = "http://127.0.0.1:8000"

	// GraphPath is the snapshot endpoint, queried with ?paper_id=.
	GraphPath = "/api/generate_graph/"

	// DefaultTimeout is the default HTTP request timeout. Snapshot
	// generation computes every pairwise similarity server side.
	DefaultTimeout = 2 * time.Minute

	// RateLimit is the default number of requests per second.
	RateLimit = 2.0

	// maxErrorBody bounds how much of an error response is kept.
	maxErrorBody = 512
)

// Source provides graph snapshots for a root paper.
type Source interface {
	Snapshot(ctx context.Context, paperID string) (*paper.Snapshot, error)
}

// Client is a rate-limited HTTP client for the graph API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithRateLimit sets the maximum requests per second.
func WithRateLimit(perSecond float64) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// NewClient creates a new graph API client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    DefaultBaseURL,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Snapshot fetches the graph snapshot for paperID.
func (c *Client) Snapshot(ctx context.Context, paperID string) (*paper.Snapshot, error) {
	if paperID == "" {
		return nil, fmt.Errorf("paper id cannot be empty")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	endpoint := c.baseURL + GraphPath + "?" + url.Values{"paper_id": {paperID}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching snapshot: %w", err)
	}
	defer resp.Body.Close()

	slog.Debug("graph API response", "paper", paperID, "status", resp.StatusCode,
		"elapsed", time.Since(start))

	if err := checkHTTPErrors(resp, paperID); err != nil {
		return nil, err
	}

	var snap paper.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if err := snap.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	return &snap, nil
}

// checkHTTPErrors returns an error if the HTTP response indicates a problem.
func checkHTTPErrors(resp *http.Response, paperID string) error {
	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrNotFound, paperID)
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%w: status %d", ErrRateLimited, resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    msg,
			PaperID:    paperID,
		}
	}
	return nil
}
