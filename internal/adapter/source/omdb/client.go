package omdb

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

	"github.com/mmcdole/cinedex/internal/domain"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://www.omdbapi.com/"

	defaultTimeout = 15 * time.Second
	defaultRPS     = 10.0
	defaultBurst   = 10

	// maxBodySize bounds how much of a response is read
	maxBodySize = 4 << 20
)

// Options tunes the HTTP client and the outbound rate limiter
type Options struct {
	Timeout       time.Duration // HTTP client timeout
	RatePerSecond float64       // Outbound requests per second, <= 0 disables limiting
	Burst         int           // Tokens available immediately
}

// DefaultOptions returns the options used when none are configured
func DefaultOptions() Options {
	return Options{
		Timeout:       defaultTimeout,
		RatePerSecond: defaultRPS,
		Burst:         defaultBurst,
	}
}

// Client implements domain.Provider for OMDb.
// It is the only component that holds the API key.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a new OMDb API client
func NewClient(baseURL, apiKey string, opts Options, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}

	limit := rate.Inf
	burst := opts.Burst
	if opts.RatePerSecond > 0 {
		limit = rate.Limit(opts.RatePerSecond)
		if burst <= 0 {
			burst = 1
		}
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		limiter: rate.NewLimiter(limit, burst),
		logger:  logger,
	}
}

// doRequest performs one keyed GET against the provider.
// Every failure it returns is a *domain.TransportError; there are no retries.
func (c *Client) doRequest(ctx context.Context, op string, query url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, domain.NewTransportError(op, fmt.Errorf("rate limit wait: %w", err))
	}

	query.Set("apikey", c.apiKey)
	reqURL := c.baseURL
	if strings.Contains(reqURL, "?") {
		reqURL += "&" + query.Encode()
	} else {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, domain.NewTransportError(op, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	// Never log the key
	c.logger.Debug("omdb request", "op", op, "params", redact(query))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("omdb request failed", "op", op, "error", err)
		return nil, domain.NewTransportError(op, fmt.Errorf("execute request: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, domain.NewTransportError(op, fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("omdb request error", "op", op, "status", resp.StatusCode, "body", truncate(string(body), 200))
		return nil, domain.NewTransportError(op, fmt.Errorf("unexpected status code: %d", resp.StatusCode))
	}

	return body, nil
}

// FetchByID returns the full record for an IMDb id.
// A provider non-match, or a match of a different content type, is domain.ErrNotFound.
func (c *Client) FetchByID(ctx context.Context, id string, t domain.ContentType) (domain.CatalogItem, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.CatalogItem{}, fmt.Errorf("empty id: %w", domain.ErrNotFound)
	}

	query := url.Values{}
	query.Set("i", id)
	query.Set("plot", "full")

	body, err := c.doRequest(ctx, "fetch", query)
	if err != nil {
		return domain.CatalogItem{}, err
	}

	var resp itemResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return domain.CatalogItem{}, domain.NewTransportError("fetch", fmt.Errorf("failed to parse response: %w", err))
	}

	if isSentinelError(resp.Response, resp.Error) {
		c.logger.Debug("omdb no match", "id", id, "error", resp.Error)
		return domain.CatalogItem{}, fmt.Errorf("%s: %w", id, domain.ErrNotFound)
	}

	rt, ok := mapContentType(resp.Type)
	if !ok || rt != t {
		c.logger.Debug("omdb type mismatch", "id", id, "want", t, "got", resp.Type)
		return domain.CatalogItem{}, fmt.Errorf("%s is not a %s: %w", id, t, domain.ErrNotFound)
	}

	item := mapItem(resp, t)
	if item.ExternalID == "" {
		item.ExternalID = id
	}
	return item, nil
}

// Search returns list-level matches for query of the given content type.
// The provider's "no results" answer is an empty slice and a nil error.
func (c *Client) Search(ctx context.Context, query string, t domain.ContentType) ([]domain.CatalogItem, error) {
	params := url.Values{}
	params.Set("s", query)
	params.Set("type", t.String())

	body, err := c.doRequest(ctx, "search", params)
	if err != nil {
		return nil, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, domain.NewTransportError("search", fmt.Errorf("failed to parse response: %w", err))
	}

	if isSentinelError(resp.Response, resp.Error) {
		c.logger.Debug("omdb search empty", "query", query, "type", t, "error", resp.Error)
		return []domain.CatalogItem{}, nil
	}

	items := mapSearchResults(resp.Search, t)
	c.logger.Debug("omdb search results", "query", query, "type", t, "count", len(items))
	return items, nil
}

// redact returns the encoded query without the api key
func redact(query url.Values) string {
	clone := url.Values{}
	for k, v := range query {
		if k == "apikey" {
			continue
		}
		clone[k] = v
	}
	return clone.Encode()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
