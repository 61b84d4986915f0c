// Package arnak provides a client for the BoardGameGeek XML API.
package arnak

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	// BaseURL is the base URL for the BGG XML API.
	BaseURL = "https://boardgamegeek.com/xmlapi2"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxRetries is the default number of retries for the
	// collection endpoint while the server prepares the data.
	DefaultMaxRetries = 8

	// DefaultRetryDelay is the default initial delay between retries.
	DefaultRetryDelay = 2 * time.Second
)

// Config holds the configuration for the API client. The zero value is
// usable; every field has a sensible default.
type Config struct {
	BaseURL    string        // Optional: API base URL (default: BaseURL)
	Timeout    time.Duration // Optional: HTTP request timeout (default: 30s)
	MaxRetries int           // Optional: retry budget for not-ready collection responses (default: 8)
	RetryDelay time.Duration // Optional: initial delay between retries (default: 2s)
	EntityMode EntityMode    // Optional: double-encoded text policy (default: EntityModeCorrect)
}

// Client is the BGG API client. It is stateless apart from configuration
// and safe for concurrent use; every call is an independent pipeline from
// request to decoded result.
type Client struct {
	http       *resty.Client
	maxRetries int
	retryDelay time.Duration
	entityMode EntityMode
}

// NewClient creates a new API client.
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = BaseURL
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	maxRetries := cfg.MaxRetries
	if maxRetries == 0 {
		maxRetries = DefaultMaxRetries
	}

	retryDelay := cfg.RetryDelay
	if retryDelay == 0 {
		retryDelay = DefaultRetryDelay
	}

	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("Accept", "application/xml"),
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		entityMode: cfg.EntityMode,
	}
}

// get performs a single GET request against an endpoint. It returns the
// response for 200 and 202 status codes and classifies everything else:
// transport failures become TransportError, caller cancellation becomes
// CancelledError, and any other status becomes HTTPError.
func (c *Client) get(ctx context.Context, endpoint string, query url.Values) (*resty.Response, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParamsFromValues(query).
		Get(endpoint)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, newCancelledError(ctxErr)
		}
		return nil, newTransportError(c.http.BaseURL+endpoint, err)
	}

	switch resp.StatusCode() {
	case http.StatusOK, http.StatusAccepted:
		return resp, nil
	default:
		return nil, newHTTPError(resp.StatusCode())
	}
}

// getOnce performs a single request for the synchronous endpoints, which
// never legitimately answer 202.
func (c *Client) getOnce(ctx context.Context, endpoint string, query url.Values) ([]byte, error) {
	resp, err := c.get(ctx, endpoint, query)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, newHTTPError(resp.StatusCode())
	}
	return resp.Body(), nil
}
