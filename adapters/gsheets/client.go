package gsheets

import (
	"net/http"
	"strings"
	"time"

	"leanfunnel/internal"
)

// DefaultBaseURL is the public Sheets v4 endpoint
const DefaultBaseURL = "https://sheets.googleapis.com/v4"

// Client provides access to the Sheets values API
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *internal.Logger

	maxRetries   int
	retryBackoff time.Duration
}

// ClientOption configures a Client
type ClientOption func(*Client)

// NewClient creates a new Sheets API client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger:       internal.DefaultLogger.With("SheetsClient"),
		maxRetries:   3,
		retryBackoff: time.Second,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithBaseURL points the client at another endpoint, e.g. a test server
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithTimeout sets the HTTP client timeout
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithRetries sets the retry configuration
func WithRetries(max int, backoff time.Duration) ClientOption {
	return func(c *Client) {
		c.maxRetries = max
		c.retryBackoff = backoff
	}
}

// WithLogger sets the logger
func WithLogger(logger *internal.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient sets a custom HTTP client, typically the authorized one
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}
