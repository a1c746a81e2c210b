package doi

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// RABaseURL is the doi.org registration agency lookup endpoint.
	RABaseURL = "https://doi.org/ra/"

	// DefaultTimeout bounds a single HTTP request.
	DefaultTimeout = 30 * time.Second

	// DefaultRateLimit is requests per second shared by all calls on a Client.
	DefaultRateLimit = 5.0

	defaultUserAgent = "bolognese-go (https://github.com/lehigh-university-libraries/bolognese)"
)

// ErrNotFound is returned when the metadata API has no record for a DOI.
var ErrNotFound = errors.New("doi not found")

// Client is a rate-limited HTTP client for DOI lookups.
// It does not retry or cache.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
	raBase     string
	apiBase    string
	sandboxAPI string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRateLimit sets the maximum number of requests per second.
func WithRateLimit(perSecond float64) ClientOption {
	return func(c *Client) {
		if perSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithBaseURL points both the RA lookup and the metadata API at base (for testing).
func WithBaseURL(base string) ClientOption {
	return func(c *Client) {
		base = strings.TrimSuffix(base, "/")
		c.raBase = base + "/ra/"
		c.apiBase = base + "/dois/"
		c.sandboxAPI = base + "/dois/"
	}
}

// NewClient creates a new lookup client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(DefaultRateLimit), 1),
		userAgent:  defaultUserAgent,
		raBase:     RABaseURL,
		apiBase:    ProductionAPI,
		sandboxAPI: SandboxAPI,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type raEntry struct {
	DOI string `json:"DOI"`
	RA  string `json:"RA"`
}

// RegistrationAgency returns the agency (e.g. "DataCite", "Crossref") that issued
// the prefix of d. It returns "" without error when the prefix is invalid or the
// response names no agency.
func (c *Client) RegistrationAgency(ctx context.Context, d string) (string, error) {
	prefix := ValidatePrefix(d)
	if prefix == "" {
		return "", nil
	}

	body, status, err := c.get(ctx, c.raBase+prefix, "application/json")
	if err != nil {
		return "", fmt.Errorf("lookup registration agency for %s: %w", prefix, err)
	}
	if status != http.StatusOK {
		slog.Debug("registration agency lookup failed", "prefix", prefix, "status", status)
		return "", nil
	}

	return parseRA(body), nil
}

// parseRA accepts both the bare array served by doi.org and a {"data": [...]} wrapper.
func parseRA(body []byte) string {
	var entries []raEntry
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var wrapped struct {
			Data []raEntry `json:"data"`
		}
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return ""
		}
		entries = wrapped.Data
	} else if err := json.Unmarshal(trimmed, &entries); err != nil {
		return ""
	}
	if len(entries) == 0 {
		return ""
	}
	return entries[0].RA
}

// Fetch retrieves the DataCite XML registered for d from the DataCite REST API.
func (c *Client) Fetch(ctx context.Context, d string, sandbox bool) ([]byte, error) {
	id := Validate(d)
	if id == "" {
		return nil, fmt.Errorf("invalid doi %q", d)
	}
	base := c.apiBase
	if sandbox || strings.Contains(d, sandboxHost) {
		base = c.sandboxAPI
	}

	body, status, err := c.get(ctx, base+id, "application/vnd.api+json")
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", id, err)
	}
	switch {
	case status == http.StatusNotFound:
		return nil, ErrNotFound
	case status != http.StatusOK:
		return nil, fmt.Errorf("fetch %s: unexpected status %d", id, status)
	}

	var doc struct {
		Data struct {
			Attributes struct {
				XML string `json:"xml"`
			} `json:"attributes"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decode response for %s: %w", id, err)
	}
	if doc.Data.Attributes.XML == "" {
		return nil, ErrNotFound
	}
	xml, err := base64.StdEncoding.DecodeString(doc.Data.Attributes.XML)
	if err != nil {
		return nil, fmt.Errorf("decode xml for %s: %w", id, err)
	}
	return xml, nil
}

func (c *Client) get(ctx context.Context, url, accept string) ([]byte, int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, 0, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("reading response: %w", err)
	}
	return body, resp.StatusCode, nil
}
