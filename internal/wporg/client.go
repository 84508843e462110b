package wporg

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Error variables for client errors
var (
	// ErrPluginNotFound is returned when the directory has no page for a slug
	ErrPluginNotFound = errors.New("plugin not found in directory")
	// ErrUnexpectedStatus is returned for HTTP statuses the client cannot interpret
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")
)

// DefaultBaseURL is the production wordpress.org endpoint.
const DefaultBaseURL = "https://wordpress.org"

// defaultUserAgent identifies the tool to wordpress.org.
const defaultUserAgent = "wpcheck/1.0"

// Client fetches the published state of core releases and directory
// plugins from wordpress.org. Successful lookups are memoized for the
// lifetime of the client.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *RetryableHTTPClient
	memo       *memo
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the wordpress.org endpoint (useful for testing).
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient overrides the underlying retryable HTTP client.
func WithHTTPClient(httpClient *RetryableHTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithUserAgent overrides the User-Agent header sent to wordpress.org.
func WithUserAgent(userAgent string) ClientOption {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// NewClient creates a client for the wordpress.org endpoints.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		userAgent:  defaultUserAgent,
		httpClient: NewRetryableHTTPClient(),
		memo:       newMemo(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.httpClient.SetDefaultHeaders(map[string]string{"User-Agent": c.userAgent})
	return c
}

// Releases returns the newest release of every branch from the releases
// archive. The page is fetched at most once per client.
func (c *Client) Releases(ctx context.Context) ([]Release, error) {
	if releases, ok := c.memo.getReleases(); ok {
		return releases, nil
	}

	endpoint := c.baseURL + "/download/releases/"
	resp, err := c.httpClient.GetWithContext(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d from %s", ErrUnexpectedStatus, resp.StatusCode, endpoint)
	}

	releases, err := parseReleases(resp.Body)
	if err != nil {
		return nil, err
	}

	c.memo.setReleases(releases)
	return releases, nil
}

// LatestCore returns the newest core release across all branches.
func (c *Client) LatestCore(ctx context.Context) (*Release, error) {
	releases, err := c.Releases(ctx)
	if err != nil {
		return nil, err
	}
	return latestRelease(releases)
}

// Plugin returns the published state of the plugin with the given slug.
// Each slug is fetched at most once per client.
func (c *Client) Plugin(ctx context.Context, slug string) (*PluginInfo, error) {
	if info, ok := c.memo.getPlugin(slug); ok {
		return info, nil
	}

	endpoint := c.baseURL + "/plugins/" + url.PathEscape(slug)
	resp, err := c.httpClient.GetWithContext(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrPluginNotFound, slug)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d from %s", ErrUnexpectedStatus, resp.StatusCode, endpoint)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", endpoint, err)
	}

	info, err := parsePluginPage(body)
	if err != nil {
		return nil, fmt.Errorf("plugin %s: %w", slug, err)
	}

	c.memo.setPlugin(slug, info)
	return info, nil
}
