package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/wpcheck/wpcheck/internal/wporg"
)

// WordPressOrg resolves latest versions by scraping wordpress.org. The
// underlying client memoizes lookups, so a run fetches the releases
// archive once and each plugin page at most once.
type WordPressOrg struct {
	client *wporg.Client
}

// NewWordPressOrg creates the wordpress.org source.
func NewWordPressOrg(opts Options) *WordPressOrg {
	var clientOpts []wporg.ClientOption
	if opts.BaseURL != "" {
		clientOpts = append(clientOpts, wporg.WithBaseURL(opts.BaseURL))
	}
	if opts.UserAgent != "" {
		clientOpts = append(clientOpts, wporg.WithUserAgent(opts.UserAgent))
	}
	if opts.Timeout > 0 || opts.MaxRetries > 0 {
		retryConfig := wporg.DefaultRetryConfig()
		if opts.Timeout > 0 {
			retryConfig.Timeout = opts.Timeout
		}
		if opts.MaxRetries > 0 {
			retryConfig.MaxRetries = opts.MaxRetries
		}
		clientOpts = append(clientOpts, wporg.WithHTTPClient(wporg.NewRetryableHTTPClientWithConfig(retryConfig)))
	}

	return &WordPressOrg{client: wporg.NewClient(clientOpts...)}
}

// LatestCore returns the newest core release across all branches.
func (s *WordPressOrg) LatestCore(ctx context.Context) (*CoreInfo, error) {
	release, err := s.client.LatestCore(ctx)
	if err != nil {
		return nil, err
	}
	return &CoreInfo{Version: release.Version, ReleasedAt: release.Date}, nil
}

// LatestPlugin returns the published state of a directory plugin.
func (s *WordPressOrg) LatestPlugin(ctx context.Context, slug string) (*PluginInfo, error) {
	info, err := s.client.Plugin(ctx, slug)
	if err != nil {
		if errors.Is(err, wporg.ErrPluginNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, slug)
		}
		return nil, err
	}
	return &PluginInfo{Version: info.Version, Closed: info.Closed}, nil
}

// Name returns the source name.
func (s *WordPressOrg) Name() string {
	return TypeWordPressOrg
}
