package source

import (
	"fmt"
	"time"
)

// Source type names accepted in the configuration
const (
	// TypeWordPressOrg resolves versions by scraping wordpress.org
	TypeWordPressOrg = "wordpress.org"
	// TypeStatic resolves versions from a local TOML table
	TypeStatic = "static"
)

// Options selects and parameterizes a version source.
type Options struct {
	// Type selects the source implementation; empty means TypeWordPressOrg
	Type string

	// BaseURL overrides the wordpress.org endpoint (useful for testing)
	BaseURL string
	// UserAgent overrides the User-Agent header sent upstream
	UserAgent string
	// Timeout is the per-request timeout; zero selects the default
	Timeout time.Duration
	// MaxRetries caps retry attempts per request; zero selects the default
	MaxRetries int

	// StaticFile is the TOML version table used by the static source
	StaticFile string
}

// New creates the version source selected by the options.
func New(opts Options) (Source, error) {
	switch opts.Type {
	case TypeWordPressOrg, "":
		return NewWordPressOrg(opts), nil
	case TypeStatic:
		return NewStatic(opts.StaticFile)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownSource, opts.Type)
	}
}
