// Package source abstracts where the latest published versions come from.
// The checker compares installed code against a Source without knowing
// whether the answers were scraped from wordpress.org or pinned in a
// local table.
package source

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound indicates the requested item is not published by this source
	ErrNotFound = errors.New("not found in version source")
	// ErrUnknownSource indicates an unrecognized source type in the configuration
	ErrUnknownSource = errors.New("unknown version source")
)

// CoreInfo is the latest published state of WordPress core.
type CoreInfo struct {
	// Version is the newest published core version
	Version string
	// ReleasedAt is its publication date; zero when the source tracks no dates
	ReleasedAt time.Time
}

// PluginInfo is the latest published state of a directory plugin.
type PluginInfo struct {
	// Version is the newest published version; empty for closed plugins
	// whose directory page no longer shows one
	Version string
	// Closed reports whether the plugin was removed from distribution
	Closed bool
}

// Source resolves the latest published versions that installed code is
// compared against.
type Source interface {
	// LatestCore returns the newest published core version.
	LatestCore(ctx context.Context) (*CoreInfo, error)

	// LatestPlugin returns the newest published version of the plugin
	// with the given slug. Returns ErrNotFound for slugs the source
	// does not know.
	LatestPlugin(ctx context.Context, slug string) (*PluginInfo, error)

	// Name returns a human-readable name for this source.
	Name() string
}
