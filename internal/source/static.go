package source

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Error variables for the static source
var (
	// ErrStaticFileMissing is returned when the static source is selected without a file
	ErrStaticFileMissing = errors.New("static source requires a version table file")
	// ErrStaticFileNotFound is returned when the configured version table does not exist
	ErrStaticFileNotFound = errors.New("static version table not found")
	// ErrStaticCoreMissing is returned when the version table declares no core version
	ErrStaticCoreMissing = errors.New("static version table declares no core version")
)

// staticTable is the TOML schema of the version table:
//
//	core = "6.4.3"
//	closed = ["old-widget"]
//
//	[plugins]
//	akismet = "5.3.2"
type staticTable struct {
	// Core is the pinned latest core version
	Core string `toml:"core"`
	// Closed lists plugins removed from distribution
	Closed []string `toml:"closed,omitempty"`
	// Plugins maps plugin slugs to their pinned latest versions
	Plugins map[string]string `toml:"plugins"`
}

// Static serves latest versions from a local TOML table, for auditing
// hosts without outbound network access.
type Static struct {
	path    string
	core    CoreInfo
	plugins map[string]PluginInfo
}

// NewStatic loads the version table at path.
func NewStatic(path string) (*Static, error) {
	if path == "" {
		return nil, ErrStaticFileMissing
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrStaticFileNotFound, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var table staticTable
	if err := toml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if table.Core == "" {
		return nil, fmt.Errorf("%w: %s", ErrStaticCoreMissing, path)
	}

	s := &Static{
		path:    path,
		core:    CoreInfo{Version: table.Core},
		plugins: make(map[string]PluginInfo, len(table.Plugins)),
	}
	for slug, version := range table.Plugins {
		s.plugins[slug] = PluginInfo{Version: version}
	}
	for _, slug := range table.Closed {
		info := s.plugins[slug]
		info.Closed = true
		s.plugins[slug] = info
	}

	return s, nil
}

// LatestCore returns the pinned core version.
func (s *Static) LatestCore(ctx context.Context) (*CoreInfo, error) {
	core := s.core
	return &core, nil
}

// LatestPlugin returns the pinned state of a plugin.
func (s *Static) LatestPlugin(ctx context.Context, slug string) (*PluginInfo, error) {
	info, ok := s.plugins[slug]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, slug)
	}
	return &info, nil
}

// Name returns the source name with the table path.
func (s *Static) Name() string {
	return TypeStatic + ":" + s.path
}
