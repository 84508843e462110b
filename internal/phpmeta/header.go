// Package phpmeta extracts version metadata from the PHP sources of a
// WordPress installation.
package phpmeta

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Error variables for plugin header extraction
var (
	// ErrHeaderNotFound is returned when no top-level PHP file declares a plugin header
	ErrHeaderNotFound = errors.New("no plugin header found")
	// ErrVersionMissing is returned when a plugin header declares no version
	ErrVersionMissing = errors.New("plugin header has no version field")
)

// Plugin header fields are "Field Name: value" lines inside the leading
// comment block of the plugin's main PHP file.
var (
	pluginNameRegex    = regexp.MustCompile(`(?m)Plugin Name:\s*(.+?)\s*$`)
	pluginVersionRegex = regexp.MustCompile(`(?m)Version:\s*(.+?)\s*$`)
)

// Header holds the metadata fields declared in a plugin's header comment.
type Header struct {
	// Name is the human-readable plugin name
	Name string
	// Version is the installed version, verbatim from the header
	Version string
}

// PluginHeader scans the top-level PHP files of a plugin directory and
// returns the metadata of the first file that declares a plugin header.
// Files are visited in lexical order so the result is deterministic even
// when several files carry a header.
func PluginHeader(pluginDir string) (*Header, error) {
	entries, err := os.ReadDir(pluginDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read plugin directory %s: %w", pluginDir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".php") {
			continue
		}

		path := filepath.Join(pluginDir, entry.Name())
		content, err := ReadTextFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		nameMatch := pluginNameRegex.FindStringSubmatch(content)
		if nameMatch == nil {
			continue
		}
		name := strings.TrimSpace(nameMatch[1])

		// The version must come from the same file as the name, never
		// stitched together across files.
		versionMatch := pluginVersionRegex.FindStringSubmatch(content)
		if versionMatch == nil {
			return nil, fmt.Errorf("%w: %s declares plugin %q", ErrVersionMissing, entry.Name(), name)
		}

		return &Header{
			Name:    name,
			Version: strings.TrimSpace(versionMatch[1]),
		}, nil
	}

	return nil, fmt.Errorf("%w in %s", ErrHeaderNotFound, pluginDir)
}
