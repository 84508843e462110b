// Package scanner discovers WordPress installations on disk and gathers
// the facts needed to check them: the core version and the installed
// plugins with their declared versions.
package scanner

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/wpcheck/wpcheck/internal/phpmeta"
)

// ErrRootNotFound is returned when the scan root does not exist or cannot be read
var ErrRootNotFound = errors.New("root directory not found")

// Plugin is one plugin directory under wp-content/plugins.
type Plugin struct {
	// Slug is the plugin directory name, which doubles as its slug on
	// wordpress.org
	Slug string
	// Name is the display name from the plugin header
	Name string
	// Version is the installed version declared in the plugin header
	Version string
	// Err records why the header could not be read; the plugin is still
	// listed so the report can flag it
	Err error
}

// Installation is one WordPress installation found on disk.
type Installation struct {
	// Path is the installation root
	Path string
	// CoreVersion is the version declared in wp-includes/version.php
	CoreVersion string
	// CoreErr records why the core version could not be read
	CoreErr error
	// Plugins are the plugin directories found, sorted by slug
	Plugins []Plugin
}

// IsInstallation reports whether dir carries the WordPress on-disk
// marker: both a wp-content and a wp-includes directory.
func IsInstallation(dir string) bool {
	return isDir(filepath.Join(dir, "wp-content")) && isDir(filepath.Join(dir, "wp-includes"))
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// ScanRoot discovers and scans the installations under root: the root
// itself when it carries the marker, plus every immediate subdirectory
// that does. Results are sorted by path. A missing or unreadable root is
// the only fatal condition.
func ScanRoot(root string) ([]*Installation, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrRootNotFound, root)
	}

	var candidates []string
	if IsInstallation(root) {
		candidates = append(candidates, root)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrRootNotFound, root)
	}
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		dir := filepath.Join(root, entry.Name())
		if IsInstallation(dir) {
			candidates = append(candidates, dir)
		}
	}

	sort.Strings(candidates)

	installs := make([]*Installation, 0, len(candidates))
	for _, dir := range candidates {
		installs = append(installs, ScanInstallation(dir))
	}
	return installs, nil
}

// ScanInstallation gathers the on-disk facts of a single installation.
// It never fails: unreadable metadata is recorded on the result and the
// scan moves on.
func ScanInstallation(dir string) *Installation {
	install := &Installation{Path: dir}
	install.CoreVersion, install.CoreErr = phpmeta.CoreVersion(dir)
	install.Plugins = scanPlugins(filepath.Join(dir, "wp-content", "plugins"))
	return install
}

// scanPlugins enumerates the plugin directories under pluginsDir. A
// missing plugins directory yields an empty list: not every install has
// one. Bare .php files (hello.php) are not plugin directories.
func scanPlugins(pluginsDir string) []Plugin {
	entries, err := os.ReadDir(pluginsDir)
	if err != nil {
		return nil
	}

	var plugins []Plugin
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		plugin := Plugin{Slug: entry.Name()}
		header, err := phpmeta.PluginHeader(filepath.Join(pluginsDir, entry.Name()))
		if err != nil {
			plugin.Err = err
		} else {
			plugin.Name = header.Name
			plugin.Version = header.Version
		}
		plugins = append(plugins, plugin)
	}

	// Sort by slug for consistent output
	sort.Slice(plugins, func(i, j int) bool {
		return plugins[i].Slug < plugins[j].Slug
	})

	return plugins
}
