package wporg

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"

	"github.com/antchfx/htmlquery"
)

// ErrPluginVersionNotShown is returned when a plugin page publishes no version
var ErrPluginVersionNotShown = errors.New("no version published on plugin page")

// closedNotice is shown on pages of plugins removed from distribution
const closedNotice = "This plugin has been closed"

// entryMetaXPath selects the sidebar block carrying the "Version:" field
const entryMetaXPath = `//*[contains(@class, 'entry-meta')]`

// pluginVersionRegex extracts the version from the entry-meta text
var pluginVersionRegex = regexp.MustCompile(`Version:\s*([0-9.]+)`)

// PluginInfo describes the published state of a plugin in the directory.
type PluginInfo struct {
	// Version is the latest published version; empty for closed plugins
	// whose page no longer shows one
	Version string
	// Closed reports whether the plugin has been removed from distribution
	Closed bool
}

// parsePluginPage extracts the published version and closed status from a
// plugin directory page. A closed plugin without a published version is a
// valid result; any other page missing the version is an error.
func parsePluginPage(content []byte) (*PluginInfo, error) {
	info := &PluginInfo{
		Closed: bytes.Contains(content, []byte(closedNotice)),
	}

	doc, err := htmlquery.Parse(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse plugin page: %w", err)
	}

	nodes, err := htmlquery.QueryAll(doc, entryMetaXPath)
	if err != nil {
		return nil, fmt.Errorf("failed to query plugin page: %w", err)
	}

	for _, node := range nodes {
		matches := pluginVersionRegex.FindStringSubmatch(htmlquery.InnerText(node))
		if matches != nil {
			info.Version = matches[1]
			return info, nil
		}
	}

	if info.Closed {
		return info, nil
	}
	return nil, ErrPluginVersionNotShown
}
