package wporg

import "sync"

// memo remembers successful lookups for the lifetime of a client, so that
// the releases archive and each plugin page are fetched at most once per
// run no matter how many installations share a version or a plugin.
// Failed lookups are not remembered and will be retried on the next call.
type memo struct {
	mu       sync.RWMutex
	releases []Release
	plugins  map[string]*PluginInfo
}

// newMemo creates an empty memo.
func newMemo() *memo {
	return &memo{
		plugins: make(map[string]*PluginInfo),
	}
}

// getReleases returns the memoized releases, if any.
func (m *memo) getReleases() ([]Release, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.releases == nil {
		return nil, false
	}
	return m.releases, true
}

// setReleases memoizes the releases for subsequent calls.
func (m *memo) setReleases(releases []Release) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.releases = releases
}

// getPlugin returns the memoized plugin info for a slug, if any.
func (m *memo) getPlugin(slug string) (*PluginInfo, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	info, ok := m.plugins[slug]
	return info, ok
}

// setPlugin memoizes the plugin info for a slug.
func (m *memo) setPlugin(slug string, info *PluginInfo) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.plugins[slug] = info
}
