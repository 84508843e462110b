// Package checker evaluates scanned WordPress installations against the
// latest published versions from a version source.
package checker

import (
	"context"
	"time"

	"github.com/wpcheck/wpcheck/internal/scanner"
	"github.com/wpcheck/wpcheck/internal/source"
	"github.com/wpcheck/wpcheck/internal/wpversion"
)

// CoreResult is the outcome of checking an installation's core.
type CoreResult struct {
	// Installed is the version declared in wp-includes/version.php
	Installed string
	// Latest is the newest published core version, when it could be resolved
	Latest string
	// ReleasedAt is the publication date of Latest; zero when unknown
	ReleasedAt time.Time
	// Status is the tri-state check outcome
	Status wpversion.Status
	// Err is the first failure hit while checking core
	Err error
}

// PluginResult is the outcome of checking one installed plugin.
type PluginResult struct {
	// Slug is the plugin directory name
	Slug string
	// Name is the display name from the plugin header
	Name string
	// Installed is the version declared in the plugin header
	Installed string
	// Latest is the newest published version, when it could be resolved
	Latest string
	// Closed reports whether the plugin was removed from distribution
	Closed bool
	// Status is the tri-state check outcome
	Status wpversion.Status
	// Err is the first failure hit while checking this plugin
	Err error
}

// InstallationResult is the outcome of checking one installation.
type InstallationResult struct {
	// Path is the installation root on disk
	Path string
	// Core is the core check outcome
	Core CoreResult
	// Plugins are the per-plugin outcomes, sorted by slug
	Plugins []PluginResult
}

// Checker evaluates installations against a version source. Failures
// while checking an individual item degrade that item to "unknown" and
// never abort the run.
type Checker struct {
	src source.Source
}

// New creates a checker backed by the given version source.
func New(src source.Source) *Checker {
	return &Checker{src: src}
}

// CheckRoot scans root and evaluates every installation found there.
// Only a missing or unreadable root fails.
func (c *Checker) CheckRoot(ctx context.Context, root string) ([]*InstallationResult, error) {
	installs, err := scanner.ScanRoot(root)
	if err != nil {
		return nil, err
	}

	results := make([]*InstallationResult, 0, len(installs))
	for _, install := range installs {
		results = append(results, c.CheckInstallation(ctx, install))
	}
	return results, nil
}

// CheckInstallation evaluates a single scanned installation.
func (c *Checker) CheckInstallation(ctx context.Context, install *scanner.Installation) *InstallationResult {
	result := &InstallationResult{
		Path: install.Path,
		Core: c.checkCore(ctx, install),
	}
	for _, plugin := range install.Plugins {
		result.Plugins = append(result.Plugins, c.checkPlugin(ctx, plugin))
	}
	return result
}

// checkCore resolves the latest core release and compares the installed
// version against it. The lookup runs even when the local version could
// not be read, so the report can still show what the latest release is.
func (c *Checker) checkCore(ctx context.Context, install *scanner.Installation) CoreResult {
	result := CoreResult{
		Installed: install.CoreVersion,
		Err:       install.CoreErr,
	}

	latest, err := c.src.LatestCore(ctx)
	if err != nil {
		if result.Err == nil {
			result.Err = err
		}
		result.Status = wpversion.StatusUnknown
		return result
	}
	result.Latest = latest.Version
	result.ReleasedAt = latest.ReleasedAt

	if result.Err != nil {
		result.Status = wpversion.StatusUnknown
		return result
	}

	result.Status = wpversion.Evaluate(result.Installed, result.Latest)
	return result
}

// checkPlugin resolves the latest published version of one plugin and
// compares the installed version against it.
func (c *Checker) checkPlugin(ctx context.Context, plugin scanner.Plugin) PluginResult {
	result := PluginResult{
		Slug:      plugin.Slug,
		Name:      plugin.Name,
		Installed: plugin.Version,
		Err:       plugin.Err,
	}

	// A plugin whose header could not be read is reported as unknown
	// without consulting the source.
	if result.Err != nil {
		result.Status = wpversion.StatusUnknown
		return result
	}

	latest, err := c.src.LatestPlugin(ctx, plugin.Slug)
	if err != nil {
		result.Err = err
		result.Status = wpversion.StatusUnknown
		return result
	}
	result.Latest = latest.Version
	result.Closed = latest.Closed

	result.Status = wpversion.Evaluate(result.Installed, result.Latest)
	return result
}
