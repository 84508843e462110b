package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/wpcheck/wpcheck/internal/checker"
	"github.com/wpcheck/wpcheck/internal/common/config"
	"github.com/wpcheck/wpcheck/internal/common/logger"
	"github.com/wpcheck/wpcheck/internal/common/output"
	"github.com/wpcheck/wpcheck/internal/source"
	"github.com/wpcheck/wpcheck/internal/wpversion"
)

func runScan(cmd *cobra.Command, args []string) {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("loading config: %v", err)
		os.Exit(1)
	}

	if cfg.Output.NoColor {
		output.NoColor()
	}

	src, err := buildSource(cfg)
	if err != nil {
		logger.Error("initializing version source: %v", err)
		os.Exit(1)
	}
	logger.Debug("resolving latest versions via %s", src.Name())

	root := args[0]
	results, err := checker.New(src).CheckRoot(cmd.Context(), root)
	if err != nil {
		logger.Error("scanning %s: %v", root, err)
		os.Exit(1)
	}

	displayResults(results)
}

// buildSource maps the configuration onto version source options.
func buildSource(cfg *config.Config) (source.Source, error) {
	opts := source.Options{
		Type:       cfg.Source,
		BaseURL:    cfg.WPOrg.BaseURL,
		Timeout:    cfg.WPOrg.Timeout(),
		MaxRetries: cfg.WPOrg.MaxRetries,
	}

	if cfg.Source == config.SourceStatic {
		path, err := cfg.StaticVersionsPath()
		if err != nil {
			return nil, err
		}
		opts.StaticFile = path
	}

	return source.New(opts)
}

// displayResults formats and displays check results
func displayResults(results []*checker.InstallationResult) {
	if len(results) == 0 {
		logger.Info("No WordPress installations found")
		return
	}

	var outdated, unknown, closed int

	fmt.Println()
	output.Header.Println("WordPress Update Check")
	fmt.Println()

	for _, r := range results {
		output.Path.Printf("%s\n", r.Path)

		displayCore(r.Core)
		switch r.Core.Status {
		case wpversion.StatusOutdated:
			outdated++
		case wpversion.StatusUnknown:
			unknown++
		}

		for _, p := range r.Plugins {
			displayPlugin(p)
			switch p.Status {
			case wpversion.StatusOutdated:
				outdated++
			case wpversion.StatusUnknown:
				unknown++
			}
			if p.Closed {
				closed++
			}
		}

		fmt.Println()
	}

	if outdated > 0 {
		output.Info.Printf("Found %d outdated item(s) across %d installation(s)\n", outdated, len(results))
	} else {
		output.Success.Printf("All %d installation(s) are up to date\n", len(results))
	}
	if closed > 0 {
		output.Warning.Printf("%d plugin(s) have been closed upstream\n", closed)
	}
	if unknown > 0 {
		output.Warning.Printf("%d item(s) could not be checked\n", unknown)
	}
}

// displayCore renders the core line of one installation
func displayCore(core checker.CoreResult) {
	fmt.Printf("  core %s %s", coreVersions(core), output.FormatStatus(core.Status))
	if core.Err != nil {
		output.Dim.Printf(" (%v)", core.Err)
	}
	fmt.Println()
}

// displayPlugin renders one plugin line
func displayPlugin(p checker.PluginResult) {
	fmt.Printf("  %s %s %s", p.Slug, pluginVersions(p), output.FormatStatus(p.Status))
	if p.Closed {
		fmt.Printf(" %s", output.FormatClosed())
	}
	if p.Err != nil {
		output.Dim.Printf(" (%v)", p.Err)
	}
	fmt.Println()
}

// coreVersions renders the installed/latest core versions for display
func coreVersions(core checker.CoreResult) string {
	installed := core.Installed
	if installed == "" {
		installed = "?"
	}

	switch core.Status {
	case wpversion.StatusOutdated:
		if !core.ReleasedAt.IsZero() {
			return fmt.Sprintf("%s → %s (released %s)",
				installed, core.Latest, core.ReleasedAt.Format("2006-01-02"))
		}
		return fmt.Sprintf("%s → %s", installed, core.Latest)
	case wpversion.StatusUnknown:
		if core.Latest != "" {
			return fmt.Sprintf("%s (latest %s)", installed, core.Latest)
		}
	}
	return installed
}

// pluginVersions renders the installed/latest plugin versions for display
func pluginVersions(p checker.PluginResult) string {
	installed := p.Installed
	if installed == "" {
		installed = "?"
	}

	switch p.Status {
	case wpversion.StatusOutdated:
		return fmt.Sprintf("%s → %s", installed, p.Latest)
	case wpversion.StatusUnknown:
		if p.Latest != "" {
			return fmt.Sprintf("%s (latest %s)", installed, p.Latest)
		}
	}
	return installed
}
