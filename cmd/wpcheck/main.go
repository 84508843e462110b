package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/wpcheck/wpcheck/internal/common/logger"
	"github.com/wpcheck/wpcheck/internal/common/output"
)

var (
	verbose bool
	quiet   bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "wpcheck <directory>",
	Short: "Check WordPress installations for outdated core and plugins",
	Long: `wpcheck scans a directory of WordPress installations and reports whether
each installation's core files and plugins are up-to-date against the
latest published versions.

The directory itself and its immediate subdirectories qualify as
installations when they contain wp-content/ and wp-includes/.`,
	Args: cobra.ExactArgs(1),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Configure logging based on flags
		if verbose {
			logger.SetVerbose(true)
		}
		if quiet {
			logger.SetQuiet(true)
		}
		if noColor {
			output.NoColor()
		}
	},
	Run: runScan,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-error output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
