package output

import (
	"os"

	"github.com/fatih/color"

	"github.com/wpcheck/wpcheck/internal/wpversion"
)

var (
	// Status colors
	UpToDate = color.New(color.FgGreen)
	Outdated = color.New(color.FgYellow)
	Unknown  = color.New(color.FgMagenta)
	Closed   = color.New(color.FgRed, color.Bold)

	// Message colors
	Success = color.New(color.FgGreen)
	Warning = color.New(color.FgYellow)
	Error   = color.New(color.FgRed)
	Info    = color.New(color.FgCyan)
	Dim     = color.New(color.Faint)

	// Structural colors
	Header = color.New(color.FgWhite, color.Bold)
	Path   = color.New(color.FgBlue, color.Bold)
)

// NoColor disables color output
func NoColor() {
	color.NoColor = true
}

// ForceColor enables color output even when not a TTY
func ForceColor() {
	color.NoColor = false
}

// IsTerminal returns true if stdout is a terminal
func IsTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// StatusColor returns the appropriate color for a version status.
// Unknown is deliberately loud so a failed check never reads as a pass.
func StatusColor(status wpversion.Status) *color.Color {
	switch status {
	case wpversion.StatusUpToDate:
		return UpToDate
	case wpversion.StatusOutdated:
		return Outdated
	case wpversion.StatusUnknown:
		return Unknown
	default:
		return color.New(color.Reset)
	}
}

// FormatStatus formats a version status with appropriate color
func FormatStatus(status wpversion.Status) string {
	return StatusColor(status).Sprintf("[%s]", status)
}

// FormatClosed returns the highlighted marker for plugins removed from
// distribution
func FormatClosed() string {
	return Closed.Sprint("CLOSED")
}

// FormatPath formats an installation path with color
func FormatPath(path string) string {
	return Path.Sprint(path)
}

// PrintSuccess prints a success message
func PrintSuccess(format string, args ...interface{}) {
	Success.Printf("✓ "+format+"\n", args...)
}

// PrintError prints an error message
func PrintError(format string, args ...interface{}) {
	Error.Fprintf(os.Stderr, "✗ "+format+"\n", args...)
}

// PrintWarning prints a warning message
func PrintWarning(format string, args ...interface{}) {
	Warning.Printf("⚠ "+format+"\n", args...)
}

// PrintInfo prints an info message
func PrintInfo(format string, args ...interface{}) {
	Info.Printf("→ "+format+"\n", args...)
}

// Sprintf returns a colored string without printing
func Sprintf(c *color.Color, format string, args ...interface{}) string {
	return c.Sprintf(format, args...)
}

// Sprint returns a colored string without printing
func Sprint(c *color.Color, a ...interface{}) string {
	return c.Sprint(a...)
}

// Printf prints with color
func Printf(c *color.Color, format string, args ...interface{}) {
	c.Printf(format, args...)
}

// Println prints with color and newline
func Println(c *color.Color, a ...interface{}) {
	c.Println(a...)
}
