package phpmeta

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// Error variables for core version extraction
var (
	// ErrVersionFileMissing is returned when wp-includes/version.php does not exist
	ErrVersionFileMissing = errors.New("version.php not found")
	// ErrVersionNotDeclared is returned when version.php contains no $wp_version assignment
	ErrVersionNotDeclared = errors.New("no $wp_version declaration found")
)

// Core declares its version as a single-quoted assignment in
// wp-includes/version.php, e.g. $wp_version = '5.8.1';
var wpVersionRegex = regexp.MustCompile(`\$wp_version\s*=\s*'([^']+)'`)

// CoreVersion extracts the WordPress core version from the installation
// rooted at installDir. The value assigned to $wp_version is returned
// verbatim, without any validation of its format.
func CoreVersion(installDir string) (string, error) {
	path := filepath.Join(installDir, "wp-includes", "version.php")
	content, err := ReadTextFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrVersionFileMissing, path)
		}
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	matches := wpVersionRegex.FindStringSubmatch(content)
	if matches == nil {
		return "", fmt.Errorf("%w in %s", ErrVersionNotDeclared, path)
	}

	return matches[1], nil
}
