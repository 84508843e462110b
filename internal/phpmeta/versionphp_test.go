package phpmeta

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeInstall creates a WordPress directory with the given version.php content
func writeInstall(t *testing.T, versionPHP string) string {
	t.Helper()
	dir := t.TempDir()
	includes := filepath.Join(dir, "wp-includes")
	if err := os.MkdirAll(includes, 0o755); err != nil {
		t.Fatalf("failed to create wp-includes: %v", err)
	}
	if err := os.WriteFile(filepath.Join(includes, "version.php"), []byte(versionPHP), 0o644); err != nil {
		t.Fatalf("failed to write version.php: %v", err)
	}
	return dir
}

func TestCoreVersion(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name:     "standard declaration",
			content:  "<?php\n$wp_version = '5.8.1';\n$wp_db_version = 49752;\n",
			expected: "5.8.1",
		},
		{
			name:     "no spaces around assignment",
			content:  "<?php\n$wp_version='6.4.3';\n",
			expected: "6.4.3",
		},
		{
			name:     "extra whitespace",
			content:  "<?php\n$wp_version   =   '5.7';\n",
			expected: "5.7",
		},
		{
			name:     "first declaration wins",
			content:  "<?php\n$wp_version = '5.8';\n$wp_version = '5.9';\n",
			expected: "5.8",
		},
		{
			name:     "value returned verbatim even when odd",
			content:  "<?php\n$wp_version = '5.8-alpha-51234';\n",
			expected: "5.8-alpha-51234",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeInstall(t, tt.content)
			got, err := CoreVersion(dir)
			if err != nil {
				t.Fatalf("CoreVersion() returned error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("CoreVersion() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestCoreVersion_FileMissing(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "wp-includes"), 0o755); err != nil {
		t.Fatalf("failed to create wp-includes: %v", err)
	}

	_, err := CoreVersion(dir)
	if !errors.Is(err, ErrVersionFileMissing) {
		t.Errorf("CoreVersion() error = %v, want %v", err, ErrVersionFileMissing)
	}
}

func TestCoreVersion_NotDeclared(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty file", ""},
		{"unrelated php", "<?php\n$wp_db_version = 49752;\n"},
		{"double quoted value", "<?php\n$wp_version = \"5.8.1\";\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeInstall(t, tt.content)
			_, err := CoreVersion(dir)
			if !errors.Is(err, ErrVersionNotDeclared) {
				t.Errorf("CoreVersion() error = %v, want %v", err, ErrVersionNotDeclared)
			}
		})
	}
}
