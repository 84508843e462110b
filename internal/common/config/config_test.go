package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"gopkg.in/yaml.v3"
)

// genTablePath generates plausible version table paths
func genTablePath() gopter.Gen {
	return gen.RegexMatch(`^/[a-z][a-z0-9/]{0,20}\.toml$`)
}

// genBaseURL generates plausible endpoint overrides
func genBaseURL() gopter.Gen {
	return gen.RegexMatch(`^https://[a-z]{1,10}\.[a-z]{2,4}$`)
}

// genConfig generates valid Config structs
func genConfig() gopter.Gen {
	return gopter.CombineGens(
		gen.OneConstOf(SourceWordPressOrg, SourceStatic),
		genTablePath(),
		genBaseURL(),
		gen.IntRange(1, 300),
		gen.IntRange(0, 10),
		gen.Bool(),
	).Map(func(values []interface{}) *Config {
		cfg := &Config{
			Source: values[0].(string),
			WPOrg: WPOrgConfig{
				BaseURL:        values[2].(string),
				TimeoutSeconds: values[3].(int),
				MaxRetries:     values[4].(int),
			},
			Output: OutputConfig{
				NoColor: values[5].(bool),
			},
		}
		if cfg.Source == SourceStatic {
			cfg.StaticVersions = values[1].(string)
		}
		return cfg
	})
}

// TestConfigRoundTrip verifies that a config written as YAML loads back
// unchanged.
func TestConfigRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("Config YAML round-trip preserves data", prop.ForAll(
		func(cfg *Config) bool {
			data, err := yaml.Marshal(cfg)
			if err != nil {
				t.Logf("Failed to marshal config: %v", err)
				return false
			}

			configPath := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(configPath, data, 0o644); err != nil {
				t.Logf("Failed to write config: %v", err)
				return false
			}

			loaded, err := LoadFrom(configPath)
			if err != nil {
				t.Logf("Failed to load config: %v", err)
				return false
			}

			return reflect.DeepEqual(cfg, loaded)
		},
		genConfig(),
	))

	properties.TestingRun(t)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, ".config"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}

	// Loading must never create a config file.
	paths, err := ConfigPaths()
	if err != nil {
		t.Fatalf("ConfigPaths() error = %v", err)
	}
	for _, path := range paths {
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("Load() created %s", path)
		}
	}
}

func TestLoadPrefersXDGPath(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, ".config"))

	legacyPath := filepath.Join(tmpDir, ".wpcheck", "config.yaml")
	if err := os.MkdirAll(filepath.Dir(legacyPath), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(legacyPath, []byte("source: wordpress.org\nwporg:\n  max_retries: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	xdgPath := filepath.Join(tmpDir, ".config", "wpcheck", "config.yaml")
	if err := os.MkdirAll(filepath.Dir(xdgPath), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(xdgPath, []byte("source: wordpress.org\nwporg:\n  max_retries: 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.WPOrg.MaxRetries != 7 {
		t.Errorf("MaxRetries = %d, want 7 from the XDG config", cfg.WPOrg.MaxRetries)
	}
}

func TestLoadFromPartialConfigKeepsDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	content := `wporg:
  timeout_seconds: 5
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Source != SourceWordPressOrg {
		t.Errorf("Source = %q, want default %q", cfg.Source, SourceWordPressOrg)
	}
	if cfg.WPOrg.TimeoutSeconds != 5 {
		t.Errorf("TimeoutSeconds = %d, want 5", cfg.WPOrg.TimeoutSeconds)
	}
}

func TestLoadFromRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "static source without version table",
			content: "source: static\n",
			wantErr: ErrStaticVersionsNotSet,
		},
		{
			name:    "unknown source",
			content: "source: svn\n",
			wantErr: ErrUnknownSource,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(configPath, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}

			_, err := LoadFrom(configPath)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("LoadFrom() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr error
	}{
		{
			name: "default source",
			cfg:  &Config{},
		},
		{
			name: "wordpress.org source",
			cfg:  &Config{Source: SourceWordPressOrg},
		},
		{
			name: "static source with table",
			cfg:  &Config{Source: SourceStatic, StaticVersions: "/etc/wpcheck/versions.toml"},
		},
		{
			name:    "static source without table",
			cfg:     &Config{Source: SourceStatic},
			wantErr: ErrStaticVersionsNotSet,
		},
		{
			name:    "unknown source",
			cfg:     &Config{Source: "registry"},
			wantErr: ErrUnknownSource,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestStaticVersionsPathExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := &Config{StaticVersions: "~/tables/versions.toml"}
	path, err := cfg.StaticVersionsPath()
	if err != nil {
		t.Fatalf("StaticVersionsPath() error = %v", err)
	}
	if want := filepath.Join(home, "tables", "versions.toml"); path != want {
		t.Errorf("StaticVersionsPath() = %q, want %q", path, want)
	}
}

func TestStaticVersionsPathUnset(t *testing.T) {
	cfg := &Config{}
	if _, err := cfg.StaticVersionsPath(); !errors.Is(err, ErrStaticVersionsNotSet) {
		t.Errorf("StaticVersionsPath() error = %v, want ErrStaticVersionsNotSet", err)
	}
}

func TestTimeout(t *testing.T) {
	tests := []struct {
		name    string
		seconds int
		want    time.Duration
	}{
		{name: "zero means built-in default", seconds: 0, want: 0},
		{name: "negative means built-in default", seconds: -3, want: 0},
		{name: "positive value converted", seconds: 30, want: 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := WPOrgConfig{TimeoutSeconds: tt.seconds}
			if got := cfg.Timeout(); got != tt.want {
				t.Errorf("Timeout() = %v, want %v", got, tt.want)
			}
		})
	}
}
