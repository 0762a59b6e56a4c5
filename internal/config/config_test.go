package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/matsen/simgraph/internal/source"
	"github.com/matsen/simgraph/internal/viz"
)

// withConfigHome points XDG_CONFIG_HOME at a temp dir and resets the cache.
func withConfigHome(t *testing.T) string {
	t.Helper()
	ResetGlobalConfigCache()
	t.Cleanup(ResetGlobalConfigCache)

	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv(APIURLEnv, "")
	return dir
}

func writeConfig(t *testing.T, home, content string) {
	t.Helper()
	dir := filepath.Join(home, AppDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, GlobalConfigFile), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestGlobalConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	if got, want := GlobalConfigPath(), "/custom/config/sgraph/config.yml"; got != want {
		t.Errorf("GlobalConfigPath() = %q, want %q", got, want)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}
	if got, want := GlobalConfigPath(), filepath.Join(home, ".config", "sgraph", "config.yml"); got != want {
		t.Errorf("GlobalConfigPath() = %q, want %q", got, want)
	}
}

func TestLoadGlobalConfig_NotFound(t *testing.T) {
	home := withConfigHome(t)

	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}
	if cfg.APIURL != source.DefaultBaseURL {
		t.Errorf("APIURL = %q, want %q", cfg.APIURL, source.DefaultBaseURL)
	}
	if cfg.Palette != viz.DefaultPalette {
		t.Errorf("Palette = %q, want %q", cfg.Palette, viz.DefaultPalette)
	}
	if cfg.DefaultField != viz.DefaultField {
		t.Errorf("DefaultField = %q, want %q", cfg.DefaultField, viz.DefaultField)
	}
	if want := filepath.Join(home, "data", AppDir, StateFile); cfg.StatePath != want {
		t.Errorf("StatePath = %q, want %q", cfg.StatePath, want)
	}
}

func TestLoadGlobalConfig_Valid(t *testing.T) {
	home := withConfigHome(t)
	writeConfig(t, home, `api_url: http://graphs.example.org
state_path: ~/sgraph/state.db
palette: pastel
default_field: Biology
weak_link_filter: 25
repelling_offset: 3
`)

	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}

	userHome, _ := os.UserHomeDir()
	if want := filepath.Join(userHome, "sgraph/state.db"); cfg.StatePath != want {
		t.Errorf("StatePath = %q, want %q", cfg.StatePath, want)
	}
	if cfg.APIURL != "http://graphs.example.org" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
	if cfg.Palette != "pastel" || cfg.DefaultField != "Biology" {
		t.Errorf("Palette = %q, DefaultField = %q", cfg.Palette, cfg.DefaultField)
	}
	if cfg.WeakLinkFilter != 25 || cfg.RepellingOffset != 3 {
		t.Errorf("WeakLinkFilter = %g, RepellingOffset = %g", cfg.WeakLinkFilter, cfg.RepellingOffset)
	}

	s := cfg.Settings()
	pastel, _ := viz.PaletteByName("pastel")
	if s.Palette[0] != pastel[0] || s.Filter != 25 || s.RepellingOffset != 3 || s.DefaultField != "Biology" {
		t.Errorf("Settings() = %+v", s)
	}
}

func TestLoadGlobalConfig_Cached(t *testing.T) {
	home := withConfigHome(t)
	writeConfig(t, home, "palette: dark\n")

	first, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}
	writeConfig(t, home, "palette: pastel\n")

	second, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}
	if first != second || second.Palette != "dark" {
		t.Errorf("second load = %q, want cached dark", second.Palette)
	}
}

func TestLoadGlobalConfig_EnvOverride(t *testing.T) {
	home := withConfigHome(t)
	writeConfig(t, home, "api_url: http://from-file\n")
	t.Setenv(APIURLEnv, "http://from-env")

	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}
	if cfg.APIURL != "http://from-env" {
		t.Errorf("APIURL = %q, want http://from-env", cfg.APIURL)
	}
}

func TestLoadGlobalConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed yaml", "palette: [unclosed\n"},
		{"unknown palette", "palette: neon\n"},
		{"negative filter", "weak_link_filter: -1\n"},
		{"filter above range", "weak_link_filter: 101\n"},
		{"negative offset", "repelling_offset: -2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := withConfigHome(t)
			writeConfig(t, home, tt.content)

			if _, err := LoadGlobalConfig(); err == nil {
				t.Errorf("LoadGlobalConfig() error = nil for %q", tt.content)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := Defaults()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate(defaults) error = %v", err)
	}

	cfg.WeakLinkFilter = viz.FilterDivisor
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate(filter=%g) error = %v", viz.FilterDivisor, err)
	}

	cfg.Palette = "neon"
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Validate(neon) error = %v, want ErrInvalidConfig", err)
	}
}

func TestArchivePath(t *testing.T) {
	if got, want := ArchivePath("/var/sgraph/state.db"), "/var/sgraph/snapshots.jsonl"; got != want {
		t.Errorf("ArchivePath() = %q, want %q", got, want)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}

	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"/abs/path", "/abs/path"},
		{"relative", "relative"},
		{"~/x/y", filepath.Join(home, "x/y")},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
