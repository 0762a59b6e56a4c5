package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/matsen/simgraph/internal/source"
	"github.com/matsen/simgraph/internal/viz"
)

// GlobalConfig represents configuration stored in ~/.config/sgraph/config.yml.
type GlobalConfig struct {
	APIURL          string  `yaml:"api_url,omitempty"`
	StatePath       string  `yaml:"state_path,omitempty"`
	Palette         string  `yaml:"palette,omitempty"`
	DefaultField    string  `yaml:"default_field,omitempty"`
	WeakLinkFilter  float64 `yaml:"weak_link_filter,omitempty"`
	RepellingOffset float64 `yaml:"repelling_offset,omitempty"`
}

const (
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"

	// APIURLEnv overrides api_url.
	APIURLEnv = "SGRAPH_API_URL"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// globalConfigCache caches the loaded global config.
var globalConfigCache *GlobalConfig

// GlobalConfigPath returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/sgraph/config.yml.
func GlobalConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, AppDir, GlobalConfigFile)
}

// Defaults returns the configuration used when no file is present.
func Defaults() GlobalConfig {
	return GlobalConfig{
		APIURL:       source.DefaultBaseURL,
		StatePath:    DefaultStatePath(),
		Palette:      viz.DefaultPalette,
		DefaultField: viz.DefaultField,
	}
}

// LoadGlobalConfig loads the global configuration file, filling unset keys
// with defaults. A missing file yields the defaults, not an error.
func LoadGlobalConfig() (*GlobalConfig, error) {
	if globalConfigCache != nil {
		return globalConfigCache, nil
	}

	cfg := Defaults()

	if path := GlobalConfigPath(); path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parsing global config: %w", err)
			}
		}
	}

	cfg.applyDefaults()
	if env := os.Getenv(APIURLEnv); env != "" {
		cfg.APIURL = env
	}
	cfg.StatePath = ExpandPath(cfg.StatePath)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	globalConfigCache = &cfg
	return &cfg, nil
}

// ResetGlobalConfigCache clears the cached global config.
// Useful for testing.
func ResetGlobalConfigCache() {
	globalConfigCache = nil
}

// applyDefaults restores keys a config file set to empty strings.
func (c *GlobalConfig) applyDefaults() {
	d := Defaults()
	if c.APIURL == "" {
		c.APIURL = d.APIURL
	}
	if c.StatePath == "" {
		c.StatePath = d.StatePath
	}
	if c.Palette == "" {
		c.Palette = d.Palette
	}
	if c.DefaultField == "" {
		c.DefaultField = d.DefaultField
	}
}

// Validate checks the palette name and the weak-link filter range.
func (c *GlobalConfig) Validate() error {
	if _, err := viz.PaletteByName(c.Palette); err != nil {
		return fmt.Errorf("%w: palette: %v", ErrInvalidConfig, err)
	}
	if c.WeakLinkFilter < 0 || c.WeakLinkFilter > viz.FilterDivisor {
		return fmt.Errorf("%w: weak_link_filter %g outside [0, %g]", ErrInvalidConfig,
			c.WeakLinkFilter, viz.FilterDivisor)
	}
	if c.RepellingOffset < 0 {
		return fmt.Errorf("%w: repelling_offset %g is negative", ErrInvalidConfig, c.RepellingOffset)
	}
	return nil
}

// Settings converts the configuration into display settings for a session.
func (c *GlobalConfig) Settings() viz.Settings {
	s := viz.DefaultSettings()
	if p, err := viz.PaletteByName(c.Palette); err == nil {
		s.Palette = p
	}
	s.Filter = c.WeakLinkFilter
	s.RepellingOffset = c.RepellingOffset
	s.DefaultField = c.DefaultField
	return s
}
