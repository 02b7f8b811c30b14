// Package config loads beatforge defaults from the user config directory.
//
// Settings live in a single YAML file:
//
//	~/Library/Application Support/beatforge/config.yaml   (macOS)
//	~/.config/beatforge/config.yaml                       (Linux)
//	%AppData%/beatforge/config.yaml                       (Windows)
//
// Every key mirrors a generate flag and supplies its default; flags given on
// the command line always win. The analysis cache lives in a cache/
// subdirectory next to the config file. BEATFORGE_CONFIG_DIR overrides the
// directory, mainly for tests.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/bloomify/beatforge/pkg/mapgen"
)

const (
	appDir     = "beatforge"
	configFile = "config.yaml"

	// EnvDir overrides the config directory when set.
	EnvDir = "BEATFORGE_CONFIG_DIR"
)

// Config is the optional defaults file. Numeric fields are pointers so an
// explicit zero in the file is distinguishable from an absent key.
type Config struct {
	Mode              string   `yaml:"mode"`
	Lanes             *int     `yaml:"lanes"`
	Difficulty        *float64 `yaml:"difficulty"`
	StreamSubdivision *int     `yaml:"stream_subdivision"`
	MinStreamBeats    *float64 `yaml:"min_stream_duration_beats"`
	ChordChance       *float64 `yaml:"chord_chance"`
	EnergyPercentile  *float64 `yaml:"energy_percentile"`

	Artist    string `yaml:"artist"`
	Mapper    string `yaml:"mapper"`
	ImagePath string `yaml:"image_path"`

	// Dir is the directory the config was loaded from (or would be).
	Dir string `yaml:"-"`
}

// Dir returns the beatforge config directory.
func Dir() (string, error) {
	if d := os.Getenv(EnvDir); d != "" {
		return d, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine config directory: %w", err)
	}
	return filepath.Join(base, appDir), nil
}

// Load reads the defaults file. A missing file is not an error: the zero
// Config means "no overrides".
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	return LoadFrom(dir)
}

// LoadFrom reads the defaults file from a specific directory.
func LoadFrom(dir string) (*Config, error) {
	cfg := &Config{Dir: dir}
	data, err := os.ReadFile(filepath.Join(dir, configFile))
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Join(dir, configFile), err)
	}
	return cfg, nil
}

// CacheDir returns the analysis cache directory under the config directory.
func (c *Config) CacheDir() string {
	return filepath.Join(c.Dir, "cache")
}

// Apply overlays the file's settings onto a generator config. Only keys
// present in the file change anything.
func (c *Config) Apply(g *mapgen.Config) {
	if c.Lanes != nil {
		g.Lanes = *c.Lanes
	}
	if c.Difficulty != nil {
		g.Difficulty = *c.Difficulty
	}
	if c.StreamSubdivision != nil {
		g.StreamSubdivision = *c.StreamSubdivision
	}
	if c.MinStreamBeats != nil {
		g.MinStreamBeats = *c.MinStreamBeats
	}
	if c.ChordChance != nil {
		g.ChordChance = *c.ChordChance
	}
	if c.EnergyPercentile != nil {
		g.EnergyPercentile = *c.EnergyPercentile
	}
}
