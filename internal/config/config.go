package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/msalah0e/glossview/internal/layout"
)

// Config holds glossview configuration.
type Config struct {
	API    APIConfig    `toml:"api"`
	Layout LayoutConfig `toml:"layout"`
	UI     UIConfig     `toml:"ui"`
	Server ServerConfig `toml:"server"`
}

// APIConfig points the viewer at a backend.
type APIConfig struct {
	BaseURL string `toml:"base_url"`
}

// LayoutConfig controls graph layout spacing.
type LayoutConfig struct {
	Direction string  `toml:"direction"` // "LR", "RL", "TB", "BT"
	NodeSep   float64 `toml:"node_sep"`
	RankSep   float64 `toml:"rank_sep"`
	MarginX   float64 `toml:"margin_x"`
	MarginY   float64 `toml:"margin_y"`
}

// UIConfig controls display options.
type UIConfig struct {
	Color bool `toml:"color"`
	Mouse bool `toml:"mouse"`
}

// ServerConfig controls the bundled backend.
type ServerConfig struct {
	Addr         string   `toml:"addr"`
	Data         string   `toml:"data"`
	Watch        bool     `toml:"watch"`
	Anchor       string   `toml:"anchor"`
	DedupeLabels []string `toml:"dedupe_labels"`
}

// Default returns the default configuration.
func Default() *Config {
	lo := layout.DefaultOptions()
	return &Config{
		API: APIConfig{BaseURL: "http://localhost:8000"},
		Layout: LayoutConfig{
			Direction: string(lo.Direction),
			NodeSep:   lo.NodeSep,
			RankSep:   lo.RankSep,
			MarginX:   lo.MarginX,
			MarginY:   lo.MarginY,
		},
		UI: UIConfig{Color: true, Mouse: true},
		Server: ServerConfig{
			Addr:         ":8000",
			Data:         "glossary.json",
			Anchor:       "web_components",
			DedupeLabels: []string{"состоит из"},
		},
	}
}

// LayoutOptions converts the layout section into engine options.
func (c *Config) LayoutOptions() (layout.Options, error) {
	opts := layout.DefaultOptions()
	dir, err := layout.ParseDirection(c.Layout.Direction)
	if err != nil {
		return opts, err
	}
	opts.Direction = dir
	if c.Layout.NodeSep > 0 {
		opts.NodeSep = c.Layout.NodeSep
	}
	if c.Layout.RankSep > 0 {
		opts.RankSep = c.Layout.RankSep
	}
	if c.Layout.MarginX >= 0 {
		opts.MarginX = c.Layout.MarginX
	}
	if c.Layout.MarginY >= 0 {
		opts.MarginY = c.Layout.MarginY
	}
	return opts, nil
}

// ConfigDir returns the glossview config directory path.
func ConfigDir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "glossview")
}

// Path returns the default config file path.
func Path() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the default config file. A missing or unreadable file
// yields the defaults.
func Load() *Config {
	cfg, err := LoadFrom(Path())
	if err != nil {
		return Default()
	}
	return cfg
}

// LoadFrom reads a config file over the defaults. A missing file is not
// an error; a malformed one is.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to the default path.
func Save(cfg *Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// EnsureExists creates the config file with defaults if it doesn't exist.
func EnsureExists() error {
	if _, err := os.Stat(Path()); err == nil {
		return nil // already exists
	}
	return Save(Default())
}
