// Package config loads user defaults from ~/.config/codeshot/config.toml.
//
// A missing file is not an error; every field has a built-in default.
// Command-line flags are applied on top of the loaded values by the CLI.
//
//	[render]
//	theme = "tokyo-night"
//	font_size = 16
//	line_numbers = true
//
//	[emoji]
//	timeout = "5s"
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/codeshot/pkg/emoji"
	"github.com/matzehuels/codeshot/pkg/pipeline"
)

const appName = "codeshot"

// RenderConfig holds request defaults.
type RenderConfig struct {
	Theme        string `toml:"theme"`
	Width        int    `toml:"width"`
	FontSize     int    `toml:"font_size"`
	Padding      int    `toml:"padding"`
	LineNumbers  bool   `toml:"line_numbers"`
	WindowChrome bool   `toml:"window_chrome"`
	LineWrap     bool   `toml:"line_wrap"`
	Shader       string `toml:"shader"`
}

// EmojiConfig configures where emoji glyphs come from.
type EmojiConfig struct {
	// Source is a URL template containing {key}.
	Source string `toml:"source"`
	// Dir is a local directory of <key>.png files, tried before Source.
	Dir string `toml:"dir"`
	// Timeout bounds a single glyph fetch.
	Timeout time.Duration `toml:"timeout"`
	// Offline disables Source.
	Offline bool `toml:"offline"`
}

// ServerConfig holds `codeshot serve` settings.
type ServerConfig struct {
	Addr     string `toml:"addr"`
	RedisURL string `toml:"redis_url"`
}

// Config is the parsed config file.
type Config struct {
	Render    RenderConfig `toml:"render"`
	ThemesDir string       `toml:"themes_dir"`
	Font      string       `toml:"font"`
	Emoji     EmojiConfig  `toml:"emoji"`
	Server    ServerConfig `toml:"server"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	req := pipeline.DefaultRequest()
	return &Config{
		Render: RenderConfig{
			Theme:        req.Theme,
			Width:        req.Width,
			FontSize:     req.FontSize,
			Padding:      req.Padding,
			LineNumbers:  req.LineNumbers,
			WindowChrome: req.WindowChrome,
			LineWrap:     req.LineWrap,
		},
		ThemesDir: filepath.Join(Dir(), "themes"),
		Emoji: EmojiConfig{
			Source:  emoji.DefaultURL,
			Timeout: emoji.DefaultTimeout,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// Dir returns the config directory ($XDG_CONFIG_HOME/codeshot, falling
// back to ~/.config/codeshot).
func Dir() string {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, appName)
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", appName)
	}
	return filepath.Join(homeDir, ".config", appName)
}

// Path returns the config file path.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file at Path.
func Load() (*Config, error) {
	return LoadFile(Path())
}

// LoadFile reads the config file at path. Keys absent from the file keep
// their defaults; a missing file yields DefaultConfig.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}

// Request returns a request carrying the [render] defaults.
func (c *Config) Request() pipeline.Request {
	req := pipeline.DefaultRequest()
	req.Theme = c.Render.Theme
	req.Width = c.Render.Width
	req.FontSize = c.Render.FontSize
	req.Padding = c.Render.Padding
	req.LineNumbers = c.Render.LineNumbers
	req.WindowChrome = c.Render.WindowChrome
	req.LineWrap = c.Render.LineWrap
	req.Shader = c.Render.Shader
	return req
}
