package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/codeshot/pkg/emoji"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFileMissing(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Render.Theme != "dracula" || cfg.Render.Width != 680 {
		t.Errorf("unexpected defaults: %+v", cfg.Render)
	}
	if cfg.Emoji.Source != emoji.DefaultURL {
		t.Errorf("Emoji.Source = %q", cfg.Emoji.Source)
	}
}

func TestLoadFileOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
font = "JetBrains Mono"

[render]
theme = "nord"
font_size = 18
line_numbers = true
window_chrome = false

[emoji]
dir = "/opt/twemoji"
timeout = "5s"
offline = true

[server]
redis_url = "redis://localhost:6379/0"
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if cfg.Render.Theme != "nord" || cfg.Render.FontSize != 18 {
		t.Errorf("render = %+v", cfg.Render)
	}
	if cfg.Render.Width != 680 || cfg.Render.Padding != 32 || !cfg.Render.LineWrap {
		t.Errorf("absent keys lost their defaults: %+v", cfg.Render)
	}
	if cfg.Font != "JetBrains Mono" {
		t.Errorf("Font = %q", cfg.Font)
	}
	if cfg.Emoji.Timeout != 5*time.Second || !cfg.Emoji.Offline || cfg.Emoji.Dir != "/opt/twemoji" {
		t.Errorf("emoji = %+v", cfg.Emoji)
	}
	if cfg.Server.Addr != ":8080" || cfg.Server.RedisURL != "redis://localhost:6379/0" {
		t.Errorf("server = %+v", cfg.Server)
	}

	req := cfg.Request()
	if req.Theme != "nord" || req.FontSize != 18 || !req.LineNumbers || req.WindowChrome {
		t.Errorf("Request() = %+v", req)
	}
}

func TestLoadFileErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax", "[render\ntheme = 1"},
		{"type", "[render]\nwidth = \"wide\""},
		{"unknown key", "[render]\ncolour = \"red\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadFile(writeConfig(t, tt.body)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestDirHonorsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := Dir(); got != filepath.Join("/tmp/xdg", "codeshot") {
		t.Errorf("Dir() = %q", got)
	}
	if got := Path(); got != filepath.Join("/tmp/xdg", "codeshot", "config.toml") {
		t.Errorf("Path() = %q", got)
	}
}
