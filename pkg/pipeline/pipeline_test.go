package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/codeshot/pkg/cache"
	"github.com/matzehuels/codeshot/pkg/emoji"
	"github.com/matzehuels/codeshot/pkg/errors"
	"github.com/matzehuels/codeshot/pkg/render"
	"github.com/matzehuels/codeshot/pkg/theme"
)

func newTestRunner(t *testing.T, c cache.Cache) *Runner {
	t.Helper()
	cat := theme.NewCatalog()
	if err := cat.Load(theme.Builtin()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	logger := log.New(io.Discard)
	return NewRunner(render.New(cat, nil, nil, nil, nil, logger), c, nil, logger)
}

func TestDefaultRequest(t *testing.T) {
	req := DefaultRequest()
	if req.Theme != "dracula" || req.Width != 680 || req.FontSize != 14 || req.Padding != 32 {
		t.Errorf("unexpected defaults: %+v", req)
	}
	if req.LineNumbers || !req.WindowChrome || !req.LineWrap {
		t.Errorf("unexpected toggle defaults: %+v", req)
	}
}

func TestExecuteCachesArtifact(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := newTestRunner(t, fc)

	req := DefaultRequest()
	req.Code = "print('hi')"
	req.Language = "python"

	first, err := runner.Execute(context.Background(), req)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if first.CacheHit {
		t.Error("first execution should miss the cache")
	}
	if first.Width != first.Stats.Width || first.Height != first.Stats.Height {
		t.Errorf("result size %dx%d does not match stats %dx%d",
			first.Width, first.Height, first.Stats.Width, first.Stats.Height)
	}

	second, err := runner.Execute(context.Background(), req)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !second.CacheHit {
		t.Error("second execution should hit the cache")
	}
	if !bytes.Equal(first.PNG, second.PNG) {
		t.Error("cached PNG differs from rendered PNG")
	}
	if second.Width != first.Width || second.Height != first.Height {
		t.Errorf("cached size %dx%d, want %dx%d", second.Width, second.Height, first.Width, first.Height)
	}
}

// memCache is an in-memory cache.Cache for tests.
type memCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMemCache() *memCache { return &memCache{entries: make(map[string][]byte)} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.entries[key]
	return data, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = data
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

func (c *memCache) Close() error { return nil }

func TestExecuteRecoversFromCorruptEntry(t *testing.T) {
	mc := newMemCache()
	runner := newTestRunner(t, mc)
	req := DefaultRequest()
	req.Code = "x"

	first, err := runner.Execute(context.Background(), req)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(mc.entries) != 1 {
		t.Fatalf("cache entries = %d, want 1", len(mc.entries))
	}
	for k := range mc.entries {
		mc.entries[k] = []byte("garbage")
	}

	again, err := runner.Execute(context.Background(), req)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if again.CacheHit {
		t.Error("corrupt entry should not count as a hit")
	}
	if !bytes.Equal(first.PNG, again.PNG) {
		t.Error("re-rendered PNG differs")
	}
}

func TestExecuteKeysByTheme(t *testing.T) {
	mc := newMemCache()
	runner := newTestRunner(t, mc)
	req := DefaultRequest()
	req.Code = "x"

	for _, name := range []string{"dracula", "nord"} {
		req.Theme = name
		if _, err := runner.Execute(context.Background(), req); err != nil {
			t.Fatalf("Execute(%s): %v", name, err)
		}
	}
	if len(mc.entries) != 2 {
		t.Errorf("cache entries = %d, want 2", len(mc.entries))
	}
}

func TestExecuteScopedKeys(t *testing.T) {
	mc := newMemCache()
	runner := newTestRunner(t, mc)
	runner.Keyer = cache.NewScopedKeyer(nil, "tenant:")

	req := DefaultRequest()
	req.Code = "x"
	if _, err := runner.Execute(context.Background(), req); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	for key := range mc.entries {
		if !strings.HasPrefix(key, "tenant:") {
			t.Errorf("key %q lacks the scope prefix", key)
		}
	}
	if len(mc.entries) != 1 {
		t.Errorf("cache entries = %d, want 1", len(mc.entries))
	}
}

// flakySource fails its first fetch and serves a white square afterwards.
type flakySource struct {
	mu    sync.Mutex
	calls int
	glyph []byte
}

func (s *flakySource) Fetch(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.calls == 1 {
		return nil, errors.New(errors.ErrCodeNetwork, "cdn unavailable")
	}
	return s.glyph, nil
}

func TestExecuteSkipsCachingFallbackEmoji(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 72, 72))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	var glyph bytes.Buffer
	if err := png.Encode(&glyph, img); err != nil {
		t.Fatal(err)
	}

	cat := theme.NewCatalog()
	if err := cat.Load(theme.Builtin()); err != nil {
		t.Fatal(err)
	}
	logger := log.New(io.Discard)
	comp := emoji.New(&flakySource{glyph: glyph.Bytes()}, emoji.Options{})
	mc := newMemCache()
	runner := NewRunner(render.New(cat, nil, nil, comp, nil, logger), mc, nil, logger)

	req := DefaultRequest()
	req.Code = "ship it 🚀"

	first, err := runner.Execute(context.Background(), req)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if first.Stats.EmojiAsText != 1 {
		t.Fatalf("EmojiAsText = %d, want 1", first.Stats.EmojiAsText)
	}
	if len(mc.entries) != 0 {
		t.Errorf("fallback render was cached (%d entries)", len(mc.entries))
	}

	second, err := runner.Execute(context.Background(), req)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if second.CacheHit {
		t.Error("second execution served the fallback render from cache")
	}
	if second.Stats.Emoji != 1 || second.Stats.EmojiAsText != 0 {
		t.Errorf("Emoji = %d, EmojiAsText = %d, want 1 and 0", second.Stats.Emoji, second.Stats.EmojiAsText)
	}
	if bytes.Equal(first.PNG, second.PNG) {
		t.Error("glyph render matches the fallback render")
	}
	if len(mc.entries) != 1 {
		t.Errorf("cache entries = %d, want 1", len(mc.entries))
	}
}

func TestExecuteKeysByThemeDefinition(t *testing.T) {
	const def = "name = \"Custom\"\n[colors]\nbackground = \"%s\"\nforeground = \"#ffffff\"\n"
	cat := theme.NewCatalog()
	if err := cat.Load(theme.Bytes("custom", []byte(fmt.Sprintf(def, "#000000")))); err != nil {
		t.Fatal(err)
	}
	logger := log.New(io.Discard)
	runner := NewRunner(render.New(cat, nil, nil, nil, nil, logger), newMemCache(), nil, logger)

	req := DefaultRequest()
	req.Code = "x"
	req.Theme = "custom"
	if _, err := runner.Execute(context.Background(), req); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if err := cat.Load(theme.Bytes("custom", []byte(fmt.Sprintf(def, "#203040")))); err != nil {
		t.Fatal(err)
	}
	res, err := runner.Execute(context.Background(), req)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.CacheHit {
		t.Error("edited theme served the render of its previous definition")
	}
}

func TestExecuteInvalidRequest(t *testing.T) {
	runner := newTestRunner(t, nil)
	req := DefaultRequest()
	req.Width = -5

	_, err := runner.Execute(context.Background(), req)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("err = %v, want INVALID_INPUT", err)
	}
}

func TestExecuteFatalRender(t *testing.T) {
	runner := newTestRunner(t, nil)
	req := DefaultRequest()
	req.Code = strings.Repeat("line\n", 1000)

	_, err := runner.Execute(context.Background(), req)
	if !errors.Is(err, errors.ErrCodeSurfaceAllocation) {
		t.Fatalf("err = %v, want SURFACE_ALLOCATION_FAILURE", err)
	}
}

func TestWriteTemp(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteTemp(dir, []byte("png"))
	if err != nil {
		t.Fatalf("WriteTemp: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("path %q not in %q", path, dir)
	}
	base := filepath.Base(path)
	if !strings.HasPrefix(base, "codeshot-") || !strings.HasSuffix(base, ".png") {
		t.Errorf("unexpected file name %q", base)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "png" {
		t.Errorf("ReadFile = %q, %v", data, err)
	}

	other, err := WriteTemp(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	if other == path {
		t.Error("WriteTemp reused a file name")
	}
}
