package emoji

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/codeshot/pkg/cache"
	"github.com/matzehuels/codeshot/pkg/errors"
	"github.com/matzehuels/codeshot/pkg/httputil"
)

func glyphPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 0xff, A: 0xff})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// fakeSource serves one PNG for every key, optionally blocking first.
type fakeSource struct {
	data    []byte
	err     error
	block   chan struct{}
	calls   atomic.Int32
	perKeys sync.Map
}

func (f *fakeSource) Fetch(ctx context.Context, key string) ([]byte, error) {
	f.calls.Add(1)
	n, _ := f.perKeys.LoadOrStore(key, new(atomic.Int32))
	n.(*atomic.Int32).Add(1)
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.data, f.err
}

func TestResolveCachesInMemory(t *testing.T) {
	src := &fakeSource{data: glyphPNG(t)}
	c := New(src, Options{})

	for range 3 {
		img, err := c.Resolve(context.Background(), "1f600")
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if img.Bounds().Dx() != 4 {
			t.Errorf("bounds = %v", img.Bounds())
		}
	}
	if n := src.calls.Load(); n != 1 {
		t.Errorf("source called %d times, want 1", n)
	}
}

func TestResolveDeduplicatesConcurrentMisses(t *testing.T) {
	src := &fakeSource{data: glyphPNG(t), block: make(chan struct{})}
	c := New(src, Options{})

	const n = 10
	var ready, done sync.WaitGroup
	ready.Add(n)
	done.Add(n)
	errs := make(chan error, n)
	for range n {
		go func() {
			defer done.Done()
			ready.Done()
			_, err := c.Resolve(context.Background(), "1f680")
			errs <- err
		}()
	}
	ready.Wait()
	time.Sleep(20 * time.Millisecond)
	close(src.block)
	done.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("Resolve: %v", err)
		}
	}
	if got := src.calls.Load(); got != 1 {
		t.Errorf("source called %d times, want 1", got)
	}
}

func TestResolveTimeout(t *testing.T) {
	src := &fakeSource{data: glyphPNG(t), block: make(chan struct{})}
	c := New(src, Options{Timeout: 30 * time.Millisecond})

	start := time.Now()
	_, err := c.Resolve(context.Background(), "1f600")
	if !errors.Is(err, errors.ErrCodeEmojiFetchFailure) {
		t.Errorf("err = %v, want EMOJI_FETCH_FAILURE", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("timeout took %v", elapsed)
	}
	if errors.Fatal(err) {
		t.Error("EMOJI_FETCH_FAILURE should not be fatal")
	}
}

func TestResolveCallerDeadline(t *testing.T) {
	src := &fakeSource{data: glyphPNG(t), block: make(chan struct{})}
	defer close(src.block)
	c := New(src, Options{Timeout: time.Minute})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := c.Resolve(ctx, "1f600"); !errors.Is(err, errors.ErrCodeEmojiFetchFailure) {
		t.Errorf("err = %v, want EMOJI_FETCH_FAILURE", err)
	}
}

func TestResolveFailures(t *testing.T) {
	tests := []struct {
		name string
		src  Source
	}{
		{"nil source", nil},
		{"source error", &fakeSource{err: fmt.Errorf("offline")}},
		{"undecodable", &fakeSource{data: []byte("not a png")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.src, Options{})
			if _, err := c.Resolve(context.Background(), "1f600"); !errors.Is(err, errors.ErrCodeEmojiFetchFailure) {
				t.Errorf("err = %v, want EMOJI_FETCH_FAILURE", err)
			}
			if c.Len() != 0 {
				t.Error("failure should not be cached")
			}
		})
	}
}

func TestResolveUsesPersistentCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	src := &fakeSource{data: glyphPNG(t)}

	if _, err := New(src, Options{Cache: fc}).Resolve(context.Background(), "1f600"); err != nil {
		t.Fatal(err)
	}
	// A fresh compositor with the same cache must not hit the source.
	if _, err := New(src, Options{Cache: fc}).Resolve(context.Background(), "1f600"); err != nil {
		t.Fatal(err)
	}
	if n := src.calls.Load(); n != 1 {
		t.Errorf("source called %d times, want 1", n)
	}
}

func TestPrefetch(t *testing.T) {
	src := &fakeSource{data: glyphPNG(t)}
	c := New(src, Options{Concurrency: 2})

	keys := []string{"1f600", "1f601", "1f600", "1f602", "1f601"}
	glyphs, err := c.Prefetch(context.Background(), keys)
	if err != nil {
		t.Fatalf("Prefetch: %v", err)
	}
	if len(glyphs) != 3 {
		t.Errorf("got %d glyphs, want 3", len(glyphs))
	}
	if n := src.calls.Load(); n != 3 {
		t.Errorf("source called %d times, want 3", n)
	}
}

func TestPrefetchPartialFailure(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "1f600.png"), glyphPNG(t), 0o644); err != nil {
		t.Fatal(err)
	}
	c := New(NewDirSource(dir), Options{})

	glyphs, err := c.Prefetch(context.Background(), []string{"1f600", "1f999"})
	if len(glyphs) != 1 || glyphs["1f600"] == nil {
		t.Errorf("glyphs = %v", glyphs)
	}
	if !errors.Is(err, errors.ErrCodeEmojiFetchFailure) {
		t.Errorf("err = %v, want EMOJI_FETCH_FAILURE", err)
	}
}

func TestDirSourceRejectsBadKeys(t *testing.T) {
	s := NewDirSource(t.TempDir())
	for _, key := range []string{"", "../etc/passwd", "1F600", "abc/def"} {
		if _, err := s.Fetch(context.Background(), key); err == nil {
			t.Errorf("Fetch(%q) should fail", key)
		}
	}
}

func TestHTTPSource(t *testing.T) {
	data := glyphPNG(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/72x72/1f600.png" {
			http.NotFound(w, r)
			return
		}
		w.Write(data)
	}))
	defer srv.Close()

	s := NewHTTPSource(srv.URL + "/72x72/{key}.png").
		WithClient(httputil.NewClient(nil).WithRetry(1, time.Millisecond))

	got, err := s.Fetch(context.Background(), "1f600")
	if err != nil || !bytes.Equal(got, data) {
		t.Errorf("Fetch = %d bytes, %v", len(got), err)
	}
	if _, err := s.Fetch(context.Background(), "1f601"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("missing glyph err = %v, want NOT_FOUND", err)
	}
}

func TestSourcesChain(t *testing.T) {
	data := glyphPNG(t)
	failing := &fakeSource{err: fmt.Errorf("down")}
	working := &fakeSource{data: data}

	got, err := Sources{failing, working}.Fetch(context.Background(), "1f600")
	if err != nil || !bytes.Equal(got, data) {
		t.Errorf("Fetch = %v", err)
	}
	if _, err := (Sources{}).Fetch(context.Background(), "1f600"); err == nil {
		t.Error("empty chain should fail")
	}
	if _, err := (Sources{failing}).Fetch(context.Background(), "1f600"); err == nil {
		t.Error("all-failing chain should fail")
	}
}
