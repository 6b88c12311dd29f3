package emoji

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/codeshot/pkg/buildinfo"
	"github.com/matzehuels/codeshot/pkg/errors"
	"github.com/matzehuels/codeshot/pkg/httputil"
)

// Source fetches encoded glyph images (PNG) by key.
type Source interface {
	Fetch(ctx context.Context, key string) ([]byte, error)
}

// DefaultURL is the twemoji 72×72 PNG set. {key} is replaced by the glyph
// key.
const DefaultURL = "https://cdn.jsdelivr.net/gh/jdecked/twemoji@15.1.0/assets/72x72/{key}.png"

// HTTPSource fetches glyphs from a URL template, retrying transient
// failures.
type HTTPSource struct {
	client   *httputil.Client
	template string
}

// NewHTTPSource returns a source for template, which must contain "{key}".
// An empty template uses DefaultURL.
func NewHTTPSource(template string) *HTTPSource {
	if template == "" {
		template = DefaultURL
	}
	return &HTTPSource{
		client:   httputil.NewClient(map[string]string{"User-Agent": buildinfo.UserAgent()}),
		template: template,
	}
}

// WithClient replaces the HTTP client.
func (s *HTTPSource) WithClient(c *httputil.Client) *HTTPSource {
	s.client = c
	return s
}

// Fetch downloads the glyph for key.
func (s *HTTPSource) Fetch(ctx context.Context, key string) ([]byte, error) {
	if !validKey(key) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "invalid emoji key %q", key)
	}
	data, err := s.client.GetBytes(ctx, strings.ReplaceAll(s.template, "{key}", key))
	if stderrors.Is(err, httputil.ErrNotFound) {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "emoji %s", key)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "emoji %s", key)
	}
	return data, nil
}

// DirSource reads <key>.png files from a directory.
type DirSource struct {
	dir string
}

// NewDirSource returns a source reading from dir.
func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

// Fetch reads the glyph file for key.
func (s *DirSource) Fetch(ctx context.Context, key string) ([]byte, error) {
	name := key + ".png"
	if !validKey(key) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "invalid emoji key %q", key)
	}
	if err := errors.ValidatePath(name); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "emoji %s", key)
	}
	return data, err
}

// Sources tries each source in order and returns the first success.
type Sources []Source

// Fetch implements Source.
func (ss Sources) Fetch(ctx context.Context, key string) ([]byte, error) {
	var err error = errors.New(errors.ErrCodeNotFound, "emoji %s: no sources", key)
	for _, s := range ss {
		var data []byte
		if data, err = s.Fetch(ctx, key); err == nil {
			return data, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
	return nil, err
}

// validKey reports whether key looks like "1f600" or "1f468-200d-1f4bb".
func validKey(key string) bool {
	if key == "" || len(key) > 128 {
		return false
	}
	for _, r := range key {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f' || r == '-') {
			return false
		}
	}
	return true
}
