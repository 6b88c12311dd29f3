package emoji

import (
	"bytes"
	"context"
	"image"
	_ "image/png"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/matzehuels/codeshot/pkg/cache"
	"github.com/matzehuels/codeshot/pkg/errors"
	"github.com/matzehuels/codeshot/pkg/observability"
)

// Defaults for [Options].
const (
	DefaultTimeout     = 3 * time.Second
	DefaultConcurrency = 8
)

// Advance ratios relative to the font size.
const (
	AdvanceRatio = 0.8
	SpacingRatio = 0.2
)

// Advance returns the horizontal advance of an emoji glyph. Adjacent emoji
// get extra spacing so they do not touch.
func Advance(fontSize float64, adjacent bool) float64 {
	if adjacent {
		return (AdvanceRatio + SpacingRatio) * fontSize
	}
	return AdvanceRatio * fontSize
}

// Options configure a Compositor. The zero value is usable.
type Options struct {
	// Cache persists fetched glyph PNGs across processes. Nil disables it.
	Cache cache.Cache
	Keyer cache.Keyer

	// Timeout bounds each fetch from the source.
	Timeout time.Duration

	// Concurrency bounds parallel fetches in Prefetch.
	Concurrency int

	Logger *log.Logger
}

// Compositor resolves emoji keys to decoded glyph images. It is safe for
// concurrent use and is meant to live for the whole process.
type Compositor struct {
	source      Source
	cache       cache.Cache
	keyer       cache.Keyer
	timeout     time.Duration
	concurrency int
	logger      *log.Logger

	mu     sync.RWMutex
	glyphs map[string]image.Image
	group  singleflight.Group
}

// New returns a Compositor fetching misses from src. A nil src makes every
// lookup fail, so all emoji are drawn as text.
func New(src Source, opts Options) *Compositor {
	if opts.Cache == nil {
		opts.Cache = cache.NewNullCache()
	}
	if opts.Keyer == nil {
		opts.Keyer = cache.NewDefaultKeyer()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Compositor{
		source:      src,
		cache:       opts.Cache,
		keyer:       opts.Keyer,
		timeout:     opts.Timeout,
		concurrency: opts.Concurrency,
		logger:      opts.Logger,
		glyphs:      make(map[string]image.Image),
	}
}

// Resolve returns the glyph for key. Failures carry EMOJI_FETCH_FAILURE;
// the caller should draw the raw character instead. ctx bounds the wait,
// not the shared fetch, which is bounded by the compositor timeout.
func (c *Compositor) Resolve(ctx context.Context, key string) (image.Image, error) {
	c.mu.RLock()
	img, ok := c.glyphs[key]
	c.mu.RUnlock()
	if ok {
		return img, nil
	}

	ch := c.group.DoChan(key, func() (any, error) {
		return c.load(context.WithoutCancel(ctx), key)
	})
	select {
	case <-ctx.Done():
		return nil, errors.Wrap(errors.ErrCodeEmojiFetchFailure, ctx.Err(), "emoji %s", key)
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(image.Image), nil
	}
}

// load checks the persistent cache, then the source, and stores the
// result in both.
func (c *Compositor) load(ctx context.Context, key string) (image.Image, error) {
	hooks := observability.Cache()
	cacheKey := c.keyer.EmojiKey(key)

	if data, hit, err := c.cache.Get(ctx, cacheKey); err == nil && hit {
		if img, err := decode(data); err == nil {
			hooks.OnCacheHit(ctx, "emoji")
			c.store(key, img)
			return img, nil
		}
		_ = c.cache.Delete(ctx, cacheKey)
	} else if err != nil {
		c.logger.Debug("emoji cache read failed", "key", key, "err", err)
	}
	hooks.OnCacheMiss(ctx, "emoji")

	if c.source == nil {
		return nil, errors.New(errors.ErrCodeEmojiFetchFailure, "emoji %s: no glyph source", key)
	}

	observability.Glyph().OnGlyphFetch(ctx, key)
	start := time.Now()
	fetchCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	data, err := c.source.Fetch(fetchCtx, key)
	if err == nil && fetchCtx.Err() != nil {
		err = fetchCtx.Err()
	}
	var img image.Image
	if err == nil {
		img, err = decode(data)
	}
	observability.Glyph().OnGlyphResolved(ctx, key, time.Since(start), err)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeEmojiFetchFailure, err, "emoji %s", key)
	}

	c.store(key, img)
	if err := c.cache.Set(ctx, cacheKey, data, cache.TTLEmoji); err != nil {
		c.logger.Debug("emoji cache write failed", "key", key, "err", err)
	} else {
		hooks.OnCacheSet(ctx, "emoji", len(data))
	}
	return img, nil
}

// store records a glyph. Duplicate stores for one key are harmless.
func (c *Compositor) store(key string, img image.Image) {
	c.mu.Lock()
	if _, ok := c.glyphs[key]; !ok {
		c.glyphs[key] = img
	}
	c.mu.Unlock()
}

// Prefetch resolves the distinct keys in parallel and returns the glyphs
// that succeeded. The error, if any, is the first EMOJI_FETCH_FAILURE; it
// is informational and never prevents the other keys from resolving.
func (c *Compositor) Prefetch(ctx context.Context, keys []string) (map[string]image.Image, error) {
	out := make(map[string]image.Image, len(keys))
	var (
		mu       sync.Mutex
		firstErr error
	)

	g := new(errgroup.Group)
	g.SetLimit(c.concurrency)
	seen := make(map[string]bool, len(keys))
	for _, key := range keys {
		if seen[key] {
			continue
		}
		seen[key] = true
		g.Go(func() error {
			img, err := c.Resolve(ctx, key)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				c.logger.Debug("emoji unavailable, drawing as text", "key", key, "err", err)
				if firstErr == nil {
					firstErr = err
				}
				return nil
			}
			out[key] = img
			return nil
		})
	}
	_ = g.Wait()
	return out, firstErr
}

// Len returns the number of glyphs held in memory.
func (c *Compositor) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.glyphs)
}

func decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	return img, err
}
