package pipeline

import (
	"bytes"
	"context"
	"image/png"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/codeshot/pkg/buildinfo"
	"github.com/matzehuels/codeshot/pkg/cache"
	"github.com/matzehuels/codeshot/pkg/errors"
	"github.com/matzehuels/codeshot/pkg/observability"
	"github.com/matzehuels/codeshot/pkg/render"
)

// Runner encapsulates request execution with caching.
// Both CLI and server use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner.
type Runner struct {
	Renderer *render.Renderer
	Cache    cache.Cache
	Keyer    cache.Keyer
	Logger   *log.Logger
}

// NewRunner creates a runner around renderer.
// If keyer is nil, a DefaultKeyer is used.
// If c is nil, a NullCache is used (caching disabled).
func NewRunner(renderer *render.Renderer, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	if renderer == nil {
		renderer = render.New(nil, nil, nil, nil, nil, logger)
	}
	return &Runner{
		Renderer: renderer,
		Cache:    c,
		Keyer:    keyer,
		Logger:   logger,
	}
}

// Execute validates req and returns its PNG, from cache when possible.
// Only validation and fatal render errors are returned; degraded renders
// succeed and list their warnings in Result.Stats.
func (r *Runner) Execute(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hooks := observability.Cache()
	key := r.Keyer.ArtifactKey(req.CacheKey(), cache.ArtifactKeyOpts{
		Format:      FormatPNG,
		Theme:       req.Theme,
		ThemeDigest: r.Renderer.ThemeDigest(req.Theme),
		Font:        r.Renderer.Font().Name(),
		Version:     buildinfo.Version,
	})

	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		if cfg, err := png.DecodeConfig(bytes.NewReader(data)); err == nil {
			hooks.OnCacheHit(ctx, "artifact")
			r.Logger.Debug("artifact cache hit", "key", key, "bytes", len(data))
			return &Result{PNG: data, Width: cfg.Width, Height: cfg.Height, CacheHit: true}, nil
		}
		// Corrupt entry: drop it and render again.
		_ = r.Cache.Delete(ctx, key)
	} else if err != nil {
		r.Logger.Debug("artifact cache read failed", "err", err)
	}
	hooks.OnCacheMiss(ctx, "artifact")

	start := time.Now()
	data, stats, err := r.Renderer.RenderPNG(ctx, req)
	if err != nil {
		return nil, err
	}
	for _, w := range stats.Warnings {
		r.Logger.Debug("render degraded", "code", errors.GetCode(w), "err", errors.UserMessage(w))
	}
	r.Logger.Info("rendered screenshot",
		"size", stats.String(),
		"bytes", len(data),
		"duration", time.Since(start))

	if transient(stats) {
		r.Logger.Debug("artifact not cached", "key", key, "emojiAsText", stats.EmojiAsText)
	} else if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
		r.Logger.Warn("artifact cache write failed", "err", err)
	} else {
		hooks.OnCacheSet(ctx, "artifact", len(data))
	}

	return &Result{
		PNG:    data,
		Width:  stats.Width,
		Height: stats.Height,
		Stats:  stats,
	}, nil
}

// transient reports whether a render degraded for a reason that may clear
// up on retry, such as an unreachable glyph source. Such renders are not
// cached.
func transient(stats render.Stats) bool {
	if stats.EmojiAsText > 0 {
		return true
	}
	for _, w := range stats.Warnings {
		if errors.Is(w, errors.ErrCodeEmojiFetchFailure) {
			return true
		}
	}
	return false
}
