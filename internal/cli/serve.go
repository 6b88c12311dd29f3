package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/codeshot/internal/server"
	"github.com/matzehuels/codeshot/pkg/cache"
	"github.com/matzehuels/codeshot/pkg/pipeline"
)

// redisKeyPrefix namespaces codeshot entries in a shared Redis database.
const redisKeyPrefix = "codeshot:"

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		redisURL string
		engine   engineOpts
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the renderer over HTTP",
		Long: `Serve the renderer over HTTP.

  POST /v1/render   JSON request, PNG response
  GET  /v1/themes   theme names

With --redis-url, screenshots and emoji glyphs are cached in Redis so
several instances share one cache; otherwise the local file cache is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Server.Addr
			}
			if redisURL == "" {
				redisURL = c.Config.Server.RedisURL
			}

			var (
				store   cache.Cache
				keyer   cache.Keyer
				backend = "file"
				err     error
			)
			if engine.noCache {
				backend = "none"
			}
			if redisURL != "" && !engine.noCache {
				store, err = cache.NewRedisCache(ctx, redisURL)
				if err != nil {
					return err
				}
				keyer = cache.NewScopedKeyer(nil, redisKeyPrefix)
				backend = "redis"
			} else {
				store, err = newCache(engine.noCache)
				if err != nil {
					return err
				}
			}
			defer store.Close()

			eng, err := c.newEngine(engine, store, keyer)
			if err != nil {
				return err
			}
			runner := pipeline.NewRunner(eng.renderer, store, keyer, c.Logger)

			printSuccess("Serving on %s", StyleLink.Render("http://"+displayAddr(addr)))
			printKeyValue("cache", backend)
			printKeyValue("themes", fmt.Sprint(len(eng.catalog.Names())))
			return server.New(runner, eng.catalog, c.Logger).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisURL, "redis-url", "", "redis URL for a shared cache (redis://host:6379/0)")
	cmd.Flags().BoolVar(&engine.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&engine.themesDir, "themes-dir", "", "directory of extra theme TOML files")
	cmd.Flags().StringVar(&engine.font, "font", "", "font name or TTF path (default: Go Mono)")
	cmd.Flags().StringVar(&engine.emojiDir, "emoji-dir", "", "directory of <codepoints>.png emoji glyphs")
	cmd.Flags().BoolVar(&engine.offline, "offline", false, "never download emoji glyphs")

	return cmd
}

// displayAddr turns a listen address like ":8080" into "localhost:8080".
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
