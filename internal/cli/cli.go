// Package cli implements the codeshot command-line interface.
//
// # Commands
//
//   - render: Render a source file (or stdin) to a PNG screenshot
//   - themes: List themes, or pick one interactively with --pick
//   - serve: Serve the renderer over HTTP
//   - cache: Manage the screenshot and emoji cache
//   - completion: Generate shell completion scripts
//
// # Configuration
//
// Defaults come from ~/.config/codeshot/config.toml (see internal/config);
// flags override them.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger
// is attached to the command context.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/codeshot/internal/config"
	"github.com/matzehuels/codeshot/pkg/background"
	"github.com/matzehuels/codeshot/pkg/buildinfo"
	"github.com/matzehuels/codeshot/pkg/cache"
	"github.com/matzehuels/codeshot/pkg/emoji"
	"github.com/matzehuels/codeshot/pkg/fonts"
	"github.com/matzehuels/codeshot/pkg/highlight"
	"github.com/matzehuels/codeshot/pkg/httputil"
	"github.com/matzehuels/codeshot/pkg/pipeline"
	"github.com/matzehuels/codeshot/pkg/render"
	"github.com/matzehuels/codeshot/pkg/theme"
)

const (
	// appName is the application name used for directories and display.
	appName = "codeshot"

	// emojiRetries and emojiRetryDelay bound glyph download retries; the
	// compositor timeout still caps the total.
	emojiRetries    = 2
	emojiRetryDelay = 200 * time.Millisecond
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config *config.Config
}

// New creates a new CLI instance with a default logger and built-in
// configuration. The config file is read before each command runs.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Codeshot renders source code as styled screenshots",
		Long:         `Codeshot turns source code into a syntax-highlighted PNG with a window frame, line numbers and a themed or procedurally generated background.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			c.Config = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.themesCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Component Factories
// =============================================================================

// engineOpts selects the resources a renderer is built from. Empty fields
// fall back to the config file.
type engineOpts struct {
	themesDir string
	font      string
	emojiDir  string
	offline   bool
	noCache   bool
}

// engine is a renderer plus what it was built from.
type engine struct {
	catalog  *theme.Catalog
	renderer *render.Renderer
	cache    cache.Cache
}

// newEngine assembles catalog, font, emoji compositor and renderer. A nil
// keyer uses unprefixed keys.
func (c *CLI) newEngine(opts engineOpts, store cache.Cache, keyer cache.Keyer) (*engine, error) {
	catalog, err := c.newCatalog(opts.themesDir)
	if err != nil {
		return nil, err
	}

	font, err := c.newFont(opts.font)
	if err != nil {
		return nil, err
	}

	comp := emoji.New(c.emojiSource(opts), emoji.Options{
		Cache:   store,
		Keyer:   keyer,
		Timeout: c.Config.Emoji.Timeout,
		Logger:  c.Logger,
	})

	renderer := render.New(catalog, highlight.New(), background.New(c.Logger), comp, font, c.Logger)
	c.Logger.Debug("engine ready", "themes", len(catalog.Names()), "font", font.Name())
	return &engine{catalog: catalog, renderer: renderer, cache: store}, nil
}

// newCatalog loads the built-in themes plus any in dir (or the configured
// themes directory).
func (c *CLI) newCatalog(dir string) (*theme.Catalog, error) {
	if dir == "" {
		dir = c.Config.ThemesDir
	}
	catalog := theme.NewCatalog()
	if err := catalog.Load(theme.Builtin(), theme.Dir(dir)); err != nil {
		return nil, err
	}
	return catalog, nil
}

// newFont finds the named font, or returns the embedded default.
func (c *CLI) newFont(name string) (*fonts.Font, error) {
	if name == "" {
		name = c.Config.Font
	}
	if name == "" {
		return fonts.Default(), nil
	}
	return fonts.Find(name)
}

// emojiSource chains the local glyph directory before the network source.
func (c *CLI) emojiSource(opts engineOpts) emoji.Source {
	dir := opts.emojiDir
	if dir == "" {
		dir = c.Config.Emoji.Dir
	}
	offline := opts.offline || c.Config.Emoji.Offline

	var sources emoji.Sources
	if dir != "" {
		sources = append(sources, emoji.NewDirSource(dir))
	}
	if !offline {
		client := httputil.NewClient(map[string]string{"User-Agent": buildinfo.UserAgent()}).
			WithRetry(emojiRetries, emojiRetryDelay)
		sources = append(sources, emoji.NewHTTPSource(c.Config.Emoji.Source).WithClient(client))
	}
	if len(sources) == 0 {
		return nil
	}
	return sources
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(opts engineOpts) (*pipeline.Runner, error) {
	store, err := newCache(opts.noCache)
	if err != nil {
		return nil, err
	}
	eng, err := c.newEngine(opts, store, nil)
	if err != nil {
		store.Close()
		return nil, err
	}
	return pipeline.NewRunner(eng.renderer, store, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/codeshot/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
