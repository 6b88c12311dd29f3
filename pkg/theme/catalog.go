package theme

import (
	"slices"
	"strings"
	"sync"

	"github.com/matzehuels/codeshot/pkg/errors"
)

// DefaultName is the theme used when a name cannot be resolved.
const DefaultName = "dracula"

// Catalog holds loaded themes indexed by normalized name and alias.
// It is safe for concurrent use; after startup it is only read.
type Catalog struct {
	mu     sync.RWMutex
	themes map[string]Theme  // normalized name -> theme
	index  map[string]string // normalized name or alias -> normalized name
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		themes: make(map[string]Theme),
		index:  make(map[string]string),
	}
}

// Load adds the themes yielded by each source. Loading the same theme
// twice is a no-op; a later definition with the same normalized name
// replaces the earlier one. Sources are read before the catalog is locked,
// so a failing source leaves the catalog unchanged.
func (c *Catalog) Load(sources ...Source) error {
	var loaded []Theme
	for _, src := range sources {
		themes, err := src.Themes()
		if err != nil {
			return err
		}
		loaded = append(loaded, themes...)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range loaded {
		key := Normalize(t.Name)
		c.themes[key] = t
		c.index[key] = key
		for _, alias := range t.Aliases {
			if a := Normalize(alias); a != "" {
				c.index[a] = key
			}
		}
	}
	return nil
}

// Lookup returns the theme registered under name or one of its aliases.
// It returns a THEME_NOT_FOUND error when nothing matches.
func (c *Catalog) Lookup(name string) (Theme, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if key, ok := c.index[Normalize(name)]; ok {
		return c.themes[key], nil
	}
	return Theme{}, errors.New(errors.ErrCodeThemeNotFound, "theme %q not found", name)
}

// Resolve returns the named theme, or the default theme when name is
// unknown. It never fails.
func (c *Catalog) Resolve(name string) Theme {
	if t, err := c.Lookup(name); err == nil {
		return t
	}
	if t, err := c.Lookup(DefaultName); err == nil {
		return t
	}
	return fallback()
}

// Names returns the sorted display names of all loaded themes. Aliases do
// not add entries.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.themes))
	for _, t := range c.themes {
		names = append(names, t.Name)
	}
	slices.SortFunc(names, func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})
	return names
}

// Themes returns all loaded themes sorted by display name.
func (c *Catalog) Themes() []Theme {
	names := c.Names()
	out := make([]Theme, 0, len(names))
	for _, n := range names {
		out = append(out, c.Resolve(n))
	}
	return out
}

// Normalize folds a theme name for matching: lower case with spaces,
// hyphens and underscores removed.
func Normalize(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch r {
		case ' ', '-', '_':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
