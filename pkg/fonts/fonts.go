// Package fonts provides the monospace fonts used to draw code.
//
// Go Mono is embedded via golang.org/x/image/font/gofont, so rendering works
// without any system fonts. Other TrueType fonts can be loaded from a path
// or looked up by name in the platform font directories.
package fonts

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/matzehuels/codeshot/pkg/errors"
)

// TabWidth is the number of spaces a tab expands to when drawn.
const TabWidth = 4

// Font is a parsed TrueType font.
type Font struct {
	name string
	ttf  *truetype.Font
}

var (
	defaultFont     *Font
	defaultFontOnce sync.Once
)

// Default returns the embedded Go Mono font.
func Default() *Font {
	defaultFontOnce.Do(func() {
		f, err := Parse("Go Mono", gomono.TTF)
		if err != nil {
			panic("fonts: embedded Go Mono is invalid: " + err.Error())
		}
		defaultFont = f
	})
	return defaultFont
}

// Parse parses TrueType data.
func Parse(name string, data []byte) (*Font, error) {
	ttf, err := truetype.Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse font %s", name)
	}
	return &Font{name: name, ttf: ttf}, nil
}

// Load reads a TrueType font file.
func Load(path string) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read font")
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Parse(name, data)
}

// Find resolves a font by path or by name. An empty name returns the
// default font. Names are searched in the user and system font
// directories, with substring matching as a last resort.
func Find(name string) (*Font, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Default(), nil
	}
	if _, err := os.Stat(name); err == nil {
		return Load(name)
	}
	path, err := findfont.Find(name)
	if err != nil {
		if filepath.Ext(name) == "" {
			path, err = findfont.Find(name + ".ttf")
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "font %q", name)
		}
	}
	return Load(path)
}

// Name returns the font's display name.
func (f *Font) Name() string { return f.name }

// Face returns a new face at the given pixel size. Faces cache glyphs
// internally and are not safe for concurrent use, so each render creates
// its own.
func (f *Font) Face(size float64) font.Face {
	return truetype.NewFace(f.ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

// Measure returns the advance width of s in face, in pixels, with tabs
// expanded.
func Measure(face font.Face, s string) float64 {
	if s == "" {
		return 0
	}
	adv := font.MeasureString(face, ExpandTabs(s))
	return float64(adv) / 64
}

// ExpandTabs replaces each tab with TabWidth spaces.
func ExpandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", TabWidth))
}
