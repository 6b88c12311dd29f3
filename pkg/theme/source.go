package theme

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/matzehuels/codeshot/pkg/errors"
)

//go:embed themes/*.toml
var builtinFS embed.FS

// Source yields theme definitions for a [Catalog].
type Source interface {
	Themes() ([]Theme, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func() ([]Theme, error)

// Themes calls f.
func (f SourceFunc) Themes() ([]Theme, error) { return f() }

// Builtin returns the themes embedded in the binary.
func Builtin() Source {
	return SourceFunc(func() ([]Theme, error) {
		return loadFS(builtinFS, "themes")
	})
}

// Dir returns every *.toml theme in dir. A leading "~/" is expanded to the
// home directory. A missing directory yields no themes.
func Dir(dir string) Source {
	return SourceFunc(func() ([]Theme, error) {
		if dir == "" {
			return nil, nil
		}
		if rest, ok := strings.CutPrefix(dir, "~/"); ok {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			dir = filepath.Join(home, rest)
		}
		info, err := os.Stat(dir)
		if os.IsNotExist(err) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			return nil, errors.New(errors.ErrCodeInvalidPath, "themes dir %s is not a directory", dir)
		}
		return loadFS(os.DirFS(dir), ".")
	})
}

// Bytes returns a single theme parsed from data. name is used only in
// error messages.
func Bytes(name string, data []byte) Source {
	return SourceFunc(func() ([]Theme, error) {
		t, err := Parse(data)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidTheme, err, "load %s", name)
		}
		return []Theme{t}, nil
	})
}

func loadFS(fsys fs.FS, dir string) ([]Theme, error) {
	matches, err := fs.Glob(fsys, filepath.ToSlash(filepath.Join(dir, "*.toml")))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)

	themes := make([]Theme, 0, len(matches))
	for _, path := range matches {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, err
		}
		t, err := Parse(data)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidTheme, err, "load %s", path)
		}
		themes = append(themes, t)
	}
	return themes, nil
}
