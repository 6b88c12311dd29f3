package theme

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/codeshot/pkg/errors"
)

// Class is a syntax class: the color role of a run of source text.
type Class string

// Color roles. The string values double as the keys of the [colors] table
// in theme files.
const (
	ClassBackground Class = "background"
	ClassForeground Class = "foreground"
	ClassLineNumber Class = "line_number"
	ClassComment    Class = "comment"
	ClassString     Class = "string"
	ClassNumber     Class = "number"
	ClassKeyword    Class = "keyword"
	ClassOperator   Class = "operator"
	ClassFunction   Class = "function"
	ClassVariable   Class = "variable"
	ClassConstant   Class = "constant"
	ClassType       Class = "type"
	ClassClass      Class = "class"
	ClassProperty   Class = "property"
	ClassAttribute  Class = "attribute"
	ClassTag        Class = "tag"
	ClassRegexp     Class = "regexp"

	// ClassText is plain text. It has no color entry of its own and is drawn
	// in the foreground color.
	ClassText Class = "text"
)

// Roles lists every color role a theme file may define, in file order.
var Roles = []Class{
	ClassBackground, ClassForeground, ClassLineNumber, ClassComment,
	ClassString, ClassNumber, ClassKeyword, ClassOperator, ClassFunction,
	ClassVariable, ClassConstant, ClassType, ClassClass, ClassProperty,
	ClassAttribute, ClassTag, ClassRegexp,
}

// Variant distinguishes dark and light themes.
type Variant string

const (
	VariantDark  Variant = "dark"
	VariantLight Variant = "light"
)

// Gradient is a two-stop vertical gradient, top to bottom.
type Gradient struct {
	From colorful.Color
	To   colorful.Color
}

// Shader names a procedural background and its defaults.
type Shader struct {
	Name      string
	Intensity float64 // 0 means the shader's own default
	Scale     float64 // 0 means 1

	// Colors overrides the uniform color roles (primary, secondary, accent,
	// background). Values are role names ("keyword") or hex colors.
	Colors map[string]string
}

// Theme is an immutable, named color scheme.
type Theme struct {
	Name     string
	Aliases  []string
	Variant  Variant
	Gradient *Gradient
	Shader   *Shader

	colors map[Class]colorful.Color
	digest string
}

// Color returns the color for a syntax class, or the foreground when the
// theme does not map it.
func (t Theme) Color(c Class) colorful.Color {
	if col, ok := t.colors[c]; ok {
		return col
	}
	return t.colors[ClassForeground]
}

// Digest identifies the definition the theme was parsed from. Editing a
// theme file changes its digest even when the name stays the same.
func (t Theme) Digest() string { return t.digest }

// Background returns the window background color.
func (t Theme) Background() colorful.Color { return t.colors[ClassBackground] }

// Foreground returns the default text color.
func (t Theme) Foreground() colorful.Color { return t.colors[ClassForeground] }

// LineNumber returns the line-number color.
func (t Theme) LineNumber() colorful.Color { return t.Color(ClassLineNumber) }

// RoleColor resolves a shader color override: a hex color, or the name of
// one of the theme's color roles.
func (t Theme) RoleColor(value string) (colorful.Color, error) {
	if strings.HasPrefix(value, "#") {
		return ParseColor(value)
	}
	c := Class(strings.ToLower(strings.TrimSpace(value)))
	if !isRole(c) {
		return colorful.Color{}, errors.New(errors.ErrCodeInvalidTheme, "unknown color role %q", value)
	}
	return t.Color(c), nil
}

// ParseColor parses #rgb, #rrggbb or #rrggbbaa. Alpha is discarded.
func ParseColor(s string) (colorful.Color, error) {
	if err := errors.ValidateHexColor(s); err != nil {
		return colorful.Color{}, err
	}
	if len(s) == 9 {
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "parse %q", s)
	}
	return c, nil
}

// =============================================================================
// Parsing
// =============================================================================

type themeFile struct {
	Name     string            `toml:"name"`
	Aliases  []string          `toml:"aliases"`
	Variant  string            `toml:"variant"`
	Colors   map[string]string `toml:"colors"`
	Gradient *struct {
		From string `toml:"from"`
		To   string `toml:"to"`
	} `toml:"gradient"`
	Shader *struct {
		Name      string            `toml:"name"`
		Intensity float64           `toml:"intensity"`
		Scale     float64           `toml:"scale"`
		Colors    map[string]string `toml:"colors"`
	} `toml:"shader"`
}

// shaderRoles are the keys accepted in [shader.colors].
var shaderRoles = map[string]bool{"primary": true, "secondary": true, "accent": true, "background": true}

// Parse decodes a TOML theme definition.
func Parse(data []byte) (Theme, error) {
	var f themeFile
	if _, err := toml.Decode(string(data), &f); err != nil {
		return Theme{}, errors.Wrap(errors.ErrCodeInvalidTheme, err, "decode theme")
	}

	name := strings.TrimSpace(f.Name)
	if name == "" {
		return Theme{}, errors.New(errors.ErrCodeInvalidTheme, "theme has no name")
	}
	if err := errors.ValidateThemeName(name); err != nil {
		return Theme{}, err
	}

	t := Theme{
		Name:    name,
		Aliases: f.Aliases,
		Variant: VariantDark,
		colors:  make(map[Class]colorful.Color, len(Roles)),
	}
	sum := sha256.Sum256(data)
	t.digest = hex.EncodeToString(sum[:8])
	switch Variant(strings.ToLower(f.Variant)) {
	case "", VariantDark:
	case VariantLight:
		t.Variant = VariantLight
	default:
		return Theme{}, errors.New(errors.ErrCodeInvalidTheme, "%s: unknown variant %q", name, f.Variant)
	}

	for key, hex := range f.Colors {
		c := Class(strings.ToLower(key))
		if !isRole(c) {
			return Theme{}, errors.New(errors.ErrCodeInvalidTheme, "%s: unknown color role %q", name, key)
		}
		col, err := ParseColor(hex)
		if err != nil {
			return Theme{}, fmt.Errorf("%s: colors.%s: %w", name, key, err)
		}
		t.colors[c] = col
	}
	for _, required := range []Class{ClassBackground, ClassForeground} {
		if _, ok := t.colors[required]; !ok {
			return Theme{}, errors.New(errors.ErrCodeInvalidTheme, "%s: missing required color %q", name, required)
		}
	}
	if _, ok := t.colors[ClassLineNumber]; !ok {
		t.colors[ClassLineNumber] = t.Color(ClassComment)
	}

	if g := f.Gradient; g != nil {
		from, err := ParseColor(g.From)
		if err != nil {
			return Theme{}, fmt.Errorf("%s: gradient.from: %w", name, err)
		}
		to, err := ParseColor(g.To)
		if err != nil {
			return Theme{}, fmt.Errorf("%s: gradient.to: %w", name, err)
		}
		t.Gradient = &Gradient{From: from, To: to}
	}

	if s := f.Shader; s != nil && s.Name != "" {
		for role, value := range s.Colors {
			if !shaderRoles[role] {
				return Theme{}, errors.New(errors.ErrCodeInvalidTheme, "%s: unknown shader role %q", name, role)
			}
			if _, err := t.RoleColor(value); err != nil {
				return Theme{}, fmt.Errorf("%s: shader.colors.%s: %w", name, role, err)
			}
		}
		t.Shader = &Shader{
			Name:      strings.ToLower(s.Name),
			Intensity: s.Intensity,
			Scale:     s.Scale,
			Colors:    s.Colors,
		}
	}

	return t, nil
}

func isRole(c Class) bool {
	for _, r := range Roles {
		if r == c {
			return true
		}
	}
	return false
}

// fallback is used when the catalog has no default theme loaded.
func fallback() Theme {
	t, err := Parse([]byte(`name = "Fallback"
[colors]
background = "#282a36"
foreground = "#f8f8f2"
`))
	if err != nil {
		panic(err)
	}
	return t
}
