// Package theme provides named color themes for code screenshots.
//
// A [Theme] maps syntax classes (keyword, string, comment, ...) to colors and
// optionally describes an outer background: a two-stop vertical gradient
// and/or a procedural shader with its color roles.
//
// Themes are collected in a [Catalog] from one or more [Source] values:
//
//	cat := theme.NewCatalog()
//	if err := cat.Load(theme.Builtin(), theme.Dir("~/.config/codeshot/themes")); err != nil {
//	    return err
//	}
//	t := cat.Resolve("Tokyo Night") // same as "tokyo-night" or "TOKYO NIGHT"
//
// Name matching ignores case, spaces, hyphens and underscores. [Catalog.Resolve]
// never fails: unknown names resolve to the default theme ("dracula").
//
// # File Format
//
// Themes are TOML documents:
//
//	name = "Tokyo Night"
//	aliases = ["tokyonight"]
//	variant = "dark"
//
//	[colors]
//	background = "#1a1b26"
//	foreground = "#c0caf5"
//	keyword = "#bb9af7"
//
//	[gradient]
//	from = "#1a1b26"
//	to = "#24283b"
//
//	[shader]
//	name = "halftone"
//	intensity = 2.0
//	scale = 1.0
//
//	[shader.colors]
//	primary = "keyword"   # a color role or a hex color
//
// Only background and foreground are required. Syntax roles that are absent
// fall back to the foreground; line_number falls back to comment.
package theme
