package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/codeshot/pkg/render"
)

// stdout receives human-oriented status lines. Tests swap it out.
var stdout io.Writer = os.Stdout

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	// StyleTitle is used for headings and the selected theme row.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	// StyleHighlight emphasizes values inside a sentence.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	// StyleLink renders URLs.
	StyleLink = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)
	// StyleDim renders secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)
	// StyleValue renders data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)
	// StyleWarning renders warning text.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleCached      = lipgloss.NewStyle().Foreground(colorGreen)
	styleFresh       = lipgloss.NewStyle().Foreground(colorGray)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
)

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	statsSep    = " · "
)

func printSuccess(format string, args ...any) {
	fmt.Fprintln(stdout, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

// printWarning prints a degraded-render notice such as a missing theme.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(stdout, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(msg))
}

func printInfo(format string, args ...any) {
	fmt.Fprintln(stdout, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line under a status message.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints the path of a written screenshot.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(stdout, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// printRenderStats prints one summary line for a render, for example
// "dracula · python · 12 lines (14 wrapped) · 2 emoji · fresh". A cached
// result has no statistics beyond its size.
func printRenderStats(stats render.Stats, cached bool) {
	fmt.Fprintln(stdout, "  "+renderStatsLine(stats, cached))
}

func renderStatsLine(stats render.Stats, cached bool) string {
	var parts []string
	for _, s := range []string{stats.Theme, stats.Language, stats.Shader} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	if stats.Lines > 0 {
		lines := fmt.Sprintf("%d lines", stats.Lines)
		if stats.VisualLines != stats.Lines {
			lines += fmt.Sprintf(" (%d wrapped)", stats.VisualLines)
		}
		parts = append(parts, lines)
	}
	if stats.Emoji > 0 {
		parts = append(parts, fmt.Sprintf("%d emoji", stats.Emoji))
	}

	status := styleFresh.Render("fresh")
	if cached {
		status = styleCached.Render("cached")
	}
	if len(parts) == 0 {
		return status
	}
	return StyleDim.Render(strings.Join(parts, statsSep)+statsSep) + status
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}
