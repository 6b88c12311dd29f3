package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/codeshot/pkg/theme"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
	headerStyle  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// swatchClasses are the syntax classes previewed next to each theme.
var swatchClasses = []theme.Class{
	theme.ClassKeyword, theme.ClassString, theme.ClassFunction,
	theme.ClassNumber, theme.ClassType, theme.ClassComment,
}

// swatch renders a row of colored dots for t.
func swatch(t theme.Theme) string {
	var b strings.Builder
	for _, class := range swatchClasses {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Color(class).Hex()))
		b.WriteString(style.Render("●"))
	}
	return b.String()
}

// backgroundLabel describes the theme's default background.
func backgroundLabel(t theme.Theme) string {
	switch {
	case t.Shader != nil:
		return t.Shader.Name
	case t.Gradient != nil:
		return "gradient"
	default:
		return "flat"
	}
}

// themeRow is one table row: name, variant, background, aliases, swatch.
func themeRow(t theme.Theme) []string {
	aliases := "—"
	if len(t.Aliases) > 0 {
		aliases = strings.Join(t.Aliases, ", ")
	}
	return []string{t.Name, string(t.Variant), backgroundLabel(t), aliases, swatch(t)}
}

// themeTable renders themes as a bordered table. Row cursor, if >= 0, is
// highlighted.
func themeTable(themes []theme.Theme, offset, cursor int) *table.Table {
	rows := make([][]string, 0, len(themes))
	for _, t := range themes {
		rows = append(rows, themeRow(t))
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Theme", "Variant", "Background", "Aliases", "Colors").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if offset+row == cursor {
				if col == 0 {
					return base.Foreground(colorCyan).Bold(true)
				}
				return base.Bold(true)
			}
			if col == 1 || col == 3 {
				return base.Foreground(colorGray)
			}
			return base
		})
}

// =============================================================================
// ThemeListModel - Interactive theme selection
// =============================================================================

// ThemeListModel is the bubbletea model for interactive theme selection.
type ThemeListModel struct {
	Themes   []theme.Theme
	Cursor   int
	Selected *theme.Theme
	Height   int
	Offset   int
}

// NewThemeListModel creates a new theme list model with the cursor on
// the theme named current, if present.
func NewThemeListModel(themes []theme.Theme, current string) ThemeListModel {
	m := ThemeListModel{Themes: themes, Height: 15}
	key := theme.Normalize(current)
	for i, t := range themes {
		if theme.Normalize(t.Name) == key {
			m.Cursor = i
		}
	}
	m.scroll()
	return m
}

func (m ThemeListModel) Init() tea.Cmd {
	return nil
}

func (m ThemeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Themes)-1 {
				m.Cursor++
			}
		case "home", "g":
			m.Cursor = 0
		case "end", "G":
			m.Cursor = max(len(m.Themes)-1, 0)
		case "enter":
			if len(m.Themes) == 0 {
				return m, tea.Quit
			}
			t := m.Themes[m.Cursor]
			m.Selected = &t
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	m.scroll()
	return m, nil
}

// scroll keeps the cursor inside the visible window.
func (m *ThemeListModel) scroll() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m ThemeListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Theme"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Themes))
	b.WriteString(themeTable(m.Themes[m.Offset:end], m.Offset, m.Cursor).Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Themes))))

	return b.String()
}
