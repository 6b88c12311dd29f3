package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// themesCommand creates the themes command.
func (c *CLI) themesCommand() *cobra.Command {
	var (
		themesDir string
		pick      bool
	)

	cmd := &cobra.Command{
		Use:   "themes",
		Short: "List available themes",
		Long: `List the built-in themes and those found in the themes directory.

With --pick, choose a theme interactively; its name is printed to stdout so
it can be used in scripts:

  codeshot render -t "$(codeshot themes --pick)" main.go`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := c.newCatalog(themesDir)
			if err != nil {
				return err
			}
			themes := catalog.Themes()

			if !pick {
				fmt.Fprintln(cmd.OutOrStdout(), themeTable(themes, 0, -1).Render())
				printNextStep("Render with a theme", "codeshot render --theme <name> <file>")
				return nil
			}

			model := NewThemeListModel(themes, c.Config.Render.Theme)
			final, err := tea.NewProgram(model, tea.WithOutput(cmd.ErrOrStderr())).Run()
			if err != nil {
				return fmt.Errorf("theme picker: %w", err)
			}
			if sel := final.(ThemeListModel).Selected; sel != nil {
				fmt.Fprintln(cmd.OutOrStdout(), sel.Name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&themesDir, "themes-dir", "", "directory of extra theme TOML files")
	cmd.Flags().BoolVar(&pick, "pick", false, "pick a theme interactively and print its name")

	return cmd
}
