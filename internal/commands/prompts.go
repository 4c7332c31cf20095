package commands

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/diogo/querychat/internal/chat"
	"github.com/diogo/querychat/internal/config"
)

var forceFlag bool

// NewPromptsCmd creates the prompts command and its init subcommand
func NewPromptsCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prompts",
		Short: "List the example prompts",
		Long: `List the example prompts shown on the chat welcome screen.

The catalog is read from ~/.querychat/prompts.yaml (or prompts_file in the
config). The built-in catalog is used when the file does not exist.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return deps.listPrompts()
		},
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the built-in prompts to the catalog file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return deps.initPrompts()
		},
	}
	initCmd.Flags().BoolVar(&forceFlag, "force", false, "Overwrite an existing catalog")

	cmd.AddCommand(initCmd)
	return cmd
}

func (d *Dependencies) promptsPath() (string, error) {
	cfg, err := d.LoadConfig()
	if err != nil {
		fmt.Fprintf(d.Stderr, "Warning: %v (using defaults)\n", err)
	}
	return config.GetPromptsPath(cfg)
}

func (d *Dependencies) listPrompts() error {
	path, err := d.promptsPath()
	if err != nil {
		return err
	}
	catalog, err := config.LoadPrompts(path)
	if err != nil {
		return err
	}

	titleStyle := lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(colorTextDim)

	for i, col := range catalog.Columns {
		if i > 0 {
			fmt.Fprintln(d.Stdout)
		}
		fmt.Fprintln(d.Stdout, titleStyle.Render(col.Title))
		for _, item := range col.Items {
			if col.Selectable {
				fmt.Fprintf(d.Stdout, "  • %s\n", chat.PromptText(item))
			} else {
				fmt.Fprintf(d.Stdout, "  %s\n", dimStyle.Render(item))
			}
		}
	}
	return nil
}

func (d *Dependencies) initPrompts() error {
	path, err := d.promptsPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil && !forceFlag {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := config.SavePrompts(path, config.DefaultPromptCatalog()); err != nil {
		return err
	}

	fmt.Fprintln(d.Stderr, lipgloss.NewStyle().Foreground(colorSuccess).Render("✓ Wrote "+path))
	return nil
}
