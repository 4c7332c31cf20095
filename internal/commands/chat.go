package commands

import (
	"github.com/spf13/cobra"

	"github.com/diogo/querychat/internal/config"
	"github.com/diogo/querychat/internal/render"
	"github.com/diogo/querychat/internal/tui"
)

// NewChatCmd creates the interactive chat command
func NewChatCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Long: `Start an interactive chat session with the chatbot server.

Each question is answered on its own; the server keeps no conversation.
Press Tab on the welcome screen to pick an example question.
Press Esc or Ctrl+C to end the session.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return deps.runChat(cmd)
		},
	}
}

func (d *Dependencies) runChat(cmd *cobra.Command) error {
	ctx := cmd.Context()

	s, err := d.openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close(ctx)

	promptsPath, err := config.GetPromptsPath(s.cfg)
	if err != nil {
		return err
	}
	catalog, err := config.LoadPrompts(promptsPath)
	if err != nil {
		return err
	}

	if render.SetTUITheme(s.cfg.TUITheme) {
		tui.UpdateTheme()
	}

	return d.TUI.RunChat(ctx, s.client, tui.Options{
		Endpoint:        s.client.Endpoint(),
		Catalog:         catalog,
		Markdown:        s.cfg.RenderMode == config.RenderMarkdown,
		MarkdownOptions: render.OptionsFromConfig(s.cfg.Markdown),
		Logger:          s.logger,
	})
}
