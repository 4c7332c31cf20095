package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/diogo/querychat/internal/api"
	"github.com/diogo/querychat/internal/chat"
	"github.com/diogo/querychat/internal/config"
	apierrors "github.com/diogo/querychat/internal/errors"
	"github.com/diogo/querychat/internal/format"
	"github.com/diogo/querychat/internal/render"
)

// Styles matching the chat TUI
var (
	assistantLabelStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	assistantBubbleStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary).
				Foreground(colorText).
				Padding(0, 1).
				MarginBottom(1)
)

// queryError reports a question that settled without an answer. The bot
// text has already been written to stderr when it is returned.
type queryError struct {
	outcome api.Outcome
	text    string
}

func (e *queryError) Error() string {
	return e.text
}

func (e *queryError) Unwrap() error {
	return e.outcome.Err
}

// runQuery asks a single question through the send controller and prints the
// answer. If rawOutput is true, only the answer text is printed without decoration.
func (d *Dependencies) runQuery(ctx context.Context, question string, rawOutput bool) error {
	if strings.TrimSpace(question) == "" {
		return apierrors.ErrEmptyQuestion
	}

	s, err := d.openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close(ctx)

	surface := newConsoleSurface(d.Stderr, !rawOutput)
	input := &consoleInput{value: question}
	controller := chat.NewController(surface, input, s.client, chat.WithLogger(s.logger))

	out, sent := controller.Send(ctx)
	if !sent {
		return apierrors.ErrEmptyQuestion
	}
	reply, _ := controller.Transcript().Last(chat.SenderBot)

	if s.cfg.Verbose && !rawOutput {
		fmt.Fprintf(d.Stderr, "[verbose] %s in %s (%s)\n",
			out.Kind, out.Duration.Round(time.Millisecond), s.client.Endpoint())
	}

	if !out.OK() {
		if rawOutput {
			fmt.Fprintln(d.Stderr, reply.Text)
		} else {
			fmt.Fprintln(d.Stderr, lipgloss.NewStyle().Foreground(colorError).Render("✗ "+reply.Text))
			if s.cfg.Verbose {
				fmt.Fprintln(d.Stderr, formatErrorMessage(out.Err, "Details"))
			}
		}
		return &queryError{outcome: out, text: reply.Text}
	}

	return d.printAnswer(s.cfg, reply, rawOutput)
}

// printAnswer writes the answer to stdout or the --output file
func (d *Dependencies) printAnswer(cfg config.Config, reply chat.Message, rawOutput bool) error {
	text := reply.Text

	if rawOutput {
		if outputFlag != "" {
			if err := os.WriteFile(outputFlag, []byte(text), 0o644); err != nil {
				return fmt.Errorf("failed to write output file: %w", err)
			}
			return nil
		}
		fmt.Fprint(d.Stdout, text)
		return nil
	}

	if cfg.CopyToClipboard {
		clip := text
		if cfg.RenderMode != config.RenderMarkdown {
			clip = format.PlainText(reply.Spans)
		}
		if err := d.CopyToClipboard(clip); err != nil {
			warnMsg := lipgloss.NewStyle().Foreground(colorError).Render(
				fmt.Sprintf("⚠ Failed to copy to clipboard: %v", err),
			)
			fmt.Fprintln(d.Stderr, warnMsg)
		} else {
			fmt.Fprintln(d.Stderr, lipgloss.NewStyle().Foreground(colorSuccess).Render("✓ Copied to clipboard"))
		}
	}

	if outputFlag != "" {
		if err := os.WriteFile(outputFlag, []byte(text), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		successMsg := lipgloss.NewStyle().Foreground(colorSuccess).Render(
			fmt.Sprintf("✓ Answer saved to %s", outputFlag),
		)
		fmt.Fprintln(d.Stderr, successMsg)
		return nil
	}

	bubbleWidth := getTerminalWidth() - 4
	if bubbleWidth < 40 {
		bubbleWidth = 40
	}
	if bubbleWidth > 120 {
		bubbleWidth = 120
	}
	contentWidth := bubbleWidth - 4

	var rendered string
	if cfg.RenderMode == config.RenderMarkdown {
		opts := render.OptionsFromConfig(cfg.Markdown).WithWidth(contentWidth)
		rendered = render.Answer(text, true, opts, render.DefaultSpanStyles())
	} else {
		rendered = render.Spans(reply.Spans, render.DefaultSpanStyles())
	}

	fmt.Fprintln(d.Stdout, assistantLabelStyle.Render("✦ QueryChat"))
	fmt.Fprintln(d.Stdout, assistantBubbleStyle.Width(bubbleWidth).Render(rendered))

	return nil
}

// getTerminalWidth returns the terminal width or a default value
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // default width
	}
	return width
}

// isStdoutTTY returns true if stdout is connected to a terminal
func isStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// formatErrorMessage formats an error with additional context from structured errors
func formatErrorMessage(err error, context string) string {
	if err == nil {
		return ""
	}

	errorStyle := lipgloss.NewStyle().Foreground(colorError)
	dimStyle := lipgloss.NewStyle().Foreground(colorTextDim)

	var sb strings.Builder
	sb.WriteString(errorStyle.Render(fmt.Sprintf("✗ %s: %v", context, err)))

	if status := apierrors.GetHTTPStatus(err); status > 0 {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  HTTP Status: %d", status)))
	}

	if endpoint := apierrors.GetEndpoint(err); endpoint != "" {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  Endpoint: %s", endpoint)))
	}

	if body := apierrors.GetResponseBody(err); body != "" {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n\n  %s", strings.ReplaceAll(body, "\n", "\n  "))))
	} else {
		switch {
		case apierrors.IsTimeoutError(err):
			sb.WriteString(dimStyle.Render("\n  Hint: The server took too long. Try again or raise --timeout"))
		case apierrors.IsNetworkError(err):
			sb.WriteString(dimStyle.Render("\n  Hint: Check that the chatbot server is running and --server points at it"))
		case errors.Is(err, apierrors.ErrAnswerTooLarge):
			sb.WriteString(dimStyle.Render("\n  Hint: The answer is larger than the 1 MiB the client accepts"))
		case apierrors.IsParseError(err):
			sb.WriteString(dimStyle.Render("\n  Hint: The server replied, but not with an answer. Check its logs"))
		}
	}

	return sb.String()
}
