// Package commands provides CLI commands for querychat.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	serverFlag  string
	timeoutFlag int
	verboseFlag bool

	outputFlag string
	fileFlag   string
	rawFlag    bool

	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// NewRootCmd creates the querychat command tree
func NewRootCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "querychat [question]",
		Short: "Terminal chat client for a question answering backend",
		Long: `querychat is a terminal client for a retrieval chatbot that answers
questions through a POST /query endpoint.

Examples:
  querychat chat                                Start interactive chat
  querychat config                              Configure settings
  querychat "Who is Narada Muni?"               Ask a single question
  querychat -f question.txt                     Read the question from a file
  cat question.txt | querychat                  Read the question from stdin
  querychat "Who is Dhruva?" -o answer.md       Save the answer to a file
  querychat -s http://chatbot:5000 "..."        Use another server`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Fprintf(deps.Stdout, "querychat %s (built %s)\n", Version, BuildTime)
				return nil
			}

			question, ok, err := readQuestion(deps, args)
			if err != nil {
				return err
			}
			if !ok {
				return cmd.Help()
			}

			raw := rawFlag || !isStdoutTTY()
			return deps.runQuery(cmd.Context(), question, raw)
		},
	}

	cmd.PersistentFlags().StringVarP(&serverFlag, "server", "s", "", "Chatbot server URL (e.g., http://localhost:5000)")
	cmd.PersistentFlags().IntVar(&timeoutFlag, "timeout", 0, "Request timeout in seconds")
	cmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "Log debug output and request timing")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Save answer to file")
	cmd.Flags().StringVarP(&fileFlag, "file", "f", "", "Read question from file")
	cmd.Flags().BoolVar(&rawFlag, "raw", false, "Print only the answer text")
	cmd.Flags().BoolP("version", "v", false, "Show version and exit")

	cmd.AddCommand(NewChatCmd(deps))
	cmd.AddCommand(NewConfigCmd(deps))
	cmd.AddCommand(NewPromptsCmd(deps))

	return cmd
}

// readQuestion takes the question from --file, piped stdin or the argument,
// in that order. ok is false when none was given.
func readQuestion(deps *Dependencies, args []string) (string, bool, error) {
	if fileFlag != "" {
		data, err := os.ReadFile(fileFlag)
		if err != nil {
			return "", false, fmt.Errorf("failed to read file: %w", err)
		}
		return string(data), true, nil
	}

	if hasPipedInput(deps.Stdin) {
		data, err := io.ReadAll(deps.Stdin)
		if err != nil {
			return "", false, fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), true, nil
	}

	if len(args) > 0 {
		return args[0], true, nil
	}

	return "", false, nil
}

// hasPipedInput reports whether r is a pipe or file rather than a terminal
func hasPipedInput(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return r != nil
	}
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// rootCmd is the command run by Execute
var rootCmd = NewRootCmd(NewDependencies())

// Execute runs the root command
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		var qe *queryError
		if !errors.As(err, &qe) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
