package commands

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diogo/querychat/internal/api"
	apierrors "github.com/diogo/querychat/internal/errors"
)

func TestRootCommand_Properties(t *testing.T) {
	cmd := NewRootCmd(NewDependencies())

	assert.Equal(t, "querychat [question]", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.Error(t, cmd.Args(cmd, []string{"one", "two"}))

	names := make([]string, 0)
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"chat", "config", "prompts"}, names)

	for _, flag := range []string{"server", "timeout", "verbose"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "missing --%s", flag)
	}
	for _, flag := range []string{"output", "file", "raw", "version"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "missing --%s", flag)
	}
}

func TestRootCommand_Version(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.run("--version"))
	assert.Equal(t, "querychat "+Version+" (built "+BuildTime+")\n", env.stdout.String())
	assert.Empty(t, env.client.Questions())
}

func TestRootCommand_NoInputShowsHelp(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.run())
	assert.Contains(t, env.stdout.String(), "querychat [question]")
	assert.Empty(t, env.client.Questions())
}

func TestRootCommand_QuestionSources(t *testing.T) {
	questionFile := filepath.Join(t.TempDir(), "question.txt")
	require.NoError(t, os.WriteFile(questionFile, []byte("Who is Dhruva?\n"), 0o600))

	tests := []struct {
		name  string
		args  []string
		stdin string
		want  string
	}{
		{name: "argument", args: []string{"Who is Narada Muni?"}, want: "Who is Narada Muni?"},
		{name: "file", args: []string{"-f", questionFile}, want: "Who is Dhruva?"},
		{name: "stdin", stdin: "  What is dharma?  ", want: "What is dharma?"},
		{name: "file wins over argument", args: []string{"-f", questionFile, "ignored"}, want: "Who is Dhruva?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.client.Outcome = api.Answered(200, "answer")
			if tt.stdin != "" {
				env.deps.Stdin = strings.NewReader(tt.stdin)
			}

			require.NoError(t, env.run(tt.args...))
			assert.Equal(t, []string{tt.want}, env.client.Questions())
			assert.Equal(t, "answer", env.stdout.String())
		})
	}
}

func TestRootCommand_MissingFile(t *testing.T) {
	env := newTestEnv(t)

	err := env.run("-f", filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestRootCommand_EmptyQuestion(t *testing.T) {
	env := newTestEnv(t)
	env.deps.Stdin = strings.NewReader("   \n")

	err := env.run()
	assert.ErrorIs(t, err, apierrors.ErrEmptyQuestion)
	assert.Empty(t, env.client.Questions())
}

func TestRootCommand_GlobalFlagsOverrideConfig(t *testing.T) {
	env := newTestEnv(t)
	env.client.Outcome = api.Answered(200, "ok")

	require.NoError(t, env.run("--server", "http://chatbot:8080", "--timeout", "7", "hello"))

	require.NotNil(t, env.clientCfg)
	assert.Equal(t, "http://chatbot:8080", env.clientCfg.ServerURL)
	assert.Equal(t, 7, env.clientCfg.TimeoutSeconds)
}

func TestRootCommand_InvalidConfig(t *testing.T) {
	env := newTestEnv(t)
	env.cfg.RenderMode = "html"

	err := env.run("hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
	assert.Nil(t, env.clientCfg)
}

func TestRootCommand_ClientError(t *testing.T) {
	env := newTestEnv(t)
	env.deps.NewClient = newQueryClient
	env.cfg.ServerURL = "ftp://example.com"

	err := env.run("hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create client")
}

func TestRootCommand_FailedOutcomeIsError(t *testing.T) {
	env := newTestEnv(t)
	env.client.Outcome = api.ServerFailure(500, "server down", apierrors.NewAPIError(500, "/query", "server down"))

	err := env.run("hello")

	var qe *queryError
	require.True(t, errors.As(err, &qe))
	assert.Equal(t, "Error: server down", qe.Error())
	assert.Equal(t, 500, apierrors.GetHTTPStatus(err))
	assert.Equal(t, "Error: server down\n", env.stderr.String())
	assert.Empty(t, env.stdout.String())
}

func TestHasPipedInput(t *testing.T) {
	assert.False(t, hasPipedInput(nil))
	assert.True(t, hasPipedInput(strings.NewReader("x")))

	f, err := os.CreateTemp(t.TempDir(), "stdin")
	require.NoError(t, err)
	defer f.Close()
	assert.True(t, hasPipedInput(f), "a regular file counts as piped input")
}
