package commands

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diogo/querychat/internal/config"
	"github.com/diogo/querychat/internal/render"
	"github.com/diogo/querychat/internal/tui"
)

func TestChatCommand_RunsTUI(t *testing.T) {
	env := newTestEnv(t)
	env.cfg.RenderMode = config.RenderMarkdown
	t.Cleanup(func() {
		render.SetTUITheme(render.DefaultTUITheme)
		tui.UpdateTheme()
	})
	env.cfg.TUITheme = "nord"

	require.NoError(t, env.run("chat", "--server", "http://chatbot:9000"))

	require.NotNil(t, env.tui.chatOpts)
	opts := env.tui.chatOpts
	assert.Equal(t, env.client.Endpoint(), opts.Endpoint)
	assert.True(t, opts.Markdown)
	assert.Equal(t, config.DefaultPromptCatalog(), opts.Catalog)
	assert.NotNil(t, opts.Logger)
	assert.Same(t, env.client, env.tui.querier)
	assert.Equal(t, "http://chatbot:9000", env.clientCfg.ServerURL)
	assert.Equal(t, "nord", render.GetTUITheme().Name)
	assert.True(t, env.client.CloseCalled())
}

func TestChatCommand_UsesPromptsFile(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	catalog := config.PromptCatalog{Columns: []config.PromptColumn{
		{Title: "Examples", Selectable: true, Items: []string{"Who is Prahlada? →"}},
	}}
	require.NoError(t, config.SavePrompts(path, catalog))
	env.cfg.PromptsFile = path

	require.NoError(t, env.run("chat"))
	assert.Equal(t, catalog, env.tui.chatOpts.Catalog)
}

func TestChatCommand_RejectsArgs(t *testing.T) {
	env := newTestEnv(t)

	assert.Error(t, env.run("chat", "extra"))
	assert.Nil(t, env.tui.chatOpts)
}

func TestChatCommand_TUIError(t *testing.T) {
	env := newTestEnv(t)
	env.tui.err = errors.New("no tty")

	assert.EqualError(t, env.run("chat"), "no tty")
	assert.True(t, env.client.CloseCalled(), "the client is closed even when the TUI fails")
}

func TestConfigCommand(t *testing.T) {
	env := newTestEnv(t)
	env.cfg.Verbose = true

	require.NoError(t, env.run("config"))
	require.NotNil(t, env.tui.configSeen)
	assert.True(t, env.tui.configSeen.Verbose)
	assert.Nil(t, env.clientCfg, "config does not talk to the server")
}

func TestConfigCommand_LoadWarning(t *testing.T) {
	env := newTestEnv(t)
	env.deps.LoadConfig = func() (config.Config, error) {
		return config.DefaultConfig(), errors.New("failed to parse config file")
	}

	require.NoError(t, env.run("config"))
	assert.Contains(t, env.stderr.String(), "Warning: failed to parse config file (using defaults)")
}

func TestPromptsCommand_List(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.run("prompts"))

	out := env.stdout.String()
	assert.Contains(t, out, "Examples")
	assert.Contains(t, out, "  • Who is Narada Muni?\n")
	assert.NotContains(t, out, "Narada Muni? →")
	assert.Contains(t, out, "Capabilities")
	assert.Contains(t, out, "Limitations")
}

func TestPromptsCommand_Init(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	env.cfg.PromptsFile = path

	require.NoError(t, env.run("prompts", "init"))
	assert.Contains(t, env.stderr.String(), "Wrote "+path)

	loaded, err := config.LoadPrompts(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultPromptCatalog(), loaded)

	err = env.run("prompts", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	require.NoError(t, os.WriteFile(path, []byte("columns: []\n"), 0o600))
	require.NoError(t, env.run("prompts", "init", "--force"))
	loaded, err = config.LoadPrompts(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultPromptCatalog(), loaded)
}

func TestPromptsCommand_InvalidCatalog(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	require.NoError(t, os.WriteFile(path, []byte("columns:\n  - title: \"\"\n"), 0o600))
	env.cfg.PromptsFile = path

	err := env.run("prompts")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has no title")
}
