package commands

import (
	"bytes"
	"context"
	"testing"

	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/diogo/querychat/internal/api"
	"github.com/diogo/querychat/internal/chat"
	"github.com/diogo/querychat/internal/config"
	"github.com/diogo/querychat/internal/tui"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeTUI records what the commands asked the TUI to run
type fakeTUI struct {
	chatOpts   *tui.Options
	querier    chat.Querier
	configSeen *config.Config
	err        error
}

func (f *fakeTUI) RunChat(ctx context.Context, querier chat.Querier, opts tui.Options) error {
	f.querier = querier
	f.chatOpts = &opts
	return f.err
}

func (f *fakeTUI) RunConfig(cfg config.Config) error {
	f.configSeen = &cfg
	return f.err
}

type testEnv struct {
	deps      *Dependencies
	client    *api.MockQueryClient
	tui       *fakeTUI
	stdout    *bytes.Buffer
	stderr    *bytes.Buffer
	cfg       *config.Config
	clientCfg *config.Config
	copied    []string
}

// newTestEnv wires Dependencies to in-memory fakes and resets the flag globals
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	resetFlags()
	t.Cleanup(resetFlags)

	cfg := config.DefaultConfig()
	env := &testEnv{
		client: &api.MockQueryClient{},
		tui:    &fakeTUI{},
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		cfg:    &cfg,
	}
	env.deps = &Dependencies{
		LoadConfig: func() (config.Config, error) { return *env.cfg, nil },
		NewClient: func(c config.Config, logger *zap.Logger) (api.QueryClientInterface, error) {
			env.clientCfg = &c
			return env.client, nil
		},
		TUI: env.tui,
		CopyToClipboard: func(text string) error {
			env.copied = append(env.copied, text)
			return nil
		},
		Stdout: env.stdout,
		Stderr: env.stderr,
	}
	return env
}

func resetFlags() {
	serverFlag = ""
	timeoutFlag = 0
	verboseFlag = false
	outputFlag = ""
	fileFlag = ""
	rawFlag = false
	forceFlag = false
}

// run executes the command tree with args
func (e *testEnv) run(args ...string) error {
	cmd := NewRootCmd(e.deps)
	cmd.SetArgs(args)
	cmd.SetOut(e.stdout)
	cmd.SetErr(e.stderr)
	return cmd.ExecuteContext(context.Background())
}
