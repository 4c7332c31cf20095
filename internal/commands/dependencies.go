package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/diogo/querychat/internal/api"
	"github.com/diogo/querychat/internal/chat"
	"github.com/diogo/querychat/internal/config"
	"github.com/diogo/querychat/internal/logging"
	"github.com/diogo/querychat/internal/telemetry"
	"github.com/diogo/querychat/internal/tui"
)

// TUIInterface defines the methods required from the TUI package.
type TUIInterface interface {
	RunChat(ctx context.Context, querier chat.Querier, opts tui.Options) error
	RunConfig(cfg config.Config) error
}

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// LoadConfig reads the user configuration.
	LoadConfig func() (config.Config, error)

	// NewClient builds the backend client for cfg.
	NewClient func(cfg config.Config, logger *zap.Logger) (api.QueryClientInterface, error)

	// TUI is the terminal user interface.
	TUI TUIInterface

	// CopyToClipboard writes text to the system clipboard.
	CopyToClipboard func(text string) error

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultTUI is the production implementation of TUIInterface.
type DefaultTUI struct{}

func (d *DefaultTUI) RunChat(ctx context.Context, querier chat.Querier, opts tui.Options) error {
	return tui.RunChat(ctx, querier, opts)
}

func (d *DefaultTUI) RunConfig(cfg config.Config) error {
	return tui.RunConfig(cfg)
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		LoadConfig:      config.LoadConfig,
		NewClient:       newQueryClient,
		TUI:             &DefaultTUI{},
		CopyToClipboard: clipboard.WriteAll,
		Stdin:           os.Stdin,
		Stdout:          os.Stdout,
		Stderr:          os.Stderr,
	}
}

// newQueryClient builds the tls-client backed client from cfg
func newQueryClient(cfg config.Config, logger *zap.Logger) (api.QueryClientInterface, error) {
	client, err := api.NewClient(cfg.ServerURL,
		api.WithTimeout(cfg.Timeout()),
		api.WithInsecureSkipVerify(cfg.InsecureSkipVerify),
		api.WithUserAgent("querychat/"+Version),
		api.WithLogger(logger),
		api.WithTracer(otel.Tracer("github.com/diogo/querychat")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return client, nil
}

// session bundles what a command needs to talk to the backend
type session struct {
	cfg      config.Config
	logger   *zap.Logger
	client   api.QueryClientInterface
	shutdown telemetry.ShutdownFunc
}

// openSession loads the config, applies the global flags and builds the
// logger, the tracer provider and the client.
func (d *Dependencies) openSession(ctx context.Context) (*session, error) {
	cfg, err := d.LoadConfig()
	if err != nil {
		fmt.Fprintf(d.Stderr, "Warning: %v (using defaults)\n", err)
	}
	cfg = applyGlobalFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logPath := cfg.LogFile
	if logPath == "" && cfg.Verbose {
		logPath, _ = config.GetLogPath(cfg)
	}
	logger, err := logging.New(logging.Options{Path: logPath, Verbose: cfg.Verbose})
	if err != nil {
		fmt.Fprintf(d.Stderr, "Warning: %v (logging disabled)\n", err)
		logger = zap.NewNop()
	}

	shutdown, err := telemetry.Setup(ctx, Version)
	if err != nil {
		logger.Warn("tracing disabled", zap.Error(err))
	}

	client, err := d.NewClient(cfg, logger)
	if err != nil {
		_ = shutdown(ctx)
		logging.Sync(logger)
		return nil, err
	}

	logger.Debug("session opened",
		zap.String("endpoint", client.Endpoint()),
		zap.Duration("timeout", cfg.Timeout()),
		zap.Bool("tracing", telemetry.Enabled()),
	)

	return &session{cfg: cfg, logger: logger, client: client, shutdown: shutdown}, nil
}

// close releases the client and flushes spans and logs
func (s *session) close(ctx context.Context) {
	s.client.Close()
	if err := s.shutdown(ctx); err != nil {
		s.logger.Warn("failed to flush traces", zap.Error(err))
	}
	logging.Sync(s.logger)
}

// applyGlobalFlags overrides cfg with the persistent flags that were set
func applyGlobalFlags(cfg config.Config) config.Config {
	if serverFlag != "" {
		cfg.ServerURL = serverFlag
	}
	if timeoutFlag > 0 {
		cfg.TimeoutSeconds = timeoutFlag
	}
	if verboseFlag {
		cfg.Verbose = true
	}
	return cfg
}
