// Package config handles configuration and the example prompt catalog for querychat.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// Render modes for bot answers
const (
	RenderEmphasis = "emphasis"
	RenderMarkdown = "markdown"
)

// DefaultServerURL is the chatbot backend used when nothing else is configured
const DefaultServerURL = "http://localhost:5000"

// MarkdownConfig holds the glamour settings used in markdown render mode
type MarkdownConfig struct {
	// Style is a glamour standard style name or a JSON style path
	Style            string `json:"style"`
	EnableEmoji      bool   `json:"enable_emoji"`
	PreserveNewLines bool   `json:"preserve_newlines"`
	TableWrap        bool   `json:"table_wrap"`
	InlineTableLinks bool   `json:"inline_table_links"`
}

// Config represents the user configuration
type Config struct {
	// ServerURL is the base URL of the chatbot backend; /query is appended.
	ServerURL string `json:"server_url" env:"QUERYCHAT_SERVER_URL"`
	// TimeoutSeconds bounds a whole /query round trip.
	TimeoutSeconds     int  `json:"timeout_seconds" env:"QUERYCHAT_TIMEOUT"`
	InsecureSkipVerify bool `json:"insecure_skip_verify,omitempty" env:"QUERYCHAT_INSECURE"`
	// Verbose enables debug logging and request timing on stderr.
	Verbose         bool   `json:"verbose" env:"QUERYCHAT_VERBOSE"`
	CopyToClipboard bool   `json:"copy_to_clipboard"`
	RenderMode      string `json:"render_mode" env:"QUERYCHAT_RENDER_MODE"`
	TUITheme        string `json:"tui_theme,omitempty"` // TUI color theme
	// LogFile receives structured logs. Empty disables logging.
	LogFile     string         `json:"log_file,omitempty" env:"QUERYCHAT_LOG_FILE"`
	PromptsFile string         `json:"prompts_file,omitempty"`
	Markdown    MarkdownConfig `json:"markdown,omitempty"`
}

// DefaultMarkdownConfig mirrors render.DefaultOptions
func DefaultMarkdownConfig() MarkdownConfig {
	return MarkdownConfig{Style: "dark", EnableEmoji: true, PreserveNewLines: true, TableWrap: true}
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		ServerURL:      DefaultServerURL,
		TimeoutSeconds: 120,
		RenderMode:     RenderEmphasis,
		TUITheme:       "tokyonight",
		Markdown:       DefaultMarkdownConfig(),
	}
}

// Timeout returns the configured round trip bound
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 120 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Validate reports the first invalid field
func (c Config) Validate() error {
	if c.ServerURL == "" {
		return fmt.Errorf("server_url is required")
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout_seconds must not be negative, got %d", c.TimeoutSeconds)
	}
	switch c.RenderMode {
	case "", RenderEmphasis, RenderMarkdown:
	default:
		return fmt.Errorf("render_mode must be %q or %q, got %q", RenderEmphasis, RenderMarkdown, c.RenderMode)
	}
	return nil
}

// AvailableRenderModes returns the supported render modes
func AvailableRenderModes() []string {
	return []string{RenderEmphasis, RenderMarkdown}
}

// GetConfigDir returns ~/.querychat
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".querychat"), nil
}

// EnsureConfigDir returns the config dir, creating it with owner-only permissions
func EnsureConfigDir() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return dir, nil
}

// configFile joins name onto the config dir
func configFile(name string) (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// GetConfigPath returns the path to config.json
func GetConfigPath() (string, error) {
	return configFile("config.json")
}

// GetLogPath returns cfg.LogFile, or querychat.log in the config dir
func GetLogPath(cfg Config) (string, error) {
	if cfg.LogFile != "" {
		return cfg.LogFile, nil
	}
	return configFile("querychat.log")
}

// LoadConfig layers config.json and then QUERYCHAT_* variables over the defaults.
// A missing file is not an error.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	path, err := GetConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to read environment: %w", err)
	}
	return cfg, nil
}

// SaveConfig replaces config.json with cfg
func SaveConfig(cfg Config) error {
	dir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "config-*.json")
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(dir, "config.json")); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
