package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/querychat/internal/config"
	"github.com/diogo/querychat/internal/render"
)

// configView is the current screen of the config menu
type configView int

const (
	viewMain configView = iota
	viewThemeSelect
	viewTUIThemeSelect
)

// Menu item indices for the main view
const (
	menuRenderMode = iota
	menuVerbose
	menuCopyToClipboard
	menuTheme
	menuTUITheme
	menuExit
	menuItemCount
)

// feedbackClearMsg is sent to clear feedback messages
type feedbackClearMsg struct{}

// ConfigModel is the interactive settings menu
type ConfigModel struct {
	config      config.Config
	configPath  string
	promptsPath string
	promptsOK   bool
	logPath     string
	save        func(config.Config) error

	view           configView
	cursor         int
	themeCursor    int
	tuiThemeCursor int

	feedback        string
	feedbackTimeout time.Duration

	width  int
	height int
	ready  bool
}

// NewConfigModel creates a settings menu editing cfg
func NewConfigModel(cfg config.Config) ConfigModel {
	configPath, _ := config.GetConfigPath()
	promptsPath, _ := config.GetPromptsPath(cfg)
	logPath, _ := config.GetLogPath(cfg)

	promptsOK := false
	if _, err := os.Stat(promptsPath); err == nil {
		promptsOK = true
	}

	if cfg.TUITheme != "" && render.SetTUITheme(cfg.TUITheme) {
		UpdateTheme()
	}

	return ConfigModel{
		config:          cfg,
		configPath:      configPath,
		promptsPath:     promptsPath,
		promptsOK:       promptsOK,
		logPath:         logPath,
		save:            config.SaveConfig,
		themeCursor:     indexOf(render.ThemeNames(), markdownStyle(cfg)),
		tuiThemeCursor:  indexOf(render.TUIThemeNames(), tuiThemeName(cfg)),
		feedbackTimeout: 2 * time.Second,
	}
}

func indexOf(items []string, item string) int {
	for i, v := range items {
		if v == item {
			return i
		}
	}
	return 0
}

func markdownStyle(cfg config.Config) string {
	if cfg.Markdown.Style == "" {
		return render.StyleDark
	}
	return cfg.Markdown.Style
}

func tuiThemeName(cfg config.Config) string {
	if cfg.TUITheme == "" {
		return render.DefaultTUITheme
	}
	return cfg.TUITheme
}

func renderModeName(cfg config.Config) string {
	if cfg.RenderMode == "" {
		return config.RenderEmphasis
	}
	return cfg.RenderMode
}

// Init initializes the model
func (m ConfigModel) Init() tea.Cmd {
	return nil
}

func clearFeedback(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return feedbackClearMsg{}
	})
}

// listLen is the number of entries in the current view
func (m ConfigModel) listLen() int {
	switch m.view {
	case viewThemeSelect:
		return len(render.ThemeNames())
	case viewTUIThemeSelect:
		return len(render.TUIThemeNames())
	default:
		return menuItemCount
	}
}

// cursorPtr returns the cursor of the current view
func (m *ConfigModel) cursorPtr() *int {
	switch m.view {
	case viewThemeSelect:
		return &m.themeCursor
	case viewTUIThemeSelect:
		return &m.tuiThemeCursor
	default:
		return &m.cursor
	}
}

// Update handles messages and updates the model
func (m ConfigModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case feedbackClearMsg:
		m.feedback = ""

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			if m.view != viewMain {
				m.view = viewMain
				return m, nil
			}
			return m, tea.Quit

		case "up", "k":
			cur, n := m.cursorPtr(), m.listLen()
			*cur = (*cur - 1 + n) % n

		case "down", "j":
			cur, n := m.cursorPtr(), m.listLen()
			*cur = (*cur + 1) % n

		case "enter", " ":
			return m.handleSelect()
		}
	}

	return m, nil
}

// persist saves the config and reports msg, or the save error
func (m ConfigModel) persist(msg string) (tea.Model, tea.Cmd) {
	if err := m.save(m.config); err != nil {
		m.feedback = fmt.Sprintf("Error: %v", err)
	} else {
		m.feedback = msg
	}
	return m, clearFeedback(m.feedbackTimeout)
}

func onOff(v bool) string {
	if v {
		return "enabled"
	}
	return "disabled"
}

func (m ConfigModel) handleSelect() (tea.Model, tea.Cmd) {
	switch m.view {
	case viewThemeSelect:
		m.config.Markdown.Style = render.ThemeNames()[m.themeCursor]
		m.view = viewMain
		return m.persist("Markdown theme set to " + m.config.Markdown.Style)

	case viewTUIThemeSelect:
		selected := render.TUIThemeNames()[m.tuiThemeCursor]
		m.config.TUITheme = selected
		render.SetTUITheme(selected)
		UpdateTheme()
		m.view = viewMain
		return m.persist("TUI theme set to " + selected)
	}

	switch m.cursor {
	case menuRenderMode:
		if renderModeName(m.config) == config.RenderEmphasis {
			m.config.RenderMode = config.RenderMarkdown
		} else {
			m.config.RenderMode = config.RenderEmphasis
		}
		return m.persist("Answers rendered as " + m.config.RenderMode)

	case menuVerbose:
		m.config.Verbose = !m.config.Verbose
		return m.persist("Verbose logging " + onOff(m.config.Verbose))

	case menuCopyToClipboard:
		m.config.CopyToClipboard = !m.config.CopyToClipboard
		return m.persist("Copy to clipboard " + onOff(m.config.CopyToClipboard))

	case menuTheme:
		m.view = viewThemeSelect

	case menuTUITheme:
		m.view = viewTUIThemeSelect

	case menuExit:
		return m, tea.Quit
	}

	return m, nil
}

// View renders the TUI
func (m ConfigModel) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	contentWidth := m.width - 4
	if contentWidth < 40 {
		contentWidth = 40
	}

	var sections []string

	header := configHeaderStyle.Width(contentWidth).Render(configTitleStyle.Render("✦ Configuration"))
	sections = append(sections, header)

	promptsStatus := configStatusErrorStyle.Render("✗ using built-in examples")
	if m.promptsOK {
		promptsStatus = configStatusOkStyle.Render("✓ exists")
	}

	pathsContent := lipgloss.JoinVertical(lipgloss.Left,
		configSectionTitleStyle.Render("Server"),
		fmt.Sprintf("   URL:     %s", configValueStyle.Render(m.config.ServerURL)),
		fmt.Sprintf("   Timeout: %s", configValueStyle.Render(m.config.Timeout().String())),
		configSectionTitleStyle.Render("Paths"),
		fmt.Sprintf("   Config:  %s", configPathStyle.Render(m.configPath)),
		fmt.Sprintf("   Prompts: %s  %s", configPathStyle.Render(m.promptsPath), promptsStatus),
		fmt.Sprintf("   Log:     %s", configPathStyle.Render(m.logPath)),
	)
	sections = append(sections, configPanelStyle.Width(contentWidth).Render(pathsContent))

	var settings string
	switch m.view {
	case viewThemeSelect:
		settings = m.renderThemeSelect()
	case viewTUIThemeSelect:
		settings = m.renderTUIThemeSelect()
	default:
		settings = m.renderMainMenu()
	}
	sections = append(sections, configPanelStyle.Width(contentWidth).Render(settings))

	if m.feedback != "" {
		sections = append(sections, configFeedbackStyle.Render("✓ "+m.feedback))
	}

	sections = append(sections, m.renderStatusBar(contentWidth))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// menuLine renders one selectable row
func menuLine(selected bool, label, value string) string {
	cursor := "  "
	style := configMenuItemStyle
	if selected {
		cursor = configCursorStyle.Render("▸ ")
		style = configMenuSelectedStyle
	}
	if value == "" {
		return cursor + style.Render(label)
	}
	pad := 20 - len(label)
	if pad < 1 {
		pad = 1
	}
	return cursor + style.Render(label) + strings.Repeat(" ", pad) + value
}

func (m ConfigModel) renderMainMenu() string {
	rows := []struct {
		label string
		value string
	}{
		{"Render Mode", configValueStyle.Render(renderModeName(m.config))},
		{"Verbose Logging", m.renderBoolValue(m.config.Verbose)},
		{"Copy to Clipboard", m.renderBoolValue(m.config.CopyToClipboard)},
		{"Markdown Theme", configValueStyle.Render(markdownStyle(m.config))},
		{"TUI Theme", configValueStyle.Render(tuiThemeName(m.config))},
	}

	lines := []string{configSectionTitleStyle.Render("⚙ Settings"), ""}
	for i, row := range rows {
		lines = append(lines, menuLine(m.cursor == i, row.label, row.value))
	}
	lines = append(lines, "", menuLine(m.cursor == menuExit, "Exit", ""))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderChoices renders a sub-menu of named, described entries
func renderChoices(title string, cursor int, current string, names, descriptions []string) string {
	lines := []string{configSectionTitleStyle.Render(title), ""}
	for i, name := range names {
		text := name
		if descriptions[i] != "" {
			text = fmt.Sprintf("%s - %s", name, descriptions[i])
		}
		line := menuLine(cursor == i, text, "")
		if name == current {
			line += configStatusOkStyle.Render(" (current)")
		}
		lines = append(lines, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m ConfigModel) renderThemeSelect() string {
	themes := render.AvailableThemes()
	names := make([]string, len(themes))
	descs := make([]string, len(themes))
	for i, t := range themes {
		names[i], descs[i] = t.Name, t.Description
	}
	return renderChoices("Select Markdown Theme", m.themeCursor, markdownStyle(m.config), names, descs)
}

func (m ConfigModel) renderTUIThemeSelect() string {
	themes := render.AvailableTUIThemes()
	names := make([]string, len(themes))
	descs := make([]string, len(themes))
	for i, t := range themes {
		names[i], descs[i] = t.Name, t.Description
	}
	return renderChoices("Select TUI Theme", m.tuiThemeCursor, tuiThemeName(m.config), names, descs)
}

func (m ConfigModel) renderBoolValue(value bool) string {
	if value {
		return configEnabledStyle.Render("enabled")
	}
	return configDisabledStyle.Render("disabled")
}

func (m ConfigModel) renderStatusBar(width int) string {
	back := "Exit"
	if m.view != viewMain {
		back = "Back"
	}
	return renderShortcuts(configStatusBarStyle, width, []shortcut{
		{"↑↓", "Navigate"},
		{"Enter", "Select"},
		{"Esc", back},
	})
}

// RunConfig starts the config TUI
func RunConfig(cfg config.Config) error {
	p := tea.NewProgram(
		NewConfigModel(cfg),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
