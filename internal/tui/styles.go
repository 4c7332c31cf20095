// Package tui provides the terminal user interface for querychat.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/querychat/internal/render"
)

// Palette of the active TUI theme
var (
	colorBorder    lipgloss.Color
	colorPrimary   lipgloss.Color
	colorSecondary lipgloss.Color
	colorAccent    lipgloss.Color
	colorWarning   lipgloss.Color
	colorError     lipgloss.Color
	colorText      lipgloss.Color
	colorTextDim   lipgloss.Color
	colorTextMute  lipgloss.Color
)

// Chat view
var (
	headerStyle, titleStyle, subtitleStyle, hintStyle lipgloss.Style
	messagesAreaStyle                                 lipgloss.Style

	userLabelStyle, userBubbleStyle lipgloss.Style
	botLabelStyle, botBubbleStyle   lipgloss.Style
	loadingStyle, dotOffStyle       lipgloss.Style

	inputPanelStyle, inputLabelStyle, inputDisabledStyle lipgloss.Style

	statusBarStyle, statusKeyStyle, statusDescStyle lipgloss.Style

	welcomeTitleStyle, welcomeIconStyle    lipgloss.Style
	columnStyle, columnTitleStyle          lipgloss.Style
	exampleItemStyle, exampleSelectedStyle lipgloss.Style
	infoItemStyle                          lipgloss.Style
)

// Config view
var (
	configHeaderStyle, configTitleStyle, configSectionTitleStyle lipgloss.Style
	configPanelStyle, configStatusBarStyle                       lipgloss.Style
	configMenuItemStyle, configMenuSelectedStyle                 lipgloss.Style
	configCursorStyle, configValueStyle, configPathStyle         lipgloss.Style
	configEnabledStyle, configDisabledStyle                      lipgloss.Style
	configStatusOkStyle, configStatusErrorStyle                  lipgloss.Style
	configFeedbackStyle                                          lipgloss.Style
)

func init() {
	UpdateTheme()
}

// UpdateTheme re-reads the current TUI theme and rebuilds every style from it
func UpdateTheme() {
	t := render.GetTUITheme()
	colorBorder, colorPrimary, colorSecondary = t.Border, t.Primary, t.Secondary
	colorAccent, colorWarning, colorError = t.Accent, t.Warning, t.Error
	colorText, colorTextDim, colorTextMute = t.Text, t.TextDim, t.TextMute

	buildChatStyles()
	buildConfigStyles()
}

func fg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

func bold(c lipgloss.Color) lipgloss.Style {
	return fg(c).Bold(true)
}

func boxed(border lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(border)
}

func buildChatStyles() {
	headerStyle = boxed(colorBorder).Padding(0, 2).MarginBottom(1)
	titleStyle = bold(colorPrimary)
	subtitleStyle = fg(colorTextDim)
	hintStyle = fg(colorTextMute).Italic(true)
	messagesAreaStyle = boxed(colorBorder).Padding(1)

	// User bubbles lean right, bot bubbles lean left
	userLabelStyle = bold(colorPrimary).MarginLeft(4)
	userBubbleStyle = boxed(colorPrimary).Foreground(colorText).Padding(0, 1).MarginLeft(4)
	botLabelStyle = bold(colorSecondary)
	botBubbleStyle = boxed(colorSecondary).Foreground(colorText).Padding(0, 1).MarginRight(4)
	loadingStyle = bold(colorAccent)
	dotOffStyle = fg(colorTextMute)

	inputPanelStyle = boxed(colorBorder).Padding(0, 1).MarginTop(1)
	inputLabelStyle = bold(colorPrimary).MarginRight(1)
	inputDisabledStyle = fg(colorTextMute).Italic(true)

	statusBarStyle = fg(colorTextMute).MarginTop(1)
	statusKeyStyle = bold(colorTextDim)
	statusDescStyle = fg(colorTextMute)

	welcomeTitleStyle = bold(colorPrimary).MarginBottom(1)
	welcomeIconStyle = fg(colorAccent)
	columnStyle = lipgloss.NewStyle().Padding(0, 1)
	columnTitleStyle = bold(colorSecondary).MarginBottom(1)
	exampleItemStyle = boxed(colorBorder).Foreground(colorText).Padding(0, 1)
	exampleSelectedStyle = exampleItemStyle.BorderForeground(colorAccent).Foreground(colorAccent).Bold(true)
	infoItemStyle = fg(colorTextDim).BorderStyle(lipgloss.HiddenBorder()).Padding(0, 1)
}

func buildConfigStyles() {
	configHeaderStyle = bold(colorPrimary).MarginBottom(1).Align(lipgloss.Center)
	configTitleStyle = bold(colorText).MarginBottom(1).PaddingLeft(1)
	configSectionTitleStyle = bold(colorSecondary).MarginTop(1)
	configPanelStyle = boxed(colorBorder).Padding(1, 2)
	configStatusBarStyle = fg(colorTextMute).MarginTop(1).Align(lipgloss.Center)

	configMenuItemStyle = fg(colorText).PaddingLeft(2)
	configMenuSelectedStyle = bold(colorAccent)
	configCursorStyle = fg(colorAccent)
	configValueStyle = fg(colorTextDim)
	configPathStyle = fg(colorTextMute).Italic(true)

	configEnabledStyle = fg(colorSecondary)
	configDisabledStyle = fg(colorError)
	configStatusOkStyle = fg(colorSecondary)
	configStatusErrorStyle = fg(colorWarning)
	configFeedbackStyle = fg(colorTextDim).Italic(true).MarginTop(1)
}

// shortcut is a key hint shown in a status bar
type shortcut struct {
	key  string
	desc string
}

// renderShortcuts joins key hints into a centered status bar
func renderShortcuts(style lipgloss.Style, width int, shortcuts []shortcut) string {
	items := make([]string, 0, len(shortcuts))
	for _, s := range shortcuts {
		items = append(items, statusKeyStyle.Render(s.key)+statusDescStyle.Render(" "+s.desc))
	}
	return style.Width(width).Align(lipgloss.Center).Render(strings.Join(items, "  │  "))
}
