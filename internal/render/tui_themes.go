package render

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// TUITheme is the color scheme of the chat interface
type TUITheme struct {
	Name        string
	Description string

	Background lipgloss.Color
	Surface    lipgloss.Color
	Border     lipgloss.Color

	Primary   lipgloss.Color // user messages, focus
	Secondary lipgloss.Color // bot messages
	Accent    lipgloss.Color // strong spans, selected example
	Warning   lipgloss.Color
	Error     lipgloss.Color

	Text     lipgloss.Color
	TextDim  lipgloss.Color
	TextMute lipgloss.Color
}

// DefaultTUITheme is used when the configured theme is unknown
const DefaultTUITheme = "tokyonight"

var tuiThemes = []TUITheme{
	{
		Name:        "tokyonight",
		Description: "Tokyo Night - Dark theme with blue accents",
		Background:  "#1a1b26", Surface: "#24283b", Border: "#414868",
		Primary: "#7aa2f7", Secondary: "#9ece6a", Accent: "#bb9af7",
		Warning: "#e0af68", Error: "#f7768e",
		Text: "#c0caf5", TextDim: "#565f89", TextMute: "#3b4261",
	},
	{
		Name:        "catppuccin",
		Description: "Catppuccin Mocha - Warm dark theme with pastel colors",
		Background:  "#1e1e2e", Surface: "#313244", Border: "#45475a",
		Primary: "#89b4fa", Secondary: "#a6e3a1", Accent: "#cba6f7",
		Warning: "#f9e2af", Error: "#f38ba8",
		Text: "#cdd6f4", TextDim: "#6c7086", TextMute: "#45475a",
	},
	{
		Name:        "nord",
		Description: "Nord - Arctic-inspired theme with cool tones",
		Background:  "#2e3440", Surface: "#3b4252", Border: "#4c566a",
		Primary: "#88c0d0", Secondary: "#a3be8c", Accent: "#b48ead",
		Warning: "#ebcb8b", Error: "#bf616a",
		Text: "#eceff4", TextDim: "#7b88a1", TextMute: "#4c566a",
	},
	{
		Name:        "dracula",
		Description: "Dracula - Dark theme with vibrant colors",
		Background:  "#282a36", Surface: "#44475a", Border: "#6272a4",
		Primary: "#8be9fd", Secondary: "#50fa7b", Accent: "#ff79c6",
		Warning: "#f1fa8c", Error: "#ff5555",
		Text: "#f8f8f2", TextDim: "#6272a4", TextMute: "#44475a",
	},
	{
		Name:        "saffron",
		Description: "Saffron - Warm light-on-dark theme with orange accents",
		Background:  "#1c1714", Surface: "#2a221d", Border: "#5c4a3d",
		Primary: "#f4a261", Secondary: "#e9c46a", Accent: "#e76f51",
		Warning: "#f6bd60", Error: "#d62828",
		Text: "#f1e3d3", TextDim: "#8d7b6d", TextMute: "#4a3d33",
	},
}

var (
	themeMu      sync.RWMutex
	currentTheme = tuiThemes[0]
)

// GetTUITheme returns the active theme
func GetTUITheme() TUITheme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTheme
}

// SetTUITheme activates the named theme. Unknown names leave the theme unchanged.
func SetTUITheme(name string) bool {
	theme, ok := GetTUIThemeByName(name)
	if !ok {
		return false
	}
	themeMu.Lock()
	currentTheme = theme
	themeMu.Unlock()
	return true
}

// GetTUIThemeByName looks a theme up by name
func GetTUIThemeByName(name string) (TUITheme, bool) {
	for _, t := range tuiThemes {
		if t.Name == name {
			return t, true
		}
	}
	return TUITheme{}, false
}

// AvailableTUIThemes returns every built-in theme
func AvailableTUIThemes() []TUITheme {
	return append([]TUITheme(nil), tuiThemes...)
}

// TUIThemeNames returns the theme names in menu order
func TUIThemeNames() []string {
	names := make([]string, len(tuiThemes))
	for i, t := range tuiThemes {
		names[i] = t.Name
	}
	return names
}
