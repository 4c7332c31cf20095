package render

import (
	"sort"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
)

// Glamour standard style names
const (
	StyleDark  = styles.DarkStyle
	StyleLight = styles.LightStyle
	StyleNoTTY = styles.NoTTYStyle
)

var styleDescriptions = map[string]string{
	styles.AsciiStyle:      "ASCII-only output",
	styles.DarkStyle:       "Dark theme (default)",
	styles.DraculaStyle:    "Dracula color scheme",
	styles.TokyoNightStyle: "Tokyo Night color scheme",
	styles.LightStyle:      "Light theme for bright terminals",
	styles.NoTTYStyle:      "Plain text (no styling)",
	styles.PinkStyle:       "Pink accents",
}

// IsBuiltinStyle reports whether style names a glamour standard style.
func IsBuiltinStyle(style string) bool {
	_, ok := styles.DefaultStyles[style]
	return ok
}

// styleOption maps a style name to a standard style, anything else to a JSON style path.
func styleOption(style string) glamour.TermRendererOption {
	if IsBuiltinStyle(style) {
		return glamour.WithStandardStyle(style)
	}
	return glamour.WithStylePath(style)
}

// ThemeInfo describes a markdown style for selection menus.
type ThemeInfo struct {
	Name        string
	Description string
}

// AvailableThemes lists the standard markdown styles, default first.
func AvailableThemes() []ThemeInfo {
	names := make([]string, 0, len(styles.DefaultStyles))
	for name := range styles.DefaultStyles {
		if name != StyleDark {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	themes := []ThemeInfo{{Name: StyleDark, Description: styleDescriptions[StyleDark]}}
	for _, name := range names {
		themes = append(themes, ThemeInfo{Name: name, Description: styleDescriptions[name]})
	}
	return themes
}

// ThemeNames returns just the style names.
func ThemeNames() []string {
	themes := AvailableThemes()
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}
