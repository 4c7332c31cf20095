package render

import "testing"

func TestIsBuiltinStyle(t *testing.T) {
	for _, style := range []string{StyleDark, StyleLight, StyleNoTTY, "dracula", "ascii"} {
		if !IsBuiltinStyle(style) {
			t.Errorf("IsBuiltinStyle(%q) = false, want true", style)
		}
	}
	for _, style := range []string{"", "tokyonight", "/tmp/theme.json"} {
		if IsBuiltinStyle(style) {
			t.Errorf("IsBuiltinStyle(%q) = true, want false", style)
		}
	}
}

func TestAvailableThemes(t *testing.T) {
	themes := AvailableThemes()

	if len(themes) == 0 {
		t.Fatal("AvailableThemes() returned empty list")
	}
	if themes[0].Name != StyleDark {
		t.Errorf("first theme = %s, want %s", themes[0].Name, StyleDark)
	}

	seen := make(map[string]bool)
	for _, theme := range themes {
		if seen[theme.Name] {
			t.Errorf("duplicate theme %s", theme.Name)
		}
		seen[theme.Name] = true
		if !IsBuiltinStyle(theme.Name) {
			t.Errorf("theme %s is not renderable", theme.Name)
		}
	}
}

func TestThemeNames_Render(t *testing.T) {
	for _, name := range ThemeNames() {
		t.Run(name, func(t *testing.T) {
			if _, err := Markdown("# Title", DefaultOptions().WithStyle(name)); err != nil {
				t.Errorf("style %s failed to render: %v", name, err)
			}
		})
	}
}
