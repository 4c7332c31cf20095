package render

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/querychat/internal/format"
)

// Markdown renders markdown content for terminal display with a pooled renderer.
func Markdown(content string, opts Options) (string, error) {
	return withRenderer(opts, func(r *glamour.TermRenderer) (string, error) {
		return r.Render(content)
	})
}

// SpanStyles decorates emphasis runs
type SpanStyles struct {
	Base     lipgloss.Style
	Strong   lipgloss.Style
	Emphasis lipgloss.Style
}

// DefaultSpanStyles renders strong runs bold and emphasis runs italic in the active theme
func DefaultSpanStyles() SpanStyles {
	theme := GetTUITheme()
	base := lipgloss.NewStyle().Foreground(theme.Text)
	return SpanStyles{
		Base:     base,
		Strong:   base.Bold(true).Foreground(theme.Accent),
		Emphasis: base.Italic(true),
	}
}

// PlainSpanStyles renders spans without any terminal escapes
func PlainSpanStyles() SpanStyles {
	plain := lipgloss.NewStyle()
	return SpanStyles{Base: plain, Strong: plain, Emphasis: plain}
}

// Spans renders emphasis runs. A run that is both strong and emphasized gets both decorations.
func Spans(spans []format.Span, s SpanStyles) string {
	var b strings.Builder
	for _, span := range spans {
		style := s.Base
		switch {
		case span.Strong && span.Emphasis:
			style = s.Strong.Inherit(s.Emphasis)
		case span.Strong:
			style = s.Strong
		case span.Emphasis:
			style = s.Emphasis
		}
		b.WriteString(renderLines(style, span.Text))
	}
	return b.String()
}

// renderLines styles each line separately so newlines inside a run survive
func renderLines(style lipgloss.Style, text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

// Answer renders bot text in the configured mode. Markdown failures fall back to spans.
func Answer(text string, markdown bool, opts Options, s SpanStyles) string {
	if markdown {
		out, err := Markdown(text, opts)
		if err == nil {
			return strings.TrimRight(out, "\n")
		}
	}
	return Spans(format.Parse(text), s)
}
