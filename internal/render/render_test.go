package render

import (
	"strings"
	"testing"

	"github.com/diogo/querychat/internal/format"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	if opts.Width != 80 {
		t.Errorf("expected Width=80, got %d", opts.Width)
	}
	if opts.Style != StyleDark {
		t.Errorf("expected Style=%q, got %s", StyleDark, opts.Style)
	}
	if !opts.EnableEmoji || !opts.PreserveNewLines || !opts.TableWrap {
		t.Errorf("unexpected defaults: %+v", opts)
	}
	if opts.InlineTableLinks {
		t.Error("expected InlineTableLinks=false")
	}
}

func TestOptionsBuilders(t *testing.T) {
	opts := DefaultOptions().WithWidth(120).WithStyle(StyleLight)

	if opts.Width != 120 {
		t.Errorf("expected Width=120, got %d", opts.Width)
	}
	if opts.Style != StyleLight {
		t.Errorf("expected Style=%q, got %s", StyleLight, opts.Style)
	}
	if DefaultOptions().Width != 80 {
		t.Error("builders must not mutate the receiver")
	}
}

func TestMarkdown(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		width    int
		contains string
	}{
		{"heading", "# Narada Muni", 80, "Narada"},
		{"bold", "The **soul** is eternal", 80, "soul"},
		{"list", "- first\n- second", 80, "second"},
		{"code_block", "```\nSB 1.1.1\n```", 80, "SB 1.1.1"},
		{"narrow_width", "# A heading that should wrap somewhere", 30, "heading"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			output, err := Markdown(tc.input, DefaultOptions().WithWidth(tc.width))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(output, tc.contains) {
				t.Errorf("output should contain %q, got: %s", tc.contains, output)
			}
		})
	}
}

func TestMarkdownEmoji(t *testing.T) {
	input := "Hello :smile: world"

	output, err := Markdown(input, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(output, ":smile:") {
		t.Errorf("emoji should have been converted, got: %s", output)
	}

	opts := DefaultOptions()
	opts.EnableEmoji = false
	output, err = Markdown(input, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(output, ":smile:") {
		t.Errorf("emoji should NOT have been converted, got: %s", output)
	}
}

func TestMarkdownInvalidStyle(t *testing.T) {
	_, err := Markdown("# Test", DefaultOptions().WithStyle("nonexistent_style_path"))
	if err == nil {
		t.Error("expected error for invalid style path")
	}
}

func TestSpans_Plain(t *testing.T) {
	spans := format.Parse("a **b** *c* ***d***")

	got := Spans(spans, PlainSpanStyles())

	if got != "a b c d" {
		t.Errorf("Spans() = %q, want %q", got, "a b c d")
	}
}

func TestSpans_PreservesNewlines(t *testing.T) {
	got := Spans(format.Parse("line one\n**line two**\n"), PlainSpanStyles())

	if got != "line one\nline two\n" {
		t.Errorf("Spans() = %q", got)
	}
}

func TestSpans_Empty(t *testing.T) {
	if got := Spans(nil, DefaultSpanStyles()); got != "" {
		t.Errorf("Spans(nil) = %q, want empty", got)
	}
}

func TestAnswer(t *testing.T) {
	text := "Krishna is **the Supreme**"

	plain := Answer(text, false, DefaultOptions(), PlainSpanStyles())
	if plain != "Krishna is the Supreme" {
		t.Errorf("emphasis mode = %q", plain)
	}

	md := Answer(text, true, DefaultOptions().WithStyle(StyleNoTTY), PlainSpanStyles())
	if !strings.Contains(md, "Supreme") || strings.HasSuffix(md, "\n") {
		t.Errorf("markdown mode = %q", md)
	}
}

func TestAnswer_MarkdownFailureFallsBack(t *testing.T) {
	got := Answer("*x*", true, DefaultOptions().WithStyle("nonexistent_style_path"), PlainSpanStyles())

	if got != "x" {
		t.Errorf("Answer() = %q, want fallback %q", got, "x")
	}
}
