// Package format applies the lightweight inline emphasis used by chat messages.
//
// Two substitutions run in a fixed order over the message text: `**x**` marks x as
// strong, then `*x*` marks x as emphasized. Both are non-greedy, single-pass and do
// not cross line breaks. There is no escaping, so a literal asterisk pair that fits
// a pattern is always consumed. The second pass runs over the output of the first,
// which means emphasis can open inside a strong run and close outside of it; the
// span model below is toggle-based so such overlaps still render deterministically.
package format

import (
	"regexp"
	"strings"
)

var (
	strongPattern   = regexp.MustCompile(`\*\*(.*?)\*\*`)
	emphasisPattern = regexp.MustCompile(`\*(.*?)\*`)
)

// Span is a run of text sharing the same emphasis.
type Span struct {
	Text     string
	Strong   bool
	Emphasis bool
}

type toggleKind int

const (
	strongOn toggleKind = iota
	strongOff
	emphasisOn
	emphasisOff
)

// toggle switches a style at a byte offset of the strong-stripped text.
// Emphasis toggles sit on the asterisk they consume.
type toggle struct {
	at   int
	kind toggleKind
}

// Parse applies both substitutions to text and returns the resulting spans in order.
// Empty runs are dropped and adjacent runs with equal emphasis are merged.
func Parse(text string) []Span {
	stripped, strong := stripStrong(text)
	emphasis := emphasisToggles(stripped)

	var (
		spans   []Span
		current Span
	)
	flush := func() {
		if current.Text == "" {
			return
		}
		if n := len(spans); n > 0 && spans[n-1].Strong == current.Strong && spans[n-1].Emphasis == current.Emphasis {
			spans[n-1].Text += current.Text
		} else {
			spans = append(spans, current)
		}
		current.Text = ""
	}

	pos := 0
	for len(strong) > 0 || len(emphasis) > 0 {
		// At equal offsets a strong boundary precedes the asterisk
		var t toggle
		if len(strong) > 0 && (len(emphasis) == 0 || strong[0].at <= emphasis[0].at) {
			t, strong = strong[0], strong[1:]
		} else {
			t, emphasis = emphasis[0], emphasis[1:]
		}

		current.Text += stripped[pos:t.at]
		flush()
		pos = t.at

		switch t.kind {
		case strongOn:
			current.Strong = true
		case strongOff:
			current.Strong = false
		case emphasisOn:
			current.Emphasis = true
			pos++
		case emphasisOff:
			current.Emphasis = false
			pos++
		}
	}
	current.Text += stripped[pos:]
	flush()

	return spans
}

// stripStrong removes every `**x**` delimiter pair and records where each run
// starts and ends in the remaining text.
func stripStrong(text string) (string, []toggle) {
	matches := strongPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text, nil
	}

	var sb strings.Builder
	toggles := make([]toggle, 0, 2*len(matches))
	prev := 0
	for _, m := range matches {
		sb.WriteString(text[prev:m[0]])
		toggles = append(toggles, toggle{at: sb.Len(), kind: strongOn})
		sb.WriteString(text[m[2]:m[3]])
		toggles = append(toggles, toggle{at: sb.Len(), kind: strongOff})
		prev = m[1]
	}
	sb.WriteString(text[prev:])
	return sb.String(), toggles
}

// emphasisToggles locates `*x*` pairs. Strong boundaries hold no asterisks or
// line breaks, so matching the stripped text finds the same pairs as matching
// the first pass's output.
func emphasisToggles(text string) []toggle {
	matches := emphasisPattern.FindAllStringSubmatchIndex(text, -1)
	toggles := make([]toggle, 0, 2*len(matches))
	for _, m := range matches {
		toggles = append(toggles,
			toggle{at: m[0], kind: emphasisOn},
			toggle{at: m[3], kind: emphasisOff},
		)
	}
	return toggles
}

// PlainText returns the concatenated text of spans with all emphasis removed.
func PlainText(spans []Span) string {
	var sb strings.Builder
	for _, s := range spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}
