package chat

import "strings"

// PromptArrow is the decorative glyph that trails example prompt labels
const PromptArrow = "→"

// PromptText strips the trailing arrow and surrounding whitespace from a label
func PromptText(label string) string {
	text := strings.TrimSpace(label)
	text = strings.TrimSuffix(text, PromptArrow)
	return strings.TrimSpace(text)
}

// ShortcutBinder copies example prompts into the input field. It never submits.
type ShortcutBinder struct {
	input  InputField
	labels []string
}

// NewShortcutBinder binds labels to input
func NewShortcutBinder(input InputField, labels []string) *ShortcutBinder {
	return &ShortcutBinder{
		input:  input,
		labels: append([]string(nil), labels...),
	}
}

// Len returns the number of bound examples
func (b *ShortcutBinder) Len() int {
	return len(b.labels)
}

// Activate copies the example at index into the input field and focuses it
func (b *ShortcutBinder) Activate(index int) (string, bool) {
	if index < 0 || index >= len(b.labels) {
		return "", false
	}

	text := PromptText(b.labels[index])
	b.input.SetValue(text)
	b.input.Focus()
	return text, true
}
