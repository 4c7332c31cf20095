package chat

import (
	"fmt"

	"github.com/google/uuid"
)

// fakeSurface records every call in order so tests can assert on sequencing
type fakeSurface struct {
	events       []string
	activations  int
	messages     []Message
	placeholders []uuid.UUID
	enabled      bool
	maxLive      int
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{enabled: true}
}

func (f *fakeSurface) Activate() {
	f.activations++
	f.events = append(f.events, "activate")
}

func (f *fakeSurface) AppendMessage(msg Message) {
	f.messages = append(f.messages, msg)
	f.events = append(f.events, fmt.Sprintf("message:%s:%s", msg.Sender, msg.Text))
}

func (f *fakeSurface) ShowPlaceholder(id uuid.UUID) {
	f.placeholders = append(f.placeholders, id)
	if len(f.placeholders) > f.maxLive {
		f.maxLive = len(f.placeholders)
	}
	f.events = append(f.events, "placeholder:show")
}

func (f *fakeSurface) RemovePlaceholder(id uuid.UUID) {
	for i, p := range f.placeholders {
		if p == id {
			f.placeholders = append(f.placeholders[:i], f.placeholders[i+1:]...)
			break
		}
	}
	f.events = append(f.events, "placeholder:hide")
}

func (f *fakeSurface) ScrollToBottom() {}

func (f *fakeSurface) SetControlsEnabled(enabled bool) {
	f.enabled = enabled
	f.events = append(f.events, fmt.Sprintf("controls:%t", enabled))
}

func (f *fakeSurface) texts() []string {
	out := make([]string, len(f.messages))
	for i, m := range f.messages {
		out[i] = m.Text
	}
	return out
}

// fakeInput is an in-memory text field
type fakeInput struct {
	value   string
	focused int
}

func (f *fakeInput) Value() string         { return f.value }
func (f *fakeInput) SetValue(value string) { f.value = value }
func (f *fakeInput) Focus()                { f.focused++ }
