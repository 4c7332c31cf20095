package commands

import (
	"io"

	"github.com/google/uuid"

	"github.com/diogo/querychat/internal/chat"
)

// consoleSurface renders a one-shot exchange on the terminal. The
// placeholder is a spinner on stderr; messages are kept for the caller to
// print once the cycle settles.
type consoleSurface struct {
	stderr    io.Writer
	decorated bool
	spin      *spinner
	messages  []chat.Message
	controls  bool
}

var _ chat.Surface = (*consoleSurface)(nil)

func newConsoleSurface(stderr io.Writer, decorated bool) *consoleSurface {
	return &consoleSurface{stderr: stderr, decorated: decorated, controls: true}
}

func (s *consoleSurface) Activate() {}

func (s *consoleSurface) AppendMessage(msg chat.Message) {
	s.messages = append(s.messages, msg)
}

func (s *consoleSurface) ShowPlaceholder(id uuid.UUID) {
	if !s.decorated {
		return
	}
	s.spin = newSpinner(s.stderr, "Waiting for the answer")
	s.spin.start()
}

func (s *consoleSurface) RemovePlaceholder(id uuid.UUID) {
	if s.spin != nil {
		s.spin.halt()
		s.spin = nil
	}
}

func (s *consoleSurface) ScrollToBottom() {}

func (s *consoleSurface) SetControlsEnabled(enabled bool) {
	s.controls = enabled
}

// consoleInput holds the question passed on the command line
type consoleInput struct {
	value string
}

func (i *consoleInput) Value() string         { return i.value }
func (i *consoleInput) SetValue(value string) { i.value = value }
func (i *consoleInput) Focus()                {}
