package chat

import (
	"time"

	"github.com/google/uuid"

	"github.com/diogo/querychat/internal/format"
)

// Transcript is the append-only, ordered log of rendered messages
type Transcript struct {
	surface  Surface
	active   bool
	messages []Message
	now      func() time.Time
}

// NewTranscript creates an empty, inactive transcript drawing on surface
func NewTranscript(surface Surface) *Transcript {
	return &Transcript{
		surface: surface,
		now:     time.Now,
	}
}

// Render formats text, appends it as a message from sender and scrolls to it.
// The first call activates the transcript.
func (t *Transcript) Render(text string, sender Sender) Message {
	t.activate()

	msg := Message{
		ID:        uuid.New(),
		Text:      text,
		Sender:    sender,
		Spans:     format.Parse(text),
		CreatedAt: t.now(),
	}
	t.messages = append(t.messages, msg)

	t.surface.AppendMessage(msg)
	t.surface.ScrollToBottom()

	return msg
}

// Active reports whether the transcript has left the initial view
func (t *Transcript) Active() bool {
	return t.active
}

// Messages returns a copy of the rendered messages in display order
func (t *Transcript) Messages() []Message {
	return append([]Message(nil), t.messages...)
}

// Len returns the number of rendered messages
func (t *Transcript) Len() int {
	return len(t.messages)
}

// Last returns the most recent message from sender
func (t *Transcript) Last(sender Sender) (Message, bool) {
	for i := len(t.messages) - 1; i >= 0; i-- {
		if t.messages[i].Sender == sender {
			return t.messages[i], true
		}
	}
	return Message{}, false
}

// activate performs the one-time switch away from the initial view
func (t *Transcript) activate() {
	if t.active {
		return
	}
	t.active = true
	t.surface.Activate()
}
