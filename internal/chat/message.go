// Package chat implements the chat interaction: the transcript, the loading
// placeholder, the send controller's request/response cycle and prompt shortcuts.
// Rendering is delegated to a Surface so the whole cycle runs headless in tests.
package chat

import (
	"time"

	"github.com/google/uuid"

	"github.com/diogo/querychat/internal/format"
)

// Sender identifies who a message came from
type Sender int

const (
	SenderUser Sender = iota
	SenderBot
)

func (s Sender) String() string {
	if s == SenderUser {
		return "user"
	}
	return "bot"
}

// Message is one rendered transcript entry. Messages are never mutated after rendering.
type Message struct {
	ID        uuid.UUID
	Text      string
	Sender    Sender
	Spans     []format.Span
	CreatedAt time.Time
}

// Placeholder is the handle of a loading indicator entry
type Placeholder struct {
	ID       uuid.UUID
	attached bool
}

// Attached reports whether the placeholder is still part of the transcript
func (p *Placeholder) Attached() bool {
	return p != nil && p.attached
}
