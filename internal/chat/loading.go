package chat

import "github.com/google/uuid"

// LoadingIndicator shows and removes the "request in flight" placeholder.
// It does not itself limit placeholders to one; the Controller's single-flight
// discipline does.
type LoadingIndicator struct {
	transcript *Transcript
	surface    Surface
	current    *Placeholder
}

// NewLoadingIndicator creates an indicator that shares transcript's activation state
func NewLoadingIndicator(transcript *Transcript, surface Surface) *LoadingIndicator {
	return &LoadingIndicator{
		transcript: transcript,
		surface:    surface,
	}
}

// Show appends a placeholder at the end of the transcript and returns its handle
func (l *LoadingIndicator) Show() *Placeholder {
	l.transcript.activate()

	p := &Placeholder{ID: uuid.New(), attached: true}
	l.current = p

	l.surface.ShowPlaceholder(p.ID)
	l.surface.ScrollToBottom()

	return p
}

// Hide removes p if it is still attached. Hiding a nil, detached or foreign
// placeholder is a no-op.
func (l *LoadingIndicator) Hide(p *Placeholder) {
	if !p.Attached() {
		return
	}

	p.attached = false
	if l.current == p {
		l.current = nil
	}
	l.surface.RemovePlaceholder(p.ID)
}

// Visible reports whether a placeholder is currently shown
func (l *LoadingIndicator) Visible() bool {
	return l.current.Attached()
}
