package chat

import "github.com/google/uuid"

// Surface is the rendering side of the chat. Implementations own the visual
// transcript; the chat package only decides what goes into it and when.
type Surface interface {
	// Activate hides the initial view and switches to the transcript view.
	// Called at most once per Transcript.
	Activate()

	// AppendMessage adds a message at the end of the transcript
	AppendMessage(msg Message)

	// ShowPlaceholder adds the animated loading entry at the end of the transcript
	ShowPlaceholder(id uuid.UUID)

	// RemovePlaceholder removes the loading entry with the given id
	RemovePlaceholder(id uuid.UUID)

	// ScrollToBottom brings the newest entry into view
	ScrollToBottom()

	// SetControlsEnabled toggles the text field and the submit control together
	SetControlsEnabled(enabled bool)
}

// InputField is the text field questions are typed into
type InputField interface {
	Value() string
	SetValue(value string)
	Focus()
}
