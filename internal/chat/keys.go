package chat

// KeyEnter is the key name of the Enter/Return key
const KeyEnter = "enter"

// KeyEvent is a key press in the input field
type KeyEvent struct {
	Key string
	// Shift is set for the "new line" modifier. Terminals rarely report
	// shift+enter, so surfaces also map alt+enter and ctrl+j onto it.
	Shift bool
}

// IsSubmitKey reports whether ev submits the question
func IsSubmitKey(ev KeyEvent) bool {
	return ev.Key == KeyEnter && !ev.Shift
}
