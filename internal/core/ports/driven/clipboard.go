package driven

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	WriteText(text string) error
}
