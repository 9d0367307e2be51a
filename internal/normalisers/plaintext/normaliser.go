// Package plaintext passes plain link lists through with line endings
// normalised.
package plaintext

import "strings"

// Normaliser handles plain text.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Extensions returns the file extensions this normaliser handles.
func (n *Normaliser) Extensions() []string {
	return []string{".txt", ".text", ".log", ".csv"}
}

// Normalise converts CRLF line endings and trims surrounding space.
func (n *Normaliser) Normalise(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	return strings.TrimSpace(content)
}
