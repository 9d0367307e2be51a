// Package clipboard implements driven.Clipboard with the system clipboard.
package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"

	"github.com/custodia-labs/wfmodels/internal/core/ports/driven"
)

// Ensure System implements the interface.
var _ driven.Clipboard = (*System)(nil)

// ErrUnsupported indicates no clipboard utility is available.
var ErrUnsupported = errors.New("clipboard unavailable on this system")

// System writes to the operating system clipboard.
type System struct {
	write       func(string) error
	unsupported bool
}

// New creates a clipboard adapter.
func New() *System {
	return &System{write: clipboard.WriteAll, unsupported: clipboard.Unsupported}
}

// WriteText places text on the clipboard.
func (c *System) WriteText(text string) error {
	if c.unsupported {
		return ErrUnsupported
	}
	return c.write(text)
}
