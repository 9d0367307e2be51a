package normalisers

import (
	"path/filepath"
	"strings"

	"github.com/custodia-labs/wfmodels/internal/core/ports/driven"
	"github.com/custodia-labs/wfmodels/internal/logger"
	"github.com/custodia-labs/wfmodels/internal/normalisers/html"
	"github.com/custodia-labs/wfmodels/internal/normalisers/markdown"
	"github.com/custodia-labs/wfmodels/internal/normalisers/plaintext"
)

// Ensure Registry implements the interface.
var _ driven.LinkNormaliser = (*Registry)(nil)

// Normaliser converts one link source format.
type Normaliser interface {
	// Extensions returns the lower-case file extensions handled.
	Extensions() []string

	// Normalise converts text into plain text with bare URLs.
	Normalise(text string) string
}

// Registry selects a normaliser by file extension.
type Registry struct {
	byExt    map[string]Normaliser
	markup   Normaliser
	fallback Normaliser
}

// NewRegistry creates a registry. fallback handles unknown extensions.
// Later normalisers win when extensions overlap.
func NewRegistry(fallback Normaliser, normalisers ...Normaliser) *Registry {
	r := &Registry{
		byExt:    make(map[string]Normaliser),
		fallback: fallback,
	}
	for _, n := range normalisers {
		r.Register(n)
	}
	return r
}

// Default returns a registry with the HTML, markdown and plain text
// normalisers. Unnamed input that looks like markup is treated as HTML.
func Default() *Registry {
	h := html.New()
	r := NewRegistry(plaintext.New(), h, markdown.New())
	r.markup = h
	return r
}

// Register adds a normaliser for its extensions.
func (r *Registry) Register(n Normaliser) {
	for _, ext := range n.Extensions() {
		r.byExt[strings.ToLower(ext)] = n
	}
}

// For returns the normaliser for a source name.
func (r *Registry) For(name, text string) Normaliser {
	if n, ok := r.byExt[strings.ToLower(filepath.Ext(name))]; ok {
		return n
	}
	if r.markup != nil && strings.HasPrefix(strings.TrimSpace(text), "<") {
		return r.markup
	}
	return r.fallback
}

// Normalise converts text with the normaliser chosen for name.
func (r *Registry) Normalise(name, text string) string {
	n := r.For(name, text)
	if n == nil {
		return text
	}
	logger.Debug("normalising link source %q with %T", name, n)
	return n.Normalise(text)
}
