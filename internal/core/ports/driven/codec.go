package driven

import "github.com/custodia-labs/wfmodels/internal/core/domain"

// DocumentCodec converts between workflow text and documents.
type DocumentCodec interface {
	// Decode parses text into a document.
	// Errors wrap domain.ErrParse or domain.ErrNoNodes.
	Decode(text string) (*domain.Document, error)

	// Encode serialises a document with 2-space indentation and a stable
	// key order. Encoding unchanged content twice yields identical text.
	// Errors wrap domain.ErrSerialize.
	Encode(doc *domain.Document) (string, error)
}
