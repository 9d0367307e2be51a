// Package ojson implements the workflow document codec on top of ojg.
//
// Parsing keeps integers as int64 and everything else as generic JSON
// values. Serialisation sorts object keys and indents with two spaces, so
// encoding unchanged content always produces the same text.
package ojson

import (
	"fmt"

	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"

	"github.com/custodia-labs/wfmodels/internal/core/domain"
	"github.com/custodia-labs/wfmodels/internal/core/ports/driven"
)

// Ensure Codec implements the interface.
var _ driven.DocumentCodec = (*Codec)(nil)

// nodesPath selects the top-level nodes array.
var nodesPath = jp.MustParseString("$.nodes")

// Codec parses and serialises workflow documents.
type Codec struct {
	options ojg.Options
}

// NewCodec creates a codec writing 2-space indented, key-sorted JSON.
func NewCodec() *Codec {
	return &Codec{
		options: ojg.Options{
			Indent:     2,
			Sort:       true,
			HTMLUnsafe: true,
		},
	}
}

// Decode parses text into a document.
func (c *Codec) Decode(text string) (*domain.Document, error) {
	parsed, err := oj.ParseString(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrParse, err)
	}

	root, ok := parsed.(map[string]any)
	if !ok {
		return nil, domain.ErrNoNodes
	}
	if _, isArray := nodesPath.First(root).([]any); !isArray {
		return nil, domain.ErrNoNodes
	}

	return domain.NewDocument(root)
}

// Encode serialises a document. A panic inside the writer is reported as
// domain.ErrSerialize.
func (c *Codec) Encode(doc *domain.Document) (text string, err error) {
	if doc == nil {
		return "", fmt.Errorf("%w: no document", domain.ErrSerialize)
	}

	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%w: %v", domain.ErrSerialize, r)
		}
	}()

	opts := c.options
	out, err := oj.Marshal(doc.Root(), &opts)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrSerialize, err)
	}
	return string(out), nil
}
