package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Document Errors.

	// ErrParse indicates the input text is not valid JSON.
	ErrParse = errors.New("failed to parse JSON")

	// ErrNoNodes indicates the document has no nodes array.
	ErrNoNodes = errors.New("no valid nodes array found in JSON data")

	// ErrNoDocument indicates an operation needs a loaded document.
	ErrNoDocument = errors.New("no document loaded")

	// ErrSerialize indicates the document could not be written back to text.
	// The previous text is kept when this happens.
	ErrSerialize = errors.New("failed to serialise document")

	// ErrNotJSONFile indicates an input file does not carry the .json extension.
	ErrNotJSONFile = errors.New("please select a valid JSON file")

	// ErrNoURLs indicates a links blob contained no HTTP(S) URLs.
	ErrNoURLs = errors.New("no valid URLs found")

	// ErrEmptyContent indicates there is nothing to save or copy.
	ErrEmptyContent = errors.New("no content")
)
