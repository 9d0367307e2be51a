package domain

import (
	"fmt"
	"strings"
)

// ModelEntry is the persisted record written to properties.models.
type ModelEntry struct {
	Name      string `json:"name"`
	URL       string `json:"url"`
	Directory string `json:"directory"`
}

// Trimmed returns the entry with all fields trimmed.
func (m ModelEntry) Trimmed() ModelEntry {
	return ModelEntry{
		Name:      strings.TrimSpace(m.Name),
		URL:       strings.TrimSpace(m.URL),
		Directory: strings.TrimSpace(m.Directory),
	}
}

// Complete reports whether all fields are non-blank after trimming.
// Only complete entries are persisted.
func (m ModelEntry) Complete() bool {
	t := m.Trimmed()
	return t.Name != "" && t.URL != "" && t.Directory != ""
}

// ModelFileReference is a widget value identified as a model file.
type ModelFileReference struct {
	// Raw is the widget value as written, possibly with a folder path.
	Raw string

	// Base is the path-stripped file name.
	Base string

	// Valid reports extension validity, taking the node type into account.
	Valid bool
}

// NodeEditContext is a model loader node with its candidate model files.
type NodeEditContext struct {
	Node              *Node
	ExistingModels    []ModelEntry
	ModelFiles        []ModelFileReference
	IsNodeTypeInRules bool
}

// PrimaryFile returns the first candidate file. Every context has one.
func (c NodeEditContext) PrimaryFile() ModelFileReference {
	if len(c.ModelFiles) == 0 {
		return ModelFileReference{}
	}
	return c.ModelFiles[0]
}

// Files returns the raw candidate values.
func (c NodeEditContext) Files() []string {
	out := make([]string, len(c.ModelFiles))
	for i, f := range c.ModelFiles {
		out[i] = f.Raw
	}
	return out
}

// EntryID identifies an editable entry for the lifetime of a session.
type EntryID string

// EntryField names an editable field of a model entry.
type EntryField string

// Editable entry fields.
const (
	FieldName      EntryField = "name"
	FieldURL       EntryField = "url"
	FieldDirectory EntryField = "directory"
)

// IsValid returns true if the field is recognised.
func (f EntryField) IsValid() bool {
	switch f {
	case FieldName, FieldURL, FieldDirectory:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (f EntryField) String() string {
	return string(f)
}

// FieldStatus is the outcome of a single field check.
type FieldStatus string

// Field statuses. Empty counts as invalid for statistics.
const (
	StatusValid   FieldStatus = "valid"
	StatusInvalid FieldStatus = "invalid"
	StatusEmpty   FieldStatus = "empty"
)

// FieldResult is a field status with a human-readable reason.
type FieldResult struct {
	Status FieldStatus
	Reason string
}

// Valid reports whether the field passed.
func (r FieldResult) Valid() bool {
	return r.Status == StatusValid
}

// EditableEntry is a model entry bound to the editor.
type EditableEntry struct {
	ID EntryID

	// Model holds the current field values.
	Model ModelEntry

	// ReferenceFile is the candidate file name the entry's name is checked
	// against. Empty for entries added by hand.
	ReferenceFile string

	Name FieldResult
	URL  FieldResult
}

// Class returns the statistics classification of the entry.
func (e EditableEntry) Class() EntryClass {
	if e.Name.Valid() && e.URL.Valid() {
		return ClassValid
	}
	if strings.TrimSpace(e.Model.URL) == "" {
		return ClassMissingURL
	}
	return ClassErrorURL
}

// EntryClass classifies an entry for statistics.
type EntryClass string

// Entry classes.
const (
	ClassValid      EntryClass = "valid"
	ClassMissingURL EntryClass = "missing-url"
	ClassErrorURL   EntryClass = "error-url"
)

// Description returns a human-readable description of the class.
func (c EntryClass) Description() string {
	switch c {
	case ClassValid:
		return "Valid"
	case ClassMissingURL:
		return "Missing URL"
	case ClassErrorURL:
		return "Error URL"
	default:
		return "Unknown"
	}
}

// EntryStats aggregates entry classes.
// MissingURL + ErrorURL always equals Invalid.
type EntryStats struct {
	Total      int `json:"total"`
	Valid      int `json:"valid"`
	Invalid    int `json:"invalid"`
	MissingURL int `json:"missing_url"`
	ErrorURL   int `json:"error_url"`
}

// Add counts one entry of the given class.
func (s *EntryStats) Add(c EntryClass) {
	s.Total++
	switch c {
	case ClassValid:
		s.Valid++
	case ClassMissingURL:
		s.Invalid++
		s.MissingURL++
	default:
		s.Invalid++
		s.ErrorURL++
	}
}

// PathStatus describes a model path as shown next to the path editor.
type PathStatus string

// Path statuses, highest priority first.
const (
	PathInvalidExtensionFolder PathStatus = "invalid-extension-folder"
	PathInvalidExtension       PathStatus = "invalid-extension"
	PathFolder                 PathStatus = "folder"
	PathValid                  PathStatus = "valid"
)

// Description returns the indicator text for the status.
func (p PathStatus) Description() string {
	switch p {
	case PathInvalidExtensionFolder:
		return "Invalid file format (should be .safetensors or .sft) and contains folder path"
	case PathInvalidExtension:
		return "Invalid file format (should be .safetensors or .sft)"
	case PathFolder:
		return "Contains folder path"
	case PathValid:
		return "Valid model file format"
	default:
		return "Unknown"
	}
}

// InvalidModelFile is a candidate file that fails the extension rule.
type InvalidModelFile struct {
	NodeID   NodeID `json:"node_id"`
	NodeType string `json:"node_type"`
	Path     string `json:"path"`
}

// BulkMatchResult summarises a bulk URL match.
type BulkMatchResult struct {
	URLsFound      int `json:"urls_found"`
	Matched        int `json:"matched"`
	RepairedErrors int `json:"repaired_errors"`
}

// Message returns the completion notice for the result.
func (r BulkMatchResult) Message() string {
	msg := fmt.Sprintf("Processing complete: found %d links, successfully matched %d items",
		r.URLsFound, r.Matched)
	if r.RepairedErrors > 0 {
		msg += fmt.Sprintf(", fixed %d error links", r.RepairedErrors)
	}
	return msg
}
