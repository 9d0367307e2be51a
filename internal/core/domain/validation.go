package domain

import (
	"fmt"
	"strings"
)

// Severity grades an audit issue.
type Severity string

// Issue severities.
const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// IssueKind identifies what an audit issue is about.
type IssueKind string

// Issue kinds produced by the document audit.
const (
	// IssueCountMismatch: valid candidate files and persisted entries differ in number.
	IssueCountMismatch IssueKind = "count_mismatch"

	// IssueNameNotInWidgets: a persisted name is not among the candidate files.
	IssueNameNotInWidgets IssueKind = "name_not_in_widgets"

	// IssueFormatError: a persisted name lacks a model extension.
	IssueFormatError IssueKind = "format_error"

	// IssueMissingLink: a persisted URL is blank.
	IssueMissingLink IssueKind = "missing_link"

	// IssueInvalidLink: a persisted URL does not look like a link.
	IssueInvalidLink IssueKind = "invalid_link"

	// IssueURLMismatch: the URL does not mention the model name.
	IssueURLMismatch IssueKind = "url_mismatch"

	// IssueMissingConfig: the node has model files but no models property.
	IssueMissingConfig IssueKind = "missing_config"
)

// Issue is a single audit finding.
type Issue struct {
	NodeID   NodeID    `json:"node_id"`
	NodeType string    `json:"node_type"`
	Severity Severity  `json:"severity"`
	Kind     IssueKind `json:"kind"`
	Message  string    `json:"message"`
}

// StatusLevel is the overall colour of a validation status.
type StatusLevel string

// Status levels.
const (
	LevelEmpty   StatusLevel = "empty"
	LevelOK      StatusLevel = "ok"
	LevelWarning StatusLevel = "warning"
	LevelError   StatusLevel = "error"
)

// ValidationStatus is the document-wide audit result.
type ValidationStatus struct {
	HasErrors     bool `json:"has_errors"`
	HasWarnings   bool `json:"has_warnings"`
	MissingLinks  int  `json:"missing_links"`
	InvalidLinks  int  `json:"invalid_links"`
	FormatErrors  int  `json:"format_errors"`
	URLMismatch   int  `json:"url_mismatch"`
	CountMismatch int  `json:"count_mismatch"`

	// Nodes is the number of edit contexts the audit looked at.
	Nodes int `json:"nodes"`

	Issues []Issue `json:"issues,omitempty"`
}

// Warn records a warning issue.
func (s *ValidationStatus) Warn(issue Issue) {
	issue.Severity = SeverityWarning
	s.HasWarnings = true
	s.Issues = append(s.Issues, issue)
}

// Error records an error issue.
func (s *ValidationStatus) Error(issue Issue) {
	issue.Severity = SeverityError
	s.HasErrors = true
	s.Issues = append(s.Issues, issue)
}

// Level returns the overall status level.
func (s ValidationStatus) Level() StatusLevel {
	switch {
	case s.HasErrors:
		return LevelError
	case s.HasWarnings:
		return LevelWarning
	case s.Nodes > 0:
		return LevelOK
	default:
		return LevelEmpty
	}
}

// Summary returns the one-line summary shown next to the export actions.
// Empty when nothing is loaded.
func (s ValidationStatus) Summary() string {
	switch s.Level() {
	case LevelError:
		return fmt.Sprintf("%d model format errors", s.FormatErrors)
	case LevelWarning:
		var items []string
		if s.MissingLinks > 0 {
			items = append(items, fmt.Sprintf("%d missing links", s.MissingLinks))
		}
		if s.InvalidLinks > 0 {
			items = append(items, fmt.Sprintf("%d invalid links", s.InvalidLinks))
		}
		if s.URLMismatch > 0 {
			items = append(items, fmt.Sprintf("%d name-URL mismatches", s.URLMismatch))
		}
		return "Warning: " + strings.Join(items, ", ")
	case LevelOK:
		return "All model configurations valid"
	default:
		return ""
	}
}
