package services

import (
	"github.com/google/uuid"

	"github.com/custodia-labs/wfmodels/internal/core/domain"
)

// Reconcile produces the editable entries for a node.
//
// Persisted models come first, each checked against its closest candidate
// file. Candidate files whose base name is not among the persisted names
// follow as blank-URL entries. A node without persisted models gets one
// entry per candidate file.
func Reconcile(ctx domain.NodeEditContext, rules domain.DirectoryRules) []domain.EditableEntry {
	directory := directoryFor(ctx.Node.Type(), rules)
	files := ctx.Files()

	var entries []domain.EditableEntry

	if len(ctx.ExistingModels) > 0 {
		names := make(map[string]struct{}, len(ctx.ExistingModels))
		for _, m := range ctx.ExistingModels {
			names[m.Name] = struct{}{}
			entries = append(entries, NewEntry(m, ClosestFileName(m.Name, files)))
		}

		for _, f := range ctx.ModelFiles {
			if _, found := names[f.Base]; found {
				continue
			}
			model := domain.ModelEntry{Name: f.Base, Directory: directory}
			entries = append(entries, NewEntry(model, f.Base))
		}
		return entries
	}

	for _, f := range ctx.ModelFiles {
		model := domain.ModelEntry{Name: f.Base, Directory: directory}
		entries = append(entries, NewEntry(model, f.Base))
	}
	return entries
}

// NewEntry creates a validated editable entry with a fresh ID.
func NewEntry(model domain.ModelEntry, referenceFile string) domain.EditableEntry {
	e := domain.EditableEntry{
		ID:            domain.EntryID(uuid.NewString()),
		Model:         model,
		ReferenceFile: referenceFile,
	}
	ValidateEntry(&e)
	return e
}

// BlankEntry creates the entry added by hand: empty name and URL with the
// directory pre-filled from the rule table.
func BlankEntry(nodeType string, rules domain.DirectoryRules) domain.EditableEntry {
	return NewEntry(domain.ModelEntry{Directory: directoryFor(nodeType, rules)}, "")
}

// ClosestFileName returns the base name of the candidate equal to name,
// else the base name of the first candidate. Empty when either is empty.
func ClosestFileName(name string, files []string) string {
	if name == "" || len(files) == 0 {
		return ""
	}
	for _, f := range files {
		if base := domain.BaseName(f); base == name {
			return base
		}
	}
	return domain.BaseName(files[0])
}

func directoryFor(nodeType string, rules domain.DirectoryRules) string {
	if rules == nil {
		return ""
	}
	return rules.DirectoryFor(nodeType)
}
