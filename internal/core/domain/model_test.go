package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModelEntry_Complete(t *testing.T) {
	tests := []struct {
		name  string
		entry ModelEntry
		want  bool
	}{
		{"all set", ModelEntry{Name: "a", URL: "b", Directory: "c"}, true},
		{"blank url", ModelEntry{Name: "a", URL: "  ", Directory: "c"}, false},
		{"no directory", ModelEntry{Name: "a", URL: "b"}, false},
		{"empty", ModelEntry{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.entry.Complete())
		})
	}
}

func TestModelEntry_Trimmed(t *testing.T) {
	got := ModelEntry{Name: " a ", URL: "\tb", Directory: "c\n"}.Trimmed()
	assert.Equal(t, ModelEntry{Name: "a", URL: "b", Directory: "c"}, got)
}

func TestEditableEntry_Class(t *testing.T) {
	valid := FieldResult{Status: StatusValid}
	invalid := FieldResult{Status: StatusInvalid}
	empty := FieldResult{Status: StatusEmpty}

	tests := []struct {
		name  string
		entry EditableEntry
		want  EntryClass
	}{
		{"both valid", EditableEntry{Model: ModelEntry{URL: "u"}, Name: valid, URL: valid}, ClassValid},
		{"blank url", EditableEntry{Model: ModelEntry{URL: " "}, Name: valid, URL: empty}, ClassMissingURL},
		{"bad url", EditableEntry{Model: ModelEntry{URL: "u"}, Name: valid, URL: invalid}, ClassErrorURL},
		{"bad name good url", EditableEntry{Model: ModelEntry{URL: "u"}, Name: invalid, URL: valid}, ClassErrorURL},
		{"bad name no url", EditableEntry{Name: empty, URL: empty}, ClassMissingURL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.entry.Class())
		})
	}
}

func TestEntryStats_Add(t *testing.T) {
	var s EntryStats
	for _, c := range []EntryClass{ClassValid, ClassMissingURL, ClassErrorURL, ClassErrorURL} {
		s.Add(c)
	}
	assert.Equal(t, EntryStats{Total: 4, Valid: 1, Invalid: 3, MissingURL: 1, ErrorURL: 2}, s)
	assert.Equal(t, s.Invalid, s.MissingURL+s.ErrorURL)
}

func TestEntryField_IsValid(t *testing.T) {
	assert.True(t, FieldName.IsValid())
	assert.True(t, FieldURL.IsValid())
	assert.True(t, FieldDirectory.IsValid())
	assert.False(t, EntryField("size").IsValid())
}

func TestPathStatus_Description(t *testing.T) {
	assert.Equal(t, "Contains folder path", PathFolder.Description())
	assert.Equal(t, "Valid model file format", PathValid.Description())
	assert.Contains(t, PathInvalidExtensionFolder.Description(), "contains folder path")
	assert.Equal(t, "Unknown", PathStatus("x").Description())
}

func TestBulkMatchResult_Message(t *testing.T) {
	assert.Equal(t,
		"Processing complete: found 3 links, successfully matched 1 items",
		BulkMatchResult{URLsFound: 3, Matched: 1}.Message())
	assert.Equal(t,
		"Processing complete: found 3 links, successfully matched 2 items, fixed 1 error links",
		BulkMatchResult{URLsFound: 3, Matched: 2, RepairedErrors: 1}.Message())
}

func TestNodeEditContext_PrimaryFile(t *testing.T) {
	ctx := NodeEditContext{ModelFiles: []ModelFileReference{{Raw: "a/b.sft", Base: "b.sft"}, {Raw: "c.sft"}}}
	assert.Equal(t, "b.sft", ctx.PrimaryFile().Base)
	assert.Equal(t, []string{"a/b.sft", "c.sft"}, ctx.Files())
	assert.Equal(t, ModelFileReference{}, NodeEditContext{}.PrimaryFile())
}
