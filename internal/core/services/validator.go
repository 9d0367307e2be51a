package services

import (
	"strings"

	"github.com/custodia-labs/wfmodels/internal/core/domain"
)

// Validation reasons shown next to fields.
const (
	ReasonNameEmpty       = "Model name cannot be empty"
	ReasonNameMatches     = "Model name matches file name"
	ReasonNameMismatch    = "Model name does not match file name"
	ReasonNameInvalidFile = "Model file format is invalid, cannot validate name"
	ReasonURLEmpty        = "URL cannot be empty"
	ReasonURLMatches      = "URL file name matches model name"
	ReasonURLMismatch     = "URL file name should match model name"
)

// nameSeparators are dropped when comparing names.
var nameSeparators = strings.NewReplacer("-", "", "_", "", ".", "")

// IsValidExtension reports whether path ends in a model extension.
// Node types present in the rule table are trusted regardless of extension.
func IsValidExtension(path, nodeType string, rules domain.DirectoryRules) bool {
	if path == "" {
		return false
	}
	if nodeType != "" && rules != nil && rules.Has(nodeType) {
		return true
	}
	return domain.HasModelExtension(path)
}

// ValidateName checks a model name against the reference file it stands for.
// Matching ignores case and separators and accepts containment either way.
func ValidateName(name, referenceFile string) domain.FieldResult {
	if strings.TrimSpace(name) == "" {
		return domain.FieldResult{Status: domain.StatusEmpty, Reason: ReasonNameEmpty}
	}
	if !IsValidExtension(referenceFile, "", nil) {
		return domain.FieldResult{Status: domain.StatusInvalid, Reason: ReasonNameInvalidFile}
	}

	input := normalizeName(name)
	file := normalizeName(domain.StripModelExtension(domain.BaseName(referenceFile)))

	if input == file || strings.Contains(input, file) || strings.Contains(file, input) {
		return domain.FieldResult{Status: domain.StatusValid, Reason: ReasonNameMatches}
	}
	return domain.FieldResult{Status: domain.StatusInvalid, Reason: ReasonNameMismatch}
}

// ValidateURL checks that the URL's last path segment, before any query,
// equals the model name exactly.
func ValidateURL(url, name string) domain.FieldResult {
	if strings.TrimSpace(url) == "" {
		return domain.FieldResult{Status: domain.StatusEmpty, Reason: ReasonURLEmpty}
	}
	if urlSegment(url) == name {
		return domain.FieldResult{Status: domain.StatusValid, Reason: ReasonURLMatches}
	}
	return domain.FieldResult{Status: domain.StatusInvalid, Reason: ReasonURLMismatch}
}

// ValidateEntry recomputes both field results of an entry in place.
func ValidateEntry(e *domain.EditableEntry) {
	e.Name = ValidateName(e.Model.Name, e.ReferenceFile)
	e.URL = ValidateURL(e.Model.URL, e.Model.Name)
}

// ComputeStats counts entries by class.
func ComputeStats(entries []domain.EditableEntry) domain.EntryStats {
	var stats domain.EntryStats
	for _, e := range entries {
		stats.Add(e.Class())
	}
	return stats
}

// PathStatusOf grades a model path for the path indicator.
// An invalid extension outranks a folder path.
func PathStatusOf(path, nodeType string, rules domain.DirectoryRules) domain.PathStatus {
	folder := domain.HasFolder(path)
	if !IsValidExtension(path, nodeType, rules) {
		if folder {
			return domain.PathInvalidExtensionFolder
		}
		return domain.PathInvalidExtension
	}
	if folder {
		return domain.PathFolder
	}
	return domain.PathValid
}

// InvalidModelFiles lists candidate files failing the extension rule for
// their node type.
func InvalidModelFiles(contexts []domain.NodeEditContext, rules domain.DirectoryRules) []domain.InvalidModelFile {
	var out []domain.InvalidModelFile
	for _, ctx := range contexts {
		nodeType := ctx.Node.Type()
		id, _ := ctx.Node.ID()
		for _, f := range ctx.ModelFiles {
			if !IsValidExtension(f.Raw, nodeType, rules) {
				out = append(out, domain.InvalidModelFile{NodeID: id, NodeType: nodeType, Path: f.Raw})
			}
		}
	}
	return out
}

func normalizeName(s string) string {
	return nameSeparators.Replace(strings.ToLower(s))
}

// urlSegment returns the last path segment of url before any query.
func urlSegment(url string) string {
	if i := strings.Index(url, "?"); i >= 0 {
		url = url[:i]
	}
	if i := strings.LastIndex(url, "/"); i >= 0 {
		return url[i+1:]
	}
	return url
}
