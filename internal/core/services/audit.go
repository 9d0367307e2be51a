package services

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/custodia-labs/wfmodels/internal/core/domain"
)

// Audit runs the document-wide validation pass over the persisted models
// of every model loader node whose type is in the rule table.
func Audit(contexts []domain.NodeEditContext, rules domain.DirectoryRules) domain.ValidationStatus {
	status := domain.ValidationStatus{Nodes: len(contexts)}

	for _, ctx := range contexts {
		if !ctx.IsNodeTypeInRules {
			continue
		}
		auditNode(&status, ctx)
	}

	return status
}

func auditNode(status *domain.ValidationStatus, ctx domain.NodeEditContext) {
	node := ctx.Node
	id, _ := node.ID()
	nodeType := node.Type()
	issue := func(kind domain.IssueKind, format string, args ...any) domain.Issue {
		return domain.Issue{NodeID: id, NodeType: nodeType, Kind: kind, Message: fmt.Sprintf(format, args...)}
	}

	validFiles := 0
	for _, f := range ctx.ModelFiles {
		if IsValidExtension(f.Raw, "", nil) {
			validFiles++
		}
	}

	if !node.HasModelsArray() {
		if validFiles > 0 {
			status.MissingLinks += validFiles
			status.Warn(issue(domain.IssueMissingConfig,
				"Node %s (%s) has %d valid model files, but no model configuration", id, nodeType, validFiles))
		}
		return
	}

	models := node.ExistingModels()
	if validFiles != len(models) {
		status.CountMismatch++
		status.Warn(issue(domain.IssueCountMismatch,
			"Node %s (%s) has %d valid model files, but has %d model configurations",
			id, nodeType, validFiles, len(models)))
	}

	for _, m := range models {
		if !nameInWidgets(m.Name, ctx.ModelFiles) {
			status.Warn(issue(domain.IssueNameNotInWidgets,
				"Model %q in node %s (%s) not found in widgets_values", m.Name, id, nodeType))
		}

		if !domain.HasModelExtension(m.Name) {
			status.FormatErrors++
			status.Error(issue(domain.IssueFormatError,
				"Model %q in node %s (%s) is not .safetensors or .sft format", m.Name, id, nodeType))
		}

		switch {
		case strings.TrimSpace(m.URL) == "":
			status.MissingLinks++
			status.Warn(issue(domain.IssueMissingLink, "Model %q in node %s has no URL", m.Name, id))
		case !strings.Contains(m.URL, "http"):
			status.InvalidLinks++
			status.Warn(issue(domain.IssueInvalidLink, "Model %q in node %s has an invalid URL", m.Name, id))
		case !nameInURL(m.Name, m.URL):
			status.URLMismatch++
			status.Warn(issue(domain.IssueURLMismatch,
				"Model %q in node %s (%s) URL does not contain model name", m.Name, id, nodeType))
		}
	}
}

// nameInWidgets reports whether name equals a candidate's base name or raw value.
func nameInWidgets(name string, files []domain.ModelFileReference) bool {
	for _, f := range files {
		if f.Base == name || f.Raw == name {
			return true
		}
	}
	return false
}

// nameInURL reports whether the decoded URL mentions the model name, or
// failing that the first segment of the name when longer than 3 characters.
func nameInURL(name, rawURL string) bool {
	decoded, err := url.PathUnescape(rawURL)
	if err != nil {
		decoded = rawURL
	}
	if strings.Contains(decoded, name) {
		return true
	}

	base := domain.StripModelExtension(name)
	if i := strings.IndexAny(base, "_-."); i >= 0 {
		base = base[:i]
	}
	return len(base) > 3 && strings.Contains(decoded, base)
}
