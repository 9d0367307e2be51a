package services

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/wfmodels/internal/core/domain"
)

// placeholderValue matches widget values that are configuration words
// rather than file names.
var placeholderValue = regexp.MustCompile(
	`(?i)^(default|none|empty|null|undefined|clip|checkpoint|controlnet|diffusers|lora|vae)$`)

// LooksLikeFileName reports whether a widget value could name a file:
// it contains a dot and is not a placeholder word.
func LooksLikeFileName(value string) bool {
	return strings.Contains(value, ".") && !placeholderValue.MatchString(value)
}

// Extract finds the model loader nodes that reference model files.
// Output preserves node order and holds one context per node.
func Extract(nodes []*domain.Node, rules domain.DirectoryRules) []domain.NodeEditContext {
	var contexts []domain.NodeEditContext

	for _, node := range nodes {
		values, ok := node.WidgetsValues()
		if !ok || !node.IsModelLoader() {
			continue
		}

		nodeType := node.Type()
		inRules := rules != nil && rules.Has(nodeType)

		files := candidateFiles(values, inRules)
		if len(files) == 0 && inRules {
			if fallback, found := firstDottedString(values); found {
				files = []string{fallback}
			}
		}
		if len(files) == 0 {
			continue
		}

		refs := make([]domain.ModelFileReference, len(files))
		for i, f := range files {
			refs[i] = NewFileReference(f, nodeType, rules)
		}

		contexts = append(contexts, domain.NodeEditContext{
			Node:              node,
			ExistingModels:    node.ExistingModels(),
			ModelFiles:        refs,
			IsNodeTypeInRules: inRules,
		})
	}

	return contexts
}

// NewFileReference derives a file reference from a widget value.
func NewFileReference(raw, nodeType string, rules domain.DirectoryRules) domain.ModelFileReference {
	return domain.ModelFileReference{
		Raw:   raw,
		Base:  domain.BaseName(raw),
		Valid: IsValidExtension(raw, nodeType, rules),
	}
}

// candidateFiles applies the model file heuristics to widget values.
// A model extension anywhere in the value is accepted unconditionally.
// Known node types also accept anything that looks like a file name.
func candidateFiles(values []any, inRules bool) []string {
	var files []string
	for _, v := range values {
		s, ok := v.(string)
		if !ok || s == "" {
			continue
		}
		switch {
		case domain.ContainsModelExtension(s):
			files = append(files, s)
		case inRules && LooksLikeFileName(s) && strings.TrimSpace(s) != "":
			files = append(files, s)
		}
	}
	return files
}

// firstDottedString returns the first non-blank string containing a dot.
func firstDottedString(values []any) (string, bool) {
	for _, v := range values {
		s, ok := v.(string)
		if ok && strings.TrimSpace(s) != "" && strings.Contains(s, ".") {
			return s, true
		}
	}
	return "", false
}
