package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wfmodels/internal/core/domain"
)

func auditNodes(nodes ...*domain.Node) domain.ValidationStatus {
	rules := domain.DefaultDirectoryRules()
	return Audit(Extract(nodes, rules), rules)
}

func kinds(status domain.ValidationStatus) []domain.IssueKind {
	out := make([]domain.IssueKind, len(status.Issues))
	for i, issue := range status.Issues {
		out[i] = issue.Kind
	}
	return out
}

func TestAudit_Empty(t *testing.T) {
	status := auditNodes()

	assert.Equal(t, domain.LevelEmpty, status.Level())
	assert.Empty(t, status.Summary())
}

func TestAudit_AllValid(t *testing.T) {
	node := withModels(
		loaderNode(1, "LoraLoader", "a.safetensors"),
		domain.ModelEntry{Name: "a.safetensors", URL: "https://x/a.safetensors", Directory: "loras"},
	)

	status := auditNodes(node)

	assert.Empty(t, status.Issues)
	assert.Equal(t, domain.LevelOK, status.Level())
	assert.Equal(t, "All model configurations valid", status.Summary())
}

func TestAudit_MissingConfig(t *testing.T) {
	status := auditNodes(loaderNode(1, "LoraLoader", "a.safetensors", "b.safetensors"))

	assert.Equal(t, 2, status.MissingLinks)
	assert.Equal(t, []domain.IssueKind{domain.IssueMissingConfig}, kinds(status))
	assert.Equal(t, "Warning: 2 missing links", status.Summary())
}

func TestAudit_CountMismatch(t *testing.T) {
	node := withModels(
		loaderNode(1, "LoraLoader", "a.safetensors", "b.safetensors"),
		domain.ModelEntry{Name: "a.safetensors", URL: "https://x/a.safetensors", Directory: "loras"},
	)

	status := auditNodes(node)

	assert.Equal(t, 1, status.CountMismatch)
	assert.Contains(t, kinds(status), domain.IssueCountMismatch)
	assert.True(t, status.HasWarnings)
	assert.False(t, status.HasErrors)
}

func TestAudit_EntryChecks(t *testing.T) {
	node := withModels(
		loaderNode(1, "CheckpointLoaderSimple", "a.safetensors", "b.safetensors", "c.safetensors", "model.ckpt"),
		domain.ModelEntry{Name: "a.safetensors", URL: "", Directory: "checkpoints"},
		domain.ModelEntry{Name: "b.safetensors", URL: "ftp-less", Directory: "checkpoints"},
		domain.ModelEntry{Name: "c.safetensors", URL: "https://x/unrelated.bin", Directory: "checkpoints"},
		domain.ModelEntry{Name: "model.ckpt", URL: "https://x/model.ckpt", Directory: "checkpoints"},
	)

	status := auditNodes(node)

	assert.Equal(t, 1, status.MissingLinks)
	assert.Equal(t, 1, status.InvalidLinks)
	assert.Equal(t, 1, status.URLMismatch)
	assert.Equal(t, 1, status.FormatErrors)
	assert.Equal(t, 1, status.CountMismatch)
	assert.True(t, status.HasErrors)
	assert.Equal(t, domain.LevelError, status.Level())
	assert.Equal(t, "1 model format errors", status.Summary())

	var formatIssue domain.Issue
	for _, issue := range status.Issues {
		if issue.Kind == domain.IssueFormatError {
			formatIssue = issue
		}
	}
	assert.Equal(t, domain.SeverityError, formatIssue.Severity)
	assert.Equal(t, domain.NodeID(1), formatIssue.NodeID)
	assert.Equal(t, "CheckpointLoaderSimple", formatIssue.NodeType)
}

func TestAudit_NameNotInWidgets(t *testing.T) {
	node := withModels(
		loaderNode(1, "VAELoader", "ae.safetensors"),
		domain.ModelEntry{Name: "other.safetensors", URL: "https://x/other.safetensors", Directory: "vae"},
	)

	status := auditNodes(node)

	require.Len(t, status.Issues, 1)
	assert.Equal(t, domain.IssueNameNotInWidgets, status.Issues[0].Kind)
	assert.Equal(t, domain.SeverityWarning, status.Issues[0].Severity)
}

func TestAudit_SkipsNodesOutsideRules(t *testing.T) {
	status := auditNodes(loaderNode(1, "CustomLoader", "a.safetensors"))

	assert.Empty(t, status.Issues)
	assert.Equal(t, 1, status.Nodes)
	assert.Equal(t, domain.LevelOK, status.Level())
}

func TestNameInURL(t *testing.T) {
	tests := []struct {
		name  string
		model string
		url   string
		want  bool
	}{
		{"full name", "a.safetensors", "https://x/a.safetensors", true},
		{"encoded", "my model.safetensors", "https://x/my%20model.safetensors", true},
		{"first segment", "flux1_dev_fp8.safetensors", "https://x/flux1-dev.bin", true},
		{"short segment ignored", "sd_xl.safetensors", "https://x/sd-other", false},
		{"case sensitive", "Flux.safetensors", "https://x/flux.safetensors", false},
		{"bad escape falls back to raw", "a.safetensors", "https://x/%zz/a.safetensors", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nameInURL(tt.model, tt.url))
		})
	}
}
