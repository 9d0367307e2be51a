package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wfmodels/internal/core/domain"
)

func TestExtractNodeType(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{
			name:     "valid rule URI",
			uri:      "wfmodels://rules/LoraLoader",
			expected: "LoraLoader",
		},
		{
			name:     "invalid prefix",
			uri:      "file://rules/LoraLoader",
			expected: "",
		},
		{
			name:     "nested path",
			uri:      "wfmodels://rules/LoraLoader/extra",
			expected: "",
		},
		{
			name:     "empty URI",
			uri:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractNodeType(tt.uri))
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleRulesResource(t *testing.T) {
	server := newTestServer(t)

	result, err := server.handleRulesResource(context.Background(), makeReadResourceRequest("wfmodels://rules"))

	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Equal(t, "application/json", result.Contents[0].MIMEType)

	var rules []domain.DirectoryRule
	require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &rules))
	assert.Len(t, rules, len(domain.DefaultDirectoryRules()))
	assert.Contains(t, rules, domain.DirectoryRule{NodeType: "LoraLoader", Directory: "loras"})
}

func TestServer_handleRuleResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the rule", func(t *testing.T) {
		server := newTestServer(t)

		result, err := server.handleRuleResource(ctx, makeReadResourceRequest("wfmodels://rules/CheckpointLoaderSimple"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Contains(t, result.Contents[0].Text, `"directory": "checkpoints"`)
	})

	t.Run("unknown node type is not found", func(t *testing.T) {
		server := newTestServer(t)

		result, err := server.handleRuleResource(ctx, makeReadResourceRequest("wfmodels://rules/KSampler"))

		require.Error(t, err)
		assert.Nil(t, result)
	})

	t.Run("malformed URI is not found", func(t *testing.T) {
		server := newTestServer(t)

		_, err := server.handleRuleResource(ctx, makeReadResourceRequest("wfmodels://other"))

		require.Error(t, err)
	})
}

func TestServer_handleExtensionsResource(t *testing.T) {
	server := newTestServer(t)

	result, err := server.handleExtensionsResource(context.Background(), makeReadResourceRequest("wfmodels://extensions"))

	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Contains(t, result.Contents[0].Text, ".safetensors")
	assert.Contains(t, result.Contents[0].Text, ".sft")
}
