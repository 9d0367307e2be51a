package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wfmodels/internal/core/domain"
)

func TestLooksLikeFileName(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"model.safetensors", true},
		{"model.ckpt", true},
		{"randomize", false},
		{"default", false},
		{"None", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, LooksLikeFileName(tt.value))
		})
	}
}

func TestExtract(t *testing.T) {
	rules := domain.DefaultDirectoryRules()

	t.Run("finds model loader nodes in order", func(t *testing.T) {
		doc := decodeSample(t, sampleWorkflow)

		contexts := Extract(doc.Nodes(), rules)

		require.Len(t, contexts, 3)
		ids := make([]domain.NodeID, len(contexts))
		for i, c := range contexts {
			ids[i], _ = c.Node.ID()
		}
		assert.Equal(t, []domain.NodeID{1, 2, 4}, ids)
	})

	t.Run("collects candidate files with base names", func(t *testing.T) {
		doc := decodeSample(t, sampleWorkflow)

		contexts := Extract(doc.Nodes(), rules)

		lora := contexts[1]
		assert.True(t, lora.IsNodeTypeInRules)
		assert.Equal(t, []string{"loras/a.safetensors", "b.safetensors"}, lora.Files())
		assert.Equal(t, "a.safetensors", lora.ModelFiles[0].Base)
		require.Len(t, lora.ExistingModels, 1)
		assert.Equal(t, "a.safetensors", lora.ExistingModels[0].Name)
	})

	t.Run("unknown node types need a model extension", func(t *testing.T) {
		doc := decodeSample(t, sampleWorkflow)

		contexts := Extract(doc.Nodes(), rules)

		custom := contexts[2]
		assert.False(t, custom.IsNodeTypeInRules)
		assert.Equal(t, []string{"my.sft"}, custom.Files())
	})

	t.Run("known node types accept any file name", func(t *testing.T) {
		node := loaderNode(5, "CheckpointLoaderSimple", "v1-5-pruned.ckpt", "default")

		contexts := Extract([]*domain.Node{node}, rules)

		require.Len(t, contexts, 1)
		assert.Equal(t, []string{"v1-5-pruned.ckpt"}, contexts[0].Files())
		assert.True(t, contexts[0].ModelFiles[0].Valid)
	})

	t.Run("extension anywhere in the value is accepted", func(t *testing.T) {
		node := loaderNode(6, "Unknown", "a.safetensors.bak")

		contexts := Extract([]*domain.Node{node}, rules)

		require.Len(t, contexts, 1)
		assert.False(t, contexts[0].ModelFiles[0].Valid)
	})

	t.Run("skips nodes that are not model loaders", func(t *testing.T) {
		node := domain.NewNode(map[string]any{
			"id":             int64(7),
			"type":           "LoraLoader",
			"widgets_values": []any{"a.safetensors"},
			"properties":     map[string]any{domain.KeyNodeName: ""},
		})

		assert.Empty(t, Extract([]*domain.Node{node}, rules))
	})

	t.Run("skips nodes without widgets_values", func(t *testing.T) {
		node := domain.NewNode(map[string]any{
			"id":         int64(8),
			"type":       "LoraLoader",
			"properties": map[string]any{domain.KeyNodeName: "LoraLoader"},
		})

		assert.Empty(t, Extract([]*domain.Node{node}, rules))
	})

	t.Run("skips loaders with no candidates", func(t *testing.T) {
		node := loaderNode(9, "KSampler", int64(42), "randomize")

		assert.Empty(t, Extract([]*domain.Node{node}, rules))
	})

	t.Run("nil rules only accept model extensions", func(t *testing.T) {
		node := loaderNode(10, "LoraLoader", "a.safetensors", "b.ckpt")

		contexts := Extract([]*domain.Node{node}, nil)

		require.Len(t, contexts, 1)
		assert.False(t, contexts[0].IsNodeTypeInRules)
		assert.Equal(t, []string{"a.safetensors"}, contexts[0].Files())
	})
}

func TestExtract_Deterministic(t *testing.T) {
	rules := domain.DefaultDirectoryRules()
	doc := decodeSample(t, sampleWorkflow)

	first := Extract(doc.Nodes(), rules)
	second := Extract(doc.Nodes(), rules)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Same(t, first[i].Node, second[i].Node)
		assert.Equal(t, first[i].ModelFiles, second[i].ModelFiles)
		assert.Equal(t, first[i].ExistingModels, second[i].ExistingModels)
		assert.Equal(t, first[i].IsNodeTypeInRules, second[i].IsNodeTypeInRules)
	}
}

func TestFirstDottedString(t *testing.T) {
	got, ok := firstDottedString([]any{int64(1), "  ", "plain", "file.bin", "other.bin"})
	assert.True(t, ok)
	assert.Equal(t, "file.bin", got)

	_, ok = firstDottedString([]any{"plain", 3.5})
	assert.False(t, ok)
}
