package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wfmodels/internal/adapters/driven/codec/ojson"
	"github.com/custodia-labs/wfmodels/internal/core/domain"
)

// sampleWorkflow has three model loader nodes with candidate files (1, 2
// and 4) and one sampler node that carries none.
const sampleWorkflow = `{
  "last_node_id": 4,
  "nodes": [
    {
      "id": 1,
      "type": "CheckpointLoaderSimple",
      "widgets_values": ["sd_xl_base_1.0.safetensors"],
      "properties": {"Node name for S&R": "CheckpointLoaderSimple"}
    },
    {
      "id": 2,
      "type": "LoraLoader",
      "widgets_values": ["loras/a.safetensors", "b.safetensors", 1.0, 0.8],
      "properties": {
        "Node name for S&R": "LoraLoader",
        "models": [
          {"name": "a.safetensors", "url": "https://example.com/a.safetensors", "directory": "loras"}
        ]
      }
    },
    {
      "id": 3,
      "type": "KSampler",
      "widgets_values": [42, "randomize", 20, 8.0, "euler"],
      "properties": {"Node name for S&R": "KSampler"}
    },
    {
      "id": 4,
      "type": "CustomLoader",
      "widgets_values": ["weights.ckpt", "my.sft"],
      "properties": {"Node name for S&R": "CustomLoader"}
    }
  ]
}`

// loaderNode builds a model loader node for extraction tests.
func loaderNode(id int64, nodeType string, values ...any) *domain.Node {
	return domain.NewNode(map[string]any{
		"id":             id,
		"type":           nodeType,
		"widgets_values": values,
		"properties":     map[string]any{domain.KeyNodeName: nodeType},
	})
}

// withModels attaches persisted models to a node.
func withModels(n *domain.Node, models ...domain.ModelEntry) *domain.Node {
	n.SetModels(models)
	return n
}

func decodeSample(t *testing.T, text string) *domain.Document {
	t.Helper()
	doc, err := ojson.NewCodec().Decode(text)
	require.NoError(t, err)
	return doc
}

func newTestEditor(t *testing.T, autoUpdate bool) *EditorService {
	t.Helper()
	editor := NewEditorService(ojson.NewCodec(), domain.DefaultDirectoryRules(), autoUpdate)
	require.NoError(t, editor.Load(sampleWorkflow))
	return editor
}

func entryByName(entries []domain.EditableEntry, name string) (domain.EditableEntry, bool) {
	for _, e := range entries {
		if e.Model.Name == name {
			return e, true
		}
	}
	return domain.EditableEntry{}, false
}
