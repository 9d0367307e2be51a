package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtensions(t *testing.T) {
	assert.Contains(t, New().Extensions(), ".md")
}

func TestNormalise(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		contains []string
		excludes []string
	}{
		{
			name:     "inline link",
			content:  "Get the [VAE](https://cdn.example.com/ae.sft) here.",
			contains: []string{"VAE https://cdn.example.com/ae.sft "},
			excludes: []string{"](", "[VAE]"},
		},
		{
			name:     "link with title",
			content:  `[lora](https://cdn.example.com/style.safetensors "Style LoRA")`,
			contains: []string{"lora https://cdn.example.com/style.safetensors"},
			excludes: []string{"Style LoRA"},
		},
		{
			name:     "image link",
			content:  "![preview](https://cdn.example.com/preview.png)",
			contains: []string{"preview https://cdn.example.com/preview.png"},
			excludes: []string{"!["},
		},
		{
			name:     "autolink",
			content:  "<https://cdn.example.com/model.safetensors>",
			contains: []string{"https://cdn.example.com/model.safetensors"},
			excludes: []string{"<", ">"},
		},
		{
			name:     "reference definition",
			content:  "See [the model][1].\n\n[1]: https://cdn.example.com/ref.safetensors",
			contains: []string{"https://cdn.example.com/ref.safetensors"},
			excludes: []string{"[1]:"},
		},
		{
			name:     "code block content kept",
			content:  "```\nhttps://cdn.example.com/in_code.safetensors\n```",
			contains: []string{"https://cdn.example.com/in_code.safetensors"},
			excludes: []string{"```"},
		},
		{
			name:     "underscores survive",
			content:  "- https://cdn.example.com/sd_xl_base_1.0.safetensors",
			contains: []string{"https://cdn.example.com/sd_xl_base_1.0.safetensors"},
		},
		{
			name:     "headings and quotes",
			content:  "## Models\n> **note** read this",
			contains: []string{"Models\nnote read this"},
			excludes: []string{"##", "**"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := New().Normalise(tt.content)
			for _, s := range tt.contains {
				assert.Contains(t, result, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, result, s)
			}
		})
	}
}
