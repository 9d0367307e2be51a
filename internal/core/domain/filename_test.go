package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBaseName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"model.safetensors", "model.safetensors"},
		{"sdxl/model.safetensors", "model.safetensors"},
		{`sdxl\loras\model.safetensors`, "model.safetensors"},
		{"dir/", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, BaseName(tt.path))
		})
	}
}

func TestHasModelExtension(t *testing.T) {
	assert.True(t, HasModelExtension("foo.safetensors"))
	assert.True(t, HasModelExtension("FOO.SFT"))
	assert.False(t, HasModelExtension("foo.ckpt"))
	assert.False(t, HasModelExtension("foo.safetensors.bak"))
}

func TestContainsModelExtension(t *testing.T) {
	assert.True(t, ContainsModelExtension("foo.safetensors.bak"))
	assert.True(t, ContainsModelExtension("x.SFT"))
	assert.False(t, ContainsModelExtension("foo.pt"))
}

func TestStripModelExtension(t *testing.T) {
	assert.Equal(t, "flux-dev", StripModelExtension("flux-dev.safetensors"))
	assert.Equal(t, "ae", StripModelExtension("ae.SFT"))
	assert.Equal(t, "foo.ckpt", StripModelExtension("foo.ckpt"))
}

func TestHasFolder(t *testing.T) {
	assert.True(t, HasFolder("a/b"))
	assert.True(t, HasFolder(`a\b`))
	assert.False(t, HasFolder("ab"))
}
