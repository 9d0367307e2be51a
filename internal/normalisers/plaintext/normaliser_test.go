package plaintext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtensions(t *testing.T) {
	assert.Contains(t, New().Extensions(), ".txt")
}

func TestNormalise(t *testing.T) {
	assert.Equal(t, "a\nb", New().Normalise("\r\na\r\nb\r\n"))
	assert.Empty(t, New().Normalise("  "))
}
