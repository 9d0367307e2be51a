package clipboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystem_WriteText(t *testing.T) {
	var got string
	c := &System{write: func(s string) error { got = s; return nil }}

	require.NoError(t, c.WriteText("{}"))
	assert.Equal(t, "{}", got)
}

func TestSystem_Unsupported(t *testing.T) {
	c := &System{write: func(string) error { return nil }, unsupported: true}
	assert.ErrorIs(t, c.WriteText("x"), ErrUnsupported)
}

func TestNew(t *testing.T) {
	c := New()
	require.NotNil(t, c)
	assert.NotNil(t, c.write)
}
