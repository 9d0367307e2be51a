package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wfmodels/internal/adapters/driving/mcp"
)

func TestMCPServeCmd_Flags(t *testing.T) {
	flag := mcpServeCmd.Flags().Lookup("port")
	require.NotNil(t, flag)
	assert.Equal(t, "p", flag.Shorthand)
	assert.Equal(t, "0", flag.DefValue)
}

func TestNewMCPServer(t *testing.T) {
	t.Run("with services", func(t *testing.T) {
		setupServices(t)

		server, err := newMCPServer()

		require.NoError(t, err)
		assert.NotNil(t, server)
	})

	t.Run("without an editor factory", func(t *testing.T) {
		setupServices(t)
		SetServices(nil)

		_, err := newMCPServer()

		assert.ErrorIs(t, err, mcp.ErrMissingEditorFactory)
	})
}
