package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wfmodels/internal/core/domain"
)

func TestEditCmd_Flags(t *testing.T) {
	for _, name := range []string{"watch", "out"} {
		assert.NotNil(t, editCmd.Flags().Lookup(name), name)
		assert.NotNil(t, rootCmd.Flags().Lookup(name), name)
	}
	assert.Equal(t, "w", editCmd.Flags().Lookup("watch").Shorthand)
}

func TestNewEditApp(t *testing.T) {
	t.Run("without a file", func(t *testing.T) {
		env := setupServices(t)

		app, err := newEditApp(nil)

		require.NoError(t, err)
		assert.NotNil(t, app)
		assert.False(t, env.editor.Loaded())
	})

	t.Run("opens the file", func(t *testing.T) {
		env := setupServices(t)
		path := env.writeFile(t, "flux.json", sampleWorkflow)

		app, err := newEditApp([]string{path})

		require.NoError(t, err)
		assert.NotNil(t, app)
		assert.True(t, env.editor.Loaded())
		assert.Equal(t, "flux.json", env.export.FileName())
	})

	t.Run("watch needs a file", func(t *testing.T) {
		setupServices(t)
		editWatch = true

		_, err := newEditApp(nil)

		assert.ErrorContains(t, err, "--watch")
	})

	t.Run("missing file", func(t *testing.T) {
		env := setupServices(t)

		_, err := newEditApp([]string{filepath.Join(env.dir, "missing.json")})

		assert.Error(t, err)
	})

	t.Run("not a JSON file", func(t *testing.T) {
		env := setupServices(t)
		path := env.writeFile(t, "flux.txt", sampleWorkflow)

		_, err := newEditApp([]string{path})

		assert.ErrorIs(t, err, domain.ErrNotJSONFile)
	})

	t.Run("services not configured", func(t *testing.T) {
		setupServices(t)
		SetServices(nil)

		_, err := newEditApp(nil)

		assert.Error(t, err)
	})
}
