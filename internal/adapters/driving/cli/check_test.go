package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wfmodels/internal/core/domain"
)

func TestCheckCmd_Text(t *testing.T) {
	env := setupServices(t)
	path := env.writeFile(t, "flux.json", sampleWorkflow)

	stdout, _, err := execute(t, "", "check", path)

	require.NoError(t, err)
	assert.Contains(t, stdout, "#1 CheckpointLoaderSimple")
	assert.Contains(t, stdout, "#2 LoraLoader")
	assert.Contains(t, stdout, "[valid] a.safetensors  https://example.com/a.safetensors  → loras")
	assert.Contains(t, stdout, "Entries: 4 total, 1 valid, 3 missing URL, 0 URL errors")
	assert.Contains(t, stdout, "Audit: Warning:")
	assert.NotContains(t, stdout, "KSampler")
}

func TestCheckCmd_JSON(t *testing.T) {
	env := setupServices(t)
	path := env.writeFile(t, "flux.json", sampleWorkflow)

	stdout, _, err := execute(t, "", "check", path, "--json")
	require.NoError(t, err)

	var report checkReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Len(t, report.Nodes, 3)
	assert.Equal(t, 4, report.Stats.Total)
	assert.Equal(t, domain.LevelWarning, report.Level)
	assert.NotEmpty(t, report.Audit.Issues)
}

func TestCheckCmd_FailsOnFormatErrors(t *testing.T) {
	env := setupServices(t)
	path := env.writeFile(t, "broken.json", brokenWorkflow)

	stdout, _, err := execute(t, "", "check", path)

	assert.ErrorIs(t, err, ErrAuditFailed)
	assert.Contains(t, stdout, "1 model format errors")
}

func TestCheckCmd_Stdin(t *testing.T) {
	setupServices(t)
	stubStdin(t, false)

	stdout, _, err := execute(t, sampleWorkflow, "check", "-")

	require.NoError(t, err)
	assert.Contains(t, stdout, "#2 LoraLoader")
}

func TestCheckCmd_Errors(t *testing.T) {
	t.Run("not a JSON file", func(t *testing.T) {
		env := setupServices(t)
		path := env.writeFile(t, "notes.txt", sampleWorkflow)

		_, _, err := execute(t, "", "check", path)
		assert.ErrorIs(t, err, domain.ErrNotJSONFile)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		env := setupServices(t)
		path := env.writeFile(t, "bad.json", "{nodes:")

		_, _, err := execute(t, "", "check", path)
		assert.ErrorIs(t, err, domain.ErrParse)
	})

	t.Run("services not configured", func(t *testing.T) {
		setupServices(t)
		SetServices(nil)

		_, _, err := execute(t, "", "check", "x.json")
		assert.Error(t, err)
	})
}
