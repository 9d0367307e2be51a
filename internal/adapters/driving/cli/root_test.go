package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wfmodels/internal/adapters/driven/codec/ojson"
	"github.com/custodia-labs/wfmodels/internal/adapters/driven/config/file"
	"github.com/custodia-labs/wfmodels/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/wfmodels/internal/core/domain"
	"github.com/custodia-labs/wfmodels/internal/core/ports/driving"
	"github.com/custodia-labs/wfmodels/internal/core/services"
	"github.com/custodia-labs/wfmodels/internal/normalisers"
)

const sampleWorkflow = `{
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

// brokenWorkflow persists a model whose name is not a model file.
const brokenWorkflow = `{
  "nodes": [
    {
      "id": 7,
      "type": "LoraLoader",
      "widgets_values": ["a.safetensors"],
      "properties": {
        "Node name for S&R": "LoraLoader",
        "models": [{"name": "a.ckpt", "url": "https://example.com/a.ckpt", "directory": "loras"}]
      }
    }
  ]
}`

// recordingClipboard remembers what was copied.
type recordingClipboard struct {
	text string
}

func (c *recordingClipboard) WriteText(text string) error {
	c.text = text
	return nil
}

// testEnv holds the real services wired into the command tree.
type testEnv struct {
	dir      string
	editor   *services.EditorService
	rules    *services.RuleService
	export   *services.ExportService
	settings *services.SettingsService
	config   *memory.ConfigStore
	clip     *recordingClipboard
}

func setupServices(t *testing.T) *testEnv {
	t.Helper()

	config := memory.NewConfigStore()
	rules := services.NewRuleService(memory.NewRuleStore(), config)
	codec := ojson.NewCodec()
	editor := services.NewEditorService(codec, rules, true)
	clip := &recordingClipboard{}

	env := &testEnv{
		dir:      t.TempDir(),
		editor:   editor,
		rules:    rules,
		export:   services.NewExportService(editor, file.NewFileStore(), clip, domain.DefaultExportName),
		settings: services.NewSettingsService(config),
		config:   config,
		clip:     clip,
	}

	SetServices(&Services{
		Editor:   env.editor,
		Rules:    env.rules,
		Export:   env.export,
		Settings: env.settings,
		NewEditor: func() driving.EditorService {
			return services.NewEditorService(codec, rules, true)
		},
		Links: normalisers.Default(),
	})
	resetFlags()
	t.Cleanup(func() {
		SetServices(nil)
		resetFlags()
	})
	return env
}

func resetFlags() {
	checkJSON = false
	positionsJSON = false
	rulesJSON = false
	rulesSave = false
	linkSource = ""
	linkOutput.reset()
	formatOutput.reset()
	editWatch = false
	editOutDir = "."
}

// writeFile creates a file in the test directory and returns its path.
func (e *testEnv) writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(e.dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// stubStdin makes stdin look like a terminal or a pipe.
func stubStdin(t *testing.T, terminal bool) {
	t.Helper()
	original := stdinIsTerminal
	stdinIsTerminal = func() bool { return terminal }
	t.Cleanup(func() { stdinIsTerminal = original })
}

// execute runs the root command and returns stdout and stderr.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCmd_RejectsExtraArgs(t *testing.T) {
	setupServices(t)

	_, _, err := execute(t, "", "a.json", "b.json")

	assert.Error(t, err)
}

func TestSetServices_Nil(t *testing.T) {
	setupServices(t)

	SetServices(nil)

	assert.Nil(t, editorService)
	assert.Nil(t, ruleService)
	assert.Error(t, requireEditor())
}

func TestSetVersion(t *testing.T) {
	original := version
	defer func() { version = original }()

	SetVersion("")
	assert.Equal(t, original, version)

	SetVersion("1.2.3")
	assert.Equal(t, "1.2.3", version)
}

func TestReadInput(t *testing.T) {
	env := setupServices(t)
	path := env.writeFile(t, "links.txt", "https://x/a.safetensors")

	t.Run("reads a file", func(t *testing.T) {
		text, err := readInput(rootCmd, path)
		require.NoError(t, err)
		assert.Equal(t, "https://x/a.safetensors", text)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := readInput(rootCmd, filepath.Join(env.dir, "missing.txt"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("reads piped stdin", func(t *testing.T) {
		stubStdin(t, false)
		rootCmd.SetIn(strings.NewReader("piped"))
		defer rootCmd.SetIn(nil)

		text, err := readInput(rootCmd, stdinArg)
		require.NoError(t, err)
		assert.Equal(t, "piped", text)
	})

	t.Run("terminal stdin is rejected", func(t *testing.T) {
		stubStdin(t, true)

		_, err := readInput(rootCmd, stdinArg)
		assert.ErrorIs(t, err, ErrNoStdin)
	})
}

func TestLineNumber(t *testing.T) {
	assert.Equal(t, "-", lineNumber(domain.NoLine))
	assert.Equal(t, "1", lineNumber(0))
	assert.Equal(t, "12", lineNumber(11))
}
