package rules

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wfmodels/internal/adapters/driven/codec/ojson"
	"github.com/custodia-labs/wfmodels/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/wfmodels/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/wfmodels/internal/core/domain"
	"github.com/custodia-labs/wfmodels/internal/core/services"
)

const workflow = `{"nodes": [
  {"id": 1, "type": "CheckpointLoaderSimple",
   "widgets_values": ["sd_xl_base_1.0.safetensors"],
   "properties": {"Node name for S&R": "CheckpointLoaderSimple"}}
]}`

type fixture struct {
	view   *View
	rules  *services.RuleService
	editor *services.EditorService
	config *memory.ConfigStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	config := memory.NewConfigStore()
	rules := services.NewRuleService(memory.NewRuleStore(), config)
	editor := services.NewEditorService(ojson.NewCodec(), rules, true)
	require.NoError(t, editor.Load(workflow))

	view := NewView(nil, nil, rules, editor)
	view.SetDimensions(120, 60)
	view.Init()
	return &fixture{view: view, rules: rules, editor: editor, config: config}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send delivers a message without running the returned command, which
// may be a cursor blink.
func (f *fixture) send(msg tea.Msg) tea.Cmd {
	_, cmd := f.view.Update(msg)
	return cmd
}

func (f *fixture) run(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	out := cmd()
	f.view.Update(out)
	return out
}

// clear empties the input.
func (f *fixture) clear() {
	f.send(tea.KeyMsg{Type: tea.KeyCtrlU})
}

func entryDirectory(t *testing.T, editor *services.EditorService) string {
	t.Helper()
	nodes := editor.Nodes()
	require.Len(t, nodes, 1)
	require.Len(t, nodes[0].Entries, 1)
	return nodes[0].Entries[0].Model.Directory
}

func TestNewView_Defaults(t *testing.T) {
	view := NewView(nil, nil, nil, nil)

	require.NotNil(t, view)
	assert.Nil(t, view.Init())
	_, ok := view.SelectedRule()
	assert.False(t, ok)
	assert.Equal(t, "Initialising...", view.View())
}

func TestView_ListsRules(t *testing.T) {
	f := newFixture(t)

	rule, ok := f.view.SelectedRule()
	require.True(t, ok)
	assert.Equal(t, f.rules.List()[0], rule)

	out := f.view.View()
	assert.Contains(t, out, "Directory Rules")
	assert.Contains(t, out, "CheckpointLoaderSimple")
	assert.Contains(t, out, "→ checkpoints")
}

func TestView_EditDirectory(t *testing.T) {
	f := newFixture(t)
	f.view.Select("CheckpointLoaderSimple")

	f.send(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, f.view.Editing())
	assert.Equal(t, "Directory", f.view.InputLabel())
	assert.Equal(t, "checkpoints", f.view.InputValue())

	f.clear()
	f.send(runes("ckpt"))
	out := f.run(t, f.send(tea.KeyMsg{Type: tea.KeyEnter}))

	assert.Equal(t, messages.RulesChanged{Notice: "CheckpointLoaderSimple → ckpt"}, out)
	assert.False(t, f.view.Editing())
	assert.Equal(t, "ckpt", f.rules.DirectoryFor("CheckpointLoaderSimple"))
	assert.Equal(t, "ckpt", entryDirectory(t, f.editor))
	assert.Contains(t, f.view.View(), "→ ckpt")
}

func TestView_AddRule(t *testing.T) {
	f := newFixture(t)

	f.send(runes("a"))
	require.True(t, f.view.Editing())
	assert.Equal(t, "Node type", f.view.InputLabel())

	f.send(tea.KeyMsg{Type: tea.KeyEnter})
	assert.ErrorIs(t, f.view.Err(), domain.ErrInvalidInput)
	assert.True(t, f.view.Editing())

	f.send(runes("MyLoader"))
	assert.Nil(t, f.send(tea.KeyMsg{Type: tea.KeyEnter}))
	assert.NoError(t, f.view.Err())
	assert.Equal(t, "Directory", f.view.InputLabel())

	f.send(runes("mine"))
	f.run(t, f.send(tea.KeyMsg{Type: tea.KeyEnter}))

	assert.Equal(t, "mine", f.rules.DirectoryFor("MyLoader"))
	assert.Equal(t, "MyLoader → mine", f.view.Notice())
}

func TestView_Rename(t *testing.T) {
	f := newFixture(t)
	f.view.Select("LoraLoader")

	f.send(runes("n"))
	require.True(t, f.view.Editing())
	assert.Equal(t, "LoraLoader", f.view.InputValue())

	f.send(runes("V2"))
	f.run(t, f.send(tea.KeyMsg{Type: tea.KeyEnter}))

	assert.False(t, f.rules.Has("LoraLoader"))
	assert.Equal(t, "loras", f.rules.DirectoryFor("LoraLoaderV2"))
	assert.Equal(t, "Renamed LoraLoader to LoraLoaderV2", f.view.Notice())
}

func TestView_DeleteAndReset(t *testing.T) {
	f := newFixture(t)
	total := len(f.rules.List())
	f.view.Select("VAELoader")

	f.run(t, f.send(runes("d")))
	assert.False(t, f.rules.Has("VAELoader"))
	assert.Equal(t, "Removed VAELoader", f.view.Notice())
	assert.Len(t, f.rules.List(), total-1)

	f.run(t, f.send(runes("R")))
	assert.True(t, f.rules.Has("VAELoader"))
	assert.Equal(t, "Rules reset", f.view.Notice())
}

func TestView_Persist(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.rules.Set("CustomLoader", "custom"))

	f.run(t, f.send(runes("w")))

	assert.Equal(t, "Rules saved to config", f.view.Notice())
	assert.Equal(t, map[string]string{"CustomLoader": "custom"}, f.config.GetStringMap("directory_rules"))
}

func TestView_PersistWithoutConfig(t *testing.T) {
	rules := services.NewRuleService(memory.NewRuleStore(), nil)
	view := NewView(nil, nil, rules, nil)
	view.SetDimensions(100, 40)

	_, cmd := view.Update(runes("w"))
	out := cmd()
	view.Update(out)

	assert.ErrorIs(t, view.Err(), domain.ErrInvalidInput)
	assert.Contains(t, view.View(), "invalid input")
}

func TestView_EscapeCancelsEdit(t *testing.T) {
	f := newFixture(t)

	f.send(runes("a"))
	require.True(t, f.view.Editing())

	assert.Nil(t, f.send(tea.KeyMsg{Type: tea.KeyEscape}))
	assert.False(t, f.view.Editing())

	cmd := f.send(tea.KeyMsg{Type: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestView_NoServiceIgnoresEdits(t *testing.T) {
	view := NewView(nil, nil, nil, nil)

	_, cmd := view.Update(runes("R"))

	assert.Nil(t, cmd)
	assert.False(t, view.Editing())
}
