package open

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

func newView(t *testing.T) (*View, *services.EditorService, *memory.FileStore) {
	t.Helper()
	editor := services.NewEditorService(ojson.NewCodec(), domain.DefaultDirectoryRules(), true)
	files := memory.NewFileStore()
	export := services.NewExportService(editor, files, nil, "")
	view := NewView(nil, nil, export)
	view.SetDimensions(100, 30)
	return view, editor, files
}

func enter(view *View) tea.Msg {
	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		return nil
	}
	msg := cmd()
	view.Update(msg)
	return msg
}

func TestView_Open(t *testing.T) {
	view, editor, files := newView(t)
	require.NoError(t, files.WriteFile("wf/flux.json", `{"nodes": []}`))
	view.SetValue(" wf/flux.json ")

	msg := enter(view)

	assert.Equal(t, messages.DocumentLoaded{FileName: "flux.json"}, msg)
	assert.True(t, editor.Loaded())
	assert.NoError(t, view.Err())
}

func TestView_Open_Errors(t *testing.T) {
	view, editor, files := newView(t)

	view.SetValue("notes.txt")
	enter(view)
	assert.ErrorIs(t, view.Err(), domain.ErrNotJSONFile)
	assert.Contains(t, view.View(), view.Err().Error())

	require.NoError(t, files.WriteFile("bad.json", "{"))
	view.SetValue("bad.json")
	enter(view)
	assert.ErrorIs(t, view.Err(), domain.ErrParse)
	assert.False(t, editor.Loaded())
}

func TestView_Open_EmptyPath(t *testing.T) {
	view, _, _ := newView(t)

	assert.Nil(t, enter(view))
}

func TestView_Open_NoExport(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.SetValue("a.json")

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, messages.DocumentLoaded{Err: errNoExport}, cmd())
}

func TestView_Escape(t *testing.T) {
	view, _, _ := newView(t)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEscape})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestView_Reset(t *testing.T) {
	view, _, _ := newView(t)
	view.SetValue("missing.json")
	enter(view)
	require.Error(t, view.Err())

	view.Reset()

	assert.NoError(t, view.Err())
	assert.Nil(t, enter(view))
	assert.Equal(t, "Initialising...", NewView(nil, nil, nil).View())
}
