package status

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wfmodels/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/wfmodels/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/wfmodels/internal/core/domain"
)

func TestNewBar(t *testing.T) {
	bar := NewBar(styles.DefaultStyles(), keymap.DefaultKeyMap())

	require.NotNil(t, bar)
	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, 80, bar.Width())
	assert.Empty(t, bar.Message())
}

func TestNewBar_NilDependencies(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.NotNil(t, bar.styles)
	assert.NotNil(t, bar.keymap)
}

func TestBar_InitAndUpdate(t *testing.T) {
	bar := NewBar(nil, nil)

	assert.Nil(t, bar.Init())
	updated, cmd := bar.Update(nil)
	assert.Equal(t, bar, updated)
	assert.Nil(t, cmd)
}

func TestBar_View_Ready(t *testing.T) {
	bar := NewBar(nil, nil)

	view := bar.View()

	assert.Contains(t, view, "Ready")
	assert.Contains(t, view, "esc: back")
	assert.NotContains(t, view, "entries")
}

func TestBar_SetNotice(t *testing.T) {
	bar := NewBar(nil, nil)

	bar.SetNotice("Saved out/flux.json")

	assert.Equal(t, StateNotice, bar.State())
	assert.Contains(t, bar.View(), "Saved out/flux.json")
}

func TestBar_SetError(t *testing.T) {
	bar := NewBar(nil, nil)

	bar.SetError(nil)
	assert.Equal(t, StateReady, bar.State())

	bar.SetError(errors.New("disk full"))
	assert.Equal(t, StateError, bar.State())
	assert.Contains(t, bar.View(), "Error: disk full")
}

func TestBar_Summary(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(160)
	bar.SetFileName("flux.json")
	bar.SetStats(domain.EntryStats{Total: 3, Valid: 1, Invalid: 2, MissingURL: 1, ErrorURL: 1})
	audit := domain.ValidationStatus{Nodes: 2, MissingLinks: 1}
	audit.Warn(domain.Issue{Kind: domain.IssueMissingLink})
	bar.SetAudit(audit)

	view := bar.View()

	assert.Contains(t, view, "flux.json")
	assert.Contains(t, view, "3 entries")
	assert.Contains(t, view, "1 valid")
	assert.Contains(t, view, "1 missing")
	assert.Contains(t, view, "1 error")
	assert.Contains(t, view, "Warning: 1 missing links")
	assert.Equal(t, 3, bar.Stats().Total)
	assert.Equal(t, domain.LevelWarning, bar.Audit().Level())
}

func TestBar_SetBindings(t *testing.T) {
	km := keymap.DefaultKeyMap()
	bar := NewBar(nil, km)
	bar.SetWidth(200)

	bar.SetBindings(km.NodesHelp())
	assert.Contains(t, bar.View(), "m: next missing")

	bar.SetBindings(nil)
	assert.NotContains(t, bar.View(), "m: next missing")
}

func TestBar_StateEditing(t *testing.T) {
	bar := NewBar(nil, nil)

	bar.SetState(StateEditing)

	assert.Contains(t, bar.View(), "Editing")
}

func TestBar_Clear(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetError(errors.New("x"))

	bar.Clear()

	assert.Equal(t, StateReady, bar.State())
	assert.Empty(t, bar.Message())
}
