package messages

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/wfmodels/internal/core/domain"
)

func TestViewType_String(t *testing.T) {
	tests := []struct {
		view ViewType
		want string
	}{
		{ViewMenu, "menu"},
		{ViewNodes, "nodes"},
		{ViewBulk, "bulk"},
		{ViewSource, "source"},
		{ViewRules, "rules"},
		{ViewSettings, "settings"},
		{ViewOpen, "open"},
		{ViewHelp, "help"},
		{ViewType(99), "unknown"},
		{ViewType(-1), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.view.String())
		})
	}
}

func TestViewType_Values(t *testing.T) {
	assert.Equal(t, ViewType(0), ViewMenu)
	assert.Equal(t, ViewType(7), ViewHelp)
}

func TestResultMessages_CarryErrors(t *testing.T) {
	boom := errors.New("boom")

	assert.ErrorIs(t, DocumentLoaded{Err: boom}.Err, boom)
	assert.ErrorIs(t, DocumentEdited{Err: boom}.Err, boom)
	assert.ErrorIs(t, BulkMatched{Err: boom}.Err, boom)
	assert.ErrorIs(t, DocumentSaved{Err: boom}.Err, boom)
	assert.ErrorIs(t, DocumentCopied{Err: boom}.Err, boom)
	assert.ErrorIs(t, RulesChanged{Err: boom}.Err, boom)
	assert.ErrorIs(t, WatchStopped{Err: boom}.Err, boom)
	assert.ErrorIs(t, SettingsLoaded{Err: boom}.Err, boom)
	assert.ErrorIs(t, SettingsSaved{Err: boom}.Err, boom)
}

func TestBulkMatched(t *testing.T) {
	msg := BulkMatched{Result: domain.BulkMatchResult{URLsFound: 2, Matched: 1}}

	assert.NoError(t, msg.Err)
	assert.Equal(t, "Processing complete: found 2 links, successfully matched 1 items", msg.Result.Message())
}

func TestSourceRequested(t *testing.T) {
	msg := SourceRequested{NodeID: 7, Name: "a.safetensors"}

	assert.Equal(t, domain.NodeID(7), msg.NodeID)
	assert.Equal(t, "a.safetensors", msg.Name)
}
