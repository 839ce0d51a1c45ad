package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/tcl125/fredbridge/internal/hosttransport"
)

func TestModelInitPollsASnapshot(t *testing.T) {
	tr := hosttransport.NewMockTransport()
	defer tr.Close()
	model := NewModel(tr)

	cmd := model.Init()
	assert.NotNil(t, cmd, "Init should return a batched command")
}

func TestModelUpdateTelemetryMsgUpdatesSnapshot(t *testing.T) {
	tr := hosttransport.NewMockTransport()
	defer tr.Close()
	model := NewModel(tr)

	updated, _ := model.Update(telemetryMsg{tick: 42, enabled: true})
	m := updated.(Model)

	assert.Equal(t, uint32(42), m.tick, "tick should reflect the telemetry message")
	assert.True(t, m.enabled, "enabled should reflect the telemetry message")
	assert.Contains(t, m.View(), "telemetry enabled", "view should render enabled status")
}

func TestModelUpdateErrMsgSurfacesError(t *testing.T) {
	tr := hosttransport.NewMockTransport()
	defer tr.Close()
	model := NewModel(tr)

	updated, _ := model.Update(errMsg{err: assert.AnError})
	m := updated.(Model)

	assert.Contains(t, m.View(), "error:", "view should render the error")
}

func TestModelQuitKeySetsQuitting(t *testing.T) {
	tr := hosttransport.NewMockTransport()
	defer tr.Close()
	model := NewModel(tr)

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.NotNil(t, cmd, "quit key should return tea.Quit")
}
