package ui

import (
	"testing"

	"github.com/MironCo/ctserial/internal/command"
	"github.com/MironCo/ctserial/internal/config"
	"github.com/MironCo/ctserial/internal/serial"
	"github.com/MironCo/ctserial/internal/serial/serialtest"
	"github.com/stretchr/testify/assert"

	"fyne.io/fyne/v2/test"
)

type noReply struct{}

func (noReply) SendAndReceive(*serial.Session, []byte) []byte { return nil }

func newTestShell(t *testing.T) (*Shell, *command.State, *bool) {
	t.Helper()
	a := test.NewApp()
	t.Cleanup(a.Quit)

	d := command.New(&serialtest.Connector{DeviceList: []string{"COM3"}}, noReply{})
	st := command.NewState(config.Hex)
	quit := false
	s := NewShell(d, st, "COM3", func() { quit = true })
	return s, st, &quit
}

func TestApply_Replace(t *testing.T) {
	s, st, _ := newTestShell(t)
	s.input.SetText("status")
	s.setBusy(true)

	s.apply(UIUpdate{Line: "status", Result: command.Result{Kind: command.Replace, Text: "done\n"}})

	assert.Equal(t, "done\n", s.output.Text)
	assert.Empty(t, s.input.Text)
	assert.False(t, s.input.Disabled())
	assert.Equal(t, []string{"status"}, st.History)
}

func TestApply_RejectKeepsInput(t *testing.T) {
	s, st, _ := newTestShell(t)
	s.output.SetText("before\n")
	s.input.SetText("sendhex 0")

	s.apply(UIUpdate{Line: "sendhex 0", Result: command.Result{Kind: command.Reject}})

	assert.Equal(t, "sendhex 0", s.input.Text)
	assert.Equal(t, "before\n", s.output.Text)
	assert.Empty(t, st.History)
}

func TestApply_NoOpClearsInput(t *testing.T) {
	s, _, _ := newTestShell(t)
	s.input.SetText("   ")
	s.apply(UIUpdate{Line: "   ", Result: command.Result{Kind: command.NoOp}})
	assert.Empty(t, s.input.Text)
}

func TestApply_ExitQuits(t *testing.T) {
	s, st, quit := newTestShell(t)
	st.ExitRequested = true
	s.apply(UIUpdate{Line: "exit", Result: command.Result{Kind: command.Replace, Text: "bye\n"}})
	assert.True(t, *quit)
}

func TestApply_StatusFollowsState(t *testing.T) {
	s, st, _ := newTestShell(t)
	st.Mode = config.Mixed
	s.apply(UIUpdate{Line: "mode mixed", Result: command.Result{Kind: command.Replace, Text: ""}})

	assert.Equal(t, "mode:mixed - connected:none - macros:0", s.status.Text)
	assert.Equal(t, "mixed", s.modeSelect.Selected)
}

func TestNewShell_PrefillsPort(t *testing.T) {
	s, _, _ := newTestShell(t)
	assert.Equal(t, "COM3", s.portEntry.Text)
	assert.NotNil(t, s.Content())
}

func TestShow_SeedsOutput(t *testing.T) {
	s, st, _ := newTestShell(t)
	d := command.New(&serialtest.Connector{DeviceList: []string{"COM3"}}, noReply{})

	res := d.Execute("connect COM9", "", st)
	s.Show(res.Text)

	assert.Equal(t, "Valid devices: COM3\n", s.output.Text)
	assert.Equal(t, 1, s.output.CursorRow)
	assert.Nil(t, st.Session)
}
