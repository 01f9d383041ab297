package ui

import (
	"strings"

	"github.com/MironCo/ctserial/internal/command"
	"github.com/MironCo/ctserial/internal/config"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// UIUpdate carries a finished command back to the UI goroutine
type UIUpdate struct {
	Line   string
	Result command.Result
}

// Shell is the desktop front end: a port row, an output pane, an input line and a status bar
type Shell struct {
	dispatcher *command.Dispatcher
	state      *command.State
	quit       func()

	portEntry  *widget.Entry
	modeSelect *widget.Select
	connectBtn *widget.Button
	output     *widget.Entry
	input      *widget.Entry
	status     *widget.Label

	updates chan UIUpdate
}

// NewShell builds the widgets. quit is called once exit has been executed.
func NewShell(d *command.Dispatcher, st *command.State, defaultDevice string, quit func()) *Shell {
	s := &Shell{
		dispatcher: d,
		state:      st,
		quit:       quit,
		updates:    make(chan UIUpdate, 10),
	}

	// Output entry - monospace, selectable for copy-paste
	s.output = widget.NewMultiLineEntry()
	s.output.Wrapping = fyne.TextWrapOff
	s.output.TextStyle = fyne.TextStyle{Monospace: true}

	s.portEntry = widget.NewEntry()
	s.portEntry.SetPlaceHolder(defaultDevice)
	s.portEntry.SetText(defaultDevice)

	s.connectBtn = widget.NewButton("Connect", func() {
		if port := strings.TrimSpace(s.portEntry.Text); port != "" {
			s.submit("connect " + port)
		}
	})
	s.connectBtn.Importance = widget.HighImportance

	s.modeSelect = widget.NewSelect(config.ModeNames(), nil)
	s.modeSelect.SetSelected(st.Mode.String())
	s.modeSelect.OnChanged = func(mode string) {
		if mode != s.state.Mode.String() {
			s.submit("mode " + mode)
		}
	}

	s.input = widget.NewEntry()
	s.input.SetPlaceHolder("help")
	s.input.TextStyle = fyne.TextStyle{Monospace: true}
	s.input.OnSubmitted = s.submit

	s.status = widget.NewLabel(command.StatusLine(st))
	s.status.TextStyle = fyne.TextStyle{Monospace: true}

	// Goroutine to apply results on the UI thread
	go func() {
		for update := range s.updates {
			fyne.Do(func() {
				s.apply(update)
			})
		}
	}()

	return s
}

// Content lays the widgets out for a window
func (s *Shell) Content() fyne.CanvasObject {
	portRow := container.NewBorder(nil, nil, widget.NewLabel("Serial Port:"), s.connectBtn, s.portEntry)
	modeRow := container.NewBorder(nil, nil, widget.NewLabel("Output:"), nil, s.modeSelect)
	promptRow := container.NewBorder(nil, nil, widget.NewLabel("ctserial>"), nil, s.input)

	return container.NewBorder(
		container.NewVBox(widget.NewCard("", "", container.NewPadded(container.NewVBox(portRow, modeRow))), promptRow),
		s.status,
		nil,
		nil,
		container.NewScroll(s.output),
	)
}

// Show replaces the output pane, e.g. with the result of a command run before the window opened
func (s *Shell) Show(text string) {
	s.output.SetText(text)
	s.output.CursorRow = strings.Count(text, "\n")
}

// submit runs line off the UI thread. Controls stay disabled until the result
// is applied, so only one command runs at a time.
func (s *Shell) submit(line string) {
	s.setBusy(true)
	current := s.output.Text
	go func() {
		res := s.dispatcher.Execute(line, current, s.state)
		s.updates <- UIUpdate{Line: line, Result: res}
	}()
}

func (s *Shell) apply(u UIUpdate) {
	s.setBusy(false)

	switch u.Result.Kind {
	case command.Replace:
		s.Show(u.Result.Text)
		s.input.SetText("")
		s.state.History = append(s.state.History, u.Line)
	case command.NoOp:
		s.input.SetText("")
	case command.Reject:
		// leave the line in place so the operator can correct it
	}

	s.status.SetText(command.StatusLine(s.state))
	s.modeSelect.SetSelected(s.state.Mode.String())
	if c := fyne.CurrentApp().Driver().CanvasForObject(s.input); c != nil {
		c.Focus(s.input)
	}

	if s.state.ExitRequested {
		s.quit()
	}
}

func (s *Shell) setBusy(busy bool) {
	for _, w := range []fyne.Disableable{s.input, s.connectBtn, s.modeSelect} {
		if busy {
			w.Disable()
		} else {
			w.Enable()
		}
	}
}
