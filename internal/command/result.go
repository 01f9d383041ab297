package command

import (
	"github.com/MironCo/ctserial/internal/config"
	"github.com/MironCo/ctserial/internal/macro"
	"github.com/MironCo/ctserial/internal/serial"
)

// Kind tells the front end what to do with a Result
type Kind int

const (
	// Replace means show Text as the new output and clear the input line
	Replace Kind = iota
	// NoOp means clear the input line and leave the output alone
	NoOp
	// Reject means leave the input line untouched so the operator can fix it
	Reject
)

func (k Kind) String() string {
	switch k {
	case Replace:
		return "replace"
	case NoOp:
		return "noop"
	case Reject:
		return "reject"
	default:
		return "unknown"
	}
}

// Result is the outcome of executing one input line
type Result struct {
	Kind Kind
	Text string
}

func replace(text string) Result {
	return Result{Kind: Replace, Text: text}
}

var (
	noOp     = Result{Kind: NoOp}
	rejected = Result{Kind: Reject}
)

// State is everything a shell carries between commands. Front ends own one
// State and pass it to every Execute call.
type State struct {
	Session *serial.Session
	Mode    config.DisplayMode
	Macros  *macro.Store
	// History holds the lines submitted before the current one. The front end appends to it.
	History []string
	// ExitRequested is set by exit; the front end should shut down once it sees it.
	ExitRequested bool
}

// NewState creates a disconnected State rendering in mode
func NewState(mode config.DisplayMode) *State {
	return &State{
		Mode:   mode,
		Macros: macro.NewStore(),
	}
}

// Connected reports whether a session is open
func (s *State) Connected() bool {
	return s.Session.IsOpen()
}
