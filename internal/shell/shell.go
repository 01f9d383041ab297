package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/MironCo/ctserial/internal/command"
	"github.com/MironCo/ctserial/internal/logging"
	"github.com/muesli/termenv"
)

const prompt = "ctserial> "

// LineReader reads one submitted line at a time. *liner.State satisfies it.
type LineReader interface {
	Prompt(prompt string) (string, error)
	// PromptWithSuggestion prompts with text already typed in, cursor at pos (-1 for the end)
	PromptWithSuggestion(prompt string, text string, pos int) (string, error)
	AppendHistory(item string)
	Close() error
}

// Shell is the terminal front end. It keeps the output pane as a growing
// string and prints only what each command adds to it.
type Shell struct {
	dispatcher *command.Dispatcher
	state      *command.State
	out        *termenv.Output
	logger     *slog.Logger

	output string
}

// Option configures a Shell
type Option func(*Shell)

// WithLogger configures the structured logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Shell) {
		s.logger = logger
	}
}

// New creates a Shell writing to w
func New(d *command.Dispatcher, st *command.State, w io.Writer, opts ...Option) *Shell {
	s := &Shell{
		dispatcher: d,
		state:      st,
		out:        termenv.NewOutput(w),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	return s
}

// Output returns the text of the output pane
func (s *Shell) Output() string {
	return s.output
}

// PrintBanner writes the start-up banner
func (s *Shell) PrintBanner() {
	title := s.out.String(" ctserial ").Bold().
		Foreground(s.out.Color("#ffffff")).
		Background(s.out.Color("#4f46e5"))
	hint := s.out.String("Type help for commands, Ctrl-D to quit.").Faint()
	fmt.Fprintf(s.out, "\n%s %s\n%s\n\n", title, hint, s.out.String(command.StatusLine(s.state)).Faint())
}

// Submit executes one line and updates the output pane and history
func (s *Shell) Submit(line string) command.Result {
	res := s.dispatcher.Execute(line, s.output, s.state)
	switch res.Kind {
	case command.Replace:
		s.show(res.Text)
		s.state.History = append(s.state.History, line)
	case command.NoOp:
		if strings.TrimSpace(line) != "" {
			s.state.History = append(s.state.History, line)
		}
	case command.Reject:
		s.logger.Debug("line rejected", "line", line)
	}
	return res
}

// show prints the part of text that is new; anything else means the pane was reset
func (s *Shell) show(text string) {
	if strings.HasPrefix(text, s.output) {
		fmt.Fprint(s.out, text[len(s.output):])
	} else {
		s.out.ClearScreen()
		fmt.Fprint(s.out, text)
	}
	s.output = text
}

// Run reads lines from r until exit, end of input, Ctrl-C or ctx is cancelled.
// A rejected line is offered again for editing. Any open session is closed on return.
func (s *Shell) Run(ctx context.Context, r LineReader) error {
	defer s.shutdown()

	var suggestion string
	for {
		line, err := s.read(ctx, r, suggestion)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, ErrAborted) || errors.Is(err, context.Canceled) {
				s.logger.Debug("shell stopped", "reason", err)
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		suggestion = ""
		res := s.Submit(line)
		switch res.Kind {
		case command.Reject:
			suggestion = line
			fmt.Fprintln(s.out, s.out.String("? invalid command or arguments").Foreground(s.out.Color("#f87171")))
		case command.Replace, command.NoOp:
			if strings.TrimSpace(line) != "" {
				r.AppendHistory(line)
			}
		}
		if s.state.ExitRequested {
			return nil
		}
	}
}

type readResult struct {
	line string
	err  error
}

// read prompts on its own goroutine so a cancelled ctx does not wait for a keystroke
func (s *Shell) read(ctx context.Context, r LineReader, suggestion string) (string, error) {
	ch := make(chan readResult, 1)
	go func() {
		var res readResult
		if suggestion != "" {
			res.line, res.err = r.PromptWithSuggestion(prompt, suggestion, -1)
		} else {
			res.line, res.err = r.Prompt(prompt)
		}
		ch <- res
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		return res.line, normalizeErr(res.err)
	}
}

func (s *Shell) shutdown() {
	if !s.state.Connected() {
		return
	}
	device := s.state.Session.Device
	if err := s.state.Session.Close(); err != nil {
		s.logger.Warn("close failed", "device", device, "err", err)
	}
	s.state.Session = nil
	s.logger.Info("session closed on shutdown", "device", device)
}
