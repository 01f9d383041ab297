package shell

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/MironCo/ctserial/internal/command"
	"github.com/MironCo/ctserial/internal/config"
	"github.com/peterh/liner"
	"golang.org/x/term"
)

// ErrAborted is returned by a LineReader when the operator pressed Ctrl-C at the prompt
var ErrAborted = errors.New("prompt aborted")

func normalizeErr(err error) error {
	if errors.Is(err, liner.ErrPromptAborted) {
		return ErrAborted
	}
	return err
}

// NewReader returns a line-editing reader when in is a terminal and a plain
// line scanner otherwise, so scripts can be piped into the shell.
func NewReader(in *os.File, d *command.Dispatcher) LineReader {
	if !term.IsTerminal(int(in.Fd())) {
		return NewPlainReader(in)
	}

	l := liner.NewLiner()
	l.SetCtrlCAborts(true)
	l.SetTabCompletionStyle(liner.TabPrints)
	l.SetCompleter(func(line string) []string {
		return completeLine(d, line)
	})
	return l
}

// completeLine completes command names, and mode names after "mode "
func completeLine(d *command.Dispatcher, line string) []string {
	name, rest, found := strings.Cut(line, " ")
	if !found {
		return d.Complete(line)
	}
	if strings.ToLower(name) != string(command.Mode) {
		return nil
	}
	var out []string
	for _, m := range config.ModeNames() {
		if strings.HasPrefix(m, strings.ToLower(strings.TrimSpace(rest))) {
			out = append(out, name+" "+m)
		}
	}
	return out
}

// PlainReader reads lines without echoing a prompt or keeping history
type PlainReader struct {
	scanner *bufio.Scanner
	closer  io.Closer
}

// NewPlainReader reads lines from r
func NewPlainReader(r io.Reader) *PlainReader {
	p := &PlainReader{scanner: bufio.NewScanner(r)}
	if c, ok := r.(io.Closer); ok {
		p.closer = c
	}
	return p
}

func (p *PlainReader) Prompt(string) (string, error) {
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return p.scanner.Text(), nil
}

// PromptWithSuggestion ignores the suggestion; piped input cannot be edited
func (p *PlainReader) PromptWithSuggestion(prompt string, _ string, _ int) (string, error) {
	return p.Prompt(prompt)
}

func (p *PlainReader) AppendHistory(string) {}

func (p *PlainReader) Close() error {
	if p.closer != nil {
		return p.closer.Close()
	}
	return nil
}
