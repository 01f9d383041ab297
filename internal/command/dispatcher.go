package command

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"unicode"

	"github.com/MironCo/ctserial/internal/logging"
	"github.com/MironCo/ctserial/internal/serial"
)

// Name identifies a shell command
type Name string

const (
	Help      Name = "help"
	Connect   Name = "connect"
	Close     Name = "close"
	Send      Name = "send"
	SendHex   Name = "sendhex"
	SetMacro  Name = "setmacro"
	SendMacro Name = "sendmacro"
	Macros    Name = "macros"
	Mode      Name = "mode"
	Status    Name = "status"
	Stats     Name = "stats"
	History   Name = "history"
	Clear     Name = "clear"
	Exit      Name = "exit"
)

type handler func(d *Dispatcher, arg, output string, st *State) Result

type command struct {
	Name  Name
	Usage string
	Help  string
	// NeedsSession commands are answered with the connect-first notice when no session is open
	NeedsSession bool
	run          handler
}

// Entry describes a command for help listings and completion
type Entry struct {
	Name  string
	Usage string
	Help  string
}

// Exchanger sends bytes to the device on a session and returns what came back
type Exchanger interface {
	SendAndReceive(s *serial.Session, tx []byte) []byte
}

// Dispatcher resolves input lines to commands and runs them
type Dispatcher struct {
	commands  map[Name]command
	connector serial.Connector
	exchanger Exchanger
	metrics   *serial.Metrics
	logger    *slog.Logger
}

// Option configures a Dispatcher
type Option func(*Dispatcher)

// WithLogger configures the structured logger
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithMetrics lets the stats command report transceiver counters
func WithMetrics(m *serial.Metrics) Option {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

// New builds a Dispatcher with the full command table
func New(connector serial.Connector, exchanger Exchanger, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		commands:  make(map[Name]command),
		connector: connector,
		exchanger: exchanger,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = logging.NewNop()
	}

	for _, cmd := range builtinCommands() {
		if _, dup := d.commands[cmd.Name]; dup {
			panic(fmt.Sprintf("command: duplicate command %q", cmd.Name))
		}
		d.commands[cmd.Name] = cmd
	}
	return d
}

// Execute runs one input line against st. output is the text currently shown;
// a Replace result carries output plus whatever the command added.
func (d *Dispatcher) Execute(line, output string, st *State) Result {
	name, arg := splitLine(line)
	if name == "" {
		return noOp
	}

	cmd, ok := d.commands[Name(name)]
	if !ok {
		d.logger.Debug("unknown command", "command", name)
		return rejected
	}
	if cmd.NeedsSession && !st.Connected() {
		return replace(output + noticeConnectFirst)
	}

	res := cmd.run(d, arg, output, st)
	d.logger.Debug("command executed", "command", name, "result", res.Kind)
	return res
}

// Commands lists every command sorted by name
func (d *Dispatcher) Commands() []Entry {
	entries := make([]Entry, 0, len(d.commands))
	for _, cmd := range d.commands {
		entries = append(entries, Entry{Name: string(cmd.Name), Usage: cmd.Usage, Help: cmd.Help})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries
}

// Complete returns the command names starting with prefix, for front-end completion
func (d *Dispatcher) Complete(prefix string) []string {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	var out []string
	for _, e := range d.Commands() {
		if strings.HasPrefix(e.Name, prefix) {
			out = append(out, e.Name)
		}
	}
	return out
}

// splitLine returns the lowercased first word and the rest of the line with
// its internal whitespace untouched.
func splitLine(line string) (name, arg string) {
	line = strings.TrimSpace(line)
	i := strings.IndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return strings.ToLower(line), ""
	}
	return strings.ToLower(line[:i]), strings.TrimLeftFunc(line[i:], unicode.IsSpace)
}
