package command

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/MironCo/ctserial/internal/config"
	"github.com/MironCo/ctserial/internal/format"
)

const (
	noticeConnectFirst = "Connect to a device first\n"

	txPrefix = "--> "
	rxPrefix = "<-- "
)

func builtinCommands() []command {
	return []command{
		{Name: Help, Usage: "help", Help: "Print application help.", run: cmdHelp},
		{Name: Connect, Usage: "connect <device> [baud]", Help: "Open a session with a serial device (default 9600 baud, 8N1).", run: cmdConnect},
		{Name: Close, Usage: "close", Help: "Close the current session.", NeedsSession: true, run: cmdClose},
		{Name: Send, Usage: "send <text>", Help: "Send text; spaces outside quotes are dropped.", NeedsSession: true, run: cmdSend},
		{Name: SendHex, Usage: "sendhex <hex>", Help: "Send raw hex, e.g. 01 02, 0x01 0x02 or \\x01\\x02.", NeedsSession: true, run: cmdSendHex},
		{Name: SetMacro, Usage: "setmacro <name> <hex>", Help: "Store a hex payload under a name.", run: cmdSetMacro},
		{Name: SendMacro, Usage: "sendmacro <name>", Help: "Send the hex payload stored under a name.", NeedsSession: true, run: cmdSendMacro},
		{Name: Macros, Usage: "macros", Help: "List stored macros.", run: cmdMacros},
		{Name: Mode, Usage: "mode [hex|ascii|utf-8|mixed]", Help: "Show or change the output mode.", run: cmdMode},
		{Name: Status, Usage: "status", Help: "Show mode, connected device and macro count.", run: cmdStatus},
		{Name: Stats, Usage: "stats", Help: "Show bytes sent and received.", run: cmdStats},
		{Name: History, Usage: "history", Help: "Print current history.", run: cmdHistory},
		{Name: Clear, Usage: "clear", Help: "Clear the screen.", run: cmdClear},
		{Name: Exit, Usage: "exit", Help: "Exit the application.", run: cmdExit},
	}
}

func cmdHelp(d *Dispatcher, _, output string, _ *State) Result {
	entries := d.Commands()
	width := 0
	for _, e := range entries {
		width = max(width, len(e.Name))
	}

	var b strings.Builder
	b.WriteString(output)
	b.WriteString("==================== Help ====================\n")
	b.WriteString("ctserial talks to raw serial devices. Type a command at the\n")
	b.WriteString("prompt; its output appears here.\n\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "%-*s  %s\n", width, e.Name, e.Help)
	}
	b.WriteString("==============================================\n")
	return replace(b.String())
}

func cmdConnect(d *Dispatcher, arg, output string, st *State) Result {
	if st.Connected() {
		return replace(output + fmt.Sprintf("Session with %s already open, close it first\n", st.Session.Device))
	}

	fields := strings.Fields(arg)
	devices, err := d.connector.Devices()
	if err != nil {
		return replace(output + fmt.Sprintf("Unable to list devices: %v\n", err))
	}
	if len(fields) == 0 || !slices.Contains(devices, fields[0]) {
		return replace(output + validDevices(devices))
	}

	device, baud := fields[0], config.DefaultBaudRate
	if len(fields) > 1 {
		baud, err = strconv.Atoi(fields[1])
		if err != nil || baud <= 0 {
			return rejected
		}
	}

	session, err := d.connector.Open(device, baud)
	if err != nil {
		d.logger.Warn("open failed", "device", device, "baud", baud, "err", err)
		return replace(output + fmt.Sprintf("Unable to open %s: %v\n", device, err))
	}
	st.Session = session
	d.logger.Info("session opened", "device", device, "baud", baud)
	return replace(output + fmt.Sprintf("Connect session opened with %s\n", device))
}

func validDevices(devices []string) string {
	if len(devices) == 0 {
		return "No serial devices found\n"
	}
	return "Valid devices: " + strings.Join(devices, ", ") + "\n"
}

func cmdClose(d *Dispatcher, _, output string, st *State) Result {
	device := st.Session.Device
	if err := st.Session.Close(); err != nil {
		d.logger.Warn("close failed", "device", device, "err", err)
		output += fmt.Sprintf("Error closing %s: %v\n", device, err)
	}
	st.Session = nil
	d.logger.Info("session closed", "device", device)
	return replace(output + fmt.Sprintf("Session with %s closed.\n", device))
}

func cmdSend(d *Dispatcher, arg, output string, st *State) Result {
	tx, err := format.ParseText(arg)
	if err != nil {
		return rejected
	}
	return d.exchange(tx, output, st)
}

func cmdSendHex(d *Dispatcher, arg, output string, st *State) Result {
	return d.sendHex(arg, output, st)
}

func (d *Dispatcher) sendHex(payload, output string, st *State) Result {
	tx, err := format.ParseHex(payload)
	if err != nil {
		return rejected
	}
	return d.exchange(tx, output, st)
}

// exchange sends tx and appends both directions rendered in the current mode
func (d *Dispatcher) exchange(tx []byte, output string, st *State) Result {
	rx := d.exchanger.SendAndReceive(st.Session, tx)

	var b strings.Builder
	b.WriteString(output)
	b.WriteString(format.Render(tx, st.Mode, txPrefix))
	b.WriteString("\n")
	b.WriteString(format.Render(rx, st.Mode, rxPrefix))
	b.WriteString("\n")
	return replace(b.String())
}

func cmdSetMacro(_ *Dispatcher, arg, output string, st *State) Result {
	i := strings.IndexFunc(arg, unicode.IsSpace)
	if i < 0 {
		return rejected
	}
	name, payload := arg[:i], strings.TrimSpace(arg[i:])
	if payload == "" {
		return rejected
	}
	st.Macros.Set(name, payload)
	return replace(output + fmt.Sprintf("key %s set to value %s\n", name, payload))
}

func cmdSendMacro(d *Dispatcher, arg, output string, st *State) Result {
	name := strings.TrimSpace(arg)
	if name == "" {
		return rejected
	}
	payload, ok := st.Macros.Get(name)
	if !ok {
		return replace(output + fmt.Sprintf("Unknown macro: %s\n", name))
	}
	return d.sendHex(payload, output, st)
}

func cmdMacros(_ *Dispatcher, _, output string, st *State) Result {
	names := st.Macros.Names()
	if len(names) == 0 {
		return replace(output + "No macros set\n")
	}
	var b strings.Builder
	b.WriteString(output)
	for _, name := range names {
		payload, _ := st.Macros.Get(name)
		fmt.Fprintf(&b, "%s = %s\n", name, payload)
	}
	return replace(b.String())
}

func cmdMode(_ *Dispatcher, arg, output string, st *State) Result {
	if strings.TrimSpace(arg) == "" {
		return replace(output + fmt.Sprintf("Output mode is %s\n", st.Mode))
	}
	mode, err := config.ParseMode(arg)
	if err != nil {
		return rejected
	}
	st.Mode = mode
	return replace(output + fmt.Sprintf("Output mode set to %s\n", mode))
}

func cmdStatus(_ *Dispatcher, _, output string, st *State) Result {
	return replace(output + StatusLine(st) + "\n")
}

// StatusLine summarises st for status bars
func StatusLine(st *State) string {
	device := "none"
	if st.Connected() {
		device = st.Session.Device
	}
	return fmt.Sprintf("mode:%s - connected:%s - macros:%d", st.Mode, device, st.Macros.Len())
}

func cmdStats(d *Dispatcher, _, output string, _ *State) Result {
	if d.metrics == nil {
		return replace(output + "No statistics available\n")
	}
	s, err := d.metrics.Snapshot()
	if err != nil {
		return replace(output + fmt.Sprintf("Unable to read statistics: %v\n", err))
	}
	return replace(output + fmt.Sprintf("Sent %d bytes, received %d bytes in %d exchanges (%d transport errors)\n",
		s.TxBytes, s.RxBytes, s.Exchanges, s.Errors))
}

func cmdHistory(_ *Dispatcher, _, output string, st *State) Result {
	var b strings.Builder
	b.WriteString(output)
	for _, line := range st.History {
		b.WriteString(line)
		b.WriteString("\n")
	}
	return replace(b.String())
}

func cmdClear(_ *Dispatcher, _, _ string, _ *State) Result {
	return replace("")
}

func cmdExit(d *Dispatcher, _, output string, st *State) Result {
	if st.Connected() {
		if err := st.Session.Close(); err != nil {
			d.logger.Warn("close failed", "device", st.Session.Device, "err", err)
		}
	}
	st.Session = nil
	st.ExitRequested = true
	return replace(output + "Closing application and all sessions.\n")
}
