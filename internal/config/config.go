package config

import (
	"fmt"
	"strings"
	"time"
)

// DisplayMode selects how byte sequences are rendered
type DisplayMode int

const (
	Hex DisplayMode = iota
	ASCII
	UTF8
	Mixed
)

// DefaultMode is the mode a new shell starts in
const DefaultMode = UTF8

const (
	DefaultBaudRate = 9600
	DataBits        = 8

	// SettleInterval is waited after the write and again after the drain
	SettleInterval = 100 * time.Millisecond
	// PollTimeout bounds each read of the drain loop
	PollTimeout = 10 * time.Millisecond
)

// Modes lists every display mode in menu order
func Modes() []DisplayMode {
	return []DisplayMode{Hex, ASCII, UTF8, Mixed}
}

// String returns the name used on the command line for a mode
func (m DisplayMode) String() string {
	switch m {
	case Hex:
		return "hex"
	case ASCII:
		return "ascii"
	case UTF8:
		return "utf-8"
	case Mixed:
		return "mixed"
	default:
		return fmt.Sprintf("DisplayMode(%d)", int(m))
	}
}

// ParseMode converts a mode name to a DisplayMode. "utf8" is accepted as an alias.
func ParseMode(name string) (DisplayMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "hex":
		return Hex, nil
	case "ascii":
		return ASCII, nil
	case "utf-8", "utf8":
		return UTF8, nil
	case "mixed":
		return Mixed, nil
	default:
		return 0, fmt.Errorf("unknown display mode %q", name)
	}
}

// ModeNames returns the names of all modes, for help text and completion
func ModeNames() []string {
	modes := Modes()
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = m.String()
	}
	return names
}
