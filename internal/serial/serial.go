package serial

import (
	"errors"
	"fmt"
	"time"

	"github.com/MironCo/ctserial/internal/config"
	goserial "go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

// ErrNotConnected is returned when an exchange is attempted without an open session
var ErrNotConnected = errors.New("no open session")

// Port is the part of a serial port the transceiver needs. go.bug.st/serial ports satisfy it.
type Port interface {
	Read(p []byte) (n int, err error)
	Write(p []byte) (n int, err error)
	ResetInputBuffer() error
	SetReadTimeout(t time.Duration) error
	Close() error
}

// Session is the live connection to one serial device
type Session struct {
	Device   string
	BaudRate int

	port Port
	open bool
}

// NewSession wraps an already opened port
func NewSession(device string, baudRate int, port Port) *Session {
	return &Session{
		Device:   device,
		BaudRate: baudRate,
		port:     port,
		open:     port != nil,
	}
}

// IsOpen reports whether the session still holds its port
func (s *Session) IsOpen() bool {
	return s != nil && s.open
}

// Close releases the port. Closing a closed session is a no-op.
func (s *Session) Close() error {
	if !s.IsOpen() {
		return nil
	}
	s.open = false
	if err := s.port.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", s.Device, err)
	}
	return nil
}

// Mode returns the fixed 8N1 line settings for baudRate
func Mode(baudRate int) *goserial.Mode {
	return &goserial.Mode{
		BaudRate: baudRate,
		DataBits: config.DataBits,
		Parity:   goserial.NoParity,
		StopBits: goserial.OneStopBit,
	}
}

// Connector enumerates devices and opens sessions on them
type Connector interface {
	Devices() ([]string, error)
	Open(device string, baudRate int) (*Session, error)
}

// System is the Connector backed by the operating system's serial ports
type System struct{}

// Devices lists the serial ports currently present
func (System) Devices() ([]string, error) {
	ports, err := goserial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to list ports: %w", err)
	}
	return ports, nil
}

// Open opens device with 8N1 settings at baudRate
func (System) Open(device string, baudRate int) (*Session, error) {
	port, err := goserial.Open(device, Mode(baudRate))
	if err != nil {
		return nil, fmt.Errorf("failed to open port: %w", err)
	}
	return NewSession(device, baudRate, port), nil
}

// DescribeDevices returns one line per port, with USB identifiers when the OS reports them
func DescribeDevices() ([]string, error) {
	details, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to list ports: %w", err)
	}

	lines := make([]string, 0, len(details))
	for _, d := range details {
		if d.IsUSB {
			lines = append(lines, fmt.Sprintf("%s  usb %s:%s %s %s", d.Name, d.VID, d.PID, d.SerialNumber, d.Product))
		} else {
			lines = append(lines, d.Name)
		}
	}
	return lines, nil
}
