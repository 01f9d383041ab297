// Package serialtest provides in-memory stand-ins for serial ports and connectors.
package serialtest

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/MironCo/ctserial/internal/serial"
)

// Port replays queued responses. Each Write moves the next queued response into
// the pending input; Read hands pending input out in chunks of Chunk bytes (all
// at once when Chunk is 0) and then returns 0 bytes, like a port whose read
// timeout expired.
type Port struct {
	Responses [][]byte
	Pending   []byte
	Chunk     int

	Written  []byte
	Calls    []string
	Timeout  time.Duration
	WriteErr error
	ReadErr  error
	Closed   bool
}

func (p *Port) Read(b []byte) (int, error) {
	p.Calls = append(p.Calls, "read")
	if p.ReadErr != nil {
		return 0, p.ReadErr
	}
	if len(p.Pending) == 0 {
		return 0, nil
	}
	n := len(p.Pending)
	if p.Chunk > 0 && n > p.Chunk {
		n = p.Chunk
	}
	n = copy(b, p.Pending[:n])
	p.Pending = p.Pending[n:]
	return n, nil
}

func (p *Port) Write(b []byte) (int, error) {
	p.Calls = append(p.Calls, "write")
	if p.WriteErr != nil {
		return 0, p.WriteErr
	}
	p.Written = append(p.Written, b...)
	if len(p.Responses) > 0 {
		p.Pending = append(p.Pending, p.Responses[0]...)
		p.Responses = p.Responses[1:]
	}
	return len(b), nil
}

func (p *Port) ResetInputBuffer() error {
	p.Calls = append(p.Calls, "flush")
	p.Pending = nil
	return nil
}

func (p *Port) SetReadTimeout(t time.Duration) error {
	p.Timeout = t
	return nil
}

func (p *Port) Close() error {
	if p.Closed {
		return errors.New("already closed")
	}
	p.Closed = true
	return nil
}

// Connector opens Port on any device in DeviceList
type Connector struct {
	DeviceList []string
	Port       *Port
	OpenErr    error

	Opened []string
}

func (c *Connector) Devices() ([]string, error) {
	return c.DeviceList, nil
}

func (c *Connector) Open(device string, baudRate int) (*serial.Session, error) {
	if c.OpenErr != nil {
		return nil, c.OpenErr
	}
	if !slices.Contains(c.DeviceList, device) {
		return nil, fmt.Errorf("no such device %s", device)
	}
	if c.Port == nil {
		c.Port = &Port{}
	}
	c.Opened = append(c.Opened, fmt.Sprintf("%s@%d", device, baudRate))
	return serial.NewSession(device, baudRate, c.Port), nil
}
