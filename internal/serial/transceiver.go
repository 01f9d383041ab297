package serial

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/MironCo/ctserial/internal/config"
	"github.com/MironCo/ctserial/internal/logging"
)

// TransportError wraps a failed write or read on the serial port
type TransportError struct {
	Op     string
	Device string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Device, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Transceiver performs the write-then-drain exchange with a device
type Transceiver struct {
	settle  time.Duration
	poll    time.Duration
	logger  *slog.Logger
	metrics *Metrics
}

// Option configures a Transceiver
type Option func(*Transceiver)

// WithSettle sets the wait after the write and after the drain
func WithSettle(d time.Duration) Option {
	return func(t *Transceiver) {
		t.settle = d
	}
}

// WithPollTimeout sets the read timeout of each drain read
func WithPollTimeout(d time.Duration) Option {
	return func(t *Transceiver) {
		t.poll = d
	}
}

// WithLogger configures the structured logger
func WithLogger(logger *slog.Logger) Option {
	return func(t *Transceiver) {
		t.logger = logger
	}
}

// WithMetrics configures where traffic is counted
func WithMetrics(m *Metrics) Option {
	return func(t *Transceiver) {
		t.metrics = m
	}
}

// NewTransceiver creates a Transceiver with the standard 100ms settle intervals
func NewTransceiver(opts ...Option) *Transceiver {
	t := &Transceiver{
		settle: config.SettleInterval,
		poll:   config.PollTimeout,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.logger == nil {
		t.logger = logging.NewNop()
	}
	if t.metrics == nil {
		t.metrics = NewMetrics(nil)
	}
	return t
}

// Metrics returns the transceiver's traffic counters
func (t *Transceiver) Metrics() *Metrics {
	return t.metrics
}

// SendAndReceive exchanges tx with the device and never fails: a transport error
// is logged and its description returned in place of the received bytes, so it
// shows up inline where the response would have been. The session stays open.
func (t *Transceiver) SendAndReceive(s *Session, tx []byte) []byte {
	rx, err := t.Exchange(s, tx)
	if err != nil {
		t.logger.Warn("exchange failed", "err", err)
		return []byte(err.Error())
	}
	return rx
}

// Exchange flushes stale input, writes tx, waits the settle interval, drains
// whatever the device sent back and waits the settle interval again.
// An empty tx skips the flush and the write and only collects what is pending.
func (t *Transceiver) Exchange(s *Session, tx []byte) ([]byte, error) {
	if !s.IsOpen() {
		return nil, ErrNotConnected
	}

	start := time.Now()
	rx, err := t.transfer(s, tx)
	// Give slow responders time to finish so the next flush does not eat a late burst.
	time.Sleep(t.settle)

	t.metrics.exchanges.Inc()
	t.metrics.rxBytes.Add(float64(len(rx)))
	t.metrics.duration.Observe(time.Since(start).Seconds())
	if err != nil {
		t.metrics.errors.Inc()
		return rx, err
	}

	t.logger.Debug("exchange", "device", s.Device, "tx", len(tx), "rx", len(rx), "elapsed", time.Since(start))
	return rx, nil
}

func (t *Transceiver) transfer(s *Session, tx []byte) ([]byte, error) {
	port := s.port

	// Stale input is only discarded ahead of a real write; polling keeps it.
	if len(tx) > 0 {
		if err := port.ResetInputBuffer(); err != nil {
			return nil, &TransportError{Op: "flush", Device: s.Device, Err: err}
		}
	}

	for written := 0; written < len(tx); {
		n, err := port.Write(tx[written:])
		if err != nil {
			return nil, &TransportError{Op: "write", Device: s.Device, Err: err}
		}
		if n == 0 {
			return nil, &TransportError{Op: "write", Device: s.Device, Err: io.ErrShortWrite}
		}
		written += n
		t.metrics.txBytes.Add(float64(n))
	}

	time.Sleep(t.settle)
	return t.drain(s)
}

// drain reads until a read times out with nothing available
func (t *Transceiver) drain(s *Session) ([]byte, error) {
	port := s.port
	if err := port.SetReadTimeout(t.poll); err != nil {
		return nil, &TransportError{Op: "read", Device: s.Device, Err: err}
	}

	var rx []byte
	buf := make([]byte, 1024)
	for {
		n, err := port.Read(buf)
		if n > 0 {
			rx = append(rx, buf[:n]...)
		}
		if err != nil {
			return rx, &TransportError{Op: "read", Device: s.Device, Err: err}
		}
		if n == 0 {
			return rx, nil
		}
	}
}
