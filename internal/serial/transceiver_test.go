package serial_test

import (
	"errors"
	"testing"
	"time"

	"github.com/MironCo/ctserial/internal/serial"
	"github.com/MironCo/ctserial/internal/serial/serialtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTransceiver() *serial.Transceiver {
	return serial.NewTransceiver(serial.WithSettle(0), serial.WithPollTimeout(time.Millisecond))
}

func TestExchange_FlushWriteDrain(t *testing.T) {
	port := &serialtest.Port{
		Pending:   []byte("stale"),
		Responses: [][]byte{[]byte("world")},
		Chunk:     2,
	}
	s := serial.NewSession("/dev/ttyUSB0", 9600, port)

	rx, err := newTestTransceiver().Exchange(s, []byte("hello"))
	require.NoError(t, err)

	assert.Equal(t, []byte("world"), rx)
	assert.Equal(t, []byte("hello"), port.Written)
	assert.Equal(t, time.Millisecond, port.Timeout)
	// flush, one write, three chunked reads and the empty read that ends the drain
	assert.Equal(t, []string{"flush", "write", "read", "read", "read", "read"}, port.Calls)
}

func TestExchange_EmptyTxOnlyPolls(t *testing.T) {
	port := &serialtest.Port{Pending: []byte("late")}
	s := serial.NewSession("COM3", 9600, port)

	rx, err := newTestTransceiver().Exchange(s, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte("late"), rx)
	assert.Equal(t, []string{"read", "read"}, port.Calls)
}

func TestExchange_SettleTiming(t *testing.T) {
	port := &serialtest.Port{}
	s := serial.NewSession("COM3", 9600, port)
	tr := serial.NewTransceiver(serial.WithSettle(20*time.Millisecond), serial.WithPollTimeout(time.Millisecond))

	start := time.Now()
	_, err := tr.Exchange(s, []byte{0x01})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestExchange_NotConnected(t *testing.T) {
	tr := newTestTransceiver()

	_, err := tr.Exchange(nil, []byte{0x01})
	assert.ErrorIs(t, err, serial.ErrNotConnected)

	port := &serialtest.Port{}
	s := serial.NewSession("COM3", 9600, port)
	require.NoError(t, s.Close())
	_, err = tr.Exchange(s, []byte{0x01})
	assert.ErrorIs(t, err, serial.ErrNotConnected)
	assert.Empty(t, port.Calls)
}

func TestExchange_TransportErrors(t *testing.T) {
	boom := errors.New("device unplugged")

	t.Run("write", func(t *testing.T) {
		s := serial.NewSession("COM3", 9600, &serialtest.Port{WriteErr: boom})
		_, err := newTestTransceiver().Exchange(s, []byte{0x01})

		var te *serial.TransportError
		require.ErrorAs(t, err, &te)
		assert.Equal(t, "write", te.Op)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("read", func(t *testing.T) {
		s := serial.NewSession("COM3", 9600, &serialtest.Port{ReadErr: boom})
		_, err := newTestTransceiver().Exchange(s, []byte{0x01})

		var te *serial.TransportError
		require.ErrorAs(t, err, &te)
		assert.Equal(t, "read", te.Op)
		assert.Equal(t, "read COM3: device unplugged", err.Error())
	})
}

func TestSendAndReceive_ErrorBecomesPayload(t *testing.T) {
	port := &serialtest.Port{WriteErr: errors.New("i/o error")}
	s := serial.NewSession("COM3", 9600, port)

	rx := newTestTransceiver().SendAndReceive(s, []byte("x"))
	assert.Equal(t, "write COM3: i/o error", string(rx))
	assert.True(t, s.IsOpen(), "transport errors must not close the session")
}

func TestTransceiver_Metrics(t *testing.T) {
	port := &serialtest.Port{Responses: [][]byte{[]byte("ok"), nil}}
	s := serial.NewSession("COM3", 9600, port)
	tr := newTestTransceiver()

	tr.SendAndReceive(s, []byte("ping"))
	tr.SendAndReceive(s, []byte("go"))
	port.WriteErr = errors.New("gone")
	tr.SendAndReceive(s, []byte("x"))

	stats, err := tr.Metrics().Snapshot()
	require.NoError(t, err)
	assert.Equal(t, serial.Stats{TxBytes: 6, RxBytes: 2, Exchanges: 3, Errors: 1}, stats)
}

func TestSession_Close(t *testing.T) {
	port := &serialtest.Port{}
	s := serial.NewSession("COM3", 115200, port)
	require.True(t, s.IsOpen())

	require.NoError(t, s.Close())
	assert.False(t, s.IsOpen())
	assert.True(t, port.Closed)

	// second close does not touch the port again
	assert.NoError(t, s.Close())
}

func TestMode_8N1(t *testing.T) {
	m := serial.Mode(19200)
	assert.Equal(t, 19200, m.BaudRate)
	assert.Equal(t, 8, m.DataBits)
}
