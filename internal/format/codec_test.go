package format

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []byte
	}{
		{"plain", "0102", []byte{0x01, 0x02}},
		{"spaced", "01 02 ff", []byte{0x01, 0x02, 0xff}},
		{"prefixed", "0x01 0x02", []byte{0x01, 0x02}},
		{"upper case prefix", "0XAB 0XCD", []byte{0xab, 0xcd}},
		{"escaped", `\x68\x69`, []byte("hi")},
		{"mixed case", "DeAdBeEf", []byte{0xde, 0xad, 0xbe, 0xef}},
		{"separators only", "  ", []byte{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseHex_Rejects(t *testing.T) {
	tests := []struct {
		name string
		in   string
		err  error
	}{
		{"empty", "", ErrInvalidHex},
		{"odd length", "010", ErrOddLength},
		{"odd after separators", "01 0", ErrOddLength},
		{"non hex letter", "0g", ErrInvalidHex},
		{"punctuation", "01,02", ErrInvalidHex},
		{"tab separator", "01\t02", ErrInvalidHex},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseHex(tt.in)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

// Decoding then re-encoding gives back the digits with separators removed.
func TestParseHex_Idempotent(t *testing.T) {
	inputs := []string{"00ff10", "0x00 0xff 0x10", "00 ff 10", "0X00FF10", `\x00\xff\x10`}
	for _, in := range inputs {
		b, err := ParseHex(in)
		require.NoError(t, err, in)
		assert.Equal(t, "00ff10", EncodeHex(b), in)

		again, err := ParseHex(EncodeHex(b))
		require.NoError(t, err)
		assert.Equal(t, b, again)
	}
}

func TestParseText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"hello", "hello"},
		{"hello world", "helloworld"},
		{`hello " world"`, "hello world"},
		{`'a b'  c`, "a bc"},
	}
	for _, tt := range tests {
		got, err := ParseText(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, string(got), tt.in)
	}
}

func TestParseText_Errors(t *testing.T) {
	for _, in := range []string{"", `""`, `'' ""`, "#comment"} {
		_, err := ParseText(in)
		assert.ErrorIs(t, err, ErrEmptyText, in)
	}

	_, err := ParseText(`"unterminated`)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "parse text"))
}
