package format

import (
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/shlex"
)

var (
	// ErrInvalidHex is returned when a hex payload holds characters outside [0-9a-f\x ]
	ErrInvalidHex = errors.New("invalid hex characters")
	// ErrOddLength is returned when a hex payload has an odd number of digits
	ErrOddLength = errors.New("odd number of hex digits")
	// ErrEmptyText is returned when there is no text to send
	ErrEmptyText = errors.New("no text to send")
)

var (
	hexPayload    = regexp.MustCompile(`^[0-9a-f\\x ]+$`)
	hexSeparators = regexp.MustCompile(`[\\x ]`)
)

// ParseHex decodes a typed hex payload such as "01 02", "0x01 0x02" or "\x01\x02".
// Input is case-insensitive; "0x" prefixes, backslashes, stray x's and spaces are
// separators. A payload made only of separators decodes to no bytes.
func ParseHex(s string) ([]byte, error) {
	data := strings.ReplaceAll(strings.ToLower(s), "0x", "")
	if !hexPayload.MatchString(data) {
		return nil, ErrInvalidHex
	}
	digits := hexSeparators.ReplaceAllString(data, "")
	if len(digits)%2 != 0 {
		return nil, ErrOddLength
	}
	b, err := hex.DecodeString(digits)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHex, err)
	}
	return b, nil
}

// EncodeHex returns the lowercase hex digits of b without separators
func EncodeHex(b []byte) string {
	return hex.EncodeToString(b)
}

// ParseText turns typed text into the bytes to send. Whitespace outside quotes is
// dropped and quoted segments are kept intact, so `hello " world"` sends "hello world".
// Text that strips down to nothing, such as `""`, is ErrEmptyText.
func ParseText(s string) ([]byte, error) {
	if s == "" {
		return nil, ErrEmptyText
	}
	words, err := shlex.Split(s)
	if err != nil {
		return nil, fmt.Errorf("parse text: %w", err)
	}
	text := strings.Join(words, "")
	if text == "" {
		return nil, ErrEmptyText
	}
	return []byte(text), nil
}
