package format

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/MironCo/ctserial/internal/config"
	"github.com/mattn/go-runewidth"
)

// Placeholder stands in for characters that cannot be printed in the character row
const Placeholder = "."

const columnGap = "  "

// cells measures terminal columns independent of the locale, so ambiguous-width
// characters such as U+FFFD always count as one column.
var cells = &runewidth.Condition{EastAsianWidth: false, StrictEmojiNeutral: true}

// Render returns bytes as two aligned rows for the given display mode.
// The top row is labelled with prefix (e.g. "--> "); the bottom row leaves that
// column blank. An empty sequence renders as prefix + "None".
func Render(b []byte, mode config.DisplayMode, prefix string) string {
	if len(b) == 0 {
		return prefix + "None"
	}

	var codes, chars []string
	switch mode {
	case config.UTF8:
		codes, chars = runeCells(b)
	default:
		codes, chars = byteCells(b)
	}

	label := strings.TrimRight(prefix, " ")
	if label != "" {
		codes = append([]string{label}, codes...)
		chars = append([]string{""}, chars...)
	}
	return alignRows(codes, chars)
}

// byteCells builds one column per byte: its hex pair and its ASCII character
func byteCells(b []byte) (codes, chars []string) {
	codes = make([]string, len(b))
	chars = make([]string, len(b))
	for i, c := range b {
		codes[i] = EncodeHex(b[i : i+1])
		if c >= 0x20 && c < 0x7f {
			chars[i] = string(rune(c))
		} else {
			chars[i] = Placeholder
		}
	}
	return codes, chars
}

// runeCells builds one column per decoded character. Each maximal invalid
// subsequence decodes to a single U+FFFD, so its column shows efbfbd instead of
// the bytes received.
func runeCells(b []byte) (codes, chars []string) {
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size == 1 {
			size = invalidLen(b)
		}
		b = b[size:]

		s := string(r)
		codes = append(codes, EncodeHex([]byte(s)))
		if unicode.IsPrint(r) {
			chars = append(chars, s)
		} else {
			chars = append(chars, Placeholder)
		}
	}
	return codes, chars
}

// invalidLen returns the length of the ill-formed sequence at the start of b:
// a lead byte plus the continuation bytes that were valid in their position.
func invalidLen(b []byte) int {
	lo, hi, need := byte(0x80), byte(0xbf), 0
	switch c := b[0]; {
	case c >= 0xc2 && c <= 0xdf:
		need = 1
	case c == 0xe0:
		lo, need = 0xa0, 2
	case c == 0xed:
		hi, need = 0x9f, 2
	case c >= 0xe1 && c <= 0xef:
		need = 2
	case c == 0xf0:
		lo, need = 0x90, 3
	case c >= 0xf1 && c <= 0xf3:
		need = 3
	case c == 0xf4:
		hi, need = 0x8f, 3
	default:
		return 1
	}

	n := 1
	for n <= need && n < len(b) && b[n] >= lo && b[n] <= hi {
		n++
		lo, hi = 0x80, 0xbf
	}
	return n
}

// alignRows right-aligns two equally long rows of cells into shared columns
func alignRows(top, bottom []string) string {
	var upper, lower strings.Builder
	for i := range top {
		width := max(cells.StringWidth(top[i]), cells.StringWidth(bottom[i]))
		if i > 0 {
			upper.WriteString(columnGap)
			lower.WriteString(columnGap)
		}
		upper.WriteString(padLeft(top[i], width))
		lower.WriteString(padLeft(bottom[i], width))
	}
	return upper.String() + "\n" + lower.String()
}

func padLeft(s string, width int) string {
	if pad := width - cells.StringWidth(s); pad > 0 {
		return strings.Repeat(" ", pad) + s
	}
	return s
}
