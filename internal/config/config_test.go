package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want DisplayMode
	}{
		{"hex", Hex},
		{"HEX", Hex},
		{" ascii ", ASCII},
		{"utf-8", UTF8},
		{"utf8", UTF8},
		{"Mixed", Mixed},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseMode_Unknown(t *testing.T) {
	_, err := ParseMode("binary")
	assert.Error(t, err)
}

func TestModeNamesRoundTrip(t *testing.T) {
	assert.Equal(t, []string{"hex", "ascii", "utf-8", "mixed"}, ModeNames())
	for _, m := range Modes() {
		got, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
}
