package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreferredDevice(t *testing.T) {
	tests := []struct {
		name    string
		devices []string
		want    string
	}{
		{"none", nil, ""},
		{"only builtin", []string{"/dev/ttyS0", "/dev/ttyS1"}, "/dev/ttyS0"},
		{"usb over builtin", []string{"/dev/ttyS0", "/dev/ttyUSB0"}, "/dev/ttyUSB0"},
		{"acm before usb", []string{"/dev/ttyUSB0", "/dev/ttyACM0"}, "/dev/ttyACM0"},
		{"mac modem", []string{"/dev/tty.Bluetooth", "/dev/tty.usbmodem2101"}, "/dev/tty.usbmodem2101"},
		{"windows", []string{"COM1", "COM3"}, "COM1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PreferredDevice(tt.devices))
		})
	}
}
