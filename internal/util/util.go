package util

import "path/filepath"

// usbPatterns match the names USB serial adapters usually get, most specific first
var usbPatterns = []string{
	"/dev/tty.usbmodem*",
	"/dev/tty.usbserial*",
	"/dev/ttyACM*",
	"/dev/ttyUSB*",
}

// PreferredDevice picks the device a front end should suggest first:
// the first USB-looking port, else the first device, else "".
func PreferredDevice(devices []string) string {
	for _, pattern := range usbPatterns {
		for _, d := range devices {
			if ok, _ := filepath.Match(pattern, d); ok {
				return d
			}
		}
	}
	if len(devices) > 0 {
		return devices[0]
	}
	return ""
}
