// Package serial opens the UART the firmware writes PM telemetry to
package serial

import (
	"io"
	"os"
	"strconv"
)

// Port represents a serial port interface
// Implementations:
// - Native serial (using github.com/tarm/serial)
// - Any io.ReadCloser in tests
type Port interface {
	io.ReadWriteCloser
}

// Config holds serial port configuration
type Config struct {
	// Device path (e.g., "/dev/ttyACM0", "COM3")
	Device string

	// Baud rate of the telemetry UART
	Baud int

	// Read timeout in milliseconds (0 = blocking)
	ReadTimeout int
}

// Environment variables read by ConfigFromEnv
const (
	EnvDevice = "PMCTL_DEVICE"
	EnvBaud   = "PMCTL_BAUD"
)

// DefaultConfig returns the configuration of the firmware's telemetry UART
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        115200,
		ReadTimeout: 100,
	}
}

// ConfigFromEnv returns DefaultConfig overridden by PMCTL_DEVICE and
// PMCTL_BAUD when they are set
func ConfigFromEnv() *Config {
	cfg := DefaultConfig("/dev/ttyACM0")
	if dev := os.Getenv(EnvDevice); dev != "" {
		cfg.Device = dev
	}
	if baud, err := strconv.Atoi(os.Getenv(EnvBaud)); err == nil && baud > 0 {
		cfg.Baud = baud
	}
	return cfg
}
