package core

import "errors"

// Default configuration values, taken from the STM32L4 board support
const (
	DefaultOSTickRate = 1000 // 1 ms scheduler tick
	DefaultFreqMHz    = 8    // MSI at 8 MHz for every tier
)

// TickMax is the OS tick value meaning "no timeout"
const TickMax = ^uint32(0)

// DefaultTimerMask marks the sleep modes that need the low-power timer
// armed around them: only IDLE.
const DefaultTimerMask = uint8(1) << SleepIdle

// ErrInvalidConfig is wrapped by every configuration error from HWInit
var ErrInvalidConfig = errors.New("pm: invalid configuration")

// RunSpeed describes the clock operating point of a run mode
type RunSpeed struct {
	FreqMHz      uint32 `json:"freq_mhz"`
	VoltageRange uint8  `json:"voltage_range"`
}

// Config is fixed at bring-up and never changes afterwards
type Config struct {
	// OSTickRate is the scheduler tick frequency in Hz
	OSTickRate uint32

	// RunSpeeds maps every run mode to its operating point.
	// A missing mode is a configuration error.
	RunSpeeds map[RunMode]RunSpeed

	// InitialRunMode is the tier the clock tree is in at reset
	InitialRunMode RunMode
}

// DefaultConfig returns the run-speed table of the STM32L4 port:
// every tier at 8 MHz, voltage range 0..3.
func DefaultConfig() Config {
	speeds := make(map[RunMode]RunSpeed, RunModeMax)
	for m := RunMode(0); m < RunModeMax; m++ {
		speeds[m] = RunSpeed{FreqMHz: DefaultFreqMHz, VoltageRange: uint8(m)}
	}
	return Config{
		OSTickRate:     DefaultOSTickRate,
		RunSpeeds:      speeds,
		InitialRunMode: RunHighSpeed,
	}
}

// Validate checks the configuration without touching hardware
func (c *Config) Validate() error {
	if c.OSTickRate == 0 {
		return configError("OS tick rate is zero")
	}
	if !c.InitialRunMode.Valid() {
		return configError("initial run mode out of range")
	}
	for m := RunMode(0); m < RunModeMax; m++ {
		speed, ok := c.RunSpeeds[m]
		if !ok {
			return configError("no run speed for " + m.String())
		}
		if speed.FreqMHz == 0 {
			return configError("zero frequency for " + m.String())
		}
	}
	for m := range c.RunSpeeds {
		if !m.Valid() {
			return configError("run speed for unknown mode " + utoa(uint32(m)))
		}
	}
	return nil
}

// configError wraps ErrInvalidConfig with a reason, without fmt
type configError string

func (e configError) Error() string {
	return ErrInvalidConfig.Error() + ": " + string(e)
}

func (e configError) Unwrap() error {
	return ErrInvalidConfig
}
