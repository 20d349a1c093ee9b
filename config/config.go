// Package config loads power-management settings from JSON
package config

import (
	"encoding/json"
	"fmt"

	"gopm/core"
)

// Settings is everything needed to bring up the PM back end: the core
// configuration plus the low-power counter parameters used by simulation
type Settings struct {
	PM          core.Config
	CounterFreq uint32
	CounterMax  uint32
}

// file is the on-disk layout; run modes are keyed by name
type file struct {
	OSTickRate     uint32                   `json:"os_tick_rate"`
	InitialRunMode string                   `json:"initial_run_mode"`
	RunSpeeds      map[string]core.RunSpeed `json:"run_speeds"`
	Counter        struct {
		Freq uint32 `json:"freq"`
		Max  uint32 `json:"max"`
	} `json:"counter"`
}

// LoadConfig parses a JSON configuration, applies defaults and validates it
func LoadConfig(jsonData []byte) (*Settings, error) {
	var f file
	if err := json.Unmarshal(jsonData, &f); err != nil {
		return nil, fmt.Errorf("parse pm config: %w", err)
	}

	applyDefaults(&f)

	settings := &Settings{
		PM: core.Config{
			OSTickRate: f.OSTickRate,
			RunSpeeds:  make(map[core.RunMode]core.RunSpeed, len(f.RunSpeeds)),
		},
		CounterFreq: f.Counter.Freq,
		CounterMax:  f.Counter.Max,
	}

	mode, ok := core.ParseRunMode(f.InitialRunMode)
	if !ok {
		return nil, fmt.Errorf("%w: unknown initial run mode %q", core.ErrInvalidConfig, f.InitialRunMode)
	}
	settings.PM.InitialRunMode = mode

	for name, speed := range f.RunSpeeds {
		m, ok := core.ParseRunMode(name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown run mode %q", core.ErrInvalidConfig, name)
		}
		settings.PM.RunSpeeds[m] = speed
	}

	if err := settings.PM.Validate(); err != nil {
		return nil, err
	}
	if settings.CounterFreq == 0 {
		return nil, fmt.Errorf("%w: counter frequency is zero", core.ErrInvalidConfig)
	}
	return settings, nil
}

// applyDefaults fills in missing configuration values. Run speeds are not
// defaulted per mode: a partial table is an error, not a guess.
func applyDefaults(f *file) {
	if f.OSTickRate == 0 {
		f.OSTickRate = core.DefaultOSTickRate
	}
	if f.InitialRunMode == "" {
		f.InitialRunMode = core.RunHighSpeed.Key()
	}
	if len(f.RunSpeeds) == 0 {
		f.RunSpeeds = make(map[string]core.RunSpeed, core.RunModeMax)
		for m, speed := range core.DefaultConfig().RunSpeeds {
			f.RunSpeeds[m.Key()] = speed
		}
	}
	if f.Counter.Freq == 0 {
		f.Counter.Freq = 32768 // LSE
	}
	if f.Counter.Max == 0 {
		f.Counter.Max = 0xFFFF // 16-bit LPTIM
	}
}

// DefaultSTM32L4Config returns the settings of the STM32L4 port: 1 kHz OS
// tick, LPTIM1 on the 32.768 kHz LSE, MSI at 8 MHz in every run mode
func DefaultSTM32L4Config() *Settings {
	return &Settings{
		PM:          core.DefaultConfig(),
		CounterFreq: 32768,
		CounterMax:  0xFFFF,
	}
}
