package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gopm/core"
)

func TestLoadConfigDefaults(t *testing.T) {
	settings, err := LoadConfig([]byte(`{}`))
	require.NoError(t, err)

	assert.Equal(t, DefaultSTM32L4Config(), settings)
}

func TestLoadConfigFull(t *testing.T) {
	settings, err := LoadConfig([]byte(`{
		"os_tick_rate": 100,
		"initial_run_mode": "normal",
		"counter": {"freq": 37000, "max": 4095},
		"run_speeds": {
			"high":   {"freq_mhz": 80, "voltage_range": 1},
			"normal": {"freq_mhz": 48, "voltage_range": 1},
			"medium": {"freq_mhz": 24, "voltage_range": 2},
			"low":    {"freq_mhz": 2,  "voltage_range": 2}
		}
	}`))
	require.NoError(t, err)

	assert.Equal(t, uint32(100), settings.PM.OSTickRate)
	assert.Equal(t, core.RunNormalSpeed, settings.PM.InitialRunMode)
	assert.Equal(t, uint32(37000), settings.CounterFreq)
	assert.Equal(t, uint32(4095), settings.CounterMax)
	assert.Equal(t, core.RunSpeed{FreqMHz: 2, VoltageRange: 2}, settings.PM.RunSpeeds[core.RunLowSpeed])
}

func TestLoadConfigErrors(t *testing.T) {
	cases := map[string]string{
		"partial table":   `{"run_speeds": {"high": {"freq_mhz": 80}}}`,
		"unknown mode":    `{"run_speeds": {"turbo": {"freq_mhz": 80}}}`,
		"unknown initial": `{"initial_run_mode": "warp"}`,
	}

	for name, data := range cases {
		_, err := LoadConfig([]byte(data))
		assert.ErrorIs(t, err, core.ErrInvalidConfig, name)
	}

	_, err := LoadConfig([]byte(`{`))
	assert.Error(t, err)
}
