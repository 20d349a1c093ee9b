package core

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newMockDriver returns a driver mock whose counter reports freq and max
// for any number of calls
func newMockDriver(t *testing.T, freq, max uint32) *MockPMDriver {
	ctrl := gomock.NewController(t)
	drv := NewMockPMDriver(ctrl)
	drv.EXPECT().CounterFreq().Return(freq).AnyTimes()
	drv.EXPECT().CounterMax().Return(max).AnyTimes()
	return drv
}

func newTestPM(t *testing.T, osTickRate, freq, max uint32) (*PM, *MockPMDriver) {
	drv := newMockDriver(t, freq, max)
	cfg := DefaultConfig()
	cfg.OSTickRate = osTickRate

	pm, err := NewPM(cfg, drv)
	require.NoError(t, err)
	return pm, drv
}
