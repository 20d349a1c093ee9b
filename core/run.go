package core

import "sync/atomic"

// Run switches the clock tree to a run mode. Requesting the current mode
// does nothing, so repeated requests never reconfigure the clocks twice.
func (pm *PM) Run(mode RunMode) {
	if !mode.Valid() {
		panic("pm: run mode out of range: " + utoa(uint32(mode)))
	}
	if RunMode(atomic.LoadUint32(&pm.runMode)) == mode {
		return
	}

	speed := pm.speeds[mode]
	pm.drv.SetClock(mode, speed)
	atomic.StoreUint32(&pm.runMode, uint32(mode))

	pm.Telemetry.record(EvtRunSwitch, uint8(mode), speed.FreqMHz, uint32(speed.VoltageRange))
	pm.Telemetry.println("switch to " + mode.String() + " mode, frequency = " + utoa(speed.FreqMHz) + " MHz")
}

// RunMode returns the current run mode. Safe to call from any context.
func (pm *PM) RunMode() RunMode {
	return RunMode(atomic.LoadUint32(&pm.runMode))
}
