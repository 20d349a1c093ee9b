package core

// TimerStart arms the low-power counter to wake the CPU after timeout OS
// ticks. A timeout of TickMax leaves the counter stopped: there is no
// deadline. Zero is a caller bug.
func (pm *PM) TimerStart(timeout uint32) {
	if timeout == 0 {
		panic("pm: timer started with zero timeout")
	}
	if timeout == TickMax {
		return
	}

	// ToHardware already clamps to the counter range
	hw := pm.converter.ToHardware(timeout)
	pm.drv.StartCounter(hw)
	pm.timerArmed = true

	pm.Telemetry.record(EvtTimerStart, 0, timeout, hw)
}

// TimerStop disarms the low-power counter. Stopping twice is harmless.
func (pm *PM) TimerStop() {
	pm.drv.StopCounter()
	if pm.timerArmed {
		pm.timerArmed = false
		pm.Telemetry.record(EvtTimerStop, 0, 0, 0)
	}
}

// TimerGetTick returns how many OS ticks the CPU spent on the low-power
// counter. It reads the counter once and advances the tick residual, so
// the framework calls it exactly once per wake-up.
func (pm *PM) TimerGetTick() uint32 {
	hw := pm.drv.CounterValue()
	ticks := pm.converter.ToOS(hw)

	pm.Telemetry.record(EvtTimerRead, 0, hw, ticks)
	return ticks
}
