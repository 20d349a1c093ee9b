package core

// Sleep enters a sleep mode.
//
// Only IDLE has a hardware primitive on the supported targets: it halts
// until the next interrupt. LIGHT, DEEP, STANDBY and SHUTDOWN are accepted
// and degrade to NONE, recording EvtSleepDegraded so the framework's
// request is visible in telemetry. A mode outside the enumeration is a
// caller bug and panics.
func (pm *PM) Sleep(mode SleepMode) {
	if !mode.Valid() {
		panic("pm: sleep mode out of range: " + utoa(uint32(mode)))
	}

	switch mode {
	case SleepNone:
		return

	case SleepIdle:
		pm.Telemetry.record(EvtSleepEnter, uint8(mode), 0, 0)
		pm.drv.Halt()
		pm.Telemetry.record(EvtSleepExit, uint8(mode), 0, 0)

	case SleepLight, SleepDeep, SleepStandby, SleepShutdown:
		pm.Telemetry.record(EvtSleepDegraded, uint8(mode), 0, 0)
	}
}
