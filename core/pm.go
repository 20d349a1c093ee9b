package core

// Ops is the operation table the PM framework calls into.
// The method order follows the framework's table.
type Ops interface {
	// Sleep puts the CPU into a sleep mode and returns after wake-up
	Sleep(mode SleepMode)

	// Run switches the CPU to a run mode
	Run(mode RunMode)

	// TimerStart arms the wake-up timer for timeout OS ticks.
	// TickMax means no timeout: the timer stays stopped.
	TimerStart(timeout uint32)

	// TimerStop disarms the wake-up timer
	TimerStop()

	// TimerGetTick returns the OS ticks elapsed on the wake-up timer
	TimerGetTick() uint32
}

// Registrar is the PM framework's registration entry point.
// It must accept exactly one registration.
type Registrar interface {
	Init(ops Ops, timerMask uint8, userData interface{}) error
}

// PM is the power-management context. One instance owns the tick
// residual, the current run mode and the timer state.
type PM struct {
	drv       PMDriver
	converter *TickConverter
	speeds    [RunModeMax]RunSpeed

	// runMode holds the current RunMode; read and written atomically
	runMode uint32

	// timerArmed tracks whether TimerStart started the counter
	timerArmed bool

	Telemetry Telemetry
}

// NewPM creates a PM context from a validated configuration.
// Most callers want HWInit, which validates and registers as well.
func NewPM(cfg Config, drv PMDriver) (*PM, error) {
	if drv == nil {
		return nil, configError("no PM driver")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if drv.CounterFreq() == 0 {
		return nil, configError("low-power counter frequency is zero")
	}

	pm := &PM{
		drv:       drv,
		converter: NewTickConverter(cfg.OSTickRate, drv),
		runMode:   uint32(cfg.InitialRunMode),
	}
	for m := RunMode(0); m < RunModeMax; m++ {
		pm.speeds[m] = cfg.RunSpeeds[m]
	}
	return pm, nil
}

// HWInit builds the PM context and registers its operation table with the
// framework. Only IDLE needs the wake-up timer; no user data is passed.
// Any error is fatal for bring-up.
func HWInit(reg Registrar, cfg Config, drv PMDriver) (*PM, error) {
	pm, err := NewPM(cfg, drv)
	if err != nil {
		return nil, err
	}
	if err := reg.Init(pm, DefaultTimerMask, nil); err != nil {
		return nil, err
	}
	return pm, nil
}

// MustHWInit is HWInit for firmware main: it panics on error
func MustHWInit(reg Registrar, cfg Config, drv PMDriver) *PM {
	pm, err := HWInit(reg, cfg, drv)
	if err != nil {
		panic(err.Error())
	}
	return pm
}

// Converter exposes the tick converter for diagnostics
func (pm *PM) Converter() *TickConverter {
	return pm.converter
}

// RunSpeedFor returns the configured operating point of a run mode
func (pm *PM) RunSpeedFor(mode RunMode) RunSpeed {
	if !mode.Valid() {
		panic("pm: run mode out of range: " + utoa(uint32(mode)))
	}
	return pm.speeds[mode]
}
