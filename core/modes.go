package core

// SleepMode is a sleep depth requested by the PM framework.
// Deeper modes save more power and take longer to wake.
type SleepMode uint8

const (
	SleepNone SleepMode = iota
	SleepIdle
	SleepLight
	SleepDeep
	SleepStandby
	SleepShutdown

	SleepModeMax // number of sleep modes, not a mode
)

var sleepModeNames = [SleepModeMax]string{
	SleepNone:     "None Mode",
	SleepIdle:     "Idle Mode",
	SleepLight:    "LightSleep Mode",
	SleepDeep:     "DeepSleep Mode",
	SleepStandby:  "Standby Mode",
	SleepShutdown: "Shutdown Mode",
}

// Valid reports whether m is one of the enumerated sleep modes
func (m SleepMode) Valid() bool {
	return m < SleepModeMax
}

func (m SleepMode) String() string {
	if !m.Valid() {
		return "Unknown Mode(" + utoa(uint32(m)) + ")"
	}
	return sleepModeNames[m]
}

// RunMode is a CPU run-speed tier. Lower values run faster.
type RunMode uint8

const (
	RunHighSpeed RunMode = iota
	RunNormalSpeed
	RunMediumSpeed
	RunLowSpeed

	RunModeMax // number of run modes, not a mode
)

var runModeNames = [RunModeMax]string{
	RunHighSpeed:   "High Speed",
	RunNormalSpeed: "Normal Speed",
	RunMediumSpeed: "Medium Speed",
	RunLowSpeed:    "Low Speed",
}

// runModeKeys are the configuration file names of the run modes
var runModeKeys = [RunModeMax]string{
	RunHighSpeed:   "high",
	RunNormalSpeed: "normal",
	RunMediumSpeed: "medium",
	RunLowSpeed:    "low",
}

// Valid reports whether m is one of the enumerated run modes
func (m RunMode) Valid() bool {
	return m < RunModeMax
}

func (m RunMode) String() string {
	if !m.Valid() {
		return "Unknown Speed(" + utoa(uint32(m)) + ")"
	}
	return runModeNames[m]
}

// Key returns the lower-case name used for m in configuration files
func (m RunMode) Key() string {
	if !m.Valid() {
		return ""
	}
	return runModeKeys[m]
}

// ParseRunMode maps a configuration key ("high", "normal", ...) to a RunMode
func ParseRunMode(key string) (RunMode, bool) {
	for i, k := range runModeKeys {
		if k == key {
			return RunMode(i), true
		}
	}
	return RunModeMax, false
}
