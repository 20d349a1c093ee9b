package core

//go:generate mockgen -destination "mock_pm_hal_test.go" -package core -write_package_comment=false gopm/core PMDriver

// PMDriver is the abstract power-management hardware interface that core
// code uses. Target-specific implementations own the low-power counter, the
// clock tree and the halt instruction. Register access is assumed to always
// complete, so none of these calls return an error.
type PMDriver interface {
	// CounterFreq returns the counting frequency of the low-power counter in Hz
	CounterFreq() uint32

	// CounterMax returns the largest count the low-power counter can reach
	// before it wraps
	CounterMax() uint32

	// StartCounter starts the counter from zero with a compare/alarm at ticks
	StartCounter(ticks uint32)

	// StopCounter stops the counter. Stopping a stopped counter is harmless.
	StopCounter()

	// CounterValue reads the current counter value
	CounterValue() uint32

	// SetClock reconfigures the clock tree for a run mode.
	// The switch must be glitch-free; the core only sequences the request.
	SetClock(mode RunMode, speed RunSpeed)

	// Halt suspends the CPU until the next interrupt (wait-for-interrupt)
	Halt()
}
