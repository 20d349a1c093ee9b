// Package framework is the generic side of power management: it owns the
// registered operation table and runs the fixed sleep sequence around it.
// Choosing the sleep mode and the timeout is left to the caller.
package framework

import (
	"errors"

	"gopm/core"
)

var (
	ErrAlreadyInitialized = errors.New("pm framework: already initialized")
	ErrNotInitialized     = errors.New("pm framework: not initialized")
	ErrNoOps              = errors.New("pm framework: nil operation table")
)

// System holds the registered back end and the OS tick count
type System struct {
	ops       core.Ops
	timerMask uint8
	userData  interface{}

	tick uint32
}

// NewSystem creates a framework instance with no back end registered
func NewSystem() *System {
	return &System{}
}

// Init registers the back end's operation table. timerMask has bit n set
// when sleep mode n needs the wake-up timer. Only the first call succeeds.
func (s *System) Init(ops core.Ops, timerMask uint8, userData interface{}) error {
	if ops == nil {
		return ErrNoOps
	}
	if s.ops != nil {
		return ErrAlreadyInitialized
	}
	s.ops = ops
	s.timerMask = timerMask
	s.userData = userData
	return nil
}

// Initialized reports whether a back end has been registered
func (s *System) Initialized() bool {
	return s.ops != nil
}

// TimerMask returns the registered timer mask
func (s *System) TimerMask() uint8 {
	return s.timerMask
}

// UserData returns the context pointer passed at registration
func (s *System) UserData() interface{} {
	return s.userData
}

// Tick returns the current OS tick
func (s *System) Tick() uint32 {
	return s.tick
}

// AdvanceTick adds n scheduler ticks, as the periodic tick interrupt does
// while the CPU is running
func (s *System) AdvanceTick(n uint32) {
	s.tick += n
}

// NeedsTimer reports whether a sleep mode runs with the wake-up timer armed
func (s *System) NeedsTimer(mode core.SleepMode) bool {
	return mode.Valid() && s.timerMask&(1<<mode) != 0
}

// Suspend puts the CPU into mode for at most timeout OS ticks
// (core.TickMax for no limit) and returns the OS ticks spent asleep, which
// have already been added to the tick count.
func (s *System) Suspend(mode core.SleepMode, timeout uint32) (uint32, error) {
	if s.ops == nil {
		return 0, ErrNotInitialized
	}

	timed := s.NeedsTimer(mode)
	if timed {
		s.ops.TimerStart(timeout)
	}

	s.ops.Sleep(mode)

	var delta uint32
	if timed {
		delta = s.ops.TimerGetTick()
		s.ops.TimerStop()
		s.tick += delta
	}
	return delta, nil
}

// SetRunMode asks the back end to switch run mode
func (s *System) SetRunMode(mode core.RunMode) error {
	if s.ops == nil {
		return ErrNotInitialized
	}
	s.ops.Run(mode)
	return nil
}
